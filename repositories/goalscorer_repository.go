package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/shoaibhussa1n/Futsal-Connect/models"
)

var ErrGoalScorerInvalid = errors.New("goal scorer references conflict or invalid")

type GoalScorerRepository interface {
	ListByMatch(ctx context.Context, exec SQLExecutor, matchID string) ([]*models.GoalScorer, error)

	// ReplaceForTeam swaps the full scorer set owned by one team for a
	// match: dropped players are deleted, new ones inserted, changed goal
	// counts rewritten. Rows carrying the other team's id are untouched.
	ReplaceForTeam(ctx context.Context, exec SQLExecutor, matchID, teamID string, scorers []*models.GoalScorer) error
}

type postgresGoalScorerRepository struct {
	db *sql.DB
}

func NewPostgresGoalScorerRepository(db *sql.DB) GoalScorerRepository {
	return &postgresGoalScorerRepository{db: db}
}

func (r *postgresGoalScorerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresGoalScorerRepository) ListByMatch(ctx context.Context, exec SQLExecutor, matchID string) ([]*models.GoalScorer, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, match_id, player_id, team_id, goals, created_at
		FROM goal_scorers
		WHERE match_id = $1
		ORDER BY goals DESC, player_id ASC`

	rows, err := executor.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scorers := make([]*models.GoalScorer, 0)
	for rows.Next() {
		var gs models.GoalScorer
		if scanErr := rows.Scan(&gs.ID, &gs.MatchID, &gs.PlayerID, &gs.TeamID, &gs.Goals, &gs.CreatedAt); scanErr != nil {
			return nil, scanErr
		}
		scorers = append(scorers, &gs)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return scorers, nil
}

func (r *postgresGoalScorerRepository) ReplaceForTeam(ctx context.Context, exec SQLExecutor, matchID, teamID string, scorers []*models.GoalScorer) error {
	executor := r.getExecutor(exec)

	deleteQuery := `DELETE FROM goal_scorers WHERE match_id = $1 AND team_id = $2`
	if _, err := executor.ExecContext(ctx, deleteQuery, matchID, teamID); err != nil {
		return err
	}

	insertQuery := `
		INSERT INTO goal_scorers (id, match_id, player_id, team_id, goals)
		VALUES ($1, $2, $3, $4, $5)`

	for _, scorer := range scorers {
		id := scorer.ID
		if id == "" {
			id = uuid.NewString()
		}
		_, err := executor.ExecContext(ctx, insertQuery, id, matchID, scorer.PlayerID, teamID, scorer.Goals)
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && (pqErr.Code == "23503" || pqErr.Code == "23505") {
				return ErrGoalScorerInvalid
			}
			return err
		}
		scorer.ID = id
		scorer.MatchID = matchID
		scorer.TeamID = teamID
	}
	return nil
}
