package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/shoaibhussa1n/Futsal-Connect/models"
)

var (
	ErrTeamNotFound       = errors.New("team not found")
	ErrTeamNameConflict   = errors.New("team name is already in use")
	ErrTeamCaptainInvalid = errors.New("team captain conflict or invalid")
)

type TeamFilter struct {
	AgeGroup  *string
	MinRating *float64
	MaxRating *float64
}

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id string) (*models.Team, error)
	GetByCaptainID(ctx context.Context, captainID string) (*models.Team, error)
	List(ctx context.Context, filter TeamFilter) ([]*models.Team, error)
	ListTop(ctx context.Context, limit int) ([]*models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	UpdateLogoKey(ctx context.Context, id string, key *string) error
	Delete(ctx context.Context, id string) error

	// IncrementRecord applies relative win/loss/draw deltas in a single
	// statement so concurrent finalizations never lose updates.
	IncrementRecord(ctx context.Context, id string, wins, losses, draws int) error

	// AdjustRating moves the rating by delta, clamped to [1.0, 10.0].
	AdjustRating(ctx context.Context, id string, delta float64) error

	AddGoals(ctx context.Context, id string, goals int) error
	IncrementMVPs(ctx context.Context, id string) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

const teamColumns = `id, name, captain_id, age_group, team_level, rating, wins, losses, draws,
	total_goals, total_mvps, logo_key, created_at, updated_at`

func (r *postgresTeamRepository) scan(row interface{ Scan(...interface{}) error }) (*models.Team, error) {
	var t models.Team
	err := row.Scan(
		&t.ID, &t.Name, &t.CaptainID, &t.AgeGroup, &t.TeamLevel, &t.Rating,
		&t.Wins, &t.Losses, &t.Draws, &t.TotalGoals, &t.TotalMVPs,
		&t.LogoKey, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	if team.ID == "" {
		team.ID = uuid.NewString()
	}
	query := `
		INSERT INTO teams (id, name, captain_id, age_group, team_level, rating)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		team.ID, team.Name, team.CaptainID, team.AgeGroup, team.TeamLevel, team.Rating,
	).Scan(&team.CreatedAt, &team.UpdatedAt)

	return r.handleTeamError(err)
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id string) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`
	return r.scan(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresTeamRepository) GetByCaptainID(ctx context.Context, captainID string) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE captain_id = $1`
	return r.scan(r.db.QueryRowContext(ctx, query, captainID))
}

func (r *postgresTeamRepository) List(ctx context.Context, filter TeamFilter) ([]*models.Team, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + teamColumns + ` FROM teams WHERE 1=1`)

	args := make([]interface{}, 0, 3)
	placeholder := 1

	if filter.AgeGroup != nil {
		queryBuilder.WriteString(" AND age_group = $" + strconv.Itoa(placeholder))
		args = append(args, *filter.AgeGroup)
		placeholder++
	}
	if filter.MinRating != nil {
		queryBuilder.WriteString(" AND rating >= $" + strconv.Itoa(placeholder))
		args = append(args, *filter.MinRating)
		placeholder++
	}
	if filter.MaxRating != nil {
		queryBuilder.WriteString(" AND rating <= $" + strconv.Itoa(placeholder))
		args = append(args, *filter.MaxRating)
		placeholder++
	}

	queryBuilder.WriteString(" ORDER BY rating DESC")

	return r.queryTeams(ctx, queryBuilder.String(), args...)
}

func (r *postgresTeamRepository) ListTop(ctx context.Context, limit int) ([]*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams ORDER BY rating DESC, wins DESC LIMIT $1`
	return r.queryTeams(ctx, query, limit)
}

func (r *postgresTeamRepository) queryTeams(ctx context.Context, query string, args ...interface{}) ([]*models.Team, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		t, scanErr := r.scan(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *postgresTeamRepository) Update(ctx context.Context, team *models.Team) error {
	query := `
		UPDATE teams
		SET name = $1, age_group = $2, team_level = $3, updated_at = NOW()
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, team.Name, team.AgeGroup, team.TeamLevel, team.ID)
	if err != nil {
		return r.handleTeamError(err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateLogoKey(ctx context.Context, id string, key *string) error {
	query := `UPDATE teams SET logo_key = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, key, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM teams WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) IncrementRecord(ctx context.Context, id string, wins, losses, draws int) error {
	query := `
		UPDATE teams
		SET wins = wins + $1, losses = losses + $2, draws = draws + $3, updated_at = NOW()
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, wins, losses, draws, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) AdjustRating(ctx context.Context, id string, delta float64) error {
	query := `
		UPDATE teams
		SET rating = LEAST(10.0, GREATEST(1.0, rating + $1)), updated_at = NOW()
		WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, delta, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) AddGoals(ctx context.Context, id string, goals int) error {
	query := `UPDATE teams SET total_goals = total_goals + $1, updated_at = NOW() WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, goals, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) IncrementMVPs(ctx context.Context, id string) error {
	query := `UPDATE teams SET total_mvps = total_mvps + 1, updated_at = NOW() WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) handleTeamError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505": // unique_violation
			return ErrTeamNameConflict
		case "23503": // foreign_key_violation
			return ErrTeamCaptainInvalid
		}
	}
	return err
}
