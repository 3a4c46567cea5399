package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/shoaibhussa1n/Futsal-Connect/models"
)

var (
	ErrMatchNotFound    = errors.New("match not found")
	ErrMatchTeamInvalid = errors.New("match team conflict or invalid")

	// ErrMatchSubmitRejected means the conditional result update matched no
	// row: the match is gone, already verified, or the scores disagree with
	// the opponent's stored submission. The service re-reads to classify.
	ErrMatchSubmitRejected = errors.New("match result submission rejected by guard")
)

type MatchFilter struct {
	TeamID   *string
	Status   *models.MatchStatus
	Upcoming bool
}

// ResultSubmission is the single-statement compare-and-set payload for one
// team's result report.
type ResultSubmission struct {
	MatchID     string
	AsTeamA     bool // which party's flag this submission claims
	TeamAScore  int
	TeamBScore  int
	MVPPlayerID *string
}

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Match, error)
	List(ctx context.Context, filter MatchFilter) ([]*models.Match, error)
	UpdateSchedule(ctx context.Context, match *models.Match) error
	UpdateStatus(ctx context.Context, id string, status models.MatchStatus) error
	SetMVP(ctx context.Context, id string, playerID string) error

	// SubmitTeamResult performs the guarded single-row update described in
	// the result workflow: it writes the submitting party's flag, timestamp
	// and the scores, and derives verified_result/status from the
	// opponent's flag at update time. The row lock serializes two racing
	// submissions, so exactly one caller observes the verified transition.
	// Returns ErrMatchSubmitRejected when the guard filtered the row out.
	SubmitTeamResult(ctx context.Context, exec SQLExecutor, sub ResultSubmission) (*models.Match, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const matchColumns = `id, team_a_id, team_b_id, status, scheduled_date, scheduled_time, location,
	team_a_score, team_b_score,
	team_a_result_submitted, team_b_result_submitted, team_a_submitted_at, team_b_submitted_at,
	verified_result, mvp_player_id, notes, created_at, updated_at`

func (r *postgresMatchRepository) scan(row interface{ Scan(...interface{}) error }) (*models.Match, error) {
	var m models.Match
	err := row.Scan(
		&m.ID, &m.TeamAID, &m.TeamBID, &m.Status, &m.ScheduledDate, &m.ScheduledTime, &m.Location,
		&m.TeamAScore, &m.TeamBScore,
		&m.TeamAResultSubmitted, &m.TeamBResultSubmitted, &m.TeamASubmittedAt, &m.TeamBSubmittedAt,
		&m.VerifiedResult, &m.MVPPlayerID, &m.Notes, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *postgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	if match.ID == "" {
		match.ID = uuid.NewString()
	}
	if match.Status == "" {
		match.Status = models.MatchStatusPending
	}
	query := `
		INSERT INTO matches (id, team_a_id, team_b_id, status, scheduled_date, scheduled_time, location, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		match.ID, match.TeamAID, match.TeamBID, match.Status,
		match.ScheduledDate, match.ScheduledTime, match.Location, match.Notes,
	).Scan(&match.CreatedAt, &match.UpdatedAt)

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
		return ErrMatchTeamInvalid
	}
	return err
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Match, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	return r.scan(executor.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) List(ctx context.Context, filter MatchFilter) ([]*models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + matchColumns + ` FROM matches WHERE 1=1`)

	args := make([]interface{}, 0, 3)
	placeholder := 1

	if filter.TeamID != nil {
		p := strconv.Itoa(placeholder)
		queryBuilder.WriteString(" AND (team_a_id = $" + p + " OR team_b_id = $" + p + ")")
		args = append(args, *filter.TeamID)
		placeholder++
	}
	if filter.Status != nil {
		queryBuilder.WriteString(" AND status = $" + strconv.Itoa(placeholder))
		args = append(args, *filter.Status)
		placeholder++
	}
	if filter.Upcoming {
		queryBuilder.WriteString(" AND scheduled_date >= CURRENT_DATE")
	}

	queryBuilder.WriteString(" ORDER BY scheduled_date ASC NULLS LAST, created_at ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m, scanErr := r.scan(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *postgresMatchRepository) UpdateSchedule(ctx context.Context, match *models.Match) error {
	query := `
		UPDATE matches
		SET scheduled_date = $1, scheduled_time = $2, location = $3, notes = $4, updated_at = NOW()
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query,
		match.ScheduledDate, match.ScheduledTime, match.Location, match.Notes, match.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateStatus(ctx context.Context, id string, status models.MatchStatus) error {
	query := `UPDATE matches SET status = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) SetMVP(ctx context.Context, id string, playerID string) error {
	query := `UPDATE matches SET mvp_player_id = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, playerID, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) SubmitTeamResult(ctx context.Context, exec SQLExecutor, sub ResultSubmission) (*models.Match, error) {
	executor := r.getExecutor(exec)

	own, other := "team_a", "team_b"
	if !sub.AsTeamA {
		own, other = "team_b", "team_a"
	}

	// The guard rejects the update when the result is already verified or
	// when the opponent submitted different scores. verified_result is
	// derived from the opponent's flag inside the same statement, which is
	// the atomic claim the workflow relies on.
	query := fmt.Sprintf(`
		UPDATE matches
		SET team_a_score = $2,
			team_b_score = $3,
			mvp_player_id = COALESCE($4, mvp_player_id),
			%[1]s_result_submitted = TRUE,
			%[1]s_submitted_at = NOW(),
			verified_result = %[2]s_result_submitted,
			status = CASE WHEN %[2]s_result_submitted THEN 'completed' ELSE 'confirmed' END,
			updated_at = NOW()
		WHERE id = $1
			AND verified_result = FALSE
			AND (NOT %[2]s_result_submitted OR (team_a_score = $2 AND team_b_score = $3))
		RETURNING `+matchColumns, own, other)

	match, err := r.scan(executor.QueryRowContext(ctx, query,
		sub.MatchID, sub.TeamAScore, sub.TeamBScore, sub.MVPPlayerID,
	))
	if err != nil {
		if errors.Is(err, ErrMatchNotFound) {
			return nil, ErrMatchSubmitRejected
		}
		return nil, err
	}
	return match, nil
}
