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
	ErrTournamentNotFound     = errors.New("tournament not found")
	ErrTournamentNameConflict = errors.New("tournament name already exists")
	ErrRegistrationConflict   = errors.New("team or player is already registered for this tournament")
	ErrRegistrationInvalid    = errors.New("registration references conflict or invalid")
)

type TournamentFilter struct {
	Status   *models.TournamentStatus
	Approved *bool
}

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	List(ctx context.Context, filter TournamentFilter) ([]*models.Tournament, error)
	UpdateStatus(ctx context.Context, id string, status models.TournamentStatus) error
	IncrementCurrentTeams(ctx context.Context, id string) error

	CreateRegistration(ctx context.Context, registration *models.TournamentRegistration) error
	ListRegistrations(ctx context.Context, tournamentID string) ([]*models.TournamentRegistration, error)

	// StartDueTournaments flips approved open/filling tournaments whose
	// start date has passed to in_progress and returns the affected ids.
	// Used by the background scheduler.
	StartDueTournaments(ctx context.Context) ([]string, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

const tournamentColumns = `id, name, organizer_id, organizer_type, status, fee, prize, start_date,
	max_teams, current_teams, format, description, admin_approved, created_at, updated_at`

func (r *postgresTournamentRepository) scan(row interface{ Scan(...interface{}) error }) (*models.Tournament, error) {
	var t models.Tournament
	err := row.Scan(
		&t.ID, &t.Name, &t.OrganizerID, &t.OrganizerType, &t.Status, &t.Fee, &t.Prize,
		&t.StartDate, &t.MaxTeams, &t.CurrentTeams, &t.Format, &t.Description,
		&t.AdminApproved, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *postgresTournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	if tournament.ID == "" {
		tournament.ID = uuid.NewString()
	}
	if tournament.Status == "" {
		tournament.Status = models.TournamentStatusPendingApproval
	}
	query := `
		INSERT INTO tournaments
			(id, name, organizer_id, organizer_type, status, fee, prize, start_date, max_teams, format, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		tournament.ID, tournament.Name, tournament.OrganizerID, tournament.OrganizerType,
		tournament.Status, tournament.Fee, tournament.Prize, tournament.StartDate,
		tournament.MaxTeams, tournament.Format, tournament.Description,
	).Scan(&tournament.CreatedAt, &tournament.UpdatedAt)

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return ErrTournamentNameConflict
	}
	return err
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = $1`
	return r.scan(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresTournamentRepository) List(ctx context.Context, filter TournamentFilter) ([]*models.Tournament, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + tournamentColumns + ` FROM tournaments WHERE 1=1`)

	args := make([]interface{}, 0, 2)
	placeholder := 1

	if filter.Status != nil {
		queryBuilder.WriteString(" AND status = $" + strconv.Itoa(placeholder))
		args = append(args, *filter.Status)
		placeholder++
	}
	if filter.Approved != nil {
		queryBuilder.WriteString(" AND admin_approved = $" + strconv.Itoa(placeholder))
		args = append(args, *filter.Approved)
		placeholder++
	}

	queryBuilder.WriteString(" ORDER BY start_date ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]*models.Tournament, 0)
	for rows.Next() {
		t, scanErr := r.scan(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		tournaments = append(tournaments, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) UpdateStatus(ctx context.Context, id string, status models.TournamentStatus) error {
	query := `UPDATE tournaments SET status = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) IncrementCurrentTeams(ctx context.Context, id string) error {
	query := `UPDATE tournaments SET current_teams = current_teams + 1, updated_at = NOW() WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) CreateRegistration(ctx context.Context, registration *models.TournamentRegistration) error {
	if registration.ID == "" {
		registration.ID = uuid.NewString()
	}
	if registration.Status == "" {
		registration.Status = models.RegistrationStatusPending
	}
	query := `
		INSERT INTO tournament_registrations (id, tournament_id, team_id, player_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		registration.ID, registration.TournamentID, registration.TeamID, registration.PlayerID, registration.Status,
	).Scan(&registration.CreatedAt)

	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			return ErrRegistrationConflict
		case "23503":
			return ErrRegistrationInvalid
		}
	}
	return err
}

func (r *postgresTournamentRepository) ListRegistrations(ctx context.Context, tournamentID string) ([]*models.TournamentRegistration, error) {
	query := `
		SELECT id, tournament_id, team_id, player_id, status, created_at
		FROM tournament_registrations
		WHERE tournament_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	registrations := make([]*models.TournamentRegistration, 0)
	for rows.Next() {
		var reg models.TournamentRegistration
		if scanErr := rows.Scan(&reg.ID, &reg.TournamentID, &reg.TeamID, &reg.PlayerID, &reg.Status, &reg.CreatedAt); scanErr != nil {
			return nil, scanErr
		}
		registrations = append(registrations, &reg)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return registrations, nil
}

func (r *postgresTournamentRepository) StartDueTournaments(ctx context.Context) ([]string, error) {
	query := `
		UPDATE tournaments
		SET status = 'in_progress', updated_at = NOW()
		WHERE status IN ('open', 'filling')
			AND admin_approved = TRUE
			AND start_date <= NOW()
		RETURNING id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if scanErr := rows.Scan(&id); scanErr != nil {
			return nil, scanErr
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
