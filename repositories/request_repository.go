package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/shoaibhussa1n/Futsal-Connect/models"
)

var (
	ErrMatchRequestNotFound = errors.New("match request not found")
	ErrMatchRequestInvalid  = errors.New("match request team conflict or invalid")
)

type MatchRequestRepository interface {
	Create(ctx context.Context, request *models.MatchRequest) error
	GetByID(ctx context.Context, id string) (*models.MatchRequest, error)
	ListByTeam(ctx context.Context, teamID string) ([]*models.MatchRequest, error)
	UpdateStatus(ctx context.Context, id string, status models.MatchRequestStatus) error
}

type postgresMatchRequestRepository struct {
	db *sql.DB
}

func NewPostgresMatchRequestRepository(db *sql.DB) MatchRequestRepository {
	return &postgresMatchRequestRepository{db: db}
}

const requestColumns = `id, requester_team_id, requested_team_id, status,
	proposed_date, proposed_time, proposed_location, notes, created_at, updated_at`

func (r *postgresMatchRequestRepository) scan(row interface{ Scan(...interface{}) error }) (*models.MatchRequest, error) {
	var req models.MatchRequest
	err := row.Scan(
		&req.ID, &req.RequesterTeamID, &req.RequestedTeamID, &req.Status,
		&req.ProposedDate, &req.ProposedTime, &req.ProposedLocation, &req.Notes,
		&req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *postgresMatchRequestRepository) Create(ctx context.Context, request *models.MatchRequest) error {
	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	if request.Status == "" {
		request.Status = models.RequestStatusPending
	}
	query := `
		INSERT INTO match_requests
			(id, requester_team_id, requested_team_id, status, proposed_date, proposed_time, proposed_location, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		request.ID, request.RequesterTeamID, request.RequestedTeamID, request.Status,
		request.ProposedDate, request.ProposedTime, request.ProposedLocation, request.Notes,
	).Scan(&request.CreatedAt, &request.UpdatedAt)

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
		return ErrMatchRequestInvalid
	}
	return err
}

func (r *postgresMatchRequestRepository) GetByID(ctx context.Context, id string) (*models.MatchRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM match_requests WHERE id = $1`
	return r.scan(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRequestRepository) ListByTeam(ctx context.Context, teamID string) ([]*models.MatchRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM match_requests
		WHERE requester_team_id = $1 OR requested_team_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]*models.MatchRequest, 0)
	for rows.Next() {
		req, scanErr := r.scan(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		requests = append(requests, req)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *postgresMatchRequestRepository) UpdateStatus(ctx context.Context, id string, status models.MatchRequestStatus) error {
	query := `UPDATE match_requests SET status = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchRequestNotFound)
}
