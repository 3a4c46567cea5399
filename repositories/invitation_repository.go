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
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrInvitationInvalid  = errors.New("invitation references conflict or invalid")
)

type InvitationRepository interface {
	Create(ctx context.Context, invitation *models.PlayerInvitation) error
	GetByID(ctx context.Context, id string) (*models.PlayerInvitation, error)
	ListPendingByPlayer(ctx context.Context, playerID string) ([]*models.PlayerInvitation, error)
	UpdateStatus(ctx context.Context, id string, status models.InvitationStatus) error
}

type postgresInvitationRepository struct {
	db *sql.DB
}

func NewPostgresInvitationRepository(db *sql.DB) InvitationRepository {
	return &postgresInvitationRepository{db: db}
}

const invitationColumns = `id, team_id, player_id, invitation_type, match_id, match_fee, status, message, created_at, updated_at`

func (r *postgresInvitationRepository) scan(row interface{ Scan(...interface{}) error }) (*models.PlayerInvitation, error) {
	var inv models.PlayerInvitation
	err := row.Scan(
		&inv.ID, &inv.TeamID, &inv.PlayerID, &inv.InvitationType, &inv.MatchID,
		&inv.MatchFee, &inv.Status, &inv.Message, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvitationNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (r *postgresInvitationRepository) Create(ctx context.Context, invitation *models.PlayerInvitation) error {
	if invitation.ID == "" {
		invitation.ID = uuid.NewString()
	}
	if invitation.Status == "" {
		invitation.Status = models.InvitationStatusPending
	}
	query := `
		INSERT INTO player_invitations (id, team_id, player_id, invitation_type, match_id, match_fee, status, message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		invitation.ID, invitation.TeamID, invitation.PlayerID, invitation.InvitationType,
		invitation.MatchID, invitation.MatchFee, invitation.Status, invitation.Message,
	).Scan(&invitation.CreatedAt, &invitation.UpdatedAt)

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
		return ErrInvitationInvalid
	}
	return err
}

func (r *postgresInvitationRepository) GetByID(ctx context.Context, id string) (*models.PlayerInvitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM player_invitations WHERE id = $1`
	return r.scan(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresInvitationRepository) ListPendingByPlayer(ctx context.Context, playerID string) ([]*models.PlayerInvitation, error) {
	query := `
		SELECT ` + invitationColumns + `
		FROM player_invitations
		WHERE player_id = $1 AND status = 'pending'
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invitations := make([]*models.PlayerInvitation, 0)
	for rows.Next() {
		inv, scanErr := r.scan(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		invitations = append(invitations, inv)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return invitations, nil
}

func (r *postgresInvitationRepository) UpdateStatus(ctx context.Context, id string, status models.InvitationStatus) error {
	query := `UPDATE player_invitations SET status = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrInvitationNotFound)
}
