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
	ErrMemberNotFound = errors.New("team member not found")
	ErrMemberConflict = errors.New("player is already a member of this team")
	ErrMemberInvalid  = errors.New("team member references conflict or invalid")
)

type MemberRepository interface {
	Add(ctx context.Context, member *models.TeamMember) error
	Remove(ctx context.Context, teamID, playerID string) error
	ListByTeam(ctx context.Context, teamID string) ([]*models.TeamMember, error)
	GetByTeamAndPlayer(ctx context.Context, teamID, playerID string) (*models.TeamMember, error)
	ListTeamIDsByPlayer(ctx context.Context, playerID string) ([]string, error)
}

type postgresMemberRepository struct {
	db *sql.DB
}

func NewPostgresMemberRepository(db *sql.DB) MemberRepository {
	return &postgresMemberRepository{db: db}
}

func (r *postgresMemberRepository) Add(ctx context.Context, member *models.TeamMember) error {
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	if member.Role == "" {
		member.Role = models.TeamRoleMember
	}
	query := `
		INSERT INTO team_members (id, team_id, player_id, role)
		VALUES ($1, $2, $3, $4)
		RETURNING joined_at`

	err := r.db.QueryRowContext(ctx, query,
		member.ID, member.TeamID, member.PlayerID, member.Role,
	).Scan(&member.JoinedAt)

	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			return ErrMemberConflict
		case "23503":
			return ErrMemberInvalid
		}
	}
	return err
}

func (r *postgresMemberRepository) Remove(ctx context.Context, teamID, playerID string) error {
	query := `DELETE FROM team_members WHERE team_id = $1 AND player_id = $2`
	result, err := r.db.ExecContext(ctx, query, teamID, playerID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMemberNotFound)
}

func (r *postgresMemberRepository) ListByTeam(ctx context.Context, teamID string) ([]*models.TeamMember, error) {
	query := `
		SELECT id, team_id, player_id, role, joined_at
		FROM team_members
		WHERE team_id = $1
		ORDER BY joined_at ASC`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]*models.TeamMember, 0)
	for rows.Next() {
		var m models.TeamMember
		if scanErr := rows.Scan(&m.ID, &m.TeamID, &m.PlayerID, &m.Role, &m.JoinedAt); scanErr != nil {
			return nil, scanErr
		}
		members = append(members, &m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return members, nil
}

func (r *postgresMemberRepository) GetByTeamAndPlayer(ctx context.Context, teamID, playerID string) (*models.TeamMember, error) {
	query := `
		SELECT id, team_id, player_id, role, joined_at
		FROM team_members
		WHERE team_id = $1 AND player_id = $2`

	var m models.TeamMember
	err := r.db.QueryRowContext(ctx, query, teamID, playerID).Scan(&m.ID, &m.TeamID, &m.PlayerID, &m.Role, &m.JoinedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *postgresMemberRepository) ListTeamIDsByPlayer(ctx context.Context, playerID string) ([]string, error) {
	query := `SELECT team_id FROM team_members WHERE player_id = $1`

	rows, err := r.db.QueryContext(ctx, query, playerID)
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
