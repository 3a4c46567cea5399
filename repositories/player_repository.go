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
	ErrPlayerNotFound        = errors.New("player not found")
	ErrPlayerProfileConflict = errors.New("player already exists for this profile")
	ErrPlayerProfileInvalid  = errors.New("player profile conflict or invalid")
)

type PlayerFilter struct {
	Position *string
	MinSkill *int
	MaxSkill *int
	City     *string
}

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id string) (*models.Player, error)
	GetByProfileID(ctx context.Context, profileID string) (*models.Player, error)
	List(ctx context.Context, filter PlayerFilter) ([]*models.Player, error)
	ListTopScorers(ctx context.Context, limit int) ([]*models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	UpdatePhotoKey(ctx context.Context, id string, key *string) error

	// AddGoalsAndRating applies relative increments against the stored row:
	// career goals grow by goals and the rating moves by ratingDelta,
	// clamped to [1.0, 10.0] in the same statement.
	AddGoalsAndRating(ctx context.Context, id string, goals int, ratingDelta float64) error

	// ApplyMVPBonus bumps the rating by ratingDelta (clamped) and
	// increments the career MVP counter.
	ApplyMVPBonus(ctx context.Context, id string, ratingDelta float64) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

const playerColumns = `id, profile_id, position, skill_level, age, city, availability_days, preferred_time, bio,
	matches_played, goals, assists, mvps, rating, photo_key, created_at, updated_at`

func (r *postgresPlayerRepository) scan(row interface{ Scan(...interface{}) error }) (*models.Player, error) {
	var p models.Player
	err := row.Scan(
		&p.ID, &p.ProfileID, &p.Position, &p.SkillLevel, &p.Age, &p.City,
		pq.Array(&p.AvailabilityDays), &p.PreferredTime, &p.Bio,
		&p.MatchesPlayed, &p.Goals, &p.Assists, &p.MVPs, &p.Rating,
		&p.PhotoKey, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	if player.ID == "" {
		player.ID = uuid.NewString()
	}
	query := `
		INSERT INTO players
			(id, profile_id, position, skill_level, age, city, availability_days, preferred_time, bio, rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		player.ID, player.ProfileID, player.Position, player.SkillLevel, player.Age,
		player.City, pq.Array(player.AvailabilityDays), player.PreferredTime, player.Bio, player.Rating,
	).Scan(&player.CreatedAt, &player.UpdatedAt)

	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			return ErrPlayerProfileConflict
		case "23503":
			return ErrPlayerProfileInvalid
		}
	}
	return err
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id string) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`
	return r.scan(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresPlayerRepository) GetByProfileID(ctx context.Context, profileID string) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE profile_id = $1`
	return r.scan(r.db.QueryRowContext(ctx, query, profileID))
}

func (r *postgresPlayerRepository) List(ctx context.Context, filter PlayerFilter) ([]*models.Player, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + playerColumns + ` FROM players WHERE 1=1`)

	args := make([]interface{}, 0, 4)
	placeholder := 1

	if filter.Position != nil {
		queryBuilder.WriteString(" AND position = $" + strconv.Itoa(placeholder))
		args = append(args, *filter.Position)
		placeholder++
	}
	if filter.MinSkill != nil {
		queryBuilder.WriteString(" AND skill_level >= $" + strconv.Itoa(placeholder))
		args = append(args, *filter.MinSkill)
		placeholder++
	}
	if filter.MaxSkill != nil {
		queryBuilder.WriteString(" AND skill_level <= $" + strconv.Itoa(placeholder))
		args = append(args, *filter.MaxSkill)
		placeholder++
	}
	if filter.City != nil {
		queryBuilder.WriteString(" AND city = $" + strconv.Itoa(placeholder))
		args = append(args, *filter.City)
		placeholder++
	}

	queryBuilder.WriteString(" ORDER BY rating DESC")

	return r.queryPlayers(ctx, queryBuilder.String(), args...)
}

func (r *postgresPlayerRepository) ListTopScorers(ctx context.Context, limit int) ([]*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players ORDER BY goals DESC, rating DESC LIMIT $1`
	return r.queryPlayers(ctx, query, limit)
}

func (r *postgresPlayerRepository) queryPlayers(ctx context.Context, query string, args ...interface{}) ([]*models.Player, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]*models.Player, 0)
	for rows.Next() {
		p, scanErr := r.scan(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		players = append(players, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}

func (r *postgresPlayerRepository) Update(ctx context.Context, player *models.Player) error {
	query := `
		UPDATE players
		SET position = $1, skill_level = $2, age = $3, city = $4, availability_days = $5,
			preferred_time = $6, bio = $7, updated_at = NOW()
		WHERE id = $8`

	result, err := r.db.ExecContext(ctx, query,
		player.Position, player.SkillLevel, player.Age, player.City,
		pq.Array(player.AvailabilityDays), player.PreferredTime, player.Bio, player.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) UpdatePhotoKey(ctx context.Context, id string, key *string) error {
	query := `UPDATE players SET photo_key = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, key, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) AddGoalsAndRating(ctx context.Context, id string, goals int, ratingDelta float64) error {
	query := `
		UPDATE players
		SET goals = goals + $1,
			rating = LEAST(10.0, GREATEST(1.0, rating + $2)),
			updated_at = NOW()
		WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, goals, ratingDelta, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) ApplyMVPBonus(ctx context.Context, id string, ratingDelta float64) error {
	query := `
		UPDATE players
		SET mvps = mvps + 1,
			rating = LEAST(10.0, GREATEST(1.0, rating + $1)),
			updated_at = NOW()
		WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, ratingDelta, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}
