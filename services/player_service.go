package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/shoaibhussa1n/Futsal-Connect/models"
	"github.com/shoaibhussa1n/Futsal-Connect/repositories"
	"github.com/shoaibhussa1n/Futsal-Connect/storage"
)

type PlayerService interface {
	// Create registers the player card for the caller's profile. One player
	// per profile.
	Create(ctx context.Context, userID string, player *models.Player) (*models.Player, error)
	GetByID(ctx context.Context, id string) (*models.Player, error)
	// GetByUserID resolves the auth subject to its player card.
	GetByUserID(ctx context.Context, userID string) (*models.Player, error)
	List(ctx context.Context, filter repositories.PlayerFilter) ([]*models.Player, error)
	Update(ctx context.Context, userID string, player *models.Player) (*models.Player, error)
	UploadPhoto(ctx context.Context, userID, fileName, contentType string, file io.Reader) (*models.Player, error)
}

type playerService struct {
	playerRepo  repositories.PlayerRepository
	profileRepo repositories.ProfileRepository
	uploader    storage.FileUploader
}

func NewPlayerService(
	playerRepo repositories.PlayerRepository,
	profileRepo repositories.ProfileRepository,
	uploader storage.FileUploader,
) PlayerService {
	return &playerService{playerRepo: playerRepo, profileRepo: profileRepo, uploader: uploader}
}

func (s *playerService) Create(ctx context.Context, userID string, player *models.Player) (*models.Player, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("fetching profile for user: %w", err)
	}

	if player.SkillLevel < 1 || player.SkillLevel > 10 || player.City == "" {
		return nil, ErrValidationFailed
	}
	if player.Rating == 0 {
		player.Rating = 5.0
	}
	player.ProfileID = profile.ID

	if err := s.playerRepo.Create(ctx, player); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPlayerProfileConflict):
			return nil, ErrPlayerProfileExists
		case errors.Is(err, repositories.ErrPlayerProfileInvalid):
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("creating player: %w", err)
	}
	presentPlayer(s.uploader, player)
	return player, nil
}

func (s *playerService) GetByID(ctx context.Context, id string) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("fetching player %s: %w", id, err)
	}
	if profile, profileErr := s.profileRepo.GetByID(ctx, player.ProfileID); profileErr == nil {
		player.Profile = profile
	}
	presentPlayer(s.uploader, player)
	return player, nil
}

func (s *playerService) GetByUserID(ctx context.Context, userID string) (*models.Player, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("fetching profile for user: %w", err)
	}
	player, err := s.playerRepo.GetByProfileID(ctx, profile.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("fetching player for profile %s: %w", profile.ID, err)
	}
	player.Profile = profile
	presentPlayer(s.uploader, player)
	return player, nil
}

func (s *playerService) List(ctx context.Context, filter repositories.PlayerFilter) ([]*models.Player, error) {
	players, err := s.playerRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing players: %w", err)
	}
	for _, player := range players {
		presentPlayer(s.uploader, player)
	}
	return players, nil
}

func (s *playerService) Update(ctx context.Context, userID string, player *models.Player) (*models.Player, error) {
	current, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if player.SkillLevel < 1 || player.SkillLevel > 10 || player.City == "" {
		return nil, ErrValidationFailed
	}

	current.Position = player.Position
	current.SkillLevel = player.SkillLevel
	current.Age = player.Age
	current.City = player.City
	current.AvailabilityDays = player.AvailabilityDays
	current.PreferredTime = player.PreferredTime
	current.Bio = player.Bio

	if err := s.playerRepo.Update(ctx, current); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("updating player %s: %w", current.ID, err)
	}
	presentPlayer(s.uploader, current)
	return current, nil
}

func (s *playerService) UploadPhoto(ctx context.Context, userID, fileName, contentType string, file io.Reader) (*models.Player, error) {
	player, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := objectKey("players", player.ID, fileName)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("uploading photo for player %s: %w", player.ID, err)
	}

	oldKey := player.PhotoKey
	if err := s.playerRepo.UpdatePhotoKey(ctx, player.ID, &result.Key); err != nil {
		return nil, fmt.Errorf("storing photo key for player %s: %w", player.ID, err)
	}
	if oldKey != nil && *oldKey != "" {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	player.PhotoKey = &result.Key
	presentPlayer(s.uploader, player)
	return player, nil
}
