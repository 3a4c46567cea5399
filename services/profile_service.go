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

type ProfileService interface {
	// Create registers the application profile for an auth provider subject.
	Create(ctx context.Context, userID string, profile *models.Profile) (*models.Profile, error)
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	Update(ctx context.Context, userID string, profile *models.Profile) (*models.Profile, error)
	UploadAvatar(ctx context.Context, userID, fileName, contentType string, file io.Reader) (*models.Profile, error)
}

type profileService struct {
	profileRepo repositories.ProfileRepository
	uploader    storage.FileUploader
}

func NewProfileService(profileRepo repositories.ProfileRepository, uploader storage.FileUploader) ProfileService {
	return &profileService{profileRepo: profileRepo, uploader: uploader}
}

func (s *profileService) Create(ctx context.Context, userID string, profile *models.Profile) (*models.Profile, error) {
	if userID == "" {
		return nil, ErrValidationFailed
	}
	profile.UserID = userID

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		if errors.Is(err, repositories.ErrProfileUserConflict) {
			return nil, ErrProfileExists
		}
		return nil, fmt.Errorf("creating profile: %w", err)
	}
	presentProfile(s.uploader, profile)
	return profile, nil
}

func (s *profileService) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("fetching profile %s: %w", id, err)
	}
	presentProfile(s.uploader, profile)
	return profile, nil
}

func (s *profileService) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("fetching profile for user: %w", err)
	}
	presentProfile(s.uploader, profile)
	return profile, nil
}

func (s *profileService) Update(ctx context.Context, userID string, profile *models.Profile) (*models.Profile, error) {
	current, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	current.FullName = profile.FullName
	current.Email = profile.Email
	current.Phone = profile.Phone

	if err := s.profileRepo.Update(ctx, current); err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("updating profile %s: %w", current.ID, err)
	}
	presentProfile(s.uploader, current)
	return current, nil
}

func (s *profileService) UploadAvatar(ctx context.Context, userID, fileName, contentType string, file io.Reader) (*models.Profile, error) {
	profile, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := objectKey("avatars", profile.ID, fileName)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("uploading avatar for profile %s: %w", profile.ID, err)
	}

	oldKey := profile.AvatarKey
	if err := s.profileRepo.UpdateAvatarKey(ctx, profile.ID, &result.Key); err != nil {
		return nil, fmt.Errorf("storing avatar key for profile %s: %w", profile.ID, err)
	}
	if oldKey != nil && *oldKey != "" {
		// Old object removal is best effort, the new key is already live.
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	profile.AvatarKey = &result.Key
	presentProfile(s.uploader, profile)
	return profile, nil
}
