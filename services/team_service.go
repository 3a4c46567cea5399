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

type TeamService interface {
	// Create registers a team with the calling player as captain and first
	// member.
	Create(ctx context.Context, captainID string, team *models.Team) (*models.Team, error)
	GetByID(ctx context.Context, id string) (*models.Team, error)
	List(ctx context.Context, filter repositories.TeamFilter) ([]*models.Team, error)
	Update(ctx context.Context, playerID string, team *models.Team) (*models.Team, error)
	Delete(ctx context.Context, playerID, teamID string) error

	AddMember(ctx context.Context, playerID, teamID, newPlayerID string) error
	RemoveMember(ctx context.Context, playerID, teamID, memberPlayerID string) error
	ListMembers(ctx context.Context, teamID string) ([]*models.TeamMember, error)

	UploadLogo(ctx context.Context, playerID, teamID, fileName, contentType string, file io.Reader) (*models.Team, error)
}

type teamService struct {
	teamRepo   repositories.TeamRepository
	memberRepo repositories.MemberRepository
	uploader   storage.FileUploader
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	memberRepo repositories.MemberRepository,
	uploader storage.FileUploader,
) TeamService {
	return &teamService{teamRepo: teamRepo, memberRepo: memberRepo, uploader: uploader}
}

func (s *teamService) Create(ctx context.Context, captainID string, team *models.Team) (*models.Team, error) {
	if team.Name == "" {
		return nil, ErrTeamNameRequired
	}
	team.CaptainID = captainID
	if team.Rating == 0 {
		team.Rating = 5.0
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, ErrTeamNameConflict
		case errors.Is(err, repositories.ErrTeamCaptainInvalid):
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("creating team: %w", err)
	}

	member := &models.TeamMember{
		TeamID:   team.ID,
		PlayerID: captainID,
		Role:     models.TeamRoleCaptain,
	}
	if err := s.memberRepo.Add(ctx, member); err != nil && !errors.Is(err, repositories.ErrMemberConflict) {
		return nil, fmt.Errorf("adding captain to team %s: %w", team.ID, err)
	}

	presentTeam(s.uploader, team)
	return team, nil
}

func (s *teamService) GetByID(ctx context.Context, id string) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("fetching team %s: %w", id, err)
	}

	members, err := s.memberRepo.ListByTeam(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing members of team %s: %w", id, err)
	}
	team.Members = make([]models.TeamMember, 0, len(members))
	for _, member := range members {
		team.Members = append(team.Members, *member)
	}

	presentTeam(s.uploader, team)
	return team, nil
}

func (s *teamService) List(ctx context.Context, filter repositories.TeamFilter) ([]*models.Team, error) {
	teams, err := s.teamRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}
	for _, team := range teams {
		presentTeam(s.uploader, team)
	}
	return teams, nil
}

func (s *teamService) Update(ctx context.Context, playerID string, team *models.Team) (*models.Team, error) {
	current, err := s.requireCaptain(ctx, playerID, team.ID)
	if err != nil {
		return nil, err
	}
	if team.Name == "" {
		return nil, ErrTeamNameRequired
	}

	current.Name = team.Name
	current.AgeGroup = team.AgeGroup
	current.TeamLevel = team.TeamLevel

	if err := s.teamRepo.Update(ctx, current); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("updating team %s: %w", current.ID, err)
	}
	presentTeam(s.uploader, current)
	return current, nil
}

func (s *teamService) Delete(ctx context.Context, playerID, teamID string) error {
	team, err := s.requireCaptain(ctx, playerID, teamID)
	if err != nil {
		return err
	}
	if err := s.teamRepo.Delete(ctx, teamID); err != nil {
		return fmt.Errorf("deleting team %s: %w", teamID, err)
	}
	if team.LogoKey != nil && *team.LogoKey != "" {
		_ = s.uploader.Delete(ctx, *team.LogoKey)
	}
	return nil
}

func (s *teamService) AddMember(ctx context.Context, playerID, teamID, newPlayerID string) error {
	if _, err := s.requireCaptain(ctx, playerID, teamID); err != nil {
		return err
	}
	member := &models.TeamMember{TeamID: teamID, PlayerID: newPlayerID}
	if err := s.memberRepo.Add(ctx, member); err != nil {
		switch {
		case errors.Is(err, repositories.ErrMemberConflict):
			return ErrMemberConflict
		case errors.Is(err, repositories.ErrMemberInvalid):
			return ErrPlayerNotFound
		}
		return fmt.Errorf("adding member to team %s: %w", teamID, err)
	}
	return nil
}

func (s *teamService) RemoveMember(ctx context.Context, playerID, teamID, memberPlayerID string) error {
	// Players may leave on their own; removing anyone else takes the captain.
	if playerID != memberPlayerID {
		if _, err := s.requireCaptain(ctx, playerID, teamID); err != nil {
			return err
		}
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("fetching team %s: %w", teamID, err)
	}
	if team.CaptainID == memberPlayerID {
		return ErrForbiddenOperation
	}

	if err := s.memberRepo.Remove(ctx, teamID, memberPlayerID); err != nil {
		if errors.Is(err, repositories.ErrMemberNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("removing member from team %s: %w", teamID, err)
	}
	return nil
}

func (s *teamService) ListMembers(ctx context.Context, teamID string) ([]*models.TeamMember, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("fetching team %s: %w", teamID, err)
	}
	return s.memberRepo.ListByTeam(ctx, teamID)
}

func (s *teamService) UploadLogo(ctx context.Context, playerID, teamID, fileName, contentType string, file io.Reader) (*models.Team, error) {
	team, err := s.requireCaptain(ctx, playerID, teamID)
	if err != nil {
		return nil, err
	}

	key := objectKey("teams", team.ID, fileName)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("uploading logo for team %s: %w", team.ID, err)
	}

	oldKey := team.LogoKey
	if err := s.teamRepo.UpdateLogoKey(ctx, team.ID, &result.Key); err != nil {
		return nil, fmt.Errorf("storing logo key for team %s: %w", team.ID, err)
	}
	if oldKey != nil && *oldKey != "" {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	team.LogoKey = &result.Key
	presentTeam(s.uploader, team)
	return team, nil
}

func (s *teamService) requireCaptain(ctx context.Context, playerID, teamID string) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("fetching team %s: %w", teamID, err)
	}
	if team.CaptainID != playerID {
		return nil, ErrCaptainActionForbidden
	}
	return team, nil
}
