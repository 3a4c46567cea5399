package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shoaibhussa1n/Futsal-Connect/models"
	"github.com/shoaibhussa1n/Futsal-Connect/repositories"
)

type MatchRequestService interface {
	// Create sends a match request from the caller's team to another team.
	// Only the requester team's captain may send it.
	Create(ctx context.Context, playerID string, request *models.MatchRequest) (*models.MatchRequest, error)
	GetByID(ctx context.Context, id string) (*models.MatchRequest, error)
	ListByTeam(ctx context.Context, teamID string) ([]*models.MatchRequest, error)

	// Accept is performed by the requested team's captain and creates the
	// pending match both teams will later report on.
	Accept(ctx context.Context, playerID, requestID string) (*models.Match, error)
	Reject(ctx context.Context, playerID, requestID string) error
	Cancel(ctx context.Context, playerID, requestID string) error
}

type matchRequestService struct {
	requestRepo  repositories.MatchRequestRepository
	teamRepo     repositories.TeamRepository
	matchService MatchService
}

func NewMatchRequestService(
	requestRepo repositories.MatchRequestRepository,
	teamRepo repositories.TeamRepository,
	matchService MatchService,
) MatchRequestService {
	return &matchRequestService{
		requestRepo:  requestRepo,
		teamRepo:     teamRepo,
		matchService: matchService,
	}
}

func (s *matchRequestService) Create(ctx context.Context, playerID string, request *models.MatchRequest) (*models.MatchRequest, error) {
	if request.RequesterTeamID == "" || request.RequestedTeamID == "" {
		return nil, ErrValidationFailed
	}
	if request.RequesterTeamID == request.RequestedTeamID {
		return nil, ErrSelfMatchRequest
	}
	if err := s.requireCaptain(ctx, playerID, request.RequesterTeamID); err != nil {
		return nil, err
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		if errors.Is(err, repositories.ErrMatchRequestInvalid) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("creating match request: %w", err)
	}
	return request, nil
}

func (s *matchRequestService) GetByID(ctx context.Context, id string) (*models.MatchRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchRequestNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("fetching match request %s: %w", id, err)
	}
	return request, nil
}

func (s *matchRequestService) ListByTeam(ctx context.Context, teamID string) ([]*models.MatchRequest, error) {
	return s.requestRepo.ListByTeam(ctx, teamID)
}

func (s *matchRequestService) Accept(ctx context.Context, playerID, requestID string) (*models.Match, error) {
	request, err := s.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != models.RequestStatusPending {
		return nil, ErrRequestNotPending
	}
	if err := s.requireCaptain(ctx, playerID, request.RequestedTeamID); err != nil {
		return nil, err
	}

	match, err := s.matchService.Create(ctx, &models.Match{
		TeamAID:       request.RequesterTeamID,
		TeamBID:       request.RequestedTeamID,
		ScheduledDate: request.ProposedDate,
		ScheduledTime: request.ProposedTime,
		Location:      request.ProposedLocation,
		Notes:         request.Notes,
	})
	if err != nil {
		return nil, err
	}

	if err := s.requestRepo.UpdateStatus(ctx, requestID, models.RequestStatusAccepted); err != nil {
		return nil, fmt.Errorf("accepting match request %s: %w", requestID, err)
	}
	return match, nil
}

func (s *matchRequestService) Reject(ctx context.Context, playerID, requestID string) error {
	return s.resolve(ctx, playerID, requestID, models.RequestStatusRejected)
}

func (s *matchRequestService) Cancel(ctx context.Context, playerID, requestID string) error {
	request, err := s.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.Status != models.RequestStatusPending {
		return ErrRequestNotPending
	}
	// Only the side that sent the request may withdraw it.
	if err := s.requireCaptain(ctx, playerID, request.RequesterTeamID); err != nil {
		return err
	}
	return s.requestRepo.UpdateStatus(ctx, requestID, models.RequestStatusCancelled)
}

func (s *matchRequestService) resolve(ctx context.Context, playerID, requestID string, status models.MatchRequestStatus) error {
	request, err := s.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.Status != models.RequestStatusPending {
		return ErrRequestNotPending
	}
	if err := s.requireCaptain(ctx, playerID, request.RequestedTeamID); err != nil {
		return err
	}
	return s.requestRepo.UpdateStatus(ctx, requestID, status)
}

func (s *matchRequestService) requireCaptain(ctx context.Context, playerID, teamID string) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("fetching team %s: %w", teamID, err)
	}
	if team.CaptainID != playerID {
		return ErrCaptainActionForbidden
	}
	return nil
}
