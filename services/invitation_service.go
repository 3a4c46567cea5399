package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shoaibhussa1n/Futsal-Connect/models"
	"github.com/shoaibhussa1n/Futsal-Connect/repositories"
)

type InvitationService interface {
	// Invite sends a team or per-match invitation to a player. The sending
	// team's captain performs it.
	Invite(ctx context.Context, captainID string, invitation *models.PlayerInvitation) (*models.PlayerInvitation, error)
	ListPending(ctx context.Context, playerID string) ([]*models.PlayerInvitation, error)

	// Accept joins the invited player to the team for team invitations;
	// match invitations only flip the status, the roster stays untouched.
	Accept(ctx context.Context, playerID, invitationID string) error
	Reject(ctx context.Context, playerID, invitationID string) error
}

type invitationService struct {
	invitationRepo repositories.InvitationRepository
	teamRepo       repositories.TeamRepository
	memberRepo     repositories.MemberRepository
}

func NewInvitationService(
	invitationRepo repositories.InvitationRepository,
	teamRepo repositories.TeamRepository,
	memberRepo repositories.MemberRepository,
) InvitationService {
	return &invitationService{
		invitationRepo: invitationRepo,
		teamRepo:       teamRepo,
		memberRepo:     memberRepo,
	}
}

func (s *invitationService) Invite(ctx context.Context, captainID string, invitation *models.PlayerInvitation) (*models.PlayerInvitation, error) {
	if invitation.TeamID == "" || invitation.PlayerID == "" {
		return nil, ErrValidationFailed
	}
	if invitation.InvitationType == models.InvitationTypeMatch && invitation.MatchID == nil {
		return nil, ErrValidationFailed
	}

	team, err := s.teamRepo.GetByID(ctx, invitation.TeamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("fetching team %s: %w", invitation.TeamID, err)
	}
	if team.CaptainID != captainID {
		return nil, ErrCaptainActionForbidden
	}

	if invitation.InvitationType == models.InvitationTypeTeam {
		if _, err := s.memberRepo.GetByTeamAndPlayer(ctx, invitation.TeamID, invitation.PlayerID); err == nil {
			return nil, ErrMemberConflict
		} else if !errors.Is(err, repositories.ErrMemberNotFound) {
			return nil, fmt.Errorf("checking membership: %w", err)
		}
	}

	if err := s.invitationRepo.Create(ctx, invitation); err != nil {
		if errors.Is(err, repositories.ErrInvitationInvalid) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("creating invitation: %w", err)
	}
	return invitation, nil
}

func (s *invitationService) ListPending(ctx context.Context, playerID string) ([]*models.PlayerInvitation, error) {
	return s.invitationRepo.ListPendingByPlayer(ctx, playerID)
}

func (s *invitationService) Accept(ctx context.Context, playerID, invitationID string) error {
	invitation, err := s.pendingFor(ctx, playerID, invitationID)
	if err != nil {
		return err
	}

	if invitation.InvitationType == models.InvitationTypeTeam {
		member := &models.TeamMember{TeamID: invitation.TeamID, PlayerID: playerID}
		if err := s.memberRepo.Add(ctx, member); err != nil && !errors.Is(err, repositories.ErrMemberConflict) {
			return fmt.Errorf("joining team %s: %w", invitation.TeamID, err)
		}
	}

	return s.invitationRepo.UpdateStatus(ctx, invitationID, models.InvitationStatusAccepted)
}

func (s *invitationService) Reject(ctx context.Context, playerID, invitationID string) error {
	if _, err := s.pendingFor(ctx, playerID, invitationID); err != nil {
		return err
	}
	return s.invitationRepo.UpdateStatus(ctx, invitationID, models.InvitationStatusRejected)
}

func (s *invitationService) pendingFor(ctx context.Context, playerID, invitationID string) (*models.PlayerInvitation, error) {
	invitation, err := s.invitationRepo.GetByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, repositories.ErrInvitationNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("fetching invitation %s: %w", invitationID, err)
	}
	if invitation.PlayerID != playerID {
		return nil, ErrForbiddenOperation
	}
	if invitation.Status != models.InvitationStatusPending {
		return nil, ErrInvitationNotPending
	}
	return invitation, nil
}
