package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shoaibhussa1n/Futsal-Connect/models"
	"github.com/shoaibhussa1n/Futsal-Connect/repositories"
)

type TournamentService interface {
	// Create registers a tournament awaiting admin approval.
	Create(ctx context.Context, organizerID string, tournament *models.Tournament) (*models.Tournament, error)
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	List(ctx context.Context, filter repositories.TournamentFilter) ([]*models.Tournament, error)

	// Register enters a team (team tournaments) or a player (individual
	// tournaments) into an open tournament.
	Register(ctx context.Context, registration *models.TournamentRegistration) (*models.TournamentRegistration, error)
	ListRegistrations(ctx context.Context, tournamentID string) ([]*models.TournamentRegistration, error)

	// StartDue moves approved tournaments past their start date to
	// in_progress. Driven by the background scheduler.
	StartDue(ctx context.Context) error
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	logger         *slog.Logger
}

func NewTournamentService(tournamentRepo repositories.TournamentRepository, logger *slog.Logger) TournamentService {
	return &tournamentService{tournamentRepo: tournamentRepo, logger: logger}
}

func (s *tournamentService) Create(ctx context.Context, organizerID string, tournament *models.Tournament) (*models.Tournament, error) {
	if tournament.Name == "" || tournament.MaxTeams < 2 {
		return nil, ErrValidationFailed
	}
	if tournament.StartDate.Before(time.Now()) {
		return nil, ErrValidationFailed
	}
	tournament.OrganizerID = organizerID
	if tournament.OrganizerType == "" {
		tournament.OrganizerType = models.OrganizerIndividual
	}

	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, fmt.Errorf("creating tournament: %w", err)
	}
	return tournament, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("fetching tournament %s: %w", id, err)
	}
	return tournament, nil
}

func (s *tournamentService) List(ctx context.Context, filter repositories.TournamentFilter) ([]*models.Tournament, error) {
	return s.tournamentRepo.List(ctx, filter)
}

func (s *tournamentService) Register(ctx context.Context, registration *models.TournamentRegistration) (*models.TournamentRegistration, error) {
	if registration.TeamID == nil && registration.PlayerID == nil {
		return nil, ErrValidationFailed
	}

	tournament, err := s.GetByID(ctx, registration.TournamentID)
	if err != nil {
		return nil, err
	}
	if tournament.Status != models.TournamentStatusOpen && tournament.Status != models.TournamentStatusFilling {
		return nil, ErrRegistrationNotOpen
	}
	if tournament.CurrentTeams >= tournament.MaxTeams {
		return nil, ErrTournamentFull
	}

	if err := s.tournamentRepo.CreateRegistration(ctx, registration); err != nil {
		switch {
		case errors.Is(err, repositories.ErrRegistrationConflict):
			return nil, ErrRegistrationConflict
		case errors.Is(err, repositories.ErrRegistrationInvalid):
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("registering for tournament %s: %w", registration.TournamentID, err)
	}

	if err := s.tournamentRepo.IncrementCurrentTeams(ctx, registration.TournamentID); err != nil {
		s.logger.Error("tournament team counter update failed",
			"tournament_id", registration.TournamentID, "error", err)
	}
	return registration, nil
}

func (s *tournamentService) ListRegistrations(ctx context.Context, tournamentID string) ([]*models.TournamentRegistration, error) {
	if _, err := s.GetByID(ctx, tournamentID); err != nil {
		return nil, err
	}
	return s.tournamentRepo.ListRegistrations(ctx, tournamentID)
}

func (s *tournamentService) StartDue(ctx context.Context) error {
	ids, err := s.tournamentRepo.StartDueTournaments(ctx)
	if err != nil {
		return fmt.Errorf("starting due tournaments: %w", err)
	}
	for _, id := range ids {
		s.logger.Info("tournament started", "tournament_id", id)
	}
	return nil
}
