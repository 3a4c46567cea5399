package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/shoaibhussa1n/Futsal-Connect/models"
	"github.com/shoaibhussa1n/Futsal-Connect/repositories"
	"github.com/shoaibhussa1n/Futsal-Connect/storage"
)

const defaultLeaderboardSize = 10

// Leaderboard bundles the team standings and the top scorer table served
// on the landing screens.
type Leaderboard struct {
	Teams      []*models.Team   `json:"teams"`
	TopScorers []*models.Player `json:"top_scorers"`
}

type LeaderboardService interface {
	Get(ctx context.Context, limit int) (*Leaderboard, error)
}

type leaderboardService struct {
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
}

func NewLeaderboardService(
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	uploader storage.FileUploader,
) LeaderboardService {
	return &leaderboardService{teamRepo: teamRepo, playerRepo: playerRepo, uploader: uploader}
}

// Get fetches both tables concurrently.
func (s *leaderboardService) Get(ctx context.Context, limit int) (*Leaderboard, error) {
	if limit <= 0 {
		limit = defaultLeaderboardSize
	}

	board := &Leaderboard{}
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		teams, err := s.teamRepo.ListTop(groupCtx, limit)
		if err != nil {
			return fmt.Errorf("listing top teams: %w", err)
		}
		board.Teams = teams
		return nil
	})
	group.Go(func() error {
		players, err := s.playerRepo.ListTopScorers(groupCtx, limit)
		if err != nil {
			return fmt.Errorf("listing top scorers: %w", err)
		}
		board.TopScorers = players
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	for _, team := range board.Teams {
		presentTeam(s.uploader, team)
	}
	for _, player := range board.TopScorers {
		presentPlayer(s.uploader, player)
	}
	return board, nil
}
