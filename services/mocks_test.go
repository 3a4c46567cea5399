package services

import (
	"context"
	"io"

	"github.com/shoaibhussa1n/Futsal-Connect/models"
	"github.com/shoaibhussa1n/Futsal-Connect/repositories"
	"github.com/shoaibhussa1n/Futsal-Connect/storage"
)

type fakeUploader struct {
	uploaded []string
	deleted  []string
}

func (f *fakeUploader) Upload(ctx context.Context, key, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	f.uploaded = append(f.uploaded, key)
	return &storage.UploadResult{Key: key, Location: "https://cdn.example.com/" + key}, nil
}

func (f *fakeUploader) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

type fakeMatchRepo struct {
	match     *models.Match
	getErr    error
	submitFn  func(sub repositories.ResultSubmission) (*models.Match, error)
	submitted []repositories.ResultSubmission
	mvpByID   map[string]string
	mvpErr    error
}

func (f *fakeMatchRepo) Create(ctx context.Context, match *models.Match) error {
	if match.ID == "" {
		match.ID = "match-created"
	}
	return nil
}

func (f *fakeMatchRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id string) (*models.Match, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	copied := *f.match
	return &copied, nil
}

func (f *fakeMatchRepo) List(ctx context.Context, filter repositories.MatchFilter) ([]*models.Match, error) {
	return []*models.Match{f.match}, nil
}

func (f *fakeMatchRepo) UpdateSchedule(ctx context.Context, match *models.Match) error { return nil }

func (f *fakeMatchRepo) UpdateStatus(ctx context.Context, id string, status models.MatchStatus) error {
	f.match.Status = status
	return nil
}

func (f *fakeMatchRepo) SetMVP(ctx context.Context, id string, playerID string) error {
	if f.mvpErr != nil {
		return f.mvpErr
	}
	if f.mvpByID == nil {
		f.mvpByID = make(map[string]string)
	}
	f.mvpByID[id] = playerID
	return nil
}

func (f *fakeMatchRepo) SubmitTeamResult(ctx context.Context, exec repositories.SQLExecutor, sub repositories.ResultSubmission) (*models.Match, error) {
	f.submitted = append(f.submitted, sub)
	return f.submitFn(sub)
}

type replaceCall struct {
	matchID string
	teamID  string
	scorers []*models.GoalScorer
}

type fakeScorerRepo struct {
	stored   []*models.GoalScorer
	listErr  error
	replaced []replaceCall
}

func (f *fakeScorerRepo) ListByMatch(ctx context.Context, exec repositories.SQLExecutor, matchID string) ([]*models.GoalScorer, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.stored, nil
}

func (f *fakeScorerRepo) ReplaceForTeam(ctx context.Context, exec repositories.SQLExecutor, matchID, teamID string, scorers []*models.GoalScorer) error {
	f.replaced = append(f.replaced, replaceCall{matchID: matchID, teamID: teamID, scorers: scorers})
	return nil
}

type recordCall struct {
	teamID              string
	wins, losses, draws int
}

type ratingCall struct {
	teamID string
	delta  float64
}

type goalsCall struct {
	teamID string
	goals  int
}

type fakeTeamRepo struct {
	teams map[string]*models.Team

	recordCalls []recordCall
	ratingCalls []ratingCall
	goalsCalls  []goalsCall
	mvpTeams    []string

	recordErr error
}

func newFakeTeamRepo(teams ...*models.Team) *fakeTeamRepo {
	repo := &fakeTeamRepo{teams: make(map[string]*models.Team)}
	for _, team := range teams {
		repo.teams[team.ID] = team
	}
	return repo
}

func (f *fakeTeamRepo) Create(ctx context.Context, team *models.Team) error {
	if team.ID == "" {
		team.ID = "team-created"
	}
	f.teams[team.ID] = team
	return nil
}

func (f *fakeTeamRepo) GetByID(ctx context.Context, id string) (*models.Team, error) {
	team, ok := f.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return team, nil
}

func (f *fakeTeamRepo) GetByCaptainID(ctx context.Context, captainID string) (*models.Team, error) {
	for _, team := range f.teams {
		if team.CaptainID == captainID {
			return team, nil
		}
	}
	return nil, repositories.ErrTeamNotFound
}

func (f *fakeTeamRepo) List(ctx context.Context, filter repositories.TeamFilter) ([]*models.Team, error) {
	teams := make([]*models.Team, 0, len(f.teams))
	for _, team := range f.teams {
		teams = append(teams, team)
	}
	return teams, nil
}

func (f *fakeTeamRepo) ListTop(ctx context.Context, limit int) ([]*models.Team, error) {
	return f.List(ctx, repositories.TeamFilter{})
}

func (f *fakeTeamRepo) Update(ctx context.Context, team *models.Team) error { return nil }

func (f *fakeTeamRepo) UpdateLogoKey(ctx context.Context, id string, key *string) error { return nil }

func (f *fakeTeamRepo) Delete(ctx context.Context, id string) error {
	delete(f.teams, id)
	return nil
}

func (f *fakeTeamRepo) IncrementRecord(ctx context.Context, id string, wins, losses, draws int) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	f.recordCalls = append(f.recordCalls, recordCall{teamID: id, wins: wins, losses: losses, draws: draws})
	return nil
}

func (f *fakeTeamRepo) AdjustRating(ctx context.Context, id string, delta float64) error {
	f.ratingCalls = append(f.ratingCalls, ratingCall{teamID: id, delta: delta})
	return nil
}

func (f *fakeTeamRepo) AddGoals(ctx context.Context, id string, goals int) error {
	f.goalsCalls = append(f.goalsCalls, goalsCall{teamID: id, goals: goals})
	return nil
}

func (f *fakeTeamRepo) IncrementMVPs(ctx context.Context, id string) error {
	f.mvpTeams = append(f.mvpTeams, id)
	return nil
}

type playerGoalsCall struct {
	playerID string
	goals    int
	delta    float64
}

type bonusCall struct {
	playerID string
	delta    float64
}

type fakePlayerRepo struct {
	players    map[string]*models.Player
	goalsCalls []playerGoalsCall
	mvpBonus   []bonusCall
	scorersErr error
}

func newFakePlayerRepo(players ...*models.Player) *fakePlayerRepo {
	repo := &fakePlayerRepo{players: make(map[string]*models.Player)}
	for _, player := range players {
		repo.players[player.ID] = player
	}
	return repo
}

func (f *fakePlayerRepo) Create(ctx context.Context, player *models.Player) error {
	if player.ID == "" {
		player.ID = "player-created"
	}
	f.players[player.ID] = player
	return nil
}

func (f *fakePlayerRepo) GetByID(ctx context.Context, id string) (*models.Player, error) {
	player, ok := f.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	return player, nil
}

func (f *fakePlayerRepo) GetByProfileID(ctx context.Context, profileID string) (*models.Player, error) {
	for _, player := range f.players {
		if player.ProfileID == profileID {
			return player, nil
		}
	}
	return nil, repositories.ErrPlayerNotFound
}

func (f *fakePlayerRepo) List(ctx context.Context, filter repositories.PlayerFilter) ([]*models.Player, error) {
	players := make([]*models.Player, 0, len(f.players))
	for _, player := range f.players {
		players = append(players, player)
	}
	return players, nil
}

func (f *fakePlayerRepo) ListTopScorers(ctx context.Context, limit int) ([]*models.Player, error) {
	if f.scorersErr != nil {
		return nil, f.scorersErr
	}
	return f.List(ctx, repositories.PlayerFilter{})
}

func (f *fakePlayerRepo) Update(ctx context.Context, player *models.Player) error { return nil }

func (f *fakePlayerRepo) UpdatePhotoKey(ctx context.Context, id string, key *string) error {
	return nil
}

func (f *fakePlayerRepo) AddGoalsAndRating(ctx context.Context, id string, goals int, ratingDelta float64) error {
	f.goalsCalls = append(f.goalsCalls, playerGoalsCall{playerID: id, goals: goals, delta: ratingDelta})
	return nil
}

func (f *fakePlayerRepo) ApplyMVPBonus(ctx context.Context, id string, ratingDelta float64) error {
	f.mvpBonus = append(f.mvpBonus, bonusCall{playerID: id, delta: ratingDelta})
	return nil
}

type fakeMemberRepo struct {
	members map[string]*models.TeamMember // keyed teamID+"|"+playerID
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[string]*models.TeamMember)}
}

func (f *fakeMemberRepo) put(teamID, playerID string) {
	f.members[teamID+"|"+playerID] = &models.TeamMember{TeamID: teamID, PlayerID: playerID}
}

func (f *fakeMemberRepo) Add(ctx context.Context, member *models.TeamMember) error {
	key := member.TeamID + "|" + member.PlayerID
	if _, ok := f.members[key]; ok {
		return repositories.ErrMemberConflict
	}
	f.members[key] = member
	return nil
}

func (f *fakeMemberRepo) Remove(ctx context.Context, teamID, playerID string) error {
	key := teamID + "|" + playerID
	if _, ok := f.members[key]; !ok {
		return repositories.ErrMemberNotFound
	}
	delete(f.members, key)
	return nil
}

func (f *fakeMemberRepo) ListByTeam(ctx context.Context, teamID string) ([]*models.TeamMember, error) {
	members := make([]*models.TeamMember, 0)
	for _, member := range f.members {
		if member.TeamID == teamID {
			members = append(members, member)
		}
	}
	return members, nil
}

func (f *fakeMemberRepo) GetByTeamAndPlayer(ctx context.Context, teamID, playerID string) (*models.TeamMember, error) {
	member, ok := f.members[teamID+"|"+playerID]
	if !ok {
		return nil, repositories.ErrMemberNotFound
	}
	return member, nil
}

func (f *fakeMemberRepo) ListTeamIDsByPlayer(ctx context.Context, playerID string) ([]string, error) {
	ids := make([]string, 0)
	for _, member := range f.members {
		if member.PlayerID == playerID {
			ids = append(ids, member.TeamID)
		}
	}
	return ids, nil
}

type finalizeCall struct {
	match   *models.Match
	scorers []*models.GoalScorer
}

type fakeRatingService struct {
	calls []finalizeCall
}

func (f *fakeRatingService) FinalizeMatch(ctx context.Context, match *models.Match, scorers []*models.GoalScorer) {
	f.calls = append(f.calls, finalizeCall{match: match, scorers: scorers})
}
