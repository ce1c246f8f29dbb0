package submission

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jarvisgaming/TaikoBot_Go/internal/domain"
	"github.com/jarvisgaming/TaikoBot_Go/internal/reward"
	"github.com/jarvisgaming/TaikoBot_Go/internal/upgrade"
)

// fakeSource returns a fixed score list.
type fakeSource struct {
	scores []domain.Score
	err    error
}

func (f *fakeSource) RecentScores(ctx context.Context, osuID, limit int) ([]domain.Score, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.scores, nil
}

func testUser() domain.User {
	return domain.User{
		ID:        "user-1",
		DiscordID: "discord-1",
		OsuID:     4171323,
		Username:  "jarvis",
	}
}

// testScore is a clean full-combo run: 100 300s on a 100-note 5-star map.
// Base gain: floor(300^0.6 * 6^1.2 * 0.05) = 13 exp, 2 tokens.
func testScore(beatmapID int, ts time.Time) domain.Score {
	return domain.Score{
		Username: "jarvis",
		OsuID:    4171323,
		N300s:    100,
		Accuracy: 100,
		MaxCombo: 100,
		IsPass:   true,
		Beatmap: domain.Beatmap{
			ID:         beatmapID,
			StarRating: 5,
			NumNotes:   100,
			DrainTime:  120,
		},
		Beatmapset: domain.Beatmapset{ID: beatmapID * 10, Title: "test map"},
		Timestamp:  ts,
	}
}

func zeroLevels(registry *upgrade.Registry) map[string]int {
	levels := make(map[string]int)
	for _, id := range registry.IDs() {
		levels[id] = 0
	}
	return levels
}

func newTestService(repo *FakeRepository, source ScoreSource) Service {
	registry := upgrade.NewDefaultRegistry()
	pipeline := reward.NewPipeline(registry)
	return NewService(repo, source, pipeline, reward.DefaultFormula())
}

func TestSubmitRecent_AcceptsScoreAndUpdatesProfile(t *testing.T) {
	ctx := context.Background()
	repo := NewFakeRepository()
	repo.AddUser(testUser(), zeroLevels(upgrade.NewDefaultRegistry()))

	source := &fakeSource{scores: []domain.Score{testScore(101, time.Now())}}
	svc := newTestService(repo, source)

	batch, err := svc.SubmitRecent(ctx, "discord-1", 25)
	require.NoError(t, err)

	assert.Equal(t, "jarvis", batch.Username)
	assert.Equal(t, 1, batch.Processed)
	assert.Equal(t, 1, batch.Accepted)
	require.Len(t, batch.Results, 1)

	result := batch.Results[0]
	assert.True(t, result.Accepted)
	assert.Empty(t, result.Rejection)
	assert.Equal(t, 13, result.TrackGains[domain.BarOverall])
	assert.Equal(t, 13, result.TrackGains[domain.BarNoMod])
	assert.Equal(t, 2, result.CurrencyGains[domain.CurrencyTaikoTokens])

	// Before/after snapshots bracket the change
	require.NotNil(t, result.Before)
	require.NotNil(t, result.After)
	assert.Equal(t, 0, result.Before.Bars[domain.BarOverall].TotalExp)
	assert.Equal(t, 13, result.After.Bars[domain.BarOverall].TotalExp)

	profile, err := svc.GetProfile(ctx, "discord-1")
	require.NoError(t, err)
	assert.Equal(t, 13, profile.Bars[domain.BarOverall].TotalExp)
	assert.Equal(t, 13, profile.Bars[domain.BarNoMod].TotalExp)
	assert.Equal(t, 2, profile.Balances[domain.CurrencyTaikoTokens])
}

func TestSubmitRecent_DuplicateWithinBatchRejected(t *testing.T) {
	ctx := context.Background()
	repo := NewFakeRepository()
	repo.AddUser(testUser(), zeroLevels(upgrade.NewDefaultRegistry()))

	score := testScore(101, time.Now())
	source := &fakeSource{scores: []domain.Score{score, score}}
	svc := newTestService(repo, source)

	batch, err := svc.SubmitRecent(ctx, "discord-1", 25)
	require.NoError(t, err)

	assert.Equal(t, 2, batch.Processed)
	assert.Equal(t, 1, batch.Accepted)
	assert.True(t, batch.Results[0].Accepted)
	assert.False(t, batch.Results[1].Accepted)
	assert.Contains(t, batch.Results[1].Rejection, domain.ErrMsgAlreadySubmitted)

	assert.Equal(t, 1, repo.LedgerSize())

	// Credited exactly once
	profile, err := svc.GetProfile(ctx, "discord-1")
	require.NoError(t, err)
	assert.Equal(t, 13, profile.Bars[domain.BarOverall].TotalExp)
}

func TestSubmitRecent_ResubmissionIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewFakeRepository()
	repo.AddUser(testUser(), zeroLevels(upgrade.NewDefaultRegistry()))

	source := &fakeSource{scores: []domain.Score{testScore(101, time.Now())}}
	svc := newTestService(repo, source)

	first, err := svc.SubmitRecent(ctx, "discord-1", 25)
	require.NoError(t, err)
	require.Equal(t, 1, first.Accepted)

	second, err := svc.SubmitRecent(ctx, "discord-1", 25)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Accepted)
	assert.Contains(t, second.Results[0].Rejection, domain.ErrMsgAlreadySubmitted)

	profile, err := svc.GetProfile(ctx, "discord-1")
	require.NoError(t, err)
	assert.Equal(t, 13, profile.Bars[domain.BarOverall].TotalExp)
	assert.Equal(t, 2, profile.Balances[domain.CurrencyTaikoTokens])
}

func TestSubmitRecent_ValidationGates(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	convert := testScore(201, now)
	convert.IsConvert = true

	disallowed := testScore(202, now.Add(time.Minute))
	disallowed.Mods = []domain.Mod{{Acronym: "RX"}}

	customRate := testScore(203, now.Add(2*time.Minute))
	customRate.Mods = []domain.Mod{{
		Acronym:  "DT",
		Settings: map[string]interface{}{domain.ModSettingSpeedChange: 2.0},
	}}

	afk := testScore(204, now.Add(3*time.Minute))
	afk.Accuracy = 30
	afk.N300s = 20
	afk.Misses = 80

	good := testScore(205, now.Add(4*time.Minute))

	repo := NewFakeRepository()
	repo.AddUser(testUser(), zeroLevels(upgrade.NewDefaultRegistry()))
	source := &fakeSource{scores: []domain.Score{convert, disallowed, customRate, afk, good}}
	svc := newTestService(repo, source)

	batch, err := svc.SubmitRecent(ctx, "discord-1", 25)
	require.NoError(t, err)

	// Every score processed; only the clean one counted
	assert.Equal(t, 5, batch.Processed)
	assert.Equal(t, 1, batch.Accepted)

	assert.Contains(t, batch.Results[0].Rejection, domain.ErrMsgConvertMap)
	assert.Contains(t, batch.Results[1].Rejection, domain.ErrMsgDisallowedMod)
	assert.Contains(t, batch.Results[2].Rejection, domain.ErrMsgCustomRate)
	assert.Contains(t, batch.Results[3].Rejection, domain.ErrMsgAFKScore)
	assert.True(t, batch.Results[4].Accepted)

	assert.Equal(t, 1, repo.LedgerSize())
}

func TestSubmitRecent_MalformedMapRejected(t *testing.T) {
	ctx := context.Background()
	repo := NewFakeRepository()
	repo.AddUser(testUser(), zeroLevels(upgrade.NewDefaultRegistry()))

	broken := testScore(301, time.Now())
	broken.Beatmap.NumNotes = 0
	source := &fakeSource{scores: []domain.Score{broken}}
	svc := newTestService(repo, source)

	batch, err := svc.SubmitRecent(ctx, "discord-1", 25)
	require.NoError(t, err)

	assert.Equal(t, 0, batch.Accepted)
	assert.Contains(t, batch.Results[0].Rejection, domain.ErrMsgMalformedMap)
	assert.Equal(t, 0, repo.LedgerSize())
}

func TestSubmitRecent_ProcessesOldestFirst(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	older := testScore(401, now.Add(-time.Hour))
	older.Beatmapset.Title = "older map"
	newer := testScore(402, now)
	newer.Beatmapset.Title = "newer map"

	repo := NewFakeRepository()
	repo.AddUser(testUser(), zeroLevels(upgrade.NewDefaultRegistry()))
	// The API returns newest first
	source := &fakeSource{scores: []domain.Score{newer, older}}
	svc := newTestService(repo, source)

	batch, err := svc.SubmitRecent(ctx, "discord-1", 25)
	require.NoError(t, err)

	require.Len(t, batch.Results, 2)
	assert.Equal(t, "older map", batch.Results[0].Score.Title)
	assert.Equal(t, "newer map", batch.Results[1].Score.Title)
}

func TestSubmitRecent_UserNotFound(t *testing.T) {
	repo := NewFakeRepository()
	svc := newTestService(repo, &fakeSource{})

	_, err := svc.SubmitRecent(context.Background(), "nobody", 25)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestSubmitRecent_SourceFailure(t *testing.T) {
	repo := NewFakeRepository()
	repo.AddUser(testUser(), zeroLevels(upgrade.NewDefaultRegistry()))
	svc := newTestService(repo, &fakeSource{err: errors.New("osu api down")})

	_, err := svc.SubmitRecent(context.Background(), "discord-1", 25)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch recent scores")
}

func TestSubmitRecent_PersistenceFailureIsRetryable(t *testing.T) {
	ctx := context.Background()
	repo := NewFakeRepository()
	repo.AddUser(testUser(), zeroLevels(upgrade.NewDefaultRegistry()))
	repo.ApplyErr = errors.New("connection reset")

	source := &fakeSource{scores: []domain.Score{testScore(501, time.Now())}}
	svc := newTestService(repo, source)

	batch, err := svc.SubmitRecent(ctx, "discord-1", 25)
	require.NoError(t, err)

	result := batch.Results[0]
	assert.False(t, result.Accepted)
	assert.Empty(t, result.Rejection)
	assert.Contains(t, result.Retryable, "failed to apply score")

	// Nothing was credited; the score can be resubmitted
	repo.ApplyErr = nil
	batch, err = svc.SubmitRecent(ctx, "discord-1", 25)
	require.NoError(t, err)
	assert.Equal(t, 1, batch.Accepted)
}

func TestSubmitRecent_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := NewFakeRepository()
	repo.AddUser(testUser(), zeroLevels(upgrade.NewDefaultRegistry()))
	source := &fakeSource{scores: []domain.Score{testScore(601, time.Now())}}
	svc := newTestService(repo, source)

	batch, err := svc.SubmitRecent(ctx, "discord-1", 25)
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, batch)
	assert.Equal(t, 0, batch.Processed)
}

func TestSubmitRecent_ConcurrentSubmissionsCreditOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewFakeRepository()
	repo.AddUser(testUser(), zeroLevels(upgrade.NewDefaultRegistry()))

	score := testScore(701, time.Now())
	source := &fakeSource{scores: []domain.Score{score}}
	svc := newTestService(repo, source)

	const workers = 8
	accepted := make([]int, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			batch, err := svc.SubmitRecent(ctx, "discord-1", 25)
			if err != nil {
				errs[i] = err
				return
			}
			accepted[i] = batch.Accepted
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	total := 0
	for _, n := range accepted {
		total += n
	}
	assert.Equal(t, 1, total, "exactly one worker should win the ledger insert")
	assert.Equal(t, 1, repo.LedgerSize())

	profile, err := svc.GetProfile(ctx, "discord-1")
	require.NoError(t, err)
	assert.Equal(t, 13, profile.Bars[domain.BarOverall].TotalExp)
}

func TestSubmitRecent_AppliesUpgradeLevels(t *testing.T) {
	ctx := context.Background()
	registry := upgrade.NewDefaultRegistry()
	levels := zeroLevels(registry)
	// Length bonus: +ceil(drain/60)*level before the split
	levels[upgrade.IDExpLengthBonus] = 3

	repo := NewFakeRepository()
	repo.AddUser(testUser(), levels)
	source := &fakeSource{scores: []domain.Score{testScore(801, time.Now())}}
	svc := newTestService(repo, source)

	batch, err := svc.SubmitRecent(ctx, "discord-1", 25)
	require.NoError(t, err)

	// 13 base + 2*3 bonus
	require.Equal(t, 1, batch.Accepted)
	assert.Equal(t, 19, batch.Results[0].TrackGains[domain.BarOverall])
}
