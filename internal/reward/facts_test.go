package reward

import (
	"testing"
	"time"

	"github.com/jarvisgaming/TaikoBot_Go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScore() domain.Score {
	return domain.Score{
		Username:  "drumroller",
		OsuID:     4171323,
		N300s:     100,
		N100s:     0,
		Misses:    0,
		Accuracy:  100,
		MaxCombo:  100,
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		IsPass:    true,
		Beatmap: domain.Beatmap{
			ID:         1001,
			Mode:       "taiko",
			StarRating: 5,
			NumNotes:   100,
			DrainTime:  120,
		},
		Beatmapset: domain.Beatmapset{ID: 2002},
	}
}

func TestDeriveFacts_CompleteRunNoMods(t *testing.T) {
	facts, err := DeriveFacts(testScore(), DefaultFormula())
	require.NoError(t, err)

	// floor(300^0.6 * 6^1.2 * 0.05) = floor(13.15...) = 13
	assert.Equal(t, 13, facts.BaseOverallExp)
	assert.True(t, facts.CompleteRun)
	assert.Equal(t, 1.0, facts.Completion)
	assert.Empty(t, facts.ActiveTracks)
	assert.Equal(t, 2, facts.BaseTokens) // 100 hits / 50 per token
}

func TestDeriveFacts_IncompleteRunPenalized(t *testing.T) {
	score := testScore()
	score.Beatmap.NumNotes = 200 // only half the map was played

	facts, err := DeriveFacts(score, DefaultFormula())
	require.NoError(t, err)

	assert.False(t, facts.CompleteRun)
	assert.Equal(t, 0.5, facts.Completion)
	// 13.15 * log2(1.5) = 7.69..., floored to 7
	assert.Equal(t, 7, facts.BaseOverallExp)

	complete, err := DeriveFacts(testScore(), DefaultFormula())
	require.NoError(t, err)
	assert.Less(t, facts.BaseOverallExp, complete.BaseOverallExp)
}

func TestDeriveFacts_ZeroNoteMapRejected(t *testing.T) {
	score := testScore()
	score.Beatmap.NumNotes = 0

	_, err := DeriveFacts(score, DefaultFormula())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedMap)
}

func TestDeriveFacts_MissesFloorHitValueAtZero(t *testing.T) {
	score := testScore()
	score.N300s = 0
	score.N100s = 0
	score.Misses = 100

	facts, err := DeriveFacts(score, DefaultFormula())
	require.NoError(t, err)
	assert.Equal(t, 0, facts.BaseOverallExp)
	assert.Equal(t, 0, facts.BaseTokens)
}

func TestDeriveFacts_StarRatingCap(t *testing.T) {
	low := testScore()
	low.Beatmap.StarRating = 10 // sr+1 == cap

	high := testScore()
	high.Beatmap.StarRating = 25 // above the cap

	lowFacts, err := DeriveFacts(low, DefaultFormula())
	require.NoError(t, err)
	highFacts, err := DeriveFacts(high, DefaultFormula())
	require.NoError(t, err)

	assert.Equal(t, lowFacts.BaseOverallExp, highFacts.BaseOverallExp)
}

func TestDeriveFacts_ActiveTracks(t *testing.T) {
	tests := []struct {
		name string
		mods []domain.Mod
		want []string
	}{
		{"no mods", nil, nil},
		{"untracked mods only", []domain.Mod{{Acronym: "NF"}, {Acronym: "SD"}}, nil},
		{"hidden", []domain.Mod{{Acronym: "HD"}}, []string{domain.BarHidden}},
		{"hidden plus hardrock", []domain.Mod{{Acronym: "HD"}, {Acronym: "HR"}}, []string{domain.BarHidden, domain.BarHardRock}},
		{"nightcore counts as doubletime", []domain.Mod{{Acronym: "NC"}}, []string{domain.BarDoubleTime}},
		{"daycore counts as halftime", []domain.Mod{{Acronym: "DC"}}, []string{domain.BarHalfTime}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := testScore()
			score.Mods = tt.mods

			facts, err := DeriveFacts(score, DefaultFormula())
			require.NoError(t, err)
			assert.Equal(t, tt.want, facts.ActiveTracks)
		})
	}
}
