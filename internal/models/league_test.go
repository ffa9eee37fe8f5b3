package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajharbinger/golfleague-skins/internal/skins"
)

func TestGolferScores_ValueScan(t *testing.T) {
	scores := GolferScores{
		{GolferName: "Palmer, Arnold", Handicap: skins.IntPtr(8), InSkins: true, Scores: []*int{skins.IntPtr(4), nil, skins.IntPtr(3)}},
	}

	value, err := scores.Value()
	require.NoError(t, err)

	var scanned GolferScores
	require.NoError(t, scanned.Scan(value))
	require.Len(t, scanned, 1)
	assert.Nil(t, scanned[0].Scores[1], "absent score must survive storage as null")
	assert.Equal(t, 3, *scanned[0].Scores[2])

	assert.Error(t, scanned.Scan(42))
	require.NoError(t, scanned.Scan(nil))
	assert.Empty(t, scanned)
}

func TestSkinResult_RoundTrip(t *testing.T) {
	created := time.Date(2021, 6, 3, 20, 0, 0, 0, time.UTC)
	winner := 0
	result := &skins.SkinRoundResult{
		ID:          "20215",
		RoundYear:   2021,
		RoundNumber: 5,
		StartHole:   10,
		CreateDate:  created,
		Results: []skins.GolferResult{
			{GolferName: "A", Handicap: 3, Holes: []skins.HoleResult{{Gross: skins.IntPtr(3), Net: skins.IntPtr(3), IsSkin: true, HoleNumber: 10}}},
		},
		Summary: skins.Summary{
			TotalEntrants: 1,
			Holes:         []skins.HoleSummary{{Winner: "A", WinnerIndex: &winner, HoleNumber: 10}},
			TotalSkins:    1, TotalSkinMoney: 5, TotalSkinMoneyPaid: 5,
		},
	}

	record := NewSkinResult("thursday", result)
	assert.Equal(t, "20215", record.RoundID)
	assert.Equal(t, 1, record.TotalSkins)
	assert.Equal(t, 5.0, record.TotalSkinMoney)

	value, err := record.Document.Value()
	require.NoError(t, err)

	var doc ResultDocument
	require.NoError(t, doc.Scan(string(value.([]byte))))
	restored := (&SkinResult{Document: doc}).Result()
	assert.Equal(t, result.Summary, restored.Summary)
	assert.True(t, restored.CreateDate.Equal(created))
}

func TestLeagueConfig_Course(t *testing.T) {
	id := uuid.New()
	cfg := &LeagueConfig{ID: id, CourseName: "Test Links", Holes: Holes{{HoleNumber: 1, StrokeIndex: 7}}}

	course := cfg.Course()
	assert.Equal(t, id.String(), course.ID)
	assert.Equal(t, "Test Links", course.CourseName)
	assert.Equal(t, []skins.Hole{{HoleNumber: 1, StrokeIndex: 7}}, course.Holes)
}

func TestRoundScores_Input(t *testing.T) {
	input := skins.RoundScoreInput{RoundID: "20211", RoundYear: 2021, RoundNumber: 1, StartHole: 1}
	record := NewRoundScores("thursday", input)

	assert.Equal(t, "thursday", record.LeagueName)
	assert.Equal(t, input, record.Input())
}
