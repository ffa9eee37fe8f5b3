package skins

import "time"

// HolesPerRound is the number of holes in a league round (one nine)
const HolesPerRound = 9

// DefaultPerSkinValue is the entry fee per golfer when none is configured
const DefaultPerSkinValue = 5

// NoWinner marks a hole nobody won outright
const NoWinner = "none"

// Hole is a course hole and its handicap stroke index (1 = hardest)
type Hole struct {
	HoleNumber  int `json:"holeNumber" yaml:"holeNumber"`
	StrokeIndex int `json:"strokeIndex" yaml:"strokeIndex"`
	Par         int `json:"par,omitempty" yaml:"par,omitempty"`
}

// CourseConfig holds the hole layout a league plays
type CourseConfig struct {
	ID         string `json:"id,omitempty" yaml:"id,omitempty"`
	CourseName string `json:"courseName,omitempty" yaml:"courseName,omitempty"`
	Holes      []Hole `json:"holes" yaml:"holes"`
}

// GolferRoundScore is one golfer's card for a round.
// A nil entry in Scores means the golfer did not post a score on that hole.
type GolferRoundScore struct {
	GolferName string `json:"golferName"`
	Handicap   *int   `json:"handicap"`
	InSkins    bool   `json:"inSkins"`
	Scores     []*int `json:"scores"`
}

// RoundScoreInput is the raw score sheet for one league round
type RoundScoreInput struct {
	RoundID         string             `json:"roundId"`
	RoundYear       int                `json:"roundYear"`
	RoundNumber     int                `json:"roundNumber"`
	RoundPlayedDate time.Time          `json:"roundPlayedDate"`
	StartHole       int                `json:"startHole"`
	GolferScores    []GolferRoundScore `json:"golferScores"`
}

// PreviousRoundSummary is the carry-over state taken from the preceding round
type PreviousRoundSummary struct {
	TotalSkins     int     `json:"totalSkins"`
	TotalSkinMoney float64 `json:"totalSkinMoney"`
}

// HoleResult is a golfer's annotated result on one hole
type HoleResult struct {
	Gross      *int `json:"gross"`
	Net        *int `json:"net"`
	IsSkin     bool `json:"isSkin"`
	CancelSkin bool `json:"cancelSkin"`
	HoleNumber int  `json:"holeNumber"`
}

// Posted reports whether the golfer recorded a score on the hole
func (h HoleResult) Posted() bool {
	return h.Net != nil
}

// GolferResult is an entrant's annotated round
type GolferResult struct {
	GolferName string       `json:"golferName"`
	Handicap   int          `json:"handicap"`
	Holes      []HoleResult `json:"holes"`
}

// HoleSummary records who won a hole. WinnerIndex points into SkinRoundResult.Results.
type HoleSummary struct {
	Winner      string `json:"winner"`
	WinnerIndex *int   `json:"winnerIndex,omitempty"`
	HoleNumber  int    `json:"holeNumber"`
}

// Won reports whether a single golfer took the hole
func (h HoleSummary) Won() bool {
	return h.WinnerIndex != nil
}

// Summary aggregates a round's skins and pot
type Summary struct {
	TotalEntrants      int           `json:"totalEntrants"`
	Holes              []HoleSummary `json:"holes"`
	TotalSkins         int           `json:"totalSkins"`
	TotalSkinMoney     float64       `json:"totalSkinMoney"`
	TotalSkinMoneyPaid float64       `json:"totalSkinMoneyPaid"`
}

// SkinRoundResult is the computed skins outcome for one round
type SkinRoundResult struct {
	ID                 string         `json:"id"`
	LeagueName         string         `json:"leagueName,omitempty"`
	RoundYear          int            `json:"roundYear"`
	RoundNumber        int            `json:"roundNumber"`
	StartHole          int            `json:"startHole"`
	CreateDate         time.Time      `json:"createDate"`
	PerSkinValue       int            `json:"perSkinValue"`
	CarryOverSkinMoney float64        `json:"carryOverSkinMoney"`
	Results            []GolferResult `json:"results"`
	Summary            Summary        `json:"summary"`
}

// Options carries per-invocation settings for CalculateRound
type Options struct {
	LeagueName   string
	PerSkinValue int
	Previous     *PreviousRoundSummary
}

// IntPtr returns a pointer to v; handy for building score sheets
func IntPtr(v int) *int {
	return &v
}

// Scores converts plain strokes into a score slice with every hole posted
func Scores(strokes ...int) []*int {
	out := make([]*int, len(strokes))
	for i, s := range strokes {
		out[i] = IntPtr(s)
	}
	return out
}
