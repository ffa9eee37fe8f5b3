package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ajharbinger/golfleague-skins/internal/skins"
)

// LeagueConfig represents a league's course configuration record
type LeagueConfig struct {
	ID         uuid.UUID `json:"id" db:"id"`
	LeagueName string    `json:"leagueName" db:"league_name"`
	CourseName string    `json:"courseName" db:"course_name"`
	Holes      Holes     `json:"holes" db:"holes"`
	CreateDate time.Time `json:"createDate" db:"create_date"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// Course converts the record into the engine's course configuration
func (l *LeagueConfig) Course() skins.CourseConfig {
	return skins.CourseConfig{
		ID:         l.ID.String(),
		CourseName: l.CourseName,
		Holes:      []skins.Hole(l.Holes),
	}
}

// Holes represents a course hole list stored as JSON
type Holes []skins.Hole

// Value implements driver.Valuer for Holes
func (h Holes) Value() (driver.Value, error) {
	return json.Marshal(h)
}

// Scan implements sql.Scanner for Holes
func (h *Holes) Scan(value interface{}) error {
	if value == nil {
		*h = Holes{}
		return nil
	}
	return scanJSON(value, h, "Holes")
}

// RoundScores represents one round's posted score sheet
type RoundScores struct {
	LeagueName      string       `json:"leagueName" db:"league_name"`
	RoundID         string       `json:"roundId" db:"round_id"`
	RoundYear       int          `json:"roundYear" db:"round_year"`
	RoundNumber     int          `json:"roundNumber" db:"round_number"`
	RoundPlayedDate time.Time    `json:"roundPlayedDate" db:"round_played_date"`
	StartHole       int          `json:"startHole" db:"start_hole"`
	GolferScores    GolferScores `json:"golferScores" db:"golfer_scores"`
	CreatedAt       time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time    `json:"updatedAt" db:"updated_at"`
}

// NewRoundScores wraps an engine score sheet for storage under a league
func NewRoundScores(leagueName string, input skins.RoundScoreInput) *RoundScores {
	return &RoundScores{
		LeagueName:      leagueName,
		RoundID:         input.RoundID,
		RoundYear:       input.RoundYear,
		RoundNumber:     input.RoundNumber,
		RoundPlayedDate: input.RoundPlayedDate,
		StartHole:       input.StartHole,
		GolferScores:    GolferScores(input.GolferScores),
	}
}

// Input converts the record back into the engine's score sheet
func (r *RoundScores) Input() skins.RoundScoreInput {
	return skins.RoundScoreInput{
		RoundID:         r.RoundID,
		RoundYear:       r.RoundYear,
		RoundNumber:     r.RoundNumber,
		RoundPlayedDate: r.RoundPlayedDate,
		StartHole:       r.StartHole,
		GolferScores:    []skins.GolferRoundScore(r.GolferScores),
	}
}

// GolferScores represents a round's golfer cards stored as JSON
type GolferScores []skins.GolferRoundScore

// Value implements driver.Valuer for GolferScores
func (g GolferScores) Value() (driver.Value, error) {
	return json.Marshal(g)
}

// Scan implements sql.Scanner for GolferScores
func (g *GolferScores) Scan(value interface{}) error {
	if value == nil {
		*g = GolferScores{}
		return nil
	}
	return scanJSON(value, g, "GolferScores")
}

// SkinResult represents a stored skins calculation for a round
type SkinResult struct {
	LeagueName     string         `json:"leagueName" db:"league_name"`
	RoundID        string         `json:"roundId" db:"round_id"`
	RoundYear      int            `json:"roundYear" db:"round_year"`
	RoundNumber    int            `json:"roundNumber" db:"round_number"`
	TotalSkins     int            `json:"totalSkins" db:"total_skins"`
	TotalSkinMoney float64        `json:"totalSkinMoney" db:"total_skin_money"`
	CreateDate     time.Time      `json:"createDate" db:"create_date"`
	Document       ResultDocument `json:"document" db:"document"`
}

// NewSkinResult wraps an engine result for storage under a league
func NewSkinResult(leagueName string, result *skins.SkinRoundResult) *SkinResult {
	return &SkinResult{
		LeagueName:     leagueName,
		RoundID:        result.ID,
		RoundYear:      result.RoundYear,
		RoundNumber:    result.RoundNumber,
		TotalSkins:     result.Summary.TotalSkins,
		TotalSkinMoney: result.Summary.TotalSkinMoney,
		CreateDate:     result.CreateDate,
		Document:       ResultDocument(*result),
	}
}

// Result returns the engine result held in the document
func (s *SkinResult) Result() *skins.SkinRoundResult {
	result := skins.SkinRoundResult(s.Document)
	return &result
}

// ResultDocument is a full skins round result stored as JSON
type ResultDocument skins.SkinRoundResult

// Value implements driver.Valuer for ResultDocument
func (d ResultDocument) Value() (driver.Value, error) {
	return json.Marshal(skins.SkinRoundResult(d))
}

// Scan implements sql.Scanner for ResultDocument
func (d *ResultDocument) Scan(value interface{}) error {
	if value == nil {
		*d = ResultDocument{}
		return nil
	}
	var result skins.SkinRoundResult
	if err := scanJSON(value, &result, "ResultDocument"); err != nil {
		return err
	}
	*d = ResultDocument(result)
	return nil
}

func scanJSON(value interface{}, dest interface{}, name string) error {
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into %s", value, name)
	}
	return json.Unmarshal(bytes, dest)
}
