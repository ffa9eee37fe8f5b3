package skins

import (
	"fmt"
	"time"

	apperrors "github.com/ajharbinger/golfleague-skins/internal/errors"
)

// Engine computes skins results for league rounds. It holds no state beyond its clock
// and is safe for concurrent use.
type Engine struct {
	now func() time.Time
}

// NewEngine creates a new skins engine instance
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// WithClock returns a copy of the engine that stamps results using now
func (e *Engine) WithClock(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// CalculateRound normalizes every entrant's scores against the course stroke indexes,
// resolves the winner of each hole and builds the round summary including carry-over.
func (e *Engine) CalculateRound(input RoundScoreInput, course CourseConfig, opts Options) (*SkinRoundResult, error) {
	if err := validateRound(input, opts); err != nil {
		return nil, err
	}

	allocations, err := StrokeAllocations(course, input.StartHole)
	if err != nil {
		return nil, err
	}

	perSkinValue := opts.PerSkinValue
	if perSkinValue == 0 {
		perSkinValue = DefaultPerSkinValue
	}

	results := make([]GolferResult, 0, len(input.GolferScores))
	for _, golfer := range input.GolferScores {
		if !golfer.InSkins {
			continue
		}
		results = append(results, GolferResult{
			GolferName: golfer.GolferName,
			Handicap:   *golfer.Handicap,
			Holes:      NormalizeGolfer(golfer.Scores, *golfer.Handicap, allocations, input.StartHole),
		})
	}

	ResolveHoles(results)

	carryOver := CarryOver(opts.Previous)
	return &SkinRoundResult{
		ID:                 input.RoundID,
		LeagueName:         opts.LeagueName,
		RoundYear:          input.RoundYear,
		RoundNumber:        input.RoundNumber,
		StartHole:          input.StartHole,
		CreateDate:         e.now(),
		PerSkinValue:       perSkinValue,
		CarryOverSkinMoney: carryOver,
		Results:            results,
		Summary:            BuildSummary(results, input.StartHole, carryOver, perSkinValue),
	}, nil
}

// StrokeAllocation converts a course stroke index into the half-handicap allocation
// used for a nine-hole round: round(strokeIndex / 2) with halves rounding up.
func StrokeAllocation(strokeIndex int) int {
	return (strokeIndex + 1) / 2
}

// StrokeAllocations returns the allocation for each of the nine holes starting at startHole
func StrokeAllocations(course CourseConfig, startHole int) ([]int, error) {
	byNumber := make(map[int]Hole, len(course.Holes))
	for _, hole := range course.Holes {
		byNumber[hole.HoleNumber] = hole
	}

	allocations := make([]int, HolesPerRound)
	for i := 0; i < HolesPerRound; i++ {
		number := startHole + i
		hole, ok := byNumber[number]
		if !ok {
			return nil, apperrors.InvalidInput(fmt.Sprintf("course configuration is missing hole %d", number), nil).
				WithOperation("StrokeAllocations")
		}
		if hole.StrokeIndex < 1 || hole.StrokeIndex > 18 {
			return nil, apperrors.InvalidInput(fmt.Sprintf("hole %d has invalid stroke index %d", number, hole.StrokeIndex), nil).
				WithOperation("StrokeAllocations")
		}
		allocations[i] = StrokeAllocation(hole.StrokeIndex)
	}
	return allocations, nil
}

// NormalizeGolfer builds a golfer's nine hole results. The golfer gets a stroke on every
// hole whose allocation is at or below the handicap. Missing scores stay nil.
func NormalizeGolfer(scores []*int, handicap int, allocations []int, startHole int) []HoleResult {
	holes := make([]HoleResult, HolesPerRound)
	for i := range holes {
		holes[i].HoleNumber = i + startHole
		if i >= len(scores) || scores[i] == nil {
			continue
		}

		gross := *scores[i]
		net := gross
		if allocations[i] <= handicap {
			net = gross - 1
		}
		holes[i].Gross = IntPtr(gross)
		holes[i].Net = IntPtr(net)
	}
	return holes
}

// ResolveHoles flags skins and cancellations on every hole. The minimum and the full set
// of golfers holding it are computed before any flag is written.
func ResolveHoles(results []GolferResult) {
	for hole := 0; hole < HolesPerRound; hole++ {
		leaders := lowestNet(results, hole)
		switch {
		case len(leaders) == 1:
			results[leaders[0]].Holes[hole].IsSkin = true
		case len(leaders) > 1:
			for _, idx := range leaders {
				results[idx].Holes[hole].CancelSkin = true
			}
		}
	}
}

// lowestNet returns the indexes of every golfer holding the lowest posted net on a hole
func lowestNet(results []GolferResult, hole int) []int {
	var leaders []int
	lowest := 0
	for idx, result := range results {
		if hole >= len(result.Holes) || !result.Holes[hole].Posted() {
			continue
		}
		net := *result.Holes[hole].Net
		switch {
		case len(leaders) == 0 || net < lowest:
			lowest = net
			leaders = append(leaders[:0], idx)
		case net == lowest:
			leaders = append(leaders, idx)
		}
	}
	return leaders
}

// BuildSummary walks the resolved results once and totals the round
func BuildSummary(results []GolferResult, startHole int, carryOver float64, perSkinValue int) Summary {
	summary := Summary{
		TotalEntrants: len(results),
		Holes:         make([]HoleSummary, HolesPerRound),
	}
	for i := range summary.Holes {
		summary.Holes[i] = HoleSummary{Winner: NoWinner, HoleNumber: startHole + i}
	}

	for idx, result := range results {
		for i, hole := range result.Holes {
			if i >= HolesPerRound || !hole.IsSkin {
				continue
			}
			winner := idx
			summary.Holes[i].Winner = result.GolferName
			summary.Holes[i].WinnerIndex = &winner
			summary.TotalSkins++
		}
	}

	summary.TotalSkinMoney = carryOver + float64(summary.TotalEntrants*perSkinValue)
	if summary.TotalSkins > 0 {
		summary.TotalSkinMoneyPaid = summary.TotalSkinMoney
	}
	return summary
}

// CarryOver returns the pot inherited from the preceding round: all of it when that
// round produced no skins, otherwise nothing.
func CarryOver(previous *PreviousRoundSummary) float64 {
	if previous == nil || previous.TotalSkins != 0 {
		return 0
	}
	return previous.TotalSkinMoney
}

// SummaryOf projects a stored result into the carry-over input for the next round
func SummaryOf(result *SkinRoundResult) *PreviousRoundSummary {
	if result == nil {
		return nil
	}
	return &PreviousRoundSummary{
		TotalSkins:     result.Summary.TotalSkins,
		TotalSkinMoney: result.Summary.TotalSkinMoney,
	}
}

// CalculateSeason calculates rounds in the given order, feeding each round's summary
// into the next as carry-over. opts.Previous seeds the first round and may be nil.
func (e *Engine) CalculateSeason(rounds []RoundScoreInput, course CourseConfig, opts Options) ([]*SkinRoundResult, error) {
	results := make([]*SkinRoundResult, 0, len(rounds))
	for _, round := range rounds {
		result, err := e.CalculateRound(round, course, opts)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", round.RoundNumber, err)
		}
		results = append(results, result)
		opts.Previous = SummaryOf(result)
	}
	return results, nil
}

func validateRound(input RoundScoreInput, opts Options) error {
	if input.StartHole != 1 && input.StartHole != 10 {
		return invalid(fmt.Sprintf("start hole must be 1 or 10, got %d", input.StartHole))
	}
	if opts.PerSkinValue < 0 {
		return invalid(fmt.Sprintf("per-skin value must not be negative, got %d", opts.PerSkinValue))
	}

	for i, golfer := range input.GolferScores {
		if golfer.GolferName == "" {
			return invalid(fmt.Sprintf("golfer %d is missing a name", i+1))
		}
		if !golfer.InSkins {
			continue
		}
		if golfer.Handicap == nil {
			return invalid(fmt.Sprintf("golfer %q is missing a handicap", golfer.GolferName))
		}
		if len(golfer.Scores) > HolesPerRound {
			return invalid(fmt.Sprintf("golfer %q has %d scores, expected at most %d", golfer.GolferName, len(golfer.Scores), HolesPerRound))
		}
		for h, score := range golfer.Scores {
			if score != nil && *score < 0 {
				return invalid(fmt.Sprintf("golfer %q has a negative score on hole %d", golfer.GolferName, h+input.StartHole))
			}
		}
	}
	return nil
}

func invalid(message string) error {
	return apperrors.InvalidInput(message, nil).WithOperation("CalculateRound")
}
