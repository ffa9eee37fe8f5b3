package skins

import (
	"sort"
	"time"
)

// GolferSeasonTotals is one golfer's running skins tally for a season
type GolferSeasonTotals struct {
	GolferName    string  `json:"golferName"`
	DisplayName   string  `json:"displayName"`
	RoundsEntered int     `json:"roundsEntered"`
	SkinsWon      int     `json:"skinsWon"`
	MoneyWon      float64 `json:"moneyWon"`
}

// SeasonSummary aggregates every calculated round of a league season
type SeasonSummary struct {
	LeagueName       string               `json:"leagueName,omitempty"`
	RoundYear        int                  `json:"roundYear"`
	UpdateDate       time.Time            `json:"updateDate"`
	Players          []GolferSeasonTotals `json:"players"`
	TotalSkins       int                  `json:"totalSkins"`
	TotalMoney       float64              `json:"totalMoney"`
	OutstandingPot   float64              `json:"outstandingPot"`
	ProcessedRounds  map[string]time.Time `json:"processedRounds"`
	RoundsCalculated int                  `json:"roundsCalculated"`
}

// BuildSeasonSummary totals a season's results. Results may arrive in any order;
// the outstanding pot is taken from the highest-numbered round.
func BuildSeasonSummary(leagueName string, year int, results []*SkinRoundResult) SeasonSummary {
	summary := SeasonSummary{
		LeagueName:      leagueName,
		RoundYear:       year,
		Players:         []GolferSeasonTotals{},
		ProcessedRounds: make(map[string]time.Time, len(results)),
	}

	totals := make(map[string]*GolferSeasonTotals)
	var latest *SkinRoundResult
	for _, result := range results {
		if result == nil {
			continue
		}
		summary.RoundsCalculated++
		summary.ProcessedRounds[result.ID] = result.CreateDate
		if result.CreateDate.After(summary.UpdateDate) {
			summary.UpdateDate = result.CreateDate
		}
		if latest == nil || result.RoundNumber > latest.RoundNumber {
			latest = result
		}

		for _, golfer := range result.Results {
			t := totals[golfer.GolferName]
			if t == nil {
				display, _ := GolferNames(golfer.GolferName)
				t = &GolferSeasonTotals{GolferName: golfer.GolferName, DisplayName: display}
				totals[golfer.GolferName] = t
			}
			t.RoundsEntered++
		}

		for _, winner := range Winners(result) {
			t := totals[winner.GolferName]
			t.SkinsWon++
			t.MoneyWon += winner.AmountWon
			summary.TotalSkins++
		}
		summary.TotalMoney += result.Summary.TotalSkinMoneyPaid
	}

	if latest != nil && latest.Summary.TotalSkins == 0 {
		summary.OutstandingPot = latest.Summary.TotalSkinMoney
	}

	for _, t := range totals {
		summary.Players = append(summary.Players, *t)
	}
	sort.Slice(summary.Players, func(i, j int) bool {
		a, b := summary.Players[i], summary.Players[j]
		if a.MoneyWon != b.MoneyWon {
			return a.MoneyWon > b.MoneyWon
		}
		return a.GolferName < b.GolferName
	})
	return summary
}
