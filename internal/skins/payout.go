package skins

import "strings"

// SkinWinner is a display row for one won hole
type SkinWinner struct {
	GolferName  string  `json:"golferName"`
	DisplayName string  `json:"displayName"`
	ShortName   string  `json:"shortName"`
	HoleNumber  int     `json:"holeNumber"`
	Gross       int     `json:"gross"`
	Net         int     `json:"net"`
	AmountWon   float64 `json:"amountWon"`
}

// PerSkinPayout splits the pot evenly across the skins won. ok is false when no
// skins were won and the pot carries over instead.
func PerSkinPayout(summary Summary) (amount float64, ok bool) {
	if summary.TotalSkins <= 0 {
		return 0, false
	}
	return summary.TotalSkinMoney / float64(summary.TotalSkins), true
}

// Winners lists every won hole in play order with the amount each skin pays
func Winners(result *SkinRoundResult) []SkinWinner {
	amount, ok := PerSkinPayout(result.Summary)
	if !ok {
		return []SkinWinner{}
	}

	winners := make([]SkinWinner, 0, result.Summary.TotalSkins)
	for i, hole := range result.Summary.Holes {
		if !hole.Won() || *hole.WinnerIndex >= len(result.Results) {
			continue
		}
		golfer := result.Results[*hole.WinnerIndex]
		if i >= len(golfer.Holes) || !golfer.Holes[i].Posted() {
			continue
		}
		display, short := GolferNames(golfer.GolferName)
		winners = append(winners, SkinWinner{
			GolferName:  golfer.GolferName,
			DisplayName: display,
			ShortName:   short,
			HoleNumber:  hole.HoleNumber,
			Gross:       *golfer.Holes[i].Gross,
			Net:         *golfer.Holes[i].Net,
			AmountWon:   amount,
		})
	}
	return winners
}

// GolferNames turns a roster name such as "Palmer, Arnold" into a display name
// ("Arnold Palmer") and a short name ("A Palmer"). Names without a comma are
// returned unchanged for both.
func GolferNames(golferName string) (display, short string) {
	parts := strings.SplitN(golferName, ",", 2)
	if len(parts) == 1 {
		name := strings.TrimSpace(golferName)
		return name, name
	}

	last := strings.TrimSpace(parts[0])
	first := strings.TrimSpace(parts[1])
	if first == "" {
		return last, last
	}
	display = first + " " + last
	short = string([]rune(first)[0]) + " " + last
	return display, short
}
