// Package importer reads league scoring workbooks into round score sheets.
package importer

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/ajharbinger/golfleague-skins/internal/errors"
	"github.com/ajharbinger/golfleague-skins/internal/skins"
)

const (
	// ParticipationSheet lists which golfers played each round
	ParticipationSheet = "Skins By Week"
	// RoundSheetPrefix is followed by the round number, "Skins 1" to "Skins 18"
	RoundSheetPrefix = "Skins "
	// MaxRounds is the number of round sheets a season workbook can hold
	MaxRounds = 18

	playedMarker          = "X"
	participationFirstRow = 2
	dateRow               = 2
	nameColumn            = 0
	playedColumn          = 1
)

// Options controls how a workbook is read
type Options struct {
	Year int
	// SkinsOnly workbooks have no per-golfer skins column; everyone who played is entered
	SkinsOnly bool
}

// layout is the column positions of a round sheet
type layout struct {
	handicap    int
	inSkins     int
	scoreOffset int
}

func layoutFor(skinsOnly bool) layout {
	if skinsOnly {
		return layout{handicap: 2, inSkins: -1, scoreOffset: 3}
	}
	return layout{handicap: 3, inSkins: 2, scoreOffset: 4}
}

// Participation is one golfer's row on the participation sheet
type Participation struct {
	GolferName string          `json:"golferName"`
	Rounds     [MaxRounds]bool `json:"rounds"`
}

// Workbook is the parsed content of one season workbook
type Workbook struct {
	Year          int                     `json:"year"`
	Participation []Participation         `json:"participation"`
	Rounds        []skins.RoundScoreInput `json:"rounds"`
	// Skipped names round sheets that had no golfer marked as played
	Skipped []string `json:"skipped,omitempty"`
}

// ParseFile opens and parses a workbook on disk
func ParseFile(path string, opts Options) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("failed to open workbook %s", path), err).WithOperation("ParseFile")
	}
	defer f.Close()
	return parse(f, opts)
}

// Parse reads a workbook from r
func Parse(r io.Reader, opts Options) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.InvalidInput("failed to open workbook", err).WithOperation("Parse")
	}
	defer f.Close()
	return parse(f, opts)
}

func parse(f *excelize.File, opts Options) (*Workbook, error) {
	if opts.Year <= 0 {
		return nil, invalid("workbook year is required", nil)
	}

	sheets := make(map[string]bool)
	for _, name := range f.GetSheetList() {
		sheets[name] = true
	}

	wb := &Workbook{
		Year:          opts.Year,
		Participation: []Participation{},
		Rounds:        []skins.RoundScoreInput{},
	}

	if sheets[ParticipationSheet] {
		rows, err := f.GetRows(ParticipationSheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, invalid(fmt.Sprintf("failed to read sheet %q", ParticipationSheet), err)
		}
		wb.Participation = parseParticipation(rows)
	}

	for round := 1; round <= MaxRounds; round++ {
		sheet := RoundSheetPrefix + strconv.Itoa(round)
		if !sheets[sheet] {
			continue
		}
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, invalid(fmt.Sprintf("failed to read sheet %q", sheet), err)
		}

		input, ok, err := parseRound(rows, opts.Year, round, layoutFor(opts.SkinsOnly))
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet, err)
		}
		if !ok {
			wb.Skipped = append(wb.Skipped, sheet)
			continue
		}
		wb.Rounds = append(wb.Rounds, input)
	}

	if len(wb.Rounds) == 0 && len(wb.Skipped) == 0 {
		return nil, invalid("workbook contains no round sheets", nil)
	}
	return wb, nil
}

func parseParticipation(rows [][]string) []Participation {
	participation := []Participation{}
	for r := participationFirstRow; r < len(rows); r++ {
		row := rows[r]
		name := cell(row, nameColumn)
		if name == "" {
			continue
		}
		p := Participation{GolferName: name}
		for i := 0; i < MaxRounds; i++ {
			p.Rounds[i] = cell(row, i+1) != ""
		}
		participation = append(participation, p)
	}
	return participation
}

// parseRound reads one round sheet. ok is false when nobody is marked as played.
func parseRound(rows [][]string, year, round int, cols layout) (skins.RoundScoreInput, bool, error) {
	input := skins.RoundScoreInput{
		RoundID:      fmt.Sprintf("%d%d", year, round),
		RoundYear:    year,
		RoundNumber:  round,
		GolferScores: []skins.GolferRoundScore{},
	}

	if dateRow < len(rows) {
		played, err := cellDate(rows[dateRow], nameColumn)
		if err != nil {
			return input, false, err
		}
		input.RoundPlayedDate = played
	}

	for r, row := range rows {
		if cell(row, playedColumn) != playedMarker {
			continue
		}

		// The first golfer's card decides which nine was played
		if input.StartHole == 0 {
			first, err := cellInt(row, cols.scoreOffset)
			if err != nil {
				return input, false, invalid(fmt.Sprintf("row %d: bad score for hole 1", r+1), err)
			}
			input.StartHole = 10
			if first != nil && *first > 0 {
				input.StartHole = 1
			}
		}

		handicap, err := cellInt(row, cols.handicap)
		if err != nil {
			return input, false, invalid(fmt.Sprintf("row %d: bad handicap", r+1), err)
		}

		golfer := skins.GolferRoundScore{
			GolferName: cell(row, nameColumn),
			Handicap:   handicap,
			InSkins:    cols.inSkins < 0 || cell(row, cols.inSkins) == playedMarker,
			Scores:     make([]*int, skins.HolesPerRound),
		}
		for hole := 0; hole < skins.HolesPerRound; hole++ {
			score, err := cellInt(row, hole+(input.StartHole-1)+cols.scoreOffset)
			if err != nil {
				return input, false, invalid(fmt.Sprintf("row %d: bad score for hole %d", r+1, hole+input.StartHole), err)
			}
			golfer.Scores[hole] = score
		}
		input.GolferScores = append(input.GolferScores, golfer)
	}

	return input, input.StartHole != 0, nil
}

// cell returns the trimmed value at col, or "" past the end of a short row
func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// cellInt parses a numeric cell, rounding to the nearest whole number. Blank cells are nil.
func cellInt(row []string, col int) (*int, error) {
	raw := cell(row, col)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("column %s: %q is not a number", columnName(col), raw)
	}
	return skins.IntPtr(int(math.Round(f))), nil
}

// cellDate reads an Excel date serial. Blank cells give the zero time.
func cellDate(row []string, col int) (time.Time, error) {
	raw := cell(row, col)
	if raw == "" {
		return time.Time{}, nil
	}
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return time.Time{}, invalid(fmt.Sprintf("round date %q is not an Excel date", raw), err)
	}
	played, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, invalid(fmt.Sprintf("round date %q is out of range", raw), err)
	}
	return played, nil
}

func columnName(col int) string {
	name, err := excelize.ColumnNumberToName(col + 1)
	if err != nil {
		return strconv.Itoa(col + 1)
	}
	return name
}

func invalid(message string, cause error) error {
	return apperrors.ValidationError(message, cause).WithOperation("ParseWorkbook")
}
