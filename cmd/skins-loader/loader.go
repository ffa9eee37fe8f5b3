package main

import (
	"context"
	"fmt"

	apperrors "github.com/ajharbinger/golfleague-skins/internal/errors"
	"github.com/ajharbinger/golfleague-skins/internal/importer"
	"github.com/ajharbinger/golfleague-skins/internal/logger"
	"github.com/ajharbinger/golfleague-skins/internal/services"
)

type loadOptions struct {
	League         string
	ConfigPath     string
	Workbooks      []string
	StartYear      int
	SkinsOnlyFirst bool
	Calculate      bool
}

// loader pushes a league's historical workbooks through the services
type loader struct {
	svc    *services.Services
	logger logger.Logger
}

func newLoader(svc *services.Services, log logger.Logger) *loader {
	return &loader{svc: svc, logger: log}
}

// Run saves the course config when given, then imports each workbook as the season
// StartYear+i. Only the first workbook can be skins-only.
func (l *loader) Run(ctx context.Context, opts loadOptions) error {
	if opts.League == "" {
		return apperrors.InvalidInput("league is required", nil)
	}

	if opts.ConfigPath != "" {
		course, err := importer.LoadCourseConfig(opts.ConfigPath)
		if err != nil {
			return err
		}
		if _, err := l.svc.Courses.SaveConfig(ctx, opts.League, course); err != nil {
			return fmt.Errorf("saving course config: %w", err)
		}
		l.logger.Info("Course config saved", "league", opts.League, "file", opts.ConfigPath)
	}

	for i, path := range opts.Workbooks {
		year := opts.StartYear + i
		l.logger.Info("Processing workbook", "file", path, "year", year)

		wb, err := importer.ParseFile(path, importer.Options{Year: year, SkinsOnly: opts.SkinsOnlyFirst && i == 0})
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		for _, sheet := range wb.Skipped {
			l.logger.Warn("Skipped round sheet with no golfers", "file", path, "sheet", sheet)
		}

		imported, err := l.svc.Scores.ImportRounds(ctx, opts.League, wb.Rounds)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		l.logger.Info("Imported rounds", "file", path, "year", year, "rounds", imported)

		if !opts.Calculate {
			continue
		}
		results, err := l.svc.Skins.RecalculateSeason(ctx, opts.League, year)
		if err != nil {
			return fmt.Errorf("calculating %d: %w", year, err)
		}
		l.logger.Info("Calculated season", "year", year, "rounds", len(results))
	}
	return nil
}
