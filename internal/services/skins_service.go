package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/ajharbinger/golfleague-skins/internal/errors"
	"github.com/ajharbinger/golfleague-skins/internal/logger"
	"github.com/ajharbinger/golfleague-skins/internal/metrics"
	"github.com/ajharbinger/golfleague-skins/internal/models"
	"github.com/ajharbinger/golfleague-skins/internal/repository"
	"github.com/ajharbinger/golfleague-skins/internal/skins"
)

// replayHint accompanies carry-over conflicts
const replayHint = "recalculating the season replays every round in order"

// skinsServiceImpl implements SkinsService
type skinsServiceImpl struct {
	repos        *repository.Repositories
	engine       *skins.Engine
	logger       logger.Logger
	metrics      *metrics.Metrics
	perSkinValue int
}

func newSkinsService(repos *repository.Repositories, deps Dependencies) SkinsService {
	return &skinsServiceImpl{
		repos:        repos,
		engine:       deps.Engine,
		logger:       deps.Logger,
		metrics:      deps.Metrics,
		perSkinValue: deps.PerSkinValue,
	}
}

// CalculateRound runs the engine for one stored round and persists the result.
// The round before it must already be calculated since it supplies the carry-over.
// Later rounds that were already calculated are recalculated in order.
func (s *skinsServiceImpl) CalculateRound(ctx context.Context, league string, year, round int) (*skins.SkinRoundResult, error) {
	if err := requireLeague(league, "CalculateRound"); err != nil {
		return nil, err
	}

	var result *skins.SkinRoundResult
	var refreshed int
	err := s.repos.Tx.WithTransaction(ctx, func(tx *repository.Repositories) error {
		config, err := tx.Courses.GetByLeague(ctx, league)
		if err != nil {
			return storageError(err, fmt.Sprintf("no course configuration for league %s", league), "CalculateRound")
		}
		result, err = s.calculate(ctx, tx, league, config.Course(), year, round)
		if err != nil {
			return err
		}
		refreshed, err = s.refreshLater(ctx, tx, league, config.Course(), year, round)
		return err
	})
	if err != nil {
		s.logger.Error("Skins calculation failed", err, "league", league, "year", year, "round", round)
		return nil, unwrapTx(err, "CalculateRound")
	}

	s.logger.Info("Calculated skins",
		"league", league, "round", result.ID,
		"skins", result.Summary.TotalSkins, "pot", result.Summary.TotalSkinMoney,
		"refreshed", refreshed)
	return result, nil
}

// RecalculateSeason replays every stored round of a season in ascending order so each
// round sees the freshly stored carry-over of the one before it.
func (s *skinsServiceImpl) RecalculateSeason(ctx context.Context, league string, year int) ([]*skins.SkinRoundResult, error) {
	if err := requireLeague(league, "RecalculateSeason"); err != nil {
		return nil, err
	}

	var results []*skins.SkinRoundResult
	err := s.repos.Tx.WithTransaction(ctx, func(tx *repository.Repositories) error {
		config, err := tx.Courses.GetByLeague(ctx, league)
		if err != nil {
			return storageError(err, fmt.Sprintf("no course configuration for league %s", league), "RecalculateSeason")
		}
		rounds, err := tx.Scores.ListByYear(ctx, league, year)
		if err != nil {
			return storageError(err, "", "RecalculateSeason")
		}

		results = make([]*skins.SkinRoundResult, 0, len(rounds))
		for _, round := range rounds {
			result, err := s.calculate(ctx, tx, league, config.Course(), year, round.RoundNumber)
			if err != nil {
				return err
			}
			results = append(results, result)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Season recalculation failed", err, "league", league, "year", year)
		return nil, unwrapTx(err, "RecalculateSeason")
	}

	s.logger.Info("Recalculated season", "league", league, "year", year, "rounds", len(results))
	return results, nil
}

// calculate runs one round inside an open transaction
func (s *skinsServiceImpl) calculate(ctx context.Context, tx *repository.Repositories, league string, course skins.CourseConfig, year, round int) (*skins.SkinRoundResult, error) {
	start := time.Now()

	scores, err := tx.Scores.Get(ctx, league, year, round)
	if err != nil {
		return nil, storageError(err, fmt.Sprintf("no scores for %s round %d of %d", league, round, year), "CalculateRound")
	}
	previous, err := previousResult(ctx, tx, league, year, round)
	if err != nil {
		return nil, err
	}

	opts := skins.Options{LeagueName: league, PerSkinValue: s.perSkinValue}
	if previous != nil {
		opts.Previous = skins.SummaryOf(previous.Result())
	}

	result, err := s.engine.CalculateRound(scores.Input(), course, opts)
	if err != nil {
		return nil, err
	}
	if err := tx.Results.Save(ctx, models.NewSkinResult(league, result)); err != nil {
		return nil, storageError(err, "", "CalculateRound")
	}

	s.metrics.RoundCalculated(league, result.Summary.TotalSkins, time.Since(start))
	return result, nil
}

// previousResult returns the stored result of the round immediately before round, or
// nil for the first round of the season. A predecessor that was never calculated, or
// whose sheet changed after it was calculated, is a conflict.
func previousResult(ctx context.Context, tx *repository.Repositories, league string, year, round int) (*models.SkinResult, error) {
	sheet, err := tx.Scores.GetPrevious(ctx, league, year, round)
	if err != nil {
		return nil, storageError(err, "", "CalculateRound")
	}
	if sheet == nil {
		return nil, nil
	}

	stored, err := tx.Results.Get(ctx, league, year, sheet.RoundNumber)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Conflict(
			fmt.Sprintf("round %d of %d must be calculated before round %d", sheet.RoundNumber, year, round), err,
		).WithOperation("CalculateRound").WithDetails(replayHint)
	}
	if err != nil {
		return nil, storageError(err, "", "CalculateRound")
	}
	if stored.CreateDate.Before(sheet.UpdatedAt) {
		return nil, apperrors.Conflict(
			fmt.Sprintf("round %d of %d changed after it was calculated; recalculate it before round %d", sheet.RoundNumber, year, round), nil,
		).WithOperation("CalculateRound").WithDetails(replayHint)
	}
	return stored, nil
}

// refreshLater recalculates the already calculated rounds after round so their
// carry-over follows the new result. It stops at the first later round that was
// never calculated.
func (s *skinsServiceImpl) refreshLater(ctx context.Context, tx *repository.Repositories, league string, course skins.CourseConfig, year, round int) (int, error) {
	sheets, err := tx.Scores.ListByYear(ctx, league, year)
	if err != nil {
		return 0, storageError(err, "", "CalculateRound")
	}

	refreshed := 0
	for _, sheet := range sheets {
		if sheet.RoundNumber <= round {
			continue
		}
		if _, err := tx.Results.Get(ctx, league, year, sheet.RoundNumber); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				break
			}
			return refreshed, storageError(err, "", "CalculateRound")
		}
		if _, err := s.calculate(ctx, tx, league, course, year, sheet.RoundNumber); err != nil {
			return refreshed, err
		}
		refreshed++
	}
	return refreshed, nil
}

// GetRoundResult retrieves a stored round result
func (s *skinsServiceImpl) GetRoundResult(ctx context.Context, league string, year, round int) (*skins.SkinRoundResult, error) {
	if err := requireLeague(league, "GetRoundResult"); err != nil {
		return nil, err
	}
	stored, err := s.repos.Results.Get(ctx, league, year, round)
	if err != nil {
		return nil, storageError(err, fmt.Sprintf("no skins result for %s round %d of %d", league, round, year), "GetRoundResult")
	}
	return stored.Result(), nil
}

// ListRoundResults retrieves a season's stored results in round order
func (s *skinsServiceImpl) ListRoundResults(ctx context.Context, league string, year int) ([]*skins.SkinRoundResult, error) {
	if err := requireLeague(league, "ListRoundResults"); err != nil {
		return nil, err
	}
	stored, err := s.repos.Results.ListByYear(ctx, league, year)
	if err != nil {
		return nil, storageError(err, "", "ListRoundResults")
	}

	results := make([]*skins.SkinRoundResult, len(stored))
	for i := range stored {
		results[i] = stored[i].Result()
	}
	return results, nil
}

// GetRoundWinners lists the won holes of a stored round with their payouts
func (s *skinsServiceImpl) GetRoundWinners(ctx context.Context, league string, year, round int) ([]skins.SkinWinner, error) {
	result, err := s.GetRoundResult(ctx, league, year, round)
	if err != nil {
		return nil, err
	}
	return skins.Winners(result), nil
}

// GetSeasonSummary totals a season's stored results
func (s *skinsServiceImpl) GetSeasonSummary(ctx context.Context, league string, year int) (skins.SeasonSummary, error) {
	results, err := s.ListRoundResults(ctx, league, year)
	if err != nil {
		return skins.SeasonSummary{}, err
	}
	return skins.BuildSeasonSummary(league, year, results), nil
}

// unwrapTx surfaces the AppError raised inside a transaction callback
func unwrapTx(err error, operation string) error {
	if appErr, ok := apperrors.As(err); ok {
		return appErr
	}
	return apperrors.DatabaseError(operation+" failed", err).WithOperation(operation)
}
