package services

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/ajharbinger/golfleague-skins/internal/errors"
	"github.com/ajharbinger/golfleague-skins/internal/logger"
	"github.com/ajharbinger/golfleague-skins/internal/metrics"
	"github.com/ajharbinger/golfleague-skins/internal/models"
	"github.com/ajharbinger/golfleague-skins/internal/repository"
	"github.com/ajharbinger/golfleague-skins/internal/skins"
)

// scoreServiceImpl implements ScoreService
type scoreServiceImpl struct {
	repos   *repository.Repositories
	logger  logger.Logger
	metrics *metrics.Metrics
}

func newScoreService(repos *repository.Repositories, deps Dependencies) ScoreService {
	return &scoreServiceImpl{repos: repos, logger: deps.Logger, metrics: deps.Metrics}
}

// RoundID builds the identifier used when a score sheet does not carry one
func RoundID(year, round int) string {
	return fmt.Sprintf("%d%d", year, round)
}

// SaveRoundScores stores one round's score sheet
func (s *scoreServiceImpl) SaveRoundScores(ctx context.Context, league string, input skins.RoundScoreInput) (*models.RoundScores, error) {
	if err := requireLeague(league, "SaveRoundScores"); err != nil {
		return nil, err
	}
	input, err := prepareRound(input)
	if err != nil {
		return nil, err
	}

	record := models.NewRoundScores(league, input)
	if err := s.repos.Scores.Save(ctx, record); err != nil {
		s.logger.Error("Failed to save round scores", err, "league", league, "round", input.RoundID)
		return nil, saveError(err, input, "SaveRoundScores")
	}

	s.logger.Info("Saved round scores", "league", league, "round", input.RoundID, "golfers", len(input.GolferScores))
	return record, nil
}

// ImportRounds stores every round atomically. The league must already have a
// course configuration.
func (s *scoreServiceImpl) ImportRounds(ctx context.Context, league string, rounds []skins.RoundScoreInput) (int, error) {
	if err := requireLeague(league, "ImportRounds"); err != nil {
		return 0, err
	}

	prepared := make([]skins.RoundScoreInput, 0, len(rounds))
	for _, round := range rounds {
		input, err := prepareRound(round)
		if err != nil {
			return 0, err
		}
		prepared = append(prepared, input)
	}

	err := s.repos.Tx.WithTransaction(ctx, func(tx *repository.Repositories) error {
		if _, err := tx.Courses.GetByLeague(ctx, league); err != nil {
			return storageError(err, fmt.Sprintf("no course configuration for league %s", league), "ImportRounds")
		}
		for _, input := range prepared {
			if err := tx.Scores.Save(ctx, models.NewRoundScores(league, input)); err != nil {
				return saveError(err, input, "ImportRounds")
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to import rounds", err, "league", league, "rounds", len(prepared))
		return 0, storageError(err, "", "ImportRounds")
	}

	s.metrics.RoundsImported(league, len(prepared))
	s.logger.Info("Imported rounds", "league", league, "rounds", len(prepared))
	return len(prepared), nil
}

// GetRoundScores retrieves one round's score sheet
func (s *scoreServiceImpl) GetRoundScores(ctx context.Context, league string, year, round int) (*models.RoundScores, error) {
	if err := requireLeague(league, "GetRoundScores"); err != nil {
		return nil, err
	}
	record, err := s.repos.Scores.Get(ctx, league, year, round)
	if err != nil {
		return nil, storageError(err, fmt.Sprintf("no scores for %s round %d of %d", league, round, year), "GetRoundScores")
	}
	return record, nil
}

// ListRoundScores retrieves a season's score sheets in round order
func (s *scoreServiceImpl) ListRoundScores(ctx context.Context, league string, year int) ([]models.RoundScores, error) {
	if err := requireLeague(league, "ListRoundScores"); err != nil {
		return nil, err
	}
	rounds, err := s.repos.Scores.ListByYear(ctx, league, year)
	if err != nil {
		return nil, storageError(err, "", "ListRoundScores")
	}
	return rounds, nil
}

// saveError reports a round stored under another id as a conflict
func saveError(err error, input skins.RoundScoreInput, operation string) error {
	if errors.Is(err, repository.ErrConflict) {
		return apperrors.Conflict(
			fmt.Sprintf("round %d of %d is already stored under a different round id", input.RoundNumber, input.RoundYear), err,
		).WithOperation(operation)
	}
	return storageError(err, "", operation)
}

// prepareRound checks the fields storage depends on and fills in the round id
func prepareRound(input skins.RoundScoreInput) (skins.RoundScoreInput, error) {
	invalid := func(msg string) error {
		return apperrors.ValidationError(msg, nil).WithOperation("SaveRoundScores")
	}
	switch {
	case input.RoundYear <= 0:
		return input, invalid("round year is required")
	case input.RoundNumber <= 0:
		return input, invalid("round number must be positive")
	case input.StartHole != 1 && input.StartHole != 10:
		return input, invalid(fmt.Sprintf("start hole must be 1 or 10, got %d", input.StartHole))
	}
	for i, golfer := range input.GolferScores {
		if golfer.GolferName == "" {
			return input, invalid(fmt.Sprintf("golfer %d is missing a name", i+1))
		}
		if len(golfer.Scores) > skins.HolesPerRound {
			return input, invalid(fmt.Sprintf("golfer %q has %d scores, expected at most %d", golfer.GolferName, len(golfer.Scores), skins.HolesPerRound))
		}
	}
	if input.RoundID == "" {
		input.RoundID = RoundID(input.RoundYear, input.RoundNumber)
	}
	return input, nil
}
