package api

import (
	"context"
	"errors"

	"github.com/google/uuid"

	apperrors "github.com/ajharbinger/golfleague-skins/internal/errors"
	"github.com/ajharbinger/golfleague-skins/internal/models"
	"github.com/ajharbinger/golfleague-skins/internal/skins"
)

// mockCourseService implements services.CourseService for testing
type mockCourseService struct {
	configs map[string]*models.LeagueConfig
}

func (m *mockCourseService) SaveConfig(_ context.Context, league string, course skins.CourseConfig) (*models.LeagueConfig, error) {
	if len(course.Holes) == 0 {
		return nil, apperrors.ValidationError("course must define at least one hole", nil)
	}
	config := &models.LeagueConfig{ID: uuid.New(), LeagueName: league, CourseName: course.CourseName, Holes: course.Holes}
	m.configs[league] = config
	return config, nil
}

func (m *mockCourseService) GetConfig(_ context.Context, league string) (*models.LeagueConfig, error) {
	config, ok := m.configs[league]
	if !ok {
		return nil, apperrors.NotFound("no course configuration for league "+league, nil)
	}
	return config, nil
}

// mockScoreService implements services.ScoreService for testing
type mockScoreService struct {
	saved    []skins.RoundScoreInput
	imported []skins.RoundScoreInput
	err      error
}

func (m *mockScoreService) SaveRoundScores(_ context.Context, league string, input skins.RoundScoreInput) (*models.RoundScores, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.saved = append(m.saved, input)
	return models.NewRoundScores(league, input), nil
}

func (m *mockScoreService) ImportRounds(_ context.Context, _ string, rounds []skins.RoundScoreInput) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.imported = append(m.imported, rounds...)
	return len(rounds), nil
}

func (m *mockScoreService) GetRoundScores(_ context.Context, league string, year, round int) (*models.RoundScores, error) {
	for _, input := range m.saved {
		if input.RoundYear == year && input.RoundNumber == round {
			return models.NewRoundScores(league, input), nil
		}
	}
	return nil, apperrors.NotFound("no scores", nil)
}

func (m *mockScoreService) ListRoundScores(_ context.Context, league string, year int) ([]models.RoundScores, error) {
	if m.err != nil {
		return nil, m.err
	}
	rounds := []models.RoundScores{}
	for _, input := range m.saved {
		if input.RoundYear == year {
			rounds = append(rounds, *models.NewRoundScores(league, input))
		}
	}
	return rounds, nil
}

// mockSkinsService implements services.SkinsService for testing
type mockSkinsService struct {
	result       *skins.SkinRoundResult
	err          error
	calculated   [][2]int
	recalculated []int
}

func (m *mockSkinsService) CalculateRound(_ context.Context, _ string, year, round int) (*skins.SkinRoundResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.calculated = append(m.calculated, [2]int{year, round})
	return m.result, nil
}

func (m *mockSkinsService) RecalculateSeason(_ context.Context, _ string, year int) ([]*skins.SkinRoundResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.recalculated = append(m.recalculated, year)
	return []*skins.SkinRoundResult{m.result}, nil
}

func (m *mockSkinsService) GetRoundResult(_ context.Context, _ string, year, round int) (*skins.SkinRoundResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.result == nil || m.result.RoundYear != year || m.result.RoundNumber != round {
		return nil, apperrors.NotFound("no skins result", nil)
	}
	return m.result, nil
}

func (m *mockSkinsService) ListRoundResults(_ context.Context, _ string, _ int) ([]*skins.SkinRoundResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []*skins.SkinRoundResult{m.result}, nil
}

func (m *mockSkinsService) GetRoundWinners(ctx context.Context, league string, year, round int) ([]skins.SkinWinner, error) {
	result, err := m.GetRoundResult(ctx, league, year, round)
	if err != nil {
		return nil, err
	}
	return skins.Winners(result), nil
}

func (m *mockSkinsService) GetSeasonSummary(_ context.Context, league string, year int) (skins.SeasonSummary, error) {
	if m.err != nil {
		return skins.SeasonSummary{}, m.err
	}
	return skins.BuildSeasonSummary(league, year, []*skins.SkinRoundResult{m.result}), nil
}

type mockHealthChecker struct {
	err error
}

func (m mockHealthChecker) HealthCheck() error { return m.err }

var errConnectionLost = errors.New("connection lost")
