package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ajharbinger/golfleague-skins/internal/models"
	"github.com/ajharbinger/golfleague-skins/internal/repository"
)

type roundKey struct {
	league string
	year   int
	round  int
}

// MockCourseRepository implements CourseRepository for testing
type MockCourseRepository struct {
	configs map[string]models.LeagueConfig
	err     error
}

func (m *MockCourseRepository) Save(_ context.Context, config *models.LeagueConfig) error {
	if m.err != nil {
		return m.err
	}
	m.configs[config.LeagueName] = *config
	return nil
}

func (m *MockCourseRepository) GetByLeague(_ context.Context, league string) (*models.LeagueConfig, error) {
	config, ok := m.configs[league]
	if !ok {
		return nil, fmt.Errorf("league %s: %w", league, repository.ErrNotFound)
	}
	return &config, nil
}

// MockScoreRepository implements ScoreRepository for testing. Like the real table it
// allows one sheet per league, year and round.
type MockScoreRepository struct {
	rounds map[roundKey]models.RoundScores
	now    func() time.Time
	err    error
}

func (m *MockScoreRepository) Save(_ context.Context, scores *models.RoundScores) error {
	if m.err != nil {
		return m.err
	}
	key := roundKey{scores.LeagueName, scores.RoundYear, scores.RoundNumber}
	if existing, ok := m.rounds[key]; ok && existing.RoundID != scores.RoundID {
		return fmt.Errorf("round %s: %w", scores.RoundID, repository.ErrConflict)
	}
	scores.UpdatedAt = m.now()
	m.rounds[key] = *scores
	return nil
}

func (m *MockScoreRepository) GetPrevious(_ context.Context, league string, year, round int) (*models.RoundScores, error) {
	var previous *models.RoundScores
	for key, scores := range m.rounds {
		if key.league != league || key.year != year || key.round >= round {
			continue
		}
		if previous == nil || key.round > previous.RoundNumber {
			s := scores
			previous = &s
		}
	}
	return previous, nil
}

func (m *MockScoreRepository) Get(_ context.Context, league string, year, round int) (*models.RoundScores, error) {
	scores, ok := m.rounds[roundKey{league, year, round}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &scores, nil
}

func (m *MockScoreRepository) ListByYear(_ context.Context, league string, year int) ([]models.RoundScores, error) {
	rounds := []models.RoundScores{}
	for key, scores := range m.rounds {
		if key.league == league && key.year == year {
			rounds = append(rounds, scores)
		}
	}
	sort.Slice(rounds, func(i, j int) bool { return rounds[i].RoundNumber < rounds[j].RoundNumber })
	return rounds, nil
}

// MockSkinResultRepository implements SkinResultRepository for testing
type MockSkinResultRepository struct {
	results map[roundKey]models.SkinResult
	saves   int
}

func (m *MockSkinResultRepository) Save(_ context.Context, result *models.SkinResult) error {
	m.saves++
	m.results[roundKey{result.LeagueName, result.RoundYear, result.RoundNumber}] = *result
	return nil
}

func (m *MockSkinResultRepository) Get(_ context.Context, league string, year, round int) (*models.SkinResult, error) {
	result, ok := m.results[roundKey{league, year, round}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &result, nil
}

func (m *MockSkinResultRepository) ListByYear(_ context.Context, league string, year int) ([]models.SkinResult, error) {
	results := []models.SkinResult{}
	for key, result := range m.results {
		if key.league == league && key.year == year {
			results = append(results, result)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].RoundNumber < results[j].RoundNumber })
	return results, nil
}

// MockTransactionManager runs the callback against the same in-memory repositories
type MockTransactionManager struct {
	repos *repository.Repositories
	calls int
}

func (m *MockTransactionManager) WithTransaction(_ context.Context, fn func(repos *repository.Repositories) error) error {
	m.calls++
	if err := fn(m.repos); err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

type mockStore struct {
	now      time.Time
	registry *prometheus.Registry
	courses  *MockCourseRepository
	scores   *MockScoreRepository
	results  *MockSkinResultRepository
	tx       *MockTransactionManager
	repos    *repository.Repositories
}

func newMockStore() *mockStore {
	s := &mockStore{
		now:      time.Date(2021, 6, 1, 18, 0, 0, 0, time.UTC),
		registry: prometheus.NewRegistry(),
		courses:  &MockCourseRepository{configs: map[string]models.LeagueConfig{}},
		scores:   &MockScoreRepository{rounds: map[roundKey]models.RoundScores{}},
		results:  &MockSkinResultRepository{results: map[roundKey]models.SkinResult{}},
	}
	s.scores.now = s.clock
	s.tx = &MockTransactionManager{}
	s.repos = &repository.Repositories{
		Courses: s.courses,
		Scores:  s.scores,
		Results: s.results,
		Tx:      s.tx,
	}
	s.tx.repos = s.repos
	return s
}

// clock drives both the engine and the sheet timestamps
func (s *mockStore) clock() time.Time { return s.now }

var errDatabaseDown = errors.New("connection refused")
