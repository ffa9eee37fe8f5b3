package services

import (
	"context"
	"database/sql"
	"errors"

	apperrors "github.com/ajharbinger/golfleague-skins/internal/errors"
	"github.com/ajharbinger/golfleague-skins/internal/logger"
	"github.com/ajharbinger/golfleague-skins/internal/metrics"
	"github.com/ajharbinger/golfleague-skins/internal/models"
	"github.com/ajharbinger/golfleague-skins/internal/repository"
	"github.com/ajharbinger/golfleague-skins/internal/skins"
	"github.com/ajharbinger/golfleague-skins/pkg/config"
)

// Services contains all application services
type Services struct {
	Courses CourseService
	Scores  ScoreService
	Skins   SkinsService
}

// CourseService defines the interface for league course configuration
type CourseService interface {
	SaveConfig(ctx context.Context, league string, course skins.CourseConfig) (*models.LeagueConfig, error)
	GetConfig(ctx context.Context, league string) (*models.LeagueConfig, error)
}

// ScoreService defines the interface for round score sheets
type ScoreService interface {
	SaveRoundScores(ctx context.Context, league string, input skins.RoundScoreInput) (*models.RoundScores, error)
	// ImportRounds stores a batch of score sheets in one transaction and returns how many were saved
	ImportRounds(ctx context.Context, league string, rounds []skins.RoundScoreInput) (int, error)
	GetRoundScores(ctx context.Context, league string, year, round int) (*models.RoundScores, error)
	ListRoundScores(ctx context.Context, league string, year int) ([]models.RoundScores, error)
}

// SkinsService defines the interface for skins calculation and reporting
type SkinsService interface {
	CalculateRound(ctx context.Context, league string, year, round int) (*skins.SkinRoundResult, error)
	RecalculateSeason(ctx context.Context, league string, year int) ([]*skins.SkinRoundResult, error)
	GetRoundResult(ctx context.Context, league string, year, round int) (*skins.SkinRoundResult, error)
	ListRoundResults(ctx context.Context, league string, year int) ([]*skins.SkinRoundResult, error)
	GetRoundWinners(ctx context.Context, league string, year, round int) ([]skins.SkinWinner, error)
	GetSeasonSummary(ctx context.Context, league string, year int) (skins.SeasonSummary, error)
}

// Dependencies carries the collaborators shared by every service
type Dependencies struct {
	Logger       logger.Logger
	Metrics      *metrics.Metrics
	Engine       *skins.Engine
	PerSkinValue int
}

func (d Dependencies) withDefaults() Dependencies {
	if d.Logger == nil {
		d.Logger = logger.NewNopLogger()
	}
	if d.Engine == nil {
		d.Engine = skins.NewEngine()
	}
	return d
}

// NewServices creates a new Services instance backed by postgres
func NewServices(db *sql.DB, cfg *config.Config, log logger.Logger, m *metrics.Metrics) *Services {
	return NewServicesWithRepositories(repository.NewRepositories(db), Dependencies{
		Logger:       log,
		Metrics:      m,
		PerSkinValue: cfg.PerSkinValue,
	})
}

// NewServicesWithRepositories wires services over an existing repository set
func NewServicesWithRepositories(repos *repository.Repositories, deps Dependencies) *Services {
	deps = deps.withDefaults()
	return &Services{
		Courses: newCourseService(repos, deps),
		Scores:  newScoreService(repos, deps),
		Skins:   newSkinsService(repos, deps),
	}
}

// storageError maps a repository failure onto the application error taxonomy
func storageError(err error, notFound, operation string) error {
	if appErr, ok := apperrors.As(err); ok {
		return appErr
	}
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NotFound(notFound, err).WithOperation(operation)
	case errors.Is(err, repository.ErrConflict):
		return apperrors.Conflict("conflicts with an existing record", err).WithOperation(operation)
	}
	return apperrors.DatabaseError(operation+" failed", err).WithOperation(operation)
}

func requireLeague(league, operation string) error {
	if league == "" {
		return apperrors.InvalidInput("league name is required", nil).WithOperation(operation)
	}
	return nil
}
