package repository

import (
	"context"
	"errors"

	"github.com/ajharbinger/golfleague-skins/internal/models"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when a write collides with a different existing record
var ErrConflict = errors.New("record conflicts with an existing record")

// CourseRepository defines the interface for league course configuration access
type CourseRepository interface {
	Save(ctx context.Context, config *models.LeagueConfig) error
	GetByLeague(ctx context.Context, leagueName string) (*models.LeagueConfig, error)
}

// ScoreRepository defines the interface for round score sheet access
type ScoreRepository interface {
	Save(ctx context.Context, scores *models.RoundScores) error
	Get(ctx context.Context, leagueName string, year, roundNumber int) (*models.RoundScores, error)
	// GetPrevious returns the score sheet immediately preceding roundNumber in the
	// same year, or nil when roundNumber is the first round with a sheet.
	GetPrevious(ctx context.Context, leagueName string, year, roundNumber int) (*models.RoundScores, error)
	ListByYear(ctx context.Context, leagueName string, year int) ([]models.RoundScores, error)
}

// SkinResultRepository defines the interface for calculated skins results
type SkinResultRepository interface {
	Save(ctx context.Context, result *models.SkinResult) error
	Get(ctx context.Context, leagueName string, year, roundNumber int) (*models.SkinResult, error)
	ListByYear(ctx context.Context, leagueName string, year int) ([]models.SkinResult, error)
}

// TransactionManager defines the interface for database transaction management
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(repos *Repositories) error) error
}

// Repositories groups all repository interfaces
type Repositories struct {
	Courses CourseRepository
	Scores  ScoreRepository
	Results SkinResultRepository
	Tx      TransactionManager
}
