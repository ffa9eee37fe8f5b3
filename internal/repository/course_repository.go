package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ajharbinger/golfleague-skins/internal/models"
)

// courseRepository implements CourseRepository
type courseRepository struct {
	db dbExecutor
}

// NewCourseRepository creates a new course configuration repository
func NewCourseRepository(db dbExecutor) CourseRepository {
	return &courseRepository{db: db}
}

// Save creates or replaces a league's course configuration
func (r *courseRepository) Save(ctx context.Context, config *models.LeagueConfig) error {
	query := `
		INSERT INTO league_configs (league_name, id, course_name, holes, create_date, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (league_name)
		DO UPDATE SET
			id = $2,
			course_name = $3,
			holes = $4,
			updated_at = $5
		RETURNING create_date
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, config.LeagueName, config.ID, config.CourseName, config.Holes, now).
		Scan(&config.CreateDate)
	if err != nil {
		return writeError(err, "failed to save league config")
	}
	config.UpdatedAt = now

	return nil
}

// GetByLeague retrieves the course configuration for a league
func (r *courseRepository) GetByLeague(ctx context.Context, leagueName string) (*models.LeagueConfig, error) {
	query := `
		SELECT id, league_name, course_name, holes, create_date, updated_at
		FROM league_configs
		WHERE league_name = $1
	`

	var config models.LeagueConfig
	err := r.db.QueryRowContext(ctx, query, leagueName).Scan(
		&config.ID, &config.LeagueName, &config.CourseName, &config.Holes, &config.CreateDate, &config.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("league config %s: %w", leagueName, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get league config: %w", err)
	}

	return &config, nil
}
