package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	apperrors "github.com/ajharbinger/golfleague-skins/internal/errors"
	"github.com/ajharbinger/golfleague-skins/internal/logger"
	"github.com/ajharbinger/golfleague-skins/internal/models"
	"github.com/ajharbinger/golfleague-skins/internal/repository"
	"github.com/ajharbinger/golfleague-skins/internal/skins"
)

// courseServiceImpl implements CourseService
type courseServiceImpl struct {
	repos  *repository.Repositories
	logger logger.Logger
}

func newCourseService(repos *repository.Repositories, deps Dependencies) CourseService {
	return &courseServiceImpl{repos: repos, logger: deps.Logger}
}

// SaveConfig validates and stores a league's course layout
func (s *courseServiceImpl) SaveConfig(ctx context.Context, league string, course skins.CourseConfig) (*models.LeagueConfig, error) {
	if err := requireLeague(league, "SaveConfig"); err != nil {
		return nil, err
	}
	if err := validateCourse(course); err != nil {
		return nil, err
	}

	id := uuid.New()
	if course.ID != "" {
		parsed, err := uuid.Parse(course.ID)
		if err != nil {
			return nil, apperrors.ValidationError("course id must be a UUID", err).WithOperation("SaveConfig")
		}
		id = parsed
	}

	config := &models.LeagueConfig{
		ID:         id,
		LeagueName: league,
		CourseName: course.CourseName,
		Holes:      models.Holes(course.Holes),
	}
	if err := s.repos.Courses.Save(ctx, config); err != nil {
		s.logger.Error("Failed to save course config", err, "league", league)
		return nil, storageError(err, "", "SaveConfig")
	}

	s.logger.Info("Saved course config", "league", league, "holes", len(course.Holes))
	return config, nil
}

// GetConfig retrieves a league's course layout
func (s *courseServiceImpl) GetConfig(ctx context.Context, league string) (*models.LeagueConfig, error) {
	if err := requireLeague(league, "GetConfig"); err != nil {
		return nil, err
	}
	config, err := s.repos.Courses.GetByLeague(ctx, league)
	if err != nil {
		return nil, storageError(err, fmt.Sprintf("no course configuration for league %s", league), "GetConfig")
	}
	return config, nil
}

func validateCourse(course skins.CourseConfig) error {
	if len(course.Holes) == 0 {
		return apperrors.ValidationError("course must define at least one hole", nil).WithOperation("SaveConfig")
	}

	seen := make(map[int]bool, len(course.Holes))
	for _, hole := range course.Holes {
		if hole.HoleNumber < 1 || hole.HoleNumber > 18 {
			return apperrors.ValidationError(fmt.Sprintf("hole number %d is out of range 1-18", hole.HoleNumber), nil).
				WithOperation("SaveConfig")
		}
		if seen[hole.HoleNumber] {
			return apperrors.ValidationError(fmt.Sprintf("hole %d is defined twice", hole.HoleNumber), nil).
				WithOperation("SaveConfig")
		}
		seen[hole.HoleNumber] = true
		if hole.StrokeIndex < 1 || hole.StrokeIndex > 18 {
			return apperrors.ValidationError(fmt.Sprintf("hole %d has stroke index %d, expected 1-18", hole.HoleNumber, hole.StrokeIndex), nil).
				WithOperation("SaveConfig")
		}
	}
	return nil
}
