package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ajharbinger/golfleague-skins/internal/models"
)

// scoreRepository implements ScoreRepository
type scoreRepository struct {
	db dbExecutor
}

// NewScoreRepository creates a new round score repository
func NewScoreRepository(db dbExecutor) ScoreRepository {
	return &scoreRepository{db: db}
}

const roundScoreColumns = `league_name, round_id, round_year, round_number, round_played_date,
	start_hole, golfer_scores, created_at, updated_at`

// Save creates or replaces a round's score sheet
func (r *scoreRepository) Save(ctx context.Context, scores *models.RoundScores) error {
	query := `
		INSERT INTO round_scores (` + roundScoreColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		ON CONFLICT (league_name, round_id)
		DO UPDATE SET
			round_year = $3,
			round_number = $4,
			round_played_date = $5,
			start_hole = $6,
			golfer_scores = $7,
			updated_at = $8
		RETURNING created_at
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		scores.LeagueName, scores.RoundID, scores.RoundYear, scores.RoundNumber, scores.RoundPlayedDate,
		scores.StartHole, scores.GolferScores, now,
	).Scan(&scores.CreatedAt)
	if err != nil {
		return writeError(err, "failed to save round scores")
	}
	scores.UpdatedAt = now

	return nil
}

// Get retrieves one round's score sheet
func (r *scoreRepository) Get(ctx context.Context, leagueName string, year, roundNumber int) (*models.RoundScores, error) {
	query := `
		SELECT ` + roundScoreColumns + `
		FROM round_scores
		WHERE league_name = $1 AND round_year = $2 AND round_number = $3
	`

	scores, err := scanRoundScores(r.db.QueryRowContext(ctx, query, leagueName, year, roundNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("scores for round %d/%d: %w", year, roundNumber, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get round scores: %w", err)
	}
	return scores, nil
}

// GetPrevious retrieves the closest earlier score sheet in the same season
func (r *scoreRepository) GetPrevious(ctx context.Context, leagueName string, year, roundNumber int) (*models.RoundScores, error) {
	query := `
		SELECT ` + roundScoreColumns + `
		FROM round_scores
		WHERE league_name = $1 AND round_year = $2 AND round_number < $3
		ORDER BY round_number DESC
		LIMIT 1
	`

	scores, err := scanRoundScores(r.db.QueryRowContext(ctx, query, leagueName, year, roundNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get previous round scores: %w", err)
	}
	return scores, nil
}

// ListByYear retrieves every score sheet of a season in round order
func (r *scoreRepository) ListByYear(ctx context.Context, leagueName string, year int) ([]models.RoundScores, error) {
	query := `
		SELECT ` + roundScoreColumns + `
		FROM round_scores
		WHERE league_name = $1 AND round_year = $2
		ORDER BY round_number
	`

	rows, err := r.db.QueryContext(ctx, query, leagueName, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query round scores: %w", err)
	}
	defer rows.Close()

	rounds := []models.RoundScores{}
	for rows.Next() {
		scores, err := scanRoundScores(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan round scores: %w", err)
		}
		rounds = append(rounds, *scores)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate round scores: %w", err)
	}

	return rounds, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRoundScores(row rowScanner) (*models.RoundScores, error) {
	var scores models.RoundScores
	var played sql.NullTime
	err := row.Scan(
		&scores.LeagueName, &scores.RoundID, &scores.RoundYear, &scores.RoundNumber, &played,
		&scores.StartHole, &scores.GolferScores, &scores.CreatedAt, &scores.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if played.Valid {
		scores.RoundPlayedDate = played.Time
	}
	return &scores, nil
}
