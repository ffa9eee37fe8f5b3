package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ajharbinger/golfleague-skins/internal/models"
)

// skinResultRepository implements SkinResultRepository
type skinResultRepository struct {
	db dbExecutor
}

// NewSkinResultRepository creates a new skins result repository
func NewSkinResultRepository(db dbExecutor) SkinResultRepository {
	return &skinResultRepository{db: db}
}

const skinResultColumns = `league_name, round_id, round_year, round_number, total_skins,
	total_skin_money, create_date, document`

// Save creates or replaces the result for a round
func (r *skinResultRepository) Save(ctx context.Context, result *models.SkinResult) error {
	query := `
		INSERT INTO skin_results (` + skinResultColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (league_name, round_id)
		DO UPDATE SET
			round_year = $3,
			round_number = $4,
			total_skins = $5,
			total_skin_money = $6,
			create_date = $7,
			document = $8
	`

	_, err := r.db.ExecContext(ctx, query,
		result.LeagueName, result.RoundID, result.RoundYear, result.RoundNumber, result.TotalSkins,
		result.TotalSkinMoney, result.CreateDate, result.Document,
	)
	if err != nil {
		return writeError(err, "failed to save skin result")
	}

	return nil
}

// Get retrieves the result for one round
func (r *skinResultRepository) Get(ctx context.Context, leagueName string, year, roundNumber int) (*models.SkinResult, error) {
	query := `
		SELECT ` + skinResultColumns + `
		FROM skin_results
		WHERE league_name = $1 AND round_year = $2 AND round_number = $3
	`

	result, err := scanSkinResult(r.db.QueryRowContext(ctx, query, leagueName, year, roundNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("skin result for round %d/%d: %w", year, roundNumber, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get skin result: %w", err)
	}
	return result, nil
}

// ListByYear retrieves every result of a season in round order
func (r *skinResultRepository) ListByYear(ctx context.Context, leagueName string, year int) ([]models.SkinResult, error) {
	query := `
		SELECT ` + skinResultColumns + `
		FROM skin_results
		WHERE league_name = $1 AND round_year = $2
		ORDER BY round_number
	`

	rows, err := r.db.QueryContext(ctx, query, leagueName, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query skin results: %w", err)
	}
	defer rows.Close()

	results := []models.SkinResult{}
	for rows.Next() {
		result, err := scanSkinResult(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan skin result: %w", err)
		}
		results = append(results, *result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate skin results: %w", err)
	}

	return results, nil
}

func scanSkinResult(row rowScanner) (*models.SkinResult, error) {
	var result models.SkinResult
	err := row.Scan(
		&result.LeagueName, &result.RoundID, &result.RoundYear, &result.RoundNumber, &result.TotalSkins,
		&result.TotalSkinMoney, &result.CreateDate, &result.Document,
	)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
