package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/pickpulse/internal/database"
	"github.com/yourusername/pickpulse/internal/models"
)

// PostgresGradedPickRepository implements GradedPickRepository for PostgreSQL
type PostgresGradedPickRepository struct {
	db *database.DB
}

// NewPostgresGradedPickRepository creates a new graded pick repository
func NewPostgresGradedPickRepository(db *database.DB) GradedPickRepository {
	return &PostgresGradedPickRepository{db: db}
}

// ListGraded retrieves the graded picks of a source since a point in time
func (r *PostgresGradedPickRepository) ListGraded(ctx context.Context, source string, since time.Time) ([]models.GradedPick, error) {
	query := `
		SELECT id, sport, market, result, tier, confidence, units
		FROM pick_results
		WHERE source = $1 AND graded_at >= $2
		ORDER BY graded_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, source, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query graded picks: %w", err)
	}
	defer rows.Close()

	picks := make([]models.GradedPick, 0)
	for rows.Next() {
		pick, err := scanGradedPick(rows)
		if err != nil {
			return nil, err
		}
		picks = append(picks, pick)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating graded picks: %w", err)
	}

	return picks, nil
}

func scanGradedPick(row pgx.Row) (models.GradedPick, error) {
	var (
		id         uuid.UUID
		sport      string
		market     string
		result     string
		tier       *string
		confidence *float64
		units      float64
	)
	if err := row.Scan(&id, &sport, &market, &result, &tier, &confidence, &units); err != nil {
		return models.GradedPick{}, fmt.Errorf("failed to scan graded pick: %w", err)
	}

	pick := models.GradedPick{
		ID:         &id,
		Sport:      sport,
		Market:     market,
		Result:     models.Result(result),
		Confidence: confidence,
		Units:      units,
	}
	if tier != nil {
		t := models.Tier(*tier)
		pick.Tier = &t
	}
	return pick, nil
}
