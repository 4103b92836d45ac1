package repository

import (
	"context"
	"time"

	"github.com/yourusername/pickpulse/internal/models"
)

// GradedPickRepository defines read access to settled picks
type GradedPickRepository interface {
	// ListGraded returns the picks of a source graded at or after since,
	// oldest first.
	ListGraded(ctx context.Context, source string, since time.Time) ([]models.GradedPick, error)
}
