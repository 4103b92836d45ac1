package repository

import (
	"context"
	"errors"
	"time"

	"github.com/yourusername/pickpulse/internal/database"
	"github.com/yourusername/pickpulse/internal/models"
)

// ErrDatabaseDisabled is returned by repositories when no database is configured
var ErrDatabaseDisabled = errors.New("database is disabled")

// Repositories holds all repository implementations
type Repositories struct {
	GradedPicks GradedPickRepository
}

// NewRepositories creates the repositories. A nil db yields repositories
// that fail with ErrDatabaseDisabled.
func NewRepositories(db *database.DB) *Repositories {
	if db == nil {
		return &Repositories{GradedPicks: disabledGradedPickRepository{}}
	}
	return &Repositories{GradedPicks: NewPostgresGradedPickRepository(db)}
}

type disabledGradedPickRepository struct{}

func (disabledGradedPickRepository) ListGraded(context.Context, string, time.Time) ([]models.GradedPick, error) {
	return nil, ErrDatabaseDisabled
}
