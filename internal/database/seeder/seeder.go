package seeder

import (
	"context"

	"skillified/internal/database"
)

// Seeder loads reference data. Run must be safe to repeat.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
