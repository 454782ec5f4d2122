// Package store persists scored places, their safety attributes and
// review notes.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/safety-cli/internal/config"
	"github.com/sells-group/safety-cli/internal/db"
	"github.com/sells-group/safety-cli/internal/model"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = eris.New("store: not found")

// PlaceFilter specifies criteria for listing places.
type PlaceFilter struct {
	// MinScore keeps places whose safety_score is at least this value.
	MinScore float64 `json:"min_score,omitempty"`
	// Limit caps the result count. Zero means no limit.
	Limit int `json:"limit,omitempty"`
}

// Store defines the persistence interface for places.
type Store interface {
	// UpsertPlace inserts p keyed by name, or updates the safety score of
	// the existing place with that name. It returns the stored place.
	UpsertPlace(ctx context.Context, p model.Place) (*model.Place, error)
	UpsertSafetyAttributes(ctx context.Context, a model.SafetyAttributes) error
	// ReplaceReviews swaps the reviews of a place for reviews.
	ReplaceReviews(ctx context.Context, placeID string, reviews []model.Review) error

	ListPlaces(ctx context.Context, filter PlaceFilter) ([]model.Place, error)
	GetPlace(ctx context.Context, id string) (*model.PlaceDetail, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// DefaultSQLitePath is used when the sqlite driver has no database_url.
const DefaultSQLitePath = "safety.db"

// Open creates the store selected by cfg.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "postgres":
		pool, err := db.Connect(ctx, cfg.DatabaseURL, db.PoolConfig{MaxConns: cfg.MaxConns, MinConns: cfg.MinConns})
		if err != nil {
			return nil, eris.Wrap(err, "store: open postgres")
		}
		return NewPostgres(pool), nil
	case "sqlite":
		dsn := cfg.DatabaseURL
		if dsn == "" {
			dsn = DefaultSQLitePath
		}
		return NewSQLite(dsn)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
