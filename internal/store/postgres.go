package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"

	"github.com/sells-group/safety-cli/internal/db"
	"github.com/sells-group/safety-cli/internal/model"
)

// PostgresStore implements Store on a pgx pool.
type PostgresStore struct {
	pool db.Pool
}

// NewPostgres wraps pool. The store closes the pool on Close.
func NewPostgres(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS places (
	id               TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	name             TEXT NOT NULL UNIQUE,
	lat              DOUBLE PRECISION NOT NULL,
	lng              DOUBLE PRECISION NOT NULL,
	safety_score     DOUBLE PRECISION NOT NULL DEFAULT 0,
	elo_score        DOUBLE PRECISION NOT NULL DEFAULT 1000,
	popularity_score DOUBLE PRECISION NOT NULL DEFAULT 0,
	country          TEXT NOT NULL DEFAULT '',
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS place_safety_attributes (
	place_id           TEXT PRIMARY KEY REFERENCES places(id) ON DELETE CASCADE,
	violent_crime      DOUBLE PRECISION NOT NULL,
	property_crime     DOUBLE PRECISION NOT NULL,
	accident_rate      DOUBLE PRECISION NOT NULL,
	safety_infra       DOUBLE PRECISION NOT NULL,
	police_density     DOUBLE PRECISION NOT NULL,
	night_safety_score DOUBLE PRECISION NOT NULL,
	women_safety_score DOUBLE PRECISION NOT NULL,
	data_source        TEXT NOT NULL,
	confidence_score   DOUBLE PRECISION NOT NULL,
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS place_reviews (
	id          TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	place_id    TEXT NOT NULL REFERENCES places(id) ON DELETE CASCADE,
	rating      INTEGER NOT NULL,
	review_text TEXT NOT NULL,
	tags        TEXT[] NOT NULL DEFAULT '{}',
	is_verified BOOLEAN NOT NULL DEFAULT false,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_places_safety_score ON places(safety_score DESC);
CREATE INDEX IF NOT EXISTS idx_place_reviews_place_id ON place_reviews(place_id);
`

var reviewColumns = []string{"id", "place_id", "rating", "review_text", "tags", "is_verified", "created_at"}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) UpsertPlace(ctx context.Context, p model.Place) (*model.Place, error) {
	now := time.Now().UTC()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	err := s.pool.QueryRow(ctx,
		`INSERT INTO places (id, name, lat, lng, safety_score, elo_score, popularity_score, country, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (name) DO UPDATE SET safety_score = EXCLUDED.safety_score, updated_at = EXCLUDED.updated_at
		RETURNING id, lat, lng, safety_score, elo_score, popularity_score, country, created_at, updated_at`,
		p.ID, p.Name, p.Lat, p.Lng, p.SafetyScore, p.EloScore, p.PopularityScore, p.Country, now, now,
	).Scan(&p.ID, &p.Lat, &p.Lng, &p.SafetyScore, &p.EloScore, &p.PopularityScore, &p.Country, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: upsert place %s", p.Name)
	}
	return &p, nil
}

func (s *PostgresStore) UpsertSafetyAttributes(ctx context.Context, a model.SafetyAttributes) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO place_safety_attributes (place_id, violent_crime, property_crime, accident_rate, safety_infra,
			police_density, night_safety_score, women_safety_score, data_source, confidence_score, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (place_id) DO UPDATE SET
			violent_crime = EXCLUDED.violent_crime,
			property_crime = EXCLUDED.property_crime,
			accident_rate = EXCLUDED.accident_rate,
			safety_infra = EXCLUDED.safety_infra,
			police_density = EXCLUDED.police_density,
			night_safety_score = EXCLUDED.night_safety_score,
			women_safety_score = EXCLUDED.women_safety_score,
			data_source = EXCLUDED.data_source,
			confidence_score = EXCLUDED.confidence_score,
			updated_at = EXCLUDED.updated_at`,
		a.PlaceID, a.ViolentCrime, a.PropertyCrime, a.AccidentRate, a.SafetyInfra,
		a.PoliceDensity, a.NightSafetyScore, a.WomenSafetyScore, a.DataSource, a.ConfidenceScore, time.Now().UTC(),
	)
	return eris.Wrapf(err, "postgres: upsert safety attributes %s", a.PlaceID)
}

func (s *PostgresStore) ReplaceReviews(ctx context.Context, placeID string, reviews []model.Review) error {
	now := time.Now().UTC()
	rows := make([][]any, 0, len(reviews))
	for i, r := range reviews {
		id := r.ID
		if id == "" {
			id = uuid.New().String()
		}
		created := r.CreatedAt
		if created.IsZero() {
			created = now.Add(time.Duration(i) * time.Microsecond)
		}
		tags := r.Tags
		if tags == nil {
			tags = []string{}
		}
		rows = append(rows, []any{id, placeID, r.Rating, r.ReviewText, tags, r.IsVerified, created})
	}

	if _, err := db.ReplaceWhere(ctx, s.pool, "place_reviews", "place_id", placeID, reviewColumns, rows); err != nil {
		return eris.Wrapf(err, "postgres: replace reviews %s", placeID)
	}
	return nil
}

func (s *PostgresStore) ListPlaces(ctx context.Context, filter PlaceFilter) ([]model.Place, error) {
	query := `SELECT id, name, lat, lng, safety_score, elo_score, popularity_score, country, created_at, updated_at
		FROM places WHERE safety_score >= $1 ORDER BY safety_score DESC, name`
	args := []any{filter.MinScore}
	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, len(args)+1)
		args = append(args, filter.Limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list places")
	}
	defer rows.Close()

	places := []model.Place{}
	for rows.Next() {
		var p model.Place
		if err := rows.Scan(&p.ID, &p.Name, &p.Lat, &p.Lng, &p.SafetyScore, &p.EloScore,
			&p.PopularityScore, &p.Country, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan place")
		}
		places = append(places, p)
	}
	return places, eris.Wrap(rows.Err(), "postgres: iterate places")
}

func (s *PostgresStore) GetPlace(ctx context.Context, id string) (*model.PlaceDetail, error) {
	d := &model.PlaceDetail{Reviews: []model.Review{}}
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, lat, lng, safety_score, elo_score, popularity_score, country, created_at, updated_at
		FROM places WHERE id = $1`, id,
	).Scan(&d.ID, &d.Name, &d.Lat, &d.Lng, &d.SafetyScore, &d.EloScore,
		&d.PopularityScore, &d.Country, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "place %s", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get place %s", id)
	}

	var a model.SafetyAttributes
	err = s.pool.QueryRow(ctx,
		`SELECT place_id, violent_crime, property_crime, accident_rate, safety_infra, police_density,
			night_safety_score, women_safety_score, data_source, confidence_score, updated_at
		FROM place_safety_attributes WHERE place_id = $1`, id,
	).Scan(&a.PlaceID, &a.ViolentCrime, &a.PropertyCrime, &a.AccidentRate, &a.SafetyInfra, &a.PoliceDensity,
		&a.NightSafetyScore, &a.WomenSafetyScore, &a.DataSource, &a.ConfidenceScore, &a.UpdatedAt)
	switch {
	case err == nil:
		d.Attributes = &a
	case !errors.Is(err, pgx.ErrNoRows):
		return nil, eris.Wrapf(err, "postgres: get safety attributes %s", id)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, place_id, rating, review_text, tags, is_verified, created_at
		FROM place_reviews WHERE place_id = $1 ORDER BY created_at, rating`, id)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: list reviews %s", id)
	}
	defer rows.Close()
	for rows.Next() {
		var r model.Review
		if err := rows.Scan(&r.ID, &r.PlaceID, &r.Rating, &r.ReviewText, &r.Tags, &r.IsVerified, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan review")
		}
		d.Reviews = append(d.Reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate reviews")
	}
	return d, nil
}
