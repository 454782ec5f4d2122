package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/safety-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	// Pragmas are per connection.
	db.SetMaxOpenConns(1)
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS places (
	id               TEXT PRIMARY KEY,
	name             TEXT NOT NULL UNIQUE,
	lat              REAL NOT NULL,
	lng              REAL NOT NULL,
	safety_score     REAL NOT NULL DEFAULT 0,
	elo_score        REAL NOT NULL DEFAULT 1000,
	popularity_score REAL NOT NULL DEFAULT 0,
	country          TEXT NOT NULL DEFAULT '',
	created_at       DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at       DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS place_safety_attributes (
	place_id           TEXT PRIMARY KEY REFERENCES places(id) ON DELETE CASCADE,
	violent_crime      REAL NOT NULL,
	property_crime     REAL NOT NULL,
	accident_rate      REAL NOT NULL,
	safety_infra       REAL NOT NULL,
	police_density     REAL NOT NULL,
	night_safety_score REAL NOT NULL,
	women_safety_score REAL NOT NULL,
	data_source        TEXT NOT NULL,
	confidence_score   REAL NOT NULL,
	updated_at         DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS place_reviews (
	id          TEXT PRIMARY KEY,
	place_id    TEXT NOT NULL REFERENCES places(id) ON DELETE CASCADE,
	rating      INTEGER NOT NULL,
	review_text TEXT NOT NULL,
	tags        TEXT NOT NULL DEFAULT '[]',
	is_verified INTEGER NOT NULL DEFAULT 0,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_places_safety_score ON places(safety_score DESC);
CREATE INDEX IF NOT EXISTS idx_place_reviews_place_id ON place_reviews(place_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) UpsertPlace(ctx context.Context, p model.Place) (*model.Place, error) {
	now := time.Now().UTC()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	row := s.db.QueryRowContext(ctx,
		`INSERT INTO places (id, name, lat, lng, safety_score, elo_score, popularity_score, country, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET safety_score = excluded.safety_score, updated_at = excluded.updated_at
		RETURNING id, name, lat, lng, safety_score, elo_score, popularity_score, country, created_at, updated_at`,
		p.ID, p.Name, p.Lat, p.Lng, p.SafetyScore, p.EloScore, p.PopularityScore, p.Country, now, now,
	)
	out, err := scanPlace(row)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: upsert place %s", p.Name)
	}
	return out, nil
}

func (s *SQLiteStore) UpsertSafetyAttributes(ctx context.Context, a model.SafetyAttributes) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO place_safety_attributes (place_id, violent_crime, property_crime, accident_rate, safety_infra,
			police_density, night_safety_score, women_safety_score, data_source, confidence_score, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (place_id) DO UPDATE SET
			violent_crime = excluded.violent_crime,
			property_crime = excluded.property_crime,
			accident_rate = excluded.accident_rate,
			safety_infra = excluded.safety_infra,
			police_density = excluded.police_density,
			night_safety_score = excluded.night_safety_score,
			women_safety_score = excluded.women_safety_score,
			data_source = excluded.data_source,
			confidence_score = excluded.confidence_score,
			updated_at = excluded.updated_at`,
		a.PlaceID, a.ViolentCrime, a.PropertyCrime, a.AccidentRate, a.SafetyInfra,
		a.PoliceDensity, a.NightSafetyScore, a.WomenSafetyScore, a.DataSource, a.ConfidenceScore, time.Now().UTC(),
	)
	return eris.Wrapf(err, "sqlite: upsert safety attributes %s", a.PlaceID)
}

func (s *SQLiteStore) ReplaceReviews(ctx context.Context, placeID string, reviews []model.Review) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin replace reviews")
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM place_reviews WHERE place_id = ?`, placeID); err != nil {
		return eris.Wrapf(err, "sqlite: delete reviews %s", placeID)
	}

	now := time.Now().UTC()
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
		tagsJSON, err := json.Marshal(tags)
		if err != nil {
			return eris.Wrap(err, "sqlite: marshal tags")
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO place_reviews (id, place_id, rating, review_text, tags, is_verified, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, placeID, r.Rating, r.ReviewText, string(tagsJSON), r.IsVerified, created,
		); err != nil {
			return eris.Wrapf(err, "sqlite: insert review %s", placeID)
		}
	}
	return eris.Wrap(tx.Commit(), "sqlite: commit reviews")
}

func (s *SQLiteStore) ListPlaces(ctx context.Context, filter PlaceFilter) ([]model.Place, error) {
	query := `SELECT id, name, lat, lng, safety_score, elo_score, popularity_score, country, created_at, updated_at
		FROM places WHERE safety_score >= ? ORDER BY safety_score DESC, name`
	args := []any{filter.MinScore}
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list places")
	}
	defer rows.Close() //nolint:errcheck

	places := []model.Place{}
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		places = append(places, *p)
	}
	return places, eris.Wrap(rows.Err(), "sqlite: iterate places")
}

func (s *SQLiteStore) GetPlace(ctx context.Context, id string) (*model.PlaceDetail, error) {
	p, err := scanPlace(s.db.QueryRowContext(ctx,
		`SELECT id, name, lat, lng, safety_score, elo_score, popularity_score, country, created_at, updated_at
		FROM places WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "place %s", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get place %s", id)
	}
	d := &model.PlaceDetail{Place: *p, Reviews: []model.Review{}}

	var a model.SafetyAttributes
	err = s.db.QueryRowContext(ctx,
		`SELECT place_id, violent_crime, property_crime, accident_rate, safety_infra, police_density,
			night_safety_score, women_safety_score, data_source, confidence_score, updated_at
		FROM place_safety_attributes WHERE place_id = ?`, id,
	).Scan(&a.PlaceID, &a.ViolentCrime, &a.PropertyCrime, &a.AccidentRate, &a.SafetyInfra, &a.PoliceDensity,
		&a.NightSafetyScore, &a.WomenSafetyScore, &a.DataSource, &a.ConfidenceScore, &a.UpdatedAt)
	switch {
	case err == nil:
		d.Attributes = &a
	case !errors.Is(err, sql.ErrNoRows):
		return nil, eris.Wrapf(err, "sqlite: get safety attributes %s", id)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, place_id, rating, review_text, tags, is_verified, created_at
		FROM place_reviews WHERE place_id = ? ORDER BY created_at, rating`, id)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: list reviews %s", id)
	}
	defer rows.Close() //nolint:errcheck
	for rows.Next() {
		var r model.Review
		var tags string
		if err := rows.Scan(&r.ID, &r.PlaceID, &r.Rating, &r.ReviewText, &tags, &r.IsVerified, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan review")
		}
		if err := json.Unmarshal([]byte(tags), &r.Tags); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal tags")
		}
		d.Reviews = append(d.Reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate reviews")
	}
	return d, nil
}

// helpers

type scannable interface {
	Scan(dest ...any) error
}

func scanPlace(row scannable) (*model.Place, error) {
	var p model.Place
	err := row.Scan(&p.ID, &p.Name, &p.Lat, &p.Lng, &p.SafetyScore, &p.EloScore,
		&p.PopularityScore, &p.Country, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan place")
	}
	return &p, nil
}
