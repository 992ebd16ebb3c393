package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"tanah-scraper/models"
)

// PostgresWriter persists accepted listings to PostgreSQL. Optional sink;
// the CSV file is the primary output.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema
// migrations, and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS listings (
			id            SERIAL PRIMARY KEY,
			title         TEXT    NOT NULL,
			surface_sqm   INTEGER NOT NULL DEFAULT 0,
			price_idr     BIGINT  NOT NULL DEFAULT 0,
			price_per_sqm BIGINT  NOT NULL DEFAULT 0,
			link          TEXT    NOT NULL,
			identity_key  TEXT    UNIQUE NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_listings_price_idr   ON listings(price_idr);
		CREATE INDEX IF NOT EXISTS idx_listings_surface_sqm ON listings(surface_sqm);
	`)
	return err
}

// WriteListings batch-inserts accepted listings, skipping identity keys
// already stored by earlier runs.
func (pw *PostgresWriter) WriteListings(listings []*models.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	const batchSize = 50
	for i := 0; i < len(listings); i += batchSize {
		end := i + batchSize
		if end > len(listings) {
			end = len(listings)
		}
		if err := pw.insertBatch(listings[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(batch []*models.Listing) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*6)

	for idx, l := range batch {
		base := idx * 6
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6))
		valueArgs = append(valueArgs,
			l.Title, l.SurfaceSqm, l.PriceIdr, l.PricePerSqm, l.Link, l.IdentityKey)
	}

	query := fmt.Sprintf(`
		INSERT INTO listings (title, surface_sqm, price_idr, price_per_sqm, link, identity_key)
		VALUES %s
		ON CONFLICT (identity_key) DO NOTHING
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

// FetchAll retrieves all stored listings — used by the serve mode API.
func (pw *PostgresWriter) FetchAll() ([]*models.Listing, error) {
	rows, err := pw.db.Query(`
		SELECT title, surface_sqm, price_idr, price_per_sqm, link, identity_key
		FROM listings
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var listings []*models.Listing
	for rows.Next() {
		l := &models.Listing{}
		if err := rows.Scan(
			&l.Title, &l.SurfaceSqm, &l.PriceIdr, &l.PricePerSqm, &l.Link, &l.IdentityKey,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
