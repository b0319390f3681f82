package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/mager/bloom/bloom"
	"github.com/mager/bloom/config"
)

// ProvideDatabase provides a postgres client
func ProvideDatabase(logger *zap.SugaredLogger, cfg config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Errorw("Failed to open database connection", "error", err)
		return nil, err
	}

	err = db.Ping()
	if err != nil {
		logger.Errorw("Failed to ping database", "error", err)
		return nil, err
	}

	return db, nil
}

// Cache keeps raw analyses in a postgres table keyed by track id.
type Cache struct {
	db    *sql.DB
	table string
	ttl   time.Duration
	now   func() time.Time
}

// NewCache builds a Cache on table. Entries older than ttl are misses; a
// zero ttl keeps entries forever.
func NewCache(db *sql.DB, table string, ttl time.Duration) *Cache {
	return &Cache{
		db:    db,
		table: pq.QuoteIdentifier(table),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Migrate creates the cache table if it does not exist.
func (c *Cache) Migrate(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	track_id text PRIMARY KEY,
	payload jsonb NOT NULL,
	fetched_at timestamptz NOT NULL
)`, c.table))
	return errors.Wrap(err, "create cache table")
}

func (c *Cache) Get(ctx context.Context, trackID string) (*bloom.Analysis, error) {
	var (
		payload   []byte
		fetchedAt time.Time
	)

	row := c.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT payload, fetched_at FROM %s WHERE track_id = $1`, c.table),
		trackID,
	)
	if err := row.Scan(&payload, &fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, bloom.ErrCacheMiss
		}
		return nil, errors.Wrapf(err, "read cached analysis %s", trackID)
	}

	if c.ttl > 0 && c.now().Sub(fetchedAt) > c.ttl {
		return nil, bloom.ErrCacheMiss
	}

	var a bloom.Analysis
	if err := json.Unmarshal(payload, &a); err != nil {
		return nil, errors.Wrapf(err, "decode cached analysis %s", trackID)
	}
	return &a, nil
}

func (c *Cache) Put(ctx context.Context, trackID string, a *bloom.Analysis) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return errors.Wrapf(err, "encode analysis %s", trackID)
	}

	_, err = c.db.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (track_id, payload, fetched_at) VALUES ($1, $2, $3)
ON CONFLICT (track_id) DO UPDATE SET payload = EXCLUDED.payload, fetched_at = EXCLUDED.fetched_at`, c.table),
		trackID, payload, c.now().UTC(),
	)
	return errors.Wrapf(err, "write cached analysis %s", trackID)
}

var Options = ProvideDatabase
