package kvstore

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresConfig holds pool settings for a Postgres-backed store.
type PostgresConfig struct {
	ConnectionString string        `env:"PG_CONN_URL,required"`              // ConnectionString is the connection string to the database.
	MaxOpenConns     int32         `env:"PG_MAX_OPEN_CONNS" envDefault:"5"`  // MaxOpenConns is the maximum number of open connections.
	RetryAttempts    int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`  // RetryAttempts is the number of retry attempts to connect.
	RetryInterval    time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"5s"` // RetryInterval is the interval between retry attempts.
	Table            string        `env:"PG_KV_TABLE" envDefault:"kv_entries"`
}

// PostgresStore is a Store backed by a single key-value table in Postgres.
// The table is created on connect if it does not exist.
type PostgresStore struct {
	pool  *pgxpool.Pool
	table string
}

// ConnectPostgres establishes a pgx pool using cfg, ensures the key-value
// table exists, and returns a store over it.
func ConnectPostgres(ctx context.Context, cfg PostgresConfig) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.ConnectionString)
	if err != nil {
		return nil, errors.Join(ErrFailedToConnect, err)
	}
	poolCfg.MaxConns = cfg.MaxOpenConns

	var pool *pgxpool.Pool
	for i := 0; i < cfg.RetryAttempts; i++ {
		pool, err = pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				break
			}
			pool.Close()
			pool = nil
		}
		time.Sleep(time.Duration(i+1) * cfg.RetryInterval)
	}
	if pool == nil {
		return nil, errors.Join(ErrFailedToConnect, err)
	}

	s := &PostgresStore{pool: pool, table: cfg.Table}
	if err := s.ensureTable(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) ensureTable(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS `+s.table+` (
		key TEXT PRIMARY KEY,
		value JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`)
	return err
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM `+s.table+` WHERE key = $1`, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return value, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO `+s.table+` (key, value, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value,
	)
	return err
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM `+s.table+` WHERE key = $1`, key)
	return err
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}
