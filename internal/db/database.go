package db

import (
	"context"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/config"
)

const (
	maxPoolConns = 30
	pingTimeout  = 10 * time.Second
)

// Database holds the database connection pool
type Database struct {
	Pool *pgxpool.Pool
}

// NewDatabase connects with five attempts starting at a one second backoff
func NewDatabase(cfg config.DatabaseConfig) (*Database, error) {
	return NewDatabaseWithRetry(cfg, 5, time.Second)
}

// NewFromPool wraps an existing pool, e.g. one opened by a lambda handler
func NewFromPool(pool *pgxpool.Pool) *Database {
	return &Database{Pool: pool}
}

// poolConfig parses dsn and applies the service's pool settings
func poolConfig(dsn string) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	pc.MaxConns = maxPoolConns
	pc.MinConns = 0
	pc.MaxConnLifetime = time.Hour
	pc.MaxConnIdleTime = 5 * time.Minute
	// schema script is a multi-statement Exec
	pc.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	host := pc.ConnConfig.Host
	pc.ConnConfig.DialFunc = preferIPv4(host)
	if tlsCfg := pc.ConnConfig.TLSConfig; tlsCfg != nil && tlsCfg.ServerName == "" {
		tlsCfg.ServerName = host
	}
	return pc, nil
}

// preferIPv4 resolves the database host and dials its first IPv4 address,
// falling back to whatever the resolver returned and then to the raw address.
func preferIPv4(fallbackHost string) pgconn.DialFunc {
	return func(ctx context.Context, network, address string) (net.Conn, error) {
		var d net.Dialer
		host, port, err := net.SplitHostPort(address)
		if err != nil || host == "" || port == "" {
			host, port = fallbackHost, "5432"
		}
		addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
		if err != nil || len(addrs) == 0 {
			return d.DialContext(ctx, "tcp", address)
		}
		for _, a := range addrs {
			if v4 := a.IP.To4(); v4 != nil {
				return d.DialContext(ctx, "tcp4", net.JoinHostPort(v4.String(), port))
			}
		}
		return d.DialContext(ctx, "tcp", net.JoinHostPort(addrs[0].IP.String(), port))
	}
}

// connect opens a pool and verifies it with a ping
func connect(pc *pgxpool.Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.NewWithConfig(context.Background(), pc)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// NewDatabaseWithRetry retries with exponential backoff (initialDelay, 2x, 4x, ...)
func NewDatabaseWithRetry(cfg config.DatabaseConfig, maxRetries int, initialDelay time.Duration) (*Database, error) {
	pc, err := poolConfig(cfg.DSN())
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		log.Printf("[SC-DB] Connecting to %s@%s:%d/%s (attempt %d/%d)",
			pc.ConnConfig.User, pc.ConnConfig.Host, pc.ConnConfig.Port, pc.ConnConfig.Database, attempt, maxRetries)

		pool, err := connect(pc)
		if err == nil {
			log.Printf("[SC-DB] Connected on attempt %d", attempt)
			return &Database{Pool: pool}, nil
		}
		lastErr = err
		log.Printf("[SC-DB] Attempt %d failed: %v", attempt, err)

		if attempt < maxRetries {
			delay := initialDelay << (attempt - 1)
			log.Printf("[SC-DB] Retrying in %v...", delay)
			time.Sleep(delay)
		}
	}
	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, lastErr)
}

// Close closes the database connection pool
func (db *Database) Close() {
	if db.Pool != nil {
		db.Pool.Close()
		log.Println("[SC-DB] Connection pool closed")
	}
}

// Health pings the pool. A Database without a pool is unavailable.
func (db *Database) Health(ctx context.Context) error {
	if db == nil || db.Pool == nil {
		return ErrUnavailable
	}
	return db.Pool.Ping(ctx)
}
