package seed

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/lib/pq"
)

// ipv4Dialer forces tcp4 for lib/pq while keeping the DNS hostname in the DSN
type ipv4Dialer struct{}

func (ipv4Dialer) Dial(network, address string) (net.Conn, error) {
	return (&net.Dialer{}).Dial("tcp4", address)
}

func (ipv4Dialer) DialTimeout(network, address string, timeout time.Duration) (net.Conn, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return (&net.Dialer{}).DialContext(ctx, "tcp4", address)
}

// Open connects to dsn through lib/pq and verifies the connection
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	connector, err := pq.NewConnector(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to build pq connector: %w", err)
	}
	connector.Dialer(ipv4Dialer{})
	db := sql.OpenDB(connector)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(0)
	log.Println("[SC-ADMIN] Database connection established")
	return db, nil
}

// Migrate runs the schema script. The script is idempotent.
func Migrate(ctx context.Context, db *sql.DB, script string) error {
	if _, err := db.ExecContext(ctx, script); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
