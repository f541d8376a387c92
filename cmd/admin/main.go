// Command admin runs maintenance tasks against the supply chain database.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/config"
	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/seed"
)

const databaseURLFlag = "database-url"

// openDatabase is replaced in tests
var openDatabase = seed.Open

func main() {
	log.SetOutput(os.Stdout)
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCommand builds a fresh command tree. Flag maps are created per tree
// because cobraflags binds each flag to viper on first read.
func newRootCommand() *cobra.Command {
	rootFlags := map[string]cobraflags.Flag{
		databaseURLFlag: &cobraflags.StringFlag{
			Name:       databaseURLFlag,
			Value:      "",
			Usage:      "PostgreSQL connection string (defaults to DATABASE_URL or DB_* variables)",
			Persistent: true,
		},
	}

	rootCmd := &cobra.Command{
		Use:          "admin",
		Short:        "Retail supply chain maintenance commands",
		SilenceUsage: true,
	}
	cobraflags.RegisterMap(rootCmd, rootFlags)

	rootCmd.AddCommand(newMigrateCommand(rootFlags))
	rootCmd.AddCommand(newSeedCommand(rootFlags))
	rootCmd.AddCommand(newCreateUserCommand(rootFlags))
	return rootCmd
}

// resolveDSN prefers --database-url, then the service configuration
func resolveDSN(rootFlags map[string]cobraflags.Flag) (string, error) {
	if dsn := rootFlags[databaseURLFlag].GetString(); dsn != "" {
		return dsn, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	return cfg.Database.DSN(), nil
}

// withDatabase opens a lib/pq connection for the duration of fn
func withDatabase(cmd *cobra.Command, rootFlags map[string]cobraflags.Flag, fn func(ctx context.Context, db *sql.DB) error) error {
	dsn, err := resolveDSN(rootFlags)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	db, err := openDatabase(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer db.Close()
	return fn(ctx, db)
}
