package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/db"
	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/seed"
)

const schemaFileFlag = "schema-file"

func newMigrateCommand(rootFlags map[string]cobraflags.Flag) *cobra.Command {
	migrateFlags := map[string]cobraflags.Flag{
		schemaFileFlag: &cobraflags.StringFlag{
			Name:  schemaFileFlag,
			Value: "",
			Usage: "Schema script to apply instead of the embedded one",
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema (idempotent)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			script, err := db.LoadSchema(migrateFlags[schemaFileFlag].GetString())
			if err != nil {
				return err
			}
			return withDatabase(cmd, rootFlags, func(ctx context.Context, conn *sql.DB) error {
				if err := seed.Migrate(ctx, conn, script); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Schema applied")
				return nil
			})
		},
	}
	cobraflags.RegisterMap(migrateCmd, migrateFlags)
	return migrateCmd
}
