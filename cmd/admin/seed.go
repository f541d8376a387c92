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

const adminPasswordFlag = "admin-password"

func newSeedCommand(rootFlags map[string]cobraflags.Flag) *cobra.Command {
	seedFlags := map[string]cobraflags.Flag{
		adminPasswordFlag: &cobraflags.StringFlag{
			Name:  adminPasswordFlag,
			Value: "",
			Usage: "Password for the demo admin account (" + seed.DemoAdminEmail + "); skipped when empty",
		},
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert sample catalog, orders, forecasts and feedback",
		Long: `Insert a sample data set for local development.

The schema is applied first. Nothing is inserted when products already exist.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDatabase(cmd, rootFlags, func(ctx context.Context, conn *sql.DB) error {
				if err := seed.Migrate(ctx, conn, db.SchemaSQL()); err != nil {
					return err
				}
				res, err := seed.Run(ctx, conn, seedFlags[adminPasswordFlag].GetString())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), res.String())
				return nil
			})
		},
	}
	cobraflags.RegisterMap(seedCmd, seedFlags)
	return seedCmd
}
