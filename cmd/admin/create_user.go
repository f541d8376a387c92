package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/models"
	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/seed"
)

const (
	emailFlag     = "email"
	passwordFlag  = "password"
	firstNameFlag = "first-name"
	lastNameFlag  = "last-name"
	userTypeFlag  = "user-type"
)

func newCreateUserCommand(rootFlags map[string]cobraflags.Flag) *cobra.Command {
	userFlags := map[string]cobraflags.Flag{
		emailFlag: &cobraflags.StringFlag{
			Name:  emailFlag,
			Value: "",
			Usage: "Email address (required)",
		},
		passwordFlag: &cobraflags.StringFlag{
			Name:  passwordFlag,
			Value: "",
			Usage: "Plain-text password, stored as a bcrypt hash (required)",
		},
		firstNameFlag: &cobraflags.StringFlag{
			Name:  firstNameFlag,
			Value: "",
			Usage: "First name",
		},
		lastNameFlag: &cobraflags.StringFlag{
			Name:  lastNameFlag,
			Value: "",
			Usage: "Last name",
		},
		userTypeFlag: &cobraflags.StringFlag{
			Name:  userTypeFlag,
			Value: string(models.UserTypeCustomer),
			Usage: "Account type: customer or admin",
		},
	}

	createUserCmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a login account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			user := userFromFlags(userFlags)
			if err := seed.ValidateUser(user); err != nil {
				return err
			}
			return withDatabase(cmd, rootFlags, func(ctx context.Context, conn *sql.DB) error {
				id, err := seed.CreateUser(ctx, conn, user)
				if errors.Is(err, seed.ErrEmailTaken) {
					return fmt.Errorf("%s is already registered", user.Email)
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s user %s (id %d)\n", user.UserType, user.Email, id)
				return nil
			})
		},
	}
	cobraflags.RegisterMap(createUserCmd, userFlags)
	return createUserCmd
}

// userFromFlags builds the user the create-user command inserts
func userFromFlags(flags map[string]cobraflags.Flag) models.User {
	return models.User{
		Email:     flags[emailFlag].GetString(),
		Password:  flags[passwordFlag].GetString(),
		FirstName: flags[firstNameFlag].GetString(),
		LastName:  flags[lastNameFlag].GetString(),
		UserType:  models.UserType(flags[userTypeFlag].GetString()),
	}
}
