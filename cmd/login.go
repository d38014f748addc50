package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bkeenke/bkcloud-cli/internal/domain"
)

func newLoginCmd(app *app) *cobra.Command {
	var login, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with backend credentials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := app.auth.Login(cmd.Context(), domain.Credentials{
				Login:    login,
				Password: password,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", state.User.Login)
			return nil
		},
	}

	cmd.Flags().StringVarP(&login, "login", "l", "", "account login")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("login")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.auth.Logout(cmd.Context())
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newRegisterCmd(app *app) *cobra.Command {
	var login, password, confirm string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The availability probe normally runs during the interactive
			// bootstrap; run it here so the same gate applies.
			app.auth.Bootstrap(cmd.Context())

			state, err := app.auth.Register(cmd.Context(), domain.Credentials{
				Login:    login,
				Password: password,
			}, confirm)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Registered and logged in as %s\n", state.User.Login)
			return nil
		},
	}

	cmd.Flags().StringVarP(&login, "login", "l", "", "account login")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.Flags().StringVar(&confirm, "confirm", "", "password confirmation")
	_ = cmd.MarkFlagRequired("login")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("confirm")

	return cmd
}
