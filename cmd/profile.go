package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProfileCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the account profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireSession(cmd.Context()); err != nil {
				return err
			}

			user, err := app.client.Profile(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "login:\t%s\n", user.Login)
			if user.FullName != "" {
				_, _ = fmt.Fprintf(out, "name:\t%s\n", user.FullName)
			}
			if user.Phone != "" {
				_, _ = fmt.Fprintf(out, "phone:\t%s\n", user.Phone)
			}
			_, _ = fmt.Fprintf(out, "balance:\t%.2f\n", user.Balance)
			if user.Discount > 0 {
				_, _ = fmt.Fprintf(out, "discount:\t%.0f%%\n", user.Discount)
			}
			return nil
		},
	}

	cmd.AddCommand(newProfileUpdateCmd(app))
	return cmd
}

func newProfileUpdateCmd(app *app) *cobra.Command {
	var fullName, phone string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireSession(cmd.Context()); err != nil {
				return err
			}

			fields := map[string]any{}
			if cmd.Flags().Changed("name") {
				fields["full_name"] = fullName
			}
			if cmd.Flags().Changed("phone") {
				fields["phone"] = phone
			}
			if len(fields) == 0 {
				return fmt.Errorf("nothing to update, pass --name or --phone")
			}

			if _, err := app.client.UpdateProfile(cmd.Context(), fields); err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Profile updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&fullName, "name", "", "full name")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")

	return cmd
}
