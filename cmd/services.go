package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bkeenke/bkcloud-cli/internal/application"
)

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

func newTariffsCmd(app *app) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "tariffs",
		Short: "List orderable tariffs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireSession(cmd.Context()); err != nil {
				return err
			}

			catalog, err := app.client.Catalog(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOut {
				return printJSON(cmd, catalog)
			}
			for _, service := range catalog {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%.2f\n", service.ID, service.Name, service.Cost)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	return cmd
}

func newServicesCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "services",
		Short: "Manage owned services",
	}

	cmd.AddCommand(
		newServicesListCmd(app),
		newServicesShowCmd(app),
		newServicesOrderCmd(app),
		newServicesDeleteCmd(app),
	)

	return cmd
}

func newServicesListCmd(app *app) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List owned services",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireSession(cmd.Context()); err != nil {
				return err
			}

			services, err := app.client.OwnedServices(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOut {
				return printJSON(cmd, services)
			}
			for _, service := range services {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", service.ID, service.Name, service.Status)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	return cmd
}

func newServicesShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one owned service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireSession(cmd.Context()); err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("parse service id %q: %w", args[0], err)
			}

			service, err := app.client.OwnedService(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "name:\t%s\n", service.Name)
			_, _ = fmt.Fprintf(out, "status:\t%s\n", service.Status)
			_, _ = fmt.Fprintf(out, "cost:\t%.2f\n", service.Cost)
			if !service.Expire.IsZero() {
				_, _ = fmt.Fprintf(out, "expires:\t%s\n", service.Expire.Format("2006-01-02"))
			}
			return nil
		},
	}
}

func newServicesOrderCmd(app *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "order <tariff-id>",
		Short: "Order a tariff",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireSession(cmd.Context()); err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("parse tariff id %q: %w", args[0], err)
			}

			service, err := app.client.CatalogService(cmd.Context(), id)
			if err != nil {
				return err
			}

			decision, err := app.orders.Evaluate(cmd.Context(), service)
			if err != nil {
				return err
			}

			if decision.Kind == application.DecideTopUp {
				out := cmd.OutOrStdout()
				if decision.PendingServiceID == 0 {
					// Unpaid services block new orders until the debt is
					// settled.
					_, _ = fmt.Fprintf(out,
						"Outstanding debt: pay %d first (bkcloud topup --amount %d)\n",
						decision.Amount, decision.Amount)
					return nil
				}
				_, _ = fmt.Fprintf(out,
					"Insufficient funds: top up %d first (bkcloud topup --amount %d --service %d)\n",
					decision.Amount, decision.Amount, decision.PendingServiceID)
				return nil
			}

			if !yes {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(),
					"Would order %q for %.2f; re-run with --yes to confirm\n",
					service.Name, service.Cost)
				return nil
			}

			owned, err := app.orders.Place(cmd.Context(), service.ID)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Ordered %q (service %d)\n", owned.Name, owned.ID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the order")
	return cmd
}

func newServicesDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an owned service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireSession(cmd.Context()); err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("parse service id %q: %w", args[0], err)
			}

			if err := app.client.DeleteService(cmd.Context(), id); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Service %d deleted\n", id)
			return nil
		},
	}
}
