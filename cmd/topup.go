package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bkeenke/bkcloud-cli/internal/application"
	"github.com/bkeenke/bkcloud-cli/internal/domain"
)

func newForecastCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "forecast",
		Short: "Show the payment forecast",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireSession(cmd.Context()); err != nil {
				return err
			}

			forecast, err := app.client.Forecast(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "balance:\t%.2f\n", forecast.Balance)
			if forecast.Bonuses > 0 {
				_, _ = fmt.Fprintf(out, "bonuses:\t%.2f\n", forecast.Bonuses)
			}
			_, _ = fmt.Fprintf(out, "total:\t%.2f\n", forecast.Total)

			for _, item := range forecast.Items {
				_, _ = fmt.Fprintf(out, "%s\t%.2f\t%s\n", item.Name, item.Total, item.Status)
			}
			if debt := forecast.Debt(); forecast.HasUnpaid() && debt > 0 {
				_, _ = fmt.Fprintf(out, "debt:\t%d\n", debt)
			}
			return nil
		},
	}
}

func newTopUpCmd(app *app) *cobra.Command {
	var (
		rawAmount      string
		paySystem      string
		pendingService int64
	)

	cmd := &cobra.Command{
		Use:   "topup",
		Short: "Top up the balance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireSession(cmd.Context()); err != nil {
				return err
			}

			systems, _, err := app.topUp.Load(cmd.Context())
			if err != nil {
				return err
			}

			selected, err := pickPaySystem(systems, paySystem)
			if err != nil {
				return err
			}

			result, err := app.topUp.Submit(cmd.Context(), application.TopUpRequest{
				Amount:           domain.SanitizeAmount(rawAmount),
				PaySystem:        selected,
				PendingServiceID: pendingService,
			})
			if err != nil {
				return err
			}

			if result.External {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Payment link opened")
				return nil
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), result.PaymentURL)
			return nil
		},
	}

	cmd.Flags().StringVarP(&rawAmount, "amount", "a", "", "amount in whole currency units")
	cmd.Flags().StringVar(&paySystem, "paysystem", "", "pay system id (defaults to the first configured)")
	cmd.Flags().Int64Var(&pendingService, "service", 0, "tariff id to order before the payment link is created")
	_ = cmd.MarkFlagRequired("amount")

	cmd.AddCommand(newPaySystemsCmd(app))
	return cmd
}

func pickPaySystem(systems []domain.PaySystem, id string) (domain.PaySystem, error) {
	if len(systems) == 0 {
		return domain.PaySystem{}, domain.ErrNoPaySystem
	}
	if id == "" {
		return systems[0], nil
	}
	for _, system := range systems {
		if system.ID == id {
			return system, nil
		}
	}
	return domain.PaySystem{}, fmt.Errorf("unknown pay system %q", id)
}

func newPaySystemsCmd(app *app) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "paysystems",
		Short: "List configured pay systems",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireSession(cmd.Context()); err != nil {
				return err
			}

			systems, err := app.client.PaySystems(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOut {
				return printJSON(cmd, systems)
			}
			for _, system := range systems {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", system.ID, system.Name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	return cmd
}
