package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bkeenke/bkcloud-cli/internal/adapters/render/ui"
	"github.com/bkeenke/bkcloud-cli/internal/application"
)

func newTUICmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive storefront",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, app)
		},
	}
}

func runTUI(cmd *cobra.Command, app *app) error {
	return ui.Run(cmd.Context(), ui.Deps{
		Auth:         app.auth,
		Orders:       app.orders,
		TopUp:        app.topUp,
		Tabs:         application.NewTabController(app.bridge),
		Services:     app.client,
		Payments:     app.client,
		Bridge:       app.bridge,
		ProfileLabel: app.cfg.ProfileLabel,
		SupportURL:   app.cfg.SupportURL,
		Log:          app.log,
	})
}
