package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bkcloud",
		Short:         "BK Cloud client: order services and manage your balance",
		Long:          "bkcloud is the terminal client for the BK Cloud billing backend: browse tariffs, order services, track subscriptions and top up the balance, either interactively or through subcommands.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return runTUI(cmd, app)
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newTUICmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newRegisterCmd(app),
		newProfileCmd(app),
		newTariffsCmd(app),
		newServicesCmd(app),
		newForecastCmd(app),
		newTopUpCmd(app),
	)

	return rootCmd
}
