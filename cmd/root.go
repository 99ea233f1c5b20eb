package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "slots",
		Short:         "Save slots: inspect and manage preserved game sessions",
		Long:          "slots keeps several preserved game sessions for a host that only stores one. It reads and writes the same remote and local blobs as the game and the same profile file, so slots can be listed, selected, stored and cleared from the terminal.",
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
	rootCmd.PersistentPostRun = func(_ *cobra.Command, _ []string) {
		_ = app.logger.Sync()
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newListCmd(app),
		newLatestCmd(app),
		newSelectCmd(app),
		newStoreCmd(app),
		newClearCmd(app),
		newForgetCmd(app),
		newSyncCmd(app),
	)

	return rootCmd
}
