package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "salvage",
		Short:         "Salvage tracker: replay or watch a sailing session's salvage state",
		Long:          "salvage infers vessel presence, cargo fullness, crew activity and salvage hook timing from a stream of game events, and renders them as status panels.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp(rootCmd.PersistentFlags())
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newReplayCmd(app),
		newWatchCmd(app),
		newConfigCmd(app),
		newCrewCmd(),
	)

	return rootCmd
}
