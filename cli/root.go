package cli

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/goto/salt/cmdx"
	"github.com/spf13/cobra"
)

func New(cfg *Config) *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:           "sextant <command> <subcommand> [flags]",
		Short:         "Data Asset Catalog Service",
		Long:          "Materialize canonical data-asset records from flat-file exports and live warehouse metadata.",
		SilenceErrors: true,
		SilenceUsage:  false,
		Example: heredoc.Doc(`
		$ sextant asset list
		$ sextant connection test
		$ sextant server start
		`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfgFile, _ := cmd.Flags().GetString(configFlag)
			if cfgFile != "" {
				return LoadConfigFromFlag(cfgFile, cfg)
			}
			return nil
		},
		Annotations: map[string]string{
			"group": "core",
			"help:learn": heredoc.Doc(`
				Use 'sextant <command> --help' for info about a command.
			`),
			"help:feedback": heredoc.Doc(`
				Open an issue here https://github.com/sextant-data/sextant/issues
			`),
		},
	}

	rootCmd.AddCommand(
		serverCmd(cfg),
		configCommand(cfg),
		assetsCommand(cfg),
		connectionCommand(cfg),
		versionCmd(),
	)

	// Help topics
	rootCmd.AddCommand(cmdx.SetCompletionCmd("sextant"))
	rootCmd.AddCommand(cmdx.SetRefCmd(rootCmd))
	rootCmd.AddCommand(cmdx.SetHelpTopicCmd("environment", envHelp))
	cmdx.SetHelp(rootCmd)

	rootCmd.PersistentFlags().StringP(configFlag, "c", "", "Override config file")

	return rootCmd
}
