package cli

import (
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/goto/salt/printer"
	"github.com/goto/salt/term"
	"github.com/spf13/cobra"
)

func connectionCommand(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connection <command>",
		Short: "Manage the warehouse connection",
		Example: heredoc.Doc(`
			$ sextant connection test
		`),
	}

	cmd.AddCommand(connectionTestCommand(cfg))

	return cmd
}

func connectionTestCommand(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Probe the configured warehouse and report reachability",
		Example: heredoc.Doc(`
			$ sextant connection test
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spinner := printer.Spin("")
			defer spinner.Stop()

			svc, err := newAssetService(cfg)
			if err != nil {
				return err
			}

			check, err := svc.TestConnection(cmd.Context())
			if err != nil {
				return err
			}
			spinner.Stop()

			if check.Success {
				fmt.Println(term.Greenf("connection ok: %s", check.Message))
			} else {
				fmt.Println(term.Redf("connection failed: %s", check.Message))
			}
			return nil
		},
	}
}
