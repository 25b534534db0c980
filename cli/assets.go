package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/MakeNowJust/heredoc"
	"github.com/goto/salt/printer"
	"github.com/goto/salt/term"
	"github.com/sextant-data/sextant/core/asset"
	"github.com/spf13/cobra"
)

func assetsCommand(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "asset",
		Aliases: []string{"assets"},
		Short:   "Inspect catalog assets",
		Annotations: map[string]string{
			"group": "core",
		},
		Example: heredoc.Doc(`
		$ sextant asset list
		$ sextant asset view <id>
		$ sextant asset lineage <id>
		$ sextant asset sample <id>
		`),
	}

	cmd.AddCommand(
		listAllAssetsCommand(cfg),
		viewAssetByIDCommand(cfg),
		assetLineageCommand(cfg),
		assetSampleCommand(cfg),
	)

	return cmd
}

func listAllAssetsCommand(cfg *Config) *cobra.Command {
	var sources, output string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "lists all assets",
		Example: heredoc.Doc(`
			$ sextant asset list
			$ sextant asset list -s Hive,Snowflake
		`),
		Args: cobra.NoArgs,
		Annotations: map[string]string{
			"action:core": "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			spinner := printer.Spin("")
			defer spinner.Stop()

			svc, err := newAssetService(cfg)
			if err != nil {
				return err
			}

			flt, err := asset.BuildFilter(sources)
			if err != nil {
				return err
			}

			assets, err := svc.GetAllAssets(cmd.Context(), flt)
			if err != nil {
				return err
			}

			spinner.Stop()
			if output != "json" {
				report := [][]string{}
				report = append(report, []string{"ID", "SOURCE", "LOCATION", "COLUMNS", "NAME"})
				for _, a := range assets {
					report = append(report, []string{a.ID, string(a.Source), a.Location, strconv.Itoa(a.ColumnCount), term.Bluef(a.Name)})
				}
				printer.Table(os.Stdout, report)

				fmt.Println(term.Cyanf("To view all the data in JSON format, use flag `-o json`"))
			} else {
				fmt.Println(term.Bluef(prettyPrint(assets)))
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&sources, "sources", "s", "", "filter by sources (comma separated)")
	cmd.Flags().StringVarP(&output, "out", "o", "table", "flag to control output viewing, for json `-o json`")

	return cmd
}

func viewAssetByIDCommand(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <id>",
		Short: "view asset for the given ID",
		Example: heredoc.Doc(`
			$ sextant asset view <id>
			$ sextant asset view ANALYTICS.PUBLIC.ORDERS
		`),
		Args: cobra.ExactArgs(1),
		Annotations: map[string]string{
			"action:core": "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			spinner := printer.Spin("")
			defer spinner.Stop()

			svc, err := newAssetService(cfg)
			if err != nil {
				return err
			}

			a, err := svc.GetAssetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			spinner.Stop()

			fmt.Println(term.Bluef(prettyPrint(a)))
			return nil
		},
	}

	return cmd
}

func assetLineageCommand(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lineage <id>",
		Short: "list lineage edges touching the given asset",
		Example: heredoc.Doc(`
			$ sextant asset lineage <id>
		`),
		Args: cobra.ExactArgs(1),
		Annotations: map[string]string{
			"action:core": "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			spinner := printer.Spin("")
			defer spinner.Stop()

			svc, err := newAssetService(cfg)
			if err != nil {
				return err
			}

			edges, err := svc.GetLineage(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			spinner.Stop()

			fmt.Println(term.Bluef(prettyPrint(edges)))
			return nil
		},
	}

	return cmd
}

func assetSampleCommand(cfg *Config) *cobra.Command {
	var size int
	cmd := &cobra.Command{
		Use:   "sample <id>",
		Short: "fetch sample rows for the given asset",
		Example: heredoc.Doc(`
			$ sextant asset sample <id>
			$ sextant asset sample <id> --size 3
		`),
		Args: cobra.ExactArgs(1),
		Annotations: map[string]string{
			"action:core": "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			spinner := printer.Spin("")
			defer spinner.Stop()

			svc, err := newAssetService(cfg)
			if err != nil {
				return err
			}

			rows, err := svc.GetSample(cmd.Context(), args[0], size)
			if err != nil {
				return err
			}
			spinner.Stop()

			fmt.Println(term.Bluef(prettyPrint(rows)))
			return nil
		},
	}

	cmd.Flags().IntVar(&size, "size", 5, "Number of sample rows")

	return cmd
}

func newAssetService(cfg *Config) (*asset.Service, error) {
	deps, err := buildServiceDeps(initLogger(cfg.LogLevel), cfg)
	if err != nil {
		return nil, err
	}
	return deps.assetService, nil
}
