package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/goto/salt/log"
	"github.com/sextant-data/sextant/core/asset"
	"github.com/sextant-data/sextant/core/bookmark"
	sextantserver "github.com/sextant-data/sextant/internal/server"
	"github.com/sextant-data/sextant/internal/store/flatfile"
	"github.com/sextant-data/sextant/internal/store/snowflake"
	"github.com/spf13/cobra"
)

// Version of the current build. overridden by the build system.
// see "Makefile" for more information
var (
	Version string
)

func serverCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "server <command>",
		Aliases: []string{"s"},
		Short:   "Run sextant server",
		Long:    "Server management commands.",
		Example: heredoc.Doc(`
			$ sextant server start
			$ sextant server start -c ./config.yaml
		`),
	}

	cmd.AddCommand(
		serverStartCommand(cfg),
	)

	return cmd
}

func serverStartCommand(cfg *Config) *cobra.Command {
	c := &cobra.Command{
		Use:     "start",
		Short:   "Start server on default port 8080",
		Example: "sextant server start",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runServer(cmd.Context(), cfg); err != nil {
				return fmt.Errorf("run server: %w", err)
			}
			return nil
		},
	}

	return c
}

func runServer(ctx context.Context, config *Config) error {
	logger := initLogger(config.LogLevel)
	logger.Info("sextant starting", "version", Version)

	deps, err := buildServiceDeps(logger, config)
	if err != nil {
		return err
	}

	userRepository, err := flatfile.NewUserRepository(deps.store)
	if err != nil {
		return fmt.Errorf("create new user repository: %w", err)
	}
	bookmarkRepository, err := flatfile.NewBookmarkRepository(deps.store)
	if err != nil {
		return fmt.Errorf("create new bookmark repository: %w", err)
	}
	bookmarkService := bookmark.NewService(bookmarkRepository)

	return sextantserver.Serve(
		ctx,
		config.Service,
		logger,
		deps.assetService,
		userRepository,
		bookmarkService,
	)
}

type serviceDeps struct {
	store        *flatfile.Store
	assetService *asset.Service
}

// buildServiceDeps wires the flat-file store and, when enabled, the
// warehouse repository into the asset service shared by the server and
// the local inspection commands.
func buildServiceDeps(logger log.Logger, config *Config) (serviceDeps, error) {
	store := flatfile.NewStore(logger, config.FlatFile)

	flatFileRepository, err := flatfile.NewAssetRepository(store)
	if err != nil {
		return serviceDeps{}, fmt.Errorf("create new asset repository: %w", err)
	}

	var warehouseRepository asset.WarehouseRepository
	if config.Snowflake.Enabled {
		repo, err := snowflake.NewAssetRepository(logger, config.Snowflake)
		if err != nil {
			return serviceDeps{}, fmt.Errorf("create new warehouse repository: %w", err)
		}
		warehouseRepository = repo
	}

	assetService := asset.NewService(asset.ServiceDeps{
		FlatFileRepo:  flatFileRepository,
		WarehouseRepo: warehouseRepository,
		Cache:         store,
	})

	return serviceDeps{store: store, assetService: assetService}, nil
}

func initLogger(logLevel string) *log.Logrus {
	logger := log.NewLogrus(
		log.LogrusWithLevel(logLevel),
		log.LogrusWithWriter(os.Stdout),
	)
	return logger
}
