package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/goto/salt/log"
	"github.com/sextant-data/sextant/core/asset"
	"github.com/sextant-data/sextant/core/bookmark"
	"github.com/sextant-data/sextant/core/user"
	serverhandlers "github.com/sextant-data/sextant/internal/server/handlers"
)

type Config struct {
	Host    string `yaml:"host" mapstructure:"host" default:"0.0.0.0"`
	Port    int    `yaml:"port" mapstructure:"port" default:"8080"`
	BaseUrl string `yaml:"baseurl" mapstructure:"baseurl" default:"localhost:8080"`
}

func (cfg Config) addr() string { return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port) }

// Serve runs the catalog HTTP API until ctx is cancelled.
func Serve(
	ctx context.Context,
	config Config,
	logger log.Logger,
	assetService *asset.Service,
	userRepository user.Repository,
	bookmarkService *bookmark.Service,
) error {
	router := mux.NewRouter()
	RegisterRoutes(router, &serverhandlers.Handler{
		Asset: serverhandlers.NewAssetHandler(logger, assetService),
		User:  serverhandlers.NewUserHandler(logger, userRepository, bookmarkService),
	})

	handler := requestID(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(handler)
	handler = handlers.LoggingHandler(os.Stdout, handler)

	srv := &http.Server{
		Addr:    config.addr(),
		Handler: handler,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("sextant http server starting", "addr", config.addr())
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		logger.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
