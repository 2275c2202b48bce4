package main

import (
	"context"
	"errors"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"burnoutlens/internal/config"
	"burnoutlens/internal/container"
	"burnoutlens/internal/logging"
	"burnoutlens/ui"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load application configuration
	appConfig, err := config.Load("")
	if err != nil {
		bootLog := logging.New("info", true)
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := logging.New(appConfig.Log.Level, appConfig.Log.Pretty)
	log := logging.Component(logger, "main")
	gin.SetMode(appConfig.Server.GinMode)

	// Load the dataset; a failure keeps the server up to show guidance
	appContainer, err := container.New(appConfig, logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create application container")
	}

	server, err := ui.NewServer(ui.Deps{
		Builder:    appContainer.Builder,
		LoadErr:    appContainer.LoadErr,
		Sessions:   appContainer.Sessions,
		SessionTTL: appConfig.SessionTTL(),
		Charts:     appContainer.Charts,
		Logger:     logger,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Run(ctx, ":"+appConfig.Server.Port)
	})

	g.Go(func() error {
		return appContainer.Sessions.Run(ctx, time.Minute)
	})

	// Start pprof server for performance profiling
	if appConfig.Profiling.Enabled {
		g.Go(func() error {
			return runProfiling(ctx, appConfig.Profiling.Port, log)
		})
	}

	log.Info().
		Str("port", appConfig.Server.Port).
		Bool("dataset_ready", appContainer.Ready()).
		Msg("starting burnout dashboard")

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("bye")
}

func runProfiling(ctx context.Context, port string, log zerolog.Logger) error {
	srv := &http.Server{Addr: ":" + port, Handler: http.DefaultServeMux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("port", port).Msg("profiling server starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
