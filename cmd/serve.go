package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/desertthunder/playback/internal/server"
	"github.com/desertthunder/playback/internal/services"
	"github.com/urfave/cli/v3"
)

// Serve wires the credential repository, authenticator and Spotify gateway
// into the HTTP router and runs the server until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	auth, err := r.buildAuthenticator(config, db)
	if err != nil {
		return fmt.Errorf("failed to build authenticator: %w", err)
	}

	spotify := services.NewSpotifyService(auth, r.logger)

	router := server.NewBasicRouter()
	router.Use(server.Logging(r.logger))
	router.Handler(server.NewAdminHandler(auth, r.logger))
	router.Handler(server.NewSpotifyHandler(spotify, auth, r.logger))
	router.Handler(&server.HealthHandler{})

	addr := config.Server.Addr()
	if port := cmd.Int("port"); port != 0 {
		addr = fmt.Sprintf("%s:%d", config.Server.Host, port)
	}

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.Run(runCtx, addr, router, r.logger)
}
