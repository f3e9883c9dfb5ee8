package main

import (
	"context"
	"time"

	"github.com/desertthunder/playback/internal/shared"
	"github.com/urfave/cli/v3"
)

// Auth prints the Spotify authorization URL, optionally opening it in the
// default browser. The callback must be served by a running `serve` process.
func (r *Runner) Auth(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	auth, err := r.buildAuthenticator(config, db)
	if err != nil {
		return err
	}

	url := auth.AuthURL()
	r.writePlain("%s\n", styles.title.Render("Spotify authorization"))
	r.writePlain("%s\n", url)
	r.writePlain("%s\n", styles.help.Render("Complete the consent screen; the running server handles the callback."))

	if cmd.Bool("open") {
		if err := shared.OpenBrowser(url); err != nil {
			r.logger.Warn("failed to open browser", "error", err)
		}
	}

	return nil
}

// Status shows the stored credential state.
func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	auth, err := r.buildAuthenticator(config, db)
	if err != nil {
		return err
	}

	cred, err := auth.Status()
	if err != nil {
		return err
	}

	if cred == nil || !cred.Authenticated() {
		return r.writePlain("%s\n", styles.warn.Render("✗ Not authenticated — run `playback auth`"))
	}

	if cred.Expired(time.Now()) {
		r.writePlain("%s\n", styles.warn.Render("⚠ Access token expired (will refresh on next request)"))
	} else {
		r.writePlain("%s\n", styles.ok.Render("✓ Authenticated"))
	}

	r.writePlain("Expires: %s\n", cred.ExpiresAt().Format(time.RFC3339))
	if scope := cred.Scope(); scope != "" {
		r.writePlain("Scopes:  %s\n", scope)
	}

	return nil
}
