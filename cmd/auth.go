package main

import (
	"context"
	"time"

	"github.com/tobyfell/movx/internal/session"
	"github.com/urfave/cli/v3"
)

// AuthLogin authenticates with the catalog backend and persists the credential.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	password := cmd.String("password")

	r.logger.Infof("logging in as %v", email)

	if err := r.session.Login(ctx, email, password); err != nil {
		return err
	}

	current := r.session.Current()
	return r.writePlain("✓ Logged in as %s\n", current.User.Username)
}

// AuthRegister creates an account and adopts its first credential.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("username")
	email := cmd.String("email")
	password := cmd.String("password")

	r.logger.Infof("registering account %v", email)

	if err := r.session.Register(ctx, username, email, password); err != nil {
		return err
	}

	return r.writePlain("✓ Account created, logged in as %s\n", username)
}

// AuthLogout clears the in-memory identity and the persisted credential slot.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	r.session.Logout()
	return r.writePlain("✓ Logged out\n")
}

// AuthStatus reports the held credential without contacting the backend.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	current := r.session.Current()
	if current == nil {
		return r.writePlain("✗ Not authenticated\n")
	}

	r.writePlain("✓ Authenticated\n")
	r.writePlain("User:  %s <%s>\n", current.User.Username, current.User.Email)
	if current.User.Role != "" {
		r.writePlain("Role:  %s\n", current.User.Role)
	}
	if !current.ExpiresAt.IsZero() {
		r.writePlain("Slot expires: %s\n", current.ExpiresAt.Format(time.RFC1123))
	}

	// Best effort; the token may not be a JWT at all.
	if info, err := session.InspectToken(current.AccessToken); err == nil && !info.ExpiresAt.IsZero() {
		r.writePlain("Token expires: %s\n", info.ExpiresAt.Format(time.RFC1123))
	}

	return nil
}
