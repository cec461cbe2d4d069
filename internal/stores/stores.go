// Package stores implements the client-side state containers that mirror the
// catalog backend's list resources.
//
// Each store wraps one remote collection: [MovieStore] for saved movies,
// [PlaylistStore] for playlists and their memberships. Stores hold their
// items behind a mutex, attach the session credential through an injected
// [CredentialSource], and reconcile local state from mutation responses
// (optimistic patch) or by full refetch.
//
// Outcomes travel two ways at once: a typed error to the caller and a
// transient message through the [shared.Notifier]. A missing credential
// aborts the operation before any network call; a 401 dismisses prior
// messages and surfaces a session-expired notice without clearing either the
// credential or the held items.
package stores

import (
	"errors"
	"fmt"

	"github.com/tobyfell/movx/internal/services"
	"github.com/tobyfell/movx/internal/shared"
)

// CredentialSource supplies the bearer token for outgoing requests.
//
// session.SessionStore implements this; stores never read the persisted slot
// themselves.
type CredentialSource interface {
	Token() (token string, ok bool)
}

// notAuthenticated reports the missing-credential case. No network call has
// been made when this fires.
func notAuthenticated(n shared.Notifier) error {
	n.Error("User is not authenticated.")
	return shared.ErrNotAuthenticated
}

// containError maps an operation failure onto the notification taxonomy:
// 401 → dismiss and session-expired notice; backend detail → verbatim;
// anything else → the operation's generic message.
func containError(n shared.Notifier, err error, generic string) error {
	var apiErr *services.APIError
	if errors.As(err, &apiErr) {
		if apiErr.IsAuthError() {
			n.Dismiss()
			n.Error("Session expired. Please log in again.")
			return fmt.Errorf("%w: %v", shared.ErrSessionExpired, err)
		}
		if apiErr.Detail != "" {
			n.Error("%s", apiErr.Detail)
			return err
		}
	}

	n.Error("%s", generic)
	return err
}
