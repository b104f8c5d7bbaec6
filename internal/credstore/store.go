// Package credstore persists the viewer's credential (an opaque bearer
// token plus the lightweight user record written at login) across requests.
// Both halves live and die together: a credential with only one of them is
// reported as absent, and malformed stored data reads as absent rather than
// failing the request.
package credstore

import (
	"github.com/goliatone/go-router"

	"github.com/goliatone/campaign-console/internal/apiclient"
)

// Credential is the unit of stored auth state.
type Credential struct {
	Token string
	User  apiclient.UserSummary
}

// Store is the storage port for credentials. It is injected everywhere a
// gate or controller needs auth state so tests can swap in a fake.
type Store interface {
	// Save writes token and user together. A store that cannot persist must
	// fail loudly, never half-write.
	Save(c router.Context, token string, user apiclient.UserSummary) error

	// Read returns the stored credential, or ok=false when it is absent,
	// half-present, or unreadable.
	Read(c router.Context) (Credential, bool)

	// Clear removes both halves.
	Clear(c router.Context)
}
