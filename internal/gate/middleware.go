package gate

import (
	"net/url"
	"time"

	"github.com/goliatone/go-router"

	"github.com/goliatone/campaign-console/internal/credstore"
)

const (
	// viewerKey is where the middleware parks the credential for handlers.
	viewerKey = "gate_viewer"
	// rejectedRouteCookie remembers where a rejected viewer was headed so
	// login can send them back.
	rejectedRouteCookie = "rejected_route"
)

// Protect wraps routes with a gate evaluation against the given store. On
// Allow it exposes the viewer via Viewer(ctx) and calls through; on Redirect
// it issues the navigation and renders nothing.
func (g *Gate) Protect(store credstore.Store, policy Policy) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			var cred *credstore.Credential
			if stored, ok := store.Read(c); ok {
				cred = &stored
			}

			decision := g.Evaluate(c.Context(), policy, cred)

			if decision.ClearCredential {
				store.Clear(c)
			}

			if decision.Outcome == Redirect {
				if decision.Target == g.loginPath {
					g.rememberRejectedRoute(c)
				}
				return c.Redirect(g.redirectTarget(decision), router.StatusSeeOther)
			}

			viewer := *cred
			if decision.FreshUser != nil {
				viewer.User = *decision.FreshUser
			}
			c.Locals(viewerKey, viewer)

			return next(c)
		}
	}
}

// Identify exposes the stored credential to handlers without gating, so
// public pages can reflect auth state. A missing or unreadable credential is
// simply not attached.
func Identify(store credstore.Store) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			if cred, ok := store.Read(c); ok {
				c.Locals(viewerKey, cred)
			}
			return next(c)
		}
	}
}

// Viewer returns the credential the gate attached for the current request.
func Viewer(c router.Context) (credstore.Credential, bool) {
	viewer, ok := c.Locals(viewerKey).(credstore.Credential)
	return viewer, ok
}

// ConsumeRejectedRoute pops the remembered route a rejected viewer was
// navigating to, falling back to def.
func ConsumeRejectedRoute(c router.Context, def string) string {
	target := c.Cookies(rejectedRouteCookie)
	if target == "" {
		return def
	}

	c.Cookie(&router.Cookie{
		Name:     rejectedRouteCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})

	return target
}

func (g *Gate) redirectTarget(decision Decision) string {
	if decision.Reason == "" {
		return decision.Target
	}
	return decision.Target + "?reason=" + url.QueryEscape(decision.Reason)
}

func (g *Gate) rememberRejectedRoute(c router.Context) {
	c.Cookie(&router.Cookie{
		Name:     rejectedRouteCookie,
		Value:    c.OriginalURL(),
		Expires:  time.Now().Add(5 * time.Minute),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}
