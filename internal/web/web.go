// Package web holds the page controllers. Every page is the same thin
// shape: gate, fetch through the API client, render the result or an inline
// error panel.
package web

import (
	"net/url"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"

	"github.com/goliatone/campaign-console/internal/apiclient"
	"github.com/goliatone/campaign-console/internal/credstore"
	"github.com/goliatone/campaign-console/internal/gate"
)

// Logger is the minimal structured logger the controllers need.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Deps carries everything the controllers share.
type Deps struct {
	Logger Logger
	API    *apiclient.Client
	Store  credstore.Store
	Gate   *gate.Gate
}

// viewData merges the gated viewer into the render context so layouts can
// show auth state without every handler repeating it.
func viewData(c router.Context, data router.ViewContext) router.ViewContext {
	if data == nil {
		data = router.ViewContext{}
	}

	if viewer, ok := gate.Viewer(c); ok {
		data["current_user"] = viewer.User
		data["is_authenticated"] = true
		data["is_admin"] = viewer.User.IsAdmin()
	} else {
		data["is_authenticated"] = false
	}

	return data
}

// listQuery passes the supported list parameters through to the backend
// verbatim. No pagination logic lives here.
func listQuery(c router.Context) url.Values {
	query := url.Values{}
	for _, key := range []string{"page", "per_page", "q", "status", "campaign_id"} {
		if val := c.Query(key); val != "" {
			query.Set(key, val)
		}
	}
	return query
}

// renderError is the top-level error boundary: a generic failure page with
// a reload action. Data-fetch errors are rendered inline by the pages
// themselves and never reach this handler.
func renderError(c router.Context, err error) error {
	richErr := apiclient.ToRichError(err)

	switch richErr.Category {
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		return c.Redirect(gate.DefaultLoginPath, router.StatusSeeOther)
	default:
		status := richErr.Code
		if status == 0 {
			status = router.StatusInternalServerError
		}
		return c.Status(status).Render("error", router.ViewContext{
			"message": "Something went wrong. Please reload the page.",
		})
	}
}

// failedFetch resolves a data-fetch failure for an authenticated page. A 403
// with a recognized error envelope is a business-rule denial and renders as
// an inline panel; a bare 401/403 invalidates the session and redirects to
// login; anything else is surfaced inline on the page being rendered.
func failedFetch(c router.Context, d Deps, view string, data router.ViewContext, err error) error {
	if apiclient.IsAuthError(err) && !apiclient.IsBusinessDenial(err) {
		d.Logger.Info("session rejected by backend, signing out", "error", err)
		d.Store.Clear(c)
		return c.Redirect(gate.DefaultLoginPath, router.StatusSeeOther)
	}

	d.Logger.Error("page fetch failed", "view", view, "error", err)

	if data == nil {
		data = router.ViewContext{}
	}
	data["fetch_error"] = fetchErrorMessage(err)

	return c.Render(view, viewData(c, data))
}

func fetchErrorMessage(err error) string {
	if apiclient.IsNetworkError(err) {
		return "We could not reach the server. Please try again."
	}

	if apiErr, ok := apiclient.AsAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr.Message != "" {
		return richErr.Message
	}

	return "Unable to load this page right now."
}
