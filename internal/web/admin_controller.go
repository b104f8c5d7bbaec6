package web

import (
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-router/flash"

	"github.com/goliatone/campaign-console/internal/apiclient"
	"github.com/goliatone/campaign-console/internal/gate"
)

// AdminController serves the admin console. The gate checks the stored role
// locally without a network round trip, which keeps the console responsive
// at the cost of staleness; the backend still authorizes every data call, so
// a revoked admin gets a 403 and is signed out on the first fetch.
type AdminController struct {
	deps Deps
}

func NewAdminController(deps Deps) *AdminController {
	return &AdminController{deps: deps}
}

func (a *AdminController) Overview(c router.Context) error {
	viewer, _ := gate.Viewer(c)

	stats, err := a.deps.API.AdminStats(c.Context(), viewer.Token)
	if err != nil {
		return failedFetch(c, a.deps, "admin", router.ViewContext{"title": "Admin"}, err)
	}

	return c.Render("admin", viewData(c, router.ViewContext{
		"title": "Admin",
		"stats": stats,
	}))
}

func (a *AdminController) Users(c router.Context) error {
	viewer, _ := gate.Viewer(c)

	users, err := a.deps.API.AdminUsers(c.Context(), viewer.Token, listQuery(c))
	if err != nil {
		return failedFetch(c, a.deps, "admin_users", router.ViewContext{"title": "Users"}, err)
	}

	return c.Render("admin_users", viewData(c, router.ViewContext{
		"title": "Users",
		"users": users.Items,
		"total": users.Total,
	}))
}

func (a *AdminController) ApproveUser(c router.Context) error {
	return a.userAction(c, "approve")
}

func (a *AdminController) SuspendUser(c router.Context) error {
	return a.userAction(c, "suspend")
}

func (a *AdminController) userAction(c router.Context, action string) error {
	viewer, _ := gate.Viewer(c)
	userID := c.Param("id")

	var err error
	switch action {
	case "approve":
		err = a.deps.API.AdminApproveUser(c.Context(), viewer.Token, userID)
	case "suspend":
		err = a.deps.API.AdminSuspendUser(c.Context(), viewer.Token, userID)
	}

	if apiclient.IsAuthError(err) && !apiclient.IsBusinessDenial(err) {
		a.deps.Store.Clear(c)
		return c.Redirect(gate.DefaultLoginPath, router.StatusSeeOther)
	}

	if err != nil {
		a.deps.Logger.Error("admin user action failed", "action", action, "user_id", userID, "error", err)
		return flash.WithError(c, router.ViewContext{
			"error_message": fetchErrorMessage(err),
		}).Redirect("/admin/users", router.StatusSeeOther)
	}

	return flash.WithSuccess(c, router.ViewContext{
		"system_message": "User updated.",
	}).Redirect("/admin/users", router.StatusSeeOther)
}
