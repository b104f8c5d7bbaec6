package web

import (
	"github.com/goliatone/go-router"

	"github.com/goliatone/campaign-console/internal/apiclient"
	"github.com/goliatone/campaign-console/internal/gate"
)

// RegisterRoutes mounts every page. Public routes carry no gate at all;
// each protected group gets the one shared gate configured with its policy.
func RegisterRoutes[T any](app router.Router[T], deps Deps) {
	marketing := NewMarketingController(deps)
	auth := NewAuthController(deps)
	dashboard := NewDashboardController(deps)
	admin := NewAdminController(deps)
	support := NewSupportController(deps)

	// Public surfaces. Identify surfaces auth state for the nav without
	// gating anything.
	identified := gate.Identify(deps.Store)

	app.Get("/", marketing.Home, identified).SetName("home.get")
	app.Get("/pricing", marketing.Pricing, identified).SetName("pricing.get")

	app.Get("/login", auth.LoginShow).SetName("sign-in.get")
	app.Post("/login", auth.LoginPost).SetName("sign-in.post")
	app.Get("/logout", auth.Logout).SetName("sign-out.get")
	app.Get("/signup", auth.SignupShow).SetName("register.get")
	app.Post("/signup", auth.SignupPost).SetName("register.post")
	app.Get("/password-reset", auth.PasswordResetShow).SetName("pwd-reset.get")
	app.Post("/password-reset", auth.PasswordResetPost).SetName("pwd-reset.post")

	// Subscriber surfaces: approval + active subscription, verified against
	// the backend on every mount.
	subscribed := deps.Gate.Protect(deps.Store, gate.Policy{RequireSubscription: true})

	app.Get("/dashboard", dashboard.Overview, subscribed).SetName("dashboard.get")
	app.Get("/dashboard/leads", dashboard.Leads, subscribed).SetName("leads.get")
	app.Get("/dashboard/campaigns", dashboard.Campaigns, subscribed).SetName("campaigns.get")
	app.Get("/dashboard/campaigns/new", dashboard.CampaignNew, subscribed).SetName("campaigns-new.get")
	app.Post("/dashboard/campaigns", dashboard.CampaignCreate, subscribed).SetName("campaigns.post")
	app.Get("/dashboard/campaigns/:id/edit", dashboard.CampaignEdit, subscribed).SetName("campaigns-edit.get")
	app.Post("/dashboard/campaigns/:id", dashboard.CampaignUpdate, subscribed).SetName("campaigns-update.post")
	app.Post("/dashboard/campaigns/:id/delete", dashboard.CampaignDelete, subscribed).SetName("campaigns-delete.post")

	// Support only needs a signed-in viewer.
	authed := deps.Gate.Protect(deps.Store, gate.Policy{})

	app.Get("/support", support.Tickets, authed).SetName("support.get")
	app.Post("/support", support.TicketCreate, authed).SetName("support.post")

	// Admin console: role check is local and fast, the backend authorizes
	// every data call anyway.
	adminOnly := deps.Gate.Protect(deps.Store, gate.Policy{RequireRole: apiclient.RoleAdmin})

	app.Get("/admin", admin.Overview, adminOnly).SetName("admin.get")
	app.Get("/admin/users", admin.Users, adminOnly).SetName("admin-users.get")
	app.Post("/admin/users/:id/approve", admin.ApproveUser, adminOnly).SetName("admin-users-approve.post")
	app.Post("/admin/users/:id/suspend", admin.SuspendUser, adminOnly).SetName("admin-users-suspend.post")
}
