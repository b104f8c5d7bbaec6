package web

import (
	"github.com/goliatone/go-router"

	"github.com/goliatone/campaign-console/internal/gate"
)

// MarketingController serves the public pages. They render unconditionally:
// no gate, and the plans fetch never attaches a credential, so a stale
// token can't log a visitor out of the pricing page.
type MarketingController struct {
	deps Deps
}

func NewMarketingController(deps Deps) *MarketingController {
	return &MarketingController{deps: deps}
}

func (m *MarketingController) Home(c router.Context) error {
	return c.Render("home", viewData(c, router.ViewContext{
		"title": "Campaign Console",
	}))
}

func (m *MarketingController) Pricing(c router.Context) error {
	data := router.ViewContext{
		"title":  "Pricing",
		"notice": pricingNotice(c.Query("reason")),
	}

	plans, err := m.deps.API.Plans(c.Context())
	if err != nil {
		// Public page: surface the failure inline, never sign anyone out.
		m.deps.Logger.Error("plans fetch failed", "error", err)
		data["fetch_error"] = fetchErrorMessage(err)
		return c.Render("pricing", viewData(c, data))
	}

	data["plans"] = plans
	return c.Render("pricing", viewData(c, data))
}

// pricingNotice maps a gate redirect reason to the banner shown above the
// plan grid.
func pricingNotice(reason string) string {
	switch reason {
	case gate.ReasonPendingApproval:
		return "Your account is awaiting approval. We will email you once it is ready."
	case gate.ReasonInactiveSubscription:
		return "Your subscription is not active. Pick a plan to continue."
	default:
		return ""
	}
}
