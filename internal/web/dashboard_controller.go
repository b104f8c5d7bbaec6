package web

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-router/flash"

	"github.com/goliatone/campaign-console/internal/apiclient"
	"github.com/goliatone/campaign-console/internal/gate"
)

// DashboardController serves the subscriber pages. All routes mount behind
// the subscription gate, so by the time a handler runs the viewer is
// approved with an active subscription; the gate already did the
// authoritative check.
type DashboardController struct {
	deps Deps
}

func NewDashboardController(deps Deps) *DashboardController {
	return &DashboardController{deps: deps}
}

func (d *DashboardController) Overview(c router.Context) error {
	viewer, _ := gate.Viewer(c)

	campaigns, err := d.deps.API.Campaigns(c.Context(), viewer.Token, nil)
	if err != nil {
		return failedFetch(c, d.deps, "dashboard", router.ViewContext{"title": "Dashboard"}, err)
	}

	leads, err := d.deps.API.Leads(c.Context(), viewer.Token, nil)
	if err != nil {
		return failedFetch(c, d.deps, "dashboard", router.ViewContext{
			"title":     "Dashboard",
			"campaigns": campaigns.Items,
		}, err)
	}

	return c.Render("dashboard", viewData(c, router.ViewContext{
		"title":      "Dashboard",
		"campaigns":  campaigns.Items,
		"leads":      leads.Items,
		"lead_total": leads.Total,
	}))
}

func (d *DashboardController) Leads(c router.Context) error {
	viewer, _ := gate.Viewer(c)

	leads, err := d.deps.API.Leads(c.Context(), viewer.Token, listQuery(c))
	if err != nil {
		return failedFetch(c, d.deps, "leads", router.ViewContext{"title": "Leads"}, err)
	}

	return c.Render("leads", viewData(c, router.ViewContext{
		"title": "Leads",
		"leads": leads.Items,
		"total": leads.Total,
	}))
}

func (d *DashboardController) Campaigns(c router.Context) error {
	viewer, _ := gate.Viewer(c)

	campaigns, err := d.deps.API.Campaigns(c.Context(), viewer.Token, listQuery(c))
	if err != nil {
		return failedFetch(c, d.deps, "campaigns", router.ViewContext{"title": "Campaigns"}, err)
	}

	return c.Render("campaigns", viewData(c, router.ViewContext{
		"title":     "Campaigns",
		"campaigns": campaigns.Items,
		"total":     campaigns.Total,
	}))
}

// CampaignPayload is the campaign form, shared by create and edit. Status is
// only offered on edit; an empty value leaves it to the backend.
type CampaignPayload struct {
	Name    string  `form:"name" json:"name"`
	Channel string  `form:"channel" json:"channel"`
	Budget  float64 `form:"budget" json:"budget"`
	Status  string  `form:"status" json:"status"`
}

func (p CampaignPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Channel, validation.In("email", "social", "search", "display", "")),
		validation.Field(&p.Status, validation.In("draft", "active", "paused", "")),
	)
}

func (d *DashboardController) CampaignNew(c router.Context) error {
	return c.Render("campaign_new", viewData(c, router.ViewContext{
		"title":  "New Campaign",
		"record": CampaignPayload{},
	}))
}

func (d *DashboardController) CampaignCreate(c router.Context) error {
	viewer, _ := gate.Viewer(c)
	payload := new(CampaignPayload)

	if err := c.Bind(payload); err != nil {
		d.deps.Logger.Error("campaign parse payload", "error", err)
		return renderError(c, err)
	}

	if err := payload.Validate(); err != nil {
		return c.Render("campaign_new", viewData(c, router.ViewContext{
			"title":      "New Campaign",
			"record":     payload,
			"validation": FormatValidationErrors(err),
		}))
	}

	_, err := d.deps.API.CreateCampaign(c.Context(), viewer.Token, apiclient.CreateCampaignRequest{
		Name:    payload.Name,
		Channel: payload.Channel,
		Budget:  payload.Budget,
	})
	if err != nil {
		return failedFetch(c, d.deps, "campaign_new", router.ViewContext{
			"title":  "New Campaign",
			"record": payload,
		}, err)
	}

	return flash.WithSuccess(c, router.ViewContext{
		"system_message": "Campaign created.",
	}).Redirect("/dashboard/campaigns", router.StatusSeeOther)
}

func (d *DashboardController) CampaignEdit(c router.Context) error {
	viewer, _ := gate.Viewer(c)

	campaign, err := d.deps.API.Campaign(c.Context(), viewer.Token, c.Param("id"))
	if err != nil {
		return failedFetch(c, d.deps, "campaign_edit", router.ViewContext{"title": "Edit Campaign"}, err)
	}

	return c.Render("campaign_edit", viewData(c, router.ViewContext{
		"title":       "Edit Campaign",
		"campaign":    campaign,
		"campaign_id": campaign.ID,
		"record": CampaignPayload{
			Name:    campaign.Name,
			Channel: campaign.Channel,
			Budget:  campaign.Budget,
			Status:  campaign.Status,
		},
	}))
}

func (d *DashboardController) CampaignUpdate(c router.Context) error {
	viewer, _ := gate.Viewer(c)
	id := c.Param("id")
	payload := new(CampaignPayload)

	if err := c.Bind(payload); err != nil {
		d.deps.Logger.Error("campaign parse payload", "error", err)
		return renderError(c, err)
	}

	if err := payload.Validate(); err != nil {
		return c.Render("campaign_edit", viewData(c, router.ViewContext{
			"title":       "Edit Campaign",
			"campaign_id": id,
			"record":      payload,
			"validation":  FormatValidationErrors(err),
		}))
	}

	_, err := d.deps.API.UpdateCampaign(c.Context(), viewer.Token, id, apiclient.UpdateCampaignRequest{
		Name:    payload.Name,
		Channel: payload.Channel,
		Budget:  payload.Budget,
		Status:  payload.Status,
	})
	if err != nil {
		return failedFetch(c, d.deps, "campaign_edit", router.ViewContext{
			"title":       "Edit Campaign",
			"campaign_id": id,
			"record":      payload,
		}, err)
	}

	return flash.WithSuccess(c, router.ViewContext{
		"system_message": "Campaign updated.",
	}).Redirect("/dashboard/campaigns", router.StatusSeeOther)
}

func (d *DashboardController) CampaignDelete(c router.Context) error {
	viewer, _ := gate.Viewer(c)
	id := c.Param("id")

	err := d.deps.API.DeleteCampaign(c.Context(), viewer.Token, id)
	if apiclient.IsAuthError(err) && !apiclient.IsBusinessDenial(err) {
		d.deps.Store.Clear(c)
		return c.Redirect(gate.DefaultLoginPath, router.StatusSeeOther)
	}

	if err != nil {
		d.deps.Logger.Error("campaign delete failed", "campaign_id", id, "error", err)
		return flash.WithError(c, router.ViewContext{
			"error_message": fetchErrorMessage(err),
		}).Redirect("/dashboard/campaigns", router.StatusSeeOther)
	}

	return flash.WithSuccess(c, router.ViewContext{
		"system_message": "Campaign deleted.",
	}).Redirect("/dashboard/campaigns", router.StatusSeeOther)
}
