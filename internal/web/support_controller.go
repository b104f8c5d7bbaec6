package web

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-router/flash"

	"github.com/goliatone/campaign-console/internal/apiclient"
	"github.com/goliatone/campaign-console/internal/gate"
)

// SupportController serves the ticket pages. They only require a signed-in
// viewer, so an unapproved account can still ask for help.
type SupportController struct {
	deps Deps
}

func NewSupportController(deps Deps) *SupportController {
	return &SupportController{deps: deps}
}

func (s *SupportController) Tickets(c router.Context) error {
	viewer, _ := gate.Viewer(c)

	tickets, err := s.deps.API.Tickets(c.Context(), viewer.Token)
	if err != nil {
		return failedFetch(c, s.deps, "support", router.ViewContext{"title": "Support"}, err)
	}

	return c.Render("support", viewData(c, router.ViewContext{
		"title":   "Support",
		"tickets": tickets.Items,
		"record":  TicketPayload{},
	}))
}

// TicketPayload is the new-ticket form.
type TicketPayload struct {
	Subject string `form:"subject" json:"subject"`
	Body    string `form:"body" json:"body"`
}

func (p TicketPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Subject, validation.Required, validation.Length(3, 200)),
		validation.Field(&p.Body, validation.Required, validation.Length(3, 5000)),
	)
}

func (s *SupportController) TicketCreate(c router.Context) error {
	viewer, _ := gate.Viewer(c)
	payload := new(TicketPayload)

	if err := c.Bind(payload); err != nil {
		s.deps.Logger.Error("ticket parse payload", "error", err)
		return renderError(c, err)
	}

	if err := payload.Validate(); err != nil {
		return c.Render("support", viewData(c, router.ViewContext{
			"title":      "Support",
			"record":     payload,
			"validation": FormatValidationErrors(err),
		}))
	}

	_, err := s.deps.API.CreateTicket(c.Context(), viewer.Token, apiclient.CreateTicketRequest{
		Subject: payload.Subject,
		Body:    payload.Body,
	})
	if err != nil {
		return failedFetch(c, s.deps, "support", router.ViewContext{
			"title":  "Support",
			"record": payload,
		}, err)
	}

	return flash.WithSuccess(c, router.ViewContext{
		"system_message": "Ticket submitted. We will get back to you shortly.",
	}).Redirect("/support", router.StatusSeeOther)
}
