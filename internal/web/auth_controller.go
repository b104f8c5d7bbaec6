package web

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-router/flash"
	"github.com/nyaruka/phonenumbers"

	"github.com/goliatone/campaign-console/internal/apiclient"
	"github.com/goliatone/campaign-console/internal/gate"
)

// AuthController serves login, signup, logout, and password reset. These
// routes are public and bypass the gate.
type AuthController struct {
	deps Deps
}

func NewAuthController(deps Deps) *AuthController {
	return &AuthController{deps: deps}
}

// LoginPayload is the sign-in form.
type LoginPayload struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

func (p LoginPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Password, validation.Required),
	)
}

func (a *AuthController) LoginShow(c router.Context) error {
	return c.Render("login", viewData(c, router.ViewContext{
		"record": nil,
		"errors": nil,
	}))
}

func (a *AuthController) LoginPost(c router.Context) error {
	payload := new(LoginPayload)

	if err := c.Bind(payload); err != nil {
		a.deps.Logger.Error("login parse payload", "error", err)
		return renderError(c, err)
	}

	if err := payload.Validate(); err != nil {
		return c.Render("login", viewData(c, router.ViewContext{
			"record":     payload,
			"validation": FormatValidationErrors(err),
		}))
	}

	resp, err := a.deps.API.Login(c.Context(), payload.Email, payload.Password)
	if err != nil {
		a.deps.Logger.Info("login rejected", "email", payload.Email, "error", err)
		return c.Render("login", viewData(c, router.ViewContext{
			"record": payload,
			"errors": map[string]string{"authentication": loginErrorMessage(err)},
		}))
	}

	if err := a.deps.Store.Save(c, resp.AccessToken, resp.User); err != nil {
		a.deps.Logger.Error("unable to persist credential", "error", err)
		return renderError(c, err)
	}

	redirect := gate.ConsumeRejectedRoute(c, "/dashboard")
	a.deps.Logger.Debug("login ok", "user_id", resp.User.ID, "redirect", redirect)

	return c.Redirect(redirect, router.StatusSeeOther)
}

// loginErrorMessage keeps the semantic backend message when there is one
// (e.g. "account not approved"), falling back to a generic line so we don't
// leak whether the email exists.
func loginErrorMessage(err error) string {
	if apiErr, ok := apiclient.AsAPIError(err); ok {
		if apiErr.Status == 0 {
			return "We could not reach the server. Please try again."
		}
		if apiErr.Status == 403 && apiErr.Message != "" {
			return apiErr.Message
		}
	}
	return "Invalid email or password."
}

func (a *AuthController) Logout(c router.Context) error {
	a.deps.Store.Clear(c)
	return c.Redirect("/", router.StatusSeeOther)
}

// SignupPayload is the registration form.
type SignupPayload struct {
	FirstName       string `form:"first_name" json:"first_name"`
	LastName        string `form:"last_name" json:"last_name"`
	Email           string `form:"email" json:"email"`
	Phone           string `form:"phone" json:"phone"`
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password"`
}

func (p SignupPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.FirstName, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.LastName, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&p.Phone, validation.By(ValidatePhoneNumber)),
		validation.Field(&p.Password, validation.Required, validation.Length(10, 100)),
		validation.Field(&p.ConfirmPassword, validation.Required,
			validation.By(ValidateStringEquals(p.Password))),
	)
}

// ValidatePhoneNumber accepts empty values; otherwise the number must parse
// as a valid phone number.
func ValidatePhoneNumber(value any) error {
	raw, _ := value.(string)
	if raw == "" {
		return nil
	}

	parsed, err := phonenumbers.Parse(raw, "US")
	if err != nil {
		return fmt.Errorf("invalid phone number")
	}

	if !phonenumbers.IsValidNumber(parsed) {
		return fmt.Errorf("invalid phone number")
	}

	return nil
}

// ValidateStringEquals builds a rule asserting the value matches expected.
func ValidateStringEquals(expected string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s != expected {
			return fmt.Errorf("values do not match")
		}
		return nil
	}
}

func (a *AuthController) SignupShow(c router.Context) error {
	return c.Render("signup", viewData(c, router.ViewContext{
		"record": SignupPayload{},
		"errors": map[string]string{},
	}))
}

func (a *AuthController) SignupPost(c router.Context) error {
	payload := new(SignupPayload)

	if err := c.Bind(payload); err != nil {
		a.deps.Logger.Error("signup parse payload", "error", err)
		return flash.WithError(c, router.ViewContext{
			"error_message": "We could not read the form. Please try again.",
		}).Status(router.StatusBadRequest).Render("signup", viewData(c, router.ViewContext{
			"record": payload,
		}))
	}

	if err := payload.Validate(); err != nil {
		return c.Render("signup", viewData(c, router.ViewContext{
			"record":     payload,
			"validation": FormatValidationErrors(err),
		}))
	}

	err := a.deps.API.Register(c.Context(), apiclient.RegisterRequest{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		Phone:     payload.Phone,
		Password:  payload.Password,
	})
	if err != nil {
		a.deps.Logger.Error("signup rejected", "error", err)
		return flash.WithError(c, router.ViewContext{
			"error_message": fetchErrorMessage(err),
		}).Render("signup", viewData(c, router.ViewContext{
			"record": payload,
		}))
	}

	return flash.WithSuccess(c, router.ViewContext{
		"system_message": "Account created. Sign in once your account is approved.",
	}).Redirect("/login", router.StatusSeeOther)
}

// PasswordResetPayload is the reset-request form.
type PasswordResetPayload struct {
	Email string `form:"email" json:"email"`
}

func (p PasswordResetPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, is.Email),
	)
}

func (a *AuthController) PasswordResetShow(c router.Context) error {
	return c.Render("password_reset", viewData(c, router.ViewContext{
		"stage": "request",
	}))
}

func (a *AuthController) PasswordResetPost(c router.Context) error {
	payload := new(PasswordResetPayload)

	if err := c.Bind(payload); err != nil {
		return renderError(c, err)
	}

	if err := payload.Validate(); err != nil {
		return c.Render("password_reset", viewData(c, router.ViewContext{
			"stage":      "request",
			"validation": FormatValidationErrors(err),
		}))
	}

	if err := a.deps.API.RequestPasswordReset(c.Context(), payload.Email); err != nil {
		// Same response either way: reset requests must not reveal whether
		// the email exists.
		a.deps.Logger.Warn("password reset request failed", "error", err)
	}

	return c.Render("password_reset", viewData(c, router.ViewContext{
		"stage": "email-sent",
		"email": payload.Email,
	}))
}
