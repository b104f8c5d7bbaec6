package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// AppConfig holds every knob the console reads from the environment.
type AppConfig struct {
	Server  Server  `envPrefix:"SERVER_"`
	API     API     `envPrefix:"API_"`
	Session Session `envPrefix:"SESSION_"`
}

type Server struct {
	Address string `env:"ADDRESS" envDefault:":8080"`
	Env     string `env:"ENV" envDefault:"development"`
}

// API describes the remote campaign backend this console renders.
type API struct {
	BaseURL string        `env:"BASE_URL,required"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// Session controls the cookie-backed credential store.
type Session struct {
	SigningKey     string        `env:"SIGNING_KEY,required"`
	TokenCookie    string        `env:"TOKEN_COOKIE" envDefault:"token"`
	UserCookie     string        `env:"USER_COOKIE" envDefault:"user"`
	CookieDuration time.Duration `env:"COOKIE_DURATION" envDefault:"24h"`
}

// Load parses the environment into an AppConfig and validates it.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c AppConfig) Validate() error {
	if err := validation.ValidateStruct(&c.API,
		validation.Field(&c.API.BaseURL, validation.Required, is.URL),
	); err != nil {
		return err
	}
	return validation.ValidateStruct(&c.Session,
		validation.Field(&c.Session.SigningKey, validation.Required, validation.Length(16, 0)),
	)
}

func (c AppConfig) IsProduction() bool {
	return c.Server.Env == "production"
}

func (s Session) GetTokenCookie() string {
	return s.TokenCookie
}

func (s Session) GetUserCookie() string {
	return s.UserCookie
}

func (s Session) GetSigningKey() string {
	return s.SigningKey
}

func (s Session) GetCookieDuration() time.Duration {
	return s.CookieDuration
}
