package credstore

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"

	"github.com/goliatone/campaign-console/internal/apiclient"
)

// CookieConfig is what the cookie store needs from app configuration.
type CookieConfig interface {
	GetTokenCookie() string
	GetUserCookie() string
	GetSigningKey() string
	GetCookieDuration() time.Duration
}

// CookieStore keeps the credential in two browser cookies: the opaque
// backend token and the user summary. The user summary round-trips through
// the client, so it is signed (HS256); a tampered role reads as absent and
// falls through to the login redirect.
type CookieStore struct {
	cfg        CookieConfig
	signingKey []byte
}

var _ Store = (*CookieStore)(nil)

func NewCookieStore(cfg CookieConfig) *CookieStore {
	return &CookieStore{
		cfg:        cfg,
		signingKey: []byte(cfg.GetSigningKey()),
	}
}

// userClaims wraps the user summary for the signed cookie.
type userClaims struct {
	jwt.RegisteredClaims
	Email              string `json:"email"`
	Role               string `json:"role"`
	Status             string `json:"status"`
	SubscriptionStatus string `json:"subscription_status"`
}

func (s *CookieStore) Save(c router.Context, token string, user apiclient.UserSummary) error {
	if token == "" || user.ID == "" {
		return goerrors.New("refusing to store a partial credential", goerrors.CategoryBadInput).
			WithCode(goerrors.CodeBadRequest)
	}

	expires := time.Now().Add(s.cfg.GetCookieDuration())

	signed, err := encodeUser(s.signingKey, user, expires)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "unable to sign user cookie")
	}

	s.setCookie(c, s.cfg.GetTokenCookie(), token, expires)
	s.setCookie(c, s.cfg.GetUserCookie(), signed, expires)

	return nil
}

func (s *CookieStore) Read(c router.Context) (Credential, bool) {
	token := c.Cookies(s.cfg.GetTokenCookie())
	raw := c.Cookies(s.cfg.GetUserCookie())

	if token == "" || raw == "" {
		return Credential{}, false
	}

	user, ok := decodeUser(s.signingKey, raw)
	if !ok {
		return Credential{}, false
	}

	return Credential{Token: token, User: user}, true
}

func encodeUser(key []byte, user apiclient.UserSummary, expires time.Time) (string, error) {
	claims := userClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Email:              user.Email,
		Role:               user.Role,
		Status:             user.Status,
		SubscriptionStatus: user.SubscriptionStatus,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

// decodeUser parses the signed user cookie. Garbage, a bad signature, or an
// expired claim all read as absent.
func decodeUser(key []byte, raw string) (apiclient.UserSummary, bool) {
	claims := &userClaims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return apiclient.UserSummary{}, false
	}

	return apiclient.UserSummary{
		ID:                 claims.Subject,
		Email:              claims.Email,
		Role:               claims.Role,
		Status:             claims.Status,
		SubscriptionStatus: claims.SubscriptionStatus,
	}, true
}

func (s *CookieStore) Clear(c router.Context) {
	s.expireCookie(c, s.cfg.GetTokenCookie())
	s.expireCookie(c, s.cfg.GetUserCookie())
}

func (s *CookieStore) setCookie(c router.Context, name, val string, expires time.Time) {
	c.Cookie(&router.Cookie{
		Name:     name,
		Value:    val,
		Expires:  expires,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

func (s *CookieStore) expireCookie(c router.Context, name string) {
	c.Cookie(&router.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}
