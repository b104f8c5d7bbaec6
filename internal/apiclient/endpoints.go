package apiclient

import (
	"context"
	"net/url"
)

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Password  string `json:"password"`
}

// CreateCampaignRequest is the payload for POST /campaigns.
type CreateCampaignRequest struct {
	Name    string  `json:"name"`
	Channel string  `json:"channel,omitempty"`
	Budget  float64 `json:"budget,omitempty"`
}

// UpdateCampaignRequest is the payload for PUT /campaigns/:id.
type UpdateCampaignRequest struct {
	Name    string  `json:"name"`
	Channel string  `json:"channel,omitempty"`
	Budget  float64 `json:"budget,omitempty"`
	Status  string  `json:"status,omitempty"`
}

// CreateTicketRequest is the payload for POST /support/tickets.
type CreateTicketRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	out := &LoginResponse{}
	err := c.Post(ctx, "/auth/login", LoginRequest{Email: email, Password: password}, out, RequestOptions{})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.Post(ctx, "/auth/register", req, nil, RequestOptions{})
}

func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	return c.Post(ctx, "/auth/password-reset", map[string]string{"email": email}, nil, RequestOptions{})
}

// Me fetches the authoritative user record for the given token.
func (c *Client) Me(ctx context.Context, token string) (*UserSummary, error) {
	out := &UserSummary{}
	if err := c.Get(ctx, "/auth/me", out, RequestOptions{Token: token}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Leads(ctx context.Context, token string, query url.Values) (*ListResponse[Lead], error) {
	out := &ListResponse[Lead]{}
	if err := c.Get(ctx, "/leads", out, RequestOptions{Token: token, Query: query}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Campaigns(ctx context.Context, token string, query url.Values) (*ListResponse[Campaign], error) {
	out := &ListResponse[Campaign]{}
	if err := c.Get(ctx, "/campaigns", out, RequestOptions{Token: token, Query: query}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCampaign(ctx context.Context, token string, req CreateCampaignRequest) (*Campaign, error) {
	out := &Campaign{}
	if err := c.Post(ctx, "/campaigns", req, out, RequestOptions{Token: token}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Campaign(ctx context.Context, token, id string) (*Campaign, error) {
	out := &Campaign{}
	if err := c.Get(ctx, "/campaigns/"+id, out, RequestOptions{Token: token}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateCampaign(ctx context.Context, token, id string, req UpdateCampaignRequest) (*Campaign, error) {
	out := &Campaign{}
	if err := c.Put(ctx, "/campaigns/"+id, req, out, RequestOptions{Token: token}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteCampaign(ctx context.Context, token, id string) error {
	return c.Delete(ctx, "/campaigns/"+id, RequestOptions{Token: token})
}

// Plans is public: it must never attach a credential so a stale token can't
// log a visitor out of the pricing page.
func (c *Client) Plans(ctx context.Context) ([]Plan, error) {
	out := &ListResponse[Plan]{}
	if err := c.Get(ctx, "/subscriptions/plans", out, RequestOptions{}); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *Client) Tickets(ctx context.Context, token string) (*ListResponse[Ticket], error) {
	out := &ListResponse[Ticket]{}
	if err := c.Get(ctx, "/support/tickets", out, RequestOptions{Token: token}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateTicket(ctx context.Context, token string, req CreateTicketRequest) (*Ticket, error) {
	out := &Ticket{}
	if err := c.Post(ctx, "/support/tickets", req, out, RequestOptions{Token: token}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AdminUsers(ctx context.Context, token string, query url.Values) (*ListResponse[UserSummary], error) {
	out := &ListResponse[UserSummary]{}
	if err := c.Get(ctx, "/admin/users", out, RequestOptions{Token: token, Query: query}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AdminApproveUser(ctx context.Context, token, userID string) error {
	return c.Post(ctx, "/admin/users/"+userID+"/approve", nil, nil, RequestOptions{Token: token})
}

func (c *Client) AdminSuspendUser(ctx context.Context, token, userID string) error {
	return c.Post(ctx, "/admin/users/"+userID+"/suspend", nil, nil, RequestOptions{Token: token})
}

func (c *Client) AdminStats(ctx context.Context, token string) (*AdminStats, error) {
	out := &AdminStats{}
	if err := c.Get(ctx, "/admin/stats", out, RequestOptions{Token: token}); err != nil {
		return nil, err
	}
	return out, nil
}
