package apiclient

import (
	"strings"
	"time"
)

// UserRole is the user's role as reported by the backend
type UserRole = string

const (
	// RoleUser is a regular dashboard user
	RoleUser UserRole = "USER"
	// RoleAdmin may access the admin console
	RoleAdmin UserRole = "ADMIN"
)

// AccountStatus is the commercial approval state of an account
type AccountStatus = string

const (
	StatusPending   AccountStatus = "PENDING"
	StatusApproved  AccountStatus = "APPROVED"
	StatusRejected  AccountStatus = "REJECTED"
	StatusSuspended AccountStatus = "SUSPENDED"
)

// SubscriptionStatus is the billing state of an account
type SubscriptionStatus = string

const (
	SubscriptionInactive SubscriptionStatus = "INACTIVE"
	SubscriptionActive   SubscriptionStatus = "ACTIVE"
	SubscriptionExpired  SubscriptionStatus = "EXPIRED"
)

// NormalizeRole uppercases a stored role so comparisons are case-insensitive.
func NormalizeRole(role string) UserRole {
	return strings.ToUpper(strings.TrimSpace(role))
}

// UserSummary is the lightweight user record the backend returns on login
// and from GET /auth/me.
type UserSummary struct {
	ID                 string             `json:"id"`
	Email              string             `json:"email"`
	FirstName          string             `json:"first_name,omitempty"`
	LastName           string             `json:"last_name,omitempty"`
	Role               UserRole           `json:"role"`
	Status             AccountStatus      `json:"status"`
	SubscriptionStatus SubscriptionStatus `json:"subscription_status"`
}

// IsAdmin checks the role case-insensitively.
func (u UserSummary) IsAdmin() bool {
	return NormalizeRole(u.Role) == RoleAdmin
}

func (u UserSummary) IsApproved() bool {
	return u.Status == StatusApproved
}

func (u UserSummary) HasActiveSubscription() bool {
	return u.SubscriptionStatus == SubscriptionActive
}

// LoginResponse is the payload returned by POST /auth/login.
type LoginResponse struct {
	AccessToken string      `json:"accessToken"`
	User        UserSummary `json:"user"`
}

// Lead is a captured marketing lead.
type Lead struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Source    string     `json:"source,omitempty"`
	Campaign  string     `json:"campaign_id,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// Campaign is a marketing campaign owned by the viewer.
type Campaign struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Channel   string     `json:"channel,omitempty"`
	Status    string     `json:"status"`
	Budget    float64    `json:"budget,omitempty"`
	LeadCount int        `json:"lead_count,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// Plan is a subscription plan shown on the public pricing page.
type Plan struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Interval    string   `json:"interval,omitempty"`
	Features    []string `json:"features,omitempty"`
	Highlighted bool     `json:"highlighted,omitempty"`
}

// Ticket is a support request raised from the dashboard.
type Ticket struct {
	ID        string     `json:"id"`
	Subject   string     `json:"subject"`
	Body      string     `json:"body,omitempty"`
	Status    string     `json:"status"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// AdminStats is the aggregate panel on the admin console landing page.
type AdminStats struct {
	TotalUsers      int `json:"total_users"`
	PendingUsers    int `json:"pending_users"`
	ActiveCampaigns int `json:"active_campaigns"`
	TotalLeads      int `json:"total_leads"`
}

// ListResponse is the backend's common collection envelope.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}
