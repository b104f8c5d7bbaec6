// Package gate decides, for any navigation to a protected surface, whether
// the viewer may proceed or must be redirected to authenticate or to finish
// commercial onboarding. All protected route groups share this one gate;
// each configures it with a Policy.
package gate

import (
	"context"

	"github.com/goliatone/campaign-console/internal/apiclient"
	"github.com/goliatone/campaign-console/internal/credstore"
)

// Outcome is the terminal result of a gate evaluation.
type Outcome string

const (
	Allow    Outcome = "allow"
	Redirect Outcome = "redirect"
)

const (
	// DefaultLoginPath receives unauthenticated (and wrong-role) viewers.
	DefaultLoginPath = "/login"
	// DefaultPricingPath receives viewers who still owe onboarding steps.
	DefaultPricingPath = "/pricing"

	// ReasonPendingApproval means the account has not been approved yet.
	ReasonPendingApproval = "pending approval"
	// ReasonInactiveSubscription means the account has no active subscription.
	ReasonInactiveSubscription = "inactive subscription"
)

// FailurePolicy controls what happens when the authoritative user fetch
// fails for reasons other than 401/403. The product favors availability:
// a flapping backend must not lock every subscriber out of their dashboard,
// so the default is FailOpen. FailClosed is available for deployments that
// prefer strict enforcement.
type FailurePolicy int

const (
	FailOpen FailurePolicy = iota
	FailClosed
)

// Policy describes what a protected surface requires from the viewer.
type Policy struct {
	// RequireRole gates on the locally stored role without a network call.
	// Fast and possibly stale, which is the intended trade: admin checks
	// are local, subscription checks are authoritative.
	RequireRole apiclient.UserRole

	// RequireSubscription re-fetches the user record from the backend and
	// gates on approval + subscription state.
	RequireSubscription bool

	// OnError overrides the gate-level failure policy for this surface.
	OnError *FailurePolicy
}

// Decision is produced fresh on every evaluation and never persisted.
// ClearCredential tells the caller the stored credential was rejected by
// the backend and must be removed as a side effect.
type Decision struct {
	Outcome         Outcome
	Target          string
	Reason          string
	ClearCredential bool

	// FreshUser carries the authoritative user record when one was fetched,
	// so handlers behind the gate don't fetch it again.
	FreshUser *apiclient.UserSummary
}

func allow() Decision {
	return Decision{Outcome: Allow}
}

func redirect(target, reason string) Decision {
	return Decision{Outcome: Redirect, Target: target, Reason: reason}
}

// UserFetcher is the authoritative source for the viewer's user record.
type UserFetcher interface {
	Me(ctx context.Context, token string) (*apiclient.UserSummary, error)
}

// Logger is the minimal structured logger the gate needs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Gate evaluates access policies against stored credentials.
type Gate struct {
	fetcher     UserFetcher
	logger      Logger
	onError     FailurePolicy
	loginPath   string
	pricingPath string
}

type Option func(*Gate)

func WithLogger(l Logger) Option {
	return func(g *Gate) {
		if l != nil {
			g.logger = l
		}
	}
}

func WithFailurePolicy(p FailurePolicy) Option {
	return func(g *Gate) {
		g.onError = p
	}
}

func WithLoginPath(path string) Option {
	return func(g *Gate) {
		if path != "" {
			g.loginPath = path
		}
	}
}

func WithPricingPath(path string) Option {
	return func(g *Gate) {
		if path != "" {
			g.pricingPath = path
		}
	}
}

func New(fetcher UserFetcher, opts ...Option) *Gate {
	g := &Gate{
		fetcher:     fetcher,
		logger:      noopLogger{},
		onError:     FailOpen,
		loginPath:   DefaultLoginPath,
		pricingPath: DefaultPricingPath,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Evaluate runs the canonical gate flow. It is pure with respect to storage:
// the caller reads the credential and applies ClearCredential afterwards.
//
//  1. Absent credential redirects to login without touching the network.
//  2. Role requirements check the stored role, uppercased, locally. A wrong
//     role redirects to login, indistinguishable from not being signed in.
//  3. Subscription requirements re-fetch the user record. Unapproved
//     accounts and inactive subscriptions redirect to pricing with a reason.
//  4. A 401/403 from the re-fetch invalidates the credential. Any other
//     failure resolves per the failure policy.
func (g *Gate) Evaluate(ctx context.Context, policy Policy, cred *credstore.Credential) Decision {
	if cred == nil || cred.Token == "" || cred.User.ID == "" {
		return redirect(g.loginPath, "")
	}

	if policy.RequireRole != "" {
		required := apiclient.NormalizeRole(policy.RequireRole)
		if apiclient.NormalizeRole(cred.User.Role) != required {
			g.logger.Debug("gate role mismatch", "required", required, "user_id", cred.User.ID)
			return redirect(g.loginPath, "")
		}
	}

	if !policy.RequireSubscription {
		return allow()
	}

	user, err := g.fetcher.Me(ctx, cred.Token)
	if err != nil {
		return g.resolveFetchFailure(policy, err)
	}

	if !user.IsApproved() {
		return redirect(g.pricingPath, ReasonPendingApproval)
	}

	if !user.HasActiveSubscription() {
		return redirect(g.pricingPath, ReasonInactiveSubscription)
	}

	d := allow()
	d.FreshUser = user
	return d
}

func (g *Gate) resolveFetchFailure(policy Policy, err error) Decision {
	if apiclient.IsAuthError(err) {
		g.logger.Info("gate rejected stale credential", "error", err)
		d := redirect(g.loginPath, "")
		d.ClearCredential = true
		return d
	}

	onError := g.onError
	if policy.OnError != nil {
		onError = *policy.OnError
	}

	if onError == FailClosed {
		g.logger.Warn("gate failing closed on backend error", "error", err)
		return redirect(g.loginPath, "")
	}

	g.logger.Warn("gate failing open on backend error", "error", err)
	return allow()
}
