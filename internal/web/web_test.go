package web

import (
	"testing"

	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/campaign-console/internal/apiclient"
	"github.com/goliatone/campaign-console/internal/credstore"
	"github.com/goliatone/campaign-console/internal/gate"
)

type testLogger struct{}

func (testLogger) Debug(string, ...any) {}
func (testLogger) Info(string, ...any)  {}
func (testLogger) Warn(string, ...any)  {}
func (testLogger) Error(string, ...any) {}

func seededWebDeps() (Deps, *credstore.MemoryStore) {
	store := credstore.NewMemoryStore()
	store.Seed(credstore.Credential{
		Token: "T",
		User:  apiclient.UserSummary{ID: "u1", Email: "a@b.com", Role: "USER"},
	})
	return Deps{Logger: testLogger{}, Store: store}, store
}

func TestFailedFetch_BusinessDenialRendersInline(t *testing.T) {
	deps, store := seededWebDeps()

	ctx := router.NewMockContext()
	ctx.On("Render", "support", mock.MatchedBy(func(vc router.ViewContext) bool {
		return vc["fetch_error"] == "Account pending approval"
	})).Return(nil)

	err := failedFetch(ctx, deps, "support", router.ViewContext{}, &apiclient.APIError{
		Status:  403,
		Code:    "not_approved",
		Message: "Account pending approval",
	})
	require.NoError(t, err)

	_, ok := store.Read(nil)
	assert.True(t, ok, "a business denial must not sign the viewer out")
	ctx.AssertExpectations(t)
}

func TestFailedFetch_AuthFailureSignsOut(t *testing.T) {
	tests := []struct {
		name string
		err  *apiclient.APIError
	}{
		{name: "401", err: &apiclient.APIError{Status: 401, Message: "unauthorized"}},
		{name: "bare 403", err: &apiclient.APIError{Status: 403, Message: "Forbidden"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps, store := seededWebDeps()

			ctx := router.NewMockContext()
			ctx.On("Redirect", gate.DefaultLoginPath, []int{router.StatusSeeOther}).Return(nil)

			err := failedFetch(ctx, deps, "support", router.ViewContext{}, tt.err)
			require.NoError(t, err)

			_, ok := store.Read(nil)
			assert.False(t, ok, "a rejected session must be cleared")
			ctx.AssertExpectations(t)
		})
	}
}

func TestFailedFetch_TransientErrorRendersInline(t *testing.T) {
	deps, store := seededWebDeps()

	ctx := router.NewMockContext()
	ctx.On("Render", "leads", mock.MatchedBy(func(vc router.ViewContext) bool {
		msg, _ := vc["fetch_error"].(string)
		return msg != ""
	})).Return(nil)

	err := failedFetch(ctx, deps, "leads", router.ViewContext{}, &apiclient.APIError{Status: 0})
	require.NoError(t, err)

	_, ok := store.Read(nil)
	assert.True(t, ok, "transient failures keep the credential")
	ctx.AssertExpectations(t)
}
