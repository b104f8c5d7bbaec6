package credstore

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/campaign-console/internal/apiclient"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func sampleUser() apiclient.UserSummary {
	return apiclient.UserSummary{
		ID:                 "u1",
		Email:              "a@b.com",
		Role:               "ADMIN",
		Status:             apiclient.StatusApproved,
		SubscriptionStatus: apiclient.SubscriptionActive,
	}
}

func TestEncodeDecodeUser_RoundTrip(t *testing.T) {
	signed, err := encodeUser(testKey, sampleUser(), time.Now().Add(time.Hour))
	require.NoError(t, err)

	user, ok := decodeUser(testKey, signed)
	require.True(t, ok)
	assert.Equal(t, sampleUser(), user)
}

func TestDecodeUser_RejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "not a token", raw: "{not-json"},
		{name: "random segments", raw: "aaa.bbb.ccc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := decodeUser(testKey, tt.raw)
			assert.False(t, ok, "unparseable data must read as absent")
		})
	}
}

func TestDecodeUser_RejectsTamperedSignature(t *testing.T) {
	signed, err := encodeUser(testKey, sampleUser(), time.Now().Add(time.Hour))
	require.NoError(t, err)

	// Flip a character in the signature segment.
	parts := strings.Split(signed, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, ok := decodeUser(testKey, tampered)
	assert.False(t, ok)
}

func TestDecodeUser_RejectsWrongKey(t *testing.T) {
	signed, err := encodeUser(testKey, sampleUser(), time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, ok := decodeUser([]byte("another-signing-key-entirely!!!!"), signed)
	assert.False(t, ok)
}

func TestDecodeUser_RejectsExpired(t *testing.T) {
	signed, err := encodeUser(testKey, sampleUser(), time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, ok := decodeUser(testKey, signed)
	assert.False(t, ok)
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()

	_, ok := store.Read(nil)
	assert.False(t, ok)

	require.NoError(t, store.Save(nil, "T", sampleUser()))

	cred, ok := store.Read(nil)
	require.True(t, ok)
	assert.Equal(t, "T", cred.Token)
	assert.Equal(t, sampleUser(), cred.User)

	store.Clear(nil)

	_, ok = store.Read(nil)
	assert.False(t, ok)
}

func TestMemoryStore_HalfPresentIsAbsent(t *testing.T) {
	store := NewMemoryStore()

	store.Seed(Credential{Token: "T"})
	_, ok := store.Read(nil)
	assert.False(t, ok, "token without user is absent")

	store.Seed(Credential{User: sampleUser()})
	_, ok = store.Read(nil)
	assert.False(t, ok, "user without token is absent")
}
