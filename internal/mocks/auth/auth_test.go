package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/hirebase/jobboard/internal/domain/auth"
	"github.com/hirebase/jobboard/internal/ports"
)

func TestMemorySessionStore_RoundTrip(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	sess := domainauth.Session{
		ID:        "s1",
		UserID:    "u1",
		Email:     "u1@example.com",
		Role:      domainauth.RoleUser,
		ExpiresAt: time.Now().Add(time.Hour),
	}

	require.NoError(t, store.Save(ctx, sess))
	assert.Equal(t, 1, store.Len())

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, sess, got)

	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = store.Get(ctx, "s1")
	assert.Equal(t, ErrNotFound, err)
}

func TestMockAuthProvider_DeterministicStateNonce(t *testing.T) {
	prov := NewMockAuthProvider()
	ctx := context.Background()

	_, state1, nonce1, err := prov.Begin(ctx, ports.BeginInput{RedirectURL: "/cb"})
	require.NoError(t, err)
	_, state2, nonce2, err := prov.Begin(ctx, ports.BeginInput{RedirectURL: "/cb"})
	require.NoError(t, err)

	assert.Equal(t, "state-1", state1)
	assert.Equal(t, "nonce-1", nonce1)
	assert.Equal(t, "state-2", state2)
	assert.Equal(t, "nonce-2", nonce2)
}

func TestStaticRoleResolver(t *testing.T) {
	resolver := StaticRoleResolver{AdminIDs: []string{"admin-1"}}
	ctx := context.Background()

	assert.Equal(t, domainauth.RoleAdmin, resolver.Resolve(ctx, "admin-1"))
	assert.Equal(t, domainauth.RoleUser, resolver.Resolve(ctx, "user-1"))
	assert.Equal(t, domainauth.RoleUser, resolver.Resolve(ctx, ""))
}
