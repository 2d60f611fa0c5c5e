package stub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRevoker(t *testing.T) {
	r := NewMemoryRevoker()
	ctx := context.Background()

	revoked, err := r.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, r.Revoke(ctx, "tok", time.Hour))
	revoked, err = r.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, revoked)

	// Other tokens stay unaffected.
	revoked, err = r.IsRevoked(ctx, "autre")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestMemoryRevoker_EntryExpiresWithToken(t *testing.T) {
	r := NewMemoryRevoker()
	ctx := context.Background()

	require.NoError(t, r.Revoke(ctx, "tok", -time.Second))
	revoked, err := r.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, revoked, "an entry past the token lifetime is dropped")
}
