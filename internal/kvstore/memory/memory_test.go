package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/myfinance/internal/kvstore"
	"github.com/MrJamesThe3rd/myfinance/internal/kvstore/memory"
)

func TestStore(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, kvstore.ErrNotFound)

	require.NoError(t, s.Set(ctx, "k", "v1"))

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v1", got)

	require.NoError(t, s.Set(ctx, "k", "v2"))

	got, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", got)

	require.NoError(t, s.Delete(ctx, "k"))

	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, kvstore.ErrNotFound)

	// Deleting an absent key is not an error.
	assert.NoError(t, s.Delete(ctx, "k"))
}

func TestGetJSON_MissingKeyIsZeroValue(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	var out []string
	require.NoError(t, kvstore.GetJSON(ctx, s, "missing", &out))
	assert.Nil(t, out)
}

func TestSetJSON_RoundTrip(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	in := map[string]bool{"a_0_2026": true}
	require.NoError(t, kvstore.SetJSON(ctx, s, "payments", in))

	out := make(map[string]bool)
	require.NoError(t, kvstore.GetJSON(ctx, s, "payments", &out))
	assert.Equal(t, in, out)
}

func TestGetJSON_Malformed(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "bad", "{not json"))

	var out map[string]bool
	assert.Error(t, kvstore.GetJSON(ctx, s, "bad", &out))
}
