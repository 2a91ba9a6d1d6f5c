package kv_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvbarbosa/fuellog/internal/kv"
	"github.com/mvbarbosa/fuellog/testutil"
)

// newPgStore opens a transaction against the test database and returns a
// PgStore backed by it. The transaction is rolled back when the test
// finishes, giving free per-test isolation. Skips without TEST_DATABASE_URL.
func newPgStore(t *testing.T) *kv.PgStore {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return kv.NewPgStore(tx)
}

func TestPgStore_RoundTrip(t *testing.T) {
	store := newPgStore(t)
	ctx := context.Background()

	type payload struct {
		Language string `json:"language"`
	}

	require.NoError(t, store.Set(ctx, "fuellog:v1:settings", payload{Language: "pt-BR"}))

	var got payload
	found, err := store.Get(ctx, "fuellog:v1:settings", &got)

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "pt-BR", got.Language)
}

func TestPgStore_Get_AbsentKey(t *testing.T) {
	store := newPgStore(t)

	var got string
	found, err := store.Get(context.Background(), "missing", &got)

	require.NoError(t, err)
	assert.False(t, found)
}

func TestPgStore_Set_Upserts(t *testing.T) {
	store := newPgStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []int{1, 2}))
	require.NoError(t, store.Set(ctx, "k", []int{3}))

	var got []int
	found, err := store.Get(ctx, "k", &got)

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []int{3}, got)
}

func TestPgStore_Get_ShapeMismatchIsCorrupt(t *testing.T) {
	store := newPgStore(t)
	ctx := context.Background()

	// Valid JSON of the wrong shape must surface as ErrCorrupt, not crash.
	require.NoError(t, store.Set(ctx, "k", "just a string"))

	var got []int
	_, err := store.Get(ctx, "k", &got)

	assert.ErrorIs(t, err, kv.ErrCorrupt)
}

func TestPgStore_DeleteAndProbe(t *testing.T) {
	store := newPgStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", 1))
	require.NoError(t, store.Delete(ctx, "k"))

	var got int
	found, err := store.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting again is not an error, and the probe passes on a healthy DB.
	assert.NoError(t, store.Delete(ctx, "k"))
	assert.NoError(t, store.Probe(ctx))
}
