package shopping

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealmash/internal/database"
	"mealmash/internal/match"
)

func testReconciler(t *testing.T) (*Reconciler, *Repository) {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	repo := NewRepository(db.SQL)
	return NewReconciler(repo), repo
}

func TestReconcileInsertsMissingItems(t *testing.T) {
	rc, repo := testReconciler(t)
	ctx := context.Background()

	missing := []match.Requirement{
		{Name: "Flour", Quantity: "1 cup"},
		{Name: "eggs"},
	}

	results := rc.Reconcile(ctx, "u1", missing)
	require.Len(t, results, 2)
	for _, res := range results {
		require.NoError(t, res.Err)
		assert.False(t, res.Merged)
	}

	items, err := repo.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 2)

	byName := map[string]Item{}
	for _, it := range items {
		byName[it.ItemName] = it
	}
	assert.Equal(t, "1 cup", byName["Flour"].Quantity)
	assert.Equal(t, "1", byName["eggs"].Quantity, "missing quantity defaults to 1")
}

func TestReconcileMergesIntoExistingOpenRow(t *testing.T) {
	rc, repo := testReconciler(t)
	ctx := context.Background()

	_, err := repo.Insert(ctx, Item{UserID: "u1", ItemName: "flour", Quantity: "1 cup"})
	require.NoError(t, err)

	results := rc.Reconcile(ctx, "u1", []match.Requirement{{Name: "Flour", Quantity: "1 cup"}})
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.True(t, results[0].Merged, "name match is case-insensitive")

	items, err := repo.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2 cup", items[0].Quantity)
}

func TestReconcileConverges(t *testing.T) {
	rc, repo := testReconciler(t)
	ctx := context.Background()

	missing := []match.Requirement{{Name: "Butter", Quantity: "2 tbsp"}}

	first := rc.Reconcile(ctx, "u1", missing)
	require.NoError(t, first[0].Err)
	assert.False(t, first[0].Merged)

	second := rc.Reconcile(ctx, "u1", missing)
	require.NoError(t, second[0].Err)
	assert.True(t, second[0].Merged, "second pass finds the first pass's row")

	items, err := repo.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1, "re-running never duplicates rows")
	assert.Equal(t, "4 tbsp", items[0].Quantity)
}

func TestReconcileConcatenatesUnparseableQuantities(t *testing.T) {
	rc, repo := testReconciler(t)
	ctx := context.Background()

	_, err := repo.Insert(ctx, Item{UserID: "u1", ItemName: "Salt", Quantity: "a pinch"})
	require.NoError(t, err)

	results := rc.Reconcile(ctx, "u1", []match.Requirement{{Name: "Salt", Quantity: "1 tsp"}})
	require.NoError(t, results[0].Err)

	items, err := repo.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a pinch + 1 tsp", items[0].Quantity)
}

func TestReconcileIgnoresCheckedRows(t *testing.T) {
	rc, repo := testReconciler(t)
	ctx := context.Background()

	bought, err := repo.Insert(ctx, Item{UserID: "u1", ItemName: "Milk", Quantity: "1"})
	require.NoError(t, err)
	require.NoError(t, repo.SetChecked(ctx, "u1", bought.ID, true))

	results := rc.Reconcile(ctx, "u1", []match.Requirement{{Name: "Milk", Quantity: "1"}})
	require.NoError(t, results[0].Err)
	assert.False(t, results[0].Merged, "checked rows are history, not open list")

	items, err := repo.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestReconcileIsOwnerScoped(t *testing.T) {
	rc, repo := testReconciler(t)
	ctx := context.Background()

	_, err := repo.Insert(ctx, Item{UserID: "u2", ItemName: "Flour", Quantity: "1 cup"})
	require.NoError(t, err)

	results := rc.Reconcile(ctx, "u1", []match.Requirement{{Name: "Flour", Quantity: "1 cup"}})
	require.NoError(t, results[0].Err)
	assert.False(t, results[0].Merged)

	u2, err := repo.ListByOwner(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, u2, 1)
	assert.Equal(t, "1 cup", u2[0].Quantity, "another user's list is untouched")
}
