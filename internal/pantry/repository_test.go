package pantry

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealmash/internal/database"
	"mealmash/internal/ingredient"
)

func testRepo(t *testing.T) (*Repository, *ingredient.Repository) {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db.SQL), ingredient.NewRepository(db.SQL, 0)
}

func TestAddAndList(t *testing.T) {
	repo, _ := testRepo(t)
	ctx := context.Background()

	first, err := repo.Add(ctx, Item{UserID: "u1", Name: "  Flour ", Category: "pantry", Quantity: "2 cups"})
	require.NoError(t, err)
	assert.Equal(t, "Flour", first.Name)
	require.NotEmpty(t, first.ID)

	_, err = repo.Add(ctx, Item{UserID: "u2", Name: "Milk", Quantity: "1"})
	require.NoError(t, err)

	items, err := repo.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1, "listing is owner scoped")
	assert.Equal(t, "Flour", items[0].Name)
	assert.Equal(t, "2 cups", items[0].Quantity)

	_, err = repo.Add(ctx, Item{UserID: "u1", Name: ""})
	assert.Error(t, err)
	_, err = repo.Add(ctx, Item{Name: "Orphan"})
	assert.Error(t, err)
}

func TestUpdateAndDeleteAreOwnerScoped(t *testing.T) {
	repo, _ := testRepo(t)
	ctx := context.Background()

	it, err := repo.Add(ctx, Item{UserID: "u1", Name: "Eggs", Quantity: "6"})
	require.NoError(t, err)

	assert.Error(t, repo.UpdateQuantity(ctx, "u2", it.ID, "12"))
	require.NoError(t, repo.UpdateQuantity(ctx, "u1", it.ID, "12"))

	items, err := repo.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "12", items[0].Quantity)

	assert.Error(t, repo.Delete(ctx, "u2", it.ID))
	require.NoError(t, repo.Delete(ctx, "u1", it.ID))

	items, err = repo.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUpsertMergesCatalogRows(t *testing.T) {
	repo, ingredients := testRepo(t)
	ctx := context.Background()

	flour, err := ingredients.Create(ctx, ingredient.CreateParams{
		Name: "Flour", Category: ingredient.CategoryGrains,
	})
	require.NoError(t, err)

	require.NoError(t, repo.Upsert(ctx, "u1", flour.ID, "Flour", "pantry", "1 cup"))
	require.NoError(t, repo.Upsert(ctx, "u1", flour.ID, "Flour", "pantry", "1 cup"))

	items, err := repo.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1, "same catalog ingredient merges into one row")
	assert.Equal(t, "2 cup", items[0].Quantity)
	assert.Equal(t, flour.ID, items[0].IngredientID)

	// Unparseable quantities fall back to concatenation.
	require.NoError(t, repo.Upsert(ctx, "u1", flour.ID, "Flour", "pantry", "a pinch"))
	items, err = repo.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2 cup + a pinch", items[0].Quantity)
}

func TestUpsertWithoutCatalogLinkAlwaysInserts(t *testing.T) {
	repo, _ := testRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, "u1", "", "mystery sauce", "", "1"))
	require.NoError(t, repo.Upsert(ctx, "u1", "", "mystery sauce", "", "1"))

	items, err := repo.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, items, 2, "uncatalogued rows do not merge")
}

func TestSnapshot(t *testing.T) {
	items := []Item{
		{Name: "Flour", IngredientID: "ing-1"},
		{Name: "sriracha"},
	}
	snap := Snapshot(items)
	require.Len(t, snap, 2)
	assert.Equal(t, "Flour", snap[0].Name)
	assert.Equal(t, "ing-1", snap[0].IngredientID)
	assert.Empty(t, snap[1].IngredientID)
}
