package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogReq(id, name string) Requirement {
	return Requirement{IngredientID: id, Name: name}
}

func TestScoreRecipePartitions(t *testing.T) {
	snapshot := []PantryItem{{Name: "Tomatoes", IngredientID: "ing-1"}}
	reqs := []Requirement{
		{IngredientID: "ing-1", Name: "Tomatoes", Quantity: "2"},
		{IngredientID: "ing-2", Name: "Flour", Quantity: "1 cup"},
	}

	score, ok := ScoreRecipe(reqs, NewCatalogStrategy(snapshot))
	require.True(t, ok)

	assert.Equal(t, 1, score.MatchedCount)
	assert.Equal(t, 2, score.TotalCount)
	require.Len(t, score.Matched, 1)
	require.Len(t, score.Missing, 1)
	assert.Equal(t, "ing-1", score.Matched[0].IngredientID)
	assert.Equal(t, "ing-2", score.Missing[0].IngredientID)
	assert.Equal(t, 50, score.Percent())
	assert.InDelta(t, 0.5, score.Fraction(), 1e-9)
}

func TestScoreRecipePreservesOrderAndCounts(t *testing.T) {
	snapshot := []PantryItem{
		{IngredientID: "a", Name: "A"},
		{IngredientID: "c", Name: "C"},
	}
	reqs := []Requirement{
		catalogReq("a", "A"), catalogReq("b", "B"),
		catalogReq("c", "C"), catalogReq("d", "D"),
	}

	score, ok := ScoreRecipe(reqs, NewCatalogStrategy(snapshot))
	require.True(t, ok)

	assert.Equal(t, len(reqs), score.MatchedCount+len(score.Missing))
	assert.Equal(t, []Requirement{catalogReq("a", "A"), catalogReq("c", "C")}, score.Matched)
	assert.Equal(t, []Requirement{catalogReq("b", "B"), catalogReq("d", "D")}, score.Missing)
}

func TestScoreRecipeSkipsUnresolvedReferences(t *testing.T) {
	snapshot := []PantryItem{{IngredientID: "a", Name: "A"}}
	reqs := []Requirement{
		catalogReq("a", "A"),
		{IngredientID: "ghost", Unresolved: true},
		catalogReq("b", "B"),
	}

	score, ok := ScoreRecipe(reqs, NewCatalogStrategy(snapshot))
	require.True(t, ok)
	assert.Equal(t, 2, score.TotalCount)
	assert.Equal(t, 1, score.MatchedCount)
}

func TestScoreRecipeZeroRequirements(t *testing.T) {
	_, ok := ScoreRecipe(nil, NewCatalogStrategy(nil))
	assert.False(t, ok)

	// All-unresolved degenerates to zero scoreable requirements.
	_, ok = ScoreRecipe([]Requirement{{IngredientID: "x", Unresolved: true}}, NewCatalogStrategy(nil))
	assert.False(t, ok)
}

func TestSuggestFractionMode(t *testing.T) {
	snapshot := []PantryItem{
		{Name: "Green Onions"},
		{Name: "Eggs"},
	}
	candidates := []Candidate{
		{Key: "omelette", Requirements: []Requirement{
			{Name: "2 eggs"}, {Name: "1 onion, chopped"},
		}},
		{Key: "cake", Requirements: []Requirement{
			{Name: "flour"}, {Name: "sugar"}, {Name: "3 eggs"},
		}},
		{Key: "empty"},
	}

	got := Suggest(candidates, snapshot, DefaultOptions())

	require.Len(t, got, 1, "cake is 33%% and the empty recipe is never a candidate")
	assert.Equal(t, "omelette", got[0].Key)
	assert.Equal(t, 100, got[0].Score.Percent())
}

func TestSuggestCountMode(t *testing.T) {
	snapshot := []PantryItem{
		{IngredientID: "a", Name: "A"},
		{IngredientID: "b", Name: "B"},
		{IngredientID: "c", Name: "C"},
	}
	candidates := []Candidate{
		{Key: "two-of-two", Catalog: true, Requirements: []Requirement{
			catalogReq("a", "A"), catalogReq("b", "B"),
		}},
		{Key: "three-of-six", Catalog: true, Requirements: []Requirement{
			catalogReq("a", "A"), catalogReq("b", "B"), catalogReq("c", "C"),
			catalogReq("x", "X"), catalogReq("y", "Y"), catalogReq("z", "Z"),
		}},
	}

	opts := Options{Mode: ModeCount, MinCount: 3}
	got := Suggest(candidates, snapshot, opts)

	// Count mode admits on absolute matches: the 100% two-ingredient recipe
	// is out, the 50% six-ingredient one is in.
	require.Len(t, got, 1)
	assert.Equal(t, "three-of-six", got[0].Key)
	assert.Equal(t, 3, got[0].Score.MatchedCount)
}

func TestSuggestSortedDescendingAndDeterministic(t *testing.T) {
	snapshot := []PantryItem{{Name: "eggs"}, {Name: "flour"}, {Name: "milk"}}
	candidates := []Candidate{
		{Key: "half", Requirements: []Requirement{{Name: "eggs"}, {Name: "beef"}}},
		{Key: "full", Requirements: []Requirement{{Name: "eggs"}, {Name: "flour"}}},
		{Key: "also-full", Requirements: []Requirement{{Name: "milk"}}},
	}

	first := Suggest(candidates, snapshot, DefaultOptions())
	require.Len(t, first, 3)
	for i := 1; i < len(first); i++ {
		assert.GreaterOrEqual(t, first[i-1].Score.Percent(), first[i].Score.Percent())
	}
	// Ties keep input order: "full" precedes "also-full".
	assert.Equal(t, "full", first[0].Key)
	assert.Equal(t, "also-full", first[1].Key)
	assert.Equal(t, "half", first[2].Key)

	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Suggest(candidates, snapshot, DefaultOptions()))
	}
}

func TestSuggestMixedModesPerRecipe(t *testing.T) {
	// A catalog-linked pantry row matches by id for structured recipes and by
	// name for legacy ones within the same pass.
	snapshot := []PantryItem{{Name: "Tomatoes", IngredientID: "ing-1"}}
	candidates := []Candidate{
		{Key: "structured", Catalog: true, Requirements: []Requirement{catalogReq("ing-1", "Tomatoes")}},
		{Key: "legacy", Requirements: []Requirement{{Name: "2 tomatoes, diced"}}},
	}

	got := Suggest(candidates, snapshot, DefaultOptions())
	require.Len(t, got, 2)
}
