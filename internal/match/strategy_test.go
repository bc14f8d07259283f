package match

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "olive oil", Normalize("Olive Oil!!"))
	assert.Equal(t, Normalize("olive oil"), Normalize("Olive Oil!!"))
	assert.Equal(t, "2 cups flour", Normalize("  2 cups FLOUR, "))
	assert.Equal(t, "", Normalize("!!!"))
	assert.Equal(t, "", Normalize(""))
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Olive Oil!!", "Green Onions", "1/2 tsp. salt", "Jalapeño"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", in)
	}
}

func TestIsTextMatch(t *testing.T) {
	tests := []struct {
		name   string
		pantry string
		recipe string
		want   bool
	}{
		{"exact", "flour", "flour", true},
		{"case and punctuation", "Olive Oil!!", "olive oil", true},
		{"substring", "onion", "red onion", true},
		{"word overlap with containment", "Green Onions", "2 onions, chopped", true},
		{"no overlap", "flour", "chicken breast", false},
		{"short tokens filtered", "oz", "of", false},
		{"empty pantry side", "", "flour", false},
		{"empty recipe side", "flour", "!!", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTextMatch(tt.pantry, tt.recipe))
		})
	}
}

func TestIsTextMatchReflexive(t *testing.T) {
	for _, s := range []string{"flour", "green onions", "2 cups sugar"} {
		assert.True(t, IsTextMatch(s, s), "isMatch(%q, %q) must be true", s, s)
	}
}

func TestCatalogStrategy(t *testing.T) {
	snapshot := []PantryItem{
		{Name: "Tomatoes", IngredientID: "ing-1"},
		{Name: "free-text item"}, // no catalog link, must not participate
	}
	strat := NewCatalogStrategy(snapshot)

	assert.True(t, strat.Matches(Requirement{IngredientID: "ing-1"}))
	assert.False(t, strat.Matches(Requirement{IngredientID: "ing-2"}))
	assert.False(t, strat.Matches(Requirement{Name: "free-text item"}))
}

func TestTextStrategySkipsBlankPantryNames(t *testing.T) {
	strat := NewTextStrategy([]PantryItem{{Name: "!!"}, {Name: "flour"}})
	assert.True(t, strat.Matches(Requirement{Name: "2 cups flour"}))
	assert.False(t, strat.Matches(Requirement{Name: ""}))
}

func TestIngredientNames(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"comma string", `"flour, sugar , eggs"`, []string{"flour", "sugar", "eggs"}},
		{"string array", `["flour","sugar"]`, []string{"flour", "sugar"}},
		{"object array with item", `[{"item":"flour","amount":"2 cups"},{"item":"sugar"}]`, []string{"flour", "sugar"}},
		{"object array with name", `[{"name":"butter"}]`, []string{"butter"}},
		{"mixed array", `["flour",{"item":"sugar"},42]`, []string{"flour", "sugar"}},
		{"null", `null`, nil},
		{"empty", ``, nil},
		{"number", `42`, nil},
		{"bare object", `{"item":"flour"}`, nil},
		{"empty pieces dropped", `"flour,, ,sugar"`, []string{"flour", "sugar"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IngredientNames(json.RawMessage(tt.raw)))
		})
	}
}
