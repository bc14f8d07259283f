package recipe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealmash/internal/match"
)

func servePage(t *testing.T, html string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(html))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestImportJSONLD(t *testing.T) {
	srv := servePage(t, `<html><head>
<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "Recipe",
  "name": "Spaghetti Carbonara",
  "description": "A Roman classic.",
  "recipeIngredient": ["200g spaghetti", "2 eggs", "100g pancetta"],
  "recipeInstructions": [
    {"@type": "HowToStep", "text": "Boil the pasta."},
    {"@type": "HowToStep", "text": "Toss with eggs and pancetta."}
  ],
  "prepTime": "PT10M",
  "cookTime": "PT1H5M",
  "recipeYield": "4 servings",
  "image": {"url": "https://example.com/carbonara.jpg"}
}
</script>
</head><body></body></html>`)

	rec, err := NewImporter().Import(context.Background(), srv.URL)
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, "Spaghetti Carbonara", rec.Name)
	assert.Equal(t, "A Roman classic.", rec.Description)
	assert.Equal(t, "dinner", rec.Category)
	assert.Equal(t, []string{"Boil the pasta.", "Toss with eggs and pancetta."}, rec.Instructions)
	assert.Equal(t, 10, rec.PrepTimeMinutes)
	assert.Equal(t, 65, rec.CookTimeMinutes)
	assert.Equal(t, 4, rec.Servings)
	assert.Equal(t, "https://example.com/carbonara.jpg", rec.ImageURL)

	names := match.IngredientNames(rec.LegacyIngredients)
	assert.Equal(t, []string{"200g spaghetti", "2 eggs", "100g pancetta"}, names)
}

func TestImportJSONLDGraph(t *testing.T) {
	srv := servePage(t, `<html><head>
<script type="application/ld+json">
{
  "@graph": [
    {"@type": "WebSite", "name": "Some Food Blog"},
    {
      "@type": ["Recipe", "NewsArticle"],
      "name": "Lentil Soup",
      "recipeIngredient": ["1 cup lentils", "1 onion"],
      "recipeInstructions": "Simmer everything for an hour."
    }
  ]
}
</script>
</head><body></body></html>`)

	rec, err := NewImporter().Import(context.Background(), srv.URL)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Lentil Soup", rec.Name)
	assert.Equal(t, []string{"Simmer everything for an hour."}, rec.Instructions)
}

func TestImportMicrodataFallback(t *testing.T) {
	srv := servePage(t, `<html><head><title>Grandma's Chili</title></head><body>
<div itemscope itemtype="https://schema.org/Recipe">
  <span itemprop="recipeIngredient">1 lb ground beef</span>
  <span itemprop="recipeIngredient">1 can beans</span>
  <ol itemprop="recipeInstructions">
    <li>Brown the beef.</li>
    <li>Add beans and simmer.</li>
  </ol>
</div>
</body></html>`)

	rec, err := NewImporter().Import(context.Background(), srv.URL)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Grandma's Chili", rec.Name)
	assert.Equal(t, []string{"Brown the beef.", "Add beans and simmer."}, rec.Instructions)

	names := match.IngredientNames(rec.LegacyIngredients)
	assert.Equal(t, []string{"1 lb ground beef", "1 can beans"}, names)
}

func TestImportNoRecipe(t *testing.T) {
	srv := servePage(t, `<html><body><p>Just a blog post about knives.</p></body></html>`)

	_, err := NewImporter().Import(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestImportBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	_, err := NewImporter().Import(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestDurationMinutes(t *testing.T) {
	assert.Equal(t, 90, durationMinutes("PT1H30M"))
	assert.Equal(t, 45, durationMinutes("PT45M"))
	assert.Equal(t, 120, durationMinutes("PT2H"))
	assert.Zero(t, durationMinutes("about an hour"))
	assert.Zero(t, durationMinutes(""))
}
