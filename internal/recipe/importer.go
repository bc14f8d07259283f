package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Importer fetches a recipe web page and extracts a Recipe from its markup.
// Pages publishing schema.org Recipe JSON-LD are parsed structurally; for
// everything else a best-effort microdata/selector fallback applies.
// Imported recipes carry their ingredients as a legacy free-text list; the
// catalog resolver can attach ingredient ids afterwards.
type Importer struct {
	client *http.Client
}

// NewImporter creates an Importer with a sane request timeout.
func NewImporter() *Importer {
	return &Importer{client: &http.Client{Timeout: 20 * time.Second}}
}

// Import fetches url and extracts a recipe. The returned recipe is not yet
// persisted and defaults to the "dinner" category when the page gives none.
func (im *Importer) Import(ctx context.Context, url string) (*Recipe, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", "mealmash-recipe-importer/1.0")

	resp, err := im.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	if rec := extractJSONLD(doc); rec != nil {
		return rec, nil
	}
	if rec := extractMicrodata(doc); rec != nil {
		return rec, nil
	}
	return nil, fmt.Errorf("no recipe found at %s", url)
}

// jsonldRecipe mirrors the subset of schema.org/Recipe the importer reads.
// recipeInstructions and image come in several shapes across sites, hence
// the raw fields.
type jsonldRecipe struct {
	Type         json.RawMessage `json:"@type"`
	Graph        []jsonldRecipe  `json:"@graph"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Ingredients  []string        `json:"recipeIngredient"`
	Instructions json.RawMessage `json:"recipeInstructions"`
	PrepTime     string          `json:"prepTime"`
	CookTime     string          `json:"cookTime"`
	Yield        json.RawMessage `json:"recipeYield"`
	Image        json.RawMessage `json:"image"`
}

func (j *jsonldRecipe) isRecipe() bool {
	return strings.Contains(string(j.Type), "Recipe")
}

func extractJSONLD(doc *goquery.Document) *Recipe {
	var found *jsonldRecipe

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()

		var single jsonldRecipe
		if err := json.Unmarshal([]byte(text), &single); err == nil {
			if cand := pickRecipe(&single); cand != nil {
				found = cand
				return false
			}
		}

		var many []jsonldRecipe
		if err := json.Unmarshal([]byte(text), &many); err == nil {
			for i := range many {
				if cand := pickRecipe(&many[i]); cand != nil {
					found = cand
					return false
				}
			}
		}
		return true
	})

	if found == nil {
		return nil
	}

	rec := &Recipe{
		Name:            strings.TrimSpace(found.Name),
		Description:     strings.TrimSpace(found.Description),
		Category:        "dinner",
		Instructions:    instructionSteps(found.Instructions),
		PrepTimeMinutes: durationMinutes(found.PrepTime),
		CookTimeMinutes: durationMinutes(found.CookTime),
		Servings:        yieldCount(found.Yield),
		ImageURL:        imageURL(found.Image),
	}
	if rec.Name == "" || len(found.Ingredients) == 0 {
		return nil
	}

	legacy, err := json.Marshal(found.Ingredients)
	if err != nil {
		return nil
	}
	rec.LegacyIngredients = legacy
	return rec
}

func pickRecipe(j *jsonldRecipe) *jsonldRecipe {
	if j.isRecipe() {
		return j
	}
	for i := range j.Graph {
		if j.Graph[i].isRecipe() {
			return &j.Graph[i]
		}
	}
	return nil
}

// extractMicrodata is the fallback for pages without JSON-LD.
func extractMicrodata(doc *goquery.Document) *Recipe {
	var ingredients []string
	doc.Find(`[itemprop="recipeIngredient"], [itemprop="ingredients"]`).Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			ingredients = append(ingredients, t)
		}
	})
	if len(ingredients) == 0 {
		return nil
	}

	name := strings.TrimSpace(doc.Find(`[itemprop="name"]`).First().Text())
	if name == "" {
		name = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if name == "" {
		return nil
	}

	var steps []string
	doc.Find(`[itemprop="recipeInstructions"] li, [itemprop="recipeInstructions"] p`).Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			steps = append(steps, t)
		}
	})

	legacy, err := json.Marshal(ingredients)
	if err != nil {
		return nil
	}
	return &Recipe{
		Name:              name,
		Category:          "dinner",
		Instructions:      steps,
		LegacyIngredients: legacy,
	}
}

// instructionSteps flattens the recipeInstructions shapes seen in the wild:
// a plain string, an array of strings, or an array of HowToStep objects.
func instructionSteps(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		if s := strings.TrimSpace(asString); s != "" {
			return []string{s}
		}
		return nil
	}

	var asList []json.RawMessage
	if err := json.Unmarshal(raw, &asList); err != nil {
		return nil
	}

	var steps []string
	for _, el := range asList {
		var s string
		if err := json.Unmarshal(el, &s); err == nil {
			if s = strings.TrimSpace(s); s != "" {
				steps = append(steps, s)
			}
			continue
		}
		var obj struct {
			Text string `json:"text"`
			Name string `json:"name"`
		}
		if err := json.Unmarshal(el, &obj); err == nil {
			if t := strings.TrimSpace(obj.Text); t != "" {
				steps = append(steps, t)
			} else if n := strings.TrimSpace(obj.Name); n != "" {
				steps = append(steps, n)
			}
		}
	}
	return steps
}

var iso8601Duration = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:\d+S)?$`)

// durationMinutes converts an ISO-8601 duration like "PT1H30M" to minutes.
// Unparseable values yield zero.
func durationMinutes(s string) int {
	m := iso8601Duration.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return hours*60 + minutes
}

var leadingInt = regexp.MustCompile(`\d+`)

// yieldCount pulls a serving count out of recipeYield, which may be a
// number, a string like "4 servings", or an array of either.
func yieldCount(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}

	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if digits := leadingInt.FindString(s); digits != "" {
			count, _ := strconv.Atoi(digits)
			return count
		}
		return 0
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return yieldCount(list[0])
	}
	return 0
}

// imageURL pulls a usable URL out of the image field: a string, an array,
// or an ImageObject.
func imageURL(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return imageURL(list[0])
	}
	var obj struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.URL
	}
	return ""
}
