// Package suggest wires the pure matching engine to the data-access layer:
// it loads a user's pantry snapshot and the recipe catalog, picks the right
// matching strategy per recipe, and returns ranked "what can I make"
// suggestions.
package suggest

import (
	"context"
	"fmt"

	"mealmash/internal/match"
	"mealmash/internal/pantry"
	"mealmash/internal/recipe"
)

// PantryProvider supplies a user's current pantry snapshot.
type PantryProvider interface {
	ListByOwner(ctx context.Context, ownerID string) ([]pantry.Item, error)
}

// RecipeProvider supplies the recipe catalog, optionally filtered by
// category, with structured ingredient rows pre-joined where they exist.
type RecipeProvider interface {
	List(ctx context.Context, category string) ([]*recipe.Recipe, error)
}

// SuggestedRecipe is one admitted recipe with its match breakdown.
type SuggestedRecipe struct {
	Recipe  *recipe.Recipe
	Matched []match.Requirement
	Missing []match.Requirement
	Score   match.Score
}

// Service computes recipe suggestions. Dependencies are injected so the
// engine stays testable with fakes; there is deliberately no package-level
// client handle anywhere in this module.
type Service struct {
	pantries PantryProvider
	recipes  RecipeProvider
	opts     match.Options
}

// NewService creates a suggestion service with the given ranking options.
func NewService(pantries PantryProvider, recipes RecipeProvider, opts match.Options) *Service {
	return &Service{pantries: pantries, recipes: recipes, opts: opts}
}

// Suggestions returns the recipes the user can (mostly) make right now,
// ordered by descending completeness. category filters the catalog ("" or
// "all" for everything). An empty pantry yields an empty result, not an
// error; provider failures propagate.
func (s *Service) Suggestions(ctx context.Context, ownerID, category string) ([]SuggestedRecipe, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("owner id is required")
	}

	items, err := s.pantries.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pantry: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}

	recipes, err := s.recipes.List(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}

	byID := make(map[string]*recipe.Recipe, len(recipes))
	candidates := make([]match.Candidate, 0, len(recipes))
	for _, rec := range recipes {
		byID[rec.ID] = rec
		candidates = append(candidates, match.Candidate{
			Key:          rec.ID,
			Requirements: rec.Requirements(),
			Catalog:      rec.HasCatalogIngredients(),
		})
	}

	ranked := match.Suggest(candidates, pantry.Snapshot(items), s.opts)

	out := make([]SuggestedRecipe, 0, len(ranked))
	for _, sug := range ranked {
		out = append(out, SuggestedRecipe{
			Recipe:  byID[sug.Key],
			Matched: sug.Score.Matched,
			Missing: sug.Score.Missing,
			Score:   sug.Score,
		})
	}
	return out, nil
}

// Score matches a single recipe against the user's pantry without applying
// the admission threshold — the recipe-detail view wants the breakdown even
// for poor matches. ok is false for recipes with nothing to score.
func (s *Service) Score(ctx context.Context, ownerID string, rec *recipe.Recipe) (match.Score, bool, error) {
	if rec == nil {
		return match.Score{}, false, fmt.Errorf("recipe is required")
	}

	items, err := s.pantries.ListByOwner(ctx, ownerID)
	if err != nil {
		return match.Score{}, false, fmt.Errorf("failed to load pantry: %w", err)
	}

	snapshot := pantry.Snapshot(items)
	var strat match.Strategy
	if rec.HasCatalogIngredients() {
		strat = match.NewCatalogStrategy(snapshot)
	} else {
		strat = match.NewTextStrategy(snapshot)
	}

	score, ok := match.ScoreRecipe(rec.Requirements(), strat)
	return score, ok, nil
}
