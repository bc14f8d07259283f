package recipe

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Repository is a database-backed repository for recipes.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Save inserts a recipe together with its structured ingredient rows.
func (r *Repository) Save(ctx context.Context, rec *Recipe) error {
	if strings.TrimSpace(rec.Name) == "" {
		return fmt.Errorf("recipe name is required")
	}
	if !ValidCategory(rec.Category) {
		return fmt.Errorf("unknown recipe category %q", rec.Category)
	}

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	instructionsJSON, err := json.Marshal(rec.Instructions)
	if err != nil {
		return fmt.Errorf("failed to marshal instructions: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var legacy any
	if len(rec.LegacyIngredients) > 0 {
		legacy = string(rec.LegacyIngredients)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO recipes (id, name, description, category, instructions,
		                      prep_time_minutes, cook_time_minutes, servings,
		                      image_url, legacy_ingredients, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, rec.Description, rec.Category, string(instructionsJSON),
		rec.PrepTimeMinutes, rec.CookTimeMinutes, rec.Servings,
		rec.ImageURL, legacy, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert recipe: %w", err)
	}

	for i, ing := range rec.Ingredients {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO recipe_ingredients (recipe_id, ingredient_id, quantity, unit, position)
			 VALUES (?, ?, ?, ?, ?)`,
			rec.ID, ing.IngredientID, ing.Quantity, ing.Unit, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert recipe ingredient: %w", err)
		}
	}

	return tx.Commit()
}

// Get retrieves a recipe by id, joined with its ingredient rows.
// Returns (nil, nil) when the recipe does not exist.
func (r *Repository) Get(ctx context.Context, id string) (*Recipe, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, category, instructions, prep_time_minutes,
		        cook_time_minutes, servings, image_url, legacy_ingredients, created_at
		 FROM recipes WHERE id = ?`, id)

	rec, err := scanRecipe(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recipe by id: %w", err)
	}

	if err := r.attachIngredients(ctx, map[string]*Recipe{rec.ID: rec}); err != nil {
		return nil, err
	}
	return rec, nil
}

// List retrieves recipes, optionally filtered by category, each pre-joined
// with its structured ingredient rows and their catalog names. Recipes with
// corrupt stored JSON are logged and skipped rather than failing the list.
func (r *Repository) List(ctx context.Context, category string) ([]*Recipe, error) {
	query := `SELECT id, name, description, category, instructions, prep_time_minutes,
	                 cook_time_minutes, servings, image_url, legacy_ingredients, created_at
	          FROM recipes`
	var args []any
	if category != "" && category != "all" {
		query += ` WHERE category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	var (
		recipes []*Recipe
		byID    = make(map[string]*Recipe)
	)
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			log.Printf("Warning: skipping unreadable recipe row: %v", err)
			continue
		}
		recipes = append(recipes, rec)
		byID[rec.ID] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recipes: %w", err)
	}

	if err := r.attachIngredients(ctx, byID); err != nil {
		return nil, err
	}
	return recipes, nil
}

// Delete removes a recipe; its ingredient rows cascade.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("recipe %s not found", id)
	}
	return nil
}

// attachIngredients loads the recipe_ingredients rows for the given recipes
// in one query, left-joined against the catalog so unresolved references
// surface as Resolved=false instead of errors.
func (r *Repository) attachIngredients(ctx context.Context, byID map[string]*Recipe) error {
	if len(byID) == 0 {
		return nil
	}

	ids := make([]any, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	placeholders := strings.Repeat("?,", len(ids)-1) + "?"

	rows, err := r.db.QueryContext(ctx,
		`SELECT ri.recipe_id, ri.ingredient_id, ri.quantity, ri.unit,
		        i.name, i.category
		 FROM recipe_ingredients ri
		 LEFT JOIN ingredients i ON i.id = ri.ingredient_id
		 WHERE ri.recipe_id IN (`+placeholders+`)
		 ORDER BY ri.recipe_id, ri.position`, ids...)
	if err != nil {
		return fmt.Errorf("failed to load recipe ingredients: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ing      Ingredient
			name     sql.NullString
			category sql.NullString
		)
		if err := rows.Scan(&ing.RecipeID, &ing.IngredientID, &ing.Quantity, &ing.Unit, &name, &category); err != nil {
			return fmt.Errorf("failed to scan recipe ingredient: %w", err)
		}
		ing.Name = name.String
		ing.Category = category.String
		ing.Resolved = name.Valid

		if rec, ok := byID[ing.RecipeID]; ok {
			rec.Ingredients = append(rec.Ingredients, ing)
		}
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row rowScanner) (*Recipe, error) {
	var (
		rec          Recipe
		instructions string
		legacy       sql.NullString
	)
	err := row.Scan(&rec.ID, &rec.Name, &rec.Description, &rec.Category,
		&instructions, &rec.PrepTimeMinutes, &rec.CookTimeMinutes,
		&rec.Servings, &rec.ImageURL, &legacy, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(instructions), &rec.Instructions); err != nil {
		// Old rows stored instructions as plain text.
		rec.Instructions = []string{instructions}
	}
	if legacy.Valid {
		rec.LegacyIngredients = json.RawMessage(legacy.String)
	}
	return &rec, nil
}
