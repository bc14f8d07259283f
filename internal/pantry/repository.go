package pantry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"mealmash/internal/quantity"
)

// Repository handles persistence of pantry items.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new pantry repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// ListByOwner returns the owner's current pantry snapshot, newest first.
func (r *Repository) ListByOwner(ctx context.Context, ownerID string) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, category, quantity, ingredient_id, created_at
		 FROM pantry_items WHERE user_id = ? ORDER BY created_at DESC, id`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pantry items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var (
			it    Item
			ingID sql.NullString
		)
		if err := rows.Scan(&it.ID, &it.UserID, &it.Name, &it.Category, &it.Quantity, &ingID, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pantry item: %w", err)
		}
		it.IngredientID = ingID.String
		items = append(items, it)
	}
	return items, rows.Err()
}

// Add inserts a new pantry row for the owner.
func (r *Repository) Add(ctx context.Context, it Item) (*Item, error) {
	if strings.TrimSpace(it.Name) == "" {
		return nil, fmt.Errorf("pantry item name is required")
	}
	if it.UserID == "" {
		return nil, fmt.Errorf("pantry item owner is required")
	}

	it.ID = uuid.NewString()
	it.Name = strings.TrimSpace(it.Name)
	it.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO pantry_items (id, user_id, name, category, quantity, ingredient_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		it.ID, it.UserID, it.Name, it.Category, it.Quantity, nullable(it.IngredientID), it.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert pantry item: %w", err)
	}
	return &it, nil
}

// UpdateQuantity replaces the quantity string of an owned row.
func (r *Repository) UpdateQuantity(ctx context.Context, ownerID, id, newQuantity string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE pantry_items SET quantity = ? WHERE id = ? AND user_id = ?`,
		newQuantity, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to update pantry quantity: %w", err)
	}
	return requireRow(res, id)
}

// Delete removes an owned row.
func (r *Repository) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM pantry_items WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete pantry item: %w", err)
	}
	return requireRow(res, id)
}

// Upsert merges a quantity delta into the owner's pantry row for a catalog
// ingredient, creating the row if absent. Used when purchased shopping-list
// items move into the pantry. The insert race against a concurrent upsert
// for the same ingredient is absorbed by the unique (user_id, ingredient_id)
// index: the losing insert retries as a merge.
func (r *Repository) Upsert(ctx context.Context, ownerID, ingredientID, name, category, qtyDelta string) error {
	if ingredientID == "" {
		_, err := r.Add(ctx, Item{UserID: ownerID, Name: name, Category: category, Quantity: qtyDelta})
		return err
	}

	for attempt := 0; attempt < 2; attempt++ {
		var (
			id       string
			existing string
		)
		err := r.db.QueryRowContext(ctx,
			`SELECT id, quantity FROM pantry_items WHERE user_id = ? AND ingredient_id = ?`,
			ownerID, ingredientID,
		).Scan(&id, &existing)

		switch {
		case err == nil:
			merged := quantity.AddStrings(existing, qtyDelta)
			_, err = r.db.ExecContext(ctx,
				`UPDATE pantry_items SET quantity = ? WHERE id = ?`, merged, id)
			if err != nil {
				return fmt.Errorf("failed to merge pantry quantity: %w", err)
			}
			return nil

		case errors.Is(err, sql.ErrNoRows):
			res, err := r.db.ExecContext(ctx,
				`INSERT INTO pantry_items (id, user_id, name, category, quantity, ingredient_id, created_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?)
				 ON CONFLICT (user_id, ingredient_id) WHERE ingredient_id IS NOT NULL DO NOTHING`,
				uuid.NewString(), ownerID, name, category, qtyDelta, ingredientID, time.Now().UTC(),
			)
			if err != nil {
				return fmt.Errorf("failed to insert pantry item: %w", err)
			}
			if n, err := res.RowsAffected(); err != nil {
				return err
			} else if n == 1 {
				return nil
			}
			// A concurrent insert won; loop and merge into its row.

		default:
			return fmt.Errorf("failed to look up pantry item: %w", err)
		}
	}
	return fmt.Errorf("failed to upsert pantry item for ingredient %s", ingredientID)
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("pantry item %s not found", id)
	}
	return nil
}
