// Package cli implements the mealmash command tree. Every command runs
// against the local SQLite database; there is no server in the loop.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mealmash/internal/config"
	"mealmash/internal/database"
	"mealmash/internal/ingredient"
	"mealmash/internal/pantry"
	"mealmash/internal/recipe"
	"mealmash/internal/shopping"
	"mealmash/internal/suggest"
)

var (
	flagDB   string
	flagUser string
)

var rootCmd = &cobra.Command{
	Use:   "mealmash",
	Short: "Pantry-driven recipe suggestions and shopping lists",
	Long: "mealmash matches what you have on hand against a recipe catalog,\n" +
		"ranks the recipes you can (mostly) make, and keeps the shopping list\n" +
		"for everything you are missing.",
	Example: `  mealmash seed
  mealmash pantry add "2 cups" flour
  mealmash suggest --category dinner
  mealmash reconcile <recipe-id>`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagDB, "db", "", "database path (default from MEALMASH_DB_PATH)")
	pf.StringVar(&flagUser, "user", "default", "owner id to operate as")

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(ingredientsCmd)
	rootCmd.AddCommand(pantryCmd)
	rootCmd.AddCommand(recipesCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(shoppingCmd)
	rootCmd.AddCommand(reconcileCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app bundles the opened database and the repositories commands work with.
type app struct {
	cfg          *config.Config
	db           *database.DB
	ingredients  *ingredient.Repository
	resolver     *ingredient.Resolver
	pantryRepo   *pantry.Repository
	recipeRepo   *recipe.Repository
	shoppingRepo *shopping.Repository
	reconciler   *shopping.Reconciler
	suggester    *suggest.Service
}

func openApp() (*app, error) {
	cfg, err := config.NewFromEnv()
	if err != nil {
		return nil, err
	}
	if flagDB != "" {
		cfg.DatabasePath = flagDB
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	a := &app{
		cfg:          cfg,
		db:           db,
		ingredients:  ingredient.NewRepository(db.SQL, cfg.IngredientSubmitLimit),
		pantryRepo:   pantry.NewRepository(db.SQL),
		recipeRepo:   recipe.NewRepository(db.SQL),
		shoppingRepo: shopping.NewRepository(db.SQL),
	}
	a.resolver = ingredient.NewResolver(a.ingredients, 0)
	a.reconciler = shopping.NewReconciler(a.shoppingRepo)
	a.suggester = suggest.NewService(a.pantryRepo, a.recipeRepo, cfg.SuggestOptions())
	return a, nil
}

func (a *app) importer() *recipe.Importer {
	return recipe.NewImporter()
}

func (a *app) close() {
	if err := a.db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
	}
}
