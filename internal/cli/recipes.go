package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mealmash/internal/recipe"
)

var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "Browse and import recipes",
}

var flagRecipeCategory string

var recipesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recipes, optionally by category",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		recipes, err := a.recipeRepo.List(cmd.Context(), flagRecipeCategory)
		if err != nil {
			return err
		}
		if len(recipes) == 0 {
			fmt.Println("No recipes.")
			return nil
		}
		for _, rec := range recipes {
			fmt.Printf("%s  %s [%s] (%d ingredients)\n",
				rec.ID, rec.Name, rec.Category, len(rec.Requirements()))
		}
		return nil
	},
}

var recipesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a recipe with its ingredients and your match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		rec, err := a.recipeRepo.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("recipe %s not found", args[0])
		}

		fmt.Printf("%s [%s]\n", rec.Name, rec.Category)
		if rec.Description != "" {
			fmt.Println(rec.Description)
		}
		if rec.PrepTimeMinutes > 0 || rec.CookTimeMinutes > 0 {
			fmt.Printf("Prep %dm, cook %dm", rec.PrepTimeMinutes, rec.CookTimeMinutes)
			if rec.Servings > 0 {
				fmt.Printf(", serves %d", rec.Servings)
			}
			fmt.Println()
		}

		score, ok, err := a.suggester.Score(cmd.Context(), flagUser, rec)
		if err != nil {
			return err
		}

		fmt.Println("\nIngredients:")
		if !ok {
			for _, req := range rec.Requirements() {
				fmt.Printf("  ? %s\n", req.Name)
			}
		} else {
			for _, req := range score.Matched {
				fmt.Printf("  ✔ %s  %s\n", req.Name, req.Quantity)
			}
			for _, req := range score.Missing {
				fmt.Printf("  ✘ %s  %s\n", req.Name, req.Quantity)
			}
			fmt.Printf("You have %d of %d (%d%%).\n", score.MatchedCount, score.TotalCount, score.Percent())
		}

		if len(rec.Instructions) > 0 {
			fmt.Println("\nInstructions:")
			for i, step := range rec.Instructions {
				fmt.Printf("  %d. %s\n", i+1, step)
			}
		}
		return nil
	},
}

var recipesImportCmd = &cobra.Command{
	Use:   "import <url>",
	Short: "Import a recipe from a web page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		imported, err := a.importer().Import(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if flagRecipeCategory != "" {
			imported.Category = flagRecipeCategory
		}
		if err := a.recipeRepo.Save(cmd.Context(), imported); err != nil {
			return err
		}
		fmt.Printf("Imported %q as %s.\n", imported.Name, imported.ID)
		if len(imported.Instructions) == 0 {
			fmt.Println("Note: no instructions were found on the page.")
		}
		return nil
	},
}

func init() {
	categoryUsage := "recipe category, one of: all, " + strings.Join(recipe.Categories, ", ")
	recipesListCmd.Flags().StringVar(&flagRecipeCategory, "category", "", categoryUsage)
	recipesImportCmd.Flags().StringVar(&flagRecipeCategory, "category", "", categoryUsage)

	recipesCmd.AddCommand(recipesListCmd)
	recipesCmd.AddCommand(recipesShowCmd)
	recipesCmd.AddCommand(recipesImportCmd)
}
