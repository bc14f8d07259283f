package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mealmash/internal/ingredient"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the built-in ingredient catalog",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		n, err := a.ingredients.Seed(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Seeded %d catalog ingredients.\n", n)
		return nil
	},
}

var ingredientsCmd = &cobra.Command{
	Use:   "ingredients",
	Short: "Browse and maintain the ingredient catalog",
}

var (
	flagIngredientCategory string
	flagIngredientAliases  []string
)

var ingredientsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the catalog by name or alias",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		found, err := a.ingredients.Search(cmd.Context(), args[0], 20)
		if err != nil {
			return err
		}
		if len(found) == 0 {
			fmt.Println("No matching ingredients.")
			return nil
		}
		for _, ing := range found {
			line := fmt.Sprintf("%s  %s [%s]", ing.ID, ing.Name, ing.Category)
			if len(ing.Aliases) > 0 {
				line += "  (" + strings.Join(ing.Aliases, ", ") + ")"
			}
			fmt.Println(line)
		}
		return nil
	},
}

var ingredientsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Submit a new catalog ingredient",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		ing, err := a.ingredients.Create(cmd.Context(), ingredient.CreateParams{
			Name:      args[0],
			Category:  ingredient.Category(flagIngredientCategory),
			Aliases:   flagIngredientAliases,
			CreatedBy: flagUser,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Added %s (%s).\n", ing.Name, ing.ID)
		return nil
	},
}

var ingredientsDisableCmd = &cobra.Command{
	Use:   "disable <id>",
	Short: "Disable a catalog ingredient so it drops out of search",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.ingredients.Disable(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Disabled.")
		return nil
	},
}

func init() {
	categories := make([]string, 0, len(ingredient.Categories()))
	for _, c := range ingredient.Categories() {
		categories = append(categories, string(c))
	}
	ingredientsAddCmd.Flags().StringVar(&flagIngredientCategory, "category", string(ingredient.CategoryOther),
		"one of: "+strings.Join(categories, ", "))
	ingredientsAddCmd.Flags().StringSliceVar(&flagIngredientAliases, "alias", nil, "alternative names (repeatable)")

	ingredientsCmd.AddCommand(ingredientsSearchCmd)
	ingredientsCmd.AddCommand(ingredientsAddCmd)
	ingredientsCmd.AddCommand(ingredientsDisableCmd)
}
