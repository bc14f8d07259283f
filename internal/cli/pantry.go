package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mealmash/internal/pantry"
)

var pantryCmd = &cobra.Command{
	Use:   "pantry",
	Short: "Manage what you have on hand",
}

var pantryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your pantry items",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		items, err := a.pantryRepo.ListByOwner(cmd.Context(), flagUser)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println("Pantry is empty.")
			return nil
		}
		for _, it := range items {
			line := fmt.Sprintf("%s  %s", it.ID, it.Name)
			if it.Quantity != "" {
				line += "  " + it.Quantity
			}
			if it.IngredientID != "" {
				line += "  [catalog]"
			}
			fmt.Println(line)
		}
		return nil
	},
}

var flagPantryQuantity string

var pantryAddCmd = &cobra.Command{
	Use:   "add <name>...",
	Short: "Add an item to your pantry",
	Long: "Adds an item to your pantry. The name is resolved against the\n" +
		"ingredient catalog; a confident match links the item so recipe\n" +
		"matching becomes exact, otherwise it stays free-text.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		name := strings.Join(args, " ")

		resolved, err := a.resolver.Resolve(cmd.Context(), name)
		if err != nil {
			return err
		}

		item := pantry.Item{UserID: flagUser, Name: name, Quantity: flagPantryQuantity}
		if resolved != nil {
			item.IngredientID = resolved.ID
			item.Category = string(resolved.Category)
		}

		added, err := a.pantryRepo.Add(cmd.Context(), item)
		if err != nil {
			return err
		}
		if resolved != nil {
			fmt.Printf("Added %s (linked to catalog entry %s).\n", added.Name, resolved.Name)
		} else {
			fmt.Printf("Added %s.\n", added.Name)
		}
		return nil
	},
}

var pantryRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a pantry item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.pantryRepo.Delete(cmd.Context(), flagUser, args[0]); err != nil {
			return err
		}
		fmt.Println("Removed.")
		return nil
	},
}

func init() {
	pantryAddCmd.Flags().StringVar(&flagPantryQuantity, "quantity", "", `free-text quantity, e.g. "2 cups"`)

	pantryCmd.AddCommand(pantryListCmd)
	pantryCmd.AddCommand(pantryAddCmd)
	pantryCmd.AddCommand(pantryRmCmd)
}
