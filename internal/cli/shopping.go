package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mealmash/internal/shopping"
)

var shoppingCmd = &cobra.Command{
	Use:   "shopping",
	Short: "Manage your shopping list",
}

var shoppingListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show open and purchased items",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		items, err := a.shoppingRepo.ListByOwner(cmd.Context(), flagUser)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println("Shopping list is empty.")
			return nil
		}
		for _, it := range items {
			mark := "[ ]"
			if it.IsChecked {
				mark = "[x]"
			}
			fmt.Printf("%s %s  %s  %s\n", mark, it.ID, it.ItemName, it.Quantity)
		}
		return nil
	},
}

var flagShoppingQuantity string

var shoppingAddCmd = &cobra.Command{
	Use:   "add <name>...",
	Short: "Add an item to the list",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		name := strings.Join(args, " ")
		item, err := a.shoppingRepo.Insert(cmd.Context(), shopping.Item{
			UserID:   flagUser,
			ItemName: name,
			Quantity: flagShoppingQuantity,
		})
		if errors.Is(err, shopping.ErrDuplicateOpenItem) {
			return fmt.Errorf("%q is already on the list; check it off or merge via reconcile", name)
		}
		if err != nil {
			return err
		}
		fmt.Printf("Added %s (%s).\n", item.ItemName, item.Quantity)
		return nil
	},
}

var shoppingCheckCmd = &cobra.Command{
	Use:   "check <id>",
	Short: "Mark an item as purchased",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.shoppingRepo.SetChecked(cmd.Context(), flagUser, args[0], true); err != nil {
			return err
		}
		fmt.Println("Checked.")
		return nil
	},
}

var shoppingClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all purchased items from the list",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		n, err := a.shoppingRepo.ClearChecked(cmd.Context(), flagUser)
		if err != nil {
			return err
		}
		fmt.Printf("Cleared %d purchased item(s).\n", n)
		return nil
	},
}

var shoppingToPantryCmd = &cobra.Command{
	Use:   "to-pantry",
	Short: "Move purchased items into the pantry",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		results := a.shoppingRepo.MoveCheckedToPantry(cmd.Context(), flagUser, a.pantryRepo)
		if len(results) == 0 {
			fmt.Println("Nothing purchased to move.")
			return nil
		}
		var failed int
		for _, res := range results {
			if res.Err != nil {
				failed++
				fmt.Printf("✘ %s: %v\n", res.ItemName, res.Err)
				continue
			}
			fmt.Printf("✔ %s\n", res.ItemName)
		}
		if failed > 0 {
			return fmt.Errorf("%d item(s) failed to move", failed)
		}
		return nil
	},
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile <recipe-id>",
	Short: "Add a recipe's missing ingredients to the shopping list",
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

		score, ok, err := a.suggester.Score(cmd.Context(), flagUser, rec)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("recipe %q has no scorable ingredients", rec.Name)
		}
		if len(score.Missing) == 0 {
			fmt.Printf("You already have everything for %q.\n", rec.Name)
			return nil
		}

		results := a.reconciler.Reconcile(cmd.Context(), flagUser, score.Missing)
		var failed int
		for _, res := range results {
			switch {
			case res.Err != nil:
				failed++
				fmt.Printf("✘ %s: %v\n", res.Name, res.Err)
			case res.Merged:
				fmt.Printf("✔ %s (merged into existing item)\n", res.Name)
			default:
				fmt.Printf("✔ %s\n", res.Name)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d item(s) failed; run reconcile again to retry", failed)
		}
		return nil
	},
}

func init() {
	shoppingAddCmd.Flags().StringVar(&flagShoppingQuantity, "quantity", "", `free-text quantity (defaults to "1")`)

	shoppingCmd.AddCommand(shoppingListCmd)
	shoppingCmd.AddCommand(shoppingAddCmd)
	shoppingCmd.AddCommand(shoppingCheckCmd)
	shoppingCmd.AddCommand(shoppingClearCmd)
	shoppingCmd.AddCommand(shoppingToPantryCmd)
}
