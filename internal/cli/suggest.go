package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mealmash/internal/match"
	"mealmash/internal/suggest"
)

var (
	flagSuggestCategory   string
	flagSuggestMode       string
	flagSuggestMinPercent int
	flagSuggestMinCount   int
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Rank the recipes you can make from your pantry",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		// Flags override the configured thresholds for this invocation.
		opts := a.cfg.SuggestOptions()
		if cmd.Flags().Changed("mode") {
			switch flagSuggestMode {
			case string(match.ModeFraction):
				opts.Mode = match.ModeFraction
			case string(match.ModeCount):
				opts.Mode = match.ModeCount
			default:
				return fmt.Errorf("--mode must be %q or %q", match.ModeFraction, match.ModeCount)
			}
		}
		if cmd.Flags().Changed("min-percent") {
			opts.MinPercent = flagSuggestMinPercent
		}
		if cmd.Flags().Changed("min-count") {
			opts.MinCount = flagSuggestMinCount
		}
		suggester := suggest.NewService(a.pantryRepo, a.recipeRepo, opts)

		suggestions, err := suggester.Suggestions(cmd.Context(), flagUser, flagSuggestCategory)
		if err != nil {
			return err
		}
		if len(suggestions) == 0 {
			fmt.Println("No recipes clear the bar. Stock the pantry or lower the thresholds.")
			return nil
		}

		for _, s := range suggestions {
			fmt.Printf("%s  %s — %d%% (%d/%d)\n",
				s.Recipe.ID, s.Recipe.Name, s.Score.Percent(), s.Score.MatchedCount, s.Score.TotalCount)
			if len(s.Missing) > 0 {
				names := make([]string, len(s.Missing))
				for i, req := range s.Missing {
					names[i] = req.Name
				}
				fmt.Printf("    missing: %s\n", strings.Join(names, ", "))
			}
		}
		return nil
	},
}

func init() {
	f := suggestCmd.Flags()
	f.StringVar(&flagSuggestCategory, "category", "", "filter recipes by category")
	f.StringVar(&flagSuggestMode, "mode", string(match.ModeFraction), `admission policy: "fraction" or "count"`)
	f.IntVar(&flagSuggestMinPercent, "min-percent", 50, "minimum match percentage (fraction mode)")
	f.IntVar(&flagSuggestMinCount, "min-count", 3, "minimum matched ingredients (count mode)")
}
