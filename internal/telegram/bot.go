package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"mealmash/internal/config"
	"mealmash/internal/pantry"
	"mealmash/internal/recipe"
	"mealmash/internal/shopping"
	"mealmash/internal/suggest"
)

// Bot is the Telegram surface over the pantry, suggestion engine, and
// shopping list. Each Telegram user maps to an owner id, so every command
// operates on that user's own data.
type Bot struct {
	api          *tgbotapi.BotAPI
	cfg          *config.Config
	pantryRepo   *pantry.Repository
	recipeRepo   *recipe.Repository
	shoppingRepo *shopping.Repository
	suggester    *suggest.Service
	reconciler   *shopping.Reconciler
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(
	cfg *config.Config,
	pantryRepo *pantry.Repository,
	recipeRepo *recipe.Repository,
	shoppingRepo *shopping.Repository,
	suggester *suggest.Service,
	reconciler *shopping.Reconciler,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	wh, err := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	if err != nil {
		return nil, fmt.Errorf("failed to build webhook config: %w", err)
	}
	resp, err := api.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api:          api,
		cfg:          cfg,
		pantryRepo:   pantryRepo,
		recipeRepo:   recipeRepo,
		shoppingRepo: shoppingRepo,
		suggester:    suggester,
		reconciler:   reconciler,
	}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.Message == nil {
		return
	}

	isAllowed := false
	for _, id := range b.cfg.TelegramAllowedUserIDs {
		if update.Message.From.ID == id {
			isAllowed = true
			break
		}
	}
	if !isAllowed {
		log.Printf("Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	ctx := context.Background()
	ownerID := fmt.Sprintf("%d", msg.From.ID)

	command, arg := splitCommand(msg.Text)

	var (
		reply string
		err   error
	)
	switch command {
	case "/start", "/help":
		reply = helpText
	case "/pantry":
		reply, err = b.pantryReply(ctx, ownerID)
	case "/suggest":
		reply, err = b.suggestReply(ctx, ownerID, arg)
	case "/shopping":
		reply, err = b.shoppingReply(ctx, ownerID)
	case "/buy":
		reply, err = b.buyReply(ctx, ownerID, arg)
	default:
		reply = "Unknown command.\n\n" + helpText
	}

	if err != nil {
		log.Printf("Error handling %s for user %s: %v", command, ownerID, err)
		reply = fmt.Sprintf("❌ *Something went wrong:*\n```\n%v\n```", strings.ReplaceAll(err.Error(), "`", "'"))
	}

	out := tgbotapi.NewMessage(msg.Chat.ID, reply)
	out.ParseMode = "Markdown"
	if _, err := b.api.Send(out); err != nil {
		log.Printf("Failed to send reply: %v", err)
	}
}

const helpText = `🍳 *MealMash*

/pantry — what you have on hand
/suggest [category] — recipes you can (mostly) make
/shopping — your open shopping list
/buy <recipe-id> — add a recipe's missing ingredients to the list`

func (b *Bot) pantryReply(ctx context.Context, ownerID string) (string, error) {
	items, err := b.pantryRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return "", err
	}
	return formatPantry(items), nil
}

func (b *Bot) suggestReply(ctx context.Context, ownerID, category string) (string, error) {
	suggestions, err := b.suggester.Suggestions(ctx, ownerID, category)
	if err != nil {
		return "", err
	}
	return formatSuggestions(suggestions), nil
}

func (b *Bot) shoppingReply(ctx context.Context, ownerID string) (string, error) {
	items, err := b.shoppingRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return "", err
	}
	return formatShoppingList(items), nil
}

func (b *Bot) buyReply(ctx context.Context, ownerID, recipeID string) (string, error) {
	if recipeID == "" {
		return "Usage: /buy <recipe-id>", nil
	}

	rec, err := b.recipeRepo.Get(ctx, recipeID)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return fmt.Sprintf("Recipe `%s` not found.", recipeID), nil
	}

	score, ok, err := b.suggester.Score(ctx, ownerID, rec)
	if err != nil {
		return "", err
	}
	if !ok {
		return fmt.Sprintf("*%s* has no scorable ingredients.", rec.Name), nil
	}
	if len(score.Missing) == 0 {
		return fmt.Sprintf("✅ You already have everything for *%s*.", rec.Name), nil
	}

	results := b.reconciler.Reconcile(ctx, ownerID, score.Missing)

	var sb strings.Builder
	fmt.Fprintf(&sb, "🛒 *%s* — %d missing ingredient(s) added:\n\n", rec.Name, len(results))
	for _, res := range results {
		switch {
		case res.Err != nil:
			fmt.Fprintf(&sb, "• %s — ⚠️ failed: %v\n", res.Name, res.Err)
		case res.Merged:
			fmt.Fprintf(&sb, "• %s — merged into existing item\n", res.Name)
		default:
			fmt.Fprintf(&sb, "• %s\n", res.Name)
		}
	}
	return sb.String(), nil
}

func formatPantry(items []pantry.Item) string {
	if len(items) == 0 {
		return "Your pantry is empty. Add items with the CLI or move purchases over from the shopping list."
	}

	var sb strings.Builder
	sb.WriteString("🥫 *Your Pantry*\n\n")
	for _, it := range items {
		sb.WriteString("• " + it.Name)
		if it.Quantity != "" {
			fmt.Fprintf(&sb, " — %s", it.Quantity)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatSuggestions(suggestions []suggest.SuggestedRecipe) string {
	if len(suggestions) == 0 {
		return "No recipes clear the bar right now. Stock up or lower the thresholds."
	}

	var sb strings.Builder
	sb.WriteString("🍽 *You could make:*\n\n")
	for _, s := range suggestions {
		fmt.Fprintf(&sb, "*%s* — %d%% (%d/%d)\n", s.Recipe.Name, s.Score.Percent(), s.Score.MatchedCount, s.Score.TotalCount)
		if len(s.Missing) > 0 {
			names := make([]string, len(s.Missing))
			for i, req := range s.Missing {
				names[i] = req.Name
			}
			fmt.Fprintf(&sb, "_missing: %s_\n", strings.Join(names, ", "))
		}
		fmt.Fprintf(&sb, "`/buy %s`\n\n", s.Recipe.ID)
	}
	return sb.String()
}

func formatShoppingList(items []shopping.Item) string {
	var open, done []shopping.Item
	for _, it := range items {
		if it.IsChecked {
			done = append(done, it)
		} else {
			open = append(open, it)
		}
	}

	if len(open) == 0 && len(done) == 0 {
		return "Your shopping list is empty."
	}

	var sb strings.Builder
	sb.WriteString("🛒 *Shopping List*\n\n")
	for _, it := range open {
		fmt.Fprintf(&sb, "• %s — %s\n", it.ItemName, it.Quantity)
	}
	for _, it := range done {
		fmt.Fprintf(&sb, "✔ ~%s~\n", it.ItemName)
	}
	return sb.String()
}

// splitCommand separates "/suggest dinner" into the command and its
// argument. The @botname suffix Telegram appends in groups is stripped.
func splitCommand(text string) (string, string) {
	text = strings.TrimSpace(text)
	command, arg, _ := strings.Cut(text, " ")
	if at := strings.Index(command, "@"); at > 0 {
		command = command[:at]
	}
	return command, strings.TrimSpace(arg)
}
