package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"mealplex/internal/app"
	"mealplex/internal/config"
	"mealplex/internal/dish"
	"mealplex/internal/metrics"
	"mealplex/internal/reminders"
	"mealplex/internal/shopping"
)

// Bot wraps the Telegram API and the assembled application.
type Bot struct {
	api *tgbotapi.BotAPI
	app *app.App
	cfg *config.Config
}

// NewBot initializes the Telegram Bot for long polling.
func NewBot(cfg *config.Config, a *app.App) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	return &Bot{api: bot, app: a, cfg: cfg}, nil
}

// Run polls for updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			if update.Message == nil {
				continue
			}

			if b.cfg.TelegramAllowUserID != 0 && update.Message.From.ID != b.cfg.TelegramAllowUserID {
				log.Printf("⚠️ Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
				continue
			}

			go b.processMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) processMessage(ctx context.Context, msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)

	switch {
	case text == "/start" || text == "/help":
		b.reply(msg.Chat.ID, helpText)
	case text == "/plan":
		b.handlePlan(msg.Chat.ID)
	case text == "/shopping":
		b.handleShopping(msg.Chat.ID)
	case text == "/generate":
		b.handleGenerate(msg.Chat.ID)
	case text == "/reminders":
		b.handleReminders(msg.Chat.ID)
	case text == "/metrics":
		b.handleMetrics(msg.Chat.ID)
	case strings.HasPrefix(text, "/remind"):
		b.handleRemind(msg.Chat.ID, strings.TrimSpace(strings.TrimPrefix(text, "/remind")))
	case strings.HasPrefix(text, "/clip"):
		b.handleClip(ctx, msg.Chat.ID, strings.TrimSpace(strings.TrimPrefix(text, "/clip")))
	case strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://"):
		b.handleClip(ctx, msg.Chat.ID, text)
	default:
		b.handleChat(ctx, msg.Chat.ID, text)
	}
}

const helpText = `🍽 *MealPlex*

/plan - this week's meal plan
/shopping - the shopping list
/generate - rebuild the list from the plan
/remind <text> [@ YYYY-MM-DD HH:MM] - add a reminder
/reminders - list reminders
/clip <url> - import a recipe from a link

Anything else goes to the assistant.`

func (b *Bot) handlePlan(chatID int64) {
	plan := b.app.Planner.Plan()
	start := startOfWeek(time.Now())

	var sb strings.Builder
	sb.WriteString("📅 *Weekly Meal Plan*\n\n")
	planned := 0
	for i := 0; i < 7; i++ {
		date := start.AddDate(0, 0, i)
		day, ok := plan[date.Format("2006-01-02")]
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("*%s*\n", date.Format("Monday, Jan 2")))
		for _, slot := range dish.Slots {
			for _, id := range day[slot] {
				name, ok := b.app.DishName(id)
				if !ok {
					continue
				}
				sb.WriteString(fmt.Sprintf("• %s: %s\n", slot, name))
				planned++
			}
		}
		sb.WriteString("\n")
	}
	if planned == 0 {
		b.reply(chatID, "📅 Nothing planned this week yet.")
		return
	}
	b.reply(chatID, sb.String())
}

func (b *Bot) handleShopping(chatID int64) {
	grouped := b.app.Shopping.ItemsByCategory()

	var sb strings.Builder
	sb.WriteString("🛒 *Shopping List*\n\n")
	total := 0
	for _, cat := range shopping.Categories {
		items := grouped[cat]
		if len(items) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("*%s*\n", cat))
		for _, item := range items {
			mark := "•"
			if item.Checked {
				mark = "✅"
			}
			sb.WriteString(fmt.Sprintf("%s %s\n", mark, item.Name))
			total++
		}
		sb.WriteString("\n")
	}
	if total == 0 {
		b.reply(chatID, "🛒 The shopping list is empty.")
		return
	}
	b.reply(chatID, sb.String())
}

func (b *Bot) handleGenerate(chatID int64) {
	count := b.app.Shopping.GenerateFromPlan(b.app.Planner.Plan(), b.app.Planner.CustomDishes(), startOfWeek(time.Now()), 7)
	if count == 0 {
		b.reply(chatID, "Nothing to generate: no planned meals with ingredients this week.")
		return
	}
	b.reply(chatID, fmt.Sprintf("✅ Generated %d items from this week's plan. Use /shopping to see them.", count))
}

func (b *Bot) handleRemind(chatID int64, args string) {
	if args == "" {
		b.reply(chatID, "Usage: /remind <text> [@ YYYY-MM-DD HH:MM]")
		return
	}

	text := args
	var due *time.Time
	if idx := strings.LastIndex(args, "@"); idx >= 0 {
		if parsed, err := time.Parse("2006-01-02 15:04", strings.TrimSpace(args[idx+1:])); err == nil {
			text = strings.TrimSpace(args[:idx])
			due = &parsed
		}
	}

	r := b.app.Reminders.Add(text, due)
	if r.Date != nil {
		b.reply(chatID, fmt.Sprintf("⏰ Reminder set for %s: %s", r.Date.Format("2006-01-02 15:04"), r.Text))
		return
	}
	b.reply(chatID, "⏰ Reminder added: "+r.Text)
}

func (b *Bot) handleReminders(chatID int64) {
	upcoming, past := reminders.Partition(b.app.Reminders.Reminders(), time.Now())
	if len(upcoming) == 0 && len(past) == 0 {
		b.reply(chatID, "⏰ No reminders.")
		return
	}

	var sb strings.Builder
	sb.WriteString("⏰ *Reminders*\n\n")
	for _, r := range upcoming {
		if r.Date != nil {
			sb.WriteString(fmt.Sprintf("• %s (%s)\n", r.Text, r.Date.Format("Jan 2 15:04")))
		} else {
			sb.WriteString(fmt.Sprintf("• %s\n", r.Text))
		}
	}
	if len(past) > 0 {
		sb.WriteString("\n_Past:_\n")
		for _, r := range past {
			sb.WriteString(fmt.Sprintf("• %s (%s)\n", r.Text, r.Date.Format("Jan 2 15:04")))
		}
	}
	b.reply(chatID, sb.String())
}

func (b *Bot) handleClip(ctx context.Context, chatID int64, url string) {
	if b.app.Clipper == nil {
		b.reply(chatID, "❌ Recipe clipping is not configured (no AI key).")
		return
	}
	if url == "" {
		b.reply(chatID, "Usage: /clip <url>")
		return
	}

	statusMsg := tgbotapi.NewMessage(chatID, "✂️ *Clipping recipe...*")
	statusMsg.ParseMode = "Markdown"
	sent, err := b.api.Send(statusMsg)
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	clipCtx, cancel := context.WithTimeout(ctx, 1*time.Minute)
	defer cancel()

	clipped, err := b.app.Clipper.ClipURL(clipCtx, url)
	var finalText string
	if err != nil {
		log.Printf("Error clipping recipe: %v", err)
		safeErr := strings.ReplaceAll(err.Error(), "`", "'")
		finalText = fmt.Sprintf("❌ *Error clipping recipe:*\n```\n%v\n```", safeErr)
	} else {
		finalText = fmt.Sprintf("✅ *Recipe Saved!*\n\n*%s* (%d ingredients) is now in your dishes.", clipped.Name, len(clipped.Ingredients))
	}
	edit := tgbotapi.NewEditMessageText(chatID, sent.MessageID, finalText)
	edit.ParseMode = "Markdown"
	b.api.Send(edit)
}

func (b *Bot) handleChat(ctx context.Context, chatID int64, text string) {
	if b.app.Assistant == nil {
		b.reply(chatID, "❌ The assistant is not configured (no AI key). Try /help for commands.")
		return
	}

	statusMsg := tgbotapi.NewMessage(chatID, "🧑‍🍳 *Thinking...*")
	statusMsg.ParseMode = "Markdown"
	sent, err := b.api.Send(statusMsg)
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	chatCtx, cancel := context.WithTimeout(ctx, 1*time.Minute)
	defer cancel()

	reply, err := b.app.Assistant.Chat(chatCtx, text, nil)
	if err != nil {
		log.Printf("Error from assistant: %v", err)
		safeErr := strings.ReplaceAll(err.Error(), "`", "'")
		reply = fmt.Sprintf("❌ *Error:*\n```\n%v\n```", safeErr)
	}

	edit := tgbotapi.NewEditMessageText(chatID, sent.MessageID, reply)
	edit.ParseMode = "Markdown"
	b.api.Send(edit)
}

func (b *Bot) handleMetrics(chatID int64) {
	health := metrics.GetSysHealth(b.cfg.DataDir)

	var sb strings.Builder
	sb.WriteString("🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Disk Data: %s\n", health.DataDiskSize))
	b.reply(chatID, sb.String())
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

// startOfWeek returns midnight of the Monday on or before t.
func startOfWeek(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}
