package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"giftvault/repo/models"
)

// Notifier sends deposit notifications through the bot API.
// A Notifier constructed with an empty token is a no-op.
type Notifier struct {
	bot *tgbotapi.BotAPI
}

func NewNotifier(token string) (*Notifier, error) {
	if token == "" {
		return &Notifier{}, nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &Notifier{bot: bot}, nil
}

func (n *Notifier) Enabled() bool {
	return n.bot != nil
}

// NotifyDeposit tells the user a gift landed in their inventory.
func (n *Notifier) NotifyDeposit(chatID int64, gift *models.Gift) error {
	if n.bot == nil {
		return nil
	}
	text := fmt.Sprintf("🎁 Gift received: %s", gift.Name)
	if gift.Model != "" {
		text += fmt.Sprintf(" (%s)", gift.Model)
	}
	if gift.Price > 0 {
		text += fmt.Sprintf("\nEstimated price: %.2f TON", gift.Price)
	}
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
