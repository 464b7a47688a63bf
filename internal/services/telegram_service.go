package services

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/likhith1072/Buyer-Lead-Intake/internal/models"
)

// TelegramService pushes lead activity into a team chat. Optional: Run()
// skips construction when no token is configured, and every callsite
// tolerates a nil receiver.
type TelegramService struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramService(botToken string, chatID int64) (*TelegramService, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init failed: %w", err)
	}
	return &TelegramService{bot: bot, chatID: chatID}, nil
}

func (t *TelegramService) send(text string) {
	if t == nil || t.bot == nil || t.chatID == 0 {
		return
	}
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := t.bot.Send(msg); err != nil {
		log.Printf("[tg][send][err] %v", err)
	}
}

// NotifyLeadCreated is best-effort: failures are logged, never surfaced.
func (t *TelegramService) NotifyLeadCreated(b *models.Buyer) {
	t.send(fmt.Sprintf("<b>New buyer lead</b>\n%s: %s, %s (%s)\nphone: %s",
		b.FullName, b.PropertyType, b.City, b.Purpose, b.Phone))
}

func (t *TelegramService) NotifyImportFinished(inserted, failed int) {
	t.send(fmt.Sprintf("<b>CSV import finished</b>\ninserted: %d, rows with errors: %d", inserted, failed))
}
