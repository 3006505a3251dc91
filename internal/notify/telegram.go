package notify

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramChannel pushes one-time codes to a chat through a bot.
type TelegramChannel struct {
	ChatID int64

	send func(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// NewTelegramChannel authenticates the bot token against the Telegram API,
// so construction fails fast on a bad token.
func NewTelegramChannel(token string, chatID int64) (*TelegramChannel, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	return &TelegramChannel{ChatID: chatID, send: bot.Send}, nil
}

func (c *TelegramChannel) Name() string { return "telegram" }

func (c *TelegramChannel) SendOTP(m OTPMessage) error {
	msg := tgbotapi.NewMessage(c.ChatID, renderTelegramOTP(m))
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := c.send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

func renderTelegramOTP(m OTPMessage) string {
	var b strings.Builder
	switch m.Kind {
	case KindCancellation:
		b.WriteString("🔐 *Cancellation Code Requested*\n\n")
		fmt.Fprintf(&b, "Booking ID: *#%d*\n", m.BookingID)
		fmt.Fprintf(&b, "Booked By: %s\n", m.PlayerName)
		fmt.Fprintf(&b, "Code: `%s`\n", m.Code)
	default:
		b.WriteString("✅ *Confirmation Code Requested*\n\n")
		fmt.Fprintf(&b, "Booking ID: *#%d*\n", m.BookingID)
		fmt.Fprintf(&b, "Booked By: %s\n", m.PlayerName)
		fmt.Fprintf(&b, "Date: %s\n", m.BookingTime.Format("02 Jan 2006"))
		fmt.Fprintf(&b, "Time: %s\n", m.BookingTime.Format("15:04"))
		fmt.Fprintf(&b, "Court: %s\n", m.CourtAlias)
		fmt.Fprintf(&b, "Code: `%s`\n", m.Code)
	}
	b.WriteString("\n_Expires in 5 minutes_")
	return b.String()
}
