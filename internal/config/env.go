package config

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type Env struct {
	AppAddr string
	GinMode string

	Timezone          string
	DefaultSubmitTime string

	// bcrypt hash of the master cancel password. Populated from
	// CANCEL_PASSWORD_HASH, or derived at startup from CANCEL_PASSWORD.
	// Empty means master-password cancellation is disabled.
	CancelPasswordHash string

	FormSubmitURL string
	FormViewURL   string

	DiscordWebhookURL string
	TelegramBotToken  string
	TelegramChatID    int64

	MailerSendAPIKey string
	EmailFrom        string
	EmailFromName    string
	ConfirmationTo   string
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	tz := strings.TrimSpace(os.Getenv("BOOKING_TZ"))
	if tz == "" {
		tz = "Asia/Bangkok"
	}

	submitTime := strings.TrimSpace(os.Getenv("DEFAULT_SUBMIT_TIME"))
	if submitTime == "" {
		submitTime = "13:00"
	}

	chatID, _ := strconv.ParseInt(strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")), 10, 64)

	return Env{
		AppAddr: appAddr,
		GinMode: strings.TrimSpace(os.Getenv("GIN_MODE")),

		Timezone:          tz,
		DefaultSubmitTime: submitTime,

		CancelPasswordHash: loadCancelPasswordHash(),

		FormSubmitURL: strings.TrimSpace(os.Getenv("GOOGLE_FORM_SUBMIT_URL")),
		FormViewURL:   strings.TrimSpace(os.Getenv("GOOGLE_FORM_VIEW_URL")),

		DiscordWebhookURL: strings.TrimSpace(os.Getenv("DISCORD_WEBHOOK_URL")),
		TelegramBotToken:  strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		TelegramChatID:    chatID,

		MailerSendAPIKey: strings.TrimSpace(os.Getenv("MAILERSEND_API_KEY")),
		EmailFrom:        strings.TrimSpace(os.Getenv("EMAIL_FROM")),
		EmailFromName:    strings.TrimSpace(os.Getenv("EMAIL_FROM_NAME")),
		ConfirmationTo:   strings.TrimSpace(os.Getenv("CONFIRMATION_EMAIL")),
	}
}

func loadCancelPasswordHash() string {
	if h := strings.TrimSpace(os.Getenv("CANCEL_PASSWORD_HASH")); h != "" {
		return h
	}
	plain := strings.TrimSpace(os.Getenv("CANCEL_PASSWORD"))
	if plain == "" {
		return ""
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return ""
	}
	return string(hash)
}
