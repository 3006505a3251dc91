package notify

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	discordTimeout = 5 * time.Second

	colorCancellation = 0xE67E22
	colorConfirmation = 0x3498DB

	discordBannerURL = "https://img.freepik.com/premium-photo/badminton-sports-background-vector-international-sports-day-illustration-graphic-design-decoration-gift-certificates-banners-flyers_880763-31028.jpg"
	discordFooter    = "Expires in 5 minutes"
)

type discordPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title     string           `json:"title"`
	Color     int              `json:"color"`
	Fields    []discordField   `json:"fields"`
	Image     discordImageSpec `json:"image"`
	Footer    discordFooterBox `json:"footer"`
	Timestamp string           `json:"timestamp"`
}

type discordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordImageSpec struct {
	URL string `json:"url"`
}

type discordFooterBox struct {
	Text string `json:"text"`
}

// DiscordChannel posts one-time codes to a webhook as a rich embed.
type DiscordChannel struct {
	WebhookURL string
	HTTP       *http.Client

	// Now stamps the embed timestamp, replaceable in tests.
	Now func() time.Time
}

func NewDiscordChannel(webhookURL string) *DiscordChannel {
	return &DiscordChannel{
		WebhookURL: webhookURL,
		HTTP:       &http.Client{Timeout: discordTimeout},
		Now:        time.Now,
	}
}

func (c *DiscordChannel) Name() string { return "discord" }

func (c *DiscordChannel) SendOTP(m OTPMessage) error {
	if c.WebhookURL == "" {
		return errors.New("webhook url not configured")
	}

	body, err := json.Marshal(discordPayload{Embeds: []discordEmbed{c.embed(m)}})
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	resp, err := c.HTTP.Post(c.WebhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *DiscordChannel) embed(m OTPMessage) discordEmbed {
	codeBlock := fmt.Sprintf("**```\n%s\n```**", m.Code)

	var e discordEmbed
	switch m.Kind {
	case KindCancellation:
		e = discordEmbed{
			Title: fmt.Sprintf("🔐 Cancellation Code Requested for Booking **#%d**", m.BookingID),
			Color: colorCancellation,
			Fields: []discordField{
				{Name: "Booked By", Value: m.PlayerName, Inline: true},
				{Name: "VERIFICATION CODE", Value: codeBlock, Inline: false},
			},
		}
	default:
		e = discordEmbed{
			Title: fmt.Sprintf("✅ Confirmation Code Requested for Booking **#%d**", m.BookingID),
			Color: colorConfirmation,
			Fields: []discordField{
				{Name: "Booked By", Value: m.PlayerName, Inline: true},
				{Name: "DATE", Value: m.BookingTime.Format("02 Jan 2006"), Inline: true},
				{Name: "TIME", Value: m.BookingTime.Format("15:04"), Inline: true},
				{Name: "COURT", Value: m.CourtAlias, Inline: false},
				{Name: "VERIFICATION CODE", Value: codeBlock, Inline: false},
			},
		}
	}

	e.Image = discordImageSpec{URL: discordBannerURL}
	e.Footer = discordFooterBox{Text: discordFooter}
	e.Timestamp = c.Now().UTC().Format(time.RFC3339)
	return e
}
