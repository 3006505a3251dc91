package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mailersend/mailersend-go"

	"courtbook/internal/utils"
)

const emailTimeout = 5 * time.Second

// EmailSender mails the booking confirmation after a form submission went
// through. It is not an OTP channel: codes never travel by email.
type EmailSender struct {
	FromEmail string
	FromName  string
	DefaultTo string

	client *mailersend.Mailersend
}

func NewEmailSender(apiKey, fromEmail, fromName, defaultTo string) *EmailSender {
	return &EmailSender{
		FromEmail: fromEmail,
		FromName:  fromName,
		DefaultTo: defaultTo,
		client:    mailersend.NewMailersend(apiKey),
	}
}

// SendBookingConfirmation emails the submitted booking's details. An empty
// recipient falls back to the configured default address.
func (s *EmailSender) SendBookingConfirmation(players [3]string, court, recipient string) error {
	to := pickRecipient(recipient, s.DefaultTo)
	if to == "" {
		return errors.New("no recipient address configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), emailTimeout)
	defer cancel()

	message := s.client.Email.NewMessage()
	message.SetFrom(mailersend.From{Name: s.FromName, Email: s.FromEmail})
	message.SetRecipients([]mailersend.Recipient{{Email: to}})
	message.SetSubject(fmt.Sprintf("Badminton Court Booking Confirmed - %s", court))
	message.SetHTML(renderConfirmationHTML(players, court))

	res, err := s.client.Email.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("send confirmation email: %w", err)
	}

	utils.LogEventf("notify", "email", "confirmation sent to %s, message id %s",
		to, res.Header.Get("X-Message-Id"))
	return nil
}

func pickRecipient(recipient, fallback string) string {
	if recipient != "" {
		return recipient
	}
	return fallback
}

func renderConfirmationHTML(players [3]string, court string) string {
	return fmt.Sprintf(`<html>
  <body style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
    <h1 style="color: #333;">Booking Confirmed</h1>
    <div style="background: #f5f5f5; padding: 20px; border-radius: 8px; margin: 20px 0;">
      <h2 style="margin-top: 0; color: #555;">Booking Details</h2>
      <p><strong>Court:</strong> %s</p>
      <h3 style="margin-top: 20px; color: #555;">Players</h3>
      <ul>
        <li>%s</li>
        <li>%s</li>
        <li>%s</li>
      </ul>
    </div>
    <p style="color: #666; font-size: 12px; margin-top: 30px;">
      This is an automated confirmation email. Please do not reply.
    </p>
  </body>
</html>`, court, players[0], players[1], players[2])
}
