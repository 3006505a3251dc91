// Package notify delivers one-time codes over Discord and Telegram and
// sends booking confirmation emails. Code delivery is fire and forget:
// a send either lands or it does not, there are no retries.
package notify

import (
	"fmt"
	"time"

	"courtbook/internal/domain"
	"courtbook/internal/utils"
)

// OTPKind selects the message template for a code delivery.
type OTPKind string

const (
	KindConfirmation OTPKind = "confirmation"
	KindCancellation OTPKind = "cancellation"
)

// OTPMessage carries everything a channel needs to render a code delivery.
// CourtAlias and BookingTime are only set for confirmation codes.
type OTPMessage struct {
	BookingID   int64
	PlayerName  string
	Code        string
	Kind        OTPKind
	CourtAlias  string
	BookingTime time.Time
}

// Channel is one delivery transport for one-time codes.
type Channel interface {
	Name() string
	SendOTP(m OTPMessage) error
}

// Dispatcher fans a code out to every configured channel. Delivery counts
// as successful when at least one channel accepts it.
type Dispatcher struct {
	Channels []Channel
}

func NewDispatcher(channels ...Channel) *Dispatcher {
	return &Dispatcher{Channels: channels}
}

// SendOTP pushes the message to all channels and reports per-channel
// failures without aborting. It returns a domain.InternalError only when
// no channel delivered, including when none is configured.
func (d *Dispatcher) SendOTP(requestID string, m OTPMessage) error {
	delivered := 0
	for _, ch := range d.Channels {
		if err := ch.SendOTP(m); err != nil {
			utils.LogEvent(requestID, "notify", "send_otp",
				fmt.Sprintf("%s delivery failed for booking %d: %v", ch.Name(), m.BookingID, err))
			continue
		}
		utils.LogEvent(requestID, "notify", "send_otp",
			fmt.Sprintf("%s code for booking %d sent via %s", m.Kind, m.BookingID, ch.Name()))
		delivered++
	}
	if delivered == 0 {
		return domain.InternalError{Msg: "failed to deliver the code on any notification channel"}
	}
	return nil
}
