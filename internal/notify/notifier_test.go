package notify

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"courtbook/internal/domain"
)

type fakeChannel struct {
	name string
	err  error
	got  []OTPMessage
}

func (f *fakeChannel) Name() string { return f.name }

func (f *fakeChannel) SendOTP(m OTPMessage) error {
	f.got = append(f.got, m)
	return f.err
}

func sampleMessage(kind OTPKind) OTPMessage {
	return OTPMessage{
		BookingID:   42,
		PlayerName:  "Somchai",
		Code:        "123456",
		Kind:        kind,
		CourtAlias:  "Court 2",
		BookingTime: time.Date(2026, 8, 21, 13, 0, 0, 0, time.UTC),
	}
}

func TestDispatcherOneSuccessIsEnough(t *testing.T) {
	broken := &fakeChannel{name: "broken", err: errors.New("boom")}
	working := &fakeChannel{name: "working"}
	d := NewDispatcher(broken, working)

	if err := d.SendOTP("req-1", sampleMessage(KindConfirmation)); err != nil {
		t.Fatalf("expected success with one working channel, got %v", err)
	}
	if len(broken.got) != 1 || len(working.got) != 1 {
		t.Fatalf("expected both channels attempted, got %d/%d", len(broken.got), len(working.got))
	}
}

func TestDispatcherAllChannelsFailing(t *testing.T) {
	d := NewDispatcher(
		&fakeChannel{name: "a", err: errors.New("down")},
		&fakeChannel{name: "b", err: errors.New("down")},
	)

	err := d.SendOTP("req-2", sampleMessage(KindCancellation))
	if !domain.IsInternal(err) {
		t.Fatalf("expected internal error when every channel fails, got %v", err)
	}
}

func TestDispatcherWithoutChannels(t *testing.T) {
	d := NewDispatcher()
	if err := d.SendOTP("req-3", sampleMessage(KindConfirmation)); err == nil {
		t.Fatalf("expected error with no channels configured")
	}
}

func TestDiscordConfirmationEmbed(t *testing.T) {
	var got discordPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewDiscordChannel(srv.URL)
	c.Now = func() time.Time { return time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC) }

	if err := c.SendOTP(sampleMessage(KindConfirmation)); err != nil {
		t.Fatalf("send error: %v", err)
	}
	if len(got.Embeds) != 1 {
		t.Fatalf("expected 1 embed, got %d", len(got.Embeds))
	}

	e := got.Embeds[0]
	if e.Title != "✅ Confirmation Code Requested for Booking **#42**" {
		t.Fatalf("unexpected title %q", e.Title)
	}
	if e.Color != colorConfirmation {
		t.Fatalf("unexpected color %#x", e.Color)
	}
	if len(e.Fields) != 5 {
		t.Fatalf("expected 5 fields, got %d", len(e.Fields))
	}
	if e.Fields[1].Name != "DATE" || e.Fields[1].Value != "21 Aug 2026" {
		t.Fatalf("unexpected date field %+v", e.Fields[1])
	}
	if e.Fields[2].Name != "TIME" || e.Fields[2].Value != "13:00" {
		t.Fatalf("unexpected time field %+v", e.Fields[2])
	}
	if !strings.Contains(e.Fields[4].Value, "123456") {
		t.Fatalf("code missing from %q", e.Fields[4].Value)
	}
	if e.Footer.Text != discordFooter {
		t.Fatalf("unexpected footer %q", e.Footer.Text)
	}
	if e.Timestamp != "2026-08-20T09:30:00Z" {
		t.Fatalf("unexpected timestamp %q", e.Timestamp)
	}
}

func TestDiscordCancellationEmbed(t *testing.T) {
	var got discordPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewDiscordChannel(srv.URL)
	if err := c.SendOTP(sampleMessage(KindCancellation)); err != nil {
		t.Fatalf("send error: %v", err)
	}

	e := got.Embeds[0]
	if e.Title != "🔐 Cancellation Code Requested for Booking **#42**" {
		t.Fatalf("unexpected title %q", e.Title)
	}
	if e.Color != colorCancellation {
		t.Fatalf("unexpected color %#x", e.Color)
	}
	if len(e.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(e.Fields))
	}
	if e.Fields[0].Name != "Booked By" || e.Fields[0].Value != "Somchai" {
		t.Fatalf("unexpected first field %+v", e.Fields[0])
	}
}

func TestDiscordRejectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewDiscordChannel(srv.URL)
	if err := c.SendOTP(sampleMessage(KindCancellation)); err == nil {
		t.Fatalf("expected error on 500 response")
	}
}

func TestDiscordUnconfigured(t *testing.T) {
	c := NewDiscordChannel("")
	if err := c.SendOTP(sampleMessage(KindConfirmation)); err == nil {
		t.Fatalf("expected error without a webhook url")
	}
}

func TestTelegramMessageRendering(t *testing.T) {
	var sent tgbotapi.Chattable
	c := &TelegramChannel{
		ChatID: 777,
		send: func(m tgbotapi.Chattable) (tgbotapi.Message, error) {
			sent = m
			return tgbotapi.Message{}, nil
		},
	}

	if err := c.SendOTP(sampleMessage(KindConfirmation)); err != nil {
		t.Fatalf("send error: %v", err)
	}

	mc, ok := sent.(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("expected a MessageConfig, got %T", sent)
	}
	if mc.ChatID != 777 {
		t.Fatalf("unexpected chat id %d", mc.ChatID)
	}
	if mc.ParseMode != tgbotapi.ModeMarkdown {
		t.Fatalf("unexpected parse mode %q", mc.ParseMode)
	}
	for _, want := range []string{
		"✅ *Confirmation Code Requested*",
		"Booking ID: *#42*",
		"Court: Court 2",
		"Code: `123456`",
		"_Expires in 5 minutes_",
	} {
		if !strings.Contains(mc.Text, want) {
			t.Fatalf("message missing %q:\n%s", want, mc.Text)
		}
	}
}

func TestTelegramCancellationOmitsSlotDetails(t *testing.T) {
	text := renderTelegramOTP(sampleMessage(KindCancellation))
	if !strings.Contains(text, "🔐 *Cancellation Code Requested*") {
		t.Fatalf("unexpected header:\n%s", text)
	}
	if strings.Contains(text, "Court:") || strings.Contains(text, "Date:") {
		t.Fatalf("cancellation message should not carry slot details:\n%s", text)
	}
}

func TestTelegramSendFailure(t *testing.T) {
	c := &TelegramChannel{
		ChatID: 1,
		send: func(m tgbotapi.Chattable) (tgbotapi.Message, error) {
			return tgbotapi.Message{}, errors.New("chat not found")
		},
	}
	if err := c.SendOTP(sampleMessage(KindCancellation)); err == nil {
		t.Fatalf("expected error when the bot send fails")
	}
}

func TestPickRecipient(t *testing.T) {
	if got := pickRecipient("user@example.com", "admin@example.com"); got != "user@example.com" {
		t.Fatalf("expected explicit recipient, got %q", got)
	}
	if got := pickRecipient("", "admin@example.com"); got != "admin@example.com" {
		t.Fatalf("expected fallback recipient, got %q", got)
	}
}

func TestConfirmationHTMLListsPlayers(t *testing.T) {
	html := renderConfirmationHTML([3]string{"A", "B", "C"}, "Court 5 (18:00-20:00)")
	for _, want := range []string{"Booking Confirmed", "Court 5 (18:00-20:00)", "<li>A</li>", "<li>B</li>", "<li>C</li>"} {
		if !strings.Contains(html, want) {
			t.Fatalf("confirmation email missing %q", want)
		}
	}
}
