package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "courtbook/internal/config"
	router "courtbook/internal/http"
	"courtbook/internal/http/handlers"
	"courtbook/internal/notify"
	"courtbook/internal/otp"
	"courtbook/internal/repositories"
	"courtbook/internal/scheduler"
	"courtbook/internal/submit"
	"courtbook/internal/sweep"
	"courtbook/internal/utils"
	"courtbook/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	loc, err := time.LoadLocation(env.Timezone)
	if err != nil {
		log.Fatalf("invalid timezone %q: %v", env.Timezone, err)
	}

	db := intconfig.ConnectDB()
	defer intconfig.CloseDB()
	if err := repositories.EnsureSchema(db); err != nil {
		log.Fatalf("failed to prepare schema: %v", err)
	}

	repo := repositories.BookingRepo{DB: db}
	codes := otp.NewStore()
	hub := ws.NewHub()
	form := submit.NewClient(env.FormSubmitURL, intconfig.DefaultFormFields(), intconfig.LoadProfile())
	form.ViewURL = env.FormViewURL
	dispatcher := notify.NewDispatcher(buildChannels(env)...)
	email := notify.NewEmailSender(env.MailerSendAPIKey, env.EmailFrom, env.EmailFromName, env.ConfirmationTo)

	tasks := scheduler.New(func(p scheduler.Payload) error {
		return form.Submit(p.P1, p.P2, p.P3, p.CourtName)
	}, repo)
	tasks.OnSubmitted = func(p scheduler.Payload) {
		players := [3]string{p.P1, p.P2, p.P3}
		if p.ConfirmationEmail != "" {
			if err := email.SendBookingConfirmation(players, p.CourtName, p.ConfirmationEmail); err != nil {
				utils.LogEventf("main", "email", "booking %d: confirmation to requester failed: %v", p.BookingID, err)
			}
		}
		// the operator copy always goes out, it is the audit trail
		if err := email.SendBookingConfirmation(players, p.CourtName, ""); err != nil {
			utils.LogEventf("main", "email", "booking %d: operator copy failed: %v", p.BookingID, err)
		}
	}
	tasks.OnStuck = func(p scheduler.Payload, err error) {
		utils.LogEventf("main", "submission_stuck",
			"booking %d failed to submit and needs manual follow-up: %v", p.BookingID, err)
	}

	sweeper := sweep.New(repo, codes)
	sweeper.Start()

	handlers.SetDeps(handlers.Deps{
		Env:      env,
		Repo:     repo,
		Codes:    codes,
		Tasks:    tasks,
		Notifier: dispatcher,
		Hub:      hub,
		Form:     form,
		Loc:      loc,
	})

	r := router.NewRouter(env)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Court booking app listening on http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	if err := tasks.Shutdown(ctx); err != nil {
		log.Printf("scheduler shutdown: %v", err)
	}
	sweeper.Stop()
	hub.Close()

	log.Println("Server stopped.")
}

// buildChannels assembles the configured OTP delivery channels. A bad
// Telegram token disables that channel instead of refusing to boot.
func buildChannels(env intconfig.Env) []notify.Channel {
	var channels []notify.Channel
	if env.DiscordWebhookURL != "" {
		channels = append(channels, notify.NewDiscordChannel(env.DiscordWebhookURL))
	}
	if env.TelegramBotToken != "" {
		tg, err := notify.NewTelegramChannel(env.TelegramBotToken, env.TelegramChatID)
		if err != nil {
			log.Printf("telegram channel disabled: %v", err)
		} else {
			channels = append(channels, tg)
		}
	}
	if len(channels) == 0 {
		log.Println("no notification channels configured, confirmation codes cannot be delivered")
	}
	return channels
}
