package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"duty_roster_bot/internal/app"
	"duty_roster_bot/internal/domain/roster"
	"duty_roster_bot/internal/infra/config"
	"duty_roster_bot/internal/infra/health"
	"duty_roster_bot/internal/infra/logger"
	"duty_roster_bot/internal/infra/memory"
	"duty_roster_bot/internal/infra/scheduler"
	itelegram "duty_roster_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	logger.Init(cfg)
	log := logger.Get().WithField("component", "main")
	log.WithFields(logrus.Fields{
		"environment":  cfg.Environment,
		"participants": cfg.Participants,
		"anchor_date":  cfg.AnchorDate.Format("2006-01-02"),
	}).Info("Duty roster bot starting")

	// The roster is fixed, ordered configuration; an invalid one is a
	// deployment error, not a runtime condition.
	dutyRoster, err := roster.New(cfg.Participants, cfg.AnchorDate, cfg.SlotSpanDays)
	if err != nil {
		log.WithError(err).Fatal("Invalid roster configuration")
	}

	// Shared state: owned here, injected into both the handler path and the
	// scheduler path. Ephemeral by design.
	selections := memory.NewSelectionStore()
	confirmations := memory.NewConfirmationStore()

	dutyService := app.NewDutyService(
		dutyRoster, selections, confirmations,
		logger.Get().WithField("component", "duty_service"), nil,
	)

	pref := telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) { // Global error handler
			entry := logger.Get().WithField("component", "telebot")
			if c != nil && c.Sender() != nil {
				entry = entry.WithField("sender_id", c.Sender().ID)
			}
			entry.WithError(err).Error("Unhandled bot error")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		log.WithError(err).Fatal("Could not create Telegram bot")
	}

	telegramClient := itelegram.NewTelebotAdapter(bot)
	reminderService := app.NewReminderService(
		dutyRoster, selections, confirmations, telegramClient,
		logger.Get().WithField("component", "reminder_service"),
	)

	reminderScheduler, err := scheduler.New(
		reminderService, cfg.ReminderCron, cfg.PollInterval, scheduler.SystemClock(),
		logger.Get().WithField("component", "scheduler"),
	)
	if err != nil {
		log.WithError(err).Fatal("Could not build reminder scheduler")
	}

	healthServer, err := health.New(cfg.Port, logger.Get().WithField("component", "health"))
	if err != nil {
		log.WithError(err).Fatal("Could not start health server")
	}

	itelegram.RegisterDutyHandlers(bot, dutyService, dutyRoster, logger.Get().WithField("component", "telegram"))
	log.Info("Duty handlers registered")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go healthServer.Start()
	go reminderScheduler.Run(ctx)
	go bot.Start()

	log.Info("Application setup complete, bot is polling")
	<-ctx.Done()

	log.Info("Shutting down application")
	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := healthServer.Shutdown(shCtx); err != nil {
		log.WithError(err).Warn("Health server shutdown error")
	}
	cancel()
	bot.Stop()
	log.Info("Application shut down gracefully")
}
