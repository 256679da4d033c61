package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults reproduce the roster this bot was originally deployed with:
// three participants, a 9-day cycle anchored on 2025-06-14, reminders at
// 12:00, 18:00 and 21:00 local time.
const (
	defaultPort         = 10000
	defaultParticipants = "Аня,Ларик,Маша"
	defaultAnchorDate   = "2025-06-14"
	defaultSlotSpan     = 3
	defaultReminderCron = "0 12,18,21 * * *"
	defaultPollInterval = 30 * time.Second
)

// AppConfig holds all configuration for the application.
type AppConfig struct {
	TelegramToken string
	Port          int
	Participants  []string
	AnchorDate    time.Time
	SlotSpanDays  int
	ReminderCron  string
	PollInterval  time.Duration
	LogLevel      string
	Environment   string
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is not set")
	}

	portStr := os.Getenv("PORT")
	if portStr == "" {
		cfg.Port = defaultPort
	} else {
		port, err := strconv.Atoi(portStr)
		if err != nil || port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid PORT: %q", portStr)
		}
		cfg.Port = port
	}

	participantsStr := os.Getenv("PARTICIPANTS")
	if participantsStr == "" {
		participantsStr = defaultParticipants
	}
	for _, name := range strings.Split(participantsStr, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("PARTICIPANTS contains an empty name: %q", participantsStr)
		}
		cfg.Participants = append(cfg.Participants, name)
	}

	anchorStr := os.Getenv("ANCHOR_DATE")
	if anchorStr == "" {
		anchorStr = defaultAnchorDate
	}
	anchor, err := time.ParseInLocation("2006-01-02", anchorStr, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid ANCHOR_DATE: %w", err)
	}
	cfg.AnchorDate = anchor

	spanStr := os.Getenv("SLOT_SPAN_DAYS")
	if spanStr == "" {
		cfg.SlotSpanDays = defaultSlotSpan
	} else {
		span, err := strconv.Atoi(spanStr)
		if err != nil || span < 1 {
			return nil, fmt.Errorf("invalid SLOT_SPAN_DAYS: %q", spanStr)
		}
		cfg.SlotSpanDays = span
	}

	cfg.ReminderCron = os.Getenv("REMINDER_CRON")
	if cfg.ReminderCron == "" {
		cfg.ReminderCron = defaultReminderCron
	}

	pollStr := os.Getenv("POLL_INTERVAL")
	if pollStr == "" {
		cfg.PollInterval = defaultPollInterval
	} else {
		poll, err := time.ParseDuration(pollStr)
		if err != nil {
			return nil, fmt.Errorf("invalid POLL_INTERVAL: %w", err)
		}
		// Trigger detection is minute-granular; polling slower than that
		// would skip trigger minutes entirely.
		if poll <= 0 || poll > time.Minute {
			return nil, fmt.Errorf("POLL_INTERVAL must be positive and at most 1m, got %s", poll)
		}
		cfg.PollInterval = poll
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	return cfg, nil
}
