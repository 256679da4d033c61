package scheduler

import (
	"context"
	"fmt"
	"time"

	"duty_roster_bot/internal/app"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Clock abstracts wall-clock reads so trigger detection is testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// ReminderScheduler polls the clock and runs the reminder batch whenever the
// current minute matches the configured cron schedule.
//
// Minute equality alone is only best-effort deduplication: an imprecise poll
// can observe the same wall-clock minute twice. The scheduler therefore also
// remembers the last trigger minute it fired for and refuses to fire again
// within it. This still does not survive a process restart inside a trigger
// minute; a duplicate reminder there is benign and resolved by the user's
// next confirmation.
type ReminderScheduler struct {
	service      app.ReminderService
	schedule     cron.Schedule
	clock        Clock
	pollInterval time.Duration
	logger       *logrus.Entry
	lastFired    time.Time // trigger minute of the most recent firing
}

// New parses the trigger spec (standard 5-field cron expression) and returns
// a scheduler polling at the given interval. Intervals outside (0, 1m] are
// clamped to one minute so no trigger minute can be skipped.
func New(
	service app.ReminderService,
	triggerSpec string,
	pollInterval time.Duration,
	clock Clock,
	logger *logrus.Entry,
) (*ReminderScheduler, error) {
	schedule, err := cron.ParseStandard(triggerSpec)
	if err != nil {
		return nil, fmt.Errorf("parse reminder trigger spec %q: %w", triggerSpec, err)
	}
	if pollInterval <= 0 || pollInterval > time.Minute {
		pollInterval = time.Minute
	}
	return &ReminderScheduler{
		service:      service,
		schedule:     schedule,
		clock:        clock,
		pollInterval: pollInterval,
		logger:       logger,
	}, nil
}

// Run blocks until ctx is canceled, evaluating triggers at every poll.
// Cancellation is observed within one poll interval; no new batch is started
// after it.
func (s *ReminderScheduler) Run(ctx context.Context) {
	s.logger.WithField("poll_interval", s.pollInterval.String()).Info("Reminder scheduler started")

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Reminder scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick evaluates a single poll. Panics are contained here so one bad
// evaluation cannot kill the loop; it resumes at the next poll.
func (s *ReminderScheduler) tick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.WithField("panic", r).Error("Recovered from panic in reminder tick")
		}
	}()

	now := s.clock.Now()
	minute, due := s.dueTrigger(now)
	if !due {
		return
	}
	s.lastFired = minute

	s.logger.WithField("trigger", minute.Format("15:04")).Info("Reminder trigger fired")
	if err := s.service.ProcessDueReminders(ctx, now); err != nil {
		s.logger.WithError(err).Error("Reminder batch failed")
	}
}

// dueTrigger reports whether now falls inside a trigger minute that has not
// fired yet.
func (s *ReminderScheduler) dueTrigger(now time.Time) (time.Time, bool) {
	minute := now.Truncate(time.Minute)
	// cron's Next is strictly after its argument; step back one second to
	// test whether this very minute is an activation.
	if !s.schedule.Next(minute.Add(-time.Second)).Equal(minute) {
		return time.Time{}, false
	}
	if s.lastFired.Equal(minute) {
		return time.Time{}, false
	}
	return minute, true
}
