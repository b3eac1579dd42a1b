// Package app wires application components together and manages lifecycle.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"solid-principles/internal/config"
	"solid-principles/internal/contact"
	"solid-principles/internal/customer"
	"solid-principles/internal/scheduler"
	"solid-principles/internal/sender"
)

// App holds the dispatcher and the roster it contacts.
type App struct {
	cfg        *config.Config
	log        *slog.Logger
	dispatcher *contact.Dispatcher
	roster     *customer.Roster
}

// New registers the console channels, plus telegram when a token is
// configured, and loads the roster. Delivery lines are written to out.
func New(cfg *config.Config, log *slog.Logger, out io.Writer) (*App, error) {
	reg := contact.NewRegistry()
	if err := sender.Console(reg, out); err != nil {
		return nil, err
	}

	if cfg.Telegram.Enabled() {
		tg, err := sender.NewTelegramSender(cfg.Telegram)
		if err != nil {
			return nil, err
		}
		if cfg.Telegram.DailyLimit > 0 {
			tg.SetDailyLimiter(sender.NewDailyLimiter(cfg.Telegram.DailyLimit, time.Local))
		}
		if err := reg.Register(customer.Telegram, tg); err != nil {
			return nil, err
		}
		log.Info("telegram channel enabled", "default_chat_id", cfg.Telegram.ChatID)
	}

	roster := customer.DefaultRoster()
	if cfg.CustomersFile != "" {
		r, err := customer.LoadRoster(cfg.CustomersFile)
		if err != nil {
			return nil, err
		}
		roster = r
		log.Info("roster loaded", "path", cfg.CustomersFile, "customers", roster.Len())
	}

	d := contact.NewDispatcher(reg, log)
	for _, c := range roster.All() {
		if err := d.Validate(c); err != nil {
			log.Warn("customer cannot be contacted", "customer", c.Name, "error", err)
		}
	}

	return &App{
		cfg:        cfg,
		log:        log,
		dispatcher: d,
		roster:     roster,
	}, nil
}

// ContactAll contacts every customer in roster order. The first failure
// ends the run; customers after it are not contacted.
func (a *App) ContactAll(ctx context.Context, message string) (int, error) {
	contacted := 0
	for _, c := range a.roster.All() {
		if err := a.dispatcher.Contact(ctx, c, message); err != nil {
			return contacted, fmt.Errorf("customer %q: %w", c.Name, err)
		}
		contacted++
	}
	return contacted, nil
}

// ReminderJob builds the scheduled job that contacts the whole roster.
func (a *App) ReminderJob(message string) scheduler.JobFunc {
	return func(ctx context.Context, taskLogger *slog.Logger) {
		start := time.Now()
		taskLogger.Debug("reminder job started", "customers", a.roster.Len())

		n, err := a.ContactAll(ctx, message)
		if err != nil {
			if ctx.Err() != nil {
				taskLogger.Warn("job cancelled due to shutdown", "reason", ctx.Err(), "contacted", n)
				return
			}
			taskLogger.Error("failed to contact customers", "error", err, "contacted", n)
			return
		}

		taskLogger.Info("reminders sent", "count", n, "dur", time.Since(start))
	}
}

// Reminder returns a cron service running ReminderJob on the configured
// schedule.
func (a *App) Reminder(message string) (*scheduler.CronService, error) {
	return scheduler.NewCronService(a.cfg.RemindSchedule, time.Local, a.ReminderJob(message), a.log)
}

func (a *App) Methods() []customer.ContactMethod {
	return a.dispatcher.Methods()
}
