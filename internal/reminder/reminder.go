package reminder

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"hairdo-backend/internal/models"
	"hairdo-backend/internal/policy"
	"hairdo-backend/internal/store"
	"hairdo-backend/internal/timemath"
)

const scanTimeout = 30 * time.Second

// Mailer is the slice of the notifications client the scheduler needs.
type Mailer interface {
	SendAppointmentReminder(ctx context.Context, appt models.Appointment, service models.Service) (string, error)
}

// Scheduler sends reminder emails ahead of upcoming appointments. It
// runs a per-minute cron tick and, on each tick, looks for blocking
// appointments whose start time falls exactly reminderMinutesBefore
// from now. Appointments are marked after a successful send so a
// restart never double-reminds.
type Scheduler struct {
	appointments *store.AppointmentRepository
	settings     *store.SettingsRepository
	catalog      *store.CatalogRepository
	mailer       Mailer
	loc          *time.Location
	log          *slog.Logger

	cron *cron.Cron
}

func NewScheduler(
	appointments *store.AppointmentRepository,
	settings *store.SettingsRepository,
	catalog *store.CatalogRepository,
	mailer Mailer,
	loc *time.Location,
	log *slog.Logger,
) *Scheduler {
	return &Scheduler{
		appointments: appointments,
		settings:     settings,
		catalog:      catalog,
		mailer:       mailer,
		loc:          loc,
		log:          log,
	}
}

// Start begins the per-minute tick. It is a no-op when no mailer is
// configured.
func (s *Scheduler) Start() error {
	if s.mailer == nil {
		s.log.Info("reminder: no mailer configured, scheduler disabled")
		return nil
	}
	s.cron = cron.New(cron.WithLocation(s.loc))
	if _, err := s.cron.AddFunc("* * * * *", s.tick); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("reminder: scheduler started")
	return nil
}

// Stop halts the cron loop and waits for an in-flight tick to finish.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	lead := s.reminderLead(ctx)
	now := time.Now().In(s.loc)
	target := now.Add(time.Duration(lead) * time.Minute)

	// The tick fires once a minute, so the window (target-1m, target]
	// covers each start time exactly once. A window that crosses
	// midnight belongs to tomorrow's first tick.
	targetMin := target.Hour()*60 + target.Minute()
	if targetMin == 0 {
		return
	}
	date := target.Format("2006-01-02")
	fromClock := timemath.MinutesToClock(targetMin - 1)
	toClock := timemath.MinutesToClock(targetMin)

	due, err := s.appointments.ListNeedingReminder(ctx, date, fromClock, toClock)
	if err != nil {
		s.log.Error("reminder: scan failed", slog.String("error", err.Error()))
		return
	}

	for _, appt := range due {
		s.send(ctx, appt)
	}
}

func (s *Scheduler) send(ctx context.Context, appt models.Appointment) {
	if appt.CustomerEmail == "" {
		s.mark(ctx, appt.ID)
		return
	}

	svc, err := s.catalog.GetService(ctx, appt.ServiceID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		s.log.Error("reminder: service lookup failed",
			slog.String("appointment_id", appt.ID),
			slog.String("error", err.Error()))
		return
	}

	msgID, err := s.mailer.SendAppointmentReminder(ctx, appt, svc)
	if err != nil {
		s.log.Error("reminder: send failed",
			slog.String("appointment_id", appt.ID),
			slog.String("error", err.Error()))
		return
	}

	s.log.Info("reminder: sent",
		slog.String("appointment_id", appt.ID),
		slog.String("message_id", msgID))
	s.mark(ctx, appt.ID)
}

func (s *Scheduler) mark(ctx context.Context, id string) {
	if err := s.appointments.MarkReminderSent(ctx, id, time.Now().In(s.loc)); err != nil {
		s.log.Error("reminder: mark failed",
			slog.String("appointment_id", id),
			slog.String("error", err.Error()))
	}
}

func (s *Scheduler) reminderLead(ctx context.Context) int {
	p, err := s.settings.GetBookingPolicy(ctx)
	if err != nil {
		return policy.DefaultReminderMinutesBefore
	}
	if p.ReminderMinutesBefore <= 0 {
		return policy.DefaultReminderMinutesBefore
	}
	return p.ReminderMinutesBefore
}
