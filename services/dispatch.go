// services/dispatch.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"reminders-backend/models"
	"reminders-backend/utils"
)

// lookupTimeout bounds the user-directory call per reminder so one slow
// lookup cannot stall the rest of the tick.
const lookupTimeout = 15 * time.Second

// DispatchService polls the store for due reminders on a fixed cadence,
// advances each one to its next occurrence and sends the notification.
// Rescheduling is committed before the send, so a delivery failure is never
// retried within the same period.
type DispatchService struct {
	db       *gorm.DB
	notifier Notifier
	users    UserDirectory
	cadence  time.Duration
	runner   *cron.Cron

	// now is replaceable in tests.
	now func() time.Time
}

func NewDispatchService(db *gorm.DB, notifier Notifier, users UserDirectory, cadence time.Duration) *DispatchService {
	return &DispatchService{
		db:       db,
		notifier: notifier,
		users:    users,
		cadence:  cadence,
		now:      time.Now,
	}
}

// Start verifies the notifier connection and begins ticking. Ticks are
// strictly sequential: a tick that overruns the cadence delays the next one
// instead of overlapping it.
func (s *DispatchService) Start() error {
	if err := s.notifier.Verify(); err != nil {
		return err
	}
	utils.GetLogger().Info("SMTP server connected")

	s.runner = cron.New(cron.WithChain(cron.DelayIfStillRunning(cron.DiscardLogger)))
	if _, err := s.runner.AddFunc(fmt.Sprintf("@every %s", s.cadence), s.Tick); err != nil {
		return fmt.Errorf("failed to register dispatch tick: %w", err)
	}
	s.runner.Start()

	utils.GetLogger().Info("reminder dispatcher started", zap.Duration("cadence", s.cadence))
	return nil
}

// Stop halts the cadence and waits for an in-flight tick to finish, or for
// ctx to expire.
func (s *DispatchService) Stop(ctx context.Context) error {
	if s.runner == nil {
		return nil
	}
	stopped := s.runner.Stop()
	select {
	case <-stopped.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Tick runs one dispatch cycle: fetch everything due before now and process
// each reminder independently.
func (s *DispatchService) Tick() {
	now := s.now().UTC()
	log := utils.GetLogger()
	log.Info("dispatch tick", zap.Time("now", now))

	var due []models.Reminder
	if err := s.db.Where("due_date < ?", now).Find(&due).Error; err != nil {
		log.Error("failed to fetch due reminders", zap.Error(err))
		return
	}

	for _, reminder := range due {
		s.process(now, reminder)
	}
}

// process advances one due reminder and attempts its notification. Errors
// are logged and recorded; they never propagate into the tick.
func (s *DispatchService) process(now time.Time, reminder models.Reminder) {
	log := utils.GetLogger().With(
		zap.String("reminder", reminder.ID.String()),
		zap.String("user", reminder.UserID),
	)

	next, err := utils.NextOccurrence(reminder.Cron, now)
	if err != nil {
		// Creation validates the expression, so this only happens if the
		// stored row was tampered with.
		log.Error("stored cron expression is unparseable", zap.String("cron", reminder.Cron), zap.Error(err))
		return
	}

	// Claim the reminder by advancing due_date conditionally on the value we
	// read. Zero rows affected means another dispatcher got here first.
	claim := s.db.Model(&models.Reminder{}).
		Where("id = ? AND due_date = ?", reminder.ID, reminder.DueDate).
		Update("due_date", next)
	if claim.Error != nil {
		log.Error("failed to reschedule reminder", zap.Error(claim.Error))
		return
	}
	if claim.RowsAffected == 0 {
		log.Debug("reminder already claimed")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	user, err := s.users.Lookup(ctx, reminder.UserID)
	if err != nil {
		log.Error("user lookup failed", zap.Error(err))
		s.recordDelivery(reminder, "", "skipped", err.Error())
		return
	}
	if user == nil {
		log.Warn("user does not exist, skipping notification")
		s.recordDelivery(reminder, "", "skipped", "user not found")
		return
	}

	greeting := "Hey there!"
	if user.Name != "" {
		greeting = fmt.Sprintf("Hey %s!", user.Name)
	}
	body := fmt.Sprintf("%s\n\nReminder:\n%s", greeting, reminder.Text)

	if err := s.notifier.Send(user.Email, body); err != nil {
		log.Error("failed to send email", zap.Error(err))
		s.recordDelivery(reminder, user.Email, "failed", err.Error())
		return
	}

	log.Info("reminder sent", zap.String("to", user.Email), zap.Time("next", next))
	s.recordDelivery(reminder, user.Email, "sent", "")
}

func (s *DispatchService) recordDelivery(reminder models.Reminder, recipient, status, errorMsg string) {
	entry := models.DeliveryLog{
		ReminderID:   reminder.ID,
		UserID:       reminder.UserID,
		Recipient:    recipient,
		Status:       status,
		ErrorMessage: errorMsg,
		SentAt:       s.now().UTC(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		utils.GetLogger().Error("failed to record delivery log", zap.Error(err))
	}
}
