// Package scheduler runs the periodic background jobs for CarLog, currently
// the daily maintenance reminder digest.
package scheduler

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/carloghq/carlog-api/databases"
	"github.com/carloghq/carlog-api/maintenance"
	"github.com/carloghq/carlog-api/models"
	templates "github.com/carloghq/carlog-api/templates/html"
)

// Scheduler handles periodic background jobs for maintenance reminders
type Scheduler struct {
	cron               *cron.Cron
	VDB                databases.VehicleDatabase
	IDB                databases.IntervalDatabase
	SDB                databases.SettingsDatabase
	LockDB             databases.SchedulerLockDatabase
	defaultWindowMiles int
	instanceID         string
}

// NewScheduler creates a new scheduler instance
func NewScheduler(
	vDB databases.VehicleDatabase,
	iDB databases.IntervalDatabase,
	sDB databases.SettingsDatabase,
	lockDB databases.SchedulerLockDatabase,
	defaultWindowMiles int,
) *Scheduler {
	// Generate a unique instance ID for this pod
	instanceID := os.Getenv("DYNO") // Heroku sets this to "web.1", "web.2", etc.
	if instanceID == "" {
		instanceID = fmt.Sprintf("instance-%d", time.Now().UnixNano())
	}

	return &Scheduler{
		cron:               cron.New(cron.WithLocation(time.UTC)),
		VDB:                vDB,
		IDB:                iDB,
		SDB:                sDB,
		LockDB:             lockDB,
		defaultWindowMiles: defaultWindowMiles,
		instanceID:         instanceID,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Send the maintenance reminder digest daily at 8 AM UTC
	_, err := s.cron.AddFunc("0 8 * * *", s.sendMaintenanceReminders)
	if err != nil {
		zap.S().Errorw("failed to register maintenance reminder job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("Maintenance reminder scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Maintenance reminder scheduler stopped")
}

// sendMaintenanceReminders classifies every vehicle's intervals and emails a
// digest of whatever is overdue or due soon
func (s *Scheduler) sendMaintenanceReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Try to acquire distributed lock (10 minute TTL)
	acquired, err := s.LockDB.TryAcquireLock(ctx, "maintenance_reminder_job", s.instanceID, 10*time.Minute)
	if err != nil {
		zap.S().Errorw("failed to acquire lock for maintenance reminder job", "error", err)
		return
	}
	if !acquired {
		zap.S().Debug("Maintenance reminder job already running on another instance, skipping")
		return
	}
	defer s.LockDB.ReleaseLock(ctx, "maintenance_reminder_job", s.instanceID)

	zap.S().Infow("Running maintenance reminder job", "instance", s.instanceID)

	settings, err := s.SDB.Get(ctx)
	if err != nil {
		// No settings document yet means reminders were never enabled
		zap.S().Debugw("no settings found, skipping reminder digest", "error", err)
		return
	}
	if !settings.EmailEnabled || settings.ReminderEmail == "" {
		zap.S().Debug("Reminder emails disabled, skipping digest")
		return
	}

	window := settings.DueSoonWindowMiles
	if window <= 0 {
		window = s.defaultWindowMiles
	}

	items, err := s.collectReminderItems(ctx, window)
	if err != nil {
		zap.S().Errorw("failed to collect reminder items", "error", err)
		return
	}
	if len(items) == 0 {
		zap.S().Info("No overdue or due-soon intervals, skipping digest")
		return
	}

	subject := fmt.Sprintf("%d maintenance items need attention - CarLog", len(items))
	htmlContent := templates.RenderReminderDigestEmail(items)
	plainText := fmt.Sprintf("You have %d maintenance items that are overdue or due soon. Open CarLog for details.", len(items))

	if err := s.sendEmail(settings.ReminderEmail, subject, htmlContent, plainText); err != nil {
		zap.S().Errorw("failed to send reminder digest", "error", err)
		return
	}

	zap.S().Infow("Sent maintenance reminder digest", "items", len(items), "to", settings.ReminderEmail)
}

// collectReminderItems walks every vehicle's intervals and keeps the ones
// classified overdue or due soon
func (s *Scheduler) collectReminderItems(ctx context.Context, window int) ([]templates.ReminderItem, error) {
	vehicles, err := s.VDB.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var items []templates.ReminderItem
	for i := range vehicles {
		vehicle := vehicles[i]
		intervals, err := s.IDB.Find(ctx, bson.M{"vin": vehicle.VIN})
		if err != nil {
			zap.S().Errorw("failed to load intervals for vehicle", "vin", vehicle.VIN, "error", err)
			continue
		}

		for j := range intervals {
			interval := intervals[j]
			status := maintenance.Classify(interval, vehicle.Details.CurrentMileage, now, window)
			if status != models.StatusOverdue && status != models.StatusDueSoon {
				continue
			}

			item := templates.ReminderItem{
				VehicleName: fmt.Sprintf("%d %s %s", vehicle.Details.Year, vehicle.Details.Make, vehicle.Details.Model),
				VIN:         vehicle.VIN,
				ServiceType: interval.ServiceType,
				Status:      string(status),
				MilesUntil:  maintenance.MilesUntilDue(interval, vehicle.Details.CurrentMileage),
			}
			if due := maintenance.DueDate(interval); due != nil {
				item.DueDate = due.Format("Jan 2, 2006")
			}
			items = append(items, item)
		}
	}
	return items, nil
}

func (s *Scheduler) sendEmail(toEmail, subject, htmlContent, plainText string) error {
	from := mail.NewEmail("CarLog", "no-reply@carloghq.com")
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)
	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body)
	}
	return nil
}
