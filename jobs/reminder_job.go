package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/anjiri1684/thinksync/database"
	"github.com/anjiri1684/thinksync/models"
	"github.com/anjiri1684/thinksync/notifications"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var classTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ClassReminder emails students whose booked class starts before the job's
// next scheduled run. Consecutive runs cover adjacent spans, so each class is
// reminded once whatever the schedule.
type ClassReminder struct {
	bookings database.Collection[models.Booking]
	notifier notifications.Notifier
	schedule cron.Schedule
	now      func() time.Time
	log      *zap.Logger
}

func NewClassReminder(bookings database.Collection[models.Booking], notifier notifications.Notifier, schedule cron.Schedule, log *zap.Logger) *ClassReminder {
	return &ClassReminder{
		bookings: bookings,
		notifier: notifier,
		schedule: schedule,
		now:      time.Now,
		log:      log,
	}
}

// Schedule is the cron schedule the reminder windows are cut from.
func (j *ClassReminder) Schedule() cron.Schedule {
	return j.schedule
}

// Run is the cron entry point.
func (j *ClassReminder) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	sent, err := j.RunOnce(ctx)
	if err != nil {
		j.log.Error("Class reminder job failed", zap.Error(err))
		return
	}
	j.log.Info("Class reminder job finished", zap.Int("sent", sent))
}

func (j *ClassReminder) RunOnce(ctx context.Context) (int, error) {
	bookings, err := j.bookings.Find(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("load bookings: %w", err)
	}

	// cron fires on minute boundaries; truncating absorbs the firing delay.
	from := j.now().Truncate(time.Minute)
	until := j.schedule.Next(from)
	sent := 0
	for _, b := range bookings {
		start, ok := parseClassTime(b.ClassStartTime)
		if !ok || start.Before(from) || !start.Before(until) {
			continue
		}

		body, err := notifications.RenderClassReminder(notifications.ClassReminder{
			StudentName: b.StudentName,
			Title:       b.Title,
			TutorName:   b.TutorName,
			StartsAt:    start.Format(time.Kitchen),
		})
		if err != nil {
			return sent, err
		}
		subject := fmt.Sprintf("Reminder: %s starts soon", b.Title)
		if err := j.notifier.SendEmail(ctx, b.StudentName, b.StudentEmail, subject, body); err != nil {
			j.log.Warn("Failed to send class reminder",
				zap.String("booking_id", b.ID.Hex()),
				zap.String("student", b.StudentEmail),
				zap.Error(err))
			continue
		}
		sent++
	}
	return sent, nil
}

func parseClassTime(v string) (time.Time, bool) {
	for _, layout := range classTimeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
