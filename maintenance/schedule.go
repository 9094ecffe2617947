// Package maintenance implements the due-status classification and service
// completion rules for maintenance intervals. Everything here is pure; the
// handlers and the reminder job supply the current mileage, clock, and
// due-soon window.
package maintenance

import (
	"time"

	"github.com/carloghq/carlog-api/models"
)

// DueMileage returns the odometer reading at which the interval is next due.
// An explicit NextDueMileage wins; otherwise it is derived from the last
// service plus the mileage recurrence. Nil when neither is resolvable.
func DueMileage(interval models.MaintenanceInterval) *int {
	if interval.NextDueMileage != nil {
		return interval.NextDueMileage
	}
	if interval.LastPerformedMileage != nil && interval.IntervalMiles != nil {
		due := *interval.LastPerformedMileage + *interval.IntervalMiles
		return &due
	}
	return nil
}

// DueDate returns the calendar date at which the interval is next due.
// An explicit NextDueDate wins; otherwise it is derived from the last
// service plus the month recurrence. Nil when neither is resolvable.
func DueDate(interval models.MaintenanceInterval) *time.Time {
	if interval.NextDueDate != nil {
		return interval.NextDueDate
	}
	if interval.LastPerformedDate != nil && interval.IntervalMonths != nil {
		due := interval.LastPerformedDate.AddDate(0, *interval.IntervalMonths, 0)
		return &due
	}
	return nil
}

// MilesUntilDue returns how many miles remain before the interval is due at
// the given odometer reading. Negative when already past due, nil when the
// interval has no mileage signal.
func MilesUntilDue(interval models.MaintenanceInterval, currentMileage int) *int {
	due := DueMileage(interval)
	if due == nil {
		return nil
	}
	remaining := *due - currentMileage
	return &remaining
}

// Classify determines the due status of an interval at the given odometer
// reading and moment in time. Either signal past due makes the whole
// interval overdue; the due-soon window applies to mileage only.
func Classify(interval models.MaintenanceInterval, currentMileage int, now time.Time, dueSoonWindowMiles int) models.DueStatus {
	remaining := MilesUntilDue(interval, currentMileage)
	dueDate := DueDate(interval)

	if remaining == nil && dueDate == nil {
		return models.StatusUnknown
	}
	if remaining != nil && *remaining <= 0 {
		return models.StatusOverdue
	}
	if dueDate != nil && now.After(*dueDate) {
		return models.StatusOverdue
	}
	if remaining != nil && *remaining <= dueSoonWindowMiles {
		return models.StatusDueSoon
	}
	return models.StatusOk
}
