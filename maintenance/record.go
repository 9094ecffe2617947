package maintenance

import (
	"fmt"
	"time"

	"github.com/carloghq/carlog-api/models"
)

// ValidationError reports a service completion that would corrupt the
// interval's history. The interval is left untouched when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// RecordCompletion applies a completed service to an interval and returns
// the updated copy. The last-performed markers move to the completion, and
// the next-due markers are recomputed from the recurrence or cleared when
// the interval has none. Callers persist the result; this never mutates
// the input.
func RecordCompletion(interval models.MaintenanceInterval, performedDate time.Time, performedMileage int) (models.MaintenanceInterval, error) {
	if performedMileage <= 0 {
		return interval, &ValidationError{Field: "mileage", Message: "must be greater than zero"}
	}
	if interval.LastPerformedMileage != nil && performedMileage < *interval.LastPerformedMileage {
		return interval, &ValidationError{
			Field:   "mileage",
			Message: fmt.Sprintf("must not be below the last recorded service at %d miles", *interval.LastPerformedMileage),
		}
	}

	updated := interval
	updated.LastPerformedDate = &performedDate
	updated.LastPerformedMileage = &performedMileage

	if interval.IntervalMiles != nil {
		next := performedMileage + *interval.IntervalMiles
		updated.NextDueMileage = &next
	} else {
		updated.NextDueMileage = nil
	}
	if interval.IntervalMonths != nil {
		next := performedDate.AddDate(0, *interval.IntervalMonths, 0)
		updated.NextDueDate = &next
	} else {
		updated.NextDueDate = nil
	}

	return updated, nil
}
