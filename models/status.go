package models

// DueStatus is the derived status of a maintenance interval. It is never
// stored; it is recomputed from the interval plus the vehicle's current
// mileage and today's date. Only maintenance.Classify produces values of
// this type.
type DueStatus string

// The closed set of due statuses, in decreasing severity.
const (
	StatusOverdue DueStatus = "overdue"
	StatusDueSoon DueStatus = "due_soon"
	StatusOk      DueStatus = "ok"
	StatusUnknown DueStatus = "unknown"
)
