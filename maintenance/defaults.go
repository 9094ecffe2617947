package maintenance

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carloghq/carlog-api/models"
)

type defaultInterval struct {
	serviceType    string
	intervalMiles  int
	intervalMonths int
}

// The starter schedule every vehicle gets on creation. Owners can edit or
// delete these like any custom interval.
var defaultIntervals = []defaultInterval{
	{"Oil Change", 5000, 6},
	{"Tire Rotation", 7500, 6},
	{"Brake Inspection", 15000, 12},
	{"Air Filter", 15000, 12},
}

// DefaultIntervals builds the default maintenance schedule for a newly
// created vehicle.
func DefaultIntervals(vin string, now time.Time) []models.MaintenanceInterval {
	intervals := make([]models.MaintenanceInterval, 0, len(defaultIntervals))
	for _, d := range defaultIntervals {
		miles := d.intervalMiles
		months := d.intervalMonths
		intervals = append(intervals, models.MaintenanceInterval{
			ID:             primitive.NewObjectID(),
			VIN:            vin,
			ServiceType:    d.serviceType,
			IntervalMiles:  &miles,
			IntervalMonths: &months,
			Custom:         false,
			CreatedAt:      primitive.NewDateTimeFromTime(now),
			UpdatedAt:      primitive.NewDateTimeFromTime(now),
		})
	}
	return intervals
}
