package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaintenanceInterval holds the structure for the maintenanceIntervals
// collection in mongo. One document describes one recurring maintenance
// obligation for one vehicle. A recurring interval defines at least one of
// IntervalMiles or IntervalMonths; an interval with neither always
// classifies as unknown.
type MaintenanceInterval struct {
	ID                   primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	VIN                  string             `json:"vin" bson:"vin"`
	ServiceType          string             `json:"serviceType" bson:"serviceType"`
	IntervalMiles        *int               `json:"intervalMiles,omitempty" bson:"intervalMiles,omitempty"`
	IntervalMonths       *int               `json:"intervalMonths,omitempty" bson:"intervalMonths,omitempty"`
	LastPerformedMileage *int               `json:"lastPerformedMileage,omitempty" bson:"lastPerformedMileage,omitempty"`
	LastPerformedDate    *time.Time         `json:"lastPerformedDate,omitempty" bson:"lastPerformedDate,omitempty"`
	NextDueMileage       *int               `json:"nextDueMileage,omitempty" bson:"nextDueMileage,omitempty"`
	NextDueDate          *time.Time         `json:"nextDueDate,omitempty" bson:"nextDueDate,omitempty"`
	Custom               bool               `json:"custom" bson:"custom"`
	Notes                string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt            primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt            primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
