package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MileageEntry holds the structure for the mileageHistory collection in
// mongo. Entries are appended whenever a new odometer reading is recorded.
type MileageEntry struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	VIN       string             `json:"vin" bson:"vin"`
	Mileage   int                `json:"mileage" bson:"mileage"`
	Date      time.Time          `json:"date" bson:"date"`
	Source    string             `json:"source" bson:"source"`
	Notes     string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
}
