package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceRecord holds the structure for the serviceRecords collection in
// mongo. One document is one completed service on one vehicle.
type ServiceRecord struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	VIN         string             `json:"vin" bson:"vin"`
	IntervalID  primitive.ObjectID `json:"intervalId" bson:"intervalId"`
	ServiceType string             `json:"serviceType" bson:"serviceType"`
	Date        time.Time          `json:"date" bson:"date"`
	Mileage     int                `json:"mileage" bson:"mileage"`
	Cost        float64            `json:"cost" bson:"cost"`
	ShopName    string             `json:"shopName,omitempty" bson:"shopName,omitempty"`
	Notes       string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt   primitive.DateTime `json:"createdAt" bson:"createdAt"`
}
