package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FuelLog holds the structure for the fuelLogs collection in mongo
type FuelLog struct {
	ID             primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	VIN            string             `json:"vin" bson:"vin"`
	Gallons        float64            `json:"gallons" bson:"gallons"`
	PricePerGallon float64            `json:"pricePerGallon" bson:"pricePerGallon"`
	TotalCost      float64            `json:"totalCost" bson:"totalCost"`
	Odometer       int                `json:"odometer" bson:"odometer"`
	Date           time.Time          `json:"date" bson:"date"`
	Station        string             `json:"station,omitempty" bson:"station,omitempty"`
	FuelType       string             `json:"fuelType" bson:"fuelType"`
	FullTank       bool               `json:"fullTank" bson:"fullTank"`
	Notes          string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt      primitive.DateTime `json:"createdAt" bson:"createdAt"`
}
