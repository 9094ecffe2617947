package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Vehicle holds the structure for the vehicle collection in mongo.
// Documents are keyed by VIN; the VIN never changes after creation.
type Vehicle struct {
	VIN     string         `json:"vin" bson:"_id"`
	Details VehicleDetails `json:"vehicle" bson:"vehicle"`
}

// VehicleDetails holds the structure for the inner vehicle structure as
// defined in the vehicle collection in mongo. Optional reference fields are
// pointers so that "never decoded" is distinguishable from an empty value.
type VehicleDetails struct {
	Year              int                `json:"year" bson:"year"`
	Make              string             `json:"make" bson:"make"`
	Model             string             `json:"model" bson:"model"`
	Trim              *string            `json:"trim,omitempty" bson:"trim,omitempty"`
	BodyClass         *string            `json:"bodyClass,omitempty" bson:"bodyClass,omitempty"`
	FuelType          *string            `json:"fuelType,omitempty" bson:"fuelType,omitempty"`
	DriveType         *string            `json:"driveType,omitempty" bson:"driveType,omitempty"`
	TransmissionStyle *string            `json:"transmissionStyle,omitempty" bson:"transmissionStyle,omitempty"`
	PlantCountry      *string            `json:"plantCountry,omitempty" bson:"plantCountry,omitempty"`
	Color             *string            `json:"color,omitempty" bson:"color,omitempty"`
	CurrentMileage    int                `json:"currentMileage" bson:"currentMileage"`
	CreatedAt         primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt         primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
