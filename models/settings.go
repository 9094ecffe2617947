package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// SettingsID is the _id of the single settings document. The application
// tracks data for one implicit user, so there is exactly one.
const SettingsID = "user"

// UserSettings holds the structure for the settings collection in mongo
type UserSettings struct {
	ID                 string             `json:"_id" bson:"_id"`
	DueSoonWindowMiles int                `json:"dueSoonWindowMiles" bson:"dueSoonWindowMiles"`
	ReminderEmail      string             `json:"reminderEmail,omitempty" bson:"reminderEmail,omitempty"`
	EmailEnabled       bool               `json:"emailEnabled" bson:"emailEnabled"`
	UpdatedAt          primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
