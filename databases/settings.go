package databases

// go generate: mockery --name SettingsDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carloghq/carlog-api/models"
)

const settingsName = "settings"

// SettingsDatabase contains the methods to use with the settings database
type SettingsDatabase interface {
	Get(ctx context.Context) (*models.UserSettings, error)
	Upsert(ctx context.Context, settings models.UserSettings) error
}

type settingsDatabase struct {
	db DatabaseHelper
}

// NewSettingsDatabase initializes a new instance of settings database with the provided db connection
func NewSettingsDatabase(db DatabaseHelper) SettingsDatabase {
	return &settingsDatabase{
		db: db,
	}
}

func (c *settingsDatabase) Get(ctx context.Context) (*models.UserSettings, error) {
	settings := &models.UserSettings{}
	err := c.db.Collection(settingsName).FindOne(ctx, bson.M{"_id": models.SettingsID}).Decode(&settings)
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func (c *settingsDatabase) Upsert(ctx context.Context, settings models.UserSettings) error {
	settings.ID = models.SettingsID
	return c.db.Collection(settingsName).UpdateOne(ctx,
		bson.M{"_id": models.SettingsID},
		bson.M{"$set": settings},
		options.Update().SetUpsert(true),
	)
}
