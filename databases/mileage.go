package databases

//go generate: mockery --name MileageDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carloghq/carlog-api/models"
)

const mileageName = "mileageHistory"

// MileageDatabase contains the methods to use with the mileage history database
type MileageDatabase interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.MileageEntry, error)
	InsertOne(ctx context.Context, entry models.MileageEntry) error
	DeleteMany(ctx context.Context, filter interface{}) error
}

type mileageDatabase struct {
	db DatabaseHelper
}

// NewMileageDatabase initializes a new instance of mileage database with the provided db connection
func NewMileageDatabase(db DatabaseHelper) MileageDatabase {
	return &mileageDatabase{
		db: db,
	}
}

func (c *mileageDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.MileageEntry, error) {
	var entries []models.MileageEntry
	err := c.db.Collection(mileageName).Find(ctx, filter, opts...).Decode(&entries)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *mileageDatabase) InsertOne(ctx context.Context, entry models.MileageEntry) error {
	_, err := c.db.Collection(mileageName).InsertOne(ctx, entry)
	return err
}

func (c *mileageDatabase) DeleteMany(ctx context.Context, filter interface{}) error {
	return c.db.Collection(mileageName).DeleteMany(ctx, filter)
}
