package databases

//go generate: mockery --name IntervalDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carloghq/carlog-api/models"
)

const intervalName = "maintenanceIntervals"

// IntervalDatabase contains the methods to use with the maintenance interval database
type IntervalDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.MaintenanceInterval, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.MaintenanceInterval, error)
	InsertOne(ctx context.Context, interval models.MaintenanceInterval) error
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) error
	DeleteOne(ctx context.Context, filter interface{}) error
	DeleteMany(ctx context.Context, filter interface{}) error
}

type intervalDatabase struct {
	db DatabaseHelper
}

// NewIntervalDatabase initializes a new instance of interval database with the provided db connection
func NewIntervalDatabase(db DatabaseHelper) IntervalDatabase {
	return &intervalDatabase{
		db: db,
	}
}

func (c *intervalDatabase) FindOne(ctx context.Context, filter interface{}) (*models.MaintenanceInterval, error) {
	interval := &models.MaintenanceInterval{}
	err := c.db.Collection(intervalName).FindOne(ctx, filter).Decode(&interval)
	if err != nil {
		return nil, err
	}
	return interval, nil
}

func (c *intervalDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.MaintenanceInterval, error) {
	var intervals []models.MaintenanceInterval
	err := c.db.Collection(intervalName).Find(ctx, filter, opts...).Decode(&intervals)
	if err != nil {
		return nil, err
	}
	return intervals, nil
}

func (c *intervalDatabase) InsertOne(ctx context.Context, interval models.MaintenanceInterval) error {
	_, err := c.db.Collection(intervalName).InsertOne(ctx, interval)
	return err
}

func (c *intervalDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}) error {
	return c.db.Collection(intervalName).UpdateOne(ctx, filter, update)
}

func (c *intervalDatabase) DeleteOne(ctx context.Context, filter interface{}) error {
	return c.db.Collection(intervalName).DeleteOne(ctx, filter)
}

func (c *intervalDatabase) DeleteMany(ctx context.Context, filter interface{}) error {
	return c.db.Collection(intervalName).DeleteMany(ctx, filter)
}
