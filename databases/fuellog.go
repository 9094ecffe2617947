package databases

//go generate: mockery --name FuelLogDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carloghq/carlog-api/models"
)

const fuelLogName = "fuelLogs"

// FuelLogDatabase contains the methods to use with the fuel log database
type FuelLogDatabase interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.FuelLog, error)
	InsertOne(ctx context.Context, log models.FuelLog) error
	DeleteMany(ctx context.Context, filter interface{}) error
}

type fuelLogDatabase struct {
	db DatabaseHelper
}

// NewFuelLogDatabase initializes a new instance of fuel log database with the provided db connection
func NewFuelLogDatabase(db DatabaseHelper) FuelLogDatabase {
	return &fuelLogDatabase{
		db: db,
	}
}

func (c *fuelLogDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.FuelLog, error) {
	var logs []models.FuelLog
	err := c.db.Collection(fuelLogName).Find(ctx, filter, opts...).Decode(&logs)
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (c *fuelLogDatabase) InsertOne(ctx context.Context, log models.FuelLog) error {
	_, err := c.db.Collection(fuelLogName).InsertOne(ctx, log)
	return err
}

func (c *fuelLogDatabase) DeleteMany(ctx context.Context, filter interface{}) error {
	return c.db.Collection(fuelLogName).DeleteMany(ctx, filter)
}
