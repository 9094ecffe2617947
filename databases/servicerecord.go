package databases

//go generate: mockery --name ServiceRecordDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carloghq/carlog-api/models"
)

const serviceRecordName = "serviceRecords"

// ServiceRecordDatabase contains the methods to use with the service record database
type ServiceRecordDatabase interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.ServiceRecord, error)
	InsertOne(ctx context.Context, record models.ServiceRecord) error
	DeleteMany(ctx context.Context, filter interface{}) error
}

type serviceRecordDatabase struct {
	db DatabaseHelper
}

// NewServiceRecordDatabase initializes a new instance of service record database with the provided db connection
func NewServiceRecordDatabase(db DatabaseHelper) ServiceRecordDatabase {
	return &serviceRecordDatabase{
		db: db,
	}
}

func (c *serviceRecordDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.ServiceRecord, error) {
	var records []models.ServiceRecord
	err := c.db.Collection(serviceRecordName).Find(ctx, filter, opts...).Decode(&records)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (c *serviceRecordDatabase) InsertOne(ctx context.Context, record models.ServiceRecord) error {
	_, err := c.db.Collection(serviceRecordName).InsertOne(ctx, record)
	return err
}

func (c *serviceRecordDatabase) DeleteMany(ctx context.Context, filter interface{}) error {
	return c.db.Collection(serviceRecordName).DeleteMany(ctx, filter)
}
