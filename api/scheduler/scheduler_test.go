package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/carloghq/carlog-api/databases/mocks"
	"github.com/carloghq/carlog-api/models"
)

const testVIN = "1HGBH41JXMN109186"

func intPtr(v int) *int { return &v }

func TestCollectReminderItems(t *testing.T) {
	vdb := &mocks.VehicleDatabase{}
	idb := &mocks.IntervalDatabase{}

	vdb.On("Find", mock.Anything, mock.Anything).Return([]models.Vehicle{
		{
			VIN: testVIN,
			Details: models.VehicleDetails{
				Year:           2021,
				Make:           "Honda",
				Model:          "Civic",
				CurrentMileage: 45200,
			},
		},
	}, nil)
	idb.On("Find", mock.Anything, mock.Anything).Return([]models.MaintenanceInterval{
		{VIN: testVIN, ServiceType: "Oil Change", NextDueMileage: intPtr(45000)},
		{VIN: testVIN, ServiceType: "Tire Rotation", NextDueMileage: intPtr(45500)},
		{VIN: testVIN, ServiceType: "Brake Inspection", NextDueMileage: intPtr(60000)},
		{VIN: testVIN, ServiceType: "Inspect Suspension"},
	}, nil)

	s := NewScheduler(vdb, idb, &mocks.SettingsDatabase{}, &mocks.SchedulerLockDatabase{}, 500)

	items, err := s.collectReminderItems(context.Background(), 500)
	assert.NoError(t, err)

	// Only the overdue and due-soon intervals make the digest
	assert.Len(t, items, 2)
	assert.Equal(t, "Oil Change", items[0].ServiceType)
	assert.Equal(t, "overdue", items[0].Status)
	assert.Equal(t, -200, *items[0].MilesUntil)
	assert.Equal(t, "2021 Honda Civic", items[0].VehicleName)

	assert.Equal(t, "Tire Rotation", items[1].ServiceType)
	assert.Equal(t, "due_soon", items[1].Status)
	assert.Equal(t, 300, *items[1].MilesUntil)
}

func TestCollectReminderItemsSkipsVehicleOnError(t *testing.T) {
	vdb := &mocks.VehicleDatabase{}
	idb := &mocks.IntervalDatabase{}

	vdb.On("Find", mock.Anything, mock.Anything).Return([]models.Vehicle{
		{VIN: testVIN, Details: models.VehicleDetails{CurrentMileage: 45200}},
	}, nil)
	idb.On("Find", mock.Anything, mock.Anything).Return(nil, mongo.ErrClientDisconnected)

	s := NewScheduler(vdb, idb, &mocks.SettingsDatabase{}, &mocks.SchedulerLockDatabase{}, 500)

	items, err := s.collectReminderItems(context.Background(), 500)
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestSendMaintenanceRemindersLockNotAcquired(t *testing.T) {
	sdb := &mocks.SettingsDatabase{}
	lockDB := &mocks.SchedulerLockDatabase{}

	lockDB.On("TryAcquireLock", mock.Anything, "maintenance_reminder_job", mock.Anything, mock.Anything).Return(false, nil)

	s := NewScheduler(&mocks.VehicleDatabase{}, &mocks.IntervalDatabase{}, sdb, lockDB, 500)

	s.sendMaintenanceReminders()

	// Another instance holds the lock, so this one does nothing
	sdb.AssertNotCalled(t, "Get", mock.Anything)
	lockDB.AssertNotCalled(t, "ReleaseLock", mock.Anything, mock.Anything, mock.Anything)
}

func TestSendMaintenanceRemindersNoSettings(t *testing.T) {
	vdb := &mocks.VehicleDatabase{}
	sdb := &mocks.SettingsDatabase{}
	lockDB := &mocks.SchedulerLockDatabase{}

	lockDB.On("TryAcquireLock", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	lockDB.On("ReleaseLock", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	sdb.On("Get", mock.Anything).Return(nil, mongo.ErrNoDocuments)

	s := NewScheduler(vdb, &mocks.IntervalDatabase{}, sdb, lockDB, 500)

	s.sendMaintenanceReminders()

	vdb.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
	lockDB.AssertCalled(t, "ReleaseLock", mock.Anything, "maintenance_reminder_job", mock.Anything)
}

func TestSendMaintenanceRemindersEmailDisabled(t *testing.T) {
	vdb := &mocks.VehicleDatabase{}
	sdb := &mocks.SettingsDatabase{}
	lockDB := &mocks.SchedulerLockDatabase{}

	lockDB.On("TryAcquireLock", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	lockDB.On("ReleaseLock", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	sdb.On("Get", mock.Anything).Return(&models.UserSettings{
		ID:                 models.SettingsID,
		DueSoonWindowMiles: 500,
		EmailEnabled:       false,
	}, nil)

	s := NewScheduler(vdb, &mocks.IntervalDatabase{}, sdb, lockDB, 500)

	s.sendMaintenanceReminders()

	vdb.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
}

func TestSendMaintenanceRemindersNothingDue(t *testing.T) {
	vdb := &mocks.VehicleDatabase{}
	sdb := &mocks.SettingsDatabase{}
	lockDB := &mocks.SchedulerLockDatabase{}

	lockDB.On("TryAcquireLock", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	lockDB.On("ReleaseLock", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	sdb.On("Get", mock.Anything).Return(&models.UserSettings{
		ID:                 models.SettingsID,
		DueSoonWindowMiles: 500,
		ReminderEmail:      "driver@example.com",
		EmailEnabled:       true,
	}, nil)
	vdb.On("Find", mock.Anything, mock.Anything).Return([]models.Vehicle{}, nil)

	s := NewScheduler(vdb, &mocks.IntervalDatabase{}, sdb, lockDB, 500)

	// With nothing due the job exits before reaching the mail client
	s.sendMaintenanceReminders()

	vdb.AssertCalled(t, "Find", mock.Anything, mock.Anything)
}
