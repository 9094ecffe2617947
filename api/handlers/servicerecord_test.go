package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/carloghq/carlog-api/api/handlers"
	"github.com/carloghq/carlog-api/databases/mocks"
	"github.com/carloghq/carlog-api/models"
)

func completeRequestFor(t *testing.T, id primitive.ObjectID, body map[string]interface{}) *http.Request {
	b, _ := json.Marshal(body)
	req, err := http.NewRequest("POST", "/api/v1/vehicle/"+testVIN+"/intervals/"+id.Hex()+"/complete", bytes.NewBuffer(b))
	if err != nil {
		t.Fatal(err)
	}
	return mux.SetURLVars(req, map[string]string{"vin": testVIN, "interval_id": id.Hex()})
}

func TestServiceRecord_CompleteIntervalHandler(t *testing.T) {
	id := primitive.NewObjectID()
	req := completeRequestFor(t, id, map[string]interface{}{
		"date":     "2026-03-15",
		"mileage":  45200,
		"cost":     49.99,
		"shopName": "Joe's Garage",
	})

	miles := 5000
	last := 40000
	interval := &models.MaintenanceInterval{
		ID:                   id,
		VIN:                  testVIN,
		ServiceType:          "Oil Change",
		IntervalMiles:        &miles,
		LastPerformedMileage: &last,
	}

	vdb := &mocks.VehicleDatabase{}
	idb := &mocks.IntervalDatabase{}
	rdb := &mocks.ServiceRecordDatabase{}
	mdb := &mocks.MileageDatabase{}

	vdb.On("FindOne", mock.Anything, mock.Anything).Return(testVehicle(45000), nil)
	idb.On("FindOne", mock.Anything, mock.Anything).Return(interval, nil)
	idb.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	rdb.On("InsertOne", mock.Anything, mock.MatchedBy(func(record models.ServiceRecord) bool {
		return record.VIN == testVIN && record.ServiceType == "Oil Change" && record.Mileage == 45200 && record.Cost == 49.99
	})).Return(nil)
	vdb.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mdb.On("InsertOne", mock.Anything, mock.Anything).Return(nil)

	s := handlers.ServiceRecord{DB: rdb, IDB: idb, VDB: vdb, MDB: mdb}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(s.CompleteIntervalHandler)

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var record models.ServiceRecord
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &record))
	assert.Equal(t, testVIN, record.VIN)
	assert.Equal(t, id, record.IntervalID)
	assert.Equal(t, 45200, record.Mileage)

	// The reading was above the odometer, so the vehicle and its mileage
	// history were updated too
	vdb.AssertCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything)
	mdb.AssertNumberOfCalls(t, "InsertOne", 1)
	rdb.AssertExpectations(t)
}

func TestServiceRecord_CompleteIntervalHandlerMileageRegression(t *testing.T) {
	id := primitive.NewObjectID()
	req := completeRequestFor(t, id, map[string]interface{}{"mileage": 30000})

	miles := 5000
	last := 40000
	interval := &models.MaintenanceInterval{
		ID:                   id,
		VIN:                  testVIN,
		ServiceType:          "Oil Change",
		IntervalMiles:        &miles,
		LastPerformedMileage: &last,
	}

	vdb := &mocks.VehicleDatabase{}
	idb := &mocks.IntervalDatabase{}
	vdb.On("FindOne", mock.Anything, mock.Anything).Return(testVehicle(45000), nil)
	idb.On("FindOne", mock.Anything, mock.Anything).Return(interval, nil)

	s := handlers.ServiceRecord{DB: &mocks.ServiceRecordDatabase{}, IDB: idb, VDB: vdb, MDB: &mocks.MileageDatabase{}}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(s.CompleteIntervalHandler)

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)

	expected, _ := json.Marshal(models.ErrorMessageResponse{Response: models.MessageError{
		Message: "invalid service completion",
		Error:   "mileage: must not be below the last recorded service at 40000 miles",
	}})
	assert.Equal(t, string(expected), rr.Body.String())
	// Nothing was persisted for the rejected completion
	idb.AssertNotCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything)
}

func TestServiceRecord_CompleteIntervalHandlerIntervalNotFound(t *testing.T) {
	id := primitive.NewObjectID()
	req := completeRequestFor(t, id, map[string]interface{}{"mileage": 45200})

	vdb := &mocks.VehicleDatabase{}
	idb := &mocks.IntervalDatabase{}
	vdb.On("FindOne", mock.Anything, mock.Anything).Return(testVehicle(45000), nil)
	idb.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments)

	s := handlers.ServiceRecord{DB: &mocks.ServiceRecordDatabase{}, IDB: idb, VDB: vdb}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(s.CompleteIntervalHandler)

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)

	expected, _ := json.Marshal(models.ErrorMessageResponse{Response: models.MessageError{
		Message: "failed to get interval by ID",
		Error:   mongo.ErrNoDocuments.Error(),
	}})
	assert.Equal(t, string(expected), rr.Body.String())
}

func TestServiceRecord_CompleteIntervalHandlerBadDate(t *testing.T) {
	id := primitive.NewObjectID()
	req := completeRequestFor(t, id, map[string]interface{}{"date": "next tuesday", "mileage": 45200})

	s := handlers.ServiceRecord{DB: &mocks.ServiceRecordDatabase{}, IDB: &mocks.IntervalDatabase{}, VDB: &mocks.VehicleDatabase{}}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(s.CompleteIntervalHandler)

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestServiceRecord_RecordsByVehicleHandler(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/vehicle/"+testVIN+"/records", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"vin": testVIN})

	rdb := &mocks.ServiceRecordDatabase{}
	rdb.On("Find", mock.Anything, mock.Anything, mock.Anything).Return([]models.ServiceRecord{
		{VIN: testVIN, ServiceType: "Oil Change", Mileage: 45200},
	}, nil)

	s := handlers.ServiceRecord{DB: rdb}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(s.RecordsByVehicleHandler)

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp []models.ServiceRecord
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
	assert.Equal(t, "Oil Change", resp[0].ServiceType)
}

func TestServiceRecord_RecordsByVehicleHandlerEmptyResult(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/vehicle/"+testVIN+"/records", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"vin": testVIN})

	rdb := &mocks.ServiceRecordDatabase{}
	rdb.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	s := handlers.ServiceRecord{DB: rdb}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(s.RecordsByVehicleHandler)

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", rr.Body.String())
}
