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

func TestInterval_IntervalsByVehicleHandler(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/vehicle/"+testVIN+"/intervals", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"vin": testVIN})

	vdb := &mocks.VehicleDatabase{}
	idb := &mocks.IntervalDatabase{}
	sdb := &mocks.SettingsDatabase{}

	miles := 5000
	last := 40000
	vdb.On("FindOne", mock.Anything, mock.Anything).Return(testVehicle(44800), nil)
	idb.On("Find", mock.Anything, mock.Anything).Return([]models.MaintenanceInterval{
		{ID: primitive.NewObjectID(), VIN: testVIN, ServiceType: "Oil Change", IntervalMiles: &miles, LastPerformedMileage: &last},
		{ID: primitive.NewObjectID(), VIN: testVIN, ServiceType: "Inspect Suspension"},
	}, nil)
	sdb.On("Get", mock.Anything).Return(nil, mongo.ErrNoDocuments)

	i := handlers.Interval{DB: idb, VDB: vdb, SDB: sdb, DefaultWindow: 500}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(i.IntervalsByVehicleHandler)

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp []struct {
		ServiceType   string `json:"serviceType"`
		Status        string `json:"status"`
		MilesUntilDue *int   `json:"milesUntilDue"`
	}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)

	// Due at 45000, odometer at 44800, window 500: inside the window
	assert.Equal(t, "Oil Change", resp[0].ServiceType)
	assert.Equal(t, "due_soon", resp[0].Status)
	assert.NotNil(t, resp[0].MilesUntilDue)
	assert.Equal(t, 200, *resp[0].MilesUntilDue)

	// No recurrence and no last-performed markers
	assert.Equal(t, "unknown", resp[1].Status)
	assert.Nil(t, resp[1].MilesUntilDue)
}

func TestInterval_IntervalsByVehicleHandlerVehicleNotFound(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/vehicle/"+testVIN+"/intervals", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"vin": testVIN})

	vdb := &mocks.VehicleDatabase{}
	vdb.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments)

	i := handlers.Interval{DB: &mocks.IntervalDatabase{}, VDB: vdb}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(i.IntervalsByVehicleHandler)

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestInterval_CreateIntervalHandler(t *testing.T) {
	miles := 30000
	body, _ := json.Marshal(map[string]interface{}{
		"serviceType":   "Transmission Fluid",
		"intervalMiles": miles,
		"notes":         "dealer recommendation",
	})
	req, err := http.NewRequest("POST", "/api/v1/vehicle/"+testVIN+"/intervals", bytes.NewBuffer(body))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"vin": testVIN})

	vdb := &mocks.VehicleDatabase{}
	idb := &mocks.IntervalDatabase{}
	vdb.On("FindOne", mock.Anything, mock.Anything).Return(testVehicle(45000), nil)
	idb.On("InsertOne", mock.Anything, mock.MatchedBy(func(interval models.MaintenanceInterval) bool {
		return interval.VIN == testVIN && interval.ServiceType == "Transmission Fluid" && interval.Custom
	})).Return(nil)

	i := handlers.Interval{DB: idb, VDB: vdb}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(i.CreateIntervalHandler)

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["id"])
	idb.AssertExpectations(t)
}

func TestInterval_CreateIntervalHandlerMissingServiceType(t *testing.T) {
	body, _ := json.Marshal(map[string]interface{}{"intervalMiles": 30000})
	req, err := http.NewRequest("POST", "/api/v1/vehicle/"+testVIN+"/intervals", bytes.NewBuffer(body))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"vin": testVIN})

	vdb := &mocks.VehicleDatabase{}
	vdb.On("FindOne", mock.Anything, mock.Anything).Return(testVehicle(45000), nil)

	i := handlers.Interval{DB: &mocks.IntervalDatabase{}, VDB: vdb}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(i.CreateIntervalHandler)

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)

	expected, _ := json.Marshal(models.ErrorMessageResponse{Response: models.MessageError{
		Message: "serviceType is required",
		Error:   "missing serviceType",
	}})
	assert.Equal(t, string(expected), rr.Body.String())
}

func TestInterval_CreateIntervalHandlerNonPositiveRecurrence(t *testing.T) {
	body, _ := json.Marshal(map[string]interface{}{"serviceType": "Oil Change", "intervalMiles": 0})
	req, err := http.NewRequest("POST", "/api/v1/vehicle/"+testVIN+"/intervals", bytes.NewBuffer(body))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"vin": testVIN})

	vdb := &mocks.VehicleDatabase{}
	vdb.On("FindOne", mock.Anything, mock.Anything).Return(testVehicle(45000), nil)

	i := handlers.Interval{DB: &mocks.IntervalDatabase{}, VDB: vdb}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(i.CreateIntervalHandler)

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestInterval_UpdateIntervalHandlerBadObjectID(t *testing.T) {
	body, _ := json.Marshal(map[string]interface{}{"serviceType": "Oil Change"})
	req, err := http.NewRequest("PUT", "/api/v1/intervals/1234", bytes.NewBuffer(body))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"interval_id": "1234"})

	i := handlers.Interval{DB: &mocks.IntervalDatabase{}}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(i.UpdateIntervalHandler)

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)

	expected, _ := json.Marshal(models.ErrorMessageResponse{Response: models.MessageError{
		Message: "failed to get objectID from Hex",
		Error:   "the provided hex string is not a valid ObjectID",
	}})
	assert.Equal(t, string(expected), rr.Body.String())
}

func TestInterval_UpdateIntervalHandlerNotFound(t *testing.T) {
	id := primitive.NewObjectID()
	body, _ := json.Marshal(map[string]interface{}{"serviceType": "Oil Change"})
	req, err := http.NewRequest("PUT", "/api/v1/intervals/"+id.Hex(), bytes.NewBuffer(body))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"interval_id": id.Hex()})

	idb := &mocks.IntervalDatabase{}
	idb.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments)

	i := handlers.Interval{DB: idb}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(i.UpdateIntervalHandler)

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestInterval_DeleteIntervalHandler(t *testing.T) {
	id := primitive.NewObjectID()
	req, err := http.NewRequest("DELETE", "/api/v1/intervals/"+id.Hex(), nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"interval_id": id.Hex()})

	idb := &mocks.IntervalDatabase{}
	idb.On("DeleteOne", mock.Anything, mock.Anything).Return(nil)

	i := handlers.Interval{DB: idb}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(i.DeleteIntervalHandler)

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
