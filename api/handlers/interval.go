package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/carloghq/carlog-api/config"
	"github.com/carloghq/carlog-api/databases"
	"github.com/carloghq/carlog-api/maintenance"
	"github.com/carloghq/carlog-api/models"
	"github.com/carloghq/carlog-api/vin"
)

// Interval exported for testing purposes
type Interval struct {
	DB            databases.IntervalDatabase
	VDB           databases.VehicleDatabase
	SDB           databases.SettingsDatabase
	DefaultWindow int
}

// intervalWithStatus enriches a stored interval with its computed due status
// for the owning vehicle's current odometer
type intervalWithStatus struct {
	models.MaintenanceInterval
	Status        models.DueStatus `json:"status"`
	MilesUntilDue *int             `json:"milesUntilDue,omitempty"`
}

// IntervalsByVehicleHandler returns a vehicle's maintenance intervals, each
// classified against the current odometer and today's date
func (i Interval) IntervalsByVehicleHandler(w http.ResponseWriter, r *http.Request) {
	vinID := vin.Normalize(mux.Vars(r)["vin"])

	if err := vin.Validate(vinID); err != nil {
		config.ErrorStatus("invalid vin format", http.StatusBadRequest, w, err)
		return
	}

	vehicle, err := i.VDB.FindOne(context.Background(), bson.M{"_id": vinID})
	if err != nil {
		config.ErrorStatus("failed to get vehicle by VIN", http.StatusNotFound, w, err)
		return
	}

	dbResp, err := i.DB.Find(context.TODO(), bson.M{"vin": vinID})
	if err != nil {
		config.ErrorStatus("failed to get intervals", http.StatusNotFound, w, err)
		return
	}

	window := dueSoonWindow(context.Background(), i.SDB, i.DefaultWindow)
	now := time.Now()
	enriched := make([]intervalWithStatus, 0, len(dbResp))
	for j := range dbResp {
		enriched = append(enriched, intervalWithStatus{
			MaintenanceInterval: dbResp[j],
			Status:              maintenance.Classify(dbResp[j], vehicle.Details.CurrentMileage, now, window),
			MilesUntilDue:       maintenance.MilesUntilDue(dbResp[j], vehicle.Details.CurrentMileage),
		})
	}

	b, err := json.Marshal(enriched)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// createIntervalRequest is the POST /vehicle/{vin}/intervals body
type createIntervalRequest struct {
	ServiceType    string     `json:"serviceType"`
	IntervalMiles  *int       `json:"intervalMiles,omitempty"`
	IntervalMonths *int       `json:"intervalMonths,omitempty"`
	NextDueMileage *int       `json:"nextDueMileage,omitempty"`
	NextDueDate    *time.Time `json:"nextDueDate,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}

// CreateIntervalHandler adds a custom maintenance interval to a vehicle
func (i Interval) CreateIntervalHandler(w http.ResponseWriter, r *http.Request) {
	vinID := vin.Normalize(mux.Vars(r)["vin"])

	if err := vin.Validate(vinID); err != nil {
		config.ErrorStatus("invalid vin format", http.StatusBadRequest, w, err)
		return
	}

	if _, err := i.VDB.FindOne(context.Background(), bson.M{"_id": vinID}); err != nil {
		config.ErrorStatus("failed to get vehicle by VIN", http.StatusNotFound, w, err)
		return
	}

	var req createIntervalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.ServiceType == "" {
		config.ErrorStatus("serviceType is required", http.StatusBadRequest, w, fmt.Errorf("missing serviceType"))
		return
	}
	if req.IntervalMiles != nil && *req.IntervalMiles <= 0 {
		config.ErrorStatus("intervalMiles must be greater than zero", http.StatusBadRequest, w, fmt.Errorf("got %d", *req.IntervalMiles))
		return
	}
	if req.IntervalMonths != nil && *req.IntervalMonths <= 0 {
		config.ErrorStatus("intervalMonths must be greater than zero", http.StatusBadRequest, w, fmt.Errorf("got %d", *req.IntervalMonths))
		return
	}

	now := time.Now()
	interval := models.MaintenanceInterval{
		ID:             primitive.NewObjectID(),
		VIN:            vinID,
		ServiceType:    req.ServiceType,
		IntervalMiles:  req.IntervalMiles,
		IntervalMonths: req.IntervalMonths,
		NextDueMileage: req.NextDueMileage,
		NextDueDate:    req.NextDueDate,
		Custom:         true,
		Notes:          req.Notes,
		CreatedAt:      primitive.NewDateTimeFromTime(now),
		UpdatedAt:      primitive.NewDateTimeFromTime(now),
	}

	if err := i.DB.InsertOne(context.Background(), interval); err != nil {
		config.ErrorStatus("failed to create interval", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Interval created successfully",
		"id":      interval.ID.Hex(),
	})
}

// UpdateIntervalHandler updates an interval's recurrence and notes
func (i Interval) UpdateIntervalHandler(w http.ResponseWriter, r *http.Request) {
	intervalID := mux.Vars(r)["interval_id"]

	iID, err := primitive.ObjectIDFromHex(intervalID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	if _, err := i.DB.FindOne(context.Background(), bson.M{"_id": iID}); err != nil {
		config.ErrorStatus("failed to get interval by ID", http.StatusNotFound, w, err)
		return
	}

	var req createIntervalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.ServiceType == "" {
		config.ErrorStatus("serviceType is required", http.StatusBadRequest, w, fmt.Errorf("missing serviceType"))
		return
	}
	if req.IntervalMiles != nil && *req.IntervalMiles <= 0 {
		config.ErrorStatus("intervalMiles must be greater than zero", http.StatusBadRequest, w, fmt.Errorf("got %d", *req.IntervalMiles))
		return
	}
	if req.IntervalMonths != nil && *req.IntervalMonths <= 0 {
		config.ErrorStatus("intervalMonths must be greater than zero", http.StatusBadRequest, w, fmt.Errorf("got %d", *req.IntervalMonths))
		return
	}

	err = i.DB.UpdateOne(context.Background(), bson.M{"_id": iID}, bson.M{"$set": bson.M{
		"serviceType":    req.ServiceType,
		"intervalMiles":  req.IntervalMiles,
		"intervalMonths": req.IntervalMonths,
		"nextDueMileage": req.NextDueMileage,
		"nextDueDate":    req.NextDueDate,
		"notes":          req.Notes,
		"updatedAt":      primitive.NewDateTimeFromTime(time.Now()),
	}})
	if err != nil {
		config.ErrorStatus("failed to update interval", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Interval updated successfully",
	})
}

// DeleteIntervalHandler deletes an interval by ID
func (i Interval) DeleteIntervalHandler(w http.ResponseWriter, r *http.Request) {
	intervalID := mux.Vars(r)["interval_id"]

	iID, err := primitive.ObjectIDFromHex(intervalID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	err = i.DB.DeleteOne(context.Background(), bson.M{"_id": iID})
	if err != nil {
		config.ErrorStatus("failed to delete interval", http.StatusInternalServerError, w, err)
		return
	}

	zap.S().Debugf("deleted interval %v", intervalID)

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Interval deleted successfully",
	})
}
