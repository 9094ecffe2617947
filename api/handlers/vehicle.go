package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/carloghq/carlog-api/api"
	"github.com/carloghq/carlog-api/config"
	"github.com/carloghq/carlog-api/databases"
	"github.com/carloghq/carlog-api/maintenance"
	"github.com/carloghq/carlog-api/models"
	"github.com/carloghq/carlog-api/vin"
)

// Vehicle exported for testing purposes
type Vehicle struct {
	DB            databases.VehicleDatabase
	IDB           databases.IntervalDatabase
	RDB           databases.ServiceRecordDatabase
	MDB           databases.MileageDatabase
	FDB           databases.FuelLogDatabase
	SDB           databases.SettingsDatabase
	DefaultWindow int
}

// VehicleHandler returns all vehicles
func (v Vehicle) VehicleHandler(w http.ResponseWriter, r *http.Request) {
	Limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		zap.S().Warnf(fmt.Sprintf("limit not set, using default of %v, err: %v", Limit|10, err))
	}
	limit64 := int64(Limit)
	Page = getPage(Page, r)
	skip64 := int64(Page * Limit)
	dbResp, err := v.DB.Find(context.TODO(), bson.D{}, &options.FindOptions{Limit: &limit64, Skip: &skip64})
	if err != nil {
		config.ErrorStatus("failed to get vehicles", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Vehicle{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// VehicleByVINHandler returns a vehicle by VIN
func (v Vehicle) VehicleByVINHandler(w http.ResponseWriter, r *http.Request) {
	vinID := vin.Normalize(mux.Vars(r)["vin"])

	zap.S().Debugf("vin: %v", vinID)

	if err := vin.Validate(vinID); err != nil {
		config.ErrorStatus("invalid vin format", http.StatusBadRequest, w, err)
		return
	}

	dbResp, err := v.DB.FindOne(context.Background(), bson.M{"_id": vinID})
	if err != nil {
		config.ErrorStatus("failed to get vehicle by VIN", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// VehicleSearchHandler returns a paginated list of vehicles matching the
// search term against VIN, make, or model
func (v Vehicle) VehicleSearchHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	Limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		zap.S().Warnf(fmt.Sprintf("limit not set, using default of %v", Limit|10))
	}
	limit64 := int64(Limit)
	Page = getPage(Page, r)
	skip64 := int64(Page * Limit)

	zap.S().Debugf("q: '%v'", query)

	dbResp, err := v.DB.Find(context.TODO(), bson.M{
		"$or": []bson.M{
			{"_id": bson.M{"$regex": query, "$options": "i"}},
			{"vehicle.make": bson.M{"$regex": query, "$options": "i"}},
			{"vehicle.model": bson.M{"$regex": query, "$options": "i"}},
		},
	}, &options.FindOptions{Limit: &limit64, Skip: &skip64})
	if err != nil {
		config.ErrorStatus("failed to search vehicles", http.StatusNotFound, w, err)
		return
	}

	if len(dbResp) == 0 {
		dbResp = []models.Vehicle{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// createVehicleRequest is the POST /vehicle body: the vehicle details plus
// the VIN that keys them
type createVehicleRequest struct {
	VIN string `json:"vin"`
	models.VehicleDetails
}

// CreateVehicleHandler creates a vehicle and seeds its default maintenance
// schedule
func (v Vehicle) CreateVehicleHandler(w http.ResponseWriter, r *http.Request) {
	var req createVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	vinID := vin.Normalize(req.VIN)
	if err := vin.Validate(vinID); err != nil {
		config.ErrorStatus("invalid vin format", http.StatusBadRequest, w, err)
		return
	}
	if req.CurrentMileage < 0 {
		config.ErrorStatus("mileage must not be negative", http.StatusBadRequest, w, fmt.Errorf("got %d", req.CurrentMileage))
		return
	}

	if _, err := v.DB.FindOne(context.Background(), bson.M{"_id": vinID}); err == nil {
		config.ErrorStatus("vehicle already exists", http.StatusConflict, w, fmt.Errorf("vin %s is already in the garage", vinID))
		return
	}

	now := time.Now()
	vehicle := models.Vehicle{VIN: vinID, Details: req.VehicleDetails}
	vehicle.Details.CreatedAt = primitive.NewDateTimeFromTime(now)
	vehicle.Details.UpdatedAt = vehicle.Details.CreatedAt

	if err := v.DB.InsertOne(context.Background(), vehicle); err != nil {
		config.ErrorStatus("failed to create vehicle", http.StatusInternalServerError, w, err)
		return
	}

	// Seed the default maintenance schedule. A failed seed leaves a usable
	// vehicle, so log and continue.
	for _, interval := range maintenance.DefaultIntervals(vinID, now) {
		if err := v.IDB.InsertOne(context.Background(), interval); err != nil {
			zap.S().Errorw("failed to seed default interval", "vin", vinID, "serviceType", interval.ServiceType, "error", err)
		}
	}

	if vehicle.Details.CurrentMileage > 0 {
		entry := models.MileageEntry{
			ID:        primitive.NewObjectID(),
			VIN:       vinID,
			Mileage:   vehicle.Details.CurrentMileage,
			Date:      now,
			Source:    "initial",
			CreatedAt: primitive.NewDateTimeFromTime(now),
		}
		if err := v.MDB.InsertOne(context.Background(), entry); err != nil {
			zap.S().Errorw("failed to record initial mileage", "vin", vinID, "error", err)
		}
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Vehicle created successfully",
		"vin":     vinID,
	})
}

// UpdateVehicleHandler updates a vehicle's details. The odometer and the
// creation timestamp are carried forward; mileage changes go through the
// mileage endpoint so history stays consistent.
func (v Vehicle) UpdateVehicleHandler(w http.ResponseWriter, r *http.Request) {
	vinID := vin.Normalize(mux.Vars(r)["vin"])

	if err := vin.Validate(vinID); err != nil {
		config.ErrorStatus("invalid vin format", http.StatusBadRequest, w, err)
		return
	}

	existing, err := v.DB.FindOne(context.Background(), bson.M{"_id": vinID})
	if err != nil {
		config.ErrorStatus("failed to get vehicle by VIN", http.StatusNotFound, w, err)
		return
	}

	var details models.VehicleDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	details.CurrentMileage = existing.Details.CurrentMileage
	details.CreatedAt = existing.Details.CreatedAt
	details.UpdatedAt = primitive.NewDateTimeFromTime(time.Now())

	err = v.DB.UpdateOne(context.Background(), bson.M{"_id": vinID}, bson.M{"$set": bson.M{"vehicle": details}})
	if err != nil {
		config.ErrorStatus("failed to update vehicle", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Vehicle updated successfully",
	})
}

// DeleteVehicleHandler deletes a vehicle by VIN along with its intervals,
// service records, mileage history, and fuel logs
func (v Vehicle) DeleteVehicleHandler(w http.ResponseWriter, r *http.Request) {
	vinID := vin.Normalize(mux.Vars(r)["vin"])

	if err := vin.Validate(vinID); err != nil {
		config.ErrorStatus("invalid vin format", http.StatusBadRequest, w, err)
		return
	}

	if _, err := v.DB.FindOne(context.Background(), bson.M{"_id": vinID}); err != nil {
		config.ErrorStatus("failed to get vehicle by VIN", http.StatusNotFound, w, err)
		return
	}

	if err := v.DB.DeleteOne(context.Background(), bson.M{"_id": vinID}); err != nil {
		config.ErrorStatus("failed to delete vehicle", http.StatusInternalServerError, w, err)
		return
	}

	// Cascade the dependents. Orphans are harmless but confusing, so log
	// failures and keep going.
	byVIN := bson.M{"vin": vinID}
	if err := v.IDB.DeleteMany(context.Background(), byVIN); err != nil {
		zap.S().Errorw("failed to delete intervals for vehicle", "vin", vinID, "error", err)
	}
	if err := v.RDB.DeleteMany(context.Background(), byVIN); err != nil {
		zap.S().Errorw("failed to delete service records for vehicle", "vin", vinID, "error", err)
	}
	if err := v.MDB.DeleteMany(context.Background(), byVIN); err != nil {
		zap.S().Errorw("failed to delete mileage history for vehicle", "vin", vinID, "error", err)
	}
	if err := v.FDB.DeleteMany(context.Background(), byVIN); err != nil {
		zap.S().Errorw("failed to delete fuel logs for vehicle", "vin", vinID, "error", err)
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Vehicle deleted successfully",
	})
}

// updateMileageRequest is the PUT /vehicle/{vin}/mileage body
type updateMileageRequest struct {
	Mileage int    `json:"mileage"`
	Notes   string `json:"notes,omitempty"`
}

// UpdateMileageHandler records a new odometer reading. Readings below the
// current odometer are rejected; the odometer never runs backwards.
func (v Vehicle) UpdateMileageHandler(w http.ResponseWriter, r *http.Request) {
	vinID := vin.Normalize(mux.Vars(r)["vin"])

	if err := vin.Validate(vinID); err != nil {
		config.ErrorStatus("invalid vin format", http.StatusBadRequest, w, err)
		return
	}

	var req updateMileageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.Mileage <= 0 {
		config.ErrorStatus("mileage must be greater than zero", http.StatusBadRequest, w, fmt.Errorf("got %d", req.Mileage))
		return
	}

	vehicle, err := v.DB.FindOne(context.Background(), bson.M{"_id": vinID})
	if err != nil {
		config.ErrorStatus("failed to get vehicle by VIN", http.StatusNotFound, w, err)
		return
	}
	if req.Mileage < vehicle.Details.CurrentMileage {
		config.ErrorStatus("mileage must not be below the current odometer", http.StatusBadRequest, w,
			fmt.Errorf("got %d, current odometer is %d", req.Mileage, vehicle.Details.CurrentMileage))
		return
	}

	now := time.Now()
	err = v.DB.UpdateOne(context.Background(), bson.M{"_id": vinID}, bson.M{"$set": bson.M{
		"vehicle.currentMileage": req.Mileage,
		"vehicle.updatedAt":      primitive.NewDateTimeFromTime(now),
	}})
	if err != nil {
		config.ErrorStatus("failed to update mileage", http.StatusInternalServerError, w, err)
		return
	}

	entry := models.MileageEntry{
		ID:        primitive.NewObjectID(),
		VIN:       vinID,
		Mileage:   req.Mileage,
		Date:      now,
		Source:    "manual",
		Notes:     req.Notes,
		CreatedAt: primitive.NewDateTimeFromTime(now),
	}
	if err := v.MDB.InsertOne(context.Background(), entry); err != nil {
		zap.S().Errorw("failed to record mileage history entry", "vin", vinID, "error", err)
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Mileage updated successfully",
		"mileage": req.Mileage,
	})
}

// MileageHistoryHandler returns the mileage history for a vehicle, newest
// first
func (v Vehicle) MileageHistoryHandler(w http.ResponseWriter, r *http.Request) {
	vinID := vin.Normalize(mux.Vars(r)["vin"])
	Limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		zap.S().Warnf(fmt.Sprintf("limit not set, using default of %v", Limit|10))
	}
	limit64 := int64(Limit)
	Page = getPage(Page, r)
	skip64 := int64(Page * Limit)

	if err := vin.Validate(vinID); err != nil {
		config.ErrorStatus("invalid vin format", http.StatusBadRequest, w, err)
		return
	}

	dbResp, err := v.MDB.Find(context.TODO(), bson.M{"vin": vinID}, &options.FindOptions{
		Limit: &limit64,
		Skip:  &skip64,
		Sort:  bson.M{"date": -1},
	})
	if err != nil {
		config.ErrorStatus("failed to get mileage history", http.StatusNotFound, w, err)
		return
	}

	if len(dbResp) == 0 {
		dbResp = []models.MileageEntry{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// vehicleSummary is the GET /vehicle/{vin}/summary response
type vehicleSummary struct {
	Vehicle          models.Vehicle           `json:"vehicle"`
	IntervalsByState map[models.DueStatus]int `json:"intervalsByStatus"`
	ServiceRecords   int                      `json:"serviceRecords"`
	TotalServiceCost float64                  `json:"totalServiceCost"`
	FuelLogs         int                      `json:"fuelLogs"`
	TotalFuelCost    float64                  `json:"totalFuelCost"`
}

// VehicleSummaryHandler returns a vehicle with its maintenance and spending
// rollup
func (v Vehicle) VehicleSummaryHandler(w http.ResponseWriter, r *http.Request) {
	vinID := vin.Normalize(mux.Vars(r)["vin"])

	if err := vin.Validate(vinID); err != nil {
		config.ErrorStatus("invalid vin format", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	vehicle, err := v.DB.FindOne(ctx, bson.M{"_id": vinID})
	if err != nil {
		config.ErrorStatus("failed to get vehicle by VIN", http.StatusNotFound, w, err)
		return
	}

	intervals, err := v.IDB.Find(ctx, bson.M{"vin": vinID})
	if err != nil && err != mongo.ErrNoDocuments {
		config.ErrorStatus("failed to get intervals", http.StatusInternalServerError, w, err)
		return
	}

	window := dueSoonWindow(ctx, v.SDB, v.DefaultWindow)
	now := time.Now()
	byStatus := map[models.DueStatus]int{
		models.StatusOverdue: 0,
		models.StatusDueSoon: 0,
		models.StatusOk:      0,
		models.StatusUnknown: 0,
	}
	for i := range intervals {
		byStatus[maintenance.Classify(intervals[i], vehicle.Details.CurrentMileage, now, window)]++
	}

	summary := vehicleSummary{
		Vehicle:          *vehicle,
		IntervalsByState: byStatus,
	}

	records, err := v.RDB.Find(ctx, bson.M{"vin": vinID})
	if err == nil {
		summary.ServiceRecords = len(records)
		for i := range records {
			summary.TotalServiceCost += records[i].Cost
		}
	}
	fuelLogs, err := v.FDB.Find(ctx, bson.M{"vin": vinID})
	if err == nil {
		summary.FuelLogs = len(fuelLogs)
		for i := range fuelLogs {
			summary.TotalFuelCost += fuelLogs[i].TotalCost
		}
	}

	b, err := json.Marshal(summary)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
