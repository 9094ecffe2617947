package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/carloghq/carlog-api/config"
	"github.com/carloghq/carlog-api/databases"
	"github.com/carloghq/carlog-api/maintenance"
	"github.com/carloghq/carlog-api/models"
	"github.com/carloghq/carlog-api/vin"
)

// ServiceRecord exported for testing purposes
type ServiceRecord struct {
	DB  databases.ServiceRecordDatabase
	IDB databases.IntervalDatabase
	VDB databases.VehicleDatabase
	MDB databases.MileageDatabase
}

// completeRequest is the POST .../complete body
type completeRequest struct {
	Date     string  `json:"date,omitempty"`
	Mileage  int     `json:"mileage"`
	Cost     float64 `json:"cost,omitempty"`
	ShopName string  `json:"shopName,omitempty"`
	Notes    string  `json:"notes,omitempty"`
}

// CompleteIntervalHandler records a completed service against an interval:
// the interval's schedule rolls forward, a service record is written, and
// the vehicle odometer is bumped when the reading is higher
func (s ServiceRecord) CompleteIntervalHandler(w http.ResponseWriter, r *http.Request) {
	vinID := vin.Normalize(mux.Vars(r)["vin"])
	intervalID := mux.Vars(r)["interval_id"]

	if err := vin.Validate(vinID); err != nil {
		config.ErrorStatus("invalid vin format", http.StatusBadRequest, w, err)
		return
	}
	iID, err := primitive.ObjectIDFromHex(intervalID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var req completeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	performedDate := time.Now()
	if req.Date != "" {
		performedDate, err = parseDate(req.Date)
		if err != nil {
			config.ErrorStatus("failed to parse date", http.StatusBadRequest, w, err)
			return
		}
	}

	vehicle, err := s.VDB.FindOne(context.Background(), bson.M{"_id": vinID})
	if err != nil {
		config.ErrorStatus("failed to get vehicle by VIN", http.StatusNotFound, w, err)
		return
	}

	interval, err := s.IDB.FindOne(context.Background(), bson.M{"_id": iID, "vin": vinID})
	if err != nil {
		config.ErrorStatus("failed to get interval by ID", http.StatusNotFound, w, err)
		return
	}

	updated, err := maintenance.RecordCompletion(*interval, performedDate, req.Mileage)
	if err != nil {
		var vErr *maintenance.ValidationError
		if errors.As(err, &vErr) {
			config.ErrorStatus("invalid service completion", http.StatusBadRequest, w, err)
			return
		}
		config.ErrorStatus("failed to record completion", http.StatusInternalServerError, w, err)
		return
	}

	now := time.Now()
	err = s.IDB.UpdateOne(context.Background(), bson.M{"_id": iID}, bson.M{"$set": bson.M{
		"lastPerformedDate":    updated.LastPerformedDate,
		"lastPerformedMileage": updated.LastPerformedMileage,
		"nextDueMileage":       updated.NextDueMileage,
		"nextDueDate":          updated.NextDueDate,
		"updatedAt":            primitive.NewDateTimeFromTime(now),
	}})
	if err != nil {
		config.ErrorStatus("failed to update interval", http.StatusInternalServerError, w, err)
		return
	}

	record := models.ServiceRecord{
		ID:          primitive.NewObjectID(),
		VIN:         vinID,
		IntervalID:  iID,
		ServiceType: interval.ServiceType,
		Date:        performedDate,
		Mileage:     req.Mileage,
		Cost:        req.Cost,
		ShopName:    req.ShopName,
		Notes:       req.Notes,
		CreatedAt:   primitive.NewDateTimeFromTime(now),
	}
	if err := s.DB.InsertOne(context.Background(), record); err != nil {
		config.ErrorStatus("failed to create service record", http.StatusInternalServerError, w, err)
		return
	}

	// A service visit usually comes with a fresh odometer reading
	if req.Mileage > vehicle.Details.CurrentMileage {
		err = s.VDB.UpdateOne(context.Background(), bson.M{"_id": vinID}, bson.M{"$set": bson.M{
			"vehicle.currentMileage": req.Mileage,
			"vehicle.updatedAt":      primitive.NewDateTimeFromTime(now),
		}})
		if err != nil {
			zap.S().Errorw("failed to bump vehicle mileage after service", "vin", vinID, "error", err)
		} else {
			entry := models.MileageEntry{
				ID:        primitive.NewObjectID(),
				VIN:       vinID,
				Mileage:   req.Mileage,
				Date:      performedDate,
				Source:    "service",
				CreatedAt: primitive.NewDateTimeFromTime(now),
			}
			if err := s.MDB.InsertOne(context.Background(), entry); err != nil {
				zap.S().Errorw("failed to record mileage history entry", "vin", vinID, "error", err)
			}
		}
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(record)
}

// RecordsByVehicleHandler returns a vehicle's service history, newest first
func (s ServiceRecord) RecordsByVehicleHandler(w http.ResponseWriter, r *http.Request) {
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

	dbResp, err := s.DB.Find(context.TODO(), bson.M{"vin": vinID}, &options.FindOptions{
		Limit: &limit64,
		Skip:  &skip64,
		Sort:  bson.M{"date": -1},
	})
	if err != nil {
		config.ErrorStatus("failed to get service records", http.StatusNotFound, w, err)
		return
	}

	if len(dbResp) == 0 {
		dbResp = []models.ServiceRecord{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
