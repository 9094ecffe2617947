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
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/carloghq/carlog-api/config"
	"github.com/carloghq/carlog-api/databases"
	"github.com/carloghq/carlog-api/models"
	"github.com/carloghq/carlog-api/vin"
)

// FuelLog exported for testing purposes
type FuelLog struct {
	DB  databases.FuelLogDatabase
	VDB databases.VehicleDatabase
}

// createFuelLogRequest is the POST /vehicle/{vin}/fuel body
type createFuelLogRequest struct {
	Gallons        float64 `json:"gallons"`
	PricePerGallon float64 `json:"pricePerGallon"`
	TotalCost      float64 `json:"totalCost,omitempty"`
	Odometer       int     `json:"odometer,omitempty"`
	Date           string  `json:"date,omitempty"`
	Station        string  `json:"station,omitempty"`
	FuelType       string  `json:"fuelType,omitempty"`
	FullTank       bool    `json:"fullTank"`
	Notes          string  `json:"notes,omitempty"`
}

// CreateFuelLogHandler records a fuel fill-up for a vehicle
func (f FuelLog) CreateFuelLogHandler(w http.ResponseWriter, r *http.Request) {
	vinID := vin.Normalize(mux.Vars(r)["vin"])

	if err := vin.Validate(vinID); err != nil {
		config.ErrorStatus("invalid vin format", http.StatusBadRequest, w, err)
		return
	}

	if _, err := f.VDB.FindOne(context.Background(), bson.M{"_id": vinID}); err != nil {
		config.ErrorStatus("failed to get vehicle by VIN", http.StatusNotFound, w, err)
		return
	}

	var req createFuelLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.Gallons <= 0 {
		config.ErrorStatus("gallons must be greater than zero", http.StatusBadRequest, w, fmt.Errorf("got %v", req.Gallons))
		return
	}
	if req.PricePerGallon < 0 {
		config.ErrorStatus("pricePerGallon must not be negative", http.StatusBadRequest, w, fmt.Errorf("got %v", req.PricePerGallon))
		return
	}

	date := time.Now()
	if req.Date != "" {
		var err error
		date, err = parseDate(req.Date)
		if err != nil {
			config.ErrorStatus("failed to parse date", http.StatusBadRequest, w, err)
			return
		}
	}

	totalCost := req.TotalCost
	if totalCost == 0 {
		totalCost = req.Gallons * req.PricePerGallon
	}

	log := models.FuelLog{
		ID:             primitive.NewObjectID(),
		VIN:            vinID,
		Gallons:        req.Gallons,
		PricePerGallon: req.PricePerGallon,
		TotalCost:      totalCost,
		Odometer:       req.Odometer,
		Date:           date,
		Station:        req.Station,
		FuelType:       req.FuelType,
		FullTank:       req.FullTank,
		Notes:          req.Notes,
		CreatedAt:      primitive.NewDateTimeFromTime(time.Now()),
	}

	if err := f.DB.InsertOne(context.Background(), log); err != nil {
		config.ErrorStatus("failed to create fuel log", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(log)
}

// FuelLogsByVehicleHandler returns a vehicle's fuel logs, newest first
func (f FuelLog) FuelLogsByVehicleHandler(w http.ResponseWriter, r *http.Request) {
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

	dbResp, err := f.DB.Find(context.TODO(), bson.M{"vin": vinID}, &options.FindOptions{
		Limit: &limit64,
		Skip:  &skip64,
		Sort:  bson.M{"date": -1},
	})
	if err != nil {
		config.ErrorStatus("failed to get fuel logs", http.StatusNotFound, w, err)
		return
	}

	if len(dbResp) == 0 {
		dbResp = []models.FuelLog{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
