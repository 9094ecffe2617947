package vin

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/carloghq/carlog-api/databases"
	"github.com/carloghq/carlog-api/models"
)

// ResolutionStatus tags the outcome of a VIN resolution.
type ResolutionStatus string

// Resolution outcomes, in lookup order: the local garage wins over the
// external decoder, and a decoder transport failure is reported as transient
// rather than folded into not_found.
const (
	ResolutionFoundLocal     ResolutionStatus = "found_local"
	ResolutionFoundExternal  ResolutionStatus = "found_external"
	ResolutionNotFound       ResolutionStatus = "not_found"
	ResolutionTransientError ResolutionStatus = "transient_error"
)

// Resolution is the tagged result of resolving a VIN. Exactly one of Vehicle
// or External is set for the two found statuses.
type Resolution struct {
	Status   ResolutionStatus            `json:"status"`
	Vehicle  *models.Vehicle             `json:"vehicle,omitempty"`
	External *models.ExternalVehicleInfo `json:"external,omitempty"`
}

// Resolver answers "what vehicle is this VIN" by checking the local garage
// first and falling back to the external decoder.
type Resolver struct {
	VDB     databases.VehicleDatabase
	Decoder Decoder
}

// NewResolver creates a resolver over the given vehicle store and decoder.
func NewResolver(vdb databases.VehicleDatabase, decoder Decoder) *Resolver {
	return &Resolver{VDB: vdb, Decoder: decoder}
}

// Resolve looks up the VIN locally, then externally. The VIN must already be
// normalized and validated; Resolve never returns an error, transport
// failures surface as ResolutionTransientError so the caller can distinguish
// "unknown vehicle" from "could not check". A local-store failure is soft:
// the decoder is still consulted, so a store outage degrades resolution
// rather than taking it down.
func (r *Resolver) Resolve(ctx context.Context, vin string) Resolution {
	vehicle, err := r.VDB.FindOne(ctx, bson.M{"_id": vin})
	if err == nil {
		return Resolution{Status: ResolutionFoundLocal, Vehicle: vehicle}
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		zap.S().Errorw("local vehicle lookup failed, trying external decoder", "vin", vin, "error", err)
	}

	info, err := r.Decoder.Decode(ctx, vin)
	if err != nil {
		if errors.Is(err, ErrNoMatch) {
			return Resolution{Status: ResolutionNotFound}
		}
		zap.S().Errorw("external vin decode failed", "vin", vin, "error", err)
		return Resolution{Status: ResolutionTransientError}
	}
	return Resolution{Status: ResolutionFoundExternal, External: info}
}
