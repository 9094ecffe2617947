package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/carloghq/carlog-api/config"
	"github.com/carloghq/carlog-api/vin"
)

// VIN exported for testing purposes
type VIN struct {
	Resolver *vin.Resolver
}

// ResolveHandler answers what a VIN refers to: a vehicle already in the
// garage, a vehicle the external decoder knows, or nothing. Transient
// lookup failures report 503 so the client can retry rather than treating
// the vehicle as unknown.
func (v VIN) ResolveHandler(w http.ResponseWriter, r *http.Request) {
	vinID := vin.Normalize(mux.Vars(r)["vin"])

	if err := vin.Validate(vinID); err != nil {
		config.ErrorStatus("invalid vin format", http.StatusBadRequest, w, err)
		return
	}

	resolution := v.Resolver.Resolve(r.Context(), vinID)

	b, err := json.Marshal(resolution)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}

	switch resolution.Status {
	case vin.ResolutionFoundLocal, vin.ResolutionFoundExternal:
		w.WriteHeader(http.StatusOK)
	case vin.ResolutionNotFound:
		w.WriteHeader(http.StatusNotFound)
	case vin.ResolutionTransientError:
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	w.Write(b)
}
