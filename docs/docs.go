// Package docs CarLog API.
//
// Documentation of the CarLog vehicle maintenance API.
//
//     Schemes: https
//     BasePath: /
//     Version: 1.0.0
//     Host: https://carlog-api.herokuapp.com
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
// swagger:meta
package docs

import (
	"github.com/carloghq/carlog-api/models"
)

// swagger:route GET /health health healthEndpointID
// Lists the healthchex of the web service api.
// responses:
//   200: healthResponse

// Shows the current health of the api. true means it is alive, false means it is not.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route GET /api/v1/vehicles vehicles vehiclesEndpointID
// Lists all vehicles in the garage, paginated with limit and page.
// responses:
//   200: vehiclesResponse
//   404: errorMessageResponse

// All vehicles in the garage.
// swagger:response vehiclesResponse
type vehiclesResponseWrapper struct {
	// in:body
	Body []models.Vehicle
}

// swagger:route GET /api/v1/vehicle/{vin} vehicle vehicleByVINEndpointID
// Returns a single vehicle by its 17 character VIN.
// responses:
//   200: vehicleResponse
//   400: errorMessageResponse
//   404: errorMessageResponse

// A single vehicle keyed by VIN.
// swagger:response vehicleResponse
type vehicleResponseWrapper struct {
	// in:body
	Body models.Vehicle
}

// swagger:route GET /api/v1/vin/{vin} vin resolveVINEndpointID
// Resolves a VIN against the local garage first, then the external decoder.
// A 503 means a lookup step failed and the client should retry.
// responses:
//   200: externalVehicleInfoResponse
//   400: errorMessageResponse
//   404: errorMessageResponse
//   503: errorMessageResponse

// Decoded vehicle details from the external VIN decoder.
// swagger:response externalVehicleInfoResponse
type externalVehicleInfoResponseWrapper struct {
	// in:body
	Body models.ExternalVehicleInfo
}

// swagger:route GET /api/v1/vehicle/{vin}/intervals intervals intervalsByVehicleEndpointID
// Lists a vehicle's maintenance intervals, each classified as overdue,
// due_soon, ok, or unknown against the current odometer.
// responses:
//   200: intervalsResponse
//   400: errorMessageResponse
//   404: errorMessageResponse

// A vehicle's maintenance intervals with computed due status.
// swagger:response intervalsResponse
type intervalsResponseWrapper struct {
	// in:body
	Body []models.MaintenanceInterval
}

// swagger:route POST /api/v1/vehicle/{vin}/intervals/{interval_id}/complete records completeIntervalEndpointID
// Records a completed service: the interval's schedule rolls forward and a
// service record is written.
// responses:
//   201: serviceRecordResponse
//   400: errorMessageResponse
//   404: errorMessageResponse

// The service record written for a completed interval.
// swagger:response serviceRecordResponse
type serviceRecordResponseWrapper struct {
	// in:body
	Body models.ServiceRecord
}

// swagger:route GET /api/v1/settings settings settingsEndpointID
// Returns the saved user settings, or the defaults when none are saved.
// responses:
//   200: settingsResponse

// The user settings document.
// swagger:response settingsResponse
type settingsResponseWrapper struct {
	// in:body
	Body models.UserSettings
}

// Generic error response carrying a message and the underlying error.
// swagger:response errorMessageResponse
type errorMessageResponseWrapper struct {
	// in:body
	Body models.ErrorMessageResponse
}
