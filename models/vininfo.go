package models

// ExternalVehicleInfo holds reference data about a vehicle identity decoded
// by the external vPIC source. It is never persisted; it only seeds a new
// Vehicle record once the user confirms it. Empty strings in the upstream
// response are normalized to nil before this struct is built.
type ExternalVehicleInfo struct {
	VIN               string  `json:"vin"`
	Year              *int    `json:"year,omitempty"`
	Make              *string `json:"make,omitempty"`
	Model             *string `json:"model,omitempty"`
	Trim              *string `json:"trim,omitempty"`
	BodyClass         *string `json:"bodyClass,omitempty"`
	FuelType          *string `json:"fuelType,omitempty"`
	DriveType         *string `json:"driveType,omitempty"`
	TransmissionStyle *string `json:"transmissionStyle,omitempty"`
	PlantCountry      *string `json:"plantCountry,omitempty"`
}
