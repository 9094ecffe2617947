package vin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/carloghq/carlog-api/models"
)

// ErrNoMatch is returned when the decoder answered but could not produce a
// usable vehicle description for the VIN.
var ErrNoMatch = errors.New("vin decoder returned no usable match")

// Decoder looks up vehicle details for a VIN from an external source.
type Decoder interface {
	Decode(ctx context.Context, vin string) (*models.ExternalVehicleInfo, error)
}

// VPICClient decodes VINs against the NHTSA vPIC API. Successful decodes are
// cached since a VIN never changes what it describes.
type VPICClient struct {
	baseURL    string
	httpClient *http.Client
	cache      *cache.Cache
}

// NewVPICClient creates a vPIC decoder client rooted at baseURL.
func NewVPICClient(baseURL string) *VPICClient {
	return &VPICClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: cache.New(24*time.Hour, 48*time.Hour),
	}
}

// vpicResponse is the envelope vPIC wraps every DecodeVin answer in. Results
// come back as flat variable/value pairs rather than a structured document.
type vpicResponse struct {
	Count   int    `json:"Count"`
	Message string `json:"Message"`
	Results []struct {
		Variable string  `json:"Variable"`
		Value    *string `json:"Value"`
	} `json:"Results"`
}

// Decode fetches and maps the vPIC decode for the given VIN. It returns
// ErrNoMatch when vPIC has no usable record (no make and model, or a
// non-zero error code); any transport or server failure is returned as-is
// so callers can treat it as transient.
func (c *VPICClient) Decode(ctx context.Context, vin string) (*models.ExternalVehicleInfo, error) {
	if cached, found := c.cache.Get(vin); found {
		if info, ok := cached.(*models.ExternalVehicleInfo); ok {
			zap.S().Debugw("vpic cache hit", "vin", vin)
			return info, nil
		}
	}

	url := fmt.Sprintf("%s/vehicles/DecodeVin/%s?format=json", c.baseURL, vin)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create vpic request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		zap.S().Warnw("vpic request failed", "vin", vin, "error", err)
		return nil, fmt.Errorf("vpic request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read vpic response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		zap.S().Warnw("vpic returned non-200", "vin", vin, "status", resp.StatusCode)
		return nil, fmt.Errorf("vpic returned status %d", resp.StatusCode)
	}

	var decoded vpicResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("failed to parse vpic response: %w", err)
	}

	info := mapResults(vin, decoded)
	if info == nil {
		zap.S().Infow("vpic decode unusable", "vin", vin)
		return nil, ErrNoMatch
	}

	c.cache.Set(vin, info, cache.DefaultExpiration)
	return info, nil
}

// mapResults flattens the variable/value pairs into ExternalVehicleInfo.
// vPIC pads every variable into the result set with empty strings, so empty
// values are normalized to nil here and nowhere else.
func mapResults(vin string, decoded vpicResponse) *models.ExternalVehicleInfo {
	values := make(map[string]string, len(decoded.Results))
	for _, r := range decoded.Results {
		if r.Value == nil {
			continue
		}
		v := strings.TrimSpace(*r.Value)
		if v == "" {
			continue
		}
		values[r.Variable] = v
	}

	// A decode without both make and model cannot seed a vehicle.
	if values["Make"] == "" || values["Model"] == "" {
		return nil
	}
	// vPIC reports decode problems in-band; "0" is its success code. A
	// non-zero code means the fields are guesses, not a usable identity.
	if code, ok := values["Error Code"]; ok && code != "0" {
		return nil
	}

	info := &models.ExternalVehicleInfo{
		VIN:               vin,
		Make:              optional(values, "Make"),
		Model:             optional(values, "Model"),
		Trim:              optional(values, "Trim"),
		BodyClass:         optional(values, "Body Class"),
		FuelType:          optional(values, "Fuel Type - Primary"),
		DriveType:         optional(values, "Drive Type"),
		TransmissionStyle: optional(values, "Transmission Style"),
		PlantCountry:      optional(values, "Plant Country"),
	}
	if y, err := strconv.Atoi(values["Model Year"]); err == nil {
		info.Year = &y
	}
	return info
}

func optional(values map[string]string, key string) *string {
	v, ok := values[key]
	if !ok {
		return nil
	}
	return &v
}
