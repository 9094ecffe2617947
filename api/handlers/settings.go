package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/carloghq/carlog-api/config"
	"github.com/carloghq/carlog-api/databases"
	"github.com/carloghq/carlog-api/models"
)

// Settings exported for testing purposes
type Settings struct {
	DB            databases.SettingsDatabase
	DefaultWindow int
}

// SettingsHandler returns the saved settings, or the defaults when nothing
// has been saved yet
func (s Settings) SettingsHandler(w http.ResponseWriter, r *http.Request) {
	dbResp, err := s.DB.Get(context.Background())
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			config.ErrorStatus("failed to get settings", http.StatusInternalServerError, w, err)
			return
		}
		dbResp = &models.UserSettings{
			ID:                 models.SettingsID,
			DueSoonWindowMiles: s.DefaultWindow,
			EmailEnabled:       false,
		}
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UpdateSettingsHandler saves the settings document
func (s Settings) UpdateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var settings models.UserSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if settings.DueSoonWindowMiles <= 0 {
		config.ErrorStatus("dueSoonWindowMiles must be greater than zero", http.StatusBadRequest, w, fmt.Errorf("got %d", settings.DueSoonWindowMiles))
		return
	}
	if settings.EmailEnabled && settings.ReminderEmail == "" {
		config.ErrorStatus("reminderEmail is required when emails are enabled", http.StatusBadRequest, w, fmt.Errorf("missing reminderEmail"))
		return
	}

	settings.ID = models.SettingsID
	settings.UpdatedAt = primitive.NewDateTimeFromTime(time.Now())

	if err := s.DB.Upsert(context.Background(), settings); err != nil {
		config.ErrorStatus("failed to save settings", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(settings)
}
