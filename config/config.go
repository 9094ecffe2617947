package config

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/carloghq/carlog-api/models"
)

// DefaultDueSoonWindowMiles is the reminder threshold used when neither the
// environment nor the user settings provide one.
const DefaultDueSoonWindowMiles = 500

// Config holds the project config values
type Config struct {
	URL                string
	DatabaseName       string
	BaseURL            string
	Port               string
	VPICURL            string
	DueSoonWindowMiles int
}

// New sets up all config related services
func New() *Config {

	//setup zap logger and replace default logger
	logger, err := setLogger(os.Getenv("APP_ENV"))
	if err != nil {
		logger = zap.NewExample()
	}
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	window := DefaultDueSoonWindowMiles
	if v := os.Getenv("DUE_SOON_WINDOW_MILES"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			zap.S().Warnf("invalid DUE_SOON_WINDOW_MILES %q, using default of %v", v, DefaultDueSoonWindowMiles)
		} else {
			window = parsed
		}
	}

	return &Config{
		URL:                os.Getenv("DB_URI"),
		DatabaseName:       os.Getenv("DB_NAME"),
		BaseURL:            os.Getenv("BASE_URL"),
		Port:               os.Getenv("PORT"),
		VPICURL:            os.Getenv("VPIC_API_URL"),
		DueSoonWindowMiles: window,
	}
}

// setLogger builds the zap logger for the given APP_ENV value
func setLogger(env string) (*zap.Logger, error) {
	switch env {
	case "production":
		return zap.NewProduction()
	case "development":
		return zap.NewDevelopment()
	default:
		return zap.NewExample(), nil
	}
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	b, _ := json.Marshal(models.ErrorMessageResponse{Response: models.MessageError{Message: message, Error: err.Error()}})
	w.Write(b)
}
