package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/carloghq/carlog-api/databases"
)

var (
	// Page denotes the starting Page for pagination results
	Page = 0
)

func getPage(Page int, r *http.Request) int {
	if r.URL.Query().Get("page") == "" {
		zap.S().Warnf("page not set, using default of %v", Page)
	} else {
		var err error
		Page, err = strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil {
			zap.S().Errorf(fmt.Sprintf("error parsing page number: %v", err))
		}
		if Page < 0 {
			zap.S().Warnf(fmt.Sprintf("cannot process page number less than 1. Got: %v", Page))
			return 0
		}
	}
	return Page
}

// dueSoonWindow resolves the due-soon threshold: the saved settings value
// wins, the configured default is the fallback
func dueSoonWindow(ctx context.Context, sdb databases.SettingsDatabase, fallback int) int {
	settings, err := sdb.Get(ctx)
	if err != nil || settings.DueSoonWindowMiles <= 0 {
		return fallback
	}
	return settings.DueSoonWindowMiles
}

// parseDate accepts RFC3339 timestamps and bare dates
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
