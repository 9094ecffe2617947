package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/carloghq/carlog-api/api"
	"github.com/carloghq/carlog-api/api/scheduler"
	"github.com/carloghq/carlog-api/config"
	"github.com/carloghq/carlog-api/databases"
	"github.com/carloghq/carlog-api/models"
	"github.com/carloghq/carlog-api/vin"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	dbHelper  databases.DatabaseHelper
	scheduler *scheduler.Scheduler
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	r := mux.NewRouter()

	vdb := databases.NewVehicleDatabase(a.dbHelper)
	idb := databases.NewIntervalDatabase(a.dbHelper)
	rdb := databases.NewServiceRecordDatabase(a.dbHelper)
	mdb := databases.NewMileageDatabase(a.dbHelper)
	fdb := databases.NewFuelLogDatabase(a.dbHelper)
	sdb := databases.NewSettingsDatabase(a.dbHelper)

	v := Vehicle{DB: vdb, IDB: idb, RDB: rdb, MDB: mdb, FDB: fdb, SDB: sdb, DefaultWindow: a.Config.DueSoonWindowMiles}
	iv := Interval{DB: idb, VDB: vdb, SDB: sdb, DefaultWindow: a.Config.DueSoonWindowMiles}
	sr := ServiceRecord{DB: rdb, IDB: idb, VDB: vdb, MDB: mdb}
	fl := FuelLog{DB: fdb, VDB: vdb}
	st := Settings{DB: sdb, DefaultWindow: a.Config.DueSoonWindowMiles}
	resolve := VIN{Resolver: vin.NewResolver(vdb, vin.NewVPICClient(a.Config.VPICURL))}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	r.Use(api.MetricsMiddleware)
	r.Use(api.TimeoutMiddleware(30 * time.Second))

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/vehicles", http.HandlerFunc(v.VehicleHandler)).Methods("GET")
	apiCreate.Handle("/vehicles/search", http.HandlerFunc(v.VehicleSearchHandler)).Methods("GET")
	apiCreate.Handle("/vehicle", http.HandlerFunc(v.CreateVehicleHandler)).Methods("POST")
	apiCreate.Handle("/vehicle/{vin}", http.HandlerFunc(v.VehicleByVINHandler)).Methods("GET")
	apiCreate.Handle("/vehicle/{vin}", http.HandlerFunc(v.UpdateVehicleHandler)).Methods("PUT")
	apiCreate.Handle("/vehicle/{vin}", http.HandlerFunc(v.DeleteVehicleHandler)).Methods("DELETE")
	apiCreate.Handle("/vehicle/{vin}/mileage", http.HandlerFunc(v.UpdateMileageHandler)).Methods("PUT")
	apiCreate.Handle("/vehicle/{vin}/mileage-history", http.HandlerFunc(v.MileageHistoryHandler)).Methods("GET")
	apiCreate.Handle("/vehicle/{vin}/summary", http.HandlerFunc(v.VehicleSummaryHandler)).Methods("GET")

	apiCreate.Handle("/vehicle/{vin}/intervals", http.HandlerFunc(iv.IntervalsByVehicleHandler)).Methods("GET")
	apiCreate.Handle("/vehicle/{vin}/intervals", http.HandlerFunc(iv.CreateIntervalHandler)).Methods("POST")
	apiCreate.Handle("/intervals/{interval_id}", http.HandlerFunc(iv.UpdateIntervalHandler)).Methods("PUT")
	apiCreate.Handle("/intervals/{interval_id}", http.HandlerFunc(iv.DeleteIntervalHandler)).Methods("DELETE")

	apiCreate.Handle("/vehicle/{vin}/intervals/{interval_id}/complete", http.HandlerFunc(sr.CompleteIntervalHandler)).Methods("POST")
	apiCreate.Handle("/vehicle/{vin}/records", http.HandlerFunc(sr.RecordsByVehicleHandler)).Methods("GET")

	apiCreate.Handle("/vehicle/{vin}/fuel", http.HandlerFunc(fl.CreateFuelLogHandler)).Methods("POST")
	apiCreate.Handle("/vehicle/{vin}/fuel", http.HandlerFunc(fl.FuelLogsByVehicleHandler)).Methods("GET")

	apiCreate.Handle("/settings", http.HandlerFunc(st.SettingsHandler)).Methods("GET")
	apiCreate.Handle("/settings", http.HandlerFunc(st.UpdateSettingsHandler)).Methods("PUT")

	apiCreate.Handle("/vin/{vin}", http.HandlerFunc(resolve.ResolveHandler)).Methods("GET")

	apiCreate.Handle("/metrics", http.HandlerFunc(metricsHandler)).Methods("GET")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("carlog-api has connected to the database")

	api.InitMetrics()

	// initialize api router
	a.initializeRoutes()

	// start the daily maintenance reminder job
	a.scheduler = scheduler.NewScheduler(
		databases.NewVehicleDatabase(a.dbHelper),
		databases.NewIntervalDatabase(a.dbHelper),
		databases.NewSettingsDatabase(a.dbHelper),
		databases.NewSchedulerLockDatabase(a.dbHelper),
		a.Config.DueSoonWindowMiles,
	)
	a.scheduler.Start()

	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}

func metricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	b, err := json.Marshal(api.GetMetrics().Summary())
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
