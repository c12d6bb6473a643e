package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/shopsync/shopsync-api/api"
	"github.com/shopsync/shopsync-api/api/scheduler"
	"github.com/shopsync/shopsync-api/config"
	"github.com/shopsync/shopsync-api/databases"
	"github.com/shopsync/shopsync-api/models"
	"github.com/shopsync/shopsync-api/sms"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	Scheduler *scheduler.Scheduler

	dbHelper  databases.DatabaseHelper
	smsSender sms.Sender
	uploader  MediaUploader
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	r := mux.NewRouter()

	vehicleDB := databases.NewVehicleDatabase(a.dbHelper)
	updateDB := databases.NewUpdateDatabase(a.dbHelper)
	messageDB := databases.NewMessageDatabase(a.dbHelper)
	mediaDB := databases.NewMediaDatabase(a.dbHelper)
	approvalDB := databases.NewApprovalDatabase(a.dbHelper)
	serviceDB := databases.NewServiceRecordDatabase(a.dbHelper)

	v := Vehicle{
		DB:         vehicleDB,
		UpdateDB:   updateDB,
		MessageDB:  messageDB,
		MediaDB:    mediaDB,
		ApprovalDB: approvalDB,
		ServiceDB:  serviceDB,
		SMS:        a.smsSender,
		Config:     a.Config,
	}
	upd := Update{DB: updateDB}
	msg := Message{DB: messageDB}
	med := Media{DB: mediaDB, Uploader: a.uploader}
	appr := Approval{DB: approvalDB}
	svc := Service{DB: serviceDB, VDB: vehicleDB, SMS: a.smsSender, Scheduler: a.Scheduler}
	carImage := NewCarImage(a.Config.UnsplashAccessKey)
	cloudinaryHandler := CloudinaryHandler{Config: a.Config}

	// liveness
	r.HandleFunc("/", rootHandler).Methods("GET")
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	r.Handle("/vehicles/", http.HandlerFunc(v.CreateVehicleHandler)).Methods("POST")
	r.Handle("/vehicles/{vehicle_id}/status", http.HandlerFunc(v.UpdateVehicleStatusHandler)).Methods("PATCH")
	r.Handle("/vehicles/{vehicle_id}/toggle-warranty", http.HandlerFunc(v.ToggleWarrantyHandler)).Methods("PATCH")
	r.Handle("/vehicles/{vehicle_id}", http.HandlerFunc(v.DeleteVehicleHandler)).Methods("DELETE")
	r.Handle("/shop/{shop_id}/vehicles", http.HandlerFunc(v.VehiclesByShopIDHandler)).Methods("GET")

	r.Handle("/vehicles/{vehicle_id}/updates", http.HandlerFunc(upd.UpdatesByVehicleIDHandler)).Methods("GET")

	r.Handle("/vehicles/{vehicle_id}/messages", http.HandlerFunc(msg.CreateMessageHandler)).Methods("POST")
	r.Handle("/vehicles/{vehicle_id}/messages", http.HandlerFunc(msg.MessagesByVehicleIDHandler)).Methods("GET")

	r.Handle("/vehicles/{vehicle_id}/media", http.HandlerFunc(med.UploadMediaHandler)).Methods("POST")
	r.Handle("/vehicles/{vehicle_id}/media", http.HandlerFunc(med.MediaByVehicleIDHandler)).Methods("GET")
	r.Handle("/media/signature", http.HandlerFunc(cloudinaryHandler.GenerateSignature)).Methods("POST")

	r.Handle("/vehicles/{vehicle_id}/approvals", http.HandlerFunc(appr.CreateApprovalHandler)).Methods("POST")
	r.Handle("/vehicles/{vehicle_id}/approvals", http.HandlerFunc(appr.ApprovalsByVehicleIDHandler)).Methods("GET")
	r.Handle("/approvals/{approval_id}", http.HandlerFunc(appr.RespondToApprovalHandler)).Methods("PATCH")

	r.Handle("/vehicles/{vehicle_id}/service", http.HandlerFunc(svc.CreateServiceRecordHandler)).Methods("POST")
	r.Handle("/vehicles/{vehicle_id}/service", http.HandlerFunc(svc.ServiceRecordsByVehicleIDHandler)).Methods("GET")
	r.Handle("/service-reminders/due", http.HandlerFunc(svc.DueRemindersHandler)).Methods("GET")
	r.Handle("/service-reminders/send", http.HandlerFunc(svc.DispatchRemindersHandler)).Methods("POST")

	r.Handle("/car-image", http.HandlerFunc(carImage.CarImageHandler)).Methods("GET")

	r.HandleFunc("/ws/track", HandleTrackingWebSocket)

	// token lookup goes last so it cannot shadow the fixed /vehicles/ routes
	r.Handle("/vehicles/{unique_link}", http.HandlerFunc(v.VehicleByLinkHandler)).Methods("GET")

	// the websocket route manages its own lifetime, so the deadline wrapper
	// only applies to the REST surface
	r.Use(func(next http.Handler) http.Handler {
		timeout := api.TimeoutMiddleware(api.QueryTimeout)(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/ws/track" {
				next.ServeHTTP(w, r)
				return
			}
			timeout.ServeHTTP(w, r)
		})
	})
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
	zap.S().Info("shopsync-api has connected to the database")

	a.smsSender = sms.New(&a.Config)

	if os.Getenv("CLOUDINARY_URL") != "" {
		cld, err := cloudinary.New()
		if err != nil {
			zap.S().With(err).Error("failed to initialize cloudinary")
			return err
		}
		a.uploader = &cld.Upload
	} else {
		zap.S().Warn("cloudinary not configured, media uploads disabled")
	}

	a.Scheduler = scheduler.New(
		databases.NewServiceRecordDatabase(a.dbHelper),
		databases.NewVehicleDatabase(a.dbHelper),
		a.smsSender,
	)
	a.Scheduler.Start()

	// initialize api router
	a.initializeRoutes()
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

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.RootResponse{
		Message: "shopsync-api is running",
		Version: "1.0.0",
	})
	_, _ = io.WriteString(w, string(b))
}
