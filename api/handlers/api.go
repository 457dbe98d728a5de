package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/batepapo/group-chat-api/api"
	"github.com/batepapo/group-chat-api/api/scheduler"
	"github.com/batepapo/group-chat-api/chat"
	"github.com/batepapo/group-chat-api/config"
	"github.com/batepapo/group-chat-api/databases"
	"github.com/batepapo/group-chat-api/models"
)

// App stores the router, config and db connection, so it can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	Scheduler *scheduler.Scheduler
	dbHelper  databases.DatabaseHelper
	store     *databases.Store
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	manager := chat.NewManager(a.store, a.Config.PresenceThreshold)
	admitter := chat.NewAdmitter(a.store)
	a.Scheduler = scheduler.New(manager, a.Config.SweepInterval)

	p := Participant{Manager: manager}
	m := Message{Admitter: admitter}
	s := Sweep{Scheduler: a.Scheduler}

	r := mux.NewRouter()
	r.Use(api.RequestLogger)

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	apiCreate.Use(api.TimeoutMiddleware(a.Config.RequestTimeout))

	apiCreate.Handle("/participants", http.HandlerFunc(p.JoinHandler)).Methods("POST")
	apiCreate.Handle("/participants", http.HandlerFunc(p.ListParticipantsHandler)).Methods("GET")
	apiCreate.Handle("/status", api.RequireIdentity(http.HandlerFunc(p.HeartbeatHandler))).Methods("POST")

	apiCreate.Handle("/messages", api.RequireIdentity(http.HandlerFunc(m.ListMessagesHandler))).Methods("GET")
	apiCreate.Handle("/messages", api.RequireIdentity(http.HandlerFunc(m.SubmitMessageHandler))).Methods("POST")
	apiCreate.Handle("/messages/{message_id}", api.RequireIdentity(http.HandlerFunc(m.DeleteMessageHandler))).Methods("DELETE")

	apiCreate.Handle("/sweep", http.HandlerFunc(s.TriggerSweepHandler)).Methods("POST")
	apiCreate.Handle("/sweep", http.HandlerFunc(s.SweepStatusHandler)).Methods("GET")

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
	err = client.Connect(context.Background())
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("group-chat-api has connected to the database")

	a.store = databases.NewStore(a.dbHelper)
	ctx, cancel := api.WithQueryTimeout(context.Background())
	defer cancel()
	if err := a.store.EnsureIndexes(ctx); err != nil {
		zap.S().With(err).Error("failed to ensure indexes")
		return err
	}

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
