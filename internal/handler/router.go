package handler

import (
	"github.com/gorilla/mux"

	"github.com/segyhp/yunta/internal/metrics"
	"github.com/segyhp/yunta/pkg/response"
)

// NewRouter wires every endpoint of the HTTP API
func NewRouter(juntaHandler *JuntaHandler, healthHandler *HealthHandler) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.CORSMiddleware, response.LoggingMiddleware, metrics.Middleware)

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/juntas", juntaHandler.CreateJunta).Methods("POST")
	api.HandleFunc("/juntas/active", juntaHandler.GetActiveJunta).Methods("GET")
	api.HandleFunc("/juntas/{juntaId}", juntaHandler.GetJunta).Methods("GET")
	api.HandleFunc("/juntas/{juntaId}/turns", juntaHandler.ScheduleTurns).Methods("POST")
	api.HandleFunc("/juntas/{juntaId}/payments", juntaHandler.RecordPayment).Methods("POST")

	api.HandleFunc("/juntas/{juntaId}/days/{date}", juntaHandler.GetDailySummary).Methods("GET")
	api.HandleFunc("/juntas/{juntaId}/days/{date}/beneficiary", juntaHandler.RescheduleTurn).Methods("PUT")
	api.HandleFunc("/juntas/{juntaId}/days/{date}/close", juntaHandler.CloseDay).Methods("POST")
	api.HandleFunc("/juntas/{juntaId}/days/{date}/reopen", juntaHandler.ReopenDay).Methods("POST")
	api.HandleFunc("/juntas/{juntaId}/days/{date}/payout", juntaHandler.DeliverTurn).Methods("POST")

	api.HandleFunc("/juntas/{juntaId}/participants/{shareId}/kardex", juntaHandler.GetKardex).Methods("GET")

	api.HandleFunc("/juntas/{juntaId}/archive", juntaHandler.ArchiveJunta).Methods("POST")
	api.HandleFunc("/juntas/{juntaId}/cancel", juntaHandler.CancelJunta).Methods("POST")
	api.HandleFunc("/juntas/{juntaId}/duplicate", juntaHandler.DuplicateJunta).Methods("POST")

	api.HandleFunc("/archives", juntaHandler.ListArchivedJuntas).Methods("GET")
	api.HandleFunc("/archives/{juntaId}", juntaHandler.GetArchiveReport).Methods("GET")

	return router
}
