// Package httpapi exposes the workflows as a JSON HTTP API.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/platform9/pcdmanager/domain"
	"github.com/platform9/pcdmanager/domain/model"
	"github.com/platform9/pcdmanager/usecase/chart"
	"github.com/platform9/pcdmanager/usecase/cluster"
	"github.com/platform9/pcdmanager/usecase/customer"
	"github.com/platform9/pcdmanager/usecase/metadata"
	"github.com/platform9/pcdmanager/usecase/operation"
	"github.com/platform9/pcdmanager/usecase/region"
	"github.com/platform9/pcdmanager/usecase/sweep"
)

// Services are the use cases served by the API.
type Services struct {
	Environments domain.EnvironmentRepository
	Regions      *region.UseCase
	Metadata     *metadata.UseCase
	Customers    *customer.UseCase
	Clusters     *cluster.UseCase
	Charts       *chart.UseCase
	Sweep        *sweep.UseCase
	Operations   *operation.UseCase
	// Metrics is optional; the query proxy answers 503 without it.
	Metrics model.MetricsQueryPort
	// SweepEnvironments are swept when a cleanup request names no environment.
	SweepEnvironments []string
}

// Options tunes the router.
type Options struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
	// DefaultActor is recorded when a request carries no identity.
	DefaultActor string
}

type handler struct {
	svc          *Services
	defaultActor string
}

// NewRouter registers every endpoint and wraps the result with CORS.
func NewRouter(svc *Services, opts Options) http.Handler {
	h := &handler{svc: svc, defaultActor: opts.DefaultActor}

	root := mux.NewRouter()
	root.HandleFunc("/healthz", h.healthz).Methods(http.MethodGet)
	root.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := root.PathPrefix("/api").Subrouter()
	api.Use(instrument(opts.RequestTimeout))

	api.HandleFunc("/environments", h.listEnvironments).Methods(http.MethodGet)

	api.HandleFunc("/createRegion", h.createRegion).Methods(http.MethodPost)
	api.HandleFunc("/addRegion", h.addRegion).Methods(http.MethodPost)
	api.HandleFunc("/upgradeRegion", h.upgradeRegion).Methods(http.MethodPost)
	api.HandleFunc("/deleteRegion", h.deleteRegion).Methods(http.MethodDelete)
	api.HandleFunc("/resetTaskStatus", h.resetTaskStatus).Methods(http.MethodGet, http.MethodPost)

	api.HandleFunc("/updateLease", h.updateLease).Methods(http.MethodPost)
	api.HandleFunc("/addTag", h.addTag).Methods(http.MethodPost)
	api.HandleFunc("/removeTag", h.removeTag).Methods(http.MethodPost)
	api.HandleFunc("/setOwner", h.setOwner).Methods(http.MethodPost)

	api.HandleFunc("/fetchData", h.fetchData).Methods(http.MethodGet)
	api.HandleFunc("/fetchCustomers", h.fetchCustomers).Methods(http.MethodGet)
	api.HandleFunc("/fetchClusters", h.fetchClusters).Methods(http.MethodGet)
	api.HandleFunc("/fetchCharts", h.fetchCharts).Methods(http.MethodGet)

	api.HandleFunc("/cleanup", h.cleanup).Methods(http.MethodGet, http.MethodPost)
	api.HandleFunc("/cortex/query", h.cortexQuery).Methods(http.MethodGet)

	api.HandleFunc("/operations", h.listOperations).Methods(http.MethodGet)
	api.HandleFunc("/operations/{id}", h.getOperation).Methods(http.MethodGet)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", ActorHeader},
	})
	return c.Handler(root)
}

func (h *handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
