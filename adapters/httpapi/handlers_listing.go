package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/platform9/pcdmanager/domain/model"
	"github.com/platform9/pcdmanager/usecase/chart"
	"github.com/platform9/pcdmanager/usecase/cluster"
	"github.com/platform9/pcdmanager/usecase/customer"
	"github.com/platform9/pcdmanager/usecase/operation"
	"github.com/platform9/pcdmanager/usecase/region"
)

type environmentsResponse struct {
	Environments []*model.Environment `json:"environments"`
}

func (h *handler) listEnvironments(w http.ResponseWriter, r *http.Request) {
	envs, err := h.svc.Environments.List(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, environmentsResponse{Environments: envs})
}

func (h *handler) fetchData(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	refresh, _ := strconv.ParseBool(q.Get("refresh"))
	out, err := h.svc.Regions.List(r.Context(), &region.ListInput{Environment: q.Get("env"), Refresh: refresh})
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) fetchCustomers(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Customers.List(r.Context(), &customer.ListInput{Environment: r.URL.Query().Get("env")})
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) fetchClusters(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Clusters.List(r.Context(), &cluster.ListInput{Environment: r.URL.Query().Get("env")})
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) fetchCharts(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Charts.List(r.Context(), &chart.ListInput{Environment: r.URL.Query().Get("env")})
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) cortexQuery(w http.ResponseWriter, r *http.Request) {
	if h.svc.Metrics == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "metrics backend is not configured"})
		return
	}
	out, err := h.svc.Metrics.Query(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "data": out})
}

func (h *handler) listOperations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in := &operation.ListInput{Environment: q.Get("env"), FQDN: q.Get("fqdn"), Actor: q.Get("actor")}
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			writeError(r.Context(), w, model.Invalidf("limit must be an integer"))
			return
		}
		in.Limit = n
	}
	out, err := h.svc.Operations.List(r.Context(), in)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) getOperation(w http.ResponseWriter, r *http.Request) {
	op, err := h.svc.Operations.Get(r.Context(), &operation.GetInput{ID: mux.Vars(r)["id"]})
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, op)
}
