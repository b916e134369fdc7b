package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/platform9/pcdmanager/domain/model"
	"github.com/platform9/pcdmanager/usecase/sweep"
)

type cleanupResponse struct {
	Runs   []*sweep.RunOutput `json:"runs"`
	Errors []string           `json:"errors,omitempty"`
}

// cleanup runs the expiry sweep. The environment comes from ?env=, from the
// JSON body, or defaults to the configured sweep list. The sweep is bounded by
// its per-region burn waits, not by the request timeout.
func (h *handler) cleanup(w http.ResponseWriter, r *http.Request) {
	ctx := context.WithoutCancel(r.Context())
	env := strings.TrimSpace(r.URL.Query().Get("env"))
	if env == "" && r.Method == http.MethodPost {
		var req sweepRequest
		if err := decode(r, w, &req); err != nil && !errors.Is(err, errEmptyBody) {
			writeError(r.Context(), w, err)
			return
		}
		env = strings.TrimSpace(req.Environment)
	}

	if env != "" {
		out, err := h.svc.Sweep.Run(ctx, &sweep.RunInput{Environment: env})
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
		return
	}

	if len(h.svc.SweepEnvironments) == 0 {
		writeError(r.Context(), w, model.Invalidf("no environment given and none configured for the sweep"))
		return
	}
	out, err := h.svc.Sweep.RunAll(ctx, &sweep.RunAllInput{Environments: h.svc.SweepEnvironments})
	resp := cleanupResponse{Runs: out.Runs}
	if resp.Runs == nil {
		resp.Runs = []*sweep.RunOutput{}
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		for _, e := range merr.Errors {
			resp.Errors = append(resp.Errors, e.Error())
		}
	} else if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
