package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/platform9/pcdmanager/domain/model"
	"github.com/platform9/pcdmanager/internal/logging"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes obj with the given status.
func writeJSON(w http.ResponseWriter, status int, obj any) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(obj); err != nil {
		// headers are gone; nothing left to report to the client
		return
	}
}

// writeError converts err to a JSON error response. Upstream messages are
// passed through verbatim so operators can read the control plane's own error.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := statusOf(err)
	logger := logging.FromContext(ctx)
	if status >= 500 {
		logger.Error(ctx, "request failed", "status", status, "err", err)
	} else {
		logger.Info(ctx, "request rejected", "status", status, "err", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// statusOf maps the error taxonomy onto HTTP status codes.
func statusOf(err error) int {
	var ue *model.UpstreamError
	switch {
	case errors.Is(err, model.ErrValidation), errors.Is(err, model.ErrEnvironmentNotFound):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrRegionNotFound), errors.Is(err, model.ErrOperationNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrProductionTokenRequired):
		return http.StatusPreconditionRequired
	case errors.Is(err, model.ErrInfraHasSiblings):
		return http.StatusConflict
	case errors.As(err, &ue):
		return ue.HTTPStatus()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
