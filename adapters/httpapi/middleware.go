package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/platform9/pcdmanager/internal/logging"
	"github.com/platform9/pcdmanager/internal/observability"
)

// ActorHeader carries the authenticated user email set by the fronting auth proxy.
const ActorHeader = "X-Auth-Request-Email"

type actorKey struct{}

// actor returns the proxy-asserted identity, falling back to the body field
// and then to the configured default actor.
func (h *handler) actor(r *http.Request, bodyEmail string) string {
	if v, ok := r.Context().Value(actorKey{}).(string); ok && v != "" {
		return v
	}
	if v := strings.TrimSpace(bodyEmail); v != "" {
		return v
	}
	return h.defaultActor
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	return s.ResponseWriter.Write(b)
}

func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}

// instrument attaches a request logger, records metrics and bounds the request
// duration with timeout when positive.
func instrument(timeout time.Duration) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			route := routeName(r)
			actor := strings.TrimSpace(r.Header.Get(ActorHeader))

			ctx := r.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			ctx = context.WithValue(ctx, actorKey{}, actor)
			ctx, end := logging.Span(ctx, "API", r.Method+" "+route, "requestId", uuid.NewString(), "actor", actor)

			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r.WithContext(ctx))

			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}
			observability.ObserveHTTP(route, status, time.Since(start))
			if status >= 500 {
				end(statusError(status))
			} else {
				end(nil)
			}
		})
	}
}

type statusError int

func (s statusError) Error() string { return http.StatusText(int(s)) }
