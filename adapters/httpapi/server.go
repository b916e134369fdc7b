package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/platform9/pcdmanager/internal/logging"
)

const shutdownGrace = 15 * time.Second

// Serve runs handler on addr until ctx is done, then shuts down gracefully.
// Request contexts inherit the logger carried by ctx.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	logger := logging.FromContext(ctx)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return logging.WithLogger(context.Background(), logger)
		},
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	logger.Info(ctx, "http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
