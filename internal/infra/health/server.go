package health

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const maxPortAttempts = 20

// Server is a minimal liveness endpoint. If the configured port is taken it
// walks upward to the next free one, which keeps restarts working on hosts
// where the previous instance may still be draining.
type Server struct {
	srv      *http.Server
	listener net.Listener
	logger   *logrus.Entry

	// Port is the port actually bound, which may differ from the requested one.
	Port int
}

// New binds a listener starting at the requested port and prepares the HTTP
// server. It does not start serving; call Start in its own goroutine.
func New(port int, logger *logrus.Entry) (*Server, error) {
	mux := http.NewServeMux()
	handle := func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Bot is running"))
	}
	mux.HandleFunc("/", handle)
	mux.HandleFunc("/healthz", handle)

	var (
		listener net.Listener
		err      error
	)
	bound := port
	for attempt := 0; attempt < maxPortAttempts; attempt++ {
		listener, err = net.Listen("tcp", fmt.Sprintf(":%d", bound))
		if err == nil {
			break
		}
		logger.WithField("port", bound).WithError(err).Warn("Port busy, trying next")
		bound++
	}
	if listener == nil {
		return nil, fmt.Errorf("no free port in range %d-%d: %w", port, bound-1, err)
	}

	srv := &http.Server{
		Handler:      mux,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
	return &Server{srv: srv, listener: listener, logger: logger, Port: bound}, nil
}

// Start serves until Shutdown is called.
func (s *Server) Start() {
	s.logger.WithField("port", s.Port).Info("Health server started")
	if err := s.srv.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.WithError(err).Error("Health server error")
	}
}

// Shutdown stops the server, waiting for in-flight requests up to ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
