package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"

	"github.com/amora-bot/amora/pkg/domain/interfaces"
	"github.com/amora-bot/amora/pkg/domain/types"
	"github.com/amora-bot/amora/pkg/utils/errutil"
	"github.com/amora-bot/amora/pkg/utils/logging"
)

// Server exposes the operational endpoints of the bot process. The bot talks
// to the platform over the gateway, so this surface only carries health
// probes.
type Server struct {
	router *chi.Mux
	kvs    interfaces.KeyValueStore
}

func New(kvs interfaces.KeyValueStore) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		kvs:    kvs,
	}

	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", s.handleLive)
	r.Get("/health/ready", s.handleReady)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, http.StatusOK, "ok")
}

// handleReady reports ready only when the backing store answers a ping
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.kvs.Ping(r.Context()); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "cache is not reachable", goerr.T(types.TagUnavailable)), http.StatusServiceUnavailable)
		return
	}
	writeStatus(w, http.StatusOK, "ok")
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(map[string]string{"status": status}); err != nil {
		logging.Default().Warn("failed to write health response", "error", err)
	}
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
