// Package server is the HTTP/WebSocket front end for the engine: a thin
// caller of the public tdl package exposing POST /analyze, GET /tokenize,
// and a GET /ws live-analysis stream for editor hosts that want to push
// source text as the user types instead of issuing one request per
// keystroke.
//
// Server embeds http.Server alongside a mux field and is built by a
// functional-options constructor (server.New(server.WithHost(...),
// server.WithPort(...))).
package server

import (
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/cosine-software/tdl"
	"github.com/cosine-software/tdl/internal/cache"
)

// Server is the HTTP/WebSocket front end. Analyze results are cached by
// exact source text so an editor host polling on every keystroke does
// not re-run the pipeline against an unchanged buffer.
type Server struct {
	http.Server

	scheme string
	host   string
	port   string
	mux    *http.ServeMux

	log     *logrus.Logger
	analyze *cache.Cache[tdl.Result]
	upgrade websocket.Upgrader
}

// Option configures a Server during New.
type Option func(*Server) error

// New builds a Server from options, wiring the default routes and a
// reasonable set of HTTP timeouts.
func New(options ...Option) (*Server, error) {
	s := &Server{
		scheme: "http",
		host:   "localhost",
		port:   "4160",
		mux:    http.NewServeMux(),
		log:    logrus.New(),
		upgrade: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	s.IdleTimeout = 10 * time.Second
	s.ReadTimeout = 5 * time.Second
	s.WriteTimeout = 10 * time.Second
	s.MaxHeaderBytes = 1 << 20

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}
	if s.analyze == nil {
		s.analyze = cache.New(128, tdl.Analyze)
	}
	s.Addr = net.JoinHostPort(s.host, s.port)

	s.mux.HandleFunc("POST /analyze", s.handleAnalyze)
	s.mux.HandleFunc("GET /tokenize", s.handleTokenize)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
	s.Handler = requestLogger(s.log, s.mux)

	return s, nil
}

// WithHost sets the listen host.
func WithHost(host string) Option {
	return func(s *Server) error {
		s.host = host
		return nil
	}
}

// WithPort sets the listen port.
func WithPort(port string) Option {
	return func(s *Server) error {
		s.port = port
		return nil
	}
}

// WithLogger overrides the default logrus logger.
func WithLogger(l *logrus.Logger) Option {
	return func(s *Server) error {
		s.log = l
		return nil
	}
}

// WithCacheCapacity sets the Analyze result-cache size, in entries.
func WithCacheCapacity(n int) Option {
	return func(s *Server) error {
		s.analyze = cache.New(n, tdl.Analyze)
		return nil
	}
}

// BaseURL returns the server's externally visible base URL.
func (s *Server) BaseURL() string {
	return s.scheme + "://" + s.Addr
}

// Router exposes the server's handler for tests and alternate listeners.
func (s *Server) Router() http.Handler {
	return s.Handler
}

// requestLogger wraps h, logging method/path/request-id/duration per
// request via logrus in structured (field-based) form.
func requestLogger(log *logrus.Logger, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := uuid.NewString()
		w.Header().Set("X-Request-Id", reqID)

		h.ServeHTTP(w, r)

		log.WithFields(logrus.Fields{
			"request_id": reqID,
			"method":     r.Method,
			"path":       r.URL.Path,
			"duration":   time.Since(start).String(),
		}).Info("request handled")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
