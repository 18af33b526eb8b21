package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/gitlanes/pkg/buildinfo"
	"github.com/matzehuels/gitlanes/pkg/cache"
	"github.com/matzehuels/gitlanes/pkg/errors"
	"github.com/matzehuels/gitlanes/pkg/graph"
	gio "github.com/matzehuels/gitlanes/pkg/io"
	"github.com/matzehuels/gitlanes/pkg/pipeline"
)

// Defaults for [Config].
const (
	DefaultAddr            = ":8080"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMaxBodyBytes    = 8 << 20
	DefaultMaxLanes        = 256
	DefaultMaxCells        = 4 << 20
)

// Config configures a Server.
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64

	// MaxLanes caps the lane count of a request's stream.
	MaxLanes int
	// MaxCells caps nodes × row width, the number of cells a request renders.
	MaxCells int
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.MaxLanes <= 0 {
		c.MaxLanes = DefaultMaxLanes
	}
	if c.MaxCells <= 0 {
		c.MaxCells = DefaultMaxCells
	}
}

// Server serves the render API.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	cfg    Config
}

// New creates a server that renders through runner.
func New(runner *pipeline.Runner, logger *log.Logger, cfg Config) *Server {
	cfg.setDefaults()
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger, cfg: cfg}
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Post("/render", s.render)
	return r
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully
// within the configured timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", s.cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// RenderRequest is the body of POST /render.
type RenderRequest struct {
	Stream  graph.Stream     `json:"stream"`
	Options pipeline.Options `json:"options"`
}

// RenderResponse is the body of a successful POST /render.
type RenderResponse struct {
	RequestID  string            `json:"request_id"`
	StreamHash string            `json:"stream_hash"`
	Lanes      int               `json:"lanes"`
	Cached     bool              `json:"cached"`
	Artifacts  map[string]string `json:"artifacts"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Build: buildinfo.Current()})
}

func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	logger := s.logger.With("request_id", RequestIDFrom(r.Context()))

	var req RenderRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	if err := s.checkSize(req.Stream); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := gio.Validate(req.Stream); err != nil {
		s.writeError(w, r, err)
		return
	}

	runner := *s.runner
	if client := r.Header.Get(headerClientID); client != "" {
		runner.Keyer = cache.NewScopedKeyer(s.runner.Keyer, "client:"+client+":")
	}
	req.Options.Logger = logger
	req.Options.MaxLanes = s.cfg.MaxLanes
	req.Options.Refresh = false // cache bypass is CLI-only

	res, err := runner.Execute(r.Context(), req.Stream, req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := RenderResponse{
		RequestID:  RequestIDFrom(r.Context()),
		StreamHash: res.StreamHash,
		Lanes:      res.Lanes,
		Cached:     res.CacheInfo.RenderHit,
		Artifacts:  make(map[string]string, len(res.Artifacts)),
	}
	for format, data := range res.Artifacts {
		resp.Artifacts[format] = string(data)
	}
	writeJSON(w, http.StatusOK, resp)
}

// checkSize rejects streams whose rendering would exceed the configured lane
// or cell limits.
func (s *Server) checkSize(st graph.Stream) error {
	if err := st.CheckLanes(s.cfg.MaxLanes); err != nil {
		return err
	}
	if cells := len(st.Nodes) * (2*st.LaneCount() - 1); cells > s.cfg.MaxCells {
		return errors.New(errors.ErrCodeInvalidInput,
			"stream renders %d cells, limit is %d", cells, s.cfg.MaxCells)
	}
	return nil
}

// writeError maps err to a status code and writes an ErrorResponse.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "request_id", RequestIDFrom(r.Context()), "error", err)
	}
	writeJSON(w, status, ErrorResponse{
		Code:      code,
		Message:   errors.UserMessage(err),
		RequestID: RequestIDFrom(r.Context()),
	})
}

func statusFor(err error) int {
	switch {
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
