package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/behave/internal/dto"
	"github.com/aretw0/behave/internal/logging"
	"github.com/aretw0/behave/internal/presentation/graph"
	"github.com/aretw0/behave/internal/sanitizer"
	"github.com/aretw0/behave/internal/validator"
	"github.com/aretw0/behave/pkg/compiler"
	"github.com/aretw0/behave/pkg/domain"
	"github.com/aretw0/behave/pkg/ports"
)

// Library is the script source behind the /v1/scripts endpoints.
// *behave.Workspace satisfies it.
type Library interface {
	ListBehaviours(ctx context.Context) ([]string, error)
	LoadBehaviour(ctx context.Context, name string) (*domain.Behaviour, []compiler.Diagnostic, error)
}

// Server serves the collaborator operations over HTTP/JSON.
type Server struct {
	library   Library
	parser    *compiler.Parser
	sanitizer *sanitizer.Sanitizer
	metrics   *Metrics
	logger    *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLibrary enables the /v1/scripts endpoints.
func WithLibrary(lib Library) Option {
	return func(s *Server) { s.library = lib }
}

// WithLogger sets the logger for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithMaxScriptBytes bounds inbound script text.
func WithMaxScriptBytes(n int) Option {
	return func(s *Server) { s.sanitizer = sanitizer.New(n) }
}

// WithMetrics shares a metrics set between handlers.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// NewServer creates a Server with defaults for every unset option.
func NewServer(opts ...Option) *Server {
	s := &Server{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	if s.sanitizer == nil {
		s.sanitizer = sanitizer.New(0)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	s.parser = compiler.NewParser(compiler.WithLogger(s.logger))
	return s
}

// NewHandler builds the router: the /v1 API behind schema validation, plus
// /openapi.yaml, /metrics and /healthz.
func NewHandler(opts ...Option) (http.Handler, error) {
	s := NewServer(opts...)
	return s.Handler()
}

// Handler returns the server's router.
func (s *Server) Handler() (http.Handler, error) {
	doc, err := GetSwagger()
	if err != nil {
		return nil, err
	}
	validate, err := requestValidator(doc, s.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build request validator: %w", err)
	}

	r := chi.NewRouter()
	r.Use(s.metrics.Middleware)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(validate)
		r.Post("/catalog/parse", s.ParseCatalog)
		r.Post("/behaviours/parse", s.ParseBehaviour)
		r.Post("/behaviours/render", s.RenderBehaviour)
		r.Post("/behaviours/graph", s.GraphBehaviour)
		r.Post("/behaviours/lint", s.LintBehaviour)
		r.Get("/scripts", s.ListScripts)
		r.Get("/scripts/{name}", s.GetScript)
	})

	return enableCORS(r), nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type textRequest struct {
	Text string `json:"text"`
}

type behaviourRequest struct {
	Behaviour dto.Behaviour `json:"behaviour"`
	Verb      string        `json:"verb,omitempty"`
	Catalog   string        `json:"catalog,omitempty"`
}

type catalogResponse struct {
	Verbs       domain.Catalog        `json:"verbs"`
	Duplicates  []string              `json:"duplicates,omitempty"`
	Diagnostics []compiler.Diagnostic `json:"diagnostics,omitempty"`
}

type behaviourResponse struct {
	Behaviour   dto.Behaviour         `json:"behaviour"`
	Diagnostics []compiler.Diagnostic `json:"diagnostics,omitempty"`
}

type renderResponse struct {
	ControlName string `json:"control_name"`
	Control     string `json:"control"`
	StubName    string `json:"stub_name"`
	Stub        string `json:"stub"`
}

type errorBody struct {
	Error      string   `json:"error"`
	Line       int      `json:"line,omitempty"`
	Violations []string `json:"violations,omitempty"`
}

// ParseCatalog handles POST /v1/catalog/parse.
func (s *Server) ParseCatalog(w http.ResponseWriter, r *http.Request) {
	text, ok := s.readText(w, r)
	if !ok {
		return
	}
	catalog, diags := s.parser.ParseActionCatalog(compiler.Lines(text))
	if catalog == nil {
		catalog = domain.Catalog{}
	}
	writeJSON(w, http.StatusOK, catalogResponse{
		Verbs:       catalog,
		Duplicates:  catalog.Duplicates(),
		Diagnostics: diags,
	})
}

// ParseBehaviour handles POST /v1/behaviours/parse.
func (s *Server) ParseBehaviour(w http.ResponseWriter, r *http.Request) {
	text, ok := s.readText(w, r)
	if !ok {
		return
	}
	b, diags, err := s.parser.ParseBehaviour(compiler.Lines(text))
	if err != nil {
		s.metrics.ParseFailed("behaviour")
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, behaviourResponse{Behaviour: dto.FromDomain(b), Diagnostics: diags})
}

// RenderBehaviour handles POST /v1/behaviours/render.
// With "verb" set, only that verb's control function and checkcues section are returned.
func (s *Server) RenderBehaviour(w http.ResponseWriter, r *http.Request) {
	req, b, ok := s.readBehaviour(w, r)
	if !ok {
		return
	}
	resp := renderResponse{
		ControlName: domain.ControlFileName(b.Name),
		StubName:    domain.StubFileName(b.Name),
	}
	if req.Verb != "" {
		v := b.Verb(req.Verb)
		if v == nil {
			writeError(w, http.StatusUnprocessableEntity, errorBody{Error: fmt.Sprintf("verb %q is not declared", req.Verb)})
			return
		}
		resp.Control = compiler.GenerateVerbControl(b, v)
		resp.Stub = compiler.GenerateVerbCheckcues(b, v)
	} else {
		resp.Control = compiler.GenerateControlCode(b)
		resp.Stub = compiler.GenerateStubCode(b)
	}
	writeJSON(w, http.StatusOK, resp)
}

// GraphBehaviour handles POST /v1/behaviours/graph.
func (s *Server) GraphBehaviour(w http.ResponseWriter, r *http.Request) {
	_, b, ok := s.readBehaviour(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"mermaid": graph.GenerateMermaid(b, nil)})
}

// LintBehaviour handles POST /v1/behaviours/lint.
func (s *Server) LintBehaviour(w http.ResponseWriter, r *http.Request) {
	req, b, ok := s.readBehaviour(w, r)
	if !ok {
		return
	}
	var catalog domain.Catalog
	if req.Catalog != "" {
		text, err := s.sanitizer.Sanitize(req.Catalog)
		if err != nil {
			writeError(w, http.StatusBadRequest, errorBody{Error: err.Error()})
			return
		}
		catalog, _ = s.parser.ParseActionCatalog(compiler.Lines(text))
		if catalog == nil {
			catalog = domain.Catalog{}
		}
	}
	report := validator.Lint(b, catalog)
	if report == nil {
		report = validator.Report{}
	}
	writeJSON(w, http.StatusOK, map[string]validator.Report{"findings": report})
}

// ListScripts handles GET /v1/scripts.
func (s *Server) ListScripts(w http.ResponseWriter, r *http.Request) {
	if s.library == nil {
		writeError(w, http.StatusNotFound, errorBody{Error: "no script library configured"})
		return
	}
	names, err := s.library.ListBehaviours(r.Context())
	if err != nil {
		s.logger.Error("list scripts failed", "error", err)
		writeError(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"scripts": names})
}

// GetScript handles GET /v1/scripts/{name}.
func (s *Server) GetScript(w http.ResponseWriter, r *http.Request) {
	if s.library == nil {
		writeError(w, http.StatusNotFound, errorBody{Error: "no script library configured"})
		return
	}
	name := chi.URLParam(r, "name")
	b, diags, err := s.library.LoadBehaviour(r.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrParse) {
			s.metrics.ParseFailed("behaviour")
		}
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, behaviourResponse{Behaviour: dto.FromDomain(b), Diagnostics: diags})
}

func (s *Server) readText(w http.ResponseWriter, r *http.Request) (string, bool) {
	var body textRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.logger.Warn("invalid request body", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return "", false
	}
	text, err := s.sanitizer.Sanitize(body.Text)
	if err != nil {
		s.logger.Warn("script rejected", "path", r.URL.Path, "error", err, "size", len(body.Text))
		writeError(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return "", false
	}
	return text, true
}

func (s *Server) readBehaviour(w http.ResponseWriter, r *http.Request) (behaviourRequest, *domain.Behaviour, bool) {
	var req behaviourRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("invalid request body", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return req, nil, false
	}
	b, err := req.Behaviour.ToDomain()
	if err != nil {
		s.writeDomainError(w, err)
		return req, nil, false
	}
	return req, b, true
}

// writeDomainError maps typed errors to status codes.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	var (
		parseErr *domain.ParseError
		aggr     *domain.AggregateError
		fileErr  *domain.FilenameError
	)
	switch {
	case errors.Is(err, ports.ErrScriptNotFound):
		writeError(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.As(err, &fileErr):
		writeError(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.As(err, &aggr):
		body := errorBody{Error: "behaviour is not valid"}
		if errors.As(err, &parseErr) {
			body.Line = parseErr.Line
		}
		for _, e := range aggr.Errors {
			body.Violations = append(body.Violations, e.Error())
		}
		writeError(w, http.StatusUnprocessableEntity, body)
	case errors.As(err, &parseErr):
		writeError(w, http.StatusUnprocessableEntity, errorBody{Error: parseErr.Msg, Line: parseErr.Line})
	default:
		s.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, body errorBody) {
	writeJSON(w, status, body)
}
