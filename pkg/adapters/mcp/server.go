package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/behave/internal/dto"
	"github.com/aretw0/behave/internal/logging"
	"github.com/aretw0/behave/internal/presentation/graph"
	"github.com/aretw0/behave/internal/sanitizer"
	"github.com/aretw0/behave/internal/validator"
	"github.com/aretw0/behave/pkg/compiler"
	"github.com/aretw0/behave/pkg/domain"
)

// ScriptsURI is the resource listing the control scripts of the library.
const ScriptsURI = "behave://scripts"

// Library lists control scripts for the scripts resource.
type Library interface {
	ListBehaviours(ctx context.Context) ([]string, error)
}

// CatalogResult is the output of parse_catalog.
type CatalogResult struct {
	Verbs       domain.Catalog        `json:"verbs" jsonschema_description:"Actions declared in util_verbs.nss, in file order"`
	Duplicates  []string              `json:"duplicates,omitempty" jsonschema_description:"Action names declared more than once"`
	Diagnostics []compiler.Diagnostic `json:"diagnostics,omitempty" jsonschema_description:"Lines skipped while parsing"`
}

// BehaviourResult is the output of parse_behaviour.
type BehaviourResult struct {
	Behaviour   dto.Behaviour         `json:"behaviour" jsonschema_description:"The parsed behaviour, followers by context name"`
	Diagnostics []compiler.Diagnostic `json:"diagnostics,omitempty" jsonschema_description:"Lines skipped while parsing"`
}

// RenderResult is the output of render_behaviour.
type RenderResult struct {
	ControlName string `json:"control_name" jsonschema_description:"Conventional control script file name"`
	Control     string `json:"control" jsonschema_description:"Generated control script text"`
	StubName    string `json:"stub_name" jsonschema_description:"Conventional checkcues script file name"`
	Stub        string `json:"stub" jsonschema_description:"Generated checkcues script text"`
}

// GraphResult is the output of graph_behaviour.
type GraphResult struct {
	Mermaid string `json:"mermaid" jsonschema_description:"Mermaid flowchart of follower edges"`
}

// ValidateResult is the output of validate_behaviour.
type ValidateResult struct {
	Valid      bool             `json:"valid" jsonschema_description:"True when the behaviour has no structural violations"`
	Violations []string         `json:"violations,omitempty" jsonschema_description:"Structural violations"`
	Findings   validator.Report `json:"findings,omitempty" jsonschema_description:"Lint findings"`
}

// Server exposes the compiler as MCP tools.
type Server struct {
	library   Library
	parser    *compiler.Parser
	sanitizer *sanitizer.Sanitizer
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithLibrary enables the behave://scripts resource.
func WithLibrary(lib Library) Option {
	return func(s *Server) { s.library = lib }
}

// WithLogger sets the logger for rejected input.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithMaxScriptBytes bounds inbound script text.
func WithMaxScriptBytes(n int) Option {
	return func(s *Server) { s.sanitizer = sanitizer.New(n) }
}

// NewServer creates a new MCP Server instance.
func NewServer(version string, opts ...Option) *Server {
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
	s.parser = compiler.NewParser(compiler.WithLogger(s.logger))
	s.mcpServer = server.NewMCPServer("behave-mcp", strings.TrimSpace(version))
	s.registerTools()
	if s.library != nil {
		s.registerResources()
	}
	return s
}

// MCPServer exposes the underlying server, mainly for tests.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx ends.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("parse_catalog",
		mcp.WithDescription("Parse util_verbs.nss text into the list of actual verbs."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Full text of util_verbs.nss")),
		mcp.WithOutputSchema[CatalogResult](),
	), mcp.NewStructuredToolHandler(s.handleParseCatalog))

	s.mcpServer.AddTool(mcp.NewTool("parse_behaviour",
		mcp.WithDescription("Parse the header block of a behaviour control script (b_*.nss)."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Full text of the control script")),
		mcp.WithOutputSchema[BehaviourResult](),
	), mcp.NewStructuredToolHandler(s.handleParseBehaviour))

	s.mcpServer.AddTool(mcp.NewTool("render_behaviour",
		mcp.WithDescription("Generate the control and checkcues scripts for a behaviour."),
		mcp.WithString("behaviour", mcp.Required(), mcp.Description("JSON behaviour as returned by parse_behaviour")),
		mcp.WithString("verb", mcp.Description("Render only this verb (optional)")),
		mcp.WithOutputSchema[RenderResult](),
	), mcp.NewStructuredToolHandler(s.handleRenderBehaviour))

	s.mcpServer.AddTool(mcp.NewTool("graph_behaviour",
		mcp.WithDescription("Export the verb follower graph as a Mermaid flowchart."),
		mcp.WithString("behaviour", mcp.Required(), mcp.Description("JSON behaviour as returned by parse_behaviour")),
		mcp.WithOutputSchema[GraphResult](),
	), mcp.NewStructuredToolHandler(s.handleGraphBehaviour))

	s.mcpServer.AddTool(mcp.NewTool("validate_behaviour",
		mcp.WithDescription("Check a behaviour's structure and lint it, optionally against util_verbs.nss."),
		mcp.WithString("behaviour", mcp.Required(), mcp.Description("JSON behaviour as returned by parse_behaviour")),
		mcp.WithString("catalog", mcp.Description("Full text of util_verbs.nss (optional)")),
		mcp.WithOutputSchema[ValidateResult](),
	), mcp.NewStructuredToolHandler(s.handleValidateBehaviour))
}

func (s *Server) text(args map[string]interface{}, key string) (string, error) {
	raw, _ := args[key].(string)
	clean, err := s.sanitizer.Sanitize(raw)
	if err != nil {
		s.logger.Warn("MCP: script rejected", "arg", key, "error", err, "size", len(raw))
		return "", fmt.Errorf("%s rejected: %w", key, err)
	}
	return clean, nil
}

func (s *Server) behaviour(args map[string]interface{}) (dto.Behaviour, error) {
	var d dto.Behaviour
	raw, err := s.text(args, "behaviour")
	if err != nil {
		return d, err
	}
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return d, fmt.Errorf("behaviour is not valid JSON: %w", err)
	}
	return d, nil
}

func (s *Server) handleParseCatalog(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (CatalogResult, error) {
	text, err := s.text(args, "text")
	if err != nil {
		return CatalogResult{}, err
	}
	catalog, diags := s.parser.ParseActionCatalog(compiler.Lines(text))
	if catalog == nil {
		catalog = domain.Catalog{}
	}
	return CatalogResult{Verbs: catalog, Duplicates: catalog.Duplicates(), Diagnostics: diags}, nil
}

func (s *Server) handleParseBehaviour(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (BehaviourResult, error) {
	text, err := s.text(args, "text")
	if err != nil {
		return BehaviourResult{}, err
	}
	b, diags, err := s.parser.ParseBehaviour(compiler.Lines(text))
	if err != nil {
		return BehaviourResult{}, err
	}
	return BehaviourResult{Behaviour: dto.FromDomain(b), Diagnostics: diags}, nil
}

func (s *Server) handleRenderBehaviour(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (RenderResult, error) {
	d, err := s.behaviour(args)
	if err != nil {
		return RenderResult{}, err
	}
	b, err := d.ToDomain()
	if err != nil {
		return RenderResult{}, err
	}

	res := RenderResult{
		ControlName: domain.ControlFileName(b.Name),
		StubName:    domain.StubFileName(b.Name),
	}
	if name, _ := args["verb"].(string); name != "" {
		v := b.Verb(name)
		if v == nil {
			return RenderResult{}, fmt.Errorf("verb %q is not declared", name)
		}
		res.Control = compiler.GenerateVerbControl(b, v)
		res.Stub = compiler.GenerateVerbCheckcues(b, v)
		return res, nil
	}
	res.Control = compiler.GenerateControlCode(b)
	res.Stub = compiler.GenerateStubCode(b)
	return res, nil
}

func (s *Server) handleGraphBehaviour(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (GraphResult, error) {
	d, err := s.behaviour(args)
	if err != nil {
		return GraphResult{}, err
	}
	b, err := d.ToDomain()
	if err != nil {
		return GraphResult{}, err
	}
	return GraphResult{Mermaid: graph.GenerateMermaid(b, nil)}, nil
}

func (s *Server) handleValidateBehaviour(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ValidateResult, error) {
	d, err := s.behaviour(args)
	if err != nil {
		return ValidateResult{}, err
	}
	b, err := d.ToDomain()
	if err != nil {
		var aggr *domain.AggregateError
		if !errors.As(err, &aggr) {
			return ValidateResult{}, err
		}
		res := ValidateResult{}
		for _, e := range aggr.Errors {
			res.Violations = append(res.Violations, e.Error())
		}
		return res, nil
	}

	var catalog domain.Catalog
	if _, ok := args["catalog"].(string); ok {
		text, err := s.text(args, "catalog")
		if err != nil {
			return ValidateResult{}, err
		}
		catalog, _ = s.parser.ParseActionCatalog(compiler.Lines(text))
		if catalog == nil {
			catalog = domain.Catalog{}
		}
	}
	return ValidateResult{Valid: true, Findings: validator.Lint(b, catalog)}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(ScriptsURI, "Behaviour control scripts",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		names, err := s.library.ListBehaviours(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list scripts: %w", err)
		}
		jsonBytes, _ := json.Marshal(names)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      ScriptsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
