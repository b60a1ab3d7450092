package compiler

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/behave/internal/logging"
	"github.com/aretw0/behave/pkg/domain"
)

// Diagnostic reports a line that was skipped without failing the parse.
type Diagnostic struct {
	Line   int    `json:"line"` // 1-based
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s: %q", d.Line, d.Reason, d.Text)
}

// Parser reads catalog and behaviour scripts.
// A Parser holds no per-parse state and is safe for concurrent use.
type Parser struct {
	logger       *slog.Logger
	onDiagnostic func(Diagnostic)
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger that receives diagnostics at Warn level.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// WithDiagnosticHandler registers a callback invoked for every diagnostic.
func WithDiagnosticHandler(fn func(Diagnostic)) Option {
	return func(p *Parser) {
		p.onDiagnostic = fn
	}
}

// NewParser creates a new parser instance.
func NewParser(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logging.NewNop()
	}
	return p
}

var defaultParser = NewParser()

// ParseActionCatalog parses util_verbs.nss content with a default parser.
func ParseActionCatalog(lines []string) domain.Catalog {
	catalog, _ := defaultParser.ParseActionCatalog(lines)
	return catalog
}

// ParseBehaviour parses a control script with a default parser.
func ParseBehaviour(lines []string) (*domain.Behaviour, error) {
	b, _, err := defaultParser.ParseBehaviour(lines)
	return b, err
}

// diagnostics collects the skipped lines of one parse.
type diagnostics struct {
	p    *Parser
	kind string
	list []Diagnostic
}

func (d *diagnostics) report(idx int, text, reason string) {
	diag := Diagnostic{Line: idx + 1, Text: text, Reason: reason}
	d.list = append(d.list, diag)
	d.p.logger.Warn("skipped line", "script", d.kind, "line", diag.Line, "reason", reason, "text", text)
	if d.p.onDiagnostic != nil {
		d.p.onDiagnostic(diag)
	}
}

func parseErrorf(idx int, format string, args ...any) *domain.ParseError {
	line := 0
	if idx >= 0 {
		line = idx + 1
	}
	return &domain.ParseError{Line: line, Msg: fmt.Sprintf(format, args...)}
}
