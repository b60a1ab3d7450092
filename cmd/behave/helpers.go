package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/behave/internal/presentation/tui"
	"github.com/aretw0/behave/pkg/compiler"
	"github.com/aretw0/behave/pkg/domain"
	"github.com/aretw0/behave/pkg/ports"
)

// scriptName accepts either a control script name or a behaviour name.
func scriptName(arg string) string {
	base := filepath.Base(arg)
	if strings.HasSuffix(strings.ToLower(base), domain.ScriptExt) {
		return base
	}
	return domain.ControlFileName(base)
}

// loadCatalog returns the configured catalog, or nil when the store has none.
func loadCatalog(ctx context.Context, e *env, status *tui.Status) (domain.Catalog, error) {
	catalog, diags, err := e.ws.LoadCatalog(ctx, e.cfg.Catalog)
	if errors.Is(err, ports.ErrScriptNotFound) {
		e.logger.Debug("no catalog found, skipping catalog checks", "catalog", e.cfg.Catalog)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	printDiagnostics(status, domain.CatalogFileName, diags)
	return catalog, nil
}

func printDiagnostics(status *tui.Status, script string, diags []compiler.Diagnostic) {
	for _, d := range diags {
		status.Warn("%s:%d: %s: %q", script, d.Line, d.Reason, d.Text)
	}
}

// encode writes v as yaml or json.
func encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	}
	return fmt.Errorf("unknown format %q (want yaml or json)", format)
}
