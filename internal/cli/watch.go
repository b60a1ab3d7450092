package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/behave"
	"github.com/aretw0/behave/internal/logging"
	"github.com/aretw0/behave/internal/presentation/tui"
	"github.com/aretw0/behave/internal/validator"
	"github.com/aretw0/behave/pkg/domain"
	"github.com/aretw0/behave/pkg/ports"
)

// WatchOptions configures RunWatch.
type WatchOptions struct {
	Workspace *behave.Workspace
	Source    ports.Watchable
	// Catalog, when set, is reloaded on change and used to lint every reload.
	Catalog  string
	Logger   *slog.Logger
	Out      io.Writer
	Debounce time.Duration
}

// Watcher regenerates checkcues stubs whenever a control script changes.
// It keeps the last good model per script so each reload can report what changed.
type Watcher struct {
	opts    WatchOptions
	status  *tui.Status
	models  map[string]*domain.Behaviour
	catalog domain.Catalog
}

// NewWatcher prepares a Watcher. Nil Logger and Out are replaced by no-op sinks.
func NewWatcher(opts WatchOptions) *Watcher {
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 100 * time.Millisecond
	}
	return &Watcher{
		opts:   opts,
		status: tui.NewStatus(opts.Out),
		models: make(map[string]*domain.Behaviour),
	}
}

// RunWatch loads every control script, then reacts to store events until ctx ends.
func RunWatch(ctx context.Context, opts WatchOptions) error {
	return NewWatcher(opts).Run(ctx)
}

// Run starts the watch loop. It returns nil when ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	events, err := w.opts.Source.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to watch store: %w", err)
	}

	if w.opts.Catalog != "" {
		w.reloadCatalog(ctx)
	}
	names, err := w.opts.Workspace.ListBehaviours(ctx)
	if err != nil {
		return fmt.Errorf("failed to list behaviours: %w", err)
	}
	for _, name := range names {
		w.Reload(ctx, name)
	}
	printSystemMessage(w.opts.Out, "Watching %d behaviours. Waiting for changes...", len(names))

	pending := map[string]bool{}
	var timer <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			w.opts.Logger.Info("Stopping watcher")
			return nil
		case name, ok := <-events:
			if !ok {
				return nil
			}
			pending[filepath.Base(name)] = true
			timer = time.After(w.opts.Debounce)
		case <-timer:
			timer = nil
			w.flush(ctx, pending)
			pending = map[string]bool{}
		}
	}
}

func (w *Watcher) flush(ctx context.Context, pending map[string]bool) {
	if pending[domain.CatalogFileName] && w.opts.Catalog != "" {
		w.reloadCatalog(ctx)
	}
	for name := range pending {
		if domain.CheckControlPath(name) == nil {
			w.Reload(ctx, name)
		}
	}
}

func (w *Watcher) reloadCatalog(ctx context.Context) {
	catalog, diags, err := w.opts.Workspace.LoadCatalog(ctx, w.opts.Catalog)
	if err != nil {
		w.status.Error("catalog: %v", err)
		return
	}
	for _, d := range diags {
		w.status.Warn("%s:%d: %s", domain.CatalogFileName, d.Line, d.Reason)
	}
	w.catalog = catalog
	w.status.Success("catalog loaded (%d verbs)", len(catalog))
}

// Reload parses one control script and merges its stub.
// A script that fails to parse keeps its previous model.
func (w *Watcher) Reload(ctx context.Context, name string) *domain.Behaviour {
	logger := w.opts.Logger.With("script", name)

	b, diags, err := w.opts.Workspace.LoadBehaviour(ctx, name)
	for _, d := range diags {
		w.status.Warn("%s:%d: %s", name, d.Line, d.Reason)
	}
	if err != nil {
		if errors.Is(err, ports.ErrScriptNotFound) {
			delete(w.models, name)
			logger.Info("control script removed")
			return nil
		}
		logger.Error("reload failed", "err", err)
		w.status.Error("%s: %v", name, err)
		return nil
	}

	stub := "z_" + name
	if err := w.opts.Workspace.SaveStub(ctx, stub, b); err != nil {
		logger.Error("stub merge failed", "err", err)
		w.status.Error("%s: %v", stub, err)
		return nil
	}

	if prev, ok := w.models[name]; ok {
		if diff := domain.Diff(prev, b); diff != nil {
			logger.Info("behaviour changed",
				"verbs_added", diff.VerbsAdded,
				"verbs_removed", diff.VerbsRemoved,
				"verbs_changed", diff.VerbsChanged,
				"variables_added", diff.VariablesAdded,
				"variables_removed", diff.VariablesRemoved,
			)
		}
	}
	w.models[name] = b

	for _, f := range validator.Lint(b, w.catalog) {
		w.status.Warn("%s: %s", name, f.String())
	}
	w.status.Success("%s reloaded (%d verbs)", name, len(b.Verbs))
	return b
}

// Model returns the last good model of a control script.
func (w *Watcher) Model(name string) (*domain.Behaviour, bool) {
	b, ok := w.models[name]
	return b, ok
}
