package behave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/behave/internal/logging"
	"github.com/aretw0/behave/pkg/adapters/file"
	"github.com/aretw0/behave/pkg/adapters/memory"
	"github.com/aretw0/behave/pkg/compiler"
	"github.com/aretw0/behave/pkg/domain"
	"github.com/aretw0/behave/pkg/ports"
)

// stubLockTTL bounds how long a crashed writer can block stub merges.
const stubLockTTL = 10 * time.Second

// Workspace is the high-level entry point for loading and saving behaviour scripts.
// It enforces the script naming conventions at the I/O boundary and merges
// checkcues stubs instead of overwriting them.
type Workspace struct {
	store        ports.ScriptStore
	catalogStore ports.ScriptStore
	locker       ports.Locker
	parser       *compiler.Parser
	logger       *slog.Logger
	Name         string
}

// Option defines a functional option for configuring the Workspace.
type Option func(*Workspace)

// WithStore injects a custom ScriptStore, bypassing the default directory store.
func WithStore(store ports.ScriptStore) Option {
	return func(w *Workspace) {
		w.store = store
	}
}

// WithCatalogStore reads util_verbs.nss from a different store than the behaviours.
func WithCatalogStore(store ports.ScriptStore) Option {
	return func(w *Workspace) {
		w.catalogStore = store
	}
}

// WithLocker sets the locker used around stub merges (default: in-process).
func WithLocker(locker ports.Locker) Option {
	return func(w *Workspace) {
		w.locker = locker
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workspace) {
		w.logger = logger
	}
}

// New initializes a Workspace.
// By default, scripts are read from and written to dir.
// If WithStore is provided, dir is only used as a label.
func New(dir string, opts ...Option) (*Workspace, error) {
	w := &Workspace{}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logging.NewNop()
	}

	if w.store == nil {
		if dir == "" {
			return nil, fmt.Errorf("dir is required when no custom store is provided")
		}
		absPath, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		w.store = file.New(absPath, file.WithLogger(w.logger))
		w.Name = filepath.Base(absPath)
	} else if dir != "" {
		w.Name = filepath.Base(dir)
	}

	if w.Name != "" {
		w.logger = w.logger.With("workspace", w.Name)
	}
	if w.catalogStore == nil {
		w.catalogStore = w.store
	}
	if w.locker == nil {
		w.locker = memory.NewLocker()
	}
	w.parser = compiler.NewParser(compiler.WithLogger(w.logger))
	return w, nil
}

// Store exposes the underlying behaviour store.
func (w *Workspace) Store() ports.ScriptStore {
	return w.store
}

// Parser exposes the parser configured with the workspace logger.
func (w *Workspace) Parser() *compiler.Parser {
	return w.parser
}

// LoadCatalog reads and parses util_verbs.nss.
// A name whose base is not util_verbs.nss is rejected before anything is read.
func (w *Workspace) LoadCatalog(ctx context.Context, name string) (domain.Catalog, []compiler.Diagnostic, error) {
	if err := domain.CheckCatalogPath(name); err != nil {
		return nil, nil, err
	}
	data, err := w.catalogStore.Read(ctx, filepath.Base(name))
	if err != nil {
		return nil, nil, fmt.Errorf("load catalog: %w", err)
	}

	catalog, diags := w.parser.ParseActionCatalog(compiler.Lines(string(data)))
	if dups := catalog.Duplicates(); len(dups) > 0 {
		w.logger.Warn("catalog declares verbs more than once; the last declaration wins", "verbs", strings.Join(dups, ","))
	}
	w.logger.Debug("catalog loaded", "verbs", len(catalog))
	return catalog, diags, nil
}

// LoadBehaviour reads and parses a control script (b_*.nss).
// Like every workspace operation it uses only the base name of a path.
// On failure no behaviour is returned.
func (w *Workspace) LoadBehaviour(ctx context.Context, name string) (*domain.Behaviour, []compiler.Diagnostic, error) {
	if err := domain.CheckControlPath(name); err != nil {
		return nil, nil, err
	}
	name = filepath.Base(name)
	data, err := w.store.Read(ctx, name)
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", name, err)
	}

	b, diags, err := w.parser.ParseBehaviour(compiler.Lines(string(data)))
	if err != nil {
		return nil, diags, fmt.Errorf("load %s: %w", name, err)
	}
	w.logger.Debug("behaviour loaded", "script", name, "verbs", len(b.Verbs), "variables", len(b.Variables))
	return b, diags, nil
}

// SaveControl validates b and overwrites the control script.
func (w *Workspace) SaveControl(ctx context.Context, name string, b *domain.Behaviour) error {
	if err := domain.CheckControlPath(name); err != nil {
		return err
	}
	name = filepath.Base(name)
	if err := b.Validate(); err != nil {
		return err
	}
	if err := w.store.Write(ctx, name, []byte(compiler.GenerateControlCode(b))); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	w.logger.Info("control script written", "script", name)
	return nil
}

// SaveStub validates b and merges its checkcues sections into the stub script.
// Hand-written section bodies already in the store are kept.
func (w *Workspace) SaveStub(ctx context.Context, name string, b *domain.Behaviour) error {
	if err := domain.CheckStubPath(name); err != nil {
		return err
	}
	name = filepath.Base(name)
	if err := b.Validate(); err != nil {
		return err
	}

	unlock, err := w.locker.Lock(ctx, name, stubLockTTL)
	if err != nil {
		return fmt.Errorf("lock %s: %w", name, err)
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			w.logger.Warn("failed to release stub lock", "script", name, "error", err)
		}
	}()

	existing, err := w.store.Read(ctx, name)
	if err != nil && !errors.Is(err, ports.ErrScriptNotFound) {
		return fmt.Errorf("save %s: %w", name, err)
	}

	merged, err := compiler.MergeStub(string(existing), compiler.GenerateStubCode(b))
	if err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	if merged == string(existing) {
		w.logger.Debug("stub script unchanged", "script", name)
		return nil
	}
	if err := w.store.Write(ctx, name, []byte(merged)); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	w.logger.Info("stub script written", "script", name)
	return nil
}

// SaveBehaviour writes both scripts under their conventional names
// (b_<name>.nss and z_b_<name>.nss).
func (w *Workspace) SaveBehaviour(ctx context.Context, b *domain.Behaviour) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if err := w.SaveControl(ctx, domain.ControlFileName(b.Name), b); err != nil {
		return err
	}
	return w.SaveStub(ctx, domain.StubFileName(b.Name), b)
}

// ListBehaviours returns the control script names in the store, sorted.
func (w *Workspace) ListBehaviours(ctx context.Context) ([]string, error) {
	names, err := w.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []string{}
	for _, name := range names {
		if domain.CheckControlPath(name) == nil {
			out = append(out, name)
		}
	}
	return out, nil
}
