package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/behave"
	"github.com/aretw0/behave/internal/cli"
	"github.com/aretw0/behave/internal/config"
	"github.com/aretw0/behave/pkg/adapters/file"
	"github.com/aretw0/behave/pkg/adapters/memory"
	"github.com/aretw0/behave/pkg/adapters/redis"
	"github.com/aretw0/behave/pkg/ports"
)

// env is everything a command needs, resolved from flags and configuration.
type env struct {
	workspace string
	cfg       *config.Config
	logger    *slog.Logger
	store     ports.ScriptStore
	ws        *behave.Workspace
	close     func() error
}

// loadConfig reads the workspace configuration and applies flag overrides.
func loadConfig(cmd *cobra.Command) (string, *config.Config, error) {
	dir, _ := cmd.Flags().GetString("dir")
	cfg, err := config.Load(dir)
	if err != nil {
		return "", nil, err
	}
	if backend, _ := cmd.Flags().GetString("store"); backend != "" {
		if err := cfg.Set("store.backend", backend); err != nil {
			return "", nil, err
		}
	}
	if catalog, _ := cmd.Flags().GetString("catalog"); catalog != "" {
		if err := cfg.SetCatalogPath(catalog); err != nil {
			return "", nil, err
		}
	}
	return dir, cfg, nil
}

// openEnv builds the logger, the configured script store and the workspace.
func openEnv(cmd *cobra.Command) (*env, error) {
	dir, cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	debug, _ := cmd.Flags().GetBool("debug")
	logger, err := cli.CreateLogger(debug, cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	e := &env{workspace: dir, cfg: cfg, logger: logger, close: func() error { return nil }}
	scripts := filepath.Join(dir, cfg.Dir)

	opts := []behave.Option{behave.WithLogger(logger)}
	switch cfg.Store.Backend {
	case config.BackendFile:
		e.store = file.New(scripts, file.WithLogger(logger))
		catalogDir := filepath.Dir(cfg.Catalog)
		if !filepath.IsAbs(catalogDir) {
			catalogDir = filepath.Join(scripts, catalogDir)
		}
		opts = append(opts, behave.WithCatalogStore(file.New(catalogDir, file.WithLogger(logger))))
	case config.BackendMemory:
		e.store = memory.NewStore(nil)
	case config.BackendRedis:
		rs := redis.New(cfg.Store.Redis.Addr, cfg.Store.Redis.Password, cfg.Store.Redis.DB,
			redis.WithPrefix(cfg.Store.Redis.Prefix))
		e.store = rs
		e.close = rs.Close
		opts = append(opts, behave.WithLocker(redis.NewLocker(rs.Client(), rs.Prefix())))
	default:
		return nil, fmt.Errorf("unsupported store backend %q", cfg.Store.Backend)
	}
	opts = append(opts, behave.WithStore(e.store))

	ws, err := behave.New(scripts, opts...)
	if err != nil {
		return nil, err
	}
	e.ws = ws
	logger.Debug("workspace opened", "dir", scripts, "backend", cfg.Store.Backend)
	return e, nil
}
