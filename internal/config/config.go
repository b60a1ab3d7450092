// Package config loads and writes the workspace configuration file
// .behave/config.yaml, with BEHAVE_* environment overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/behave/pkg/domain"
)

const (
	// Dir is the configuration directory under the workspace.
	Dir = ".behave"
	// FileName is the configuration file inside Dir.
	FileName = "config.yaml"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "BEHAVE_"
)

// Store backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// MCP transports.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

type Config struct {
	Dir     string       `mapstructure:"dir" yaml:"dir" json:"dir"`
	Catalog string       `mapstructure:"catalog" yaml:"catalog" json:"catalog"`
	Store   StoreConfig  `mapstructure:"store" yaml:"store" json:"store"`
	HTTP    HTTPConfig   `mapstructure:"http" yaml:"http" json:"http"`
	MCP     MCPConfig    `mapstructure:"mcp" yaml:"mcp" json:"mcp"`
	Log     LogConfig    `mapstructure:"log" yaml:"log" json:"log"`
	Limits  LimitsConfig `mapstructure:"limits" yaml:"limits" json:"limits"`
}

type StoreConfig struct {
	Backend string      `mapstructure:"backend" yaml:"backend" json:"backend"`
	Redis   RedisConfig `mapstructure:"redis" yaml:"redis" json:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr" yaml:"addr" json:"addr"`
	Password string `mapstructure:"password" yaml:"password,omitempty" json:"password,omitempty"`
	DB       int    `mapstructure:"db" yaml:"db" json:"db"`
	Prefix   string `mapstructure:"prefix" yaml:"prefix" json:"prefix"`
}

type HTTPConfig struct {
	Port int `mapstructure:"port" yaml:"port" json:"port"`
}

type MCPConfig struct {
	Transport string `mapstructure:"transport" yaml:"transport" json:"transport"`
	Port      int    `mapstructure:"port" yaml:"port" json:"port"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level" json:"level"`
}

type LimitsConfig struct {
	MaxScriptBytes int `mapstructure:"max_script_bytes" yaml:"max_script_bytes" json:"max_script_bytes"`
}

// Keys lists every settable key in dotted form. Each has an environment
// override named EnvPrefix + the key upper-cased with dots as underscores.
var Keys = []string{
	"dir",
	"catalog",
	"store.backend",
	"store.redis.addr",
	"store.redis.password",
	"store.redis.db",
	"store.redis.prefix",
	"http.port",
	"mcp.transport",
	"mcp.port",
	"log.level",
	"limits.max_script_bytes",
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Dir:     ".",
		Catalog: domain.CatalogFileName,
		Store: StoreConfig{
			Backend: BackendFile,
			Redis:   RedisConfig{Addr: "localhost:6379", Prefix: "behave:script:"},
		},
		HTTP:   HTTPConfig{Port: 8080},
		MCP:    MCPConfig{Transport: TransportStdio, Port: 8081},
		Log:    LogConfig{Level: "info"},
		Limits: LimitsConfig{MaxScriptBytes: 1 << 20},
	}
}

// Path returns the configuration file path for a workspace directory.
func Path(workspace string) string {
	return filepath.Join(workspace, Dir, FileName)
}

// EnvName returns the environment override for a dotted key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Load reads the configuration for workspace. A missing file yields the
// defaults; environment overrides apply in both cases.
func Load(workspace string) (*Config, error) {
	return LoadFile(Path(workspace))
}

// LoadFile reads a configuration file in YAML or, by extension, JSON.
func LoadFile(path string) (*Config, error) {
	raw := map[string]any{}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	case strings.ToLower(filepath.Ext(path)) == ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	if raw == nil {
		raw = map[string]any{}
	}

	for _, key := range Keys {
		if val, ok := os.LookupEnv(EnvName(key)); ok {
			setPath(raw, key, val)
		}
	}

	cfg := Default()
	if err := decode(raw, cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(raw map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

// setPath stores val under a dotted key, creating intermediate maps.
func setPath(m map[string]any, key, val string) {
	parts := strings.Split(key, ".")
	for _, p := range parts[:len(parts)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[p] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = val
}

// Set assigns a dotted key from its textual form, as the config command does.
func (c *Config) Set(key, val string) error {
	known := false
	for _, k := range Keys {
		if k == key {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown config key %q", key)
	}
	if key == "catalog" {
		return c.SetCatalogPath(val)
	}

	raw := map[string]any{}
	setPath(raw, key, val)
	next := *c
	if err := decode(raw, &next); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

// SetCatalogPath records the catalog location. The file must be named
// util_verbs.nss.
func (c *Config) SetCatalogPath(path string) error {
	if err := domain.CheckCatalogPath(path); err != nil {
		return err
	}
	c.Catalog = path
	return nil
}

// Validate checks enumerated fields and the catalog file name.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendFile, BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("store.backend must be one of file, memory, redis; got %q", c.Store.Backend)
	}
	switch c.MCP.Transport {
	case TransportStdio, TransportSSE:
	default:
		return fmt.Errorf("mcp.transport must be stdio or sse; got %q", c.MCP.Transport)
	}
	if c.Catalog != "" {
		if err := domain.CheckCatalogPath(c.Catalog); err != nil {
			return err
		}
	}
	if c.Limits.MaxScriptBytes < 0 {
		return fmt.Errorf("limits.max_script_bytes must not be negative")
	}
	return nil
}

// Save writes cfg to the workspace configuration file.
func Save(workspace string, cfg *Config) error {
	path := Path(workspace)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace config: %w", err)
	}
	return nil
}
