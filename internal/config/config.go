package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hnrobert/credcheck/internal/hostfs"
)

type StoreMode string

const (
	// StoreReload rereads the store for every lookup.
	StoreReload StoreMode = "reload"
	// StoreSnapshot reads the store once per session.
	StoreSnapshot StoreMode = "snapshot"

	EnvConfig    = "CREDCHECK_CONFIG"
	EnvLogLevel  = "CREDCHECK_LOG_LEVEL"
	EnvLogDir    = "CREDCHECK_LOG_DIR"
	EnvStoreMode = "CREDCHECK_STORE_MODE"
	EnvHide      = "CREDCHECK_HIDE_PASSWORD"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Log    LogConfig    `yaml:"log"`
	Store  StoreConfig  `yaml:"store"`
	Prompt PromptConfig `yaml:"prompt"`
	Hash   HashConfig   `yaml:"hash"`
}

type LogConfig struct {
	// Level is the minimum level written: info, warn or error.
	Level string `yaml:"level"`
	// Dir enables daily log files under Dir/logs.
	Dir string `yaml:"dir,omitempty"`
}

type StoreConfig struct {
	Mode StoreMode `yaml:"mode"`
}

type PromptConfig struct {
	// HidePassword disables echo for the password when stdin is a terminal.
	HidePassword bool `yaml:"hide_password"`
}

// HashConfig holds the Argon2id cost used by credhash. Memory is in KiB.
type HashConfig struct {
	Memory  uint32 `yaml:"memory"`
	Time    uint32 `yaml:"time"`
	Threads uint8  `yaml:"threads"`
}

func Default() Config {
	return Config{
		Log:    LogConfig{Level: "warn"},
		Store:  StoreConfig{Mode: StoreReload},
		Prompt: PromptConfig{HidePassword: true},
		Hash:   HashConfig{Memory: 64 * 1024, Time: 3, Threads: 2},
	}
}

// Load reads the YAML file at path over the defaults. An empty path yields the
// defaults; a path that does not exist is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := hostfs.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := decode(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(b []byte, cfg *Config) error {
	d := yaml.NewDecoder(bytes.NewReader(b))
	d.KnownFields(true)
	if err := d.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overrides cfg from CREDCHECK_* variables looked up through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := getenv(EnvLogDir); v != "" {
		c.Log.Dir = v
	}
	if v := getenv(EnvStoreMode); v != "" {
		c.Store.Mode = StoreMode(strings.ToLower(strings.TrimSpace(v)))
	}
	if v := getenv(EnvHide); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvHide, v)
		}
		c.Prompt.HidePassword = b
	}
	return c.Validate()
}

func (c *Config) Validate() error {
	switch c.Store.Mode {
	case StoreReload, StoreSnapshot:
	case "":
		c.Store.Mode = StoreReload
	default:
		return fmt.Errorf("%w: store.mode %q", ErrInvalidConfig, c.Store.Mode)
	}
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "info", "warn", "warning", "error":
	case "":
		c.Log.Level = "warn"
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalidConfig, c.Log.Level)
	}
	return nil
}
