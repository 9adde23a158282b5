package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/eugecm/lox/pkg/interpreter"
)

// ConfigFileName is the file FindConfig looks for.
const ConfigFileName = "lox.yml"

// MaxCallDepthLimit caps max_call_depth below the point where deep recursion
// would exhaust the goroutine stack.
const MaxCallDepthLimit = 100000

// Config holds interpreter and REPL settings, usually read from lox.yml.
type Config struct {
	Path            string
	MaxCallDepth    int
	EchoExpressions bool
	HistoryFile     string
	Prompt          string
}

type configFile struct {
	MaxCallDepth    *int    `yaml:"max_call_depth"`
	EchoExpressions *bool   `yaml:"echo_expressions"`
	HistoryFile     *string `yaml:"history_file"`
	Prompt          *string `yaml:"prompt"`
}

// ValidationError aggregates configuration validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// DefaultConfig returns the settings used when no lox.yml exists.
func DefaultConfig() Config {
	return Config{
		MaxCallDepth: interpreter.DefaultMaxCallDepth,
		HistoryFile:  "~/.lox_history",
		Prompt:       "> ",
	}
}

// LoadConfig parses a lox.yml file over the defaults. An empty file yields
// the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return cfg, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return cfg, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config: parse %s: %w", absPath, err)
	}

	cfg.Path = absPath
	if err := raw.apply(&cfg); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

func (raw configFile) apply(cfg *Config) error {
	var errs ValidationError
	if raw.MaxCallDepth != nil {
		switch depth := *raw.MaxCallDepth; {
		case depth <= 0:
			errs.Issues = append(errs.Issues, fmt.Sprintf("max_call_depth must be positive, got %d", depth))
		case depth > MaxCallDepthLimit:
			errs.Issues = append(errs.Issues, fmt.Sprintf("max_call_depth must be at most %d, got %d", MaxCallDepthLimit, depth))
		default:
			cfg.MaxCallDepth = *raw.MaxCallDepth
		}
	}
	if raw.EchoExpressions != nil {
		cfg.EchoExpressions = *raw.EchoExpressions
	}
	if raw.HistoryFile != nil {
		if strings.TrimSpace(*raw.HistoryFile) == "" {
			errs.Issues = append(errs.Issues, "history_file must be a non-empty path")
		} else {
			cfg.HistoryFile = *raw.HistoryFile
		}
	}
	if raw.Prompt != nil {
		cfg.Prompt = *raw.Prompt
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// FindConfig walks up from start looking for lox.yml. It returns "" when
// none exists.
func FindConfig(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("config: resolve %s: %w", start, err)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("config: stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// HistoryPath expands a leading ~ in HistoryFile.
func (c Config) HistoryPath() (string, error) {
	path := c.HistoryFile
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("config: locate home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path, nil
}

func (c Config) interpreterOptions(out io.Writer) interpreter.Options {
	return interpreter.Options{
		Output:          out,
		MaxCallDepth:    c.MaxCallDepth,
		EchoExpressions: c.EchoExpressions,
	}
}
