// Package config loads the sqtui TOML configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/mkonda/sqtui/internal/logpath"
)

const defaultConfigPath = "~/.config/sqtui/config.toml"

const (
	defaultRefreshIntervalMS = 2000
	defaultLogTailLines      = 1000
	defaultSSHTimeoutMS      = 5000
)

// General holds polling and display settings.
type General struct {
	RefreshIntervalMS int      `toml:"refresh_interval_ms"`
	LogTailLines      int      `toml:"log_tail_lines"`
	AllUsers          bool     `toml:"all_users"`
	SqueueArgs        []string `toml:"squeue_args"`
}

// PathMapping rewrites a node-local path prefix to one visible from the
// login host.
type PathMapping struct {
	Prefix      string `toml:"prefix"`
	Replacement string `toml:"replacement"`
}

// Remote holds SSH fallback settings.
type Remote struct {
	SSHEnabled   bool          `toml:"ssh_enabled"`
	SSHTimeoutMS int           `toml:"ssh_timeout_ms"`
	PathMappings []PathMapping `toml:"path_mappings"`
}

// Config is the full sqtui configuration.
type Config struct {
	General General `toml:"general"`
	Remote  Remote  `toml:"remote"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		General: General{
			RefreshIntervalMS: defaultRefreshIntervalMS,
			LogTailLines:      defaultLogTailLines,
		},
		Remote: Remote{
			SSHEnabled:   true,
			SSHTimeoutMS: defaultSSHTimeoutMS,
		},
	}
}

// Load locates and parses the config, falling back to defaults when the
// file is missing. Recoverable problems (out-of-range values, malformed
// path mappings) are repaired and reported as warnings rather than errors.
func Load(path string) (Config, []string, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, nil, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil, nil
		}
		return Config{}, nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, nil, fmt.Errorf("read config: %w", err)
	}

	// Unmarshal over the defaults: keys absent from the file keep their
	// default values instead of collapsing to Go zero values.
	if err := toml.Unmarshal(bytes, &cfg); err != nil {
		return Config{}, nil, fmt.Errorf("parse config: %w", err)
	}

	var warnings []string

	if cfg.General.RefreshIntervalMS <= 0 {
		warnings = append(warnings, fmt.Sprintf("refresh_interval_ms %d is invalid, using %d", cfg.General.RefreshIntervalMS, defaultRefreshIntervalMS))
		cfg.General.RefreshIntervalMS = defaultRefreshIntervalMS
	}
	if cfg.General.LogTailLines <= 0 {
		warnings = append(warnings, fmt.Sprintf("log_tail_lines %d is invalid, using %d", cfg.General.LogTailLines, defaultLogTailLines))
		cfg.General.LogTailLines = defaultLogTailLines
	}
	if cfg.Remote.SSHTimeoutMS <= 0 {
		warnings = append(warnings, fmt.Sprintf("ssh_timeout_ms %d is invalid, using %d", cfg.Remote.SSHTimeoutMS, defaultSSHTimeoutMS))
		cfg.Remote.SSHTimeoutMS = defaultSSHTimeoutMS
	}

	var mappings []PathMapping
	for _, m := range cfg.Remote.PathMappings {
		if strings.TrimSpace(m.Prefix) == "" {
			warnings = append(warnings, "path mapping with empty prefix skipped")
			continue
		}
		mappings = append(mappings, m)
	}
	cfg.Remote.PathMappings = mappings

	return cfg, warnings, nil
}

// RefreshInterval returns the poll interval as a duration.
func (c Config) RefreshInterval() time.Duration {
	return time.Duration(c.General.RefreshIntervalMS) * time.Millisecond
}

// SSHTimeout returns the SSH connect timeout as a duration.
func (c Config) SSHTimeout() time.Duration {
	return time.Duration(c.Remote.SSHTimeoutMS) * time.Millisecond
}

// Mappings converts the configured path mappings for the resolver.
func (c Config) Mappings() []logpath.Mapping {
	mappings := make([]logpath.Mapping, 0, len(c.Remote.PathMappings))
	for _, m := range c.Remote.PathMappings {
		mappings = append(mappings, logpath.Mapping{Prefix: m.Prefix, Replacement: m.Replacement})
	}
	return mappings
}

// GenerateDefault returns a commented default config file.
func GenerateDefault() string {
	return fmt.Sprintf(`[general]
# Poll interval for the job list, in milliseconds.
refresh_interval_ms = %d
# Number of lines kept in the log tail window.
log_tail_lines = %d
# Show jobs from every user instead of just your own.
all_users = false
# Extra arguments appended to every squeue invocation.
squeue_args = []

[remote]
# Fall back to reading logs over SSH when the path is not visible locally.
ssh_enabled = true
ssh_timeout_ms = %d

# Rewrite node-local path prefixes to paths visible from this host.
# [[remote.path_mappings]]
# prefix = "/raid"
# replacement = "/nfs"
`, defaultRefreshIntervalMS, defaultLogTailLines, defaultSSHTimeoutMS)
}

// DefaultPath returns the expanded default config location.
func DefaultPath() (string, error) {
	return expandPath(defaultConfigPath)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
