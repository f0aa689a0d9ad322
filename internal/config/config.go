// Package config handles workspace configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config represents workspace configuration stored in .wikinet/config.json.
type Config struct {
	DataPath     string `json:"data_path"`                // Path to the people CSV, relative to the workspace root
	Language     string `json:"language,omitempty"`       // Wikipedia language edition, default "en"
	UserAgent    string `json:"user_agent,omitempty"`     // Overrides the built-in User-Agent
	MaxLinks     int    `json:"max_links,omitempty"`      // Per-page outgoing link cap, -1 = no cap
	CacheTTLDays int    `json:"cache_ttl_days,omitempty"` // Cache entry lifetime in days, -1 = never expires
}

const (
	WorkspaceDir = ".wikinet"
	ConfigFile   = "config.json"
	CacheDir     = "cache"
	CacheFile    = "links.db"

	// DefaultLanguage is the Wikipedia edition queried when unset.
	DefaultLanguage = "en"

	// DefaultMaxLinks matches the dashboard's default link cap.
	DefaultMaxLinks = 1000

	// DefaultCacheTTLDays is how long cached link sets stay fresh.
	DefaultCacheTTLDays = 7
)

// WorkspacePath returns the path to the .wikinet directory from a root path.
func WorkspacePath(root string) string {
	return filepath.Join(root, WorkspaceDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, WorkspaceDir, ConfigFile)
}

// CachePath returns the path to the cache directory from a root path.
func CachePath(root string) string {
	return filepath.Join(root, WorkspaceDir, CacheDir)
}

// CacheDBPath returns the path to links.db from a root path.
func CacheDBPath(root string) string {
	return filepath.Join(root, WorkspaceDir, CacheDir, CacheFile)
}

// IsWorkspace checks if the given path contains a wikinet workspace.
func IsWorkspace(root string) bool {
	info, err := os.Stat(WorkspacePath(root))
	return err == nil && info.IsDir()
}

// FindWorkspace walks up from the given path to find a wikinet workspace.
// Returns the workspace root path or an error if not found.
func FindWorkspace(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsWorkspace(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a wikinet workspace (no .wikinet directory found)")
		}
		abs = parent
	}
}

// Load reads configuration from the workspace at the given root.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Save writes configuration to the workspace at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// EffectiveLanguage returns the configured language or the default.
func (c *Config) EffectiveLanguage() string {
	if c.Language != "" {
		return c.Language
	}
	return DefaultLanguage
}

// EffectiveMaxLinks returns the configured link cap or the default.
// A configured value of -1 means no cap.
func (c *Config) EffectiveMaxLinks() int {
	switch {
	case c.MaxLinks < 0:
		return 0
	case c.MaxLinks == 0:
		return DefaultMaxLinks
	default:
		return c.MaxLinks
	}
}

// EffectiveCacheTTL returns the configured cache lifetime or the default.
// A configured value of -1 means entries never expire.
func (c *Config) EffectiveCacheTTL() time.Duration {
	switch {
	case c.CacheTTLDays < 0:
		return 0
	case c.CacheTTLDays == 0:
		return DefaultCacheTTLDays * 24 * time.Hour
	default:
		return time.Duration(c.CacheTTLDays) * 24 * time.Hour
	}
}

// DataFilePath resolves the people CSV path against the workspace root.
func (c *Config) DataFilePath(root string) string {
	p := ExpandPath(c.DataPath)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

// ValidateDataPath checks that the people CSV exists and is a regular file.
func ValidateDataPath(root, path string) error {
	if path == "" {
		return fmt.Errorf("data_path is required")
	}

	resolved := ExpandPath(path)
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(root, resolved)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return fmt.Errorf("data file does not exist: %s", resolved)
	}
	if info.IsDir() {
		return fmt.Errorf("data path is a directory: %s", resolved)
	}

	return nil
}

// ValidateLanguage checks that the language looks like a Wikipedia
// subdomain label.
func ValidateLanguage(lang string) error {
	if lang == "" {
		return nil // Empty defaults to "en"
	}

	for _, r := range lang {
		ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
		if !ok {
			return fmt.Errorf("invalid language %q: use a lowercase code like en or es", lang)
		}
	}

	return nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
