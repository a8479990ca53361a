// internal/config/config.go
//
// This package handles configuration and the .skillgap directory structure.
// The directory is created next to wherever `skillgap` is launched and holds
// config.yaml plus the session journal under logs/.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kingrea/skillgap/internal/roles"
)

const (
	// Dir is the name of the directory we create in the working directory
	Dir = ".skillgap"

	configFileName = "config.yaml"
	logFileName    = "session.log"
)

// ErrInvalidRole is returned when default_role does not name a role.
var ErrInvalidRole = errors.New("config: invalid default role")

const defaultProjectConfigYAML = `# skillgap configuration
version: 1

# Role selected when the analyzer opens: backend, frontend, or ml.
default_role: backend

upload:
  # File types suggested in the upload panel. Files are never opened, so this is a hint only.
  accept:
    - .pdf
    - .doc
    - .docx

display:
  alt_screen: true
  show_hero: true
  # Show the tail of .skillgap/logs/session.log under the view.
  log_panel: false
`

// UploadConfig captures the upload panel hints.
type UploadConfig struct {
	Accept []string `yaml:"accept"`
}

// DisplayConfig captures presentation toggles.
type DisplayConfig struct {
	AltScreen bool `yaml:"alt_screen"`
	ShowHero  bool `yaml:"show_hero"`
	LogPanel  bool `yaml:"log_panel"`
}

// ProjectConfig models .skillgap/config.yaml.
type ProjectConfig struct {
	Version     int           `yaml:"version"`
	DefaultRole string        `yaml:"default_role"`
	Upload      UploadConfig  `yaml:"upload"`
	Display     DisplayConfig `yaml:"display"`
}

// Config holds the runtime configuration.
type Config struct {
	// ProjectDir is the directory where the user ran `skillgap` from
	ProjectDir string

	// StateDir is ProjectDir/.skillgap
	StateDir string

	Project ProjectConfig

	defaultRole roles.Key
}

// InitDir creates the .skillgap directory structure in the given directory
// and writes a default config.yaml when none exists.
//
// Structure created:
// .skillgap/
// ├── config.yaml
// └── logs/        <- session.log journal
func InitDir(projectDir string) error {
	stateDir := filepath.Join(projectDir, Dir)
	if err := os.MkdirAll(filepath.Join(stateDir, "logs"), 0o755); err != nil {
		return fmt.Errorf("config: ensure state dir: %w", err)
	}
	return ensureProjectConfig(filepath.Join(stateDir, configFileName))
}

// Load reads .skillgap/config.yaml from projectDir. A missing file yields the
// defaults.
func Load(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir: projectDir,
		StateDir:   filepath.Join(projectDir, Dir),
		Project:    defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a config that is never read from disk, for tests and for
// running without a writable working directory.
func Default(projectDir string) *Config {
	cfg := &Config{
		ProjectDir: projectDir,
		StateDir:   filepath.Join(projectDir, Dir),
		Project:    defaultProjectConfig(),
	}
	cfg.Project.normalize()
	cfg.defaultRole, _ = roles.ParseKey(cfg.Project.DefaultRole)
	return cfg
}

// ConfigPath returns the on-disk location of config.yaml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.StateDir, configFileName)
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.StateDir, "logs")
}

// LogPath returns the session journal path.
func (c *Config) LogPath() string {
	return filepath.Join(c.LogsDir(), logFileName)
}

// DefaultRole returns the validated default role.
func (c *Config) DefaultRole() roles.Key {
	return c.defaultRole
}

// AcceptHint renders the upload filter hint, e.g. ".pdf, .doc, .docx".
func (c *Config) AcceptHint() string {
	return strings.Join(c.Project.Upload.Accept, ", ")
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version:     1,
		DefaultRole: roles.Keys()[0].String(),
		Upload:      UploadConfig{Accept: []string{".pdf", ".doc", ".docx"}},
		Display:     DisplayConfig{AltScreen: true, ShowHero: true},
	}
}

func (c *Config) loadProjectConfig() error {
	data, err := os.ReadFile(c.ConfigPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.Project.normalize()
			c.defaultRole, _ = roles.ParseKey(c.Project.DefaultRole)
			return nil
		}
		return fmt.Errorf("config: read %s: %w", c.ConfigPath(), err)
	}
	pc := defaultProjectConfig()
	if err := yaml.Unmarshal(data, &pc); err != nil {
		return fmt.Errorf("config: parse %s: %w", c.ConfigPath(), err)
	}
	pc.applyDefaults()
	pc.normalize()
	key, err := pc.validate()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.Project = pc
	c.defaultRole = key
	return nil
}

func (pc *ProjectConfig) applyDefaults() {
	defaults := defaultProjectConfig()
	if pc.Version == 0 {
		pc.Version = defaults.Version
	}
	if strings.TrimSpace(pc.DefaultRole) == "" {
		pc.DefaultRole = defaults.DefaultRole
	}
	if pc.Upload.Accept == nil {
		pc.Upload.Accept = defaults.Upload.Accept
	}
}

func (pc *ProjectConfig) normalize() {
	pc.DefaultRole = strings.ToLower(strings.TrimSpace(pc.DefaultRole))
	seen := map[string]struct{}{}
	accept := make([]string, 0, len(pc.Upload.Accept))
	for _, ext := range pc.Upload.Accept {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if _, dup := seen[ext]; dup {
			continue
		}
		seen[ext] = struct{}{}
		accept = append(accept, ext)
	}
	pc.Upload.Accept = accept
}

func (pc *ProjectConfig) validate() (roles.Key, error) {
	if pc.Version < 1 {
		return roles.Key{}, fmt.Errorf("config version must be >= 1")
	}
	key, err := roles.ParseKey(pc.DefaultRole)
	if err != nil {
		return roles.Key{}, fmt.Errorf("%w: %v", ErrInvalidRole, err)
	}
	for i, ext := range pc.Upload.Accept {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return roles.Key{}, fmt.Errorf("upload.accept[%d]: %q must look like .ext", i, ext)
		}
	}
	return key, nil
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644)
}
