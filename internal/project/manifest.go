package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ErrNoManifest is returned by LoadManifest when no vhdlcheck.toml exists
// in the start directory or any parent.
var ErrNoManifest = errors.New("no " + ManifestName + " found")

// Manifest is a loaded vhdlcheck.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
	meta   toml.MetaData
}

type Config struct {
	Check CheckConfig `toml:"check"`
	Paths PathsConfig `toml:"paths"`
}

type CheckConfig struct {
	MaxDiagnostics int    `toml:"max_diagnostics"`
	Jobs           int    `toml:"jobs"`
	Format         string `toml:"format"`
	Sort           bool   `toml:"sort"`
	Cache          bool   `toml:"cache"`
}

type PathsConfig struct {
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
}

// DefaultConfig is what `vhdlcheck init` writes and what applies without a
// manifest.
func DefaultConfig() Config {
	return Config{
		Check: CheckConfig{
			MaxDiagnostics: 200,
			Jobs:           0,
			Format:         "pretty",
		},
		Paths: PathsConfig{
			Include: []string{"**/*.json", "**/*.msgpack"},
			Exclude: []string{},
		},
	}
}

// LoadManifest finds and parses the manifest above startDir. Keys missing
// from the file keep their defaults.
func LoadManifest(startDir string) (*Manifest, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoManifest
	}
	return ReadManifest(path)
}

// ReadManifest parses the manifest at path.
func ReadManifest(path string) (*Manifest, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	if cfg.Check.MaxDiagnostics < 0 {
		return nil, fmt.Errorf("%s: [check].max_diagnostics must not be negative", path)
	}
	if cfg.Check.Jobs < 0 {
		return nil, fmt.Errorf("%s: [check].jobs must not be negative", path)
	}
	switch cfg.Check.Format {
	case "pretty", "short", "json", "sarif":
	default:
		return nil, fmt.Errorf("%s: [check].format %q is not one of pretty, short, json, sarif", path, cfg.Check.Format)
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
		meta:   meta,
	}, nil
}

// IsDefined reports whether the manifest file itself set key, e.g.
// IsDefined("check", "jobs").
func (m *Manifest) IsDefined(key ...string) bool {
	if m == nil {
		return false
	}
	return m.meta.IsDefined(key...)
}

// WriteManifest writes cfg to dir/vhdlcheck.toml and refuses to overwrite.
func WriteManifest(dir string, cfg Config) (string, error) {
	path := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("project already initialized: %s exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}
	// #nosec G304 -- path is built from caller's directory
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, f.Close()
}
