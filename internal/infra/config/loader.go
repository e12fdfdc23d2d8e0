// Package config provides settings loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/pelletier/go-toml/v2"
)

// Ensure Loader implements domain.SettingsLoader.
var _ domain.SettingsLoader = (*Loader)(nil)

// keyKind is the TOML value type of a settings key.
type keyKind int

const (
	stringKey keyKind = iota
	boolKey
	intKey
)

// knownKeys maps every recognized section to its keys.
var knownKeys = map[string]map[string]keyKind{
	"boards": {"sort_order": stringKey, "grid_layout": boolKey},
	"tasks":  {"sort_order": stringKey, "show_completed": boolKey},
	"trash":  {"retention_days": intKey, "sweep_batch_size": intKey, "sweep_interval": stringKey},
	"log":    {"level": stringKey},
	"store":  {"path": stringKey},
}

// Loader loads settings from the TOML file in the data directory.
type Loader struct {
	dataDir string // Directory holding config.toml
}

// NewLoader creates a new Loader for dataDir.
func NewLoader(dataDir string) *Loader {
	return &Loader{dataDir: dataDir}
}

// DefaultDataDir returns $FINITO_HOME, or the finito directory under the
// user config home ($XDG_CONFIG_HOME or ~/.config).
func DefaultDataDir() string {
	if dir := os.Getenv(domain.DataDirEnv); dir != "" {
		return dir
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.AppDataDir(configHome)
}

// Path returns the settings file path.
func (l *Loader) Path() string {
	return domain.ConfigPath(l.dataDir)
}

// Load returns the defaults merged with the settings file.
// A missing file yields the defaults. Unknown keys become warnings.
func (l *Loader) Load() (*domain.Settings, error) {
	settings := domain.NewDefaultSettings()

	data, err := os.ReadFile(l.Path())
	if errors.Is(err, os.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", l.Path(), err)
	}
	warnings := unknownKeys(raw)

	// Decoding over the defaults keeps every key the file leaves out
	if err := toml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", l.Path(), err)
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("load %s: %w", l.Path(), err)
	}
	settings.Warnings = warnings
	return settings, nil
}

// unknownKeys returns a sorted warning for each section or key not in knownKeys.
func unknownKeys(raw map[string]any) []string {
	var warnings []string
	for section, value := range raw {
		keys, ok := knownKeys[section]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
			continue
		}
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("expected table: %s", section))
			continue
		}
		for k := range m {
			if _, ok := keys[k]; !ok {
				warnings = append(warnings, fmt.Sprintf("unknown key in [%s]: %s", section, k))
			}
		}
	}
	sort.Strings(warnings)
	return warnings
}

// splitKey splits a dotted key like "boards.sort_order" and reports its kind.
func splitKey(key string) (section, name string, kind keyKind, err error) {
	section, name, ok := strings.Cut(key, ".")
	if !ok {
		return "", "", 0, fmt.Errorf("key %q must be <section>.<name>", key)
	}
	keys, ok := knownKeys[section]
	if !ok {
		return "", "", 0, fmt.Errorf("unknown section %q", section)
	}
	kind, ok = keys[name]
	if !ok {
		return "", "", 0, fmt.Errorf("unknown key %q in [%s]", name, section)
	}
	return section, name, kind, nil
}
