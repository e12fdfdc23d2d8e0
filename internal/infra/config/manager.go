package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/pelletier/go-toml/v2"
)

// Ensure Manager implements domain.SettingsManager.
var _ domain.SettingsManager = (*Manager)(nil)

// Manager writes individual keys back to the settings file.
type Manager struct {
	dataDir string // Directory holding config.toml
}

// NewManager creates a new Manager for dataDir.
func NewManager(dataDir string) *Manager {
	return &Manager{dataDir: dataDir}
}

// Path returns the settings file path.
func (m *Manager) Path() string {
	return domain.ConfigPath(m.dataDir)
}

// Set writes key = value, keeping every other entry of the file.
// The file and its directory are created if missing.
func (m *Manager) Set(key, value string) error {
	section, name, kind, err := splitKey(key)
	if err != nil {
		return err
	}
	typed, err := typedValue(kind, value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}

	raw, err := m.readRaw()
	if err != nil {
		return err
	}
	table, ok := raw[section].(map[string]any)
	if !ok {
		table = make(map[string]any)
		raw[section] = table
	}
	table[name] = typed

	data, err := toml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(m.Path()), 0700); err != nil {
		return err
	}
	return os.WriteFile(m.Path(), data, 0600)
}

func (m *Manager) readRaw() (map[string]any, error) {
	raw := make(map[string]any)
	data, err := os.ReadFile(m.Path())
	if errors.Is(err, os.ErrNotExist) {
		return raw, nil
	}
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", m.Path(), err)
	}
	return raw, nil
}

func typedValue(kind keyKind, value string) (any, error) {
	switch kind {
	case boolKey:
		return strconv.ParseBool(value)
	case intKey:
		return strconv.ParseInt(value, 10, 64)
	default:
		return value, nil
	}
}
