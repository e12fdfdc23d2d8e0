package domain

import (
	"fmt"
	"path/filepath"
	"time"
)

// ConfigFileName is the name of the settings file in the data directory.
const ConfigFileName = "config.toml"

// StoreFileName is the default database file name in the data directory.
const StoreFileName = "finito.db"

// Settings holds user preferences and tunables.
// They are injected into use cases at construction.
// Fields are ordered to minimize memory padding.
type Settings struct {
	Warnings []string      `toml:"-"`
	Boards   BoardSettings `toml:"boards"`
	Tasks    TaskSettings  `toml:"tasks"`
	Trash    TrashSettings `toml:"trash"`
	Log      LogSettings   `toml:"log"`
	Store    StoreSettings `toml:"store"`
}

// BoardSettings holds settings from the [boards] section.
type BoardSettings struct {
	SortOrder  SortKey `toml:"sort_order,omitempty"` // Default board sort
	GridLayout bool    `toml:"grid_layout"`          // Show boards as a grid
}

// TaskSettings holds settings from the [tasks] section.
type TaskSettings struct {
	SortOrder     SortKey `toml:"sort_order,omitempty"` // Default task sort
	ShowCompleted bool    `toml:"show_completed"`       // Include the completed lane in listings
}

// TrashSettings holds settings from the [trash] section.
type TrashSettings struct {
	SweepInterval  string `toml:"sweep_interval,omitempty"`   // Duration between sweeps, e.g. "24h"
	RetentionDays  int    `toml:"retention_days,omitempty"`   // Days a trashed board is kept
	SweepBatchSize int    `toml:"sweep_batch_size,omitempty"` // Boards removed per sweep
}

// LogSettings holds settings from the [log] section.
type LogSettings struct {
	Level string `toml:"level,omitempty"` // debug, info, warn, error
}

// StoreSettings holds settings from the [store] section.
type StoreSettings struct {
	Path string `toml:"path,omitempty"` // Database file (default: <data dir>/finito.db)
}

// Default tunables.
const (
	DefaultRetentionDays  = 6
	DefaultSweepBatchSize = 10
	DefaultSweepInterval  = 24 * time.Hour
)

// NewDefaultSettings returns the settings used when no file is present.
func NewDefaultSettings() *Settings {
	return &Settings{
		Boards: BoardSettings{SortOrder: SortCustom},
		Tasks:  TaskSettings{SortOrder: SortCustom, ShowCompleted: true},
		Trash: TrashSettings{
			RetentionDays:  DefaultRetentionDays,
			SweepBatchSize: DefaultSweepBatchSize,
			SweepInterval:  DefaultSweepInterval.String(),
		},
		Log: LogSettings{Level: "info"},
	}
}

// Retention returns the trash retention window.
func (s *Settings) Retention() time.Duration {
	days := s.Trash.RetentionDays
	if days <= 0 {
		days = DefaultRetentionDays
	}
	return time.Duration(days) * 24 * time.Hour
}

// BatchSize returns the sweep batch size.
func (s *Settings) BatchSize() int {
	if s.Trash.SweepBatchSize <= 0 {
		return DefaultSweepBatchSize
	}
	return s.Trash.SweepBatchSize
}

// SweepEvery returns the sweep interval, falling back to the default
// when the configured value is missing or malformed.
func (s *Settings) SweepEvery() time.Duration {
	d, err := time.ParseDuration(s.Trash.SweepInterval)
	if err != nil || d <= 0 {
		return DefaultSweepInterval
	}
	return d
}

// StorePath returns the database path, resolving the default against dataDir.
func (s *Settings) StorePath(dataDir string) string {
	if s.Store.Path != "" {
		return s.Store.Path
	}
	return filepath.Join(dataDir, StoreFileName)
}

// Validate checks enumerated values.
func (s *Settings) Validate() error {
	for _, k := range []SortKey{s.Boards.SortOrder, s.Tasks.SortOrder} {
		if _, err := ParseSortKey(string(k)); err != nil {
			return err
		}
	}
	if s.Trash.RetentionDays < 0 || s.Trash.SweepBatchSize < 0 {
		return InvalidState("validate settings", fmt.Sprintf("negative trash setting: %+v", s.Trash))
	}
	return nil
}
