package usecase

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
)

// settingParsers validates the value of every recognized settings key.
var settingParsers = map[string]func(string) error{
	"boards.sort_order":      parseSortSetting,
	"boards.grid_layout":     parseBoolSetting,
	"tasks.sort_order":       parseSortSetting,
	"tasks.show_completed":   parseBoolSetting,
	"trash.retention_days":   parsePositiveSetting,
	"trash.sweep_batch_size": parsePositiveSetting,
	"trash.sweep_interval":   parseDurationSetting,
	"log.level":              parseLevelSetting,
	"store.path":             parsePathSetting,
}

// SettingKeys returns the recognized settings keys in sorted order.
func SettingKeys() []string {
	keys := make([]string, 0, len(settingParsers))
	for k := range settingParsers {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// SetSettingInput contains the parameters for writing one settings key.
type SetSettingInput struct {
	Key   string // Dotted key, e.g. "boards.sort_order"
	Value string // Raw value as typed by the user
}

// SetSettingOutput contains the result of writing a settings key.
type SetSettingOutput struct {
	Path string // Settings file that was written
}

// SetSetting is the use case for changing one settings key.
type SetSetting struct {
	manager domain.SettingsManager
}

// NewSetSetting creates a new SetSetting use case.
func NewSetSetting(manager domain.SettingsManager) *SetSetting {
	return &SetSetting{
		manager: manager,
	}
}

// Execute validates the key and value and writes them to the settings file.
func (uc *SetSetting) Execute(ctx context.Context, in SetSettingInput) (*SetSettingOutput, error) {
	const op = "set setting"

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := strings.ToLower(strings.TrimSpace(in.Key))
	parse, ok := settingParsers[key]
	if !ok {
		return nil, domain.InvalidState(op, fmt.Sprintf("unknown key %q (known: %s)", in.Key, strings.Join(SettingKeys(), ", ")))
	}
	value := strings.TrimSpace(in.Value)
	if err := parse(value); err != nil {
		return nil, domain.InvalidState(op, fmt.Sprintf("%s: %v", key, err))
	}
	if err := uc.manager.Set(key, value); err != nil {
		return nil, fmt.Errorf("write %s: %w", key, err)
	}
	return &SetSettingOutput{Path: uc.manager.Path()}, nil
}

func parseSortSetting(v string) error {
	_, err := domain.ParseSortKey(v)
	return err
}

func parseBoolSetting(v string) error {
	_, err := strconv.ParseBool(v)
	return err
}

func parsePositiveSetting(v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return err
	}
	if n <= 0 {
		return fmt.Errorf("must be positive, got %d", n)
	}
	return nil
}

func parseDurationSetting(v string) error {
	d, err := time.ParseDuration(v)
	if err != nil {
		return err
	}
	if d <= 0 {
		return fmt.Errorf("must be positive, got %s", d)
	}
	return nil
}

func parseLevelSetting(v string) error {
	switch strings.ToLower(v) {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("unknown level %q", v)
	}
}

func parsePathSetting(v string) error {
	if v == "" {
		return fmt.Errorf("path cannot be empty")
	}
	return nil
}
