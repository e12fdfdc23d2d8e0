// Package app provides the dependency injection container for the application.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/infra/config"
	"github.com/hamilton-i7/finito-sub001/internal/infra/events"
	"github.com/hamilton-i7/finito-sub001/internal/infra/logging"
	"github.com/hamilton-i7/finito-sub001/internal/infra/sqlitestore"
	"github.com/hamilton-i7/finito-sub001/internal/infra/yamlexport"
	"github.com/hamilton-i7/finito-sub001/internal/usecase"
	"github.com/hamilton-i7/finito-sub001/internal/usecase/shared"
)

// Config holds the application paths.
type Config struct {
	DataDir   string // Directory holding config.toml, the database and logs
	StorePath string // Path to the SQLite database
}

// Repositories groups the persistence ports.
type Repositories struct {
	Boards   domain.BoardRepository
	Labels   domain.LabelRepository
	Refs     domain.BoardLabelRefRepository
	Tasks    domain.TaskRepository
	Subtasks domain.SubtaskRepository
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	Repositories

	// Ports (interfaces bound to implementations)
	Feed            domain.ChangeFeed
	Clock           domain.Clock
	Logger          domain.Logger
	SettingsLoader  domain.SettingsLoader
	SettingsManager domain.SettingsManager
	Exporter        domain.SnapshotWriter

	// Pointer fields
	Settings *domain.Settings // Loaded once at construction
	Locker   *shared.Locker   // Shared by every use case so lanes serialize across them

	closers []func() error

	// Configuration
	Config Config
}

// New opens the store under dataDir and wires every port.
// An empty dataDir resolves to config.DefaultDataDir.
func New(ctx context.Context, dataDir string) (*Container, error) {
	if dataDir == "" {
		dataDir = config.DefaultDataDir()
	}
	if dataDir == "" {
		return nil, errors.New("cannot resolve data directory: set " + domain.DataDirEnv)
	}

	loader := config.NewLoader(dataDir)
	settings, err := loader.Load()
	if err != nil {
		// Keep working on defaults; `config show` reports the load error
		settings = domain.NewDefaultSettings()
		settings.Warnings = append(settings.Warnings, err.Error())
	}

	cfg := Config{DataDir: dataDir, StorePath: settings.StorePath(dataDir)}
	clock := domain.RealClock{}

	diag := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logging.ParseLevel(settings.Log.Level),
	}))
	broker := events.NewBroker(events.DefaultBufferSize, clock, diag)

	store, err := sqlitestore.Open(ctx, cfg.StorePath, broker)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger := logging.New(dataDir, logging.ParseLevel(settings.Log.Level))

	c := NewWithDeps(cfg, Repositories{
		Boards:   store.Boards(),
		Labels:   store.Labels(),
		Refs:     store.Refs(),
		Tasks:    store.Tasks(),
		Subtasks: store.Subtasks(),
	}, clock, logger, settings)
	c.Feed = broker
	c.SettingsLoader = loader
	c.SettingsManager = config.NewManager(dataDir)
	c.Exporter = yamlexport.NewWriter(clock)
	c.closers = []func() error{store.Close, logger.Close}
	return c, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
// Feed, settings ports and exporter are left for the caller to set.
func NewWithDeps(cfg Config, repos Repositories, clock domain.Clock, logger domain.Logger, settings *domain.Settings) *Container {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	if settings == nil {
		settings = domain.NewDefaultSettings()
	}
	return &Container{
		Repositories: repos,
		Clock:        clock,
		Logger:       logger,
		Settings:     settings,
		Locker:       shared.NewLocker(),
		Config:       cfg,
	}
}

// Close releases the store and log files.
func (c *Container) Close() error {
	var errs []error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

// UseCase factory methods

// CreateBoardUseCase returns a new CreateBoard use case.
func (c *Container) CreateBoardUseCase() *usecase.CreateBoard {
	return usecase.NewCreateBoard(c.Boards, c.Labels, c.Refs, c.Locker, c.Clock, c.Logger)
}

// UpdateBoardUseCase returns a new UpdateBoard use case.
func (c *Container) UpdateBoardUseCase() *usecase.UpdateBoard {
	return usecase.NewUpdateBoard(c.Boards, c.Labels, c.Refs, c.Locker, c.Clock, c.Logger)
}

// ArchiveBoardUseCase returns a new ArchiveBoard use case.
func (c *Container) ArchiveBoardUseCase() *usecase.ArchiveBoard {
	return usecase.NewArchiveBoard(c.Boards, c.Locker, c.Clock, c.Logger)
}

// UnarchiveBoardUseCase returns a new UnarchiveBoard use case.
func (c *Container) UnarchiveBoardUseCase() *usecase.UnarchiveBoard {
	return usecase.NewUnarchiveBoard(c.Boards, c.Locker, c.Clock, c.Logger)
}

// TrashBoardUseCase returns a new TrashBoard use case.
func (c *Container) TrashBoardUseCase() *usecase.TrashBoard {
	return usecase.NewTrashBoard(c.Boards, c.Locker, c.Clock, c.Logger)
}

// RestoreBoardUseCase returns a new RestoreBoard use case.
func (c *Container) RestoreBoardUseCase() *usecase.RestoreBoard {
	return usecase.NewRestoreBoard(c.Boards, c.Locker, c.Clock, c.Logger)
}

// DeleteBoardUseCase returns a new DeleteBoard use case.
func (c *Container) DeleteBoardUseCase() *usecase.DeleteBoard {
	return usecase.NewDeleteBoard(c.Boards, c.Locker, c.Clock, c.Logger)
}

// EmptyTrashUseCase returns a new EmptyTrash use case.
func (c *Container) EmptyTrashUseCase() *usecase.EmptyTrash {
	return usecase.NewEmptyTrash(c.Boards, c.Locker, c.Logger)
}

// ReorderBoardsUseCase returns a new ReorderBoards use case.
func (c *Container) ReorderBoardsUseCase() *usecase.ReorderBoards {
	return usecase.NewReorderBoards(c.Boards, c.Locker)
}

// GetBoardUseCase returns a new GetBoard use case.
func (c *Container) GetBoardUseCase() *usecase.GetBoard {
	return usecase.NewGetBoard(c.Boards, c.Labels, c.Refs)
}

// ListBoardsUseCase returns a new ListBoards use case.
func (c *Container) ListBoardsUseCase() *usecase.ListBoards {
	return usecase.NewListBoards(c.Boards, c.Labels, c.Refs, c.Feed, c.Settings)
}

// ExportBoardsUseCase returns a new ExportBoards use case.
func (c *Container) ExportBoardsUseCase() *usecase.ExportBoards {
	return usecase.NewExportBoards(c.Boards, c.Labels, c.Refs, c.Tasks, c.Subtasks, c.Exporter)
}

// SweepTrashUseCase returns a new SweepTrash use case.
func (c *Container) SweepTrashUseCase() *usecase.SweepTrash {
	return usecase.NewSweepTrash(c.Boards, c.Locker, c.Clock, c.Logger, c.Settings)
}

// Sweeper returns a background sweeper. A non-positive interval uses
// the [trash] sweep_interval setting.
func (c *Container) Sweeper(interval time.Duration, onSweep func(*usecase.SweepTrashOutput)) *usecase.Sweeper {
	return usecase.NewSweeper(c.SweepTrashUseCase(), interval, onSweep)
}

// CreateLabelUseCase returns a new CreateLabel use case.
func (c *Container) CreateLabelUseCase() *usecase.CreateLabel {
	return usecase.NewCreateLabel(c.Labels, c.Clock)
}

// UpdateLabelUseCase returns a new UpdateLabel use case.
func (c *Container) UpdateLabelUseCase() *usecase.UpdateLabel {
	return usecase.NewUpdateLabel(c.Labels)
}

// DeleteLabelsUseCase returns a new DeleteLabels use case.
func (c *Container) DeleteLabelsUseCase() *usecase.DeleteLabels {
	return usecase.NewDeleteLabels(c.Labels, c.Locker, c.Logger)
}

// GetLabelUseCase returns a new GetLabel use case.
func (c *Container) GetLabelUseCase() *usecase.GetLabel {
	return usecase.NewGetLabel(c.Labels)
}

// ListLabelsUseCase returns a new ListLabels use case.
func (c *Container) ListLabelsUseCase() *usecase.ListLabels {
	return usecase.NewListLabels(c.Labels, c.Feed)
}

// CreateTaskUseCase returns a new CreateTask use case.
func (c *Container) CreateTaskUseCase() *usecase.CreateTask {
	return usecase.NewCreateTask(c.Boards, c.Tasks, c.Locker, c.Clock)
}

// UpdateTaskUseCase returns a new UpdateTask use case.
func (c *Container) UpdateTaskUseCase() *usecase.UpdateTask {
	return usecase.NewUpdateTask(c.Tasks, c.Locker)
}

// ToggleTaskUseCase returns a new ToggleTask use case.
func (c *Container) ToggleTaskUseCase() *usecase.ToggleTask {
	return usecase.NewToggleTask(c.Tasks, c.Locker, c.Clock)
}

// ReorderTasksUseCase returns a new ReorderTasks use case.
func (c *Container) ReorderTasksUseCase() *usecase.ReorderTasks {
	return usecase.NewReorderTasks(c.Tasks, c.Locker)
}

// DeleteTasksUseCase returns a new DeleteTasks use case.
func (c *Container) DeleteTasksUseCase() *usecase.DeleteTasks {
	return usecase.NewDeleteTasks(c.Tasks, c.Locker)
}

// GetTaskUseCase returns a new GetTask use case.
func (c *Container) GetTaskUseCase() *usecase.GetTask {
	return usecase.NewGetTask(c.Tasks, c.Subtasks)
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Boards, c.Tasks, c.Feed, c.Settings)
}

// CreateSubtaskUseCase returns a new CreateSubtask use case.
func (c *Container) CreateSubtaskUseCase() *usecase.CreateSubtask {
	return usecase.NewCreateSubtask(c.Tasks, c.Subtasks, c.Locker, c.Clock)
}

// UpdateSubtaskUseCase returns a new UpdateSubtask use case.
func (c *Container) UpdateSubtaskUseCase() *usecase.UpdateSubtask {
	return usecase.NewUpdateSubtask(c.Subtasks, c.Locker)
}

// ToggleSubtasksUseCase returns a new ToggleSubtasks use case.
func (c *Container) ToggleSubtasksUseCase() *usecase.ToggleSubtasks {
	return usecase.NewToggleSubtasks(c.Subtasks, c.Locker)
}

// ReorderSubtasksUseCase returns a new ReorderSubtasks use case.
func (c *Container) ReorderSubtasksUseCase() *usecase.ReorderSubtasks {
	return usecase.NewReorderSubtasks(c.Subtasks, c.Locker)
}

// DeleteSubtasksUseCase returns a new DeleteSubtasks use case.
func (c *Container) DeleteSubtasksUseCase() *usecase.DeleteSubtasks {
	return usecase.NewDeleteSubtasks(c.Subtasks, c.Locker)
}

// ListSubtasksUseCase returns a new ListSubtasks use case.
func (c *Container) ListSubtasksUseCase() *usecase.ListSubtasks {
	return usecase.NewListSubtasks(c.Tasks, c.Subtasks, c.Feed)
}

// ShowSettingsUseCase returns a new ShowSettings use case.
func (c *Container) ShowSettingsUseCase() *usecase.ShowSettings {
	return usecase.NewShowSettings(c.SettingsLoader, c.SettingsManager)
}

// SetSettingUseCase returns a new SetSetting use case.
func (c *Container) SetSettingUseCase() *usecase.SetSetting {
	return usecase.NewSetSetting(c.SettingsManager)
}
