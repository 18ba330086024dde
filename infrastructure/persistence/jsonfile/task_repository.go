package jsonfile

import (
	"context"

	"go.uber.org/zap"

	"stratagist-backend/application/ports"
	"stratagist-backend/domain/core/entities"
	"stratagist-backend/domain/core/valueobjects"
	pkgerrors "stratagist-backend/pkg/errors"
	"stratagist-backend/pkg/observability"
)

const taskEntity = "task"

// TaskRepository implements ports.TaskRepository over tasks.json
type TaskRepository struct {
	store   *fileStore[taskRecord]
	metrics *observability.Metrics
	logger  *zap.Logger
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

// NewTaskRepository opens (and if needed creates) tasks.json in dataDir
func NewTaskRepository(dataDir string, metrics *observability.Metrics, logger *zap.Logger) (*TaskRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	store, err := newFileStore[taskRecord](dataDir, tasksFile, logger)
	if err != nil {
		return nil, pkgerrors.NewStorageError("open", err)
	}
	return &TaskRepository{store: store, metrics: metrics, logger: logger}, nil
}

// Save appends a task
func (r *TaskRepository) Save(ctx context.Context, task *entities.Task) error {
	return r.SaveAll(ctx, []*entities.Task{task})
}

// SaveAll appends tasks with a single file rewrite
func (r *TaskRepository) SaveAll(ctx context.Context, tasks []*entities.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	err := r.store.mutate(func(records []taskRecord) ([]taskRecord, bool, error) {
		for _, task := range tasks {
			records = append(records, toTaskRecord(task))
		}
		return records, true, nil
	})
	return r.done("save", err)
}

// FindByID returns the task with the given id
func (r *TaskRepository) FindByID(ctx context.Context, id valueobjects.TaskID) (*entities.Task, error) {
	for _, rec := range r.store.snapshot() {
		if rec.ID == id.String() {
			task, err := rec.toEntity()
			if err != nil {
				return nil, r.done("find", err)
			}
			r.metrics.RecordStorageOperation("find", taskEntity, nil)
			return task, nil
		}
	}
	r.metrics.RecordStorageOperation("find", taskEntity, nil)
	return nil, pkgerrors.NewNotFoundError("Task")
}

// FindAll returns every readable task in file order
func (r *TaskRepository) FindAll(ctx context.Context) ([]*entities.Task, error) {
	records := r.store.snapshot()
	tasks := make([]*entities.Task, 0, len(records))
	for _, rec := range records {
		task, err := rec.toEntity()
		if err != nil {
			r.logger.Warn("Skipping unreadable task record", zap.String("id", rec.ID), zap.Error(err))
			continue
		}
		tasks = append(tasks, task)
	}
	r.metrics.RecordStorageOperation("list", taskEntity, nil)
	return tasks, nil
}

// Update replaces the stored record with the same id
func (r *TaskRepository) Update(ctx context.Context, task *entities.Task) error {
	err := r.store.mutate(func(records []taskRecord) ([]taskRecord, bool, error) {
		for i := range records {
			if records[i].ID == task.ID().String() {
				records[i] = toTaskRecord(task)
				return records, true, nil
			}
		}
		return nil, false, pkgerrors.NewNotFoundError("Task")
	})
	return r.done("update", err)
}

// Delete removes the task with the given id
func (r *TaskRepository) Delete(ctx context.Context, id valueobjects.TaskID) error {
	err := r.store.mutate(func(records []taskRecord) ([]taskRecord, bool, error) {
		kept := records[:0]
		found := false
		for _, rec := range records {
			if rec.ID == id.String() {
				found = true
				continue
			}
			kept = append(kept, rec)
		}
		if !found {
			return nil, false, pkgerrors.NewNotFoundError("Task")
		}
		return kept, true, nil
	})
	return r.done("delete", err)
}

func (r *TaskRepository) done(op string, err error) error {
	if pkgerrors.IsNotFound(err) {
		r.metrics.RecordStorageOperation(op, taskEntity, nil)
		return err
	}
	r.metrics.RecordStorageOperation(op, taskEntity, err)
	if err != nil {
		r.logger.Error("Task storage operation failed", zap.String("operation", op), zap.Error(err))
		return pkgerrors.NewStorageError(op, err)
	}
	return nil
}
