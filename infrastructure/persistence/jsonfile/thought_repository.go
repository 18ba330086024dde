package jsonfile

import (
	"context"
	"time"

	"go.uber.org/zap"

	"stratagist-backend/application/ports"
	"stratagist-backend/domain/core/entities"
	"stratagist-backend/domain/core/valueobjects"
	pkgerrors "stratagist-backend/pkg/errors"
	"stratagist-backend/pkg/observability"
	"stratagist-backend/pkg/utils"
)

const thoughtEntity = "thought"

// ThoughtRepository implements ports.ThoughtRepository over thoughts.json
type ThoughtRepository struct {
	store   *fileStore[thoughtRecord]
	metrics *observability.Metrics
	logger  *zap.Logger
}

var _ ports.ThoughtRepository = (*ThoughtRepository)(nil)

// NewThoughtRepository opens (and if needed creates) thoughts.json in dataDir
func NewThoughtRepository(dataDir string, metrics *observability.Metrics, logger *zap.Logger) (*ThoughtRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	store, err := newFileStore[thoughtRecord](dataDir, thoughtsFile, logger)
	if err != nil {
		return nil, pkgerrors.NewStorageError("open", err)
	}
	return &ThoughtRepository{store: store, metrics: metrics, logger: logger}, nil
}

// Save appends a thought
func (r *ThoughtRepository) Save(ctx context.Context, thought *entities.Thought) error {
	err := r.store.mutate(func(records []thoughtRecord) ([]thoughtRecord, bool, error) {
		return append(records, toThoughtRecord(thought)), true, nil
	})
	return r.done("save", err)
}

// FindByID returns the thought with the given id
func (r *ThoughtRepository) FindByID(ctx context.Context, id valueobjects.ThoughtID) (*entities.Thought, error) {
	for _, rec := range r.store.snapshot() {
		if rec.ID == id.String() {
			thought, err := rec.toEntity()
			if err != nil {
				return nil, r.done("find", err)
			}
			r.metrics.RecordStorageOperation("find", thoughtEntity, nil)
			return thought, nil
		}
	}
	r.metrics.RecordStorageOperation("find", thoughtEntity, nil)
	return nil, pkgerrors.NewNotFoundError("Thought")
}

// FindAll returns every readable thought in file order
func (r *ThoughtRepository) FindAll(ctx context.Context) ([]*entities.Thought, error) {
	records := r.store.snapshot()
	thoughts := make([]*entities.Thought, 0, len(records))
	for _, rec := range records {
		thought, err := rec.toEntity()
		if err != nil {
			r.logger.Warn("Skipping unreadable thought record", zap.String("id", rec.ID), zap.Error(err))
			continue
		}
		thoughts = append(thoughts, thought)
	}
	r.metrics.RecordStorageOperation("list", thoughtEntity, nil)
	return thoughts, nil
}

// Update replaces the stored record with the same id
func (r *ThoughtRepository) Update(ctx context.Context, thought *entities.Thought) error {
	err := r.store.mutate(func(records []thoughtRecord) ([]thoughtRecord, bool, error) {
		for i := range records {
			if records[i].ID == thought.ID().String() {
				records[i] = toThoughtRecord(thought)
				return records, true, nil
			}
		}
		return nil, false, pkgerrors.NewNotFoundError("Thought")
	})
	return r.done("update", err)
}

// Delete removes the thought with the given id
func (r *ThoughtRepository) Delete(ctx context.Context, id valueobjects.ThoughtID) error {
	err := r.store.mutate(func(records []thoughtRecord) ([]thoughtRecord, bool, error) {
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
			return nil, false, pkgerrors.NewNotFoundError("Thought")
		}
		return kept, true, nil
	})
	return r.done("delete", err)
}

// DeleteByDate removes every thought whose timestamp falls on date's
// calendar day. Records with unreadable timestamps are kept.
func (r *ThoughtRepository) DeleteByDate(ctx context.Context, date time.Time) (int, error) {
	removed := 0
	err := r.store.mutate(func(records []thoughtRecord) ([]thoughtRecord, bool, error) {
		kept := records[:0]
		for _, rec := range records {
			ts, err := utils.ParseTimestamp(rec.Timestamp)
			if err == nil && utils.SameDay(ts, date) {
				removed++
				continue
			}
			kept = append(kept, rec)
		}
		return kept, removed > 0, nil
	})
	if err := r.done("delete_by_date", err); err != nil {
		return 0, err
	}
	return removed, nil
}

// done records the operation and converts raw I/O failures into storage errors
func (r *ThoughtRepository) done(op string, err error) error {
	if pkgerrors.IsNotFound(err) {
		r.metrics.RecordStorageOperation(op, thoughtEntity, nil)
		return err
	}
	r.metrics.RecordStorageOperation(op, thoughtEntity, err)
	if err != nil {
		r.logger.Error("Thought storage operation failed", zap.String("operation", op), zap.Error(err))
		return pkgerrors.NewStorageError(op, err)
	}
	return nil
}
