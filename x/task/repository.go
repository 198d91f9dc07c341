// Package task provides the task persistence accessors and the echo
// handler that accepts and runs catalog tasks.
package task

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"gorm.io/gorm"

	"github.com/cloudmeta/catalog/core"
)

var tracer = otel.Tracer("task")

type repository struct {
	db *gorm.DB
}

// NewRepository creates the gorm-backed task repository.
func NewRepository(db *gorm.DB) core.Repository[core.Task] {
	return &repository{db}
}

func (r *repository) Get(ctx context.Context, id string) (core.Task, error) {
	ctx, span := tracer.Start(ctx, "Task.Repository.Get")
	defer span.End()

	var task core.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.Task{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.Task{}, err
	}
	return task, nil
}

func (r *repository) List(ctx context.Context) ([]core.Task, error) {
	ctx, span := tracer.Start(ctx, "Task.Repository.List")
	defer span.End()

	var tasks []core.Task
	err := r.db.WithContext(ctx).Find(&tasks).Error
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return tasks, nil
}

func (r *repository) Save(ctx context.Context, task core.Task) (core.Task, error) {
	ctx, span := tracer.Start(ctx, "Task.Repository.Save")
	defer span.End()

	if task.ID == "" {
		return core.Task{}, errors.New("task id is required")
	}

	err := r.db.WithContext(ctx).Save(&task).Error
	if err != nil {
		span.RecordError(err)
		return core.Task{}, err
	}
	return task, nil
}

func (r *repository) Remove(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Task.Repository.Remove")
	defer span.End()

	result := r.db.WithContext(ctx).Delete(&core.Task{}, "id = ?", id)
	if result.Error != nil {
		span.RecordError(result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return core.NewErrorNotFound()
	}
	return nil
}
