// Package executor runs catalog tasks. A factory binds one caller's
// repositories; executors it builds publish imported images through
// the elevated repository when one was granted, and through the
// caller's own otherwise.
package executor

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel"

	"github.com/cloudmeta/catalog/core"
)

var tracer = otel.Tracer("executor")

// Executor runs one task to completion and returns its final state.
type Executor interface {
	Execute(ctx context.Context, task core.Task) (core.Task, error)
}

type Factory struct {
	taskRepo     core.Repository[core.Task]
	imageRepo    core.Repository[core.Image]
	imageFactory core.Factory[core.Image]
	adminRepo    core.Repository[core.Image]
}

// NewFactory binds the repositories executors run against. adminRepo
// may be nil; it is only set for callers granted an elevated context.
func NewFactory(taskRepo core.Repository[core.Task], imageRepo core.Repository[core.Image], imageFactory core.Factory[core.Image], adminRepo core.Repository[core.Image]) *Factory {
	return &Factory{
		taskRepo:     taskRepo,
		imageRepo:    imageRepo,
		imageFactory: imageFactory,
		adminRepo:    adminRepo,
	}
}

// Publisher is the image repository task results are written through.
func (f *Factory) Publisher() core.Repository[core.Image] {
	if f.adminRepo != nil {
		return f.adminRepo
	}
	return f.imageRepo
}

// AdminRepo returns the elevated repository, nil when none was granted.
func (f *Factory) AdminRepo() core.Repository[core.Image] {
	return f.adminRepo
}

// New builds the executor for a task type.
func (f *Factory) New(taskType string) (Executor, error) {
	switch taskType {
	case "import":
		return &importExecutor{f}, nil
	default:
		return nil, fmt.Errorf("unknown task type: %s", taskType)
	}
}

type importInput struct {
	Name       string `json:"name"`
	Location   string `json:"location"`
	Visibility string `json:"visibility"`
}

type importResult struct {
	ImageID string `json:"imageId"`
}

// importExecutor creates an image from the task input and activates it.
type importExecutor struct {
	factory *Factory
}

func (e *importExecutor) fail(ctx context.Context, task core.Task, cause error) (core.Task, error) {
	task.Status = core.TaskStatusFailure
	task.Message = cause.Error()
	saved, err := e.factory.taskRepo.Save(ctx, task)
	if err != nil {
		return task, err
	}
	return saved, cause
}

func (e *importExecutor) Execute(ctx context.Context, task core.Task) (core.Task, error) {
	ctx, span := tracer.Start(ctx, "Executor.Import.Execute")
	defer span.End()

	task.Status = core.TaskStatusProcessing
	task, err := e.factory.taskRepo.Save(ctx, task)
	if err != nil {
		span.RecordError(err)
		return task, err
	}

	var input importInput
	err = json.Unmarshal([]byte(task.Input), &input)
	if err != nil {
		span.RecordError(err)
		return e.fail(ctx, task, err)
	}

	image, err := e.factory.imageFactory.New(ctx, task.Owner)
	if err != nil {
		span.RecordError(err)
		return e.fail(ctx, task, err)
	}

	image.Name = input.Name
	if input.Visibility != "" {
		image.Visibility = input.Visibility
	}
	if input.Location != "" {
		image.Locations = append(image.Locations, input.Location)
	}
	image.Status = core.StatusActive

	saved, err := e.factory.Publisher().Save(ctx, image)
	if err != nil {
		span.RecordError(err)
		return e.fail(ctx, task, err)
	}

	result, err := json.Marshal(importResult{ImageID: saved.ID})
	if err != nil {
		span.RecordError(err)
		return e.fail(ctx, task, err)
	}

	task.Status = core.TaskStatusSuccess
	task.Result = string(result)
	return e.factory.taskRepo.Save(ctx, task)
}
