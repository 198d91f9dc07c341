package task

import (
	"context"

	"github.com/rs/xid"

	"github.com/cloudmeta/catalog/core"
)

type factory struct {
}

// NewFactory creates the task factory. New tasks start pending with
// empty input and result documents.
func NewFactory() core.Factory[core.Task] {
	return &factory{}
}

func (f *factory) New(ctx context.Context, owner string) (core.Task, error) {
	_, span := tracer.Start(ctx, "Task.Factory.New")
	defer span.End()

	return core.Task{
		ID:     xid.New().String(),
		Owner:  owner,
		Status: core.TaskStatusPending,
		Input:  "{}",
		Result: "{}",
	}, nil
}
