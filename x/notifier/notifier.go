// Package notifier decorates a repository so every successful mutation
// publishes a lifecycle event on redis. Publish failures are logged and
// never fail the mutation itself.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"

	"github.com/cloudmeta/catalog/core"
)

var tracer = otel.Tracer("notifier")

type repository[T any] struct {
	inner core.Repository[T]
	kind  string
	rdb   *redis.Client
}

// Wrap decorates inner with event publication for the given resource
// kind.
func Wrap[T any](inner core.Repository[T], kind string, rdb *redis.Client) core.Repository[T] {
	return &repository[T]{inner, kind, rdb}
}

func (r *repository[T]) publish(ctx context.Context, action string, resource T) {
	target := core.ResourceTarget(resource)
	id, _ := target["id"].(string)
	owner, _ := target["owner"].(string)

	event := core.Event{
		Kind:       r.kind,
		Action:     action,
		ResourceID: id,
		Owner:      owner,
		Resource:   resource,
		CDate:      time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		slog.ErrorContext(ctx, fmt.Sprintf("failed to marshal event: %v", err),
			slog.String("module", "notifier"))
		return
	}

	err = r.rdb.Publish(ctx, core.EventChannel(r.kind), payload).Err()
	if err != nil {
		slog.ErrorContext(ctx, fmt.Sprintf("failed to publish event: %v", err),
			slog.String("module", "notifier"))
	}
}

type factory[T any] struct {
	inner core.Factory[T]
	kind  string
	rdb   *redis.Client
}

// WrapFactory decorates a factory so creation enters the chain through
// the notification layer like every repository call does. New persists
// nothing, so no event is published here; the first Save publishes.
func WrapFactory[T any](inner core.Factory[T], kind string, rdb *redis.Client) core.Factory[T] {
	return &factory[T]{inner, kind, rdb}
}

func (f *factory[T]) New(ctx context.Context, owner string) (T, error) {
	ctx, span := tracer.Start(ctx, "Notifier.Factory.New")
	defer span.End()

	return f.inner.New(ctx, owner)
}

func (r *repository[T]) Get(ctx context.Context, id string) (T, error) {
	ctx, span := tracer.Start(ctx, "Notifier.Repository.Get")
	defer span.End()

	return r.inner.Get(ctx, id)
}

func (r *repository[T]) List(ctx context.Context) ([]T, error) {
	ctx, span := tracer.Start(ctx, "Notifier.Repository.List")
	defer span.End()

	return r.inner.List(ctx)
}

func (r *repository[T]) Save(ctx context.Context, resource T) (T, error) {
	ctx, span := tracer.Start(ctx, "Notifier.Repository.Save")
	defer span.End()

	saved, err := r.inner.Save(ctx, resource)
	if err != nil {
		span.RecordError(err)
		return saved, err
	}

	r.publish(ctx, core.EventActionUpdate, saved)
	return saved, nil
}

func (r *repository[T]) Remove(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Notifier.Repository.Remove")
	defer span.End()

	// capture the resource before it goes away so the event can carry
	// its final state
	resource, err := r.inner.Get(ctx, id)
	if err != nil {
		span.RecordError(err)
		return err
	}

	err = r.inner.Remove(ctx, id)
	if err != nil {
		span.RecordError(err)
		return err
	}

	r.publish(ctx, core.EventActionDelete, resource)
	return nil
}
