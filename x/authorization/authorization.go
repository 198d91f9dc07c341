// Package authorization decorates repositories and factories with
// policy enforcement. It owns no rules of its own: every decision is
// delegated to a policy engine built from the request context and the
// target resource.
package authorization

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"

	"github.com/cloudmeta/catalog/core"
	"github.com/cloudmeta/catalog/x/policy"
)

var tracer = otel.Tracer("authorization")

// asForbidden translates a raw denial into Forbidden. Collection and
// creation rules have no resource whose existence could be hidden, so
// the NotFound translation never applies to them.
func asForbidden(err error) error {
	var denied core.ErrorAccessDenied
	if errors.As(err, &denied) {
		return core.NewErrorForbidden()
	}
	return err
}

// RuleSet pairs a resource kind with the rules its repository enforces.
// Read is the rule that reveals existence; it drives the NotFound or
// Forbidden translation on denied mutations.
type RuleSet struct {
	Get    string
	List   string
	Modify string
	Delete string
	Read   string
}

type repository[T any] struct {
	inner    core.Repository[T]
	rctx     core.RequestContext
	enforcer core.RuleEnforcer
	rules    RuleSet
	config   core.Config
}

// Wrap decorates inner with enforcement of the given rule set on behalf
// of one caller.
func Wrap[T any](inner core.Repository[T], rctx core.RequestContext, enforcer core.RuleEnforcer, rules RuleSet, config core.Config) core.Repository[T] {
	return &repository[T]{inner, rctx, enforcer, rules, config}
}

func (r *repository[T]) scoped(resource T) *policy.Engine {
	return policy.NewEngine(r.enforcer, r.rctx, core.ResourceTarget(resource), r.rules.Read, r.config)
}

func (r *repository[T]) Get(ctx context.Context, id string) (T, error) {
	ctx, span := tracer.Start(ctx, "Authorization.Repository.Get")
	defer span.End()

	resource, err := r.inner.Get(ctx, id)
	if err != nil {
		span.RecordError(err)
		return resource, err
	}

	err = r.scoped(resource).Enforce(ctx, r.rules.Get)
	if err != nil {
		var zero T
		return zero, err
	}

	return resource, nil
}

func (r *repository[T]) List(ctx context.Context) ([]T, error) {
	ctx, span := tracer.Start(ctx, "Authorization.Repository.List")
	defer span.End()

	engine := policy.NewEngine(r.enforcer, r.rctx, nil, "", r.config)
	err := engine.Enforce(ctx, r.rules.List)
	if err != nil {
		return nil, asForbidden(err)
	}

	items, err := r.inner.List(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	// filtering uses an unscoped engine so a hidden item is silently
	// dropped instead of failing the whole listing
	filtered := make([]T, 0, len(items))
	for _, item := range items {
		engine := policy.NewEngine(r.enforcer, r.rctx, core.ResourceTarget(item), "", r.config)
		visible, err := engine.Check(ctx, r.rules.Get)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		if visible {
			filtered = append(filtered, item)
		}
	}

	return filtered, nil
}

func (r *repository[T]) Save(ctx context.Context, resource T) (T, error) {
	ctx, span := tracer.Start(ctx, "Authorization.Repository.Save")
	defer span.End()

	err := r.scoped(resource).Enforce(ctx, r.rules.Modify)
	if err != nil {
		var zero T
		return zero, err
	}

	return r.inner.Save(ctx, resource)
}

func (r *repository[T]) Remove(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Authorization.Repository.Remove")
	defer span.End()

	resource, err := r.inner.Get(ctx, id)
	if err != nil {
		span.RecordError(err)
		return err
	}

	err = r.scoped(resource).Enforce(ctx, r.rules.Delete)
	if err != nil {
		return err
	}

	return r.inner.Remove(ctx, id)
}
