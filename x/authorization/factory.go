package authorization

import (
	"context"

	"github.com/cloudmeta/catalog/core"
	"github.com/cloudmeta/catalog/x/policy"
)

type factory[T any] struct {
	inner    core.Factory[T]
	rctx     core.RequestContext
	enforcer core.RuleEnforcer
	rule     string
	config   core.Config
}

// WrapFactory gates resource creation behind the kind's add rule.
func WrapFactory[T any](inner core.Factory[T], rctx core.RequestContext, enforcer core.RuleEnforcer, rule string, config core.Config) core.Factory[T] {
	return &factory[T]{inner, rctx, enforcer, rule, config}
}

func (f *factory[T]) New(ctx context.Context, owner string) (T, error) {
	ctx, span := tracer.Start(ctx, "Authorization.Factory.New")
	defer span.End()

	engine := policy.NewEngine(f.enforcer, f.rctx, nil, "", f.config)
	err := engine.Enforce(ctx, f.rule)
	if err != nil {
		var zero T
		return zero, asForbidden(err)
	}

	return f.inner.New(ctx, owner)
}
