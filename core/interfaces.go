//go:generate go run go.uber.org/mock/mockgen -source=interfaces.go -destination=mock/services.go
package core

import (
	"context"
)

// RuleEnforcer evaluates one named rule for a caller against a target
// resource. A nil return means the action is allowed; a denial is
// signalled with ErrorAccessDenied. Any other error is an evaluator
// failure and must be propagated unchanged by callers.
type RuleEnforcer interface {
	Enforce(ctx context.Context, rctx RequestContext, rule string, target map[string]any) error
}

// Repository is the id-keyed CRUD surface every decorator layer wraps.
type Repository[T any] interface {
	Get(ctx context.Context, id string) (T, error)
	List(ctx context.Context) ([]T, error)
	Save(ctx context.Context, resource T) (T, error)
	Remove(ctx context.Context, id string) error
}

// Factory constructs a new resource with generated identity and
// kind-specific defaults, owned by the given tenant.
type Factory[T any] interface {
	New(ctx context.Context, owner string) (T, error)
}
