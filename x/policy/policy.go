// Package policy is the decision engine between transport handlers and
// the persistence layer: it asks the injected rule enforcer whether an
// action is allowed and, for resource-scoped engines, translates a
// denial into NotFound or Forbidden depending on whether the caller is
// allowed to know the resource exists at all.
package policy

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"

	"github.com/cloudmeta/catalog/core"
)

var tracer = otel.Tracer("policy")

// Engine is the base decision engine. With an empty readRule it is a
// pure pass-through: the enforcer's errors reach the caller unchanged.
// Resource-scoped engines set readRule to the rule that would reveal
// the target's existence, which switches on the denial translation.
type Engine struct {
	enforcer core.RuleEnforcer
	rctx     core.RequestContext
	target   map[string]any
	readRule string
	config   core.Config
}

func NewEngine(enforcer core.RuleEnforcer, rctx core.RequestContext, target map[string]any, readRule string, config core.Config) *Engine {
	return &Engine{
		enforcer: enforcer,
		rctx:     rctx,
		target:   target,
		readRule: readRule,
		config:   config,
	}
}

// Enforce evaluates rule and returns nil when the action is allowed.
// On denial a resource-scoped engine evaluates the read rule, strictly
// after the action rule, and returns ErrorNotFound when that is denied
// too, ErrorForbidden when it is not. Errors other than the denial
// signal always propagate unchanged.
func (e *Engine) Enforce(ctx context.Context, rule string) error {
	ctx, span := tracer.Start(ctx, "Policy.Engine.Enforce")
	defer span.End()

	err := e.enforcer.Enforce(ctx, e.rctx, rule, e.target)
	if err == nil {
		return nil
	}

	var denied core.ErrorAccessDenied
	if !errors.As(err, &denied) {
		span.RecordError(err)
		return err
	}

	if e.readRule == "" {
		return err
	}

	readErr := e.enforcer.Enforce(ctx, e.rctx, e.readRule, e.target)
	if readErr == nil {
		// visible but not actionable
		return core.NewErrorForbidden()
	}
	if errors.As(readErr, &denied) {
		// indistinguishable from absent
		return core.NewErrorNotFound()
	}

	span.RecordError(readErr)
	return readErr
}

// Check is the predicate form of Enforce. It absorbs only the ordinary
// denial outcomes into false; ErrorNotFound and unrelated errors are
// returned, never folded into the boolean.
func (e *Engine) Check(ctx context.Context, rule string) (bool, error) {
	err := e.Enforce(ctx, rule)
	if err == nil {
		return true, nil
	}

	var forbidden core.ErrorForbidden
	if errors.As(err, &forbidden) {
		return false, nil
	}
	var denied core.ErrorAccessDenied
	if errors.As(err, &denied) {
		return false, nil
	}

	return false, err
}

// isDenial reports whether err is one of the authorization outcomes an
// engine produces, as opposed to an unrelated failure.
func isDenial(err error) bool {
	var forbidden core.ErrorForbidden
	var notFound core.ErrorNotFound
	var denied core.ErrorAccessDenied
	return errors.As(err, &forbidden) || errors.As(err, &notFound) || errors.As(err, &denied)
}
