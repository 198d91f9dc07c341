// Package enforcer evaluates named access rules against a request
// context and a target resource. It is the default core.RuleEnforcer;
// deployments may swap in the casbin-backed one or anything else that
// satisfies the interface.
package enforcer

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"go.opentelemetry.io/otel"

	"github.com/cloudmeta/catalog/core"
)

var tracer = otel.Tracer("enforcer")

type service struct {
	repository Repository
	document   core.RuleDocument
	config     core.Config
}

// NewService creates a rule enforcer over the given document. When the
// config names a rule document URL, the repository-fetched document
// takes precedence and the given one is the fallback.
func NewService(repository Repository, document core.RuleDocument, config core.Config) core.RuleEnforcer {
	return &service{repository, document, config}
}

func (s *service) Enforce(ctx context.Context, rctx core.RequestContext, rule string, target map[string]any) error {
	ctx, span := tracer.Start(ctx, "Enforcer.Service.Enforce")
	defer span.End()

	document := s.document
	if s.config.RuleDocumentURL != "" && s.repository != nil {
		fetched, err := s.repository.Get(ctx, s.config.RuleDocumentURL)
		if err != nil {
			span.RecordError(err)
			slog.WarnContext(ctx, fmt.Sprintf("failed to fetch rule document, using embedded rules: %v", err),
				slog.String("module", "enforcer"))
		} else {
			document = fetched
		}
	}

	statement, ok := document.Statements[rule]
	if !ok {
		if allowed, ok := document.Defaults[rule]; ok && !allowed {
			return core.NewErrorAccessDenied(rule)
		}
		// rules without a statement or default are open
		return nil
	}

	result, err := eval(statement.Condition, rctx, target)
	if err != nil {
		span.RecordError(err)
		return err
	}

	allowed, ok := result.(bool)
	if !ok {
		return fmt.Errorf("bad condition result for rule %s. Expected bool but got %s", rule, reflect.TypeOf(result).String())
	}

	if !allowed {
		return core.NewErrorAccessDenied(rule)
	}
	return nil
}
