package enforcer

import (
	"context"

	"github.com/casbin/casbin/v2"

	"github.com/cloudmeta/catalog/core"
)

// casbinService adapts a casbin enforcer to core.RuleEnforcer for
// deployments that keep their rules in casbin model/policy files.
// Requests are shaped (subject, object, action) = (requester, target
// owner, rule name).
type casbinService struct {
	enforcer *casbin.Enforcer
}

func NewCasbinService(modelPath, policyPath string) (core.RuleEnforcer, error) {
	e, err := casbin.NewEnforcer(modelPath, policyPath)
	if err != nil {
		return nil, err
	}
	return &casbinService{enforcer: e}, nil
}

func (s *casbinService) Enforce(ctx context.Context, rctx core.RequestContext, rule string, target map[string]any) error {
	_, span := tracer.Start(ctx, "Enforcer.Casbin.Enforce")
	defer span.End()

	if rctx.IsAdmin {
		return nil
	}

	owner, _ := target["owner"].(string)

	allowed, err := s.enforcer.Enforce(rctx.Requester, owner, rule)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if !allowed {
		return core.NewErrorAccessDenied(rule)
	}
	return nil
}
