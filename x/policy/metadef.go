package policy

import (
	"context"

	"github.com/cloudmeta/catalog/core"
)

// readRuleFor pairs each metadata-definition kind with the rule that
// reveals its existence. One translation algorithm serves every kind;
// only this pairing differs.
func readRuleFor(resource any) string {
	switch resource.(type) {
	case core.MetadefObject, *core.MetadefObject:
		return RuleGetMetadefObject
	case core.MetadefProperty, *core.MetadefProperty:
		return RuleGetMetadefProperties
	case core.MetadefResourceType, *core.MetadefResourceType:
		return RuleListMetadefResourceTypes
	case core.MetadefTag, *core.MetadefTag:
		return RuleGetMetadefTags
	default:
		return RuleGetMetadefNamespace
	}
}

// MetadefPolicy decides metadata-definition actions. Every method is a
// single fixed-rule enforcement; the branching lives in the engine.
type MetadefPolicy struct {
	Engine
}

func NewMetadefPolicy(rctx core.RequestContext, resource any, enforcer core.RuleEnforcer, config core.Config) *MetadefPolicy {
	return &MetadefPolicy{
		Engine: *NewEngine(enforcer, rctx, core.ResourceTarget(resource), readRuleFor(resource), config),
	}
}

func (p *MetadefPolicy) GetMetadefNamespace(ctx context.Context) error {
	return p.Enforce(ctx, RuleGetMetadefNamespace)
}

func (p *MetadefPolicy) GetMetadefNamespaces(ctx context.Context) error {
	return p.Enforce(ctx, RuleGetMetadefNamespaces)
}

func (p *MetadefPolicy) AddMetadefNamespace(ctx context.Context) error {
	return p.Enforce(ctx, RuleAddMetadefNamespace)
}

func (p *MetadefPolicy) ModifyMetadefNamespace(ctx context.Context) error {
	return p.Enforce(ctx, RuleModifyMetadefNamespace)
}

func (p *MetadefPolicy) DeleteMetadefNamespace(ctx context.Context) error {
	return p.Enforce(ctx, RuleDeleteMetadefNamespace)
}

func (p *MetadefPolicy) GetMetadefObject(ctx context.Context) error {
	return p.Enforce(ctx, RuleGetMetadefObject)
}

func (p *MetadefPolicy) GetMetadefObjects(ctx context.Context) error {
	return p.Enforce(ctx, RuleGetMetadefObjects)
}

func (p *MetadefPolicy) AddMetadefObject(ctx context.Context) error {
	return p.Enforce(ctx, RuleAddMetadefObject)
}

func (p *MetadefPolicy) ModifyMetadefObject(ctx context.Context) error {
	return p.Enforce(ctx, RuleModifyMetadefObject)
}

func (p *MetadefPolicy) DeleteMetadefObject(ctx context.Context) error {
	return p.Enforce(ctx, RuleDeleteMetadefObject)
}

func (p *MetadefPolicy) AddMetadefProperty(ctx context.Context) error {
	return p.Enforce(ctx, RuleAddMetadefProperty)
}

func (p *MetadefPolicy) GetMetadefProperties(ctx context.Context) error {
	return p.Enforce(ctx, RuleGetMetadefProperties)
}

func (p *MetadefPolicy) ModifyMetadefProperty(ctx context.Context) error {
	return p.Enforce(ctx, RuleModifyMetadefProperty)
}

func (p *MetadefPolicy) DeleteMetadefProperty(ctx context.Context) error {
	return p.Enforce(ctx, RuleDeleteMetadefProperty)
}

func (p *MetadefPolicy) AddMetadefTag(ctx context.Context) error {
	return p.Enforce(ctx, RuleAddMetadefTag)
}

func (p *MetadefPolicy) GetMetadefTags(ctx context.Context) error {
	return p.Enforce(ctx, RuleGetMetadefTags)
}

func (p *MetadefPolicy) DeleteMetadefTags(ctx context.Context) error {
	return p.Enforce(ctx, RuleDeleteMetadefTags)
}

func (p *MetadefPolicy) AddMetadefResourceTypeAssociation(ctx context.Context) error {
	return p.Enforce(ctx, RuleAddMetadefResourceTypeAssociation)
}

func (p *MetadefPolicy) ListMetadefResourceTypes(ctx context.Context) error {
	return p.Enforce(ctx, RuleListMetadefResourceTypes)
}
