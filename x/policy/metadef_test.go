package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/cloudmeta/catalog/core"
	mock_core "github.com/cloudmeta/catalog/core/mock"
)

func TestMetadefPolicyFixedRules(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rctx := core.RequestContext{Owner: "tenant1"}
	namespace := core.MetadefNamespace{ID: "n00000000000000000001", Owner: "tenant1"}
	ctx := context.Background()

	cases := []struct {
		rule   string
		invoke func(p *MetadefPolicy) error
	}{
		{RuleGetMetadefNamespace, func(p *MetadefPolicy) error { return p.GetMetadefNamespace(ctx) }},
		{RuleGetMetadefNamespaces, func(p *MetadefPolicy) error { return p.GetMetadefNamespaces(ctx) }},
		{RuleAddMetadefNamespace, func(p *MetadefPolicy) error { return p.AddMetadefNamespace(ctx) }},
		{RuleModifyMetadefNamespace, func(p *MetadefPolicy) error { return p.ModifyMetadefNamespace(ctx) }},
		{RuleDeleteMetadefNamespace, func(p *MetadefPolicy) error { return p.DeleteMetadefNamespace(ctx) }},
		{RuleGetMetadefObject, func(p *MetadefPolicy) error { return p.GetMetadefObject(ctx) }},
		{RuleGetMetadefObjects, func(p *MetadefPolicy) error { return p.GetMetadefObjects(ctx) }},
		{RuleAddMetadefObject, func(p *MetadefPolicy) error { return p.AddMetadefObject(ctx) }},
		{RuleModifyMetadefObject, func(p *MetadefPolicy) error { return p.ModifyMetadefObject(ctx) }},
		{RuleDeleteMetadefObject, func(p *MetadefPolicy) error { return p.DeleteMetadefObject(ctx) }},
		{RuleAddMetadefProperty, func(p *MetadefPolicy) error { return p.AddMetadefProperty(ctx) }},
		{RuleGetMetadefProperties, func(p *MetadefPolicy) error { return p.GetMetadefProperties(ctx) }},
		{RuleModifyMetadefProperty, func(p *MetadefPolicy) error { return p.ModifyMetadefProperty(ctx) }},
		{RuleDeleteMetadefProperty, func(p *MetadefPolicy) error { return p.DeleteMetadefProperty(ctx) }},
		{RuleAddMetadefTag, func(p *MetadefPolicy) error { return p.AddMetadefTag(ctx) }},
		{RuleGetMetadefTags, func(p *MetadefPolicy) error { return p.GetMetadefTags(ctx) }},
		{RuleDeleteMetadefTags, func(p *MetadefPolicy) error { return p.DeleteMetadefTags(ctx) }},
		{RuleAddMetadefResourceTypeAssociation, func(p *MetadefPolicy) error { return p.AddMetadefResourceTypeAssociation(ctx) }},
		{RuleListMetadefResourceTypes, func(p *MetadefPolicy) error { return p.ListMetadefResourceTypes(ctx) }},
	}

	for _, tc := range cases {
		mockEnforcer := mock_core.NewMockRuleEnforcer(ctrl)
		mockEnforcer.EXPECT().
			Enforce(gomock.Any(), rctx, tc.rule, gomock.Any()).
			Return(nil)
		p := NewMetadefPolicy(rctx, namespace, mockEnforcer, core.Config{})
		assert.NoError(t, tc.invoke(p), tc.rule)
	}
}

func TestMetadefPolicyEnforceTranslation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rctx := core.RequestContext{Owner: "tenant1"}
	namespace := core.MetadefNamespace{ID: "n00000000000000000001", Owner: "tenant2"}
	ctx := context.Background()

	// modify denied, namespace read denied: hidden
	mockEnforcer := mock_core.NewMockRuleEnforcer(ctrl)
	gomock.InOrder(
		mockEnforcer.EXPECT().
			Enforce(gomock.Any(), rctx, RuleModifyMetadefNamespace, gomock.Any()).
			Return(core.NewErrorAccessDenied(RuleModifyMetadefNamespace)),
		mockEnforcer.EXPECT().
			Enforce(gomock.Any(), rctx, RuleGetMetadefNamespace, gomock.Any()).
			Return(core.NewErrorAccessDenied(RuleGetMetadefNamespace)),
	)
	p := NewMetadefPolicy(rctx, namespace, mockEnforcer, core.Config{})
	err := p.ModifyMetadefNamespace(ctx)
	assert.ErrorAs(t, err, &core.ErrorNotFound{})

	// modify denied, namespace readable: forbidden
	mockEnforcer = mock_core.NewMockRuleEnforcer(ctrl)
	gomock.InOrder(
		mockEnforcer.EXPECT().
			Enforce(gomock.Any(), rctx, RuleModifyMetadefNamespace, gomock.Any()).
			Return(core.NewErrorAccessDenied(RuleModifyMetadefNamespace)),
		mockEnforcer.EXPECT().
			Enforce(gomock.Any(), rctx, RuleGetMetadefNamespace, gomock.Any()).
			Return(nil),
	)
	p = NewMetadefPolicy(rctx, namespace, mockEnforcer, core.Config{})
	err = p.ModifyMetadefNamespace(ctx)
	assert.ErrorAs(t, err, &core.ErrorForbidden{})
}

func TestMetadefPolicyReadRuleMatchesKind(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rctx := core.RequestContext{Owner: "tenant1"}
	ctx := context.Background()

	cases := []struct {
		resource any
		readRule string
	}{
		{core.MetadefNamespace{}, RuleGetMetadefNamespace},
		{core.MetadefObject{}, RuleGetMetadefObject},
		{core.MetadefProperty{}, RuleGetMetadefProperties},
		{core.MetadefResourceType{}, RuleListMetadefResourceTypes},
		{core.MetadefTag{}, RuleGetMetadefTags},
	}

	for _, tc := range cases {
		mockEnforcer := mock_core.NewMockRuleEnforcer(ctrl)
		gomock.InOrder(
			mockEnforcer.EXPECT().
				Enforce(gomock.Any(), rctx, "mutate", gomock.Any()).
				Return(core.NewErrorAccessDenied("mutate")),
			mockEnforcer.EXPECT().
				Enforce(gomock.Any(), rctx, tc.readRule, gomock.Any()).
				Return(core.NewErrorAccessDenied(tc.readRule)),
		)
		p := NewMetadefPolicy(rctx, tc.resource, mockEnforcer, core.Config{})
		err := p.Enforce(ctx, "mutate")
		assert.ErrorAs(t, err, &core.ErrorNotFound{}, tc.readRule)
	}
}
