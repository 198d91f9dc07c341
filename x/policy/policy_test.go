package policy

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/cloudmeta/catalog/core"
	mock_core "github.com/cloudmeta/catalog/core/mock"
)

func TestEngineEnforcePassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rctx := core.RequestContext{Requester: "user1", Owner: "tenant1"}
	target := map[string]any{"owner": "tenant1"}

	mockEnforcer := mock_core.NewMockRuleEnforcer(ctrl)
	mockEnforcer.EXPECT().
		Enforce(gomock.Any(), rctx, "fake_rule", target).
		Return(nil)

	engine := NewEngine(mockEnforcer, rctx, target, "", core.Config{})

	err := engine.Enforce(context.Background(), "fake_rule")
	assert.NoError(t, err)
}

func TestEngineEnforceDenialIsNotTranslated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rctx := core.RequestContext{Owner: "tenant1"}

	mockEnforcer := mock_core.NewMockRuleEnforcer(ctrl)
	mockEnforcer.EXPECT().
		Enforce(gomock.Any(), rctx, "fake_rule", gomock.Any()).
		Return(core.NewErrorAccessDenied("fake_rule"))

	engine := NewEngine(mockEnforcer, rctx, nil, "", core.Config{})

	// the base engine re-raises the raw denial unchanged
	err := engine.Enforce(context.Background(), "fake_rule")
	assert.ErrorAs(t, err, &core.ErrorAccessDenied{})
}

func TestEngineEnforceUnrelatedErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	boom := errors.New("evaluator exploded")

	mockEnforcer := mock_core.NewMockRuleEnforcer(ctrl)
	mockEnforcer.EXPECT().
		Enforce(gomock.Any(), gomock.Any(), "fake_rule", gomock.Any()).
		Return(boom)

	engine := NewEngine(mockEnforcer, core.RequestContext{}, nil, RuleGetImage, core.Config{})

	// no fallback evaluation happens for a non-denial error
	err := engine.Enforce(context.Background(), "fake_rule")
	assert.ErrorIs(t, err, boom)
}

func TestEngineCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEnforcer := mock_core.NewMockRuleEnforcer(ctrl)
	engine := NewEngine(mockEnforcer, core.RequestContext{}, nil, "", core.Config{})
	ctx := context.Background()

	// allowed
	mockEnforcer.EXPECT().
		Enforce(gomock.Any(), gomock.Any(), "fake_rule", gomock.Any()).
		Return(nil)
	ok, err := engine.Check(ctx, "fake_rule")
	assert.NoError(t, err)
	assert.True(t, ok)

	// denied
	mockEnforcer.EXPECT().
		Enforce(gomock.Any(), gomock.Any(), "fake_rule", gomock.Any()).
		Return(core.NewErrorAccessDenied("fake_rule"))
	ok, err = engine.Check(ctx, "fake_rule")
	assert.NoError(t, err)
	assert.False(t, ok)

	// NotFound is not a predicate outcome and must re-raise
	mockEnforcer.EXPECT().
		Enforce(gomock.Any(), gomock.Any(), "fake_rule", gomock.Any()).
		Return(core.NewErrorNotFound())
	_, err = engine.Check(ctx, "fake_rule")
	assert.ErrorAs(t, err, &core.ErrorNotFound{})

	// unrelated errors must re-raise
	boom := errors.New("db down")
	mockEnforcer.EXPECT().
		Enforce(gomock.Any(), gomock.Any(), "fake_rule", gomock.Any()).
		Return(boom)
	_, err = engine.Check(ctx, "fake_rule")
	assert.ErrorIs(t, err, boom)
}

func TestEngineCheckAbsorbsForbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEnforcer := mock_core.NewMockRuleEnforcer(ctrl)
	gomock.InOrder(
		mockEnforcer.EXPECT().
			Enforce(gomock.Any(), gomock.Any(), "modify_image", gomock.Any()).
			Return(core.NewErrorAccessDenied("modify_image")),
		mockEnforcer.EXPECT().
			Enforce(gomock.Any(), gomock.Any(), RuleGetImage, gomock.Any()).
			Return(nil),
	)

	engine := NewEngine(mockEnforcer, core.RequestContext{}, nil, RuleGetImage, core.Config{})

	// the translated Forbidden folds into false
	ok, err := engine.Check(context.Background(), "modify_image")
	assert.NoError(t, err)
	assert.False(t, ok)
}
