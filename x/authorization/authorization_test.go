package authorization

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/cloudmeta/catalog/core"
	mock_core "github.com/cloudmeta/catalog/core/mock"
)

var namespaceRules = RuleSet{
	Get:    "get_metadef_namespace",
	List:   "get_metadef_namespaces",
	Modify: "modify_metadef_namespace",
	Delete: "delete_metadef_namespace",
	Read:   "get_metadef_namespace",
}

func TestRepositoryGet(t *testing.T) {
	ctx := context.Background()
	rctx := core.RequestContext{Owner: "tenant1"}
	namespace := core.MetadefNamespace{ID: "ns1", Owner: "tenant1"}

	t.Run("allowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		inner := mock_core.NewMockRepository[core.MetadefNamespace](ctrl)
		inner.EXPECT().Get(gomock.Any(), "ns1").Return(namespace, nil)

		enforcer := mock_core.NewMockRuleEnforcer(ctrl)
		enforcer.EXPECT().
			Enforce(gomock.Any(), rctx, "get_metadef_namespace", gomock.Any()).
			Return(nil)

		repo := Wrap[core.MetadefNamespace](inner, rctx, enforcer, namespaceRules, core.Config{})
		got, err := repo.Get(ctx, "ns1")
		if assert.NoError(t, err) {
			assert.Equal(t, "ns1", got.ID)
		}
	})

	t.Run("hidden when read rule denied", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		inner := mock_core.NewMockRepository[core.MetadefNamespace](ctrl)
		inner.EXPECT().Get(gomock.Any(), "ns1").Return(namespace, nil)

		enforcer := mock_core.NewMockRuleEnforcer(ctrl)
		enforcer.EXPECT().
			Enforce(gomock.Any(), rctx, "get_metadef_namespace", gomock.Any()).
			Return(core.NewErrorAccessDenied("get_metadef_namespace")).
			Times(2)

		repo := Wrap[core.MetadefNamespace](inner, rctx, enforcer, namespaceRules, core.Config{})
		_, err := repo.Get(ctx, "ns1")
		var notFound core.ErrorNotFound
		assert.True(t, errors.As(err, &notFound))
	})

	t.Run("inner error passes through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		inner := mock_core.NewMockRepository[core.MetadefNamespace](ctrl)
		inner.EXPECT().Get(gomock.Any(), "ns1").Return(core.MetadefNamespace{}, core.NewErrorNotFound())

		enforcer := mock_core.NewMockRuleEnforcer(ctrl)

		repo := Wrap[core.MetadefNamespace](inner, rctx, enforcer, namespaceRules, core.Config{})
		_, err := repo.Get(ctx, "ns1")
		var notFound core.ErrorNotFound
		assert.True(t, errors.As(err, &notFound))
	})
}

func TestRepositoryListFiltersHiddenItems(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	rctx := core.RequestContext{Owner: "tenant1"}

	mine := core.MetadefNamespace{ID: "ns1", Owner: "tenant1"}
	theirs := core.MetadefNamespace{ID: "ns2", Owner: "tenant2"}

	inner := mock_core.NewMockRepository[core.MetadefNamespace](ctrl)
	inner.EXPECT().List(gomock.Any()).Return([]core.MetadefNamespace{mine, theirs}, nil)

	enforcer := mock_core.NewMockRuleEnforcer(ctrl)
	enforcer.EXPECT().
		Enforce(gomock.Any(), rctx, "get_metadef_namespaces", gomock.Any()).
		Return(nil)
	enforcer.EXPECT().
		Enforce(gomock.Any(), rctx, "get_metadef_namespace", gomock.Any()).
		DoAndReturn(func(ctx context.Context, rctx core.RequestContext, rule string, target map[string]any) error {
			if target["owner"] == "tenant1" {
				return nil
			}
			return core.NewErrorAccessDenied(rule)
		}).
		Times(2)

	repo := Wrap[core.MetadefNamespace](inner, rctx, enforcer, namespaceRules, core.Config{})
	got, err := repo.List(ctx)
	if assert.NoError(t, err) {
		assert.Len(t, got, 1)
		assert.Equal(t, "ns1", got[0].ID)
	}
}

func TestRepositoryListDeniedIsForbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	rctx := core.RequestContext{Owner: "tenant1"}

	inner := mock_core.NewMockRepository[core.MetadefNamespace](ctrl)

	enforcer := mock_core.NewMockRuleEnforcer(ctrl)
	enforcer.EXPECT().
		Enforce(gomock.Any(), rctx, "get_metadef_namespaces", gomock.Any()).
		Return(core.NewErrorAccessDenied("get_metadef_namespaces"))

	repo := Wrap[core.MetadefNamespace](inner, rctx, enforcer, namespaceRules, core.Config{})
	_, err := repo.List(ctx)
	var forbidden core.ErrorForbidden
	assert.True(t, errors.As(err, &forbidden))
}

func TestRepositorySaveEnforcesModify(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	rctx := core.RequestContext{Owner: "tenant2"}
	namespace := core.MetadefNamespace{ID: "ns1", Owner: "tenant1"}

	inner := mock_core.NewMockRepository[core.MetadefNamespace](ctrl)

	enforcer := mock_core.NewMockRuleEnforcer(ctrl)
	gomock.InOrder(
		enforcer.EXPECT().
			Enforce(gomock.Any(), rctx, "modify_metadef_namespace", gomock.Any()).
			Return(core.NewErrorAccessDenied("modify_metadef_namespace")),
		enforcer.EXPECT().
			Enforce(gomock.Any(), rctx, "get_metadef_namespace", gomock.Any()).
			Return(nil),
	)

	repo := Wrap[core.MetadefNamespace](inner, rctx, enforcer, namespaceRules, core.Config{})
	_, err := repo.Save(ctx, namespace)
	var forbidden core.ErrorForbidden
	assert.True(t, errors.As(err, &forbidden))
}

func TestRepositoryRemoveEnforcesDeleteBeforeRemoving(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	rctx := core.RequestContext{Owner: "tenant1"}
	namespace := core.MetadefNamespace{ID: "ns1", Owner: "tenant1"}

	inner := mock_core.NewMockRepository[core.MetadefNamespace](ctrl)
	enforcer := mock_core.NewMockRuleEnforcer(ctrl)

	gomock.InOrder(
		inner.EXPECT().Get(gomock.Any(), "ns1").Return(namespace, nil),
		enforcer.EXPECT().
			Enforce(gomock.Any(), rctx, "delete_metadef_namespace", gomock.Any()).
			Return(nil),
		inner.EXPECT().Remove(gomock.Any(), "ns1").Return(nil),
	)

	repo := Wrap[core.MetadefNamespace](inner, rctx, enforcer, namespaceRules, core.Config{})
	err := repo.Remove(ctx, "ns1")
	assert.NoError(t, err)
}

func TestFactoryDeniedIsForbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	rctx := core.RequestContext{}

	inner := mock_core.NewMockFactory[core.MetadefNamespace](ctrl)

	enforcer := mock_core.NewMockRuleEnforcer(ctrl)
	enforcer.EXPECT().
		Enforce(gomock.Any(), rctx, "add_metadef_namespace", gomock.Any()).
		Return(core.NewErrorAccessDenied("add_metadef_namespace"))

	factory := WrapFactory[core.MetadefNamespace](inner, rctx, enforcer, "add_metadef_namespace", core.Config{})
	_, err := factory.New(ctx, "")
	var forbidden core.ErrorForbidden
	assert.True(t, errors.As(err, &forbidden))
}

func TestFactoryAllowedDelegates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	rctx := core.RequestContext{Owner: "tenant1"}
	namespace := core.MetadefNamespace{ID: "ns1", Owner: "tenant1"}

	inner := mock_core.NewMockFactory[core.MetadefNamespace](ctrl)
	inner.EXPECT().New(gomock.Any(), "tenant1").Return(namespace, nil)

	enforcer := mock_core.NewMockRuleEnforcer(ctrl)
	enforcer.EXPECT().
		Enforce(gomock.Any(), rctx, "add_metadef_namespace", gomock.Any()).
		Return(nil)

	factory := WrapFactory[core.MetadefNamespace](inner, rctx, enforcer, "add_metadef_namespace", core.Config{})
	got, err := factory.New(ctx, "tenant1")
	if assert.NoError(t, err) {
		assert.Equal(t, "ns1", got.ID)
	}
}
