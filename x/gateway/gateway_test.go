package gateway

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/cloudmeta/catalog/core"
	mock_core "github.com/cloudmeta/catalog/core/mock"
)

// deadRDB is a redis client with nothing listening. The notifier logs
// publish failures instead of raising, so chains stay testable without
// a broker.
func deadRDB() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "localhost:1"})
}

func denyAll(ctrl *gomock.Controller) *mock_core.MockRuleEnforcer {
	enforcer := mock_core.NewMockRuleEnforcer(ctrl)
	enforcer.EXPECT().
		Enforce(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, rctx core.RequestContext, rule string, target map[string]any) error {
			return core.NewErrorAccessDenied(rule)
		}).
		AnyTimes()
	return enforcer
}

func allowAll(ctrl *gomock.Controller) *mock_core.MockRuleEnforcer {
	enforcer := mock_core.NewMockRuleEnforcer(ctrl)
	enforcer.EXPECT().
		Enforce(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()
	return enforcer
}

func TestDefaultChainEnforcesAuthorization(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	image := core.Image{ID: "img1", Owner: "tenant1"}

	imageRepo := mock_core.NewMockRepository[core.Image](ctrl)
	imageRepo.EXPECT().Get(gomock.Any(), "img1").Return(image, nil)

	gw, err := New(Accessors{ImageRepo: imageRepo}, denyAll(ctrl), deadRDB(), core.Config{})
	assert.NoError(t, err)

	rctx := core.RequestContext{Owner: "tenant2"}
	_, err = gw.GetImageRepo(rctx).Get(ctx, "img1")
	var notFound core.ErrorNotFound
	assert.True(t, errors.As(err, &notFound))
}

func TestWithoutAuthorizationLayerSkipsEnforcement(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	image := core.Image{ID: "img1", Owner: "tenant1"}

	imageRepo := mock_core.NewMockRepository[core.Image](ctrl)
	imageRepo.EXPECT().Get(gomock.Any(), "img1").Return(image, nil)

	// the enforcer denies everything; it must never be consulted
	gw, err := New(Accessors{ImageRepo: imageRepo}, denyAll(ctrl), deadRDB(), core.Config{})
	assert.NoError(t, err)

	rctx := core.RequestContext{Owner: "tenant2"}
	got, err := gw.GetImageRepo(rctx, WithoutAuthorizationLayer()).Get(ctx, "img1")
	if assert.NoError(t, err) {
		assert.Equal(t, "img1", got.ID)
	}
}

func TestProtectionReplacesDisabledAuthorization(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	protectionFile := filepath.Join(t.TempDir(), "protections.yaml")
	err := os.WriteFile(protectionFile, []byte(`
rules:
  - pattern: "^x_billing_.*"
    create: ["admin"]
    read: ["admin"]
    update: ["admin"]
    delete: ["admin"]
`), 0644)
	assert.NoError(t, err)

	image := core.Image{
		ID: "img1",
		Properties: map[string]string{
			"x_billing_code": "42",
			"os_distro":      "linux",
		},
	}

	imageRepo := mock_core.NewMockRepository[core.Image](ctrl)
	imageRepo.EXPECT().Get(gomock.Any(), "img1").Return(image, nil).AnyTimes()

	config := core.Config{PropertyProtectionFile: protectionFile}
	gw, err := New(Accessors{ImageRepo: imageRepo}, allowAll(ctrl), deadRDB(), config)
	assert.NoError(t, err)

	rctx := core.RequestContext{Owner: "tenant1", Roles: []string{"member"}}

	t.Run("redacts when authorization is off", func(t *testing.T) {
		got, err := gw.GetImageRepo(rctx, WithoutAuthorizationLayer()).Get(ctx, "img1")
		if assert.NoError(t, err) {
			assert.NotContains(t, got.Properties, "x_billing_code")
			assert.Contains(t, got.Properties, "os_distro")
		}
	})

	t.Run("not applied under authorization", func(t *testing.T) {
		got, err := gw.GetImageRepo(rctx).Get(ctx, "img1")
		if assert.NoError(t, err) {
			assert.Contains(t, got.Properties, "x_billing_code")
		}
	})
}

func TestNewRejectsBadProtectionFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	config := core.Config{PropertyProtectionFile: "/nonexistent/protections.yaml"}
	_, err := New(Accessors{}, allowAll(ctrl), deadRDB(), config)
	assert.Error(t, err)
}

func TestMemberPropagationThroughChain(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	image := core.Image{ID: "img1", Owner: "tenant1", Members: []string{"tenant2"}}

	imageRepo := mock_core.NewMockRepository[core.Image](ctrl)
	imageRepo.EXPECT().Get(gomock.Any(), "img1").Return(image, nil)

	gw, err := New(Accessors{ImageRepo: imageRepo}, allowAll(ctrl), deadRDB(), core.Config{})
	assert.NoError(t, err)

	rctx := core.RequestContext{Owner: "tenant2"}
	got, err := gw.GetImageRepo(rctx).Get(ctx, "img1")
	if assert.NoError(t, err) {
		assert.Equal(t, "tenant2", got.Member)
	}
}

func TestFactoryChainComposition(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	rctx := core.RequestContext{Requester: "user1", Owner: "tenant1"}

	t.Run("default chain enforces the add rule", func(t *testing.T) {
		nsFactory := mock_core.NewMockFactory[core.MetadefNamespace](ctrl)

		gw, err := New(Accessors{NamespaceFactory: nsFactory}, denyAll(ctrl), deadRDB(), core.Config{})
		assert.NoError(t, err)

		_, err = gw.GetMetadefNamespaceFactory(rctx).New(ctx, rctx.Owner)
		var forbidden core.ErrorForbidden
		assert.True(t, errors.As(err, &forbidden))
	})

	t.Run("without authorization the notifier still wraps", func(t *testing.T) {
		nsFactory := mock_core.NewMockFactory[core.MetadefNamespace](ctrl)
		nsFactory.EXPECT().New(gomock.Any(), "tenant1").Return(core.MetadefNamespace{ID: "ns1", Owner: "tenant1"}, nil)

		// the enforcer denies everything; it must never be consulted
		gw, err := New(Accessors{NamespaceFactory: nsFactory}, denyAll(ctrl), deadRDB(), core.Config{})
		assert.NoError(t, err)

		factory := gw.GetMetadefNamespaceFactory(rctx, WithoutAuthorizationLayer())
		assert.NotSame(t, nsFactory, factory)

		namespace, err := factory.New(ctx, rctx.Owner)
		if assert.NoError(t, err) {
			assert.Equal(t, "ns1", namespace.ID)
		}
	})

	t.Run("protection replaces disabled authorization for images", func(t *testing.T) {
		protectionFile := filepath.Join(t.TempDir(), "protections.yaml")
		err := os.WriteFile(protectionFile, []byte(`
rules:
  - pattern: "^x_billing_.*"
    create: ["admin"]
    read: ["admin"]
    update: ["admin"]
    delete: ["admin"]
`), 0644)
		assert.NoError(t, err)

		imageFactory := mock_core.NewMockFactory[core.Image](ctrl)
		imageFactory.EXPECT().New(gomock.Any(), "tenant1").Return(core.Image{
			ID:    "img1",
			Owner: "tenant1",
			Properties: map[string]string{
				"x_billing_code": "42",
				"os_distro":      "linux",
			},
		}, nil)

		config := core.Config{PropertyProtectionFile: protectionFile}
		gw, err := New(Accessors{ImageFactory: imageFactory}, denyAll(ctrl), deadRDB(), config)
		assert.NoError(t, err)

		memberCtx := core.RequestContext{Owner: "tenant1", Roles: []string{"member"}}
		image, err := gw.GetImageFactory(memberCtx, WithoutAuthorizationLayer()).New(ctx, memberCtx.Owner)
		if assert.NoError(t, err) {
			assert.NotContains(t, image.Properties, "x_billing_code")
			assert.Contains(t, image.Properties, "os_distro")
		}
	})
}

func TestTaskExecutorFactoryAdminRepo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	taskRepo := mock_core.NewMockRepository[core.Task](ctrl)
	imageRepo := mock_core.NewMockRepository[core.Image](ctrl)
	imageFactory := mock_core.NewMockFactory[core.Image](ctrl)

	accessors := Accessors{
		TaskRepo:     taskRepo,
		ImageRepo:    imageRepo,
		ImageFactory: imageFactory,
	}

	gw, err := New(accessors, allowAll(ctrl), deadRDB(), core.Config{})
	assert.NoError(t, err)

	rctx := core.RequestContext{Owner: "tenant1"}

	t.Run("no admin context", func(t *testing.T) {
		factory := gw.GetTaskExecutorFactory(rctx, nil)
		assert.Nil(t, factory.AdminRepo())
		assert.NotNil(t, factory.Publisher())
	})

	t.Run("with admin context", func(t *testing.T) {
		adminCtx := core.RequestContext{Owner: "tenant1", IsAdmin: true}
		factory := gw.GetTaskExecutorFactory(rctx, &adminCtx)
		assert.NotNil(t, factory.AdminRepo())
		assert.Equal(t, factory.AdminRepo(), factory.Publisher())
	})
}

func TestRequestContextOf(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(core.RequesterHeader, "user1")
	req.Header.Set(core.OwnerHeader, "tenant1")
	req.Header.Set(core.AdminHeader, "true")
	req.Header.Set(core.RolesHeader, "admin, member")

	e := echo.New()
	c := e.NewContext(req, httptest.NewRecorder())

	rctx := RequestContextOf(c)
	assert.Equal(t, "user1", rctx.Requester)
	assert.Equal(t, "tenant1", rctx.Owner)
	assert.True(t, rctx.IsAdmin)
	assert.Equal(t, []string{"admin", "member"}, rctx.Roles)
}
