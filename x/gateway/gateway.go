// Package gateway composes the per-request repository chains. Every
// accessor hands out a base repository wrapped in the notification
// decorator and, depending on flags and configuration, the
// authorization or property-protection decorator.
package gateway

import (
	"github.com/redis/go-redis/v9"

	"github.com/cloudmeta/catalog/core"
	"github.com/cloudmeta/catalog/x/authorization"
	"github.com/cloudmeta/catalog/x/executor"
	"github.com/cloudmeta/catalog/x/notifier"
	"github.com/cloudmeta/catalog/x/policy"
	"github.com/cloudmeta/catalog/x/protection"
)

// Accessors are the base persistence repositories and factories the
// gateway wraps. They are injected so the gateway stays independent of
// the storage packages.
type Accessors struct {
	ImageRepo    core.Repository[core.Image]
	ImageFactory core.Factory[core.Image]

	NamespaceRepo    core.Repository[core.MetadefNamespace]
	NamespaceFactory core.Factory[core.MetadefNamespace]

	ObjectRepo    core.Repository[core.MetadefObject]
	ObjectFactory core.Factory[core.MetadefObject]

	PropertyRepo    core.Repository[core.MetadefProperty]
	PropertyFactory core.Factory[core.MetadefProperty]

	ResourceTypeRepo    core.Repository[core.MetadefResourceType]
	ResourceTypeFactory core.Factory[core.MetadefResourceType]

	TagRepo    core.Repository[core.MetadefTag]
	TagFactory core.Factory[core.MetadefTag]

	TaskRepo    core.Repository[core.Task]
	TaskFactory core.Factory[core.Task]
}

type options struct {
	authorization bool
}

// Option adjusts how one accessor call composes its chain.
type Option func(*options)

// WithoutAuthorizationLayer skips the authorization decorator. The
// property-protection decorator takes its place for images when a
// protection file is configured.
func WithoutAuthorizationLayer() Option {
	return func(o *options) {
		o.authorization = false
	}
}

func buildOptions(opts []Option) options {
	o := options{authorization: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type Gateway struct {
	accessors  Accessors
	enforcer   core.RuleEnforcer
	rdb        *redis.Client
	config     core.Config
	protection *protection.Rules
}

// New creates a gateway. The property protection file, when
// configured, is loaded once here.
func New(accessors Accessors, enforcer core.RuleEnforcer, rdb *redis.Client, config core.Config) (*Gateway, error) {
	g := &Gateway{
		accessors: accessors,
		enforcer:  enforcer,
		rdb:       rdb,
		config:    config,
	}

	if config.PropertyProtectionFile != "" {
		rules, err := protection.LoadRules(config.PropertyProtectionFile)
		if err != nil {
			return nil, err
		}
		g.protection = rules
	}

	return g, nil
}

var (
	namespaceRules = authorization.RuleSet{
		Get:    policy.RuleGetMetadefNamespace,
		List:   policy.RuleGetMetadefNamespaces,
		Modify: policy.RuleModifyMetadefNamespace,
		Delete: policy.RuleDeleteMetadefNamespace,
		Read:   policy.RuleGetMetadefNamespace,
	}
	objectRules = authorization.RuleSet{
		Get:    policy.RuleGetMetadefObject,
		List:   policy.RuleGetMetadefObjects,
		Modify: policy.RuleModifyMetadefObject,
		Delete: policy.RuleDeleteMetadefObject,
		Read:   policy.RuleGetMetadefObject,
	}
	propertyRules = authorization.RuleSet{
		Get:    policy.RuleGetMetadefProperties,
		List:   policy.RuleGetMetadefProperties,
		Modify: policy.RuleModifyMetadefProperty,
		Delete: policy.RuleDeleteMetadefProperty,
		Read:   policy.RuleGetMetadefProperties,
	}
	resourceTypeRules = authorization.RuleSet{
		Get:    policy.RuleListMetadefResourceTypes,
		List:   policy.RuleListMetadefResourceTypes,
		Modify: policy.RuleAddMetadefResourceTypeAssociation,
		Delete: policy.RuleAddMetadefResourceTypeAssociation,
		Read:   policy.RuleListMetadefResourceTypes,
	}
	tagRules = authorization.RuleSet{
		Get:    policy.RuleGetMetadefTags,
		List:   policy.RuleGetMetadefTags,
		Modify: policy.RuleAddMetadefTag,
		Delete: policy.RuleDeleteMetadefTags,
		Read:   policy.RuleGetMetadefTags,
	}
	taskRules = authorization.RuleSet{
		Get:    policy.RuleGetTask,
		List:   policy.RuleGetTasks,
		Modify: policy.RuleModifyTask,
		Delete: policy.RuleDeleteTask,
		Read:   policy.RuleGetTask,
	}
)

func wrap[T any](g *Gateway, inner core.Repository[T], kind string, rctx core.RequestContext, rules authorization.RuleSet, opts []Option) core.Repository[T] {
	o := buildOptions(opts)
	repo := notifier.Wrap(inner, kind, g.rdb)
	if o.authorization {
		repo = authorization.Wrap(repo, rctx, g.enforcer, rules, g.config)
	}
	return repo
}

func wrapFactory[T any](g *Gateway, inner core.Factory[T], kind string, rctx core.RequestContext, rule string, opts []Option) core.Factory[T] {
	o := buildOptions(opts)
	f := notifier.WrapFactory(inner, kind, g.rdb)
	if o.authorization {
		return authorization.WrapFactory(f, rctx, g.enforcer, rule, g.config)
	}
	return f
}

func (g *Gateway) GetImageRepo(rctx core.RequestContext, opts ...Option) core.Repository[core.Image] {
	o := buildOptions(opts)
	repo := notifier.Wrap(g.accessors.ImageRepo, "image", g.rdb)
	if o.authorization {
		return authorization.WrapImage(repo, rctx, g.enforcer, g.config)
	}
	if g.protection != nil {
		return protection.Wrap(repo, rctx, g.protection)
	}
	return repo
}

func (g *Gateway) GetImageFactory(rctx core.RequestContext, opts ...Option) core.Factory[core.Image] {
	o := buildOptions(opts)
	f := notifier.WrapFactory(g.accessors.ImageFactory, "image", g.rdb)
	if o.authorization {
		return authorization.WrapFactory(f, rctx, g.enforcer, policy.RuleAddImage, g.config)
	}
	if g.protection != nil {
		return protection.WrapFactory(f, rctx, g.protection)
	}
	return f
}

func (g *Gateway) GetMetadefNamespaceRepo(rctx core.RequestContext, opts ...Option) core.Repository[core.MetadefNamespace] {
	return wrap(g, g.accessors.NamespaceRepo, "metadef_namespace", rctx, namespaceRules, opts)
}

func (g *Gateway) GetMetadefNamespaceFactory(rctx core.RequestContext, opts ...Option) core.Factory[core.MetadefNamespace] {
	return wrapFactory(g, g.accessors.NamespaceFactory, "metadef_namespace", rctx, policy.RuleAddMetadefNamespace, opts)
}

func (g *Gateway) GetMetadefObjectRepo(rctx core.RequestContext, opts ...Option) core.Repository[core.MetadefObject] {
	return wrap(g, g.accessors.ObjectRepo, "metadef_object", rctx, objectRules, opts)
}

func (g *Gateway) GetMetadefObjectFactory(rctx core.RequestContext, opts ...Option) core.Factory[core.MetadefObject] {
	return wrapFactory(g, g.accessors.ObjectFactory, "metadef_object", rctx, policy.RuleAddMetadefObject, opts)
}

func (g *Gateway) GetMetadefPropertyRepo(rctx core.RequestContext, opts ...Option) core.Repository[core.MetadefProperty] {
	return wrap(g, g.accessors.PropertyRepo, "metadef_property", rctx, propertyRules, opts)
}

func (g *Gateway) GetMetadefPropertyFactory(rctx core.RequestContext, opts ...Option) core.Factory[core.MetadefProperty] {
	return wrapFactory(g, g.accessors.PropertyFactory, "metadef_property", rctx, policy.RuleAddMetadefProperty, opts)
}

func (g *Gateway) GetMetadefResourceTypeRepo(rctx core.RequestContext, opts ...Option) core.Repository[core.MetadefResourceType] {
	return wrap(g, g.accessors.ResourceTypeRepo, "metadef_resource_type", rctx, resourceTypeRules, opts)
}

func (g *Gateway) GetMetadefResourceTypeFactory(rctx core.RequestContext, opts ...Option) core.Factory[core.MetadefResourceType] {
	return wrapFactory(g, g.accessors.ResourceTypeFactory, "metadef_resource_type", rctx, policy.RuleAddMetadefResourceTypeAssociation, opts)
}

func (g *Gateway) GetMetadefTagRepo(rctx core.RequestContext, opts ...Option) core.Repository[core.MetadefTag] {
	return wrap(g, g.accessors.TagRepo, "metadef_tag", rctx, tagRules, opts)
}

func (g *Gateway) GetMetadefTagFactory(rctx core.RequestContext, opts ...Option) core.Factory[core.MetadefTag] {
	return wrapFactory(g, g.accessors.TagFactory, "metadef_tag", rctx, policy.RuleAddMetadefTag, opts)
}

func (g *Gateway) GetTaskRepo(rctx core.RequestContext, opts ...Option) core.Repository[core.Task] {
	return wrap(g, g.accessors.TaskRepo, "task", rctx, taskRules, opts)
}

func (g *Gateway) GetTaskFactory(rctx core.RequestContext, opts ...Option) core.Factory[core.Task] {
	return wrapFactory(g, g.accessors.TaskFactory, "task", rctx, policy.RuleAddTask, opts)
}

// GetTaskExecutorFactory builds the executor factory for one caller.
// adminCtx, when present, supplies an elevated image repository the
// executor publishes through instead of the caller-scoped one.
func (g *Gateway) GetTaskExecutorFactory(rctx core.RequestContext, adminCtx *core.RequestContext) *executor.Factory {
	taskRepo := g.GetTaskRepo(rctx)
	imageRepo := g.GetImageRepo(rctx)
	imageFactory := g.GetImageFactory(rctx)

	var adminRepo core.Repository[core.Image]
	if adminCtx != nil {
		adminRepo = g.GetImageRepo(*adminCtx)
	}

	return executor.NewFactory(taskRepo, imageRepo, imageFactory, adminRepo)
}
