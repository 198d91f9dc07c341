package metadef

import (
	"context"

	"github.com/rs/xid"

	"github.com/cloudmeta/catalog/core"
)

type factory[T any] struct {
	build func(id string, owner string) T
}

func (f factory[T]) New(ctx context.Context, owner string) (T, error) {
	_, span := tracer.Start(ctx, "Metadef.Factory.New")
	defer span.End()

	return f.build(xid.New().String(), owner), nil
}

// NewNamespaceFactory creates the namespace factory. Namespaces start
// private.
func NewNamespaceFactory() core.Factory[core.MetadefNamespace] {
	return factory[core.MetadefNamespace]{func(id, owner string) core.MetadefNamespace {
		return core.MetadefNamespace{
			ID:         id,
			Owner:      owner,
			Visibility: core.VisibilityPrivate,
		}
	}}
}

func NewObjectFactory() core.Factory[core.MetadefObject] {
	return factory[core.MetadefObject]{func(id, owner string) core.MetadefObject {
		return core.MetadefObject{ID: id, Owner: owner}
	}}
}

func NewPropertyFactory() core.Factory[core.MetadefProperty] {
	return factory[core.MetadefProperty]{func(id, owner string) core.MetadefProperty {
		return core.MetadefProperty{ID: id, Owner: owner}
	}}
}

func NewResourceTypeFactory() core.Factory[core.MetadefResourceType] {
	return factory[core.MetadefResourceType]{func(id, owner string) core.MetadefResourceType {
		return core.MetadefResourceType{ID: id, Owner: owner}
	}}
}

func NewTagFactory() core.Factory[core.MetadefTag] {
	return factory[core.MetadefTag]{func(id, owner string) core.MetadefTag {
		return core.MetadefTag{ID: id, Owner: owner}
	}}
}
