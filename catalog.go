// Package catalog wires the default component graph of the resource
// catalog: base persistence accessors, the rule enforcer and the
// gateway that composes per-request repository chains.
package catalog

import (
	"github.com/bradfitz/gomemcache/memcache"
	"gorm.io/gorm"

	"github.com/cloudmeta/catalog/x/gateway"
	"github.com/cloudmeta/catalog/x/image"
	"github.com/cloudmeta/catalog/x/metadef"
	"github.com/cloudmeta/catalog/x/task"
)

// NewAccessors builds the base repositories and factories the gateway
// wraps.
func NewAccessors(db *gorm.DB, mc *memcache.Client) gateway.Accessors {
	return gateway.Accessors{
		ImageRepo:    image.NewRepository(db),
		ImageFactory: image.NewFactory(),

		NamespaceRepo:    metadef.NewNamespaceRepository(db),
		NamespaceFactory: metadef.NewNamespaceFactory(),

		ObjectRepo:    metadef.NewObjectRepository(db),
		ObjectFactory: metadef.NewObjectFactory(),

		PropertyRepo:    metadef.NewPropertyRepository(db),
		PropertyFactory: metadef.NewPropertyFactory(),

		ResourceTypeRepo:    metadef.NewResourceTypeRepository(db, mc),
		ResourceTypeFactory: metadef.NewResourceTypeFactory(),

		TagRepo:    metadef.NewTagRepository(db),
		TagFactory: metadef.NewTagFactory(),

		TaskRepo:    task.NewRepository(db),
		TaskFactory: task.NewFactory(),
	}
}
