//go:build wireinject

package catalog

import (
	"github.com/bradfitz/gomemcache/memcache"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/cloudmeta/catalog/core"
	"github.com/cloudmeta/catalog/x/enforcer"
	"github.com/cloudmeta/catalog/x/gateway"
)

var enforcerProvider = wire.NewSet(enforcer.NewService, enforcer.NewRepository)
var gatewayProvider = wire.NewSet(gateway.New, NewAccessors, enforcerProvider)

func SetupRuleEnforcer(rdb *redis.Client, document core.RuleDocument, config core.Config) core.RuleEnforcer {
	wire.Build(enforcerProvider)
	return nil
}

func SetupGateway(db *gorm.DB, rdb *redis.Client, mc *memcache.Client, document core.RuleDocument, config core.Config) (*gateway.Gateway, error) {
	wire.Build(gatewayProvider)
	return nil, nil
}
