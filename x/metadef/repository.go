// Package metadef provides persistence accessors for the metadata
// definition kinds. All six share one gorm-backed repository shape;
// resource types additionally keep their listing in memcache because
// it is read on nearly every schema lookup and changes rarely.
package metadef

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bradfitz/gomemcache/memcache"
	"go.opentelemetry.io/otel"
	"gorm.io/gorm"

	"github.com/cloudmeta/catalog/core"
)

var tracer = otel.Tracer("metadef")

const resourceTypeCacheKey = "metadef_resource_types"

type repository[T any] struct {
	db *gorm.DB
}

func newRepository[T any](db *gorm.DB) core.Repository[T] {
	return &repository[T]{db}
}

func (r *repository[T]) Get(ctx context.Context, id string) (T, error) {
	ctx, span := tracer.Start(ctx, "Metadef.Repository.Get")
	defer span.End()

	var resource T
	err := r.db.WithContext(ctx).First(&resource, "id = ?", id).Error
	if err != nil {
		var zero T
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return zero, err
	}
	return resource, nil
}

func (r *repository[T]) List(ctx context.Context) ([]T, error) {
	ctx, span := tracer.Start(ctx, "Metadef.Repository.List")
	defer span.End()

	var resources []T
	err := r.db.WithContext(ctx).Find(&resources).Error
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return resources, nil
}

func (r *repository[T]) Save(ctx context.Context, resource T) (T, error) {
	ctx, span := tracer.Start(ctx, "Metadef.Repository.Save")
	defer span.End()

	err := r.db.WithContext(ctx).Save(&resource).Error
	if err != nil {
		span.RecordError(err)
		var zero T
		return zero, err
	}
	return resource, nil
}

func (r *repository[T]) Remove(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Metadef.Repository.Remove")
	defer span.End()

	var resource T
	result := r.db.WithContext(ctx).Delete(&resource, "id = ?", id)
	if result.Error != nil {
		span.RecordError(result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return core.NewErrorNotFound()
	}
	return nil
}

func NewNamespaceRepository(db *gorm.DB) core.Repository[core.MetadefNamespace] {
	return newRepository[core.MetadefNamespace](db)
}

func NewObjectRepository(db *gorm.DB) core.Repository[core.MetadefObject] {
	return newRepository[core.MetadefObject](db)
}

func NewPropertyRepository(db *gorm.DB) core.Repository[core.MetadefProperty] {
	return newRepository[core.MetadefProperty](db)
}

func NewTagRepository(db *gorm.DB) core.Repository[core.MetadefTag] {
	return newRepository[core.MetadefTag](db)
}

// NewResourceTypeRepository layers the memcache listing cache over the
// gorm repository.
func NewResourceTypeRepository(db *gorm.DB, mc *memcache.Client) core.Repository[core.MetadefResourceType] {
	return &resourceTypeRepository{
		inner: newRepository[core.MetadefResourceType](db),
		mc:    mc,
	}
}

type resourceTypeRepository struct {
	inner core.Repository[core.MetadefResourceType]
	mc    *memcache.Client
}

func (r *resourceTypeRepository) Get(ctx context.Context, id string) (core.MetadefResourceType, error) {
	return r.inner.Get(ctx, id)
}

func (r *resourceTypeRepository) List(ctx context.Context) ([]core.MetadefResourceType, error) {
	ctx, span := tracer.Start(ctx, "Metadef.ResourceTypeRepository.List")
	defer span.End()

	item, err := r.mc.Get(resourceTypeCacheKey)
	if err == nil {
		var cached []core.MetadefResourceType
		err = json.Unmarshal(item.Value, &cached)
		if err == nil {
			return cached, nil
		}
		span.RecordError(err)
	}

	resourceTypes, err := r.inner.List(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	payload, err := json.Marshal(resourceTypes)
	if err == nil {
		err = r.mc.Set(&memcache.Item{Key: resourceTypeCacheKey, Value: payload, Expiration: 300})
		if err != nil {
			slog.ErrorContext(ctx, fmt.Sprintf("failed to cache resource type listing: %v", err),
				slog.String("module", "metadef"))
		}
	}

	return resourceTypes, nil
}

func (r *resourceTypeRepository) invalidate(ctx context.Context) {
	err := r.mc.Delete(resourceTypeCacheKey)
	if err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		slog.ErrorContext(ctx, fmt.Sprintf("failed to invalidate resource type listing: %v", err),
			slog.String("module", "metadef"))
	}
}

func (r *resourceTypeRepository) Save(ctx context.Context, resourceType core.MetadefResourceType) (core.MetadefResourceType, error) {
	ctx, span := tracer.Start(ctx, "Metadef.ResourceTypeRepository.Save")
	defer span.End()

	saved, err := r.inner.Save(ctx, resourceType)
	if err != nil {
		return core.MetadefResourceType{}, err
	}
	r.invalidate(ctx)
	return saved, nil
}

func (r *resourceTypeRepository) Remove(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Metadef.ResourceTypeRepository.Remove")
	defer span.End()

	err := r.inner.Remove(ctx, id)
	if err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}
