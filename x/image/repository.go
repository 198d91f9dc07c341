// Package image provides the image persistence accessors and the echo
// handler in front of the composed repository chain.
package image

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"gorm.io/gorm"

	"github.com/cloudmeta/catalog/core"
)

var tracer = otel.Tracer("image")

type repository struct {
	db *gorm.DB
}

// NewRepository creates the gorm-backed image repository.
func NewRepository(db *gorm.DB) core.Repository[core.Image] {
	return &repository{db}
}

func (r *repository) Get(ctx context.Context, id string) (core.Image, error) {
	ctx, span := tracer.Start(ctx, "Image.Repository.Get")
	defer span.End()

	var image core.Image
	err := r.db.WithContext(ctx).First(&image, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.Image{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.Image{}, err
	}
	return image, nil
}

func (r *repository) List(ctx context.Context) ([]core.Image, error) {
	ctx, span := tracer.Start(ctx, "Image.Repository.List")
	defer span.End()

	var images []core.Image
	err := r.db.WithContext(ctx).Find(&images).Error
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return images, nil
}

func (r *repository) Save(ctx context.Context, image core.Image) (core.Image, error) {
	ctx, span := tracer.Start(ctx, "Image.Repository.Save")
	defer span.End()

	if image.ID == "" {
		return core.Image{}, errors.New("image id is required")
	}

	err := r.db.WithContext(ctx).Save(&image).Error
	if err != nil {
		span.RecordError(err)
		return core.Image{}, err
	}
	return image, nil
}

func (r *repository) Remove(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Image.Repository.Remove")
	defer span.End()

	result := r.db.WithContext(ctx).Delete(&core.Image{}, "id = ?", id)
	if result.Error != nil {
		span.RecordError(result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return core.NewErrorNotFound()
	}
	return nil
}
