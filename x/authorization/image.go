package authorization

import (
	"context"
	"errors"
	"slices"

	"github.com/cloudmeta/catalog/core"
	"github.com/cloudmeta/catalog/x/policy"
)

// imageRepository is the image-specific authorized repository. Images
// need more than the generic rule set: mutations carry the legacy
// ownership fallback, visibility transitions are gated by their own
// rules, and reads surface the caller's membership.
type imageRepository struct {
	inner    core.Repository[core.Image]
	rctx     core.RequestContext
	enforcer core.RuleEnforcer
	config   core.Config
}

func WrapImage(inner core.Repository[core.Image], rctx core.RequestContext, enforcer core.RuleEnforcer, config core.Config) core.Repository[core.Image] {
	return &imageRepository{inner, rctx, enforcer, config}
}

// propagateMember marks the image with the reader's tenant when they
// access it as a member rather than the owner.
func (r *imageRepository) propagateMember(image core.Image) core.Image {
	if r.rctx.Owner == "" || r.rctx.Owner == image.Owner {
		return image
	}
	if slices.Contains(image.Members, r.rctx.Owner) {
		image.Member = r.rctx.Owner
	}
	return image
}

func (r *imageRepository) Get(ctx context.Context, id string) (core.Image, error) {
	ctx, span := tracer.Start(ctx, "Authorization.ImageRepository.Get")
	defer span.End()

	image, err := r.inner.Get(ctx, id)
	if err != nil {
		span.RecordError(err)
		return core.Image{}, err
	}

	p := policy.NewImagePolicy(r.rctx, image, r.enforcer, r.config)
	err = p.GetImage(ctx)
	if err != nil {
		return core.Image{}, err
	}

	return r.propagateMember(image), nil
}

func (r *imageRepository) List(ctx context.Context) ([]core.Image, error) {
	ctx, span := tracer.Start(ctx, "Authorization.ImageRepository.List")
	defer span.End()

	engine := policy.NewEngine(r.enforcer, r.rctx, nil, "", r.config)
	err := engine.Enforce(ctx, policy.RuleGetImages)
	if err != nil {
		return nil, asForbidden(err)
	}

	images, err := r.inner.List(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	filtered := make([]core.Image, 0, len(images))
	for _, image := range images {
		engine := policy.NewEngine(r.enforcer, r.rctx, core.ResourceTarget(image), "", r.config)
		visible, err := engine.Check(ctx, policy.RuleGetImage)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		if visible {
			filtered = append(filtered, r.propagateMember(image))
		}
	}

	return filtered, nil
}

func (r *imageRepository) Save(ctx context.Context, image core.Image) (core.Image, error) {
	ctx, span := tracer.Start(ctx, "Authorization.ImageRepository.Save")
	defer span.End()

	existing, err := r.inner.Get(ctx, image.ID)
	var notFound core.ErrorNotFound
	if errors.As(err, &notFound) {
		p := policy.NewImagePolicy(r.rctx, image, r.enforcer, r.config)
		err := p.AddImage(ctx)
		if err != nil {
			return core.Image{}, err
		}
		return r.inner.Save(ctx, image)
	}
	if err != nil {
		span.RecordError(err)
		return core.Image{}, err
	}

	// mutation decisions are made against the stored state, not the
	// incoming one
	p := policy.NewImagePolicy(r.rctx, existing, r.enforcer, r.config)

	if image.Visibility != existing.Visibility {
		err := p.UpdateProperty(ctx, "visibility", image.Visibility)
		if err != nil {
			return core.Image{}, err
		}
	}

	if !slices.Equal(image.Locations, existing.Locations) {
		if len(image.Locations) < len(existing.Locations) {
			err = p.DeleteLocations(ctx)
		} else {
			err = p.UpdateLocations(ctx)
		}
		if err != nil {
			return core.Image{}, err
		}
	}

	err = p.ModifyImage(ctx)
	if err != nil {
		return core.Image{}, err
	}

	return r.inner.Save(ctx, image)
}

func (r *imageRepository) Remove(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Authorization.ImageRepository.Remove")
	defer span.End()

	image, err := r.inner.Get(ctx, id)
	if err != nil {
		span.RecordError(err)
		return err
	}

	p := policy.NewImagePolicy(r.rctx, image, r.enforcer, r.config)
	err = p.DeleteImage(ctx)
	if err != nil {
		return err
	}

	return r.inner.Remove(ctx, id)
}
