package protection

import (
	"context"

	"go.opentelemetry.io/otel"

	"github.com/cloudmeta/catalog/core"
)

var tracer = otel.Tracer("protection")

// repository filters protected properties out of reads and rejects
// writes the caller's roles do not permit. Reads never raise on a
// protected property; they just omit it.
type repository struct {
	inner core.Repository[core.Image]
	rctx  core.RequestContext
	rules *Rules
}

func Wrap(inner core.Repository[core.Image], rctx core.RequestContext, rules *Rules) core.Repository[core.Image] {
	return &repository{inner, rctx, rules}
}

func redact(image core.Image, roles []string, rules *Rules) core.Image {
	if len(image.Properties) == 0 {
		return image
	}
	visible := make(map[string]string, len(image.Properties))
	for name, value := range image.Properties {
		if rules.CanRead(name, roles) {
			visible[name] = value
		}
	}
	image.Properties = visible
	return image
}

func (r *repository) redact(image core.Image) core.Image {
	return redact(image, r.rctx.Roles, r.rules)
}

type factory struct {
	inner core.Factory[core.Image]
	rctx  core.RequestContext
	rules *Rules
}

// WrapFactory redacts protected default properties out of newly created
// images, the same filter reads apply.
func WrapFactory(inner core.Factory[core.Image], rctx core.RequestContext, rules *Rules) core.Factory[core.Image] {
	return &factory{inner, rctx, rules}
}

func (f *factory) New(ctx context.Context, owner string) (core.Image, error) {
	ctx, span := tracer.Start(ctx, "Protection.Factory.New")
	defer span.End()

	image, err := f.inner.New(ctx, owner)
	if err != nil {
		span.RecordError(err)
		return core.Image{}, err
	}
	return redact(image, f.rctx.Roles, f.rules), nil
}

func (r *repository) Get(ctx context.Context, id string) (core.Image, error) {
	ctx, span := tracer.Start(ctx, "Protection.Repository.Get")
	defer span.End()

	image, err := r.inner.Get(ctx, id)
	if err != nil {
		span.RecordError(err)
		return core.Image{}, err
	}
	return r.redact(image), nil
}

func (r *repository) List(ctx context.Context) ([]core.Image, error) {
	ctx, span := tracer.Start(ctx, "Protection.Repository.List")
	defer span.End()

	images, err := r.inner.List(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	for i := range images {
		images[i] = r.redact(images[i])
	}
	return images, nil
}

func (r *repository) Save(ctx context.Context, image core.Image) (core.Image, error) {
	ctx, span := tracer.Start(ctx, "Protection.Repository.Save")
	defer span.End()

	existing, err := r.inner.Get(ctx, image.ID)
	if err != nil {
		existing = core.Image{}
	}

	for name := range image.Properties {
		_, present := existing.Properties[name]
		if present {
			if image.Properties[name] != existing.Properties[name] && !r.rules.CanUpdate(name, r.rctx.Roles) {
				return core.Image{}, core.NewErrorForbidden()
			}
		} else if !r.rules.CanCreate(name, r.rctx.Roles) {
			return core.Image{}, core.NewErrorForbidden()
		}
	}

	for name, value := range existing.Properties {
		if _, present := image.Properties[name]; present {
			continue
		}
		if !r.rules.CanRead(name, r.rctx.Roles) {
			// the caller never saw this property; carry it through
			// instead of treating its absence as a deletion
			if image.Properties == nil {
				image.Properties = make(map[string]string)
			}
			image.Properties[name] = value
			continue
		}
		if !r.rules.CanDelete(name, r.rctx.Roles) {
			return core.Image{}, core.NewErrorForbidden()
		}
	}

	saved, err := r.inner.Save(ctx, image)
	if err != nil {
		span.RecordError(err)
		return core.Image{}, err
	}
	return r.redact(saved), nil
}

func (r *repository) Remove(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Protection.Repository.Remove")
	defer span.End()

	return r.inner.Remove(ctx, id)
}
