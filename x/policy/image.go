package policy

import (
	"context"

	"github.com/cloudmeta/catalog/core"
)

// ImagePolicy decides image actions for one caller against one image.
// Mutating decisions carry the legacy ownership fallback while
// SecureRBAC is disabled.
type ImagePolicy struct {
	Engine
	image core.Image
}

func NewImagePolicy(rctx core.RequestContext, image core.Image, enforcer core.RuleEnforcer, config core.Config) *ImagePolicy {
	return &ImagePolicy{
		Engine: *NewEngine(enforcer, rctx, core.ResourceTarget(image), RuleGetImage, config),
		image:  image,
	}
}

// CheckIsImageMutable is the legacy ownership comparison predating the
// declarative rules. It consults no rule enforcer.
func CheckIsImageMutable(rctx core.RequestContext, image core.Image) error {
	if rctx.IsAdmin {
		return nil
	}
	if image.Owner == "" {
		return core.NewErrorForbidden()
	}
	if rctx.Owner == "" {
		return core.NewErrorForbidden()
	}
	if image.Owner != rctx.Owner {
		return core.NewErrorForbidden()
	}
	return nil
}

// enforceMutable applies the two mutation strategies. With SecureRBAC
// the declarative rule alone decides. Otherwise a denial is still
// accepted when the legacy ownership check passes.
func (p *ImagePolicy) enforceMutable(ctx context.Context, rule string) error {
	err := p.Enforce(ctx, rule)
	if err == nil || p.config.SecureRBAC {
		return err
	}
	if !isDenial(err) {
		return err
	}
	if CheckIsImageMutable(p.rctx, p.image) == nil {
		return nil
	}
	return err
}

// enforceVisibility guards transitions into visibilities that widen
// exposure. Private and shared transitions are not rule-gated.
func (p *ImagePolicy) enforceVisibility(ctx context.Context, visibility string) error {
	switch visibility {
	case core.VisibilityPublic:
		return p.Enforce(ctx, RulePublicizeImage)
	case core.VisibilityCommunity:
		return p.Enforce(ctx, RuleCommunitizeImage)
	}
	return nil
}

func (p *ImagePolicy) GetImage(ctx context.Context) error {
	return p.Enforce(ctx, RuleGetImage)
}

func (p *ImagePolicy) GetImages(ctx context.Context) error {
	return p.Enforce(ctx, RuleGetImages)
}

func (p *ImagePolicy) AddImage(ctx context.Context) error {
	return p.Enforce(ctx, RuleAddImage)
}

func (p *ImagePolicy) ModifyImage(ctx context.Context) error {
	return p.enforceMutable(ctx, RuleModifyImage)
}

func (p *ImagePolicy) DeleteImage(ctx context.Context) error {
	return p.enforceMutable(ctx, RuleDeleteImage)
}

func (p *ImagePolicy) UploadImage(ctx context.Context) error {
	return p.enforceMutable(ctx, RuleUploadImage)
}

func (p *ImagePolicy) DownloadImage(ctx context.Context) error {
	return p.Enforce(ctx, RuleDownloadImage)
}

// UpdateProperty routes visibility updates to the visibility rules;
// every other property update is an ordinary modification.
func (p *ImagePolicy) UpdateProperty(ctx context.Context, name string, value string) error {
	if name == "visibility" {
		return p.enforceVisibility(ctx, value)
	}
	return p.enforceMutable(ctx, RuleModifyImage)
}

func (p *ImagePolicy) UpdateLocations(ctx context.Context) error {
	return p.enforceMutable(ctx, RuleSetImageLocation)
}

func (p *ImagePolicy) DeleteLocations(ctx context.Context) error {
	return p.enforceMutable(ctx, RuleDeleteImageLocation)
}
