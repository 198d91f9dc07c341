package image

import (
	"context"

	"github.com/rs/xid"

	"github.com/cloudmeta/catalog/core"
)

type factory struct {
}

// NewFactory creates the image factory. New images start queued and
// shared, owned by the given tenant.
func NewFactory() core.Factory[core.Image] {
	return &factory{}
}

func (f *factory) New(ctx context.Context, owner string) (core.Image, error) {
	_, span := tracer.Start(ctx, "Image.Factory.New")
	defer span.End()

	return core.Image{
		ID:         xid.New().String(),
		Owner:      owner,
		Visibility: core.VisibilityShared,
		Status:     core.StatusQueued,
		Members:    []string{},
		Properties: map[string]string{},
		Locations:  []string{},
	}, nil
}
