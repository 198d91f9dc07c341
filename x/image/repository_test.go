package image

import (
	"context"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cloudmeta/catalog/core"
	"github.com/cloudmeta/catalog/internal/testutil"
)

func TestRepository(t *testing.T) {
	log.Println("Test Start")

	ctx := context.Background()

	db, cleanupDB := testutil.CreateDB()
	defer cleanupDB()

	repo := NewRepository(db)
	factory := NewFactory()

	// create
	image, err := factory.New(ctx, "tenant1")
	assert.NoError(t, err)
	assert.NotEmpty(t, image.ID)
	assert.Equal(t, core.VisibilityShared, image.Visibility)
	assert.Equal(t, core.StatusQueued, image.Status)

	image.Name = "cirros"
	image.Members = []string{"tenant2"}
	image.Properties = map[string]string{"os_distro": "linux"}

	created, err := repo.Save(ctx, image)
	assert.NoError(t, err)

	// get
	got, err := repo.Get(ctx, created.ID)
	if assert.NoError(t, err) {
		assert.Equal(t, "cirros", got.Name)
		assert.Equal(t, "tenant1", got.Owner)
		assert.Equal(t, []string{"tenant2"}, got.Members)
		assert.Equal(t, "linux", got.Properties["os_distro"])
	}

	// update
	got.Name = "cirros-0.6"
	updated, err := repo.Save(ctx, got)
	assert.NoError(t, err)
	assert.Equal(t, "cirros-0.6", updated.Name)

	// list
	images, err := repo.List(ctx)
	if assert.NoError(t, err) {
		assert.Len(t, images, 1)
	}

	// remove
	err = repo.Remove(ctx, created.ID)
	assert.NoError(t, err)

	_, err = repo.Get(ctx, created.ID)
	var notFound core.ErrorNotFound
	assert.True(t, errors.As(err, &notFound))

	err = repo.Remove(ctx, created.ID)
	assert.True(t, errors.As(err, &notFound))
}

func TestSaveRequiresID(t *testing.T) {
	db, cleanupDB := testutil.CreateDB()
	defer cleanupDB()

	repo := NewRepository(db)
	_, err := repo.Save(context.Background(), core.Image{})
	assert.Error(t, err)
}
