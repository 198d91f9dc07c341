package metadef

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cloudmeta/catalog/core"
	"github.com/cloudmeta/catalog/x/gateway"
)

// Handler is the interface for handling HTTP requests
type Handler interface {
	GetNamespace(c echo.Context) error
	QueryNamespaces(c echo.Context) error
	PostNamespace(c echo.Context) error
	PutNamespace(c echo.Context) error
	DeleteNamespace(c echo.Context) error

	GetObject(c echo.Context) error
	QueryObjects(c echo.Context) error
	PostObject(c echo.Context) error
	DeleteObject(c echo.Context) error

	QueryProperties(c echo.Context) error
	PostProperty(c echo.Context) error
	DeleteProperty(c echo.Context) error

	QueryTags(c echo.Context) error
	PostTag(c echo.Context) error
	DeleteTag(c echo.Context) error

	QueryResourceTypes(c echo.Context) error
	PostResourceType(c echo.Context) error
}

type handler struct {
	gateway *gateway.Gateway
}

// NewHandler creates a new handler
func NewHandler(gw *gateway.Gateway) Handler {
	return &handler{gateway: gw}
}

func getOne[T any](c echo.Context, spanName string, repo core.Repository[T]) error {
	ctx, span := tracer.Start(c.Request().Context(), spanName)
	defer span.End()

	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": "id is required"})
	}

	resource, err := repo.Get(ctx, id)
	if err != nil {
		return gateway.RenderError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": resource})
}

func queryAll[T any](c echo.Context, spanName string, repo core.Repository[T]) error {
	ctx, span := tracer.Start(c.Request().Context(), spanName)
	defer span.End()

	resources, err := repo.List(ctx)
	if err != nil {
		return gateway.RenderError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": resources})
}

func removeOne[T any](c echo.Context, spanName string, repo core.Repository[T]) error {
	ctx, span := tracer.Start(c.Request().Context(), spanName)
	defer span.End()

	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": "id is required"})
	}

	err := repo.Remove(ctx, id)
	if err != nil {
		return gateway.RenderError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func createOne[T any](c echo.Context, spanName string, factory core.Factory[T], repo core.Repository[T], apply func(*T) error) error {
	ctx, span := tracer.Start(c.Request().Context(), spanName)
	defer span.End()

	rctx := gateway.RequestContextOf(c)

	resource, err := factory.New(ctx, rctx.Owner)
	if err != nil {
		return gateway.RenderError(c, err)
	}

	err = apply(&resource)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": err.Error()})
	}

	created, err := repo.Save(ctx, resource)
	if err != nil {
		return gateway.RenderError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"status": "ok", "content": created})
}

type namespaceInput struct {
	Namespace   string `json:"namespace"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Visibility  string `json:"visibility"`
	Protected   bool   `json:"protected"`
}

func (h handler) GetNamespace(c echo.Context) error {
	rctx := gateway.RequestContextOf(c)
	return getOne(c, "Metadef.Handler.GetNamespace", h.gateway.GetMetadefNamespaceRepo(rctx))
}

func (h handler) QueryNamespaces(c echo.Context) error {
	rctx := gateway.RequestContextOf(c)
	return queryAll(c, "Metadef.Handler.QueryNamespaces", h.gateway.GetMetadefNamespaceRepo(rctx))
}

func (h handler) PostNamespace(c echo.Context) error {
	var input namespaceInput
	err := c.Bind(&input)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": err.Error()})
	}

	rctx := gateway.RequestContextOf(c)
	return createOne(c, "Metadef.Handler.PostNamespace",
		h.gateway.GetMetadefNamespaceFactory(rctx),
		h.gateway.GetMetadefNamespaceRepo(rctx),
		func(namespace *core.MetadefNamespace) error {
			namespace.Namespace = input.Namespace
			namespace.DisplayName = input.DisplayName
			namespace.Description = input.Description
			if input.Visibility != "" {
				namespace.Visibility = input.Visibility
			}
			namespace.Protected = input.Protected
			return nil
		})
}

func (h handler) PutNamespace(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Metadef.Handler.PutNamespace")
	defer span.End()

	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": "id is required"})
	}

	var input namespaceInput
	err := c.Bind(&input)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": err.Error()})
	}

	rctx := gateway.RequestContextOf(c)
	repo := h.gateway.GetMetadefNamespaceRepo(rctx)

	namespace, err := repo.Get(ctx, id)
	if err != nil {
		return gateway.RenderError(c, err)
	}

	if input.DisplayName != "" {
		namespace.DisplayName = input.DisplayName
	}
	if input.Description != "" {
		namespace.Description = input.Description
	}
	if input.Visibility != "" {
		namespace.Visibility = input.Visibility
	}
	namespace.Protected = input.Protected

	updated, err := repo.Save(ctx, namespace)
	if err != nil {
		return gateway.RenderError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": updated})
}

func (h handler) DeleteNamespace(c echo.Context) error {
	rctx := gateway.RequestContextOf(c)
	return removeOne(c, "Metadef.Handler.DeleteNamespace", h.gateway.GetMetadefNamespaceRepo(rctx))
}

type objectInput struct {
	NamespaceID string `json:"namespaceId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Schema      string `json:"schema"`
}

func (h handler) GetObject(c echo.Context) error {
	rctx := gateway.RequestContextOf(c)
	return getOne(c, "Metadef.Handler.GetObject", h.gateway.GetMetadefObjectRepo(rctx))
}

func (h handler) QueryObjects(c echo.Context) error {
	rctx := gateway.RequestContextOf(c)
	return queryAll(c, "Metadef.Handler.QueryObjects", h.gateway.GetMetadefObjectRepo(rctx))
}

func (h handler) PostObject(c echo.Context) error {
	var input objectInput
	err := c.Bind(&input)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": err.Error()})
	}

	rctx := gateway.RequestContextOf(c)
	return createOne(c, "Metadef.Handler.PostObject",
		h.gateway.GetMetadefObjectFactory(rctx),
		h.gateway.GetMetadefObjectRepo(rctx),
		func(object *core.MetadefObject) error {
			object.NamespaceID = input.NamespaceID
			object.Name = input.Name
			object.Description = input.Description
			object.Schema = input.Schema
			return nil
		})
}

func (h handler) DeleteObject(c echo.Context) error {
	rctx := gateway.RequestContextOf(c)
	return removeOne(c, "Metadef.Handler.DeleteObject", h.gateway.GetMetadefObjectRepo(rctx))
}

type propertyInput struct {
	NamespaceID string `json:"namespaceId"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Schema      string `json:"schema"`
}

func (h handler) QueryProperties(c echo.Context) error {
	rctx := gateway.RequestContextOf(c)
	return queryAll(c, "Metadef.Handler.QueryProperties", h.gateway.GetMetadefPropertyRepo(rctx))
}

func (h handler) PostProperty(c echo.Context) error {
	var input propertyInput
	err := c.Bind(&input)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": err.Error()})
	}

	rctx := gateway.RequestContextOf(c)
	return createOne(c, "Metadef.Handler.PostProperty",
		h.gateway.GetMetadefPropertyFactory(rctx),
		h.gateway.GetMetadefPropertyRepo(rctx),
		func(property *core.MetadefProperty) error {
			property.NamespaceID = input.NamespaceID
			property.Name = input.Name
			property.Type = input.Type
			property.Schema = input.Schema
			return nil
		})
}

func (h handler) DeleteProperty(c echo.Context) error {
	rctx := gateway.RequestContextOf(c)
	return removeOne(c, "Metadef.Handler.DeleteProperty", h.gateway.GetMetadefPropertyRepo(rctx))
}

type tagInput struct {
	NamespaceID string `json:"namespaceId"`
	Name        string `json:"name"`
}

func (h handler) QueryTags(c echo.Context) error {
	rctx := gateway.RequestContextOf(c)
	return queryAll(c, "Metadef.Handler.QueryTags", h.gateway.GetMetadefTagRepo(rctx))
}

func (h handler) PostTag(c echo.Context) error {
	var input tagInput
	err := c.Bind(&input)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": err.Error()})
	}

	rctx := gateway.RequestContextOf(c)
	return createOne(c, "Metadef.Handler.PostTag",
		h.gateway.GetMetadefTagFactory(rctx),
		h.gateway.GetMetadefTagRepo(rctx),
		func(tag *core.MetadefTag) error {
			tag.NamespaceID = input.NamespaceID
			tag.Name = input.Name
			return nil
		})
}

func (h handler) DeleteTag(c echo.Context) error {
	rctx := gateway.RequestContextOf(c)
	return removeOne(c, "Metadef.Handler.DeleteTag", h.gateway.GetMetadefTagRepo(rctx))
}

type resourceTypeInput struct {
	NamespaceID string `json:"namespaceId"`
	Name        string `json:"name"`
	Protected   bool   `json:"protected"`
}

func (h handler) QueryResourceTypes(c echo.Context) error {
	rctx := gateway.RequestContextOf(c)
	return queryAll(c, "Metadef.Handler.QueryResourceTypes", h.gateway.GetMetadefResourceTypeRepo(rctx))
}

func (h handler) PostResourceType(c echo.Context) error {
	var input resourceTypeInput
	err := c.Bind(&input)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": err.Error()})
	}

	rctx := gateway.RequestContextOf(c)
	return createOne(c, "Metadef.Handler.PostResourceType",
		h.gateway.GetMetadefResourceTypeFactory(rctx),
		h.gateway.GetMetadefResourceTypeRepo(rctx),
		func(resourceType *core.MetadefResourceType) error {
			resourceType.NamespaceID = input.NamespaceID
			resourceType.Name = input.Name
			resourceType.Protected = input.Protected
			return nil
		})
}
