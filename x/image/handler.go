package image

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cloudmeta/catalog/x/gateway"
)

// Handler is the interface for handling HTTP requests
type Handler interface {
	Get(c echo.Context) error
	Query(c echo.Context) error
	Post(c echo.Context) error
	Put(c echo.Context) error
	Delete(c echo.Context) error
}

type handler struct {
	gateway *gateway.Gateway
}

// NewHandler creates a new handler
func NewHandler(gw *gateway.Gateway) Handler {
	return &handler{gateway: gw}
}

type imageInput struct {
	Name       string            `json:"name"`
	Visibility string            `json:"visibility"`
	Members    []string          `json:"members"`
	Properties map[string]string `json:"properties"`
	Locations  []string          `json:"locations"`
}

// Get returns an image by id
func (h handler) Get(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Image.Handler.Get")
	defer span.End()

	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": "id is required"})
	}

	rctx := gateway.RequestContextOf(c)
	repo := h.gateway.GetImageRepo(rctx)

	image, err := repo.Get(ctx, id)
	if err != nil {
		return gateway.RenderError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": image})
}

// Query returns the images visible to the caller
func (h handler) Query(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Image.Handler.Query")
	defer span.End()

	rctx := gateway.RequestContextOf(c)
	repo := h.gateway.GetImageRepo(rctx)

	images, err := repo.List(ctx)
	if err != nil {
		return gateway.RenderError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": images})
}

// Post creates a new image owned by the caller
func (h handler) Post(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Image.Handler.Post")
	defer span.End()

	var input imageInput
	err := c.Bind(&input)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": err.Error()})
	}

	rctx := gateway.RequestContextOf(c)
	factory := h.gateway.GetImageFactory(rctx)

	image, err := factory.New(ctx, rctx.Owner)
	if err != nil {
		return gateway.RenderError(c, err)
	}

	image.Name = input.Name
	if input.Visibility != "" {
		image.Visibility = input.Visibility
	}
	if input.Members != nil {
		image.Members = input.Members
	}
	if input.Properties != nil {
		image.Properties = input.Properties
	}
	if input.Locations != nil {
		image.Locations = input.Locations
	}

	repo := h.gateway.GetImageRepo(rctx)
	created, err := repo.Save(ctx, image)
	if err != nil {
		return gateway.RenderError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"status": "ok", "content": created})
}

// Put updates an existing image
func (h handler) Put(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Image.Handler.Put")
	defer span.End()

	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": "id is required"})
	}

	var input imageInput
	err := c.Bind(&input)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": err.Error()})
	}

	rctx := gateway.RequestContextOf(c)
	repo := h.gateway.GetImageRepo(rctx)

	image, err := repo.Get(ctx, id)
	if err != nil {
		return gateway.RenderError(c, err)
	}

	if input.Name != "" {
		image.Name = input.Name
	}
	if input.Visibility != "" {
		image.Visibility = input.Visibility
	}
	if input.Members != nil {
		image.Members = input.Members
	}
	if input.Properties != nil {
		image.Properties = input.Properties
	}
	if input.Locations != nil {
		image.Locations = input.Locations
	}

	updated, err := repo.Save(ctx, image)
	if err != nil {
		return gateway.RenderError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": updated})
}

// Delete removes an image
func (h handler) Delete(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Image.Handler.Delete")
	defer span.End()

	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": "id is required"})
	}

	rctx := gateway.RequestContextOf(c)
	repo := h.gateway.GetImageRepo(rctx)

	err := repo.Remove(ctx, id)
	if err != nil {
		return gateway.RenderError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
