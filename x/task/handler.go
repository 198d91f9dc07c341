package task

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cloudmeta/catalog/core"
	"github.com/cloudmeta/catalog/x/gateway"
)

// Handler is the interface for handling HTTP requests
type Handler interface {
	Get(c echo.Context) error
	Query(c echo.Context) error
	Post(c echo.Context) error
	Delete(c echo.Context) error
}

type handler struct {
	gateway *gateway.Gateway
}

// NewHandler creates a new handler
func NewHandler(gw *gateway.Gateway) Handler {
	return &handler{gateway: gw}
}

type taskInput struct {
	Type  string `json:"type"`
	Input string `json:"input"`
}

// Get returns a task by id
func (h handler) Get(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Task.Handler.Get")
	defer span.End()

	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": "id is required"})
	}

	rctx := gateway.RequestContextOf(c)
	repo := h.gateway.GetTaskRepo(rctx)

	task, err := repo.Get(ctx, id)
	if err != nil {
		return gateway.RenderError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": task})
}

// Query returns the tasks visible to the caller
func (h handler) Query(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Task.Handler.Query")
	defer span.End()

	rctx := gateway.RequestContextOf(c)
	repo := h.gateway.GetTaskRepo(rctx)

	tasks, err := repo.List(ctx)
	if err != nil {
		return gateway.RenderError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": tasks})
}

// Post accepts a task and runs it. Admin callers get an elevated image
// repository for publication.
func (h handler) Post(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Task.Handler.Post")
	defer span.End()

	var input taskInput
	err := c.Bind(&input)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": err.Error()})
	}
	if input.Type == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": "type is required"})
	}

	rctx := gateway.RequestContextOf(c)

	factory := h.gateway.GetTaskFactory(rctx)
	task, err := factory.New(ctx, rctx.Owner)
	if err != nil {
		return gateway.RenderError(c, err)
	}

	task.Type = input.Type
	if input.Input != "" {
		task.Input = input.Input
	}

	repo := h.gateway.GetTaskRepo(rctx)
	task, err = repo.Save(ctx, task)
	if err != nil {
		return gateway.RenderError(c, err)
	}

	var adminCtx *core.RequestContext
	if rctx.IsAdmin {
		adminCtx = &rctx
	}

	executorFactory := h.gateway.GetTaskExecutorFactory(rctx, adminCtx)
	exec, err := executorFactory.New(task.Type)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": err.Error()})
	}

	task, err = exec.Execute(ctx, task)
	if err != nil {
		return c.JSON(http.StatusAccepted, echo.Map{"status": "failed", "content": task})
	}

	return c.JSON(http.StatusCreated, echo.Map{"status": "ok", "content": task})
}

// Delete removes a task
func (h handler) Delete(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Task.Handler.Delete")
	defer span.End()

	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": "id is required"})
	}

	rctx := gateway.RequestContextOf(c)
	repo := h.gateway.GetTaskRepo(rctx)

	err := repo.Remove(ctx, id)
	if err != nil {
		return gateway.RenderError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
