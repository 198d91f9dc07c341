package gateway

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cloudmeta/catalog/core"
)

// RequestContextOf builds the caller context from the headers set by
// the fronting auth proxy. The service itself performs no
// authentication.
func RequestContextOf(c echo.Context) core.RequestContext {
	header := c.Request().Header

	var roles []string
	if raw := header.Get(core.RolesHeader); raw != "" {
		for _, role := range strings.Split(raw, ",") {
			role = strings.TrimSpace(role)
			if role != "" {
				roles = append(roles, role)
			}
		}
	}

	return core.RequestContext{
		Requester: header.Get(core.RequesterHeader),
		Owner:     header.Get(core.OwnerHeader),
		IsAdmin:   header.Get(core.AdminHeader) == "true",
		Roles:     roles,
	}
}

// RenderError maps the core error taxonomy to HTTP responses. Unknown
// errors bubble up to echo's error handler.
func RenderError(c echo.Context, err error) error {
	var notFound core.ErrorNotFound
	if errors.As(err, &notFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Not Found"})
	}

	var forbidden core.ErrorForbidden
	if errors.As(err, &forbidden) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Forbidden"})
	}

	var exists core.ErrorAlreadyExists
	if errors.As(err, &exists) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "Already Exists"})
	}

	return err
}
