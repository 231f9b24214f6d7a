package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/scholarfolio/portfolio-api/internal/api/metrics"
	"github.com/scholarfolio/portfolio-api/internal/core/domain"
	"github.com/scholarfolio/portfolio-api/internal/core/ports"
)

// ResourceHandler serves the uniform CRUD routes of one collection. Swagger
// annotations for the concrete collections live in docs.
type ResourceHandler[T domain.Resource, P domain.Patch[T]] struct {
	kind    string
	service ports.ResourceService[T, P]
}

func NewResourceHandler[T domain.Resource, P domain.Patch[T]](kind string, service ports.ResourceService[T, P]) *ResourceHandler[T, P] {
	return &ResourceHandler[T, P]{kind: kind, service: service}
}

// List returns the published items.
func (h *ResourceHandler[T, P]) List(c echo.Context) error {
	return h.list(c, false)
}

// ListAll returns every item including drafts. Admin only.
func (h *ResourceHandler[T, P]) ListAll(c echo.Context) error {
	return h.list(c, true)
}

func (h *ResourceHandler[T, P]) list(c echo.Context, includeDrafts bool) error {
	items, err := h.service.List(c.Request().Context(), includeDrafts)
	if err != nil {
		return err
	}
	if items == nil {
		items = []T{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ResourceHandler[T, P]) Get(c echo.Context) error {
	item, err := h.service.Get(c.Request().Context(), c.Param("id"), false)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

func (h *ResourceHandler[T, P]) Create(c echo.Context) error {
	var fields P
	if err := bindJSON(c, &fields); err != nil {
		return err
	}

	item, err := h.service.Create(c.Request().Context(), fields)
	if err != nil {
		return err
	}

	metrics.ResourceMutationsTotal.WithLabelValues(h.kind, "create").Inc()
	return c.JSON(http.StatusCreated, item)
}

func (h *ResourceHandler[T, P]) Update(c echo.Context) error {
	var fields P
	if err := bindJSON(c, &fields); err != nil {
		return err
	}

	item, err := h.service.Update(c.Request().Context(), c.Param("id"), fields)
	if err != nil {
		return err
	}

	metrics.ResourceMutationsTotal.WithLabelValues(h.kind, "update").Inc()
	return c.JSON(http.StatusOK, item)
}

func (h *ResourceHandler[T, P]) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.ResourceMutationsTotal.WithLabelValues(h.kind, "delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: h.kind + " removed"})
}

// Register mounts the collection under g. Reads are public; writes and the
// draft-inclusive listing go through protect.
func (h *ResourceHandler[T, P]) Register(g *echo.Group, protect ...echo.MiddlewareFunc) {
	g.GET("", h.List)
	g.GET("/admin", h.ListAll, protect...)
	g.GET("/:id", h.Get)
	g.POST("", h.Create, protect...)
	g.PUT("/:id", h.Update, protect...)
	g.DELETE("/:id", h.Delete, protect...)
}
