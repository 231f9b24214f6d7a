package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/scholarfolio/portfolio-api/internal/api/metrics"
	"github.com/scholarfolio/portfolio-api/internal/core/domain"
	"github.com/scholarfolio/portfolio-api/internal/core/ports"
)

type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Get returns the singleton profile.
//
// @Summary      Get the profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  domain.Profile
// @Failure      404  {object}  errorResponse
// @Router       /api/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	profile, err := h.service.GetProfile(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Upsert creates the profile on first write and merges into it afterwards.
// Omitted fields, including keys of contact and socials, keep their values.
//
// @Summary      Create or update the profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.ProfilePatch  true  "Profile fields to set"
// @Success      200   {object}  domain.Profile  "updated"
// @Success      201   {object}  domain.Profile  "created"
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/profile [put]
func (h *ProfileHandler) Upsert(c echo.Context) error {
	var patch domain.ProfilePatch
	if err := bindJSON(c, &patch); err != nil {
		return err
	}

	profile, created, err := h.service.UpsertProfile(c.Request().Context(), patch)
	if err != nil {
		return err
	}

	if created {
		metrics.ProfileUpsertsTotal.WithLabelValues("created").Inc()
		return c.JSON(http.StatusCreated, profile)
	}
	metrics.ProfileUpsertsTotal.WithLabelValues("updated").Inc()
	return c.JSON(http.StatusOK, profile)
}
