package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/scholarfolio/portfolio-api/internal/api/metrics"
	"github.com/scholarfolio/portfolio-api/internal/core/domain"
	"github.com/scholarfolio/portfolio-api/internal/core/ports"
)

// ContactQueue accepts messages for asynchronous delivery.
type ContactQueue interface {
	Enqueue(msg ports.ContactMessage) error
}

type ContactHandler struct {
	queue ContactQueue
}

func NewContactHandler(q ContactQueue) *ContactHandler {
	return &ContactHandler{queue: q}
}

// Submit queues a contact-form message for the portfolio owner.
//
// @Summary      Send a contact message
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body      contactRequest  true  "Contact form"
// @Success      202   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /api/contact [post]
func (h *ContactHandler) Submit(c echo.Context) error {
	var req contactRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" || req.Email == "" || req.Message == "" {
		metrics.ContactMessagesTotal.WithLabelValues("rejected").Inc()
		return domain.Invalid("all fields are required")
	}
	if err := c.Validate(&req); err != nil {
		metrics.ContactMessagesTotal.WithLabelValues("rejected").Inc()
		return err
	}

	err := h.queue.Enqueue(ports.ContactMessage{Name: req.Name, Email: req.Email, Message: req.Message})
	if err != nil {
		if errors.Is(err, ports.ErrQueueFull) {
			metrics.ContactMessagesTotal.WithLabelValues("dropped").Inc()
			return echo.NewHTTPError(http.StatusServiceUnavailable, "too many messages, try again later")
		}
		return err
	}

	metrics.ContactMessagesTotal.WithLabelValues("queued").Inc()
	return c.JSON(http.StatusAccepted, messageResponse{Message: "message received"})
}
