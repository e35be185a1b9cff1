package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/postmessages/board-api/internal/core/ports"
)

// MessageHandler handles HTTP requests for message operations.
type MessageHandler struct {
	service ports.MessageService
}

func NewMessageHandler(service ports.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// List handles GET /messages?tags=&skip=&limit=.
// The tags parameter repeats; all listed tags must be present on a
// match. Absent or non-numeric skip/limit collapse to 0 and 20.
func (h *MessageHandler) List(c echo.Context) error {
	input := ports.ListMessagesInput{
		Tags:  c.QueryParams()["tags"],
		Skip:  parseIntDefault(c.QueryParam("skip"), 0),
		Limit: parseIntDefault(c.QueryParam("limit"), 20),
	}

	messages, err := h.service.List(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messages)
}

// Create handles POST /messages. The author is the verified caller
// identity from the bearer credential, never the request body.
func (h *MessageHandler) Create(c echo.Context) error {
	var req createMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	mail, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	message, err := h.service.Create(c.Request().Context(), req.Content, req.Tags, mail)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, createdResponse{ID: message.ID})
}

// Delete handles DELETE /messages/:id. The route is additionally gated
// by the moderator middleware; the service re-checks the role set.
func (h *MessageHandler) Delete(c echo.Context) error {
	_, roles, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), roles); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ackResponse{})
}

// ListTags handles GET /tags.
func (h *MessageHandler) ListTags(c echo.Context) error {
	tags, err := h.service.ListTags(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tags)
}

// parseIntDefault coerces a query parameter the way the API contract
// requires: absent, non-numeric or negative values collapse to the
// default rather than erroring.
func parseIntDefault(raw string, def int64) int64 {
	if raw == "" {
		return def
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return def
	}
	return n
}
