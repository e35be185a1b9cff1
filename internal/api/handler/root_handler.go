package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const apiVersion = "1.0"

// RootHandler handles GET /, reporting the API version and endpoint list.
type RootHandler struct{}

func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

type rootResponse struct {
	APIVersion string   `json:"api_version"`
	Endpoints  []string `json:"endpoints"`
}

func (h *RootHandler) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, rootResponse{
		APIVersion: apiVersion,
		Endpoints:  []string{"/messages", "/tags", "/users", "/login"},
	})
}
