package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cipco/cms-backend/internal/core/ports"
)

type StatsHandler struct {
	service ports.StatsService
}

func NewStatsHandler(service ports.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

type statsResponse struct {
	Blogs    int64 `json:"blogs"`
	Contacts int64 `json:"contacts"`
	Users    int64 `json:"users"`
}

// Dashboard handles GET /api/admin/stats.
//
// @Summary      Dashboard counts
// @Tags         admin
// @Produce      json
// @Security     AuthToken
// @Success      200  {object}  statsResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/admin/stats [get]
func (h *StatsHandler) Dashboard(c echo.Context) error {
	s, err := h.service.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statsResponse{Blogs: s.Blogs, Contacts: s.Contacts, Users: s.Users})
}
