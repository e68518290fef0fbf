package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cipco/cms-backend/internal/core/domain"
	"github.com/cipco/cms-backend/internal/core/ports"
)

type TeamHandler struct {
	service        ports.TeamService
	maxUploadBytes int64
}

func NewTeamHandler(service ports.TeamService, maxUploadBytes int64) *TeamHandler {
	return &TeamHandler{service: service, maxUploadBytes: maxUploadBytes}
}

// List handles GET /api/teams and GET /api/admin/teams.
//
// @Summary      List team members
// @Tags         teams
// @Produce      json
// @Success      200  {array}  domain.TeamMember
// @Router       /api/teams [get]
func (h *TeamHandler) List(c echo.Context) error {
	members, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if members == nil {
		members = []*domain.TeamMember{}
	}
	return c.JSON(http.StatusOK, members)
}

// Create handles POST /api/admin/teams.
//
// @Summary      Add a team member
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Security     AuthToken
// @Param        name         formData  string  true   "Name"
// @Param        designation  formData  string  true   "Designation"
// @Param        image        formData  file    false  "Portrait"
// @Success      201          {object}  domain.TeamMember
// @Failure      400          {object}  errorResponse
// @Router       /api/admin/teams [post]
func (h *TeamHandler) Create(c echo.Context) error {
	form, err := formValues(c)
	if err != nil {
		return err
	}
	img, err := readImage(c, h.maxUploadBytes)
	if err != nil {
		return err
	}

	member, err := h.service.Create(c.Request().Context(), ports.CreateTeamMemberInput{
		Name:        deref(formString(form, "name")),
		Designation: deref(formString(form, "designation")),
		Image:       img,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, member)
}

// Update handles PUT /api/admin/teams/:id.
//
// @Summary      Update a team member
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Security     AuthToken
// @Param        id     path      string  true   "Team member ID"
// @Param        image  formData  file    false  "Replacement portrait"
// @Success      200    {object}  domain.TeamMember
// @Failure      404    {object}  errorResponse
// @Router       /api/admin/teams/{id} [put]
func (h *TeamHandler) Update(c echo.Context) error {
	form, err := formValues(c)
	if err != nil {
		return err
	}
	img, err := readImage(c, h.maxUploadBytes)
	if err != nil {
		return err
	}

	member, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateTeamMemberInput{
		Name:        formString(form, "name"),
		Designation: formString(form, "designation"),
		Image:       img,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, member)
}

// Delete handles DELETE /api/admin/teams/:id.
//
// @Summary      Remove a team member
// @Tags         admin
// @Produce      json
// @Security     AuthToken
// @Param        id   path      string  true  "Team member ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/teams/{id} [delete]
func (h *TeamHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "team member deleted"})
}
