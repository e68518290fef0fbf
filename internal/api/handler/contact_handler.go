package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cipco/cms-backend/internal/core/domain"
	"github.com/cipco/cms-backend/internal/core/ports"
)

type ContactHandler struct {
	service ports.ContactService
}

func NewContactHandler(service ports.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

type submitContactRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"max=50"`
	Company string `json:"company" validate:"max=200"`
	Subject string `json:"subject" validate:"required,max=300"`
	Message string `json:"message" validate:"required,max=5000"`
}

type updateContactRequest struct {
	Name    *string `json:"name" validate:"omitempty,max=200"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone" validate:"omitempty,max=50"`
	Company *string `json:"company" validate:"omitempty,max=200"`
	Subject *string `json:"subject" validate:"omitempty,max=300"`
	Message *string `json:"message" validate:"omitempty,max=5000"`
	Status  *string `json:"status" validate:"omitempty,oneof=new read replied"`
}

// Submit handles POST /api/contacts.
//
// @Summary      Submit a contact inquiry
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        body  body      submitContactRequest  true  "Inquiry"
// @Success      201   {object}  domain.Contact
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /api/contacts [post]
func (h *ContactHandler) Submit(c echo.Context) error {
	var req submitContactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	contact, err := h.service.Submit(c.Request().Context(), ports.SubmitContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, contact)
}

// List handles GET /api/admin/contacts.
//
// @Summary      List contact inquiries
// @Tags         admin
// @Produce      json
// @Security     AuthToken
// @Success      200  {array}   domain.Contact
// @Failure      401  {object}  errorResponse
// @Router       /api/admin/contacts [get]
func (h *ContactHandler) List(c echo.Context) error {
	contacts, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if contacts == nil {
		contacts = []*domain.Contact{}
	}
	return c.JSON(http.StatusOK, contacts)
}

// Get handles GET /api/admin/contacts/:id.
//
// @Summary      Get a contact inquiry
// @Tags         admin
// @Produce      json
// @Security     AuthToken
// @Param        id   path      string  true  "Contact ID"
// @Success      200  {object}  domain.Contact
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/contacts/{id} [get]
func (h *ContactHandler) Get(c echo.Context) error {
	contact, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contact)
}

// Update handles PUT /api/admin/contacts/:id.
//
// @Summary      Update a contact inquiry
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     AuthToken
// @Param        id    path      string                true  "Contact ID"
// @Param        body  body      updateContactRequest  true  "Fields to change"
// @Success      200   {object}  domain.Contact
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/admin/contacts/{id} [put]
func (h *ContactHandler) Update(c echo.Context) error {
	var req updateContactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	contact, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Subject: req.Subject,
		Message: req.Message,
		Status:  req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contact)
}

// Delete handles DELETE /api/admin/contacts/:id.
//
// @Summary      Delete a contact inquiry
// @Tags         admin
// @Produce      json
// @Security     AuthToken
// @Param        id   path      string  true  "Contact ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/contacts/{id} [delete]
func (h *ContactHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "contact inquiry deleted"})
}
