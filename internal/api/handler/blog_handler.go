package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cipco/cms-backend/internal/core/domain"
	"github.com/cipco/cms-backend/internal/core/ports"
)

// BlogHandler serves the public blog pages and the admin blog editor.
type BlogHandler struct {
	service        ports.BlogService
	maxUploadBytes int64
}

func NewBlogHandler(service ports.BlogService, maxUploadBytes int64) *BlogHandler {
	return &BlogHandler{service: service, maxUploadBytes: maxUploadBytes}
}

type blogListResponse struct {
	Blogs       []*domain.Blog `json:"blogs"`
	CurrentPage int            `json:"currentPage"`
	TotalPages  int            `json:"totalPages"`
	TotalBlogs  int64          `json:"totalBlogs"`
}

// List handles GET /api/blogs.
//
// @Summary      List published blogs
// @Tags         blogs
// @Produce      json
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Page size (default 10, max 100)"
// @Param        search  query     string  false  "Case-insensitive match on title or content"
// @Success      200     {object}  blogListResponse
// @Failure      400     {object}  errorResponse
// @Router       /api/blogs [get]
func (h *BlogHandler) List(c echo.Context) error {
	var in ports.ListBlogsInput
	if err := echo.QueryParamsBinder(c).
		Int("page", &in.Page).
		Int("limit", &in.Limit).
		String("search", &in.Search).
		BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "page and limit must be integers")
	}

	res, err := h.service.ListPublished(c.Request().Context(), in)
	if err != nil {
		return err
	}

	blogs := res.Blogs
	if blogs == nil {
		blogs = []*domain.Blog{}
	}
	return c.JSON(http.StatusOK, blogListResponse{
		Blogs:       blogs,
		CurrentPage: res.CurrentPage,
		TotalPages:  res.TotalPages,
		TotalBlogs:  res.TotalBlogs,
	})
}

// Get handles GET /api/blogs/:id.
//
// @Summary      Get a published blog
// @Tags         blogs
// @Produce      json
// @Param        id   path      string  true  "Blog ID"
// @Success      200  {object}  domain.Blog
// @Failure      404  {object}  errorResponse
// @Router       /api/blogs/{id} [get]
func (h *BlogHandler) Get(c echo.Context) error {
	blog, err := h.service.GetPublished(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, blog)
}

// Categories handles GET /api/blogs/categories/list.
//
// @Summary      List blog categories
// @Tags         blogs
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/blogs/categories/list [get]
func (h *BlogHandler) Categories(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.Categories())
}

// ListAll handles GET /api/admin/blogs.
//
// @Summary      List all blogs
// @Tags         admin
// @Produce      json
// @Security     AuthToken
// @Success      200  {array}   domain.Blog
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/blogs [get]
func (h *BlogHandler) ListAll(c echo.Context) error {
	blogs, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	if blogs == nil {
		blogs = []*domain.Blog{}
	}
	return c.JSON(http.StatusOK, blogs)
}

// Create handles POST /api/admin/blogs.
//
// @Summary      Create a blog
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Security     AuthToken
// @Param        title        formData  string  true   "Title"
// @Param        content      formData  string  true   "Content"
// @Param        category     formData  string  true   "Category"
// @Param        author       formData  string  false  "Author (default Admin)"
// @Param        summary      formData  string  false  "Summary"
// @Param        tags         formData  string  false  "Comma separated tags"
// @Param        isPublished  formData  bool    false  "Publish immediately"
// @Param        image        formData  file    false  "Cover image"
// @Success      201          {object}  domain.Blog
// @Failure      400          {object}  errorResponse
// @Failure      413          {object}  errorResponse
// @Router       /api/admin/blogs [post]
func (h *BlogHandler) Create(c echo.Context) error {
	form, err := formValues(c)
	if err != nil {
		return err
	}
	published, err := formBool(form, "isPublished")
	if err != nil {
		return err
	}
	img, err := readImage(c, h.maxUploadBytes)
	if err != nil {
		return err
	}

	in := ports.CreateBlogInput{
		Title:    deref(formString(form, "title")),
		Content:  deref(formString(form, "content")),
		Author:   deref(formString(form, "author")),
		Category: deref(formString(form, "category")),
		Summary:  deref(formString(form, "summary")),
		Tags:     splitTags(deref(formString(form, "tags"))),
		Image:    img,
	}
	if published != nil {
		in.IsPublished = *published
	}

	blog, err := h.service.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, blog)
}

// Update handles PUT /api/admin/blogs/:id. Omitted fields keep their value.
//
// @Summary      Update a blog
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Security     AuthToken
// @Param        id     path      string  true   "Blog ID"
// @Param        image  formData  file    false  "Replacement cover image"
// @Success      200    {object}  domain.Blog
// @Failure      400    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /api/admin/blogs/{id} [put]
func (h *BlogHandler) Update(c echo.Context) error {
	form, err := formValues(c)
	if err != nil {
		return err
	}
	published, err := formBool(form, "isPublished")
	if err != nil {
		return err
	}
	img, err := readImage(c, h.maxUploadBytes)
	if err != nil {
		return err
	}

	blog, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateBlogInput{
		Title:       formString(form, "title"),
		Content:     formString(form, "content"),
		Author:      formString(form, "author"),
		Category:    formString(form, "category"),
		Summary:     formString(form, "summary"),
		Tags:        formTags(form, "tags"),
		IsPublished: published,
		Image:       img,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, blog)
}

// Delete handles DELETE /api/admin/blogs/:id.
//
// @Summary      Delete a blog
// @Tags         admin
// @Produce      json
// @Security     AuthToken
// @Param        id   path      string  true  "Blog ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/blogs/{id} [delete]
func (h *BlogHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "blog deleted"})
}
