package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/cipco/cms-backend/internal/core/domain"
	"github.com/cipco/cms-backend/internal/core/ports"
)

type stubBlogService struct {
	ports.BlogService
	listFn   func(ctx context.Context, in ports.ListBlogsInput) (*ports.ListBlogsResult, error)
	createFn func(ctx context.Context, in ports.CreateBlogInput) (*domain.Blog, error)
	updateFn func(ctx context.Context, id string, in ports.UpdateBlogInput) (*domain.Blog, error)
}

func (s *stubBlogService) ListPublished(ctx context.Context, in ports.ListBlogsInput) (*ports.ListBlogsResult, error) {
	return s.listFn(ctx, in)
}

func (s *stubBlogService) Create(ctx context.Context, in ports.CreateBlogInput) (*domain.Blog, error) {
	return s.createFn(ctx, in)
}

func (s *stubBlogService) Update(ctx context.Context, id string, in ports.UpdateBlogInput) (*domain.Blog, error) {
	return s.updateFn(ctx, id, in)
}

func TestBlogHandler_List(t *testing.T) {
	e := newEcho()
	stub := &stubBlogService{
		listFn: func(ctx context.Context, in ports.ListBlogsInput) (*ports.ListBlogsResult, error) {
			if in.Page != 2 || in.Limit != 5 || in.Search != "water" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.ListBlogsResult{CurrentPage: 2, TotalPages: 3, TotalBlogs: 11}, nil
		},
	}
	handler := NewBlogHandler(stub, 1<<20)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/blogs?page=2&limit=5&search=water", nil), rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["currentPage"] != float64(2) || resp["totalPages"] != float64(3) || resp["totalBlogs"] != float64(11) {
		t.Fatalf("unexpected paging: %+v", resp)
	}
	if blogs, ok := resp["blogs"].([]any); !ok || len(blogs) != 0 {
		t.Fatalf("expected empty blogs array, got %v", resp["blogs"])
	}
}

func TestBlogHandler_List_BadPage(t *testing.T) {
	handler := NewBlogHandler(&stubBlogService{}, 1<<20)
	c := newEcho().NewContext(httptest.NewRequest(http.MethodGet, "/api/blogs?page=abc", nil), httptest.NewRecorder())

	var he *echo.HTTPError
	if err := handler.List(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestBlogHandler_Create_Multipart(t *testing.T) {
	e := newEcho()
	stub := &stubBlogService{
		createFn: func(ctx context.Context, in ports.CreateBlogInput) (*domain.Blog, error) {
			if in.Title != "Clean water" || in.Category != "Research" || !in.IsPublished {
				t.Fatalf("unexpected input: %+v", in)
			}
			if len(in.Tags) != 2 || in.Tags[0] != "water" || in.Tags[1] != "health" {
				t.Fatalf("unexpected tags: %v", in.Tags)
			}
			if in.Image == nil || string(in.Image.Data) != "img" || in.Image.Filename != "cover.png" {
				t.Fatalf("image not forwarded: %+v", in.Image)
			}
			return &domain.Blog{ID: "b1", Title: in.Title}, nil
		},
	}
	handler := NewBlogHandler(stub, 1<<20)

	req := multipartRequest(t, http.MethodPost, "/api/admin/blogs", map[string]string{
		"title":       "Clean water",
		"content":     "Body",
		"category":    "Research",
		"tags":        "water, health,",
		"isPublished": "true",
	}, []byte("img"))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestBlogHandler_Create_ImageTooLarge(t *testing.T) {
	stub := &stubBlogService{
		createFn: func(ctx context.Context, in ports.CreateBlogInput) (*domain.Blog, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewBlogHandler(stub, 4)

	req := multipartRequest(t, http.MethodPost, "/api/admin/blogs", map[string]string{"title": "t"}, []byte("too large"))
	c := newEcho().NewContext(req, httptest.NewRecorder())

	var he *echo.HTTPError
	if err := handler.Create(c); !errors.As(err, &he) || he.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %v", err)
	}
}

func TestBlogHandler_Update_OnlySentFields(t *testing.T) {
	stub := &stubBlogService{
		updateFn: func(ctx context.Context, id string, in ports.UpdateBlogInput) (*domain.Blog, error) {
			if id != "b1" {
				t.Fatalf("unexpected id %q", id)
			}
			if in.Title == nil || *in.Title != "New title" {
				t.Fatalf("title not forwarded: %v", in.Title)
			}
			if in.Content != nil || in.Tags != nil || in.Image != nil || in.IsPublished != nil {
				t.Fatalf("unsent fields must stay nil: %+v", in)
			}
			return &domain.Blog{ID: id, Title: *in.Title}, nil
		},
	}
	handler := NewBlogHandler(stub, 1<<20)

	req := multipartRequest(t, http.MethodPut, "/api/admin/blogs/b1", map[string]string{"title": "New title"}, nil)
	rec := httptest.NewRecorder()
	c := newEcho().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("b1")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSplitTags(t *testing.T) {
	got := splitTags(" a, b ,,c ")
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("unexpected tags: %v", got)
	}
	if got := splitTags(""); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}
