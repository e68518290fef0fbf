package ports

import (
	"context"

	"github.com/cipco/cms-backend/internal/core/domain"
)

// ListBlogsInput holds the public listing query.
type ListBlogsInput struct {
	Page   int
	Limit  int
	Search string
}

// ListBlogsResult is one page of published blogs.
type ListBlogsResult struct {
	Blogs       []*domain.Blog
	CurrentPage int
	TotalPages  int
	TotalBlogs  int64
}

// CreateBlogInput carries a new post. Image is optional.
type CreateBlogInput struct {
	Title       string
	Content     string
	Author      string
	Category    string
	Summary     string
	Tags        []string
	IsPublished bool
	Image       *domain.Image
}

// UpdateBlogInput is a partial update; nil fields keep their stored value.
type UpdateBlogInput struct {
	Title       *string
	Content     *string
	Author      *string
	Category    *string
	Summary     *string
	Tags        *[]string
	IsPublished *bool
	Image       *domain.Image
}

type BlogService interface {
	ListPublished(ctx context.Context, in ListBlogsInput) (*ListBlogsResult, error)
	// GetPublished returns a published blog and records one view of it.
	GetPublished(ctx context.Context, id string) (*domain.Blog, error)
	Categories() []string
	ListAll(ctx context.Context) ([]*domain.Blog, error)
	Create(ctx context.Context, in CreateBlogInput) (*domain.Blog, error)
	Update(ctx context.Context, id string, in UpdateBlogInput) (*domain.Blog, error)
	Delete(ctx context.Context, id string) error
}
