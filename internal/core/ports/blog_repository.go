package ports

import (
	"context"

	"github.com/cipco/cms-backend/internal/core/domain"
)

// BlogFilter narrows a blog listing. Zero Limit means no paging.
type BlogFilter struct {
	PublishedOnly bool
	Search        string // literal, case-insensitive match on title or content
	Skip          int64
	Limit         int64
}

type BlogRepository interface {
	Create(ctx context.Context, blog *domain.Blog) (*domain.Blog, error)
	FindByID(ctx context.Context, id string) (*domain.Blog, error)
	Update(ctx context.Context, blog *domain.Blog) (*domain.Blog, error)
	Delete(ctx context.Context, id string) error
	// List returns the newest-first page matching filter and the total match count.
	List(ctx context.Context, filter BlogFilter) ([]*domain.Blog, int64, error)
	Count(ctx context.Context) (int64, error)
	IncrementViews(ctx context.Context, id string, delta int64) error
}
