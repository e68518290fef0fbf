package ports

import (
	"context"

	"github.com/cipco/cms-backend/internal/core/domain"
)

type ContactRepository interface {
	Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error)
	FindByID(ctx context.Context, id string) (*domain.Contact, error)
	Update(ctx context.Context, c *domain.Contact) (*domain.Contact, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.Contact, error)
	Count(ctx context.Context) (int64, error)
}
