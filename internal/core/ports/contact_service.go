package ports

import (
	"context"

	"github.com/cipco/cms-backend/internal/core/domain"
)

// SubmitContactInput is a public contact-form submission.
type SubmitContactInput struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Subject string
	Message string
}

// UpdateContactInput is a partial update made by an administrator.
type UpdateContactInput struct {
	Name    *string
	Email   *string
	Phone   *string
	Company *string
	Subject *string
	Message *string
	Status  *string
}

type ContactService interface {
	Submit(ctx context.Context, in SubmitContactInput) (*domain.Contact, error)
	List(ctx context.Context) ([]*domain.Contact, error)
	Get(ctx context.Context, id string) (*domain.Contact, error)
	Update(ctx context.Context, id string, in UpdateContactInput) (*domain.Contact, error)
	Delete(ctx context.Context, id string) error
}
