package ports

import (
	"context"

	"github.com/cipco/cms-backend/internal/core/domain"
)

// UserRepository is the credential store.
type UserRepository interface {
	// FindByEmail expects an already normalized email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Save inserts the user when ID is empty and replaces it otherwise.
	// A duplicate email yields domain.ErrConflict.
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
}
