package ports

import (
	"context"

	"github.com/cipco/cms-backend/internal/core/domain"
)

// CreateUserInput carries a new administrator account. Role defaults to admin.
type CreateUserInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}

// UpdateUserInput is a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	Email    *string
	Password *string
	Name     *string
	Role     *string
	IsActive *bool
}

// UserService covers superadmin account management.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	// Update changes id on behalf of actorID; an actor cannot deactivate
	// itself or change its own role.
	Update(ctx context.Context, actorID, id string, in UpdateUserInput) (*domain.User, error)
	// Delete removes id on behalf of actorID; an actor cannot delete itself.
	Delete(ctx context.Context, actorID, id string) error
}
