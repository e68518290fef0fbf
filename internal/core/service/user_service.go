package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cipco/cms-backend/internal/core/domain"
	"github.com/cipco/cms-backend/internal/core/ports"
)

const minPasswordLength = 6

// UserService manages administrator accounts on behalf of a superadmin.
type UserService struct {
	repo       ports.UserRepository
	bcryptCost int
	log        zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, bcryptCost: bcrypt.DefaultCost, log: log}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	email := domain.NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	role := in.Role
	if role == "" {
		role = domain.RoleAdmin
	}

	if email == "" || name == "" {
		return nil, fmt.Errorf("%w: email and name are required", domain.ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
	}
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: role must be admin or superadmin", domain.ErrInvalidInput)
	}

	if err := s.ensureEmailFree(ctx, email, ""); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Save(ctx, &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user created")
	return created, nil
}

// Update applies in to id on behalf of actorID. An actor cannot deactivate
// itself or change its own role.
func (s *UserService) Update(ctx context.Context, actorID, id string, in ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.ID == actorID {
		if in.IsActive != nil && !*in.IsActive {
			return nil, fmt.Errorf("%w: cannot deactivate your own account", domain.ErrInvalidInput)
		}
		if in.Role != nil && *in.Role != user.Role {
			return nil, fmt.Errorf("%w: cannot change your own role", domain.ErrInvalidInput)
		}
	}

	if in.Email != nil {
		email := domain.NormalizeEmail(*in.Email)
		if email == "" {
			return nil, fmt.Errorf("%w: email cannot be empty", domain.ErrInvalidInput)
		}
		if email != user.Email {
			if err := s.ensureEmailFree(ctx, email, user.ID); err != nil {
				return nil, err
			}
			user.Email = email
		}
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrInvalidInput)
		}
		user.Name = name
	}
	if in.Role != nil {
		if !domain.ValidRole(*in.Role) {
			return nil, fmt.Errorf("%w: role must be admin or superadmin", domain.ErrInvalidInput)
		}
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.Password != nil {
		if len(*in.Password) < minPasswordLength {
			return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	user.UpdatedAt = time.Now().UTC()
	return s.repo.Save(ctx, user)
}

// Delete removes id on behalf of actorID. The target is resolved through the
// store first so ids are compared in their canonical form.
func (s *UserService) Delete(ctx context.Context, actorID, id string) error {
	target, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if target.ID == actorID {
		return domain.ErrSelfDeletion
	}
	if err := s.repo.Delete(ctx, target.ID); err != nil {
		return err
	}
	s.log.Info().Str("actor_id", actorID).Str("user_id", target.ID).Msg("user deleted")
	return nil
}

// ensureEmailFree fails with ErrConflict when email belongs to a user other
// than exceptID.
func (s *UserService) ensureEmailFree(ctx context.Context, email, exceptID string) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != exceptID:
		return domain.ErrConflict
	}
	return nil
}
