package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cipco/cms-backend/internal/core/domain"
	"github.com/cipco/cms-backend/internal/core/ports"
)

func newTestUserService() (*UserService, *stubUserRepo) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())
	svc.bcryptCost = bcrypt.MinCost
	return svc, repo
}

func strPtr(s string) *string { return &s }

func TestUserService_Create(t *testing.T) {
	svc, _ := newTestUserService()

	u, err := svc.Create(context.Background(), ports.CreateUserInput{
		Email: " New@Cipco.IO ", Password: "secret1", Name: " New ",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if u.Email != "new@cipco.io" || u.Name != "New" {
		t.Fatalf("input not normalized: %+v", u)
	}
	if u.Role != domain.RoleAdmin || !u.IsActive {
		t.Fatalf("expected active admin by default: %+v", u)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")) != nil {
		t.Fatalf("password not hashed correctly")
	}
}

func TestUserService_Create_ConflictIsCaseInsensitive(t *testing.T) {
	svc, repo := newTestUserService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, ports.CreateUserInput{Email: "ana@cipco.io", Password: "secret1", Name: "Ana"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	saves := repo.saves

	_, err := svc.Create(ctx, ports.CreateUserInput{Email: "ANA@cipco.io", Password: "secret2", Name: "Dup"})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if repo.saves != saves {
		t.Fatalf("conflicting user must not be saved")
	}
}

func TestUserService_Create_Invalid(t *testing.T) {
	svc, _ := newTestUserService()

	tests := map[string]ports.CreateUserInput{
		"no email":       {Password: "secret1", Name: "A"},
		"no name":        {Email: "a@b.io", Password: "secret1"},
		"short password": {Email: "a@b.io", Password: "123", Name: "A"},
		"unknown role":   {Email: "a@b.io", Password: "secret1", Name: "A", Role: "editor"},
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestUserService_Update(t *testing.T) {
	svc, _ := newTestUserService()
	ctx := context.Background()

	ana, _ := svc.Create(ctx, ports.CreateUserInput{Email: "ana@cipco.io", Password: "secret1", Name: "Ana"})
	_, _ = svc.Create(ctx, ports.CreateUserInput{Email: "bo@cipco.io", Password: "secret1", Name: "Bo"})

	if _, err := svc.Update(ctx, "root", ana.ID, ports.UpdateUserInput{Email: strPtr("BO@cipco.io")}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict renaming onto an existing email, got %v", err)
	}

	// Re-saving the own email with different case is not a conflict.
	if _, err := svc.Update(ctx, "root", ana.ID, ports.UpdateUserInput{Email: strPtr("ANA@cipco.io")}); err != nil {
		t.Fatalf("own email: %v", err)
	}

	inactive := false
	updated, err := svc.Update(ctx, "root", ana.ID, ports.UpdateUserInput{
		Name:     strPtr("Ana B"),
		Role:     strPtr(domain.RoleSuperAdmin),
		Password: strPtr("newpass"),
		IsActive: &inactive,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "Ana B" || updated.Role != domain.RoleSuperAdmin || updated.IsActive {
		t.Fatalf("fields not applied: %+v", updated)
	}
	if bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("newpass")) != nil {
		t.Fatalf("password not re-hashed")
	}
	if updated.Email != "ana@cipco.io" {
		t.Fatalf("email changed unexpectedly: %s", updated.Email)
	}
}

func TestUserService_Update_NotFound(t *testing.T) {
	svc, _ := newTestUserService()
	if _, err := svc.Update(context.Background(), "root", "missing", ports.UpdateUserInput{}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	svc, repo := newTestUserService()
	ctx := context.Background()

	root, _ := svc.Create(ctx, ports.CreateUserInput{Email: "root@cipco.io", Password: "secret1", Name: "Root", Role: domain.RoleSuperAdmin})
	ed, _ := svc.Create(ctx, ports.CreateUserInput{Email: "ed@cipco.io", Password: "secret1", Name: "Ed"})

	if err := svc.Delete(ctx, root.ID, root.ID); !errors.Is(err, domain.ErrSelfDeletion) {
		t.Fatalf("expected ErrSelfDeletion, got %v", err)
	}
	if _, err := repo.FindByID(ctx, root.ID); err != nil {
		t.Fatalf("self-deletion must not remove the account: %v", err)
	}

	if err := svc.Delete(ctx, root.ID, ed.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := repo.FindByID(ctx, ed.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected user to be gone, got %v", err)
	}
}

func TestUserService_Delete_SelfByNonCanonicalID(t *testing.T) {
	svc, repo := newTestUserService()
	ctx := context.Background()

	root, _ := svc.Create(ctx, ports.CreateUserInput{Email: "root@cipco.io", Password: "secret1", Name: "Root", Role: domain.RoleSuperAdmin})

	if err := svc.Delete(ctx, root.ID, strings.ToUpper(root.ID)); !errors.Is(err, domain.ErrSelfDeletion) {
		t.Fatalf("expected ErrSelfDeletion, got %v", err)
	}
	if _, err := repo.FindByID(ctx, root.ID); err != nil {
		t.Fatalf("account must survive: %v", err)
	}
}

func TestUserService_Delete_NotFound(t *testing.T) {
	svc, _ := newTestUserService()
	if err := svc.Delete(context.Background(), "root", "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Update_SelfProtection(t *testing.T) {
	svc, repo := newTestUserService()
	ctx := context.Background()

	root, _ := svc.Create(ctx, ports.CreateUserInput{Email: "root@cipco.io", Password: "secret1", Name: "Root", Role: domain.RoleSuperAdmin})
	inactive := false

	tests := map[string]struct {
		id string
		in ports.UpdateUserInput
	}{
		"deactivate self":           {root.ID, ports.UpdateUserInput{IsActive: &inactive}},
		"demote self":               {root.ID, ports.UpdateUserInput{Role: strPtr(domain.RoleAdmin)}},
		"demote self by upper case": {strings.ToUpper(root.ID), ports.UpdateUserInput{Role: strPtr(domain.RoleAdmin)}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.Update(ctx, root.ID, tt.id, tt.in); !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}

	stored, _ := repo.FindByID(ctx, root.ID)
	if !stored.IsActive || stored.Role != domain.RoleSuperAdmin {
		t.Fatalf("account changed: %+v", stored)
	}

	// Keeping the same role and renaming oneself is allowed.
	active := true
	if _, err := svc.Update(ctx, root.ID, root.ID, ports.UpdateUserInput{
		Name: strPtr("Root Admin"), Role: strPtr(domain.RoleSuperAdmin), IsActive: &active,
	}); err != nil {
		t.Fatalf("self rename: %v", err)
	}
}
