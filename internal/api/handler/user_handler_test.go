package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/cipco/cms-backend/internal/core/domain"
	"github.com/cipco/cms-backend/internal/core/ports"
)

type stubUserService struct {
	ports.UserService
	createFn func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error)
	deleteFn func(ctx context.Context, actorID, id string) error
}

func (s *stubUserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, in)
}

func (s *stubUserService) Delete(ctx context.Context, actorID, id string) error {
	return s.deleteFn(ctx, actorID, id)
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestUserHandler_Create_ValidationFails(t *testing.T) {
	stub := &stubUserService{
		createFn: func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewUserHandler(stub)

	tests := map[string]string{
		"bad email":    `{"email":"nope","password":"secret1","name":"A"}`,
		"short pass":   `{"email":"a@b.io","password":"123","name":"A"}`,
		"unknown role": `{"email":"a@b.io","password":"secret1","name":"A","role":"editor"}`,
		"missing name": `{"email":"a@b.io","password":"secret1"}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			c := newEcho().NewContext(jsonRequest(http.MethodPost, "/api/admin/users", body), httptest.NewRecorder())

			var he *echo.HTTPError
			if err := handler.Create(c); !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %v", err)
			}
		})
	}
}

func TestUserHandler_Create(t *testing.T) {
	stub := &stubUserService{
		createFn: func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
			if in.Email != "new@cipco.io" || in.Role != "" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: "u9", Email: in.Email, Name: in.Name, Role: domain.RoleAdmin, PasswordHash: "hash"}, nil
		},
	}
	handler := NewUserHandler(stub)

	rec := httptest.NewRecorder()
	c := newEcho().NewContext(jsonRequest(http.MethodPost, "/api/admin/users", `{"email":"new@cipco.io","password":"secret1","name":"New"}`), rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "hash") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}
}

func TestUserHandler_Delete_UsesCallerAsActor(t *testing.T) {
	var gotActor, gotID string
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, actorID, id string) error {
			gotActor, gotID = actorID, id
			if actorID == id {
				return domain.ErrSelfDeletion
			}
			return nil
		},
	}
	handler := NewUserHandler(stub)

	c := newEcho().NewContext(httptest.NewRequest(http.MethodDelete, "/api/admin/users/root", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("root")
	withIdentity(c, &domain.Identity{UserID: "root", Role: domain.RoleSuperAdmin})

	if err := handler.Delete(c); !errors.Is(err, domain.ErrSelfDeletion) {
		t.Fatalf("expected ErrSelfDeletion, got %v", err)
	}
	if gotActor != "root" || gotID != "root" {
		t.Fatalf("unexpected delete args: %s %s", gotActor, gotID)
	}
}
