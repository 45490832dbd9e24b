package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"talentbridge/internal/domain/identity"
	"talentbridge/internal/pkg/jwt"
	"talentbridge/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	byEmail   map[string]repository.User
	createErr error
	created   []repository.User
}

func (m *mockUserRepo) Create(_ context.Context, u repository.User) (repository.User, error) {
	if m.createErr != nil {
		return repository.User{}, m.createErr
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now().UTC()
	m.created = append(m.created, u)
	return u, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (repository.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return repository.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (repository.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return repository.User{}, repository.ErrUserNotFound
}

func testJWT() jwt.Service {
	return jwt.NewHMACService("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestAuthRegister_IssuesTokensWithRole(t *testing.T) {
	repo := &mockUserRepo{}
	uc := NewAuthUsecase(repo, testJWT())

	res, err := uc.Register(context.Background(), RegisterInput{
		Email:    "Dev@Example.com",
		Password: "supersecret",
		FullName: "Dev One",
		Role:     "company",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.User.Email != "dev@example.com" {
		t.Fatalf("expected normalized email, got %q", res.User.Email)
	}
	if res.User.Role != identity.RoleCompany {
		t.Fatalf("expected company role, got %v", res.User.Role)
	}
	if res.User.PasswordHash != "" {
		t.Fatalf("password hash must not leave the usecase")
	}

	claims, err := testJWT().ValidateToken(res.AccessToken)
	if err != nil {
		t.Fatalf("access token invalid: %v", err)
	}
	if claims.Role != identity.RoleCompany {
		t.Fatalf("expected role in claims, got %v", claims.Role)
	}
}

func TestAuthRegister_RejectsUnknownRole(t *testing.T) {
	uc := NewAuthUsecase(&mockUserRepo{}, testJWT())
	_, err := uc.Register(context.Background(), RegisterInput{
		Email:    "dev@example.com",
		Password: "supersecret",
		Role:     "superuser",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthRegister_DuplicateEmail(t *testing.T) {
	uc := NewAuthUsecase(&mockUserRepo{createErr: repository.ErrDuplicateEmail}, testJWT())
	_, err := uc.Register(context.Background(), RegisterInput{
		Email:    "dev@example.com",
		Password: "supersecret",
		Role:     "student",
	})
	if !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestAuthLogin_WrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("rightpassword"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	repo := &mockUserRepo{byEmail: map[string]repository.User{
		"dev@example.com": {ID: uuid.New(), Email: "dev@example.com", PasswordHash: string(hash), Role: identity.RoleStudent},
	}}
	uc := NewAuthUsecase(repo, testJWT())

	_, err = uc.Login(context.Background(), LoginInput{Email: "dev@example.com", Password: "wrongpassword"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	if _, err := uc.Login(context.Background(), LoginInput{Email: "dev@example.com", Password: "rightpassword"}); err != nil {
		t.Fatalf("expected login to succeed, got %v", err)
	}
}

func TestAuthRefresh_RejectsAccessToken(t *testing.T) {
	svc := testJWT()
	userID := uuid.New()
	repo := &mockUserRepo{byEmail: map[string]repository.User{
		"dev@example.com": {ID: userID, Email: "dev@example.com", Role: identity.RoleStudent},
	}}
	uc := NewAuthUsecase(repo, svc)

	access, err := svc.GenerateAccessToken(userID, "dev@example.com", identity.RoleStudent)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := uc.Refresh(context.Background(), access); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("access token must not refresh, got %v", err)
	}

	refresh, err := svc.GenerateRefreshToken(userID, identity.RoleStudent)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := uc.Refresh(context.Background(), refresh); err != nil {
		t.Fatalf("expected refresh to succeed, got %v", err)
	}
}
