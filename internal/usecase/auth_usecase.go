package usecase

import (
	"context"
	"errors"
	"strings"

	"talentbridge/internal/domain/identity"
	"talentbridge/internal/pkg/jwt"
	"talentbridge/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
)

type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Role     string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	User         repository.User
	AccessToken  string
	RefreshToken string
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (AuthResult, error)
	Login(ctx context.Context, in LoginInput) (AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (AuthResult, error)
}

type Auth struct {
	users  repository.UserRepository
	tokens jwt.Service
}

func NewAuthUsecase(users repository.UserRepository, tokens jwt.Service) *Auth {
	return &Auth{users: users, tokens: tokens}
}

func (u *Auth) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" || !isValidPassword(in.Password) {
		return AuthResult{}, ErrInvalidInput
	}

	role, err := identity.ParseRole(in.Role)
	if err != nil {
		return AuthResult{}, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, ErrInternal
	}

	created, err := u.users.Create(ctx, repository.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(in.FullName),
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return AuthResult{}, ErrEmailAlreadyRegistered
		}
		return AuthResult{}, ErrInternal
	}

	return u.issueTokens(created)
}

func (u *Auth) Login(ctx context.Context, in LoginInput) (AuthResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return AuthResult{}, ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(in.Password)); err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}

	return u.issueTokens(usr)
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (AuthResult, error) {
	claims, err := u.tokens.ValidateToken(refreshToken)
	if err != nil || !u.tokens.IsRefreshToken(claims) {
		return AuthResult{}, ErrUnauthorized
	}

	usr, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return AuthResult{}, ErrUnauthorized
		}
		return AuthResult{}, ErrInternal
	}

	return u.issueTokens(usr)
}

func (u *Auth) issueTokens(usr repository.User) (AuthResult, error) {
	access, err := u.tokens.GenerateAccessToken(usr.ID, usr.Email, usr.Role)
	if err != nil {
		return AuthResult{}, ErrInternal
	}
	refresh, err := u.tokens.GenerateRefreshToken(usr.ID, usr.Role)
	if err != nil {
		return AuthResult{}, ErrInternal
	}
	usr.PasswordHash = ""
	return AuthResult{User: usr, AccessToken: access, RefreshToken: refresh}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 8
}
