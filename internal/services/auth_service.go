package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hireboard/api/internal/models"
	pgrepo "github.com/hireboard/api/internal/repositories/postgres"
	"github.com/hireboard/api/internal/utils"
)

type AuthService interface {
	Register(ctx context.Context, email, password, fullName string, role models.UserRole) (*models.User, error)
	Login(ctx context.Context, email, password string) (token string, user *models.User, err error)
}

type authService struct {
	users    pgrepo.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(users pgrepo.UserRepository, secret string, tokenTTL time.Duration) AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &authService{users: users, secret: []byte(secret), tokenTTL: tokenTTL}
}

func (s *authService) Register(ctx context.Context, email, password, fullName string, role models.UserRole) (*models.User, error) {
	const op = "AuthService.Register"

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "email and password are required", nil)
	}
	if len(password) < 8 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "password must be at least 8 characters", nil)
	}
	if role != models.RoleAdmin && role != models.RoleRecruiter {
		return nil, utils.E(utils.CodeInvalidArgument, op, "unknown role", nil)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(fullName),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Insert(ctx, u); err != nil {
		if errors.Is(err, utils.ErrDuplicate) {
			return nil, utils.E(utils.CodeConflict, op, "a user with that email already exists", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create user", err)
	}
	return u, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	const op = "AuthService.Login"

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, utils.E(utils.CodeInvalidArgument, op, "email and password are required", nil)
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return "", nil, utils.E(utils.CodeUnauthorized, op, "invalid credentials", nil)
		}
		return "", nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}
	if err := utils.CheckPassword(u.PasswordHash, password); err != nil {
		return "", nil, utils.E(utils.CodeUnauthorized, op, "invalid credentials", nil)
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   u.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, struct {
		jwt.RegisteredClaims
		Role string `json:"role"`
	}{RegisteredClaims: claims, Role: string(u.Role)})

	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", nil, utils.E(utils.CodeInternal, op, "failed to sign token", err)
	}
	return signed, u, nil
}
