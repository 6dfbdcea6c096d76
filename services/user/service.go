package user

import (
	"context"
	"errors"
	"strings"
	"time"

	userRepo "hrbridge/database/repository/user"
	"hrbridge/models"
	"hrbridge/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserService covers the user-directory surface: registration, login with
// token issue, logout via token revocation, and profile lookup.
type UserService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Logout(ctx context.Context, tokenString string) error
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo   userRepo.UserRepository
	Logger *zap.Logger
}

func (s *DefaultUserService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	role := req.Role
	if role == "" {
		role = models.RoleEmployee
	}
	if role != models.RoleAdmin && role != models.RoleEmployee {
		return nil, models.ValidationError{Reason: "role must be either 'admin' or 'employee'"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Role:         role,
		Department:   req.Department,
	}

	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, models.ConflictError{Reason: err.Error()}
	}

	s.Logger.Info("user registered", zap.String("userId", u.ID), zap.String("role", u.Role))
	return u, nil
}

func (s *DefaultUserService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, models.AuthorizationError{Reason: "invalid credentials"}
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, models.AuthorizationError{Reason: "invalid credentials"}
	}

	token, err := utils.GenerateToken(u.ID, u.Role, utils.TokenTTL)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.SetTokenHash(ctx, u.ID, utils.HashToken(token)); err != nil {
		s.Logger.Warn("failed to store token hash", zap.String("userId", u.ID), zap.Error(err))
	}

	return &AuthResponse{ID: u.ID, Username: u.Username, Role: u.Role, Token: token}, nil
}

// Logout adds the token to the revocation list for the remainder of its
// lifetime.
func (s *DefaultUserService) Logout(ctx context.Context, tokenString string) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	key := utils.RevokedTokenPrefix + utils.HashToken(tokenString)
	if err := utils.GetAuthCacheClient().Set(ctx, key, "1", utils.TokenTTL).Err(); err != nil {
		return err
	}
	return nil
}

func (s *DefaultUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, models.NotFoundError{Resource: "user", ID: id}
		}
		return nil, err
	}
	return u, nil
}
