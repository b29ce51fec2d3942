package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/shopkeeper-api/internal/domain/entity"
	"github.com/sangkips/shopkeeper-api/internal/domain/repository"
	"github.com/sangkips/shopkeeper-api/pkg/apperror"
	"github.com/sangkips/shopkeeper-api/pkg/utils"
	"go.uber.org/zap"
)

const minPasswordLength = 6

// UserService handles shop login management
type UserService struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, logger: logger}
}

// ListUsers returns every shop login
func (s *UserService) ListUsers(ctx context.Context) ([]entity.User, error) {
	return s.userRepo.List(ctx)
}

// CreateUserInput represents the input for adding a login
type CreateUserInput struct {
	Username string
	Password string
	FullName string
	Role     string
}

// CreateUser adds a new login
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, apperror.NewBadRequestError("Username is required")
	}
	role := input.Role
	if role == "" {
		role = entity.RoleStaff
	}
	if !entity.ValidRole(role) {
		return nil, apperror.NewBadRequestError("Unknown role " + role)
	}
	if len(input.Password) < minPasswordLength {
		return nil, apperror.NewBadRequestError("Password must be at least 6 characters")
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Username already taken")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username: username,
		FullName: input.FullName,
		Password: hashed,
		Role:     role,
		Active:   true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created", zap.String("username", username), zap.String("role", role))
	return user, nil
}

// SetActive enables or disables a login
func (s *UserService) SetActive(ctx context.Context, userID uuid.UUID, active bool) (*entity.User, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Active = active
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword replaces a user's password after checking the current one
func (s *UserService) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if !utils.CheckPasswordHash(current, user.Password) {
		return apperror.NewBadRequestError("Current password is incorrect")
	}
	if len(next) < minPasswordLength {
		return apperror.NewBadRequestError("Password must be at least 6 characters")
	}

	hashed, err := utils.HashPassword(next)
	if err != nil {
		return err
	}
	user.Password = hashed
	return s.userRepo.Update(ctx, user)
}

func (s *UserService) getUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrNotFound
	}
	return user, nil
}
