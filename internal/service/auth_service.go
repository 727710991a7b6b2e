package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"itemhub/internal/apierr"
	"itemhub/internal/model"
	"itemhub/internal/repository"
	"itemhub/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthService provides authentication related services
type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, string, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.User, string, error)
	Profile(ctx context.Context, userID string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

type authService struct {
	userRepo     repository.UserRepository
	jwtUtil      *utils.JWTUtil
	initialAdmin string
	logger       *slog.Logger
}

// NewAuthService creates a new AuthService. When initialAdmin is non-empty, a
// registration under that username is promoted to the admin role.
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil, initialAdmin string, logger *slog.Logger) AuthService {
	return &authService{
		userRepo:     userRepo,
		jwtUtil:      jwtUtil,
		initialAdmin: initialAdmin,
		logger:       logger,
	}
}

func duplicateUsername() *apierr.Error {
	return apierr.ValidationFailed(apierr.FieldError{
		Field:   "username",
		Message: "username is already taken",
	})
}

// Register creates a new user account and issues a session token
func (s *authService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, string, error) {
	existing, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, "", duplicateUsername()
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	userRole := model.RoleUser
	if s.initialAdmin != "" && req.Username == s.initialAdmin {
		userRole = model.RoleAdmin
		s.logger.Info("registering user as admin via INITIAL_ADMIN_USERNAME", "username", req.Username)
	}

	now := time.Now()
	user := &model.User{
		Username:     req.Username,
		PasswordHash: hashedPassword,
		Role:         userRole,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// The unique index closes the lookup/insert race
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, "", duplicateUsername()
		}
		return nil, "", fmt.Errorf("failed to create user in repository: %w", err)
	}

	token, err := s.jwtUtil.GenerateToken(user.ID.Hex(), user.Username, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("user created, but failed to generate token: %w", err)
	}

	return user, token, nil
}

// Login authenticates a user and returns a session token. Unknown usernames
// and wrong passwords produce the identical failure.
func (s *authService) Login(ctx context.Context, req model.LoginRequest) (*model.User, string, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by username: %w", err)
	}
	if user == nil {
		return nil, "", apierr.InvalidCredentials()
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, "", apierr.InvalidCredentials()
	}

	token, err := s.jwtUtil.GenerateToken(user.ID.Hex(), user.Username, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// Profile resolves the identity carried by a verified token back to its user record
func (s *authService) Profile(ctx context.Context, userID string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apierr.UserNotFound()
	}

	user, err := s.userRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	if user == nil {
		return nil, apierr.UserNotFound()
	}
	return user, nil
}

// ListUsers returns all user records, newest first
func (s *authService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
