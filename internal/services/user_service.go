package services

import (
	"database/sql"
	"errors"
	"fmt"

	"teamcook_backend/internal/models"
	"teamcook_backend/internal/repositories"
	"teamcook_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// --- Custom Service Errors ---
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrLoginIDExists      = errors.New("login id already taken")
	ErrTokenGeneration    = errors.New("failed to generate token")
)

// DefaultUserRole is assigned when registration does not name a role.
const DefaultUserRole = "Chef"

// --- Data Transfer Objects (DTOs) ---

// LoginRequest DTO
type LoginRequest struct {
	LoginID  string `json:"login_id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterUserRequest DTO
type RegisterUserRequest struct {
	LoginID  string `json:"login_id" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role"` // e.g. 'Chef', 'Manager'. Defaults if empty.
}

// UpdateUserRequest is used for updating a user account.
type UpdateUserRequest struct {
	LoginID  *string `json:"login_id"`
	Password *string `json:"password"`
	Name     *string `json:"name"`
	Role     *string `json:"role"`
}

// AuthResponse DTO
type AuthResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token,omitempty"`
}

// --- UserService Interface ---
type UserService interface {
	RegisterUser(req RegisterUserRequest) (*models.User, error)
	LoginUser(req LoginRequest) (*AuthResponse, error)
	GetUserProfile(userID int64) (*models.User, error)
	GetUsers(page, pageSize int) ([]models.User, int, error)
	UpdateUser(id int64, req UpdateUserRequest) (*models.User, error)
	DeleteUser(id int64) error
}

// --- userService Implementation ---
type userService struct {
	userRepo repositories.UserRepository
	db       *sql.DB
}

// NewUserService creates a new instance of UserService.
func NewUserService(userRepo repositories.UserRepository, db *sql.DB) UserService {
	return &userService{userRepo: userRepo, db: db}
}

// RegisterUser handles the business logic for account registration.
func (s *userService) RegisterUser(req RegisterUserRequest) (*models.User, error) {
	if utils.IsEmpty(req.LoginID) {
		return nil, fmt.Errorf("%w: login id cannot be empty", ErrValidation)
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = DefaultUserRole
	}

	user := &models.User{
		LoginID:      req.LoginID,
		PasswordHash: string(hashedPasswordBytes),
		Name:         req.Name,
		Role:         role,
	}
	if _, err := s.userRepo.CreateUser(s.db, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: '%s'", ErrLoginIDExists, req.LoginID)
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	user.PasswordHash = "" // never expose the hash
	return user, nil
}

// LoginUser handles login and token generation.
func (s *userService) LoginUser(req LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.FindUserByLoginID(req.LoginID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := utils.GenerateAccessToken(user.ID, user.LoginID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	refreshToken, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	user.PasswordHash = ""
	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// GetUserProfile retrieves a user's profile by their ID.
func (s *userService) GetUserProfile(userID int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to retrieve user profile: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) GetUsers(page, pageSize int) ([]models.User, int, error) {
	users, totalCount, err := s.userRepo.GetUsers(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get users: %w", err)
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, totalCount, nil
}

func (s *userService) UpdateUser(id int64, req UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user for update: %w", err)
	}

	if req.LoginID != nil {
		if utils.IsEmpty(*req.LoginID) {
			return nil, fmt.Errorf("%w: login id cannot be empty if provided", ErrValidation)
		}
		user.LoginID = *req.LoginID
	}
	if req.Password != nil {
		if len(*req.Password) < 8 {
			return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
		}
		hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hashedPasswordBytes)
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		user.Role = *req.Role
	}

	if err := s.userRepo.UpdateUser(s.db, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: '%s'", ErrLoginIDExists, user.LoginID)
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) DeleteUser(id int64) error {
	if err := s.userRepo.DeleteUser(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
