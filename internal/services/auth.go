package services

import (
	"errors"
	"strings"
	"time"

	"github.com/MOSHEDORA/FinDora/internal/config"
	"github.com/MOSHEDORA/FinDora/internal/database"
	"github.com/MOSHEDORA/FinDora/internal/models"
	"github.com/MOSHEDORA/FinDora/pkg/auth"
	"github.com/google/uuid"
)

var (
	// ErrUserExists is returned when registering an already-taken email.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password;
	// the two cases are never distinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMissingFields is returned for incomplete registration input.
	ErrMissingFields = errors.New("email, password and name are required")
)

type AuthService struct {
	db  *database.DB
	cfg *config.Config
}

func NewAuthService(db *database.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// Request/Response types
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Register creates a new user with a bcrypt-hashed password.
func (s *AuthService) Register(req *RegisterRequest) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" || strings.TrimSpace(req.Name) == "" {
		return nil, ErrMissingFields
	}

	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrUserExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:        uuid.NewString(),
		Email:     email,
		Password:  hashedPassword,
		Name:      strings.TrimSpace(req.Name),
		CreatedAt: time.Now(),
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// Login authenticates a user and issues a signed token.
func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if !auth.CheckPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, s.cfg.JWTSecretKey, s.cfg.JWTExpireHours)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{User: &user, Token: token}, nil
}
