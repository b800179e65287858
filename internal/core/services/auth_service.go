package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/TonyDastan/workwave/internal/config"
	"github.com/TonyDastan/workwave/internal/core/ports"
	"github.com/TonyDastan/workwave/internal/domain"
	"github.com/TonyDastan/workwave/internal/infrastructure/logger"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type authService struct {
	users  ports.UserRepository
	logger *logger.Logger
	cfg    config.AuthConfig
}

type AuthServiceConfig struct {
	UserRepo ports.UserRepository
	Logger   *logger.Logger
	Config   config.AuthConfig
}

func NewAuthService(cfg AuthServiceConfig) ports.AuthService {
	return &authService{
		users:  cfg.UserRepo,
		logger: cfg.Logger,
		cfg:    cfg.Config,
	}
}

func (s *authService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, string, error) {
	if input.FirstName == "" {
		return nil, "", validationError("first name is required")
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", validationError("a valid email is required")
	}
	if len(input.Password) < 6 {
		return nil, "", validationError("password must be at least 6 characters long")
	}
	role := input.Role
	if role == "" {
		role = domain.UserRoleClient
	}
	if role != domain.UserRoleClient && role != domain.UserRoleWorker && role != domain.UserRoleAdmin {
		return nil, "", validationError("invalid role %q", role)
	}

	if existing, _ := s.users.GetByEmail(ctx, email); existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := s.hashPassword(input.Password)
	if err != nil {
		s.logger.Errorw("password_hash_failed", "error", err)
		return nil, "", err
	}

	user := &domain.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Phone:        input.Phone,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Infow("user_registered", "id", user.ID, "role", user.Role)
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.logger.Warnw("login_password_mismatch", "user_id", user.ID)
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Infow("user_logged_in", "id", user.ID)
	return user, token, nil
}

func (s *authService) Profile(ctx context.Context, userID uint) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, ErrUserNotFound)
	}
	return user, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID uint, input ports.UpdateProfileInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, ErrUserNotFound)
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Skills != nil {
		user.Skills = input.Skills
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uint, current, updated string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return notFoundOr(err, ErrUserNotFound)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return ErrInvalidCredentials
	}
	if len(updated) < 6 {
		return validationError("password must be at least 6 characters long")
	}

	hash, err := s.hashPassword(updated)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Infow("password_changed", "user_id", userID)
	return nil
}

func (s *authService) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrUserNotFound)
	}
	return user, nil
}

func (s *authService) hashPassword(password string) (string, error) {
	cost := s.cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *authService) issueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(user.ID), 10),
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.cfg.TokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		s.logger.Errorw("token_sign_failed", "user_id", user.ID, "error", err)
		return "", err
	}
	return token, nil
}

func (s *authService) VerifyToken(tokenString string) (ports.Actor, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return ports.Actor{}, ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ports.Actor{}, ErrInvalidCredentials
	}
	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return ports.Actor{}, ErrInvalidCredentials
	}
	role, _ := claims["role"].(string)

	return ports.Actor{ID: uint(id), Role: domain.UserRole(role)}, nil
}
