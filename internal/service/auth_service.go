package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"church_membership/internal/model"
	"church_membership/internal/repository"
	"church_membership/internal/utils"

	"github.com/google/uuid"
)

var (
	ErrContactRequired  = errors.New("either email or phone must be provided")
	ErrNameRequired     = errors.New("name is required for new users")
	ErrPasswordRequired = errors.New("password is required for admin login")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrUserGone         = errors.New("user not found")
)

// AuthService unifies login and signup into one identity resolution call
// and manages the stateless session tokens minted for resolved users.
type AuthService interface {
	Login(ctx context.Context, name, email, phone, password *string) (*model.User, string, error)
	Verify(ctx context.Context, token string) (*model.User, error)
	Refresh(ctx context.Context, userID string) (string, error)
	Validate(ctx context.Context, userID string) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	jwtUtil  *utils.JWTUtil
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil) AuthService {
	return &authService{
		userRepo: userRepo,
		jwtUtil:  jwtUtil,
	}
}

// Login resolves contact credentials to a user, creating one on first
// contact. A supplied password means admin intent: new users are registered
// as ADMIN with the password stored hashed, and existing admins must present
// a matching password. Existing ordinary users never have a password checked.
func (s *authService) Login(ctx context.Context, name, email, phone, password *string) (*model.User, string, error) {
	// Blank strings count as absent. A stored empty email would otherwise
	// match every later blank-email login and hand out the wrong account.
	email = normalizeContact(email)
	phone = normalizeContact(phone)

	if email == nil && phone == nil {
		return nil, "", ErrContactRequired
	}

	user, err := s.userRepo.FindByEmailOrPhone(ctx, email, phone)
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if user == nil {
		user, err = s.register(ctx, name, email, phone, password)
		if err != nil {
			return nil, "", err
		}
	} else if user.Role == model.RoleAdmin {
		if password == nil || *password == "" {
			return nil, "", ErrPasswordRequired
		}
		if user.PasswordHash == nil || !utils.CheckPasswordHash(*password, *user.PasswordHash) {
			return nil, "", ErrInvalidPassword
		}
	}
	// Existing USER: password, if supplied, is deliberately ignored.

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Email, user.Phone, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// normalizeContact trims whitespace and treats the empty string as nil
func normalizeContact(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (s *authService) register(ctx context.Context, name, email, phone, password *string) (*model.User, error) {
	if name == nil || strings.TrimSpace(*name) == "" {
		return nil, ErrNameRequired
	}

	now := time.Now()
	user := &model.User{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(*name),
		Email:     email,
		Phone:     phone,
		Role:      model.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// email is unique-when-present, so phone-only signups get a synthesized one
	if email == nil && phone != nil {
		placeholder := utils.PlaceholderEmail()
		user.Email = &placeholder
	}

	if password != nil && *password != "" {
		hash, err := utils.HashPassword(*password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Role = model.RoleAdmin
		user.PasswordHash = &hash
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}
	return user, nil
}

// Verify checks a session token and re-fetches the live user record so a
// deleted user invalidates the session immediately. Claims beyond the
// subject are never trusted.
func (s *authService) Verify(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.jwtUtil.ValidateToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve token subject: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

// Refresh re-issues a fresh token for a still-existing user
func (s *authService) Refresh(ctx context.Context, userID string) (string, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to find user for refresh: %w", err)
	}
	if user == nil {
		return "", ErrUserGone
	}
	return s.jwtUtil.GenerateToken(user.ID, user.Email, user.Phone, user.Role)
}

// Validate reports whether a user id still resolves to a live record
func (s *authService) Validate(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate user: %w", err)
	}
	if user == nil {
		return nil, ErrUserGone
	}
	return user, nil
}
