package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"church_membership/internal/model"
	"church_membership/internal/repository"
	"church_membership/internal/utils"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("user with this email already exists")
	ErrPhoneTaken   = errors.New("user with this phone already exists")
	// ErrContactTaken covers unique-index hits where the pre-check raced
	// and the violated constraint is not known.
	ErrContactTaken = errors.New("user with this email or phone already exists")
)

// UserService provides CRUD over the member roster
type UserService interface {
	GetAll(ctx context.Context) ([]model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	Search(ctx context.Context, query string) ([]model.User, error)
	GetAdmins(ctx context.Context) ([]model.User, error)
	Counts(ctx context.Context) (*model.UserCounts, error)
	Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error)
	Update(ctx context.Context, id string, req model.UpdateUserRequest) (*model.User, error)
	UpdateRole(ctx context.Context, id, role string) (*model.User, error)
	Delete(ctx context.Context, id string) error
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) GetAll(ctx context.Context) ([]model.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *userService) Search(ctx context.Context, query string) ([]model.User, error) {
	return s.repo.Search(ctx, query)
}

func (s *userService) GetAdmins(ctx context.Context) ([]model.User, error) {
	return s.repo.FindAdmins(ctx)
}

func (s *userService) Counts(ctx context.Context) (*model.UserCounts, error) {
	return s.repo.Counts(ctx)
}

// checkContactConflicts guards explicit creates/updates with a pre-check so
// the caller gets a field-specific Conflict error. The partial unique
// indexes remain the backstop for races.
func (s *userService) checkContactConflicts(ctx context.Context, email, phone *string, selfID string) error {
	if email != nil {
		existing, err := s.repo.FindByEmailOrPhone(ctx, email, nil)
		if err != nil {
			return fmt.Errorf("failed to check email conflict: %w", err)
		}
		if existing != nil && existing.ID != selfID {
			return ErrEmailTaken
		}
	}
	if phone != nil {
		existing, err := s.repo.FindByEmailOrPhone(ctx, nil, phone)
		if err != nil {
			return fmt.Errorf("failed to check phone conflict: %w", err)
		}
		if existing != nil && existing.ID != selfID {
			return ErrPhoneTaken
		}
	}
	return nil
}

func (s *userService) Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	req.Email = normalizeContact(req.Email)
	req.Phone = normalizeContact(req.Phone)

	if err := s.checkContactConflicts(ctx, req.Email, req.Phone, ""); err != nil {
		return nil, err
	}

	now := time.Now()
	user := &model.User{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		ProfilePic:    req.ProfilePic,
		Age:           req.Age,
		MaritalStatus: req.MaritalStatus,
		Sex:           req.Sex,
		Role:          model.RoleUser,
		Address:       req.Address,
		Occupation:    req.Occupation,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.Role != nil {
		user.Role = *req.Role
	}

	if user.Email == nil && user.Phone != nil {
		placeholder := utils.PlaceholderEmail()
		user.Email = &placeholder
	}

	if req.Password != nil && *req.Password != "" {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = &hash
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrContactTaken
		}
		return nil, err
	}
	return user, nil
}

// Update merges the patch field-by-field against the fetched record,
// overwriting only fields that are present in the request.
func (s *userService) Update(ctx context.Context, id string, req model.UpdateUserRequest) (*model.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Email = normalizeContact(req.Email)
	req.Phone = normalizeContact(req.Phone)

	var newEmail, newPhone *string
	if req.Email != nil && (user.Email == nil || *req.Email != *user.Email) {
		newEmail = req.Email
	}
	if req.Phone != nil && (user.Phone == nil || *req.Phone != *user.Phone) {
		newPhone = req.Phone
	}
	if err := s.checkContactConflicts(ctx, newEmail, newPhone, id); err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = req.Email
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.ProfilePic != nil {
		user.ProfilePic = req.ProfilePic
	}
	if req.Age != nil {
		user.Age = req.Age
	}
	if req.MaritalStatus != nil {
		user.MaritalStatus = req.MaritalStatus
	}
	if req.Sex != nil {
		user.Sex = req.Sex
	}
	if req.Address != nil {
		user.Address = req.Address
	}
	if req.Occupation != nil {
		user.Occupation = req.Occupation
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrContactTaken
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateRole(ctx context.Context, id, role string) (*model.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the user; the store cascades attendance rows.
func (s *userService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
