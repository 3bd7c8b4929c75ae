package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Yassen717/ModBlog/internal/domain"
	"github.com/Yassen717/ModBlog/internal/logger"
	"github.com/Yassen717/ModBlog/internal/metrics"
	"github.com/Yassen717/ModBlog/internal/repository"
	"github.com/Yassen717/ModBlog/internal/validator"
)

// ErrEmailTaken is returned when another user already owns the email.
var ErrEmailTaken = errors.New("email already in use")

// UserFilter narrows the user listing. Search matches name and email.
type UserFilter struct {
	Search string
	Role   string
	Status string
}

// UserInput is the payload for creating or inviting a user.
type UserInput struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
	Avatar string `json:"avatar"`
}

// UserUpdate holds the fields to merge onto a stored user.
type UserUpdate struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Role   *string `json:"role"`
	Status *string `json:"status"`
	Avatar *string `json:"avatar"`
}

// UserService implements user administration.
type UserService struct {
	users     repository.UserRepository
	validator *validator.Validator
}

// NewUserService creates a new UserService.
func NewUserService(users repository.UserRepository, v *validator.Validator) *UserService {
	return &UserService{users: users, validator: v}
}

// List returns users matching filter in stored order.
func (s *UserService) List(ctx context.Context, filter UserFilter) []domain.User {
	query := strings.ToLower(strings.TrimSpace(filter.Search))
	users := s.users.List(ctx)
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if filter.Role != "" && filter.Role != "all" && string(u.Role) != filter.Role {
			continue
		}
		if filter.Status != "" && filter.Status != "all" && string(u.Status) != filter.Status {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(u.Name), query) &&
			!strings.Contains(strings.ToLower(u.Email), query) {
			continue
		}
		out = append(out, u)
	}
	return out
}

// Get returns a user by id.
func (s *UserService) Get(ctx context.Context, id string) (domain.User, error) {
	u, ok := s.users.GetByID(ctx, id)
	if !ok {
		return domain.User{}, ErrNotFound
	}
	return u, nil
}

// Create stores a new user. Role defaults to Subscriber and status to active.
func (s *UserService) Create(ctx context.Context, input UserInput) (domain.User, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Email) == "" {
		return domain.User{}, missingFields("name", "email")
	}

	u := domain.User{
		ID:     domain.NewID(),
		Name:   strings.TrimSpace(input.Name),
		Email:  strings.TrimSpace(input.Email),
		Role:   domain.UserRole(input.Role),
		Status: domain.UserStatus(input.Status),
		Avatar: input.Avatar,
	}
	if u.Role == "" {
		u.Role = domain.RoleSubscriber
	}
	if u.Status == "" {
		u.Status = domain.UserStatusActive
	}
	if err := s.validator.ValidateUser(&u); err != nil {
		return domain.User{}, newValidationError(err)
	}
	if _, taken := s.users.GetByEmail(ctx, u.Email); taken {
		return domain.User{}, ErrEmailTaken
	}

	saved := s.users.Save(ctx, u)
	metrics.RecordMutation("user", "create")
	logger.InfoContext(ctx, "User created", slog.String("user_id", saved.ID), slog.String("role", string(saved.Role)))
	return saved, nil
}

// Update merges update onto the stored user.
func (s *UserService) Update(ctx context.Context, id string, update UserUpdate) (domain.User, error) {
	current, ok := s.users.GetByID(ctx, id)
	if !ok {
		return domain.User{}, ErrNotFound
	}

	apply := func(u *domain.User) {
		if update.Name != nil {
			u.Name = strings.TrimSpace(*update.Name)
		}
		if update.Email != nil {
			u.Email = strings.TrimSpace(*update.Email)
		}
		if update.Role != nil {
			u.Role = domain.UserRole(*update.Role)
		}
		if update.Status != nil {
			u.Status = domain.UserStatus(*update.Status)
		}
		if update.Avatar != nil {
			u.Avatar = *update.Avatar
		}
	}
	apply(&current)
	if err := s.validator.ValidateUser(&current); err != nil {
		return domain.User{}, newValidationError(err)
	}
	if other, taken := s.users.GetByEmail(ctx, current.Email); taken && other.ID != id {
		return domain.User{}, ErrEmailTaken
	}

	updated, ok := s.users.Update(ctx, id, apply)
	if !ok {
		return domain.User{}, ErrNotFound
	}
	metrics.RecordMutation("user", "update")
	logger.InfoContext(ctx, "User updated", slog.String("user_id", id))
	return updated, nil
}

// ChangeRole assigns a new role.
func (s *UserService) ChangeRole(ctx context.Context, id, role string) (domain.User, error) {
	return s.Update(ctx, id, UserUpdate{Role: &role})
}

// ToggleStatus flips a user between active and inactive.
func (s *UserService) ToggleStatus(ctx context.Context, id string) (domain.User, error) {
	current, ok := s.users.GetByID(ctx, id)
	if !ok {
		return domain.User{}, ErrNotFound
	}
	next := string(domain.UserStatusInactive)
	if current.Status != domain.UserStatusActive {
		next = string(domain.UserStatusActive)
	}
	return s.Update(ctx, id, UserUpdate{Status: &next})
}

// Delete removes a user.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if !s.users.Delete(ctx, id) {
		return ErrNotFound
	}
	metrics.RecordMutation("user", "delete")
	logger.InfoContext(ctx, "User deleted", slog.String("user_id", id))
	return nil
}
