package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/talentgate/talentgate/pkg/api"
	"github.com/talentgate/talentgate/pkg/auth"
	"github.com/talentgate/talentgate/pkg/auth/password"
	"github.com/talentgate/talentgate/pkg/storage"
)

// UserService manages the users of a company. Creating and deleting users
// is gated on the ADMIN role; the role check runs before any store access.
type UserService struct {
	store  storage.Store
	hasher *password.Hasher
	logger *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(store storage.Store, hasher *password.Hasher, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{store: store, hasher: hasher, logger: logger}
}

// Create adds a user to the principal's own company. Requires ADMIN.
// Role defaults to RECRUITER when the request leaves it empty.
func (s *UserService) Create(ctx context.Context, p auth.Principal, req *api.CreateUserRequest) (*api.UserProfile, error) {
	if !p.IsAdmin() {
		return nil, api.NewUnauthorizedError("admin role required")
	}

	if apiErr := api.ValidateCreateUserRequest(req); apiErr != nil {
		return nil, apiErr
	}

	role := req.Role
	if role == "" {
		role = api.RoleRecruiter
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error("password hashing failed", "error", err)
		return nil, api.NewServerError("internal error")
	}

	now := time.Now().UTC()
	user := &api.User{
		ID:           api.NewUserID(),
		Email:        req.Email,
		PasswordHash: digest,
		FullName:     req.FullName,
		Role:         role,
		CompanyID:    p.CompanyID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, api.NewAlreadyExistsError("email already exists")
		}
		s.logger.Error("user creation failed", "error", err)
		return nil, api.NewServerError("internal error")
	}

	s.logger.Info("user created", "user_id", user.ID, "company_id", p.CompanyID, "role", role)
	return user.Profile(), nil
}

// List returns all users of the principal's company.
func (s *UserService) List(ctx context.Context, p auth.Principal) ([]*api.UserProfile, error) {
	users, err := s.store.ListUsers(ctx, p.CompanyID)
	if err != nil {
		s.logger.Error("user listing failed", "error", err)
		return nil, api.NewServerError("internal error")
	}

	out := make([]*api.UserProfile, 0, len(users))
	for _, u := range users {
		out = append(out, u.Profile())
	}
	return out, nil
}

// Get returns one user of the principal's company. A user under another
// company reports the same not_found as a missing one.
func (s *UserService) Get(ctx context.Context, p auth.Principal, id string) (*api.UserProfile, error) {
	user, err := s.store.GetUser(ctx, p.CompanyID, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, api.NewNotFoundError("user not found")
		}
		s.logger.Error("user lookup failed", "error", err)
		return nil, api.NewServerError("internal error")
	}
	return user.Profile(), nil
}

// Delete removes a user from the principal's company. Requires ADMIN.
func (s *UserService) Delete(ctx context.Context, p auth.Principal, id string) error {
	if !p.IsAdmin() {
		return api.NewUnauthorizedError("admin role required")
	}

	if err := s.store.DeleteUser(ctx, p.CompanyID, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return api.NewNotFoundError("user not found")
		}
		s.logger.Error("user deletion failed", "error", err)
		return api.NewServerError("internal error")
	}

	s.logger.Info("user deleted", "user_id", id, "company_id", p.CompanyID)
	return nil
}
