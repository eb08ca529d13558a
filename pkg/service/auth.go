package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/talentgate/talentgate/pkg/api"
	"github.com/talentgate/talentgate/pkg/auth"
	"github.com/talentgate/talentgate/pkg/auth/password"
	"github.com/talentgate/talentgate/pkg/auth/token"
	"github.com/talentgate/talentgate/pkg/observability"
	"github.com/talentgate/talentgate/pkg/storage"
)

// invalidCredentials is the single error returned for unknown email and
// wrong password alike. Same type, same message: the two causes must be
// indistinguishable to the caller.
func invalidCredentials() *api.APIError {
	return api.NewUnauthorizedError("invalid credentials")
}

// AuthService orchestrates the registration and login flows over the
// credential store, the password hasher, and the token service.
type AuthService struct {
	store  storage.Store
	hasher *password.Hasher
	tokens *token.Service
	logger *slog.Logger

	// dummyDigest is verified against when the email is unknown, so the
	// unknown-email and wrong-password paths cost roughly the same.
	dummyDigest string
}

// NewAuthService creates an AuthService. A nil logger falls back to the
// default slog logger.
func NewAuthService(store storage.Store, hasher *password.Hasher, tokens *token.Service, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	dummy, err := hasher.Hash("talentgate-dummy-credential")
	if err != nil {
		dummy = ""
	}
	return &AuthService{
		store:       store,
		hasher:      hasher,
		tokens:      tokens,
		logger:      logger,
		dummyDigest: dummy,
	}
}

// Register onboards a new tenant: one company and its first user with
// role ADMIN. The two inserts are one atomic store operation; the store's
// unique email constraint is the authority under concurrent attempts, so
// a race-losing registration surfaces as already_exists, not a server
// error. The response includes a session token so the admin is signed in
// immediately.
func (s *AuthService) Register(ctx context.Context, req *api.RegisterRequest) (*api.RegisterResponse, error) {
	if apiErr := api.ValidateRegisterRequest(req); apiErr != nil {
		return nil, apiErr
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error("password hashing failed", "error", err)
		return nil, api.NewServerError("internal error")
	}

	now := time.Now().UTC()
	company := &api.Company{
		ID:        api.NewCompanyID(),
		Name:      req.CompanyName,
		Email:     req.Email,
		Phone:     req.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	admin := &api.User{
		ID:           api.NewUserID(),
		Email:        req.Email,
		PasswordHash: digest,
		FullName:     req.FullName,
		Role:         api.RoleAdmin,
		CompanyID:    company.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.CreateTenant(ctx, company, admin); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, api.NewAlreadyExistsError("user already exists")
		}
		s.logger.Error("tenant creation failed", "error", err)
		return nil, api.NewServerError("internal error")
	}

	signed, err := s.tokens.Issue(auth.Principal{
		UserID:    admin.ID,
		Role:      admin.Role,
		CompanyID: admin.CompanyID,
	})
	if err != nil {
		s.logger.Error("token issuance failed", "error", err)
		return nil, api.NewServerError("internal error")
	}

	observability.RegistrationsTotal.Inc()
	s.logger.Info("tenant registered",
		"company_id", company.ID,
		"user_id", admin.ID,
	)

	return &api.RegisterResponse{
		Message: "register success",
		Token:   signed,
		User:    admin.Profile(),
		Company: company,
	}, nil
}

// Login authenticates an existing user by email and password. An unknown
// email and a wrong password produce the identical error.
func (s *AuthService) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {
	if apiErr := api.ValidateLoginRequest(req); apiErr != nil {
		return nil, apiErr
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.hasher.Verify(req.Password, s.dummyDigest)
			observability.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, invalidCredentials()
		}
		s.logger.Error("user lookup failed", "error", err)
		return nil, api.NewServerError("internal error")
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		observability.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, invalidCredentials()
	}

	signed, err := s.tokens.Issue(auth.Principal{
		UserID:    user.ID,
		Role:      user.Role,
		CompanyID: user.CompanyID,
	})
	if err != nil {
		s.logger.Error("token issuance failed", "error", err)
		return nil, api.NewServerError("internal error")
	}

	observability.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info("login succeeded", "user_id", user.ID, "company_id", user.CompanyID)

	return &api.LoginResponse{
		Token: signed,
		User:  user.Profile(),
	}, nil
}

// Me re-resolves the caller's user record. A user deleted after token
// issuance reports not_found even though the token still verifies.
func (s *AuthService) Me(ctx context.Context, p auth.Principal) (*api.UserProfile, error) {
	user, err := s.store.GetUser(ctx, p.CompanyID, p.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, api.NewNotFoundError("user not found")
		}
		s.logger.Error("user lookup failed", "error", err)
		return nil, api.NewServerError("internal error")
	}
	return user.Profile(), nil
}
