package storage

import (
	"context"

	"github.com/talentgate/talentgate/pkg/api"
)

// TenantStore creates tenants. Registration is the only writer.
type TenantStore interface {
	// CreateTenant atomically creates a company and its first (ADMIN)
	// user. If the user's email is already taken the whole operation
	// fails with ErrConflict and no company record remains. The store's
	// unique constraint, not a pre-check, is the authority under
	// concurrent registrations.
	CreateTenant(ctx context.Context, company *api.Company, admin *api.User) error

	// GetCompany retrieves a company by id.
	GetCompany(ctx context.Context, id string) (*api.Company, error)
}

// UserStore persists users. Email uniqueness is global across companies.
type UserStore interface {
	// CreateUser inserts a user, returning ErrConflict on duplicate email.
	CreateUser(ctx context.Context, user *api.User) error

	// GetUserByEmail retrieves a user by its globally unique email. Used
	// only by the login flow, before any principal exists, so it is the
	// one read not scoped by company.
	GetUserByEmail(ctx context.Context, email string) (*api.User, error)

	// GetUser retrieves a user by id within the given company.
	GetUser(ctx context.Context, companyID, id string) (*api.User, error)

	// ListUsers lists all users of the given company.
	ListUsers(ctx context.Context, companyID string) ([]*api.User, error)

	// DeleteUser deletes a user by id within the given company.
	DeleteUser(ctx context.Context, companyID, id string) error
}

// PositionStore persists positions, always scoped by company.
type PositionStore interface {
	CreatePosition(ctx context.Context, pos *api.Position) error
	GetPosition(ctx context.Context, companyID, id string) (*api.Position, error)
	ListPositions(ctx context.Context, companyID string) ([]*api.Position, error)

	// UpdatePosition applies the non-nil fields of upd to the position
	// with the given id within the given company.
	UpdatePosition(ctx context.Context, companyID, id string, upd *api.PositionUpdate) (*api.Position, error)

	DeletePosition(ctx context.Context, companyID, id string) error
}

// ApplicantStore persists applicants. Applicants carry no company id of
// their own; scoping goes through the owning position, so every lookup
// conjoins the applicant id with the company of its position.
type ApplicantStore interface {
	CreateApplicant(ctx context.Context, app *api.Applicant) error
	GetApplicant(ctx context.Context, companyID, id string) (*api.Applicant, error)

	// ListApplicants lists applicants across the company's positions,
	// newest first. A non-empty positionID narrows to one position.
	ListApplicants(ctx context.Context, companyID, positionID string) ([]*api.Applicant, error)

	UpdateApplicantStatus(ctx context.Context, companyID, id string, status api.ApplicantStatus) (*api.Applicant, error)
	UpdateApplicantNotes(ctx context.Context, companyID, id string, notes string) (*api.Applicant, error)
	DeleteApplicant(ctx context.Context, companyID, id string) error
}

// Store aggregates all entity stores. Both adapters implement it.
type Store interface {
	TenantStore
	UserStore
	PositionStore
	ApplicantStore
}
