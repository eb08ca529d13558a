package api

import "time"

// Role is the coarse authorization role of a user within its company.
type Role string

const (
	// RoleAdmin may manage users in addition to positions and applicants.
	RoleAdmin Role = "ADMIN"

	// RoleRecruiter may manage positions and applicants but not users.
	RoleRecruiter Role = "RECRUITER"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleRecruiter
}

// Company is the tenant root. Every user, position, and applicant in the
// system is owned, directly or transitively, by exactly one company.
type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// User is a principal record. Email is unique across the whole system,
// not just within a company. CompanyID is immutable after creation.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Role         Role      `json:"role"`
	CompanyID    string    `json:"company_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile returns the public projection of the user. The password digest
// never leaves the storage and service layers.
func (u *User) Profile() *UserProfile {
	return &UserProfile{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		CompanyID: u.CompanyID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UserProfile is the client-visible view of a user.
type UserProfile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      Role      `json:"role"`
	CompanyID string    `json:"company_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Position is a job opening owned by a company.
type Position struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Salary      int64     `json:"salary"`
	IsActive    bool      `json:"is_active"`
	CompanyID   string    `json:"company_id"`
	CreatedByID string    `json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PositionUpdate carries the mutable fields of a position. Nil fields are
// left unchanged. CompanyID and CreatedByID are deliberately absent: they
// are fixed at creation from the caller's principal.
type PositionUpdate struct {
	Title       *string `json:"title,omitempty"`
	Location    *string `json:"location,omitempty"`
	Type        *string `json:"type,omitempty"`
	Description *string `json:"description,omitempty"`
	Salary      *int64  `json:"salary,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// ApplicantStatus tracks an applicant through the hiring pipeline.
type ApplicantStatus string

const (
	ApplicantStatusApplied   ApplicantStatus = "APPLIED"
	ApplicantStatusScreening ApplicantStatus = "SCREENING"
	ApplicantStatusInterview ApplicantStatus = "INTERVIEW"
	ApplicantStatusOffer     ApplicantStatus = "OFFER"
	ApplicantStatusHired     ApplicantStatus = "HIRED"
	ApplicantStatusRejected  ApplicantStatus = "REJECTED"
)

// Valid reports whether the status is one of the known pipeline stages.
func (s ApplicantStatus) Valid() bool {
	switch s {
	case ApplicantStatusApplied, ApplicantStatusScreening, ApplicantStatusInterview,
		ApplicantStatusOffer, ApplicantStatusHired, ApplicantStatusRejected:
		return true
	}
	return false
}

// Applicant is a candidate who applied to a position. An applicant has no
// company id of its own: tenancy is derived from the owning position, and
// every applicant lookup is scoped through that position's company.
type Applicant struct {
	ID         string          `json:"id"`
	PositionID string          `json:"position_id"`
	FullName   string          `json:"full_name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Education  string          `json:"education"`
	Experience int             `json:"experience"`
	ResumeURL  string          `json:"resume_url"`
	Status     ApplicantStatus `json:"status"`
	Notes      string          `json:"notes"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
