package api

// RegisterRequest onboards a new tenant: one company plus its first user,
// who becomes the company ADMIN.
type RegisterRequest struct {
	CompanyName string `json:"company_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"full_name"`
	Phone       string `json:"phone"`
}

// RegisterResponse is returned on successful registration.
type RegisterResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *UserProfile `json:"user"`
	Company *Company     `json:"company"`
}

// LoginRequest authenticates an existing user.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful login. The user projection never
// includes the password digest.
type LoginResponse struct {
	Token string       `json:"token"`
	User  *UserProfile `json:"user"`
}

// CreateUserRequest adds a user to the caller's company. Role defaults to
// RECRUITER when empty. The company is always the caller's own; there is
// no field for it.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role"`
}

// CreatePositionRequest opens a position under the caller's company.
type CreatePositionRequest struct {
	Title       string `json:"title"`
	Location    string `json:"location"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Salary      int64  `json:"salary"`
}

// CreateApplicantRequest records a candidate against one of the caller's
// positions. The position must belong to the caller's company.
type CreateApplicantRequest struct {
	PositionID string `json:"position_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Education  string `json:"education"`
	Experience int    `json:"experience"`
	ResumeURL  string `json:"resume_url"`
}

// UpdateApplicantStatusRequest moves an applicant to another pipeline stage.
type UpdateApplicantStatusRequest struct {
	Status ApplicantStatus `json:"status"`
}

// UpdateApplicantNotesRequest replaces the free-form notes on an applicant.
type UpdateApplicantNotesRequest struct {
	Notes string `json:"notes"`
}
