package api

import (
	"fmt"
	"net/mail"
	"strings"
)

// MinPasswordLength is the minimum accepted password length. The original
// deployments accepted shorter passwords; eight is the floor here.
const MinPasswordLength = 8

// ValidateRegisterRequest checks a RegisterRequest for shape validity.
// It returns an *APIError describing the first validation failure, or nil
// if the request is valid. Validation runs before any store access.
func ValidateRegisterRequest(req *RegisterRequest) *APIError {
	if strings.TrimSpace(req.CompanyName) == "" {
		return NewInvalidRequestError("company_name", "company_name is required")
	}
	if err := validateEmail(req.Email); err != nil {
		return err
	}
	if err := validatePassword(req.Password); err != nil {
		return err
	}
	if strings.TrimSpace(req.FullName) == "" {
		return NewInvalidRequestError("full_name", "full_name is required")
	}
	return nil
}

// ValidateLoginRequest checks a LoginRequest for shape validity.
func ValidateLoginRequest(req *LoginRequest) *APIError {
	if req.Email == "" {
		return NewInvalidRequestError("email", "email is required")
	}
	if req.Password == "" {
		return NewInvalidRequestError("password", "password is required")
	}
	return nil
}

// ValidateCreateUserRequest checks a CreateUserRequest for shape validity.
// An empty role is accepted and defaulted by the service; an unknown role
// is rejected here.
func ValidateCreateUserRequest(req *CreateUserRequest) *APIError {
	if err := validateEmail(req.Email); err != nil {
		return err
	}
	if err := validatePassword(req.Password); err != nil {
		return err
	}
	if strings.TrimSpace(req.FullName) == "" {
		return NewInvalidRequestError("full_name", "full_name is required")
	}
	if req.Role != "" && !req.Role.Valid() {
		return NewInvalidRequestError("role",
			fmt.Sprintf("role must be %q or %q", RoleAdmin, RoleRecruiter))
	}
	return nil
}

// ValidateCreatePositionRequest checks a CreatePositionRequest.
func ValidateCreatePositionRequest(req *CreatePositionRequest) *APIError {
	if strings.TrimSpace(req.Title) == "" {
		return NewInvalidRequestError("title", "title is required")
	}
	if req.Salary < 0 {
		return NewInvalidRequestError("salary", "salary must not be negative")
	}
	return nil
}

// ValidateCreateApplicantRequest checks a CreateApplicantRequest.
func ValidateCreateApplicantRequest(req *CreateApplicantRequest) *APIError {
	if req.PositionID == "" {
		return NewInvalidRequestError("position_id", "position_id is required")
	}
	if strings.TrimSpace(req.FullName) == "" {
		return NewInvalidRequestError("full_name", "full_name is required")
	}
	if err := validateEmail(req.Email); err != nil {
		return err
	}
	if req.Phone == "" {
		return NewInvalidRequestError("phone", "phone is required")
	}
	if req.Experience < 0 {
		return NewInvalidRequestError("experience", "experience must not be negative")
	}
	return nil
}

func validateEmail(email string) *APIError {
	if email == "" {
		return NewInvalidRequestError("email", "email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return NewInvalidRequestError("email", "email is not a valid address")
	}
	return nil
}

func validatePassword(password string) *APIError {
	if password == "" {
		return NewInvalidRequestError("password", "password is required")
	}
	if len(password) < MinPasswordLength {
		return NewInvalidRequestError("password",
			fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	return nil
}
