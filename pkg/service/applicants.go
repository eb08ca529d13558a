package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/talentgate/talentgate/pkg/api"
	"github.com/talentgate/talentgate/pkg/auth"
	"github.com/talentgate/talentgate/pkg/storage"
)

// ApplicantService manages the applicants of a company's positions.
// Applicants carry no company id; tenancy flows through the owning
// position, and every operation here is scoped by the principal's company
// the same way position operations are.
type ApplicantService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewApplicantService creates an ApplicantService.
func NewApplicantService(store storage.Store, logger *slog.Logger) *ApplicantService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ApplicantService{store: store, logger: logger}
}

// Create records an applicant against one of the principal's positions.
// The position lookup is scoped by the principal's company, so a position
// under a foreign tenant reports not_found before anything is written.
func (s *ApplicantService) Create(ctx context.Context, p auth.Principal, req *api.CreateApplicantRequest) (*api.Applicant, error) {
	if apiErr := api.ValidateCreateApplicantRequest(req); apiErr != nil {
		return nil, apiErr
	}

	if _, err := s.store.GetPosition(ctx, p.CompanyID, req.PositionID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, api.NewNotFoundError("position not found")
		}
		s.logger.Error("position lookup failed", "error", err)
		return nil, api.NewServerError("internal error")
	}

	now := time.Now().UTC()
	app := &api.Applicant{
		ID:         api.NewApplicantID(),
		PositionID: req.PositionID,
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		Education:  req.Education,
		Experience: req.Experience,
		ResumeURL:  req.ResumeURL,
		Status:     api.ApplicantStatusApplied,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.store.CreateApplicant(ctx, app); err != nil {
		s.logger.Error("applicant creation failed", "error", err)
		return nil, api.NewServerError("internal error")
	}

	s.logger.Info("applicant created",
		"applicant_id", app.ID,
		"position_id", app.PositionID,
		"company_id", p.CompanyID,
	)
	return app, nil
}

// List returns applicants across the principal's positions, newest first.
// A non-empty positionID narrows to one position; a foreign positionID
// simply matches nothing.
func (s *ApplicantService) List(ctx context.Context, p auth.Principal, positionID string) ([]*api.Applicant, error) {
	applicants, err := s.store.ListApplicants(ctx, p.CompanyID, positionID)
	if err != nil {
		s.logger.Error("applicant listing failed", "error", err)
		return nil, api.NewServerError("internal error")
	}
	return applicants, nil
}

// Get returns one applicant of the principal's company.
func (s *ApplicantService) Get(ctx context.Context, p auth.Principal, id string) (*api.Applicant, error) {
	app, err := s.store.GetApplicant(ctx, p.CompanyID, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, api.NewNotFoundError("applicant not found")
		}
		s.logger.Error("applicant lookup failed", "error", err)
		return nil, api.NewServerError("internal error")
	}
	return app, nil
}

// UpdateStatus moves an applicant of the principal's company to another
// pipeline stage.
func (s *ApplicantService) UpdateStatus(ctx context.Context, p auth.Principal, id string, status api.ApplicantStatus) (*api.Applicant, error) {
	if !status.Valid() {
		return nil, api.NewInvalidRequestError("status", "invalid status value")
	}

	app, err := s.store.UpdateApplicantStatus(ctx, p.CompanyID, id, status)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, api.NewNotFoundError("applicant not found")
		}
		s.logger.Error("applicant status update failed", "error", err)
		return nil, api.NewServerError("internal error")
	}
	return app, nil
}

// UpdateNotes replaces the notes on an applicant of the principal's company.
func (s *ApplicantService) UpdateNotes(ctx context.Context, p auth.Principal, id string, notes string) (*api.Applicant, error) {
	app, err := s.store.UpdateApplicantNotes(ctx, p.CompanyID, id, notes)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, api.NewNotFoundError("applicant not found")
		}
		s.logger.Error("applicant notes update failed", "error", err)
		return nil, api.NewServerError("internal error")
	}
	return app, nil
}

// Delete removes an applicant of the principal's company.
func (s *ApplicantService) Delete(ctx context.Context, p auth.Principal, id string) error {
	if err := s.store.DeleteApplicant(ctx, p.CompanyID, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return api.NewNotFoundError("applicant not found")
		}
		s.logger.Error("applicant deletion failed", "error", err)
		return api.NewServerError("internal error")
	}

	s.logger.Info("applicant deleted", "applicant_id", id, "company_id", p.CompanyID)
	return nil
}
