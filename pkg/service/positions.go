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

// PositionService manages the job positions of a company. Every operation
// is confined to the principal's own company.
type PositionService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewPositionService creates a PositionService.
func NewPositionService(store storage.Store, logger *slog.Logger) *PositionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PositionService{store: store, logger: logger}
}

// Create opens a position under the principal's company. Company and
// creator are taken from the principal, never from input.
func (s *PositionService) Create(ctx context.Context, p auth.Principal, req *api.CreatePositionRequest) (*api.Position, error) {
	if apiErr := api.ValidateCreatePositionRequest(req); apiErr != nil {
		return nil, apiErr
	}

	now := time.Now().UTC()
	pos := &api.Position{
		ID:          api.NewPositionID(),
		Title:       req.Title,
		Location:    req.Location,
		Type:        req.Type,
		Description: req.Description,
		Salary:      req.Salary,
		IsActive:    true,
		CompanyID:   p.CompanyID,
		CreatedByID: p.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreatePosition(ctx, pos); err != nil {
		s.logger.Error("position creation failed", "error", err)
		return nil, api.NewServerError("internal error")
	}

	s.logger.Info("position created", "position_id", pos.ID, "company_id", p.CompanyID)
	return pos, nil
}

// List returns the positions of the principal's company.
func (s *PositionService) List(ctx context.Context, p auth.Principal) ([]*api.Position, error) {
	positions, err := s.store.ListPositions(ctx, p.CompanyID)
	if err != nil {
		s.logger.Error("position listing failed", "error", err)
		return nil, api.NewServerError("internal error")
	}
	return positions, nil
}

// Get returns one position of the principal's company.
func (s *PositionService) Get(ctx context.Context, p auth.Principal, id string) (*api.Position, error) {
	pos, err := s.store.GetPosition(ctx, p.CompanyID, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, api.NewNotFoundError("position not found")
		}
		s.logger.Error("position lookup failed", "error", err)
		return nil, api.NewServerError("internal error")
	}
	return pos, nil
}

// Update applies the non-nil fields of upd to a position of the
// principal's company.
func (s *PositionService) Update(ctx context.Context, p auth.Principal, id string, upd *api.PositionUpdate) (*api.Position, error) {
	if upd.Salary != nil && *upd.Salary < 0 {
		return nil, api.NewInvalidRequestError("salary", "salary must not be negative")
	}

	pos, err := s.store.UpdatePosition(ctx, p.CompanyID, id, upd)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, api.NewNotFoundError("position not found")
		}
		s.logger.Error("position update failed", "error", err)
		return nil, api.NewServerError("internal error")
	}
	return pos, nil
}

// Delete removes a position of the principal's company, together with its
// applicants.
func (s *PositionService) Delete(ctx context.Context, p auth.Principal, id string) error {
	if err := s.store.DeletePosition(ctx, p.CompanyID, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return api.NewNotFoundError("position not found")
		}
		s.logger.Error("position deletion failed", "error", err)
		return api.NewServerError("internal error")
	}

	s.logger.Info("position deleted", "position_id", id, "company_id", p.CompanyID)
	return nil
}
