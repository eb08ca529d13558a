// Package memory provides an in-memory implementation of storage.Store for
// testing and lightweight deployments. Data is lost when the process
// restarts.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/talentgate/talentgate/pkg/api"
	"github.com/talentgate/talentgate/pkg/storage"
)

// Store is an in-memory storage.Store guarded by a single mutex. The email
// uniqueness check runs under the same lock as the insert, mirroring the
// unique-constraint authority of the postgres adapter.
type Store struct {
	mu         sync.RWMutex
	companies  map[string]*api.Company
	users      map[string]*api.User
	emailIndex map[string]string // email -> user id
	positions  map[string]*api.Position
	applicants map[string]*api.Applicant
}

// Ensure Store implements storage.Store at compile time.
var _ storage.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		companies:  make(map[string]*api.Company),
		users:      make(map[string]*api.User),
		emailIndex: make(map[string]string),
		positions:  make(map[string]*api.Position),
		applicants: make(map[string]*api.Applicant),
	}
}

// CreateTenant atomically creates a company and its admin user. Under the
// lock either both records appear or neither does.
func (s *Store) CreateTenant(_ context.Context, company *api.Company, admin *api.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.emailIndex[admin.Email]; taken {
		return storage.ErrConflict
	}

	c := *company
	u := *admin
	s.companies[c.ID] = &c
	s.users[u.ID] = &u
	s.emailIndex[u.Email] = u.ID
	return nil
}

// GetCompany retrieves a company by id.
func (s *Store) GetCompany(_ context.Context, id string) (*api.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.companies[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := *c
	return &out, nil
}

// CreateUser inserts a user, enforcing global email uniqueness.
func (s *Store) CreateUser(_ context.Context, user *api.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.emailIndex[user.Email]; taken {
		return storage.ErrConflict
	}

	u := *user
	s.users[u.ID] = &u
	s.emailIndex[u.Email] = u.ID
	return nil
}

// GetUserByEmail retrieves a user by email, across all companies.
func (s *Store) GetUserByEmail(_ context.Context, email string) (*api.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emailIndex[email]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := *s.users[id]
	return &out, nil
}

// GetUser retrieves a user by id within the given company.
func (s *Store) GetUser(_ context.Context, companyID, id string) (*api.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok || u.CompanyID != companyID {
		return nil, storage.ErrNotFound
	}
	out := *u
	return &out, nil
}

// ListUsers lists the users of the given company, ordered by creation time.
func (s *Store) ListUsers(_ context.Context, companyID string) ([]*api.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*api.User
	for _, u := range s.users {
		if u.CompanyID == companyID {
			c := *u
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// DeleteUser deletes a user by id within the given company.
func (s *Store) DeleteUser(_ context.Context, companyID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok || u.CompanyID != companyID {
		return storage.ErrNotFound
	}
	delete(s.emailIndex, u.Email)
	delete(s.users, id)
	return nil
}

// CreatePosition inserts a position.
func (s *Store) CreatePosition(_ context.Context, pos *api.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.positions[pos.ID]; exists {
		return storage.ErrConflict
	}
	p := *pos
	s.positions[p.ID] = &p
	return nil
}

// GetPosition retrieves a position by id within the given company.
func (s *Store) GetPosition(_ context.Context, companyID, id string) (*api.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.positions[id]
	if !ok || p.CompanyID != companyID {
		return nil, storage.ErrNotFound
	}
	out := *p
	return &out, nil
}

// ListPositions lists the positions of the given company.
func (s *Store) ListPositions(_ context.Context, companyID string) ([]*api.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*api.Position
	for _, p := range s.positions {
		if p.CompanyID == companyID {
			c := *p
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// UpdatePosition applies the non-nil fields of upd within the given company.
func (s *Store) UpdatePosition(_ context.Context, companyID, id string, upd *api.PositionUpdate) (*api.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.positions[id]
	if !ok || p.CompanyID != companyID {
		return nil, storage.ErrNotFound
	}

	if upd.Title != nil {
		p.Title = *upd.Title
	}
	if upd.Location != nil {
		p.Location = *upd.Location
	}
	if upd.Type != nil {
		p.Type = *upd.Type
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Salary != nil {
		p.Salary = *upd.Salary
	}
	if upd.IsActive != nil {
		p.IsActive = *upd.IsActive
	}
	p.UpdatedAt = time.Now()

	out := *p
	return &out, nil
}

// DeletePosition deletes a position and its applicants within the company.
func (s *Store) DeletePosition(_ context.Context, companyID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.positions[id]
	if !ok || p.CompanyID != companyID {
		return storage.ErrNotFound
	}
	delete(s.positions, id)
	for aid, a := range s.applicants {
		if a.PositionID == id {
			delete(s.applicants, aid)
		}
	}
	return nil
}

// CreateApplicant inserts an applicant. The service layer has already
// verified the position belongs to the caller's company.
func (s *Store) CreateApplicant(_ context.Context, app *api.Applicant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.applicants[app.ID]; exists {
		return storage.ErrConflict
	}
	if _, ok := s.positions[app.PositionID]; !ok {
		return storage.ErrNotFound
	}
	a := *app
	s.applicants[a.ID] = &a
	return nil
}

// GetApplicant retrieves an applicant whose owning position belongs to the
// given company.
func (s *Store) GetApplicant(_ context.Context, companyID, id string) (*api.Applicant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a := s.applicantForCompany(companyID, id)
	if a == nil {
		return nil, storage.ErrNotFound
	}
	out := *a
	return &out, nil
}

// ListApplicants lists applicants across the company's positions, newest
// first, optionally narrowed to one position.
func (s *Store) ListApplicants(_ context.Context, companyID, positionID string) ([]*api.Applicant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*api.Applicant
	for _, a := range s.applicants {
		p, ok := s.positions[a.PositionID]
		if !ok || p.CompanyID != companyID {
			continue
		}
		if positionID != "" && a.PositionID != positionID {
			continue
		}
		c := *a
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// UpdateApplicantStatus moves a company-owned applicant to a new stage.
func (s *Store) UpdateApplicantStatus(_ context.Context, companyID, id string, status api.ApplicantStatus) (*api.Applicant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.applicantForCompany(companyID, id)
	if a == nil {
		return nil, storage.ErrNotFound
	}
	a.Status = status
	a.UpdatedAt = time.Now()
	out := *a
	return &out, nil
}

// UpdateApplicantNotes replaces the notes on a company-owned applicant.
func (s *Store) UpdateApplicantNotes(_ context.Context, companyID, id string, notes string) (*api.Applicant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.applicantForCompany(companyID, id)
	if a == nil {
		return nil, storage.ErrNotFound
	}
	a.Notes = notes
	a.UpdatedAt = time.Now()
	out := *a
	return &out, nil
}

// DeleteApplicant removes a company-owned applicant.
func (s *Store) DeleteApplicant(_ context.Context, companyID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.applicantForCompany(companyID, id)
	if a == nil {
		return storage.ErrNotFound
	}
	delete(s.applicants, a.ID)
	return nil
}

// applicantForCompany resolves an applicant through its owning position's
// company. Must be called with the lock held.
func (s *Store) applicantForCompany(companyID, id string) *api.Applicant {
	a, ok := s.applicants[id]
	if !ok {
		return nil
	}
	p, ok := s.positions[a.PositionID]
	if !ok || p.CompanyID != companyID {
		return nil
	}
	return a
}
