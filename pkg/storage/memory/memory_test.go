package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/talentgate/talentgate/pkg/api"
	"github.com/talentgate/talentgate/pkg/storage"
)

func newCompany(name string) *api.Company {
	now := time.Now().UTC()
	return &api.Company{
		ID:        api.NewCompanyID(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newUser(companyID, email string, role api.Role) *api.User {
	now := time.Now().UTC()
	return &api.User{
		ID:           api.NewUserID(),
		Email:        email,
		PasswordHash: "$2a$04$digest",
		FullName:     "Test User",
		Role:         role,
		CompanyID:    companyID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func newPosition(companyID, createdByID, title string) *api.Position {
	now := time.Now().UTC()
	return &api.Position{
		ID:          api.NewPositionID(),
		Title:       title,
		IsActive:    true,
		CompanyID:   companyID,
		CreatedByID: createdByID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func newApplicant(positionID, email string) *api.Applicant {
	now := time.Now().UTC()
	return &api.Applicant{
		ID:         api.NewApplicantID(),
		PositionID: positionID,
		FullName:   "Cam Candidate",
		Email:      email,
		Phone:      "+1-555-0100",
		Status:     api.ApplicantStatusApplied,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// seedTenant creates a company with one admin and returns both.
func seedTenant(t *testing.T, s *Store, name, email string) (*api.Company, *api.User) {
	t.Helper()
	company := newCompany(name)
	admin := newUser(company.ID, email, api.RoleAdmin)
	if err := s.CreateTenant(context.Background(), company, admin); err != nil {
		t.Fatalf("seeding tenant %s: %v", name, err)
	}
	return company, admin
}

func TestCreateTenant(t *testing.T) {
	s := New()
	ctx := context.Background()

	company, admin := seedTenant(t, s, "Acme", "admin@acme.test")

	got, err := s.GetCompany(ctx, company.ID)
	if err != nil {
		t.Fatalf("get company: %v", err)
	}
	if got.Name != "Acme" {
		t.Errorf("company name: got %q", got.Name)
	}

	u, err := s.GetUserByEmail(ctx, "admin@acme.test")
	if err != nil {
		t.Fatalf("get user by email: %v", err)
	}
	if u.ID != admin.ID || u.Role != api.RoleAdmin {
		t.Errorf("unexpected admin record: %+v", u)
	}
}

func TestCreateTenantDuplicateEmail(t *testing.T) {
	s := New()
	ctx := context.Background()

	seedTenant(t, s, "Acme", "admin@acme.test")

	dup := newCompany("Imposter Inc")
	dupAdmin := newUser(dup.ID, "admin@acme.test", api.RoleAdmin)
	err := s.CreateTenant(ctx, dup, dupAdmin)
	if !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// The losing company record must not remain.
	if _, err := s.GetCompany(ctx, dup.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("orphaned company after failed registration: %v", err)
	}
}

func TestCreateTenantConcurrent(t *testing.T) {
	s := New()
	ctx := context.Background()

	const attempts = 20
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			company := newCompany("Racer")
			admin := newUser(company.ID, "race@acme.test", api.RoleAdmin)
			errs[i] = s.CreateTenant(ctx, company, admin)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		switch {
		case err == nil:
			winners++
		case errors.Is(err, storage.ErrConflict):
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if winners != 1 {
		t.Errorf("expected exactly 1 winning registration, got %d", winners)
	}
}

func TestUserScoping(t *testing.T) {
	s := New()
	ctx := context.Background()

	acme, acmeAdmin := seedTenant(t, s, "Acme", "admin@acme.test")
	globex, _ := seedTenant(t, s, "Globex", "admin@globex.test")

	// Lookup under the right company succeeds.
	if _, err := s.GetUser(ctx, acme.ID, acmeAdmin.ID); err != nil {
		t.Fatalf("in-tenant get: %v", err)
	}

	// The same id under a foreign company is indistinguishable from absent.
	if _, err := s.GetUser(ctx, globex.ID, acmeAdmin.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("cross-tenant get: expected ErrNotFound, got %v", err)
	}

	// Listing is confined to the company.
	users, err := s.ListUsers(ctx, acme.ID)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 1 || users[0].ID != acmeAdmin.ID {
		t.Errorf("unexpected user list: %+v", users)
	}

	// Cross-tenant delete must not remove the record.
	if err := s.DeleteUser(ctx, globex.ID, acmeAdmin.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("cross-tenant delete: expected ErrNotFound, got %v", err)
	}
	if _, err := s.GetUser(ctx, acme.ID, acmeAdmin.ID); err != nil {
		t.Errorf("record should survive cross-tenant delete: %v", err)
	}
}

func TestCreateUserDuplicateEmailAcrossCompanies(t *testing.T) {
	s := New()
	ctx := context.Background()

	seedTenant(t, s, "Acme", "shared@example.test")
	globex, _ := seedTenant(t, s, "Globex", "admin@globex.test")

	// Email uniqueness is global, not per company.
	err := s.CreateUser(ctx, newUser(globex.ID, "shared@example.test", api.RoleRecruiter))
	if !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate email, got %v", err)
	}
}

func TestDeleteUserFreesEmail(t *testing.T) {
	s := New()
	ctx := context.Background()

	acme, _ := seedTenant(t, s, "Acme", "admin@acme.test")
	rec := newUser(acme.ID, "rec@acme.test", api.RoleRecruiter)
	if err := s.CreateUser(ctx, rec); err != nil {
		t.Fatalf("create user: %v", err)
	}

	if err := s.DeleteUser(ctx, acme.ID, rec.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	// The email can be reused after deletion.
	if err := s.CreateUser(ctx, newUser(acme.ID, "rec@acme.test", api.RoleRecruiter)); err != nil {
		t.Errorf("email should be free after delete: %v", err)
	}
}

func TestPositionCRUD(t *testing.T) {
	s := New()
	ctx := context.Background()

	acme, admin := seedTenant(t, s, "Acme", "admin@acme.test")
	globex, _ := seedTenant(t, s, "Globex", "admin@globex.test")

	pos := newPosition(acme.ID, admin.ID, "Backend Engineer")
	if err := s.CreatePosition(ctx, pos); err != nil {
		t.Fatalf("create position: %v", err)
	}

	got, err := s.GetPosition(ctx, acme.ID, pos.ID)
	if err != nil {
		t.Fatalf("get position: %v", err)
	}
	if got.Title != "Backend Engineer" || !got.IsActive {
		t.Errorf("unexpected position: %+v", got)
	}

	if _, err := s.GetPosition(ctx, globex.ID, pos.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("cross-tenant get: expected ErrNotFound, got %v", err)
	}

	// Partial update touches only the non-nil fields.
	title := "Senior Backend Engineer"
	active := false
	updated, err := s.UpdatePosition(ctx, acme.ID, pos.ID, &api.PositionUpdate{
		Title:    &title,
		IsActive: &active,
	})
	if err != nil {
		t.Fatalf("update position: %v", err)
	}
	if updated.Title != title || updated.IsActive {
		t.Errorf("update not applied: %+v", updated)
	}
	if updated.Salary != pos.Salary || updated.Location != pos.Location {
		t.Errorf("untouched fields changed: %+v", updated)
	}

	if _, err := s.UpdatePosition(ctx, globex.ID, pos.ID, &api.PositionUpdate{Title: &title}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("cross-tenant update: expected ErrNotFound, got %v", err)
	}

	if err := s.DeletePosition(ctx, acme.ID, pos.ID); err != nil {
		t.Fatalf("delete position: %v", err)
	}
	if _, err := s.GetPosition(ctx, acme.ID, pos.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("position should be gone, got %v", err)
	}
}

func TestApplicantScoping(t *testing.T) {
	s := New()
	ctx := context.Background()

	acme, acmeAdmin := seedTenant(t, s, "Acme", "admin@acme.test")
	globex, globexAdmin := seedTenant(t, s, "Globex", "admin@globex.test")

	acmePos := newPosition(acme.ID, acmeAdmin.ID, "Engineer")
	globexPos := newPosition(globex.ID, globexAdmin.ID, "Designer")
	if err := s.CreatePosition(ctx, acmePos); err != nil {
		t.Fatalf("create position: %v", err)
	}
	if err := s.CreatePosition(ctx, globexPos); err != nil {
		t.Fatalf("create position: %v", err)
	}

	app := newApplicant(acmePos.ID, "cam@example.test")
	if err := s.CreateApplicant(ctx, app); err != nil {
		t.Fatalf("create applicant: %v", err)
	}

	// Tenancy flows through the owning position.
	if _, err := s.GetApplicant(ctx, acme.ID, app.ID); err != nil {
		t.Fatalf("in-tenant get: %v", err)
	}
	if _, err := s.GetApplicant(ctx, globex.ID, app.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("cross-tenant get: expected ErrNotFound, got %v", err)
	}

	// Status and notes updates are scoped the same way.
	if _, err := s.UpdateApplicantStatus(ctx, globex.ID, app.ID, api.ApplicantStatusHired); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("cross-tenant status update: expected ErrNotFound, got %v", err)
	}
	got, err := s.UpdateApplicantStatus(ctx, acme.ID, app.ID, api.ApplicantStatusInterview)
	if err != nil {
		t.Fatalf("status update: %v", err)
	}
	if got.Status != api.ApplicantStatusInterview {
		t.Errorf("status: got %q", got.Status)
	}

	got, err = s.UpdateApplicantNotes(ctx, acme.ID, app.ID, "strong systems background")
	if err != nil {
		t.Fatalf("notes update: %v", err)
	}
	if got.Notes != "strong systems background" {
		t.Errorf("notes: got %q", got.Notes)
	}

	if err := s.DeleteApplicant(ctx, globex.ID, app.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("cross-tenant delete: expected ErrNotFound, got %v", err)
	}
	if err := s.DeleteApplicant(ctx, acme.ID, app.ID); err != nil {
		t.Fatalf("delete applicant: %v", err)
	}
}

func TestListApplicants(t *testing.T) {
	s := New()
	ctx := context.Background()

	acme, admin := seedTenant(t, s, "Acme", "admin@acme.test")
	pos1 := newPosition(acme.ID, admin.ID, "Engineer")
	pos2 := newPosition(acme.ID, admin.ID, "Designer")
	if err := s.CreatePosition(ctx, pos1); err != nil {
		t.Fatal(err)
	}
	if err := s.CreatePosition(ctx, pos2); err != nil {
		t.Fatal(err)
	}

	a1 := newApplicant(pos1.ID, "a1@example.test")
	a1.CreatedAt = time.Now().Add(-2 * time.Hour)
	a2 := newApplicant(pos1.ID, "a2@example.test")
	a2.CreatedAt = time.Now().Add(-1 * time.Hour)
	a3 := newApplicant(pos2.ID, "a3@example.test")
	for _, a := range []*api.Applicant{a1, a2, a3} {
		if err := s.CreateApplicant(ctx, a); err != nil {
			t.Fatalf("create applicant: %v", err)
		}
	}

	all, err := s.ListApplicants(ctx, acme.ID, "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 applicants, got %d", len(all))
	}

	// Newest first.
	for i := 1; i < len(all); i++ {
		if all[i-1].CreatedAt.Before(all[i].CreatedAt) {
			t.Errorf("applicants not ordered newest first: %v before %v",
				all[i-1].CreatedAt, all[i].CreatedAt)
		}
	}

	// Narrowed to one position.
	filtered, err := s.ListApplicants(ctx, acme.ID, pos1.ID)
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(filtered) != 2 {
		t.Errorf("expected 2 applicants for pos1, got %d", len(filtered))
	}
}

func TestDeletePositionCascades(t *testing.T) {
	s := New()
	ctx := context.Background()

	acme, admin := seedTenant(t, s, "Acme", "admin@acme.test")
	pos := newPosition(acme.ID, admin.ID, "Engineer")
	if err := s.CreatePosition(ctx, pos); err != nil {
		t.Fatal(err)
	}
	app := newApplicant(pos.ID, "cam@example.test")
	if err := s.CreateApplicant(ctx, app); err != nil {
		t.Fatal(err)
	}

	if err := s.DeletePosition(ctx, acme.ID, pos.ID); err != nil {
		t.Fatalf("delete position: %v", err)
	}

	if _, err := s.GetApplicant(ctx, acme.ID, app.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("applicant should be gone with its position, got %v", err)
	}
}

func TestGetReturnsCopies(t *testing.T) {
	s := New()
	ctx := context.Background()

	acme, admin := seedTenant(t, s, "Acme", "admin@acme.test")

	got, err := s.GetUser(ctx, acme.ID, admin.ID)
	if err != nil {
		t.Fatal(err)
	}
	got.FullName = "Mutated Elsewhere"

	again, err := s.GetUser(ctx, acme.ID, admin.ID)
	if err != nil {
		t.Fatal(err)
	}
	if again.FullName == "Mutated Elsewhere" {
		t.Error("mutating a returned record must not affect the store")
	}
}
