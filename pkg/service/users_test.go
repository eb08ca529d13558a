package service

import (
	"context"
	"testing"

	"github.com/talentgate/talentgate/pkg/api"
	"github.com/talentgate/talentgate/pkg/auth"
)

func TestUserCreate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	reg := env.register(t, "Acme", "admin@acme.test")
	admin := principalOf(reg)

	profile, err := env.users.Create(ctx, admin, &api.CreateUserRequest{
		Email:    "rec@acme.test",
		Password: "hunter2hunter2",
		FullName: "Rae Recruiter",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	if profile.Role != api.RoleRecruiter {
		t.Errorf("empty role should default to RECRUITER, got %q", profile.Role)
	}
	if profile.CompanyID != admin.CompanyID {
		t.Errorf("user should land in the admin's company, got %q", profile.CompanyID)
	}

	// The new user can log in.
	if _, err := env.auth.Login(ctx, &api.LoginRequest{
		Email:    "rec@acme.test",
		Password: "hunter2hunter2",
	}); err != nil {
		t.Errorf("new user login: %v", err)
	}
}

func TestUserCreateRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	reg := env.register(t, "Acme", "admin@acme.test")
	recruiter := auth.Principal{
		UserID:    api.NewUserID(),
		Role:      api.RoleRecruiter,
		CompanyID: reg.Company.ID,
	}

	_, err := env.users.Create(ctx, recruiter, &api.CreateUserRequest{
		Email:    "other@acme.test",
		Password: "hunter2hunter2",
		FullName: "Someone Else",
	})
	if err == nil {
		t.Fatal("expected error for non-admin caller")
	}
	if apiErr := apiErrorOf(t, err); apiErr.Type != api.ErrorTypeUnauthorized {
		t.Errorf("expected unauthorized, got %q", apiErr.Type)
	}

	// The role check runs before any write; nothing was created.
	if _, err := env.store.GetUserByEmail(ctx, "other@acme.test"); err == nil {
		t.Error("no user should exist after a role-rejected create")
	}
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	reg := env.register(t, "Acme", "admin@acme.test")
	admin := principalOf(reg)

	_, err := env.users.Create(ctx, admin, &api.CreateUserRequest{
		Email:    "admin@acme.test",
		Password: "hunter2hunter2",
		FullName: "Clone",
	})
	if err == nil {
		t.Fatal("expected error for duplicate email")
	}
	if apiErr := apiErrorOf(t, err); apiErr.Type != api.ErrorTypeAlreadyExists {
		t.Errorf("expected already_exists, got %q", apiErr.Type)
	}
}

func TestUserTenantIsolation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	acme := principalOf(env.register(t, "Acme", "admin@acme.test"))
	globex := principalOf(env.register(t, "Globex", "admin@globex.test"))

	// Each admin lists only its own company's users.
	acmeUsers, err := env.users.List(ctx, acme)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(acmeUsers) != 1 || acmeUsers[0].Email != "admin@acme.test" {
		t.Errorf("unexpected acme user list: %+v", acmeUsers)
	}

	// A user id from another company reads as not found, never as
	// "exists elsewhere".
	_, err = env.users.Get(ctx, globex, acme.UserID)
	if err == nil {
		t.Fatal("expected error for cross-tenant get")
	}
	if apiErr := apiErrorOf(t, err); apiErr.Type != api.ErrorTypeNotFound {
		t.Errorf("expected not_found, got %q", apiErr.Type)
	}

	// Same for delete, and the record survives.
	err = env.users.Delete(ctx, globex, acme.UserID)
	if apiErr := apiErrorOf(t, err); apiErr.Type != api.ErrorTypeNotFound {
		t.Errorf("expected not_found, got %q", apiErr.Type)
	}
	if _, err := env.users.Get(ctx, acme, acme.UserID); err != nil {
		t.Errorf("record should survive cross-tenant delete: %v", err)
	}
}

func TestUserDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := principalOf(env.register(t, "Acme", "admin@acme.test"))

	profile, err := env.users.Create(ctx, admin, &api.CreateUserRequest{
		Email:    "rec@acme.test",
		Password: "hunter2hunter2",
		FullName: "Rae Recruiter",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Deletion is admin-gated.
	recruiter := auth.Principal{UserID: profile.ID, Role: profile.Role, CompanyID: profile.CompanyID}
	err = env.users.Delete(ctx, recruiter, profile.ID)
	if apiErr := apiErrorOf(t, err); apiErr.Type != api.ErrorTypeUnauthorized {
		t.Errorf("expected unauthorized for recruiter delete, got %q", apiErr.Type)
	}

	if err := env.users.Delete(ctx, admin, profile.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if _, err := env.users.Get(ctx, admin, profile.ID); err == nil {
		t.Error("user should be gone")
	}
}
