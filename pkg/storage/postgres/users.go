package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/talentgate/talentgate/pkg/api"
	"github.com/talentgate/talentgate/pkg/storage"
)

const userColumns = "id, email, password_hash, full_name, role, company_id, created_at, updated_at"

func scanUser(row pgx.Row) (*api.User, error) {
	var u api.User
	var role string
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &role,
		&u.CompanyID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Role = api.Role(role)
	return &u, nil
}

// CreateUser inserts a user. The unique index on email is the authority
// for global uniqueness; a losing concurrent insert reports ErrConflict.
func (s *Store) CreateUser(ctx context.Context, user *api.User) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, full_name, role, company_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, user.ID, user.Email, user.PasswordHash, user.FullName, string(user.Role),
		user.CompanyID, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves a user by its globally unique email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*api.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1", email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("selecting user by email: %w", err)
	}
	return u, nil
}

// GetUser retrieves a user by id within the given company.
func (s *Store) GetUser(ctx context.Context, companyID, id string) (*api.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1 AND company_id = $2", id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("selecting user: %w", err)
	}
	return u, nil
}

// ListUsers lists the users of the given company, oldest first.
func (s *Store) ListUsers(ctx context.Context, companyID string) ([]*api.User, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+userColumns+" FROM users WHERE company_id = $1 ORDER BY created_at", companyID)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var out []*api.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return out, nil
}

// DeleteUser deletes a user by id within the given company.
func (s *Store) DeleteUser(ctx context.Context, companyID, id string) error {
	tag, err := s.pool.Exec(ctx,
		"DELETE FROM users WHERE id = $1 AND company_id = $2", id, companyID)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
