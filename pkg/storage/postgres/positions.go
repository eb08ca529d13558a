package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/talentgate/talentgate/pkg/api"
	"github.com/talentgate/talentgate/pkg/storage"
)

const positionColumns = "id, title, location, type, description, salary, is_active, company_id, created_by_id, created_at, updated_at"

func scanPosition(row pgx.Row) (*api.Position, error) {
	var p api.Position
	err := row.Scan(&p.ID, &p.Title, &p.Location, &p.Type, &p.Description, &p.Salary,
		&p.IsActive, &p.CompanyID, &p.CreatedByID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePosition inserts a position.
func (s *Store) CreatePosition(ctx context.Context, pos *api.Position) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO positions (id, title, location, type, description, salary, is_active,
			company_id, created_by_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, pos.ID, pos.Title, pos.Location, pos.Type, pos.Description, pos.Salary, pos.IsActive,
		pos.CompanyID, pos.CreatedByID, pos.CreatedAt, pos.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("inserting position: %w", err)
	}
	return nil
}

// GetPosition retrieves a position by id within the given company.
func (s *Store) GetPosition(ctx context.Context, companyID, id string) (*api.Position, error) {
	p, err := scanPosition(s.pool.QueryRow(ctx,
		"SELECT "+positionColumns+" FROM positions WHERE id = $1 AND company_id = $2", id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("selecting position: %w", err)
	}
	return p, nil
}

// ListPositions lists the positions of the given company, oldest first.
func (s *Store) ListPositions(ctx context.Context, companyID string) ([]*api.Position, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+positionColumns+" FROM positions WHERE company_id = $1 ORDER BY created_at", companyID)
	if err != nil {
		return nil, fmt.Errorf("listing positions: %w", err)
	}
	defer rows.Close()

	var out []*api.Position
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning position: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating positions: %w", err)
	}
	return out, nil
}

// UpdatePosition applies the non-nil fields of upd. COALESCE keeps the
// stored value for absent fields; the predicate conjoins id and company.
func (s *Store) UpdatePosition(ctx context.Context, companyID, id string, upd *api.PositionUpdate) (*api.Position, error) {
	p, err := scanPosition(s.pool.QueryRow(ctx, `
		UPDATE positions SET
			title       = COALESCE($3, title),
			location    = COALESCE($4, location),
			type        = COALESCE($5, type),
			description = COALESCE($6, description),
			salary      = COALESCE($7, salary),
			is_active   = COALESCE($8, is_active),
			updated_at  = now()
		WHERE id = $1 AND company_id = $2
		RETURNING `+positionColumns,
		id, companyID, upd.Title, upd.Location, upd.Type, upd.Description, upd.Salary, upd.IsActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("updating position: %w", err)
	}
	return p, nil
}

// DeletePosition deletes a position within the given company. Applicants
// of the position go with it (ON DELETE CASCADE).
func (s *Store) DeletePosition(ctx context.Context, companyID, id string) error {
	tag, err := s.pool.Exec(ctx,
		"DELETE FROM positions WHERE id = $1 AND company_id = $2", id, companyID)
	if err != nil {
		return fmt.Errorf("deleting position: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
