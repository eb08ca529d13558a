package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/talentgate/talentgate/pkg/api"
	"github.com/talentgate/talentgate/pkg/storage"
)

const applicantColumns = "a.id, a.position_id, a.full_name, a.email, a.phone, a.education, a.experience, a.resume_url, a.status, a.notes, a.created_at, a.updated_at"

func scanApplicant(row pgx.Row) (*api.Applicant, error) {
	var a api.Applicant
	var status string
	err := row.Scan(&a.ID, &a.PositionID, &a.FullName, &a.Email, &a.Phone, &a.Education,
		&a.Experience, &a.ResumeURL, &status, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.Status = api.ApplicantStatus(status)
	return &a, nil
}

// CreateApplicant inserts an applicant.
func (s *Store) CreateApplicant(ctx context.Context, app *api.Applicant) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO applicants (id, position_id, full_name, email, phone, education,
			experience, resume_url, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, app.ID, app.PositionID, app.FullName, app.Email, app.Phone, app.Education,
		app.Experience, app.ResumeURL, string(app.Status), app.Notes, app.CreatedAt, app.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("inserting applicant: %w", err)
	}
	return nil
}

// GetApplicant retrieves an applicant whose owning position belongs to the
// given company. The join is the tenancy predicate: an applicant under a
// foreign company's position is indistinguishable from a missing one.
func (s *Store) GetApplicant(ctx context.Context, companyID, id string) (*api.Applicant, error) {
	a, err := scanApplicant(s.pool.QueryRow(ctx, `
		SELECT `+applicantColumns+`
		FROM applicants a
		JOIN positions p ON p.id = a.position_id
		WHERE a.id = $1 AND p.company_id = $2
	`, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("selecting applicant: %w", err)
	}
	return a, nil
}

// ListApplicants lists applicants across the company's positions, newest
// first. A non-empty positionID narrows to one position.
func (s *Store) ListApplicants(ctx context.Context, companyID, positionID string) ([]*api.Applicant, error) {
	query := `
		SELECT ` + applicantColumns + `
		FROM applicants a
		JOIN positions p ON p.id = a.position_id
		WHERE p.company_id = $1
	`
	args := []any{companyID}
	if positionID != "" {
		query += " AND a.position_id = $2"
		args = append(args, positionID)
	}
	query += " ORDER BY a.created_at DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing applicants: %w", err)
	}
	defer rows.Close()

	var out []*api.Applicant
	for rows.Next() {
		a, err := scanApplicant(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning applicant: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating applicants: %w", err)
	}
	return out, nil
}

// UpdateApplicantStatus moves a company-owned applicant to a new stage.
func (s *Store) UpdateApplicantStatus(ctx context.Context, companyID, id string, status api.ApplicantStatus) (*api.Applicant, error) {
	return s.updateApplicant(ctx, companyID, id, "status", string(status))
}

// UpdateApplicantNotes replaces the notes on a company-owned applicant.
func (s *Store) UpdateApplicantNotes(ctx context.Context, companyID, id string, notes string) (*api.Applicant, error) {
	return s.updateApplicant(ctx, companyID, id, "notes", notes)
}

// updateApplicant sets one column on an applicant, scoped through the
// owning position's company. The column name comes from a fixed caller
// set, never from input.
func (s *Store) updateApplicant(ctx context.Context, companyID, id, column, value string) (*api.Applicant, error) {
	a, err := scanApplicant(s.pool.QueryRow(ctx, `
		UPDATE applicants a SET `+column+` = $3, updated_at = now()
		FROM positions p
		WHERE a.id = $1 AND p.id = a.position_id AND p.company_id = $2
		RETURNING `+applicantColumns,
		id, companyID, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("updating applicant %s: %w", column, err)
	}
	return a, nil
}

// DeleteApplicant removes a company-owned applicant.
func (s *Store) DeleteApplicant(ctx context.Context, companyID, id string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM applicants a
		USING positions p
		WHERE a.id = $1 AND p.id = a.position_id AND p.company_id = $2
	`, id, companyID)
	if err != nil {
		return fmt.Errorf("deleting applicant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
