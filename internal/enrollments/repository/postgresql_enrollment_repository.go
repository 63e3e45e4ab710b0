// Package repository implements enrollment persistence for PostgreSQL and
// MySQL. Notes columns hold opaque encrypted values; decryption lives in the
// use case layer.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/healthdesk/healthinfo/internal/database"
	enrollmentsDomain "github.com/healthdesk/healthinfo/internal/enrollments/domain"
	apperrors "github.com/healthdesk/healthinfo/internal/errors"
)

// pgForeignKeyViolation is the PostgreSQL error code for foreign key violations.
const pgForeignKeyViolation = "23503"

// PostgreSQLEnrollmentRepository implements enrollment persistence for
// PostgreSQL. Uses native UUID types with transaction support via
// database.GetTx().
type PostgreSQLEnrollmentRepository struct {
	db *sql.DB
}

// Create inserts a new enrollment. Returns ErrRelatedNotFound when the client
// or program foreign key is violated.
func (p *PostgreSQLEnrollmentRepository) Create(ctx context.Context, record *enrollmentsDomain.EnrollmentRecord) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO enrollments (id, client_id, program_id, enrollment_date, status,
				  notes, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(
		ctx,
		query,
		record.ID,
		record.ClientID,
		record.ProgramID,
		record.EnrollmentDate,
		record.Status,
		record.Notes,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgForeignKeyViolation {
			return enrollmentsDomain.ErrRelatedNotFound
		}
		return apperrors.Wrap(err, "failed to create enrollment")
	}
	return nil
}

// Update modifies the mutable fields of an enrollment. Returns
// ErrEnrollmentNotFound when no row matches the ID.
func (p *PostgreSQLEnrollmentRepository) Update(ctx context.Context, record *enrollmentsDomain.EnrollmentRecord) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE enrollments
			  SET enrollment_date = $1, status = $2, notes = $3, updated_at = $4
			  WHERE id = $5`

	result, err := querier.ExecContext(
		ctx,
		query,
		record.EnrollmentDate,
		record.Status,
		record.Notes,
		record.UpdatedAt,
		record.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update enrollment")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return enrollmentsDomain.ErrEnrollmentNotFound
	}

	return nil
}

// Get retrieves an enrollment by ID. Returns ErrEnrollmentNotFound if the
// enrollment doesn't exist.
func (p *PostgreSQLEnrollmentRepository) Get(
	ctx context.Context,
	enrollmentID uuid.UUID,
) (*enrollmentsDomain.EnrollmentRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, client_id, program_id, enrollment_date, status, notes,
				  created_at, updated_at
			  FROM enrollments WHERE id = $1`

	var record enrollmentsDomain.EnrollmentRecord

	err := querier.QueryRowContext(ctx, query, enrollmentID).Scan(
		&record.ID,
		&record.ClientID,
		&record.ProgramID,
		&record.EnrollmentDate,
		&record.Status,
		&record.Notes,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, enrollmentsDomain.ErrEnrollmentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get enrollment")
	}

	return &record, nil
}

// detailQuery joins enrollments with the encrypted client name columns and
// the program name.
const detailQuery = `SELECT e.id, e.client_id, e.program_id, e.enrollment_date, e.status,
		e.notes, e.created_at, e.updated_at,
		c.first_name, c.last_name, p.name
	FROM enrollments e
	JOIN clients c ON c.id = e.client_id
	JOIN programs p ON p.id = e.program_id`

// ListWithDetails retrieves a page of enrollments joined with client and
// program identifiers, newest first.
func (p *PostgreSQLEnrollmentRepository) ListWithDetails(
	ctx context.Context,
	offset, limit int,
) ([]*enrollmentsDomain.EnrollmentDetailRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := detailQuery + `
	ORDER BY e.created_at DESC
	OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list enrollments")
	}
	return scanDetailRows(rows)
}

// ListByClient retrieves every enrollment of one client, newest first.
func (p *PostgreSQLEnrollmentRepository) ListByClient(
	ctx context.Context,
	clientID uuid.UUID,
) ([]*enrollmentsDomain.EnrollmentDetailRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := detailQuery + `
	WHERE e.client_id = $1
	ORDER BY e.created_at DESC`

	rows, err := querier.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list client enrollments")
	}
	return scanDetailRows(rows)
}

// scanDetailRows drains a detail query result set.
func scanDetailRows(rows *sql.Rows) ([]*enrollmentsDomain.EnrollmentDetailRecord, error) {
	defer func() {
		_ = rows.Close()
	}()

	var records []*enrollmentsDomain.EnrollmentDetailRecord
	for rows.Next() {
		var record enrollmentsDomain.EnrollmentDetailRecord
		err := rows.Scan(
			&record.ID,
			&record.ClientID,
			&record.ProgramID,
			&record.EnrollmentDate,
			&record.Status,
			&record.Notes,
			&record.CreatedAt,
			&record.UpdatedAt,
			&record.ClientFirstName,
			&record.ClientLastName,
			&record.ProgramName,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan enrollment")
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate enrollments")
	}

	return records, nil
}

// Delete removes an enrollment. Returns ErrEnrollmentNotFound when no row
// matches the ID.
func (p *PostgreSQLEnrollmentRepository) Delete(ctx context.Context, enrollmentID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM enrollments WHERE id = $1`, enrollmentID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete enrollment")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return enrollmentsDomain.ErrEnrollmentNotFound
	}

	return nil
}

// NewPostgreSQLEnrollmentRepository creates a new PostgreSQL enrollment repository.
func NewPostgreSQLEnrollmentRepository(db *sql.DB) *PostgreSQLEnrollmentRepository {
	return &PostgreSQLEnrollmentRepository{db: db}
}
