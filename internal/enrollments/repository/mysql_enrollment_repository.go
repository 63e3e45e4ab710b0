package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/healthdesk/healthinfo/internal/database"
	enrollmentsDomain "github.com/healthdesk/healthinfo/internal/enrollments/domain"
	apperrors "github.com/healthdesk/healthinfo/internal/errors"
)

// mysqlForeignKeyViolation is the MySQL error number for foreign key violations
// on insert.
const mysqlForeignKeyViolation = 1452

// MySQLEnrollmentRepository implements enrollment persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLEnrollmentRepository struct {
	db *sql.DB
}

// Create inserts a new enrollment. Returns ErrRelatedNotFound when the client
// or program foreign key is violated.
func (m *MySQLEnrollmentRepository) Create(ctx context.Context, record *enrollmentsDomain.EnrollmentRecord) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO enrollments (id, client_id, program_id, enrollment_date, status,
				  notes, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	id, clientID, programID, err := marshalEnrollmentIDs(record)
	if err != nil {
		return err
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		clientID,
		programID,
		record.EnrollmentDate,
		record.Status,
		record.Notes,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlForeignKeyViolation {
			return enrollmentsDomain.ErrRelatedNotFound
		}
		return apperrors.Wrap(err, "failed to create enrollment")
	}
	return nil
}

// Update modifies the mutable fields of an enrollment. Returns
// ErrEnrollmentNotFound when no row matches the ID.
func (m *MySQLEnrollmentRepository) Update(ctx context.Context, record *enrollmentsDomain.EnrollmentRecord) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE enrollments
			  SET enrollment_date = ?, status = ?, notes = ?, updated_at = ?
			  WHERE id = ?`

	id, err := record.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal enrollment id")
	}

	result, err := querier.ExecContext(
		ctx,
		query,
		record.EnrollmentDate,
		record.Status,
		record.Notes,
		record.UpdatedAt,
		id,
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
func (m *MySQLEnrollmentRepository) Get(
	ctx context.Context,
	enrollmentID uuid.UUID,
) (*enrollmentsDomain.EnrollmentRecord, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, client_id, program_id, enrollment_date, status, notes,
				  created_at, updated_at
			  FROM enrollments WHERE id = ?`

	id, err := enrollmentID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal enrollment id")
	}

	var record enrollmentsDomain.EnrollmentRecord
	var idBytes, clientIDBytes, programIDBytes []byte

	err = querier.QueryRowContext(ctx, query, id).Scan(
		&idBytes,
		&clientIDBytes,
		&programIDBytes,
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

	if err := unmarshalEnrollmentIDs(&record, idBytes, clientIDBytes, programIDBytes); err != nil {
		return nil, err
	}

	return &record, nil
}

// mysqlDetailQuery joins enrollments with the encrypted client name columns
// and the program name.
const mysqlDetailQuery = `SELECT e.id, e.client_id, e.program_id, e.enrollment_date, e.status,
		e.notes, e.created_at, e.updated_at,
		c.first_name, c.last_name, p.name
	FROM enrollments e
	JOIN clients c ON c.id = e.client_id
	JOIN programs p ON p.id = e.program_id`

// ListWithDetails retrieves a page of enrollments joined with client and
// program identifiers, newest first.
func (m *MySQLEnrollmentRepository) ListWithDetails(
	ctx context.Context,
	offset, limit int,
) ([]*enrollmentsDomain.EnrollmentDetailRecord, error) {
	querier := database.GetTx(ctx, m.db)

	query := mysqlDetailQuery + `
	ORDER BY e.created_at DESC
	LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list enrollments")
	}
	return scanMySQLDetailRows(rows)
}

// ListByClient retrieves every enrollment of one client, newest first.
func (m *MySQLEnrollmentRepository) ListByClient(
	ctx context.Context,
	clientID uuid.UUID,
) ([]*enrollmentsDomain.EnrollmentDetailRecord, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := clientID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal client id")
	}

	query := mysqlDetailQuery + `
	WHERE e.client_id = ?
	ORDER BY e.created_at DESC`

	rows, err := querier.QueryContext(ctx, query, id)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list client enrollments")
	}
	return scanMySQLDetailRows(rows)
}

// scanMySQLDetailRows drains a detail query result set, decoding BINARY(16)
// UUID columns.
func scanMySQLDetailRows(rows *sql.Rows) ([]*enrollmentsDomain.EnrollmentDetailRecord, error) {
	defer func() {
		_ = rows.Close()
	}()

	var records []*enrollmentsDomain.EnrollmentDetailRecord
	for rows.Next() {
		var record enrollmentsDomain.EnrollmentDetailRecord
		var idBytes, clientIDBytes, programIDBytes []byte
		err := rows.Scan(
			&idBytes,
			&clientIDBytes,
			&programIDBytes,
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
		if err := unmarshalEnrollmentIDs(&record.EnrollmentRecord, idBytes, clientIDBytes, programIDBytes); err != nil {
			return nil, err
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
func (m *MySQLEnrollmentRepository) Delete(ctx context.Context, enrollmentID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	id, err := enrollmentID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal enrollment id")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM enrollments WHERE id = ?`, id)
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

// marshalEnrollmentIDs encodes the three UUID columns for insert.
func marshalEnrollmentIDs(record *enrollmentsDomain.EnrollmentRecord) (id, clientID, programID []byte, err error) {
	if id, err = record.ID.MarshalBinary(); err != nil {
		return nil, nil, nil, apperrors.Wrap(err, "failed to marshal enrollment id")
	}
	if clientID, err = record.ClientID.MarshalBinary(); err != nil {
		return nil, nil, nil, apperrors.Wrap(err, "failed to marshal client id")
	}
	if programID, err = record.ProgramID.MarshalBinary(); err != nil {
		return nil, nil, nil, apperrors.Wrap(err, "failed to marshal program id")
	}
	return id, clientID, programID, nil
}

// unmarshalEnrollmentIDs decodes the three UUID columns after scan.
func unmarshalEnrollmentIDs(record *enrollmentsDomain.EnrollmentRecord, idBytes, clientIDBytes, programIDBytes []byte) error {
	if err := record.ID.UnmarshalBinary(idBytes); err != nil {
		return apperrors.Wrap(err, "failed to unmarshal enrollment id")
	}
	if err := record.ClientID.UnmarshalBinary(clientIDBytes); err != nil {
		return apperrors.Wrap(err, "failed to unmarshal client id")
	}
	if err := record.ProgramID.UnmarshalBinary(programIDBytes); err != nil {
		return apperrors.Wrap(err, "failed to unmarshal program id")
	}
	return nil
}

// NewMySQLEnrollmentRepository creates a new MySQL enrollment repository.
func NewMySQLEnrollmentRepository(db *sql.DB) *MySQLEnrollmentRepository {
	return &MySQLEnrollmentRepository{db: db}
}
