package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/healthdesk/healthinfo/internal/database"
	apperrors "github.com/healthdesk/healthinfo/internal/errors"
	programsDomain "github.com/healthdesk/healthinfo/internal/programs/domain"
)

// mysqlDuplicateEntry is the MySQL error number for duplicate key violations.
const mysqlDuplicateEntry = 1062

// MySQLProgramRepository implements Program persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLProgramRepository struct {
	db *sql.DB
}

// Create inserts a new Program. Returns ErrProgramNameTaken when the name
// unique constraint is violated.
func (m *MySQLProgramRepository) Create(ctx context.Context, program *programsDomain.Program) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO programs (id, name, description, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?)`

	id, err := program.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal program id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		program.Name,
		program.Description,
		program.CreatedAt,
		program.UpdatedAt,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return programsDomain.ErrProgramNameTaken
		}
		return apperrors.Wrap(err, "failed to create program")
	}
	return nil
}

// Update modifies an existing Program. Returns ErrProgramNotFound when no row
// matches the ID and ErrProgramNameTaken when the new name collides.
func (m *MySQLProgramRepository) Update(ctx context.Context, program *programsDomain.Program) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE programs
			  SET name = ?, description = ?, updated_at = ?
			  WHERE id = ?`

	id, err := program.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal program id")
	}

	result, err := querier.ExecContext(
		ctx,
		query,
		program.Name,
		program.Description,
		program.UpdatedAt,
		id,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return programsDomain.ErrProgramNameTaken
		}
		return apperrors.Wrap(err, "failed to update program")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return programsDomain.ErrProgramNotFound
	}

	return nil
}

// Get retrieves a Program by ID. Returns ErrProgramNotFound if the program
// doesn't exist.
func (m *MySQLProgramRepository) Get(ctx context.Context, programID uuid.UUID) (*programsDomain.Program, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, description, created_at, updated_at
			  FROM programs WHERE id = ?`

	id, err := programID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal program id")
	}

	var program programsDomain.Program
	var idBytes []byte

	err = querier.QueryRowContext(ctx, query, id).Scan(
		&idBytes,
		&program.Name,
		&program.Description,
		&program.CreatedAt,
		&program.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, programsDomain.ErrProgramNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get program")
	}

	if err := program.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal program id")
	}

	return &program, nil
}

// List retrieves programs ordered by name.
func (m *MySQLProgramRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*programsDomain.Program, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, description, created_at, updated_at
			  FROM programs
			  ORDER BY name ASC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list programs")
	}
	defer func() {
		_ = rows.Close()
	}()

	var programs []*programsDomain.Program
	for rows.Next() {
		var program programsDomain.Program
		var idBytes []byte
		err := rows.Scan(
			&idBytes,
			&program.Name,
			&program.Description,
			&program.CreatedAt,
			&program.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan program")
		}
		if err := program.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal program id")
		}
		programs = append(programs, &program)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate programs")
	}

	return programs, nil
}

// Delete removes a program. Enrollment rows cascade at the database level.
// Returns ErrProgramNotFound when no row matches the ID.
func (m *MySQLProgramRepository) Delete(ctx context.Context, programID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	id, err := programID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal program id")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM programs WHERE id = ?`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete program")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return programsDomain.ErrProgramNotFound
	}

	return nil
}

// NewMySQLProgramRepository creates a new MySQL Program repository.
func NewMySQLProgramRepository(db *sql.DB) *MySQLProgramRepository {
	return &MySQLProgramRepository{db: db}
}
