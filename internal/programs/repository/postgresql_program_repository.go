// Package repository implements program persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/healthdesk/healthinfo/internal/database"
	apperrors "github.com/healthdesk/healthinfo/internal/errors"
	programsDomain "github.com/healthdesk/healthinfo/internal/programs/domain"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// PostgreSQLProgramRepository implements Program persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLProgramRepository struct {
	db *sql.DB
}

// Create inserts a new Program. Returns ErrProgramNameTaken when the name
// unique constraint is violated.
func (p *PostgreSQLProgramRepository) Create(ctx context.Context, program *programsDomain.Program) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO programs (id, name, description, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		program.ID,
		program.Name,
		program.Description,
		program.CreatedAt,
		program.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return programsDomain.ErrProgramNameTaken
		}
		return apperrors.Wrap(err, "failed to create program")
	}
	return nil
}

// Update modifies an existing Program. Returns ErrProgramNotFound when no row
// matches the ID and ErrProgramNameTaken when the new name collides.
func (p *PostgreSQLProgramRepository) Update(ctx context.Context, program *programsDomain.Program) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE programs
			  SET name = $1, description = $2, updated_at = $3
			  WHERE id = $4`

	result, err := querier.ExecContext(
		ctx,
		query,
		program.Name,
		program.Description,
		program.UpdatedAt,
		program.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
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
func (p *PostgreSQLProgramRepository) Get(ctx context.Context, programID uuid.UUID) (*programsDomain.Program, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, description, created_at, updated_at
			  FROM programs WHERE id = $1`

	var program programsDomain.Program

	err := querier.QueryRowContext(ctx, query, programID).Scan(
		&program.ID,
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

	return &program, nil
}

// List retrieves programs ordered by name.
func (p *PostgreSQLProgramRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*programsDomain.Program, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, description, created_at, updated_at
			  FROM programs
			  ORDER BY name ASC
			  OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list programs")
	}
	defer func() {
		_ = rows.Close()
	}()

	var programs []*programsDomain.Program
	for rows.Next() {
		var program programsDomain.Program
		err := rows.Scan(
			&program.ID,
			&program.Name,
			&program.Description,
			&program.CreatedAt,
			&program.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan program")
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
func (p *PostgreSQLProgramRepository) Delete(ctx context.Context, programID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM programs WHERE id = $1`, programID)
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

// NewPostgreSQLProgramRepository creates a new PostgreSQL Program repository.
func NewPostgreSQLProgramRepository(db *sql.DB) *PostgreSQLProgramRepository {
	return &PostgreSQLProgramRepository{db: db}
}
