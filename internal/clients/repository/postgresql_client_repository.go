// Package repository implements client persistence for PostgreSQL and MySQL.
// Repositories store and return opaque encrypted values; encryption and
// decryption live in the use case layer.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	clientsDomain "github.com/healthdesk/healthinfo/internal/clients/domain"
	"github.com/healthdesk/healthinfo/internal/database"
	apperrors "github.com/healthdesk/healthinfo/internal/errors"
)

// PostgreSQLClientRepository implements ClientRecord persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLClientRepository struct {
	db *sql.DB
}

// Create inserts a new ClientRecord into the PostgreSQL database.
func (p *PostgreSQLClientRepository) Create(ctx context.Context, record *clientsDomain.ClientRecord) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO clients (id, first_name, last_name, date_of_birth, gender,
				  contact_number, email, address, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := querier.ExecContext(
		ctx,
		query,
		record.ID,
		record.FirstName,
		record.LastName,
		record.DateOfBirth,
		record.Gender,
		record.ContactNumber,
		record.Email,
		record.Address,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create client")
	}
	return nil
}

// Update modifies an existing ClientRecord. Returns ErrClientNotFound when no
// row matches the ID.
func (p *PostgreSQLClientRepository) Update(ctx context.Context, record *clientsDomain.ClientRecord) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE clients
			  SET first_name = $1,
				  last_name = $2,
				  date_of_birth = $3,
				  gender = $4,
				  contact_number = $5,
				  email = $6,
				  address = $7,
				  updated_at = $8
			  WHERE id = $9`

	result, err := querier.ExecContext(
		ctx,
		query,
		record.FirstName,
		record.LastName,
		record.DateOfBirth,
		record.Gender,
		record.ContactNumber,
		record.Email,
		record.Address,
		record.UpdatedAt,
		record.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update client")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return clientsDomain.ErrClientNotFound
	}

	return nil
}

// Get retrieves a ClientRecord by ID. Returns ErrClientNotFound if the client
// doesn't exist.
func (p *PostgreSQLClientRepository) Get(ctx context.Context, clientID uuid.UUID) (*clientsDomain.ClientRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, first_name, last_name, date_of_birth, gender,
				  contact_number, email, address, created_at, updated_at
			  FROM clients WHERE id = $1`

	var record clientsDomain.ClientRecord

	err := querier.QueryRowContext(ctx, query, clientID).Scan(
		&record.ID,
		&record.FirstName,
		&record.LastName,
		&record.DateOfBirth,
		&record.Gender,
		&record.ContactNumber,
		&record.Email,
		&record.Address,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, clientsDomain.ErrClientNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get client")
	}

	return &record, nil
}

// List retrieves client records ordered by creation time descending.
func (p *PostgreSQLClientRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*clientsDomain.ClientRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, first_name, last_name, date_of_birth, gender,
				  contact_number, email, address, created_at, updated_at
			  FROM clients
			  ORDER BY created_at DESC
			  OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list clients")
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []*clientsDomain.ClientRecord
	for rows.Next() {
		var record clientsDomain.ClientRecord
		err := rows.Scan(
			&record.ID,
			&record.FirstName,
			&record.LastName,
			&record.DateOfBirth,
			&record.Gender,
			&record.ContactNumber,
			&record.Email,
			&record.Address,
			&record.CreatedAt,
			&record.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan client")
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate clients")
	}

	return records, nil
}

// Delete removes a client. Enrollment rows cascade at the database level.
// Returns ErrClientNotFound when no row matches the ID.
func (p *PostgreSQLClientRepository) Delete(ctx context.Context, clientID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, clientID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete client")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return clientsDomain.ErrClientNotFound
	}

	return nil
}

// NewPostgreSQLClientRepository creates a new PostgreSQL ClientRecord repository.
func NewPostgreSQLClientRepository(db *sql.DB) *PostgreSQLClientRepository {
	return &PostgreSQLClientRepository{db: db}
}
