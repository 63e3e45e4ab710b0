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

// MySQLClientRepository implements ClientRecord persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLClientRepository struct {
	db *sql.DB
}

// Create inserts a new ClientRecord into the MySQL database.
func (m *MySQLClientRepository) Create(ctx context.Context, record *clientsDomain.ClientRecord) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO clients (id, first_name, last_name, date_of_birth, gender,
				  contact_number, email, address, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := record.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal client id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (m *MySQLClientRepository) Update(ctx context.Context, record *clientsDomain.ClientRecord) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE clients
			  SET first_name = ?,
				  last_name = ?,
				  date_of_birth = ?,
				  gender = ?,
				  contact_number = ?,
				  email = ?,
				  address = ?,
				  updated_at = ?
			  WHERE id = ?`

	id, err := record.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal client id")
	}

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
		id,
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
func (m *MySQLClientRepository) Get(ctx context.Context, clientID uuid.UUID) (*clientsDomain.ClientRecord, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, first_name, last_name, date_of_birth, gender,
				  contact_number, email, address, created_at, updated_at
			  FROM clients WHERE id = ?`

	id, err := clientID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal client id")
	}

	var record clientsDomain.ClientRecord
	var idBytes []byte

	err = querier.QueryRowContext(ctx, query, id).Scan(
		&idBytes,
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

	if err := record.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal client id")
	}

	return &record, nil
}

// List retrieves client records ordered by creation time descending.
func (m *MySQLClientRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*clientsDomain.ClientRecord, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, first_name, last_name, date_of_birth, gender,
				  contact_number, email, address, created_at, updated_at
			  FROM clients
			  ORDER BY created_at DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list clients")
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []*clientsDomain.ClientRecord
	for rows.Next() {
		var record clientsDomain.ClientRecord
		var idBytes []byte
		err := rows.Scan(
			&idBytes,
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
		if err := record.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal client id")
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
func (m *MySQLClientRepository) Delete(ctx context.Context, clientID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	id, err := clientID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal client id")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
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

// NewMySQLClientRepository creates a new MySQL ClientRecord repository.
func NewMySQLClientRepository(db *sql.DB) *MySQLClientRepository {
	return &MySQLClientRepository{db: db}
}
