package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	enrollmentsDomain "github.com/healthdesk/healthinfo/internal/enrollments/domain"
	"github.com/healthdesk/healthinfo/internal/testutil"
)

func newTestEnrollment(clientID, programID uuid.UUID) *enrollmentsDomain.EnrollmentRecord {
	now := time.Now().UTC()
	notes := "enc-notes-opaque"
	return &enrollmentsDomain.EnrollmentRecord{
		ID:             uuid.Must(uuid.NewV7()),
		ClientID:       clientID,
		ProgramID:      programID,
		EnrollmentDate: "2026-01-15",
		Status:         enrollmentsDomain.StatusActive,
		Notes:          &notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestPostgreSQLEnrollmentRepository_CreateAndGet(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	clientID := testutil.CreateTestClient(t, db, "postgres", "enc-first", "enc-last")
	programID := testutil.CreateTestProgram(t, db, "postgres", "diabetes-care")
	repo := NewPostgreSQLEnrollmentRepository(db)
	ctx := context.Background()

	record := newTestEnrollment(clientID, programID)
	err := repo.Create(ctx, record)
	require.NoError(t, err)

	retrieved, err := repo.Get(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, retrieved.ID)
	assert.Equal(t, clientID, retrieved.ClientID)
	assert.Equal(t, programID, retrieved.ProgramID)
	assert.Equal(t, "2026-01-15", retrieved.EnrollmentDate)
	assert.Equal(t, enrollmentsDomain.StatusActive, retrieved.Status)
	require.NotNil(t, retrieved.Notes)
	assert.Equal(t, "enc-notes-opaque", *retrieved.Notes)
}

func TestPostgreSQLEnrollmentRepository_Create_MissingClient(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	programID := testutil.CreateTestProgram(t, db, "postgres", "tb-outreach")
	repo := NewPostgreSQLEnrollmentRepository(db)
	ctx := context.Background()

	record := newTestEnrollment(uuid.Must(uuid.NewV7()), programID)
	err := repo.Create(ctx, record)
	assert.ErrorIs(t, err, enrollmentsDomain.ErrRelatedNotFound)
}

func TestPostgreSQLEnrollmentRepository_Get_NotFound(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLEnrollmentRepository(db)
	ctx := context.Background()

	record, err := repo.Get(ctx, uuid.Must(uuid.NewV7()))
	assert.ErrorIs(t, err, enrollmentsDomain.ErrEnrollmentNotFound)
	assert.Nil(t, record)
}

func TestPostgreSQLEnrollmentRepository_Update(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	clientID := testutil.CreateTestClient(t, db, "postgres", "enc-first", "enc-last")
	programID := testutil.CreateTestProgram(t, db, "postgres", "hiv-support")
	repo := NewPostgreSQLEnrollmentRepository(db)
	ctx := context.Background()

	record := newTestEnrollment(clientID, programID)
	require.NoError(t, repo.Create(ctx, record))

	record.Status = enrollmentsDomain.StatusCompleted
	record.Notes = nil
	record.UpdatedAt = time.Now().UTC()

	err := repo.Update(ctx, record)
	require.NoError(t, err)

	retrieved, err := repo.Get(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, enrollmentsDomain.StatusCompleted, retrieved.Status)
	assert.Nil(t, retrieved.Notes)
}

func TestPostgreSQLEnrollmentRepository_Update_NotFound(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLEnrollmentRepository(db)
	ctx := context.Background()

	record := newTestEnrollment(uuid.Must(uuid.NewV7()), uuid.Must(uuid.NewV7()))
	err := repo.Update(ctx, record)
	assert.ErrorIs(t, err, enrollmentsDomain.ErrEnrollmentNotFound)
}

func TestPostgreSQLEnrollmentRepository_ListWithDetails(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	clientID := testutil.CreateTestClient(t, db, "postgres", "enc-jane", "enc-doe")
	programID := testutil.CreateTestProgram(t, db, "postgres", "antenatal-care")
	repo := NewPostgreSQLEnrollmentRepository(db)
	ctx := context.Background()

	record := newTestEnrollment(clientID, programID)
	require.NoError(t, repo.Create(ctx, record))

	details, err := repo.ListWithDetails(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, details, 1)

	detail := details[0]
	assert.Equal(t, record.ID, detail.ID)
	assert.Equal(t, "antenatal-care", detail.ProgramName)
	require.NotNil(t, detail.ClientFirstName)
	assert.Equal(t, "enc-jane", *detail.ClientFirstName)
	require.NotNil(t, detail.ClientLastName)
	assert.Equal(t, "enc-doe", *detail.ClientLastName)
}

func TestPostgreSQLEnrollmentRepository_ListByClient(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	clientID := testutil.CreateTestClient(t, db, "postgres", "enc-jane", "enc-doe")
	otherClientID := testutil.CreateTestClient(t, db, "postgres", "enc-john", "enc-smith")
	programID := testutil.CreateTestProgram(t, db, "postgres", "nutrition-plus")
	repo := NewPostgreSQLEnrollmentRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestEnrollment(clientID, programID)))
	require.NoError(t, repo.Create(ctx, newTestEnrollment(otherClientID, programID)))

	details, err := repo.ListByClient(ctx, clientID)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, clientID, details[0].ClientID)
}

func TestPostgreSQLEnrollmentRepository_Delete(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	clientID := testutil.CreateTestClient(t, db, "postgres", "enc-first", "enc-last")
	programID := testutil.CreateTestProgram(t, db, "postgres", "short-lived")
	repo := NewPostgreSQLEnrollmentRepository(db)
	ctx := context.Background()

	record := newTestEnrollment(clientID, programID)
	require.NoError(t, repo.Create(ctx, record))

	require.NoError(t, repo.Delete(ctx, record.ID))

	_, err := repo.Get(ctx, record.ID)
	assert.ErrorIs(t, err, enrollmentsDomain.ErrEnrollmentNotFound)

	err = repo.Delete(ctx, record.ID)
	assert.ErrorIs(t, err, enrollmentsDomain.ErrEnrollmentNotFound)
}
