package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanielCayresFilho/midpainel-sub000/internal/domain"
)

func setupTestDB(t *testing.T) (*DispatchRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewDispatchRepo(db), mock
}

func testRecords(n int) []domain.DispatchRecord {
	records := make([]domain.DispatchRecord, n)
	for i := range records {
		records[i] = domain.DispatchRecord{
			BatchID:       "batch-1",
			Phone:         "11987654321",
			Name:          "Cliente",
			EnvironmentID: 364,
			Message:       "Ola Cliente",
			Provider:      "zenvia",
			Status:        domain.DispatchPendingApproval,
			CreatedAt:     time.Date(2025, 7, 9, 10, 0, 0, 0, time.UTC),
		}
	}
	return records
}

func TestBulkInsertSingleStatement(t *testing.T) {
	repo, mock := setupTestDB(t)

	// 3 records, 10 columns each: one statement with 30 bound args.
	mock.ExpectExec("INSERT INTO dispatch_records").
		WillReturnResult(sqlmock.NewResult(0, 3))

	err := repo.BulkInsert(context.Background(), testRecords(3))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkInsertEmptyIsNoop(t *testing.T) {
	repo, mock := setupTestDB(t)

	err := repo.BulkInsert(context.Background(), nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkInsertPropagatesError(t *testing.T) {
	repo, mock := setupTestDB(t)

	mock.ExpectExec("INSERT INTO dispatch_records").
		WillReturnError(assert.AnError)

	err := repo.BulkInsert(context.Background(), testRecords(2))
	assert.ErrorIs(t, err, assert.AnError)
}

func TestRecentlyContactedPhones(t *testing.T) {
	repo, mock := setupTestDB(t)

	since := time.Date(2025, 7, 8, 0, 0, 0, 0, time.Local)
	rows := sqlmock.NewRows([]string{"telefone"}).
		AddRow("5511987654321").
		AddRow("21912345678")
	mock.ExpectQuery("SELECT DISTINCT telefone FROM dispatch_records").
		WithArgs(since).
		WillReturnRows(rows)

	phones, err := repo.RecentlyContactedPhones(context.Background(), since)
	require.NoError(t, err)
	assert.Equal(t, []string{"5511987654321", "21912345678"}, phones)
	assert.NoError(t, mock.ExpectationsWereMet())
}
