package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanielCayresFilho/midpainel-sub000/internal/segment"
)

func TestFetchPageBindsPredicateThenPaging(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewAudienceRepo(db)

	pred := segment.Predicate{SQL: "regiao = $1", Args: []interface{}{"sul"}}
	rows := sqlmock.NewRows([]string{"telefone", "nome", "idgis", "contrato", "cpf"}).
		AddRow("11987654321", "Maria", 364, 88123, "12345678901")
	mock.ExpectQuery("SELECT telefone, .+ FROM clientes_sp").
		WithArgs("sul", 100, 200).
		WillReturnRows(rows)

	records, err := repo.FetchPage(context.Background(), "clientes_sp", pred, 100, 200)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Maria", records[0].Name)
	assert.Equal(t, 364, records[0].EnvironmentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchPageZeroLimitOmitsRowCap(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewAudienceRepo(db)

	pred := segment.Predicate{SQL: "regiao = $1", Args: []interface{}{"sul"}}
	rows := sqlmock.NewRows([]string{"telefone", "nome", "idgis", "contrato", "cpf"}).
		AddRow("11987654321", "Maria", 364, 88123, "12345678901").
		AddRow("21912345678", "Joao", 700, 99001, "98765432100")

	// The regexp is anchored at the end of the statement: nothing may follow
	// OFFSET, and only the predicate value and the offset are bound.
	mock.ExpectQuery(`ORDER BY id OFFSET \$2$`).
		WithArgs("sul", 0).
		WillReturnRows(rows)

	records, err := repo.FetchPage(context.Background(), "clientes_sp", pred, 0, 0)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchPageRejectsBadTableName(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewAudienceRepo(db)

	_, err = repo.FetchPage(context.Background(), "clientes; DROP TABLE x", segment.Predicate{SQL: "1=1"}, 10, 0)
	assert.Error(t, err)
}

func TestCountRejectsBadTableName(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewAudienceRepo(db)

	_, err = repo.Count(context.Background(), "x'y", segment.Predicate{SQL: "1=1"})
	assert.Error(t, err)
}

func TestCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewAudienceRepo(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM clientes_sp`).
		WithArgs("sul").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4200))

	n, err := repo.Count(context.Background(), "clientes_sp", segment.Predicate{
		SQL: "regiao = $1", Args: []interface{}{"sul"},
	})
	require.NoError(t, err)
	assert.Equal(t, 4200, n)
}
