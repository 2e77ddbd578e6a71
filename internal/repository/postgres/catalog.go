package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/DanielCayresFilho/midpainel-sub000/internal/segment"
)

// CatalogRepo implements segment.CatalogStore by introspecting
// information_schema and probing column cardinality.
type CatalogRepo struct{ db *sql.DB }

// NewCatalogRepo creates a Postgres-backed catalog store.
func NewCatalogRepo(db *sql.DB) *CatalogRepo { return &CatalogRepo{db: db} }

func (r *CatalogRepo) ListColumns(ctx context.Context, table string) ([]segment.ColumnInfo, error) {
	if err := checkIdent(table); err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT column_name, data_type
		FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = $1
		ORDER BY ordinal_position
	`, table)
	if err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}
	defer rows.Close()

	var out []segment.ColumnInfo
	for rows.Next() {
		var c segment.ColumnInfo
		if err := rows.Scan(&c.Name, &c.DataType); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CatalogRepo) CountDistinct(ctx context.Context, table, column string) (int, error) {
	if err := checkIdent(table); err != nil {
		return 0, err
	}
	if err := checkIdent(column); err != nil {
		return 0, err
	}
	q := fmt.Sprintf(`SELECT COUNT(DISTINCT %s) FROM %s WHERE %s IS NOT NULL`, column, table, column)

	var n int
	if err := r.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, fmt.Errorf("count distinct %s.%s: %w", table, column, err)
	}
	return n, nil
}

func (r *CatalogRepo) DistinctValues(ctx context.Context, table, column string, limit int) ([]string, error) {
	if err := checkIdent(table); err != nil {
		return nil, err
	}
	if err := checkIdent(column); err != nil {
		return nil, err
	}
	q := fmt.Sprintf(`
		SELECT DISTINCT %s::text FROM %s
		WHERE %s IS NOT NULL AND %s::text <> ''
		ORDER BY 1
		LIMIT $1
	`, column, table, column, column)

	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("distinct values %s.%s: %w", table, column, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan value: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
