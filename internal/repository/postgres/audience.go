package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/DanielCayresFilho/midpainel-sub000/internal/domain"
	"github.com/DanielCayresFilho/midpainel-sub000/internal/segment"
)

// Source tables are chosen by name at request time, so the table identifier
// is interpolated rather than bound. identPattern is the gate that keeps that
// interpolation safe; every query in this file must pass through checkIdent.
var identPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func checkIdent(name string) error {
	if !identPattern.MatchString(name) {
		return fmt.Errorf("invalid identifier %q", name)
	}
	return nil
}

// audienceColumns is the fixed projection read from every source table,
// regardless of what other columns the table carries.
const audienceColumns = `telefone, COALESCE(nome,''), COALESCE(idgis,0), COALESCE(contrato,0), COALESCE(cpf,'')`

// AudienceRepo reads recipient rows from dynamically named source tables.
type AudienceRepo struct{ db *sql.DB }

// NewAudienceRepo creates a Postgres-backed audience fetcher.
func NewAudienceRepo(db *sql.DB) *AudienceRepo { return &AudienceRepo{db: db} }

func (r *AudienceRepo) FetchPage(ctx context.Context, table string, pred segment.Predicate, limit, offset int) ([]domain.AudienceRecord, error) {
	if err := checkIdent(table); err != nil {
		return nil, err
	}
	q := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s
		ORDER BY id`, audienceColumns, table, pred.SQL)

	// A non-positive limit means no row cap. Binding 0 into LIMIT would
	// return an empty set, so the clause is omitted entirely.
	args := append([]interface{}{}, pred.Args...)
	n := len(pred.Args)
	if limit > 0 {
		q += fmt.Sprintf(" LIMIT $%d", n+1)
		args = append(args, limit)
		n++
	}
	q += fmt.Sprintf(" OFFSET $%d", n+1)
	args = append(args, offset)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch audience page: %w", err)
	}
	defer rows.Close()

	var out []domain.AudienceRecord
	for rows.Next() {
		var rec domain.AudienceRecord
		if err := rows.Scan(&rec.Phone, &rec.Name, &rec.EnvironmentID, &rec.ContractID, &rec.TaxID); err != nil {
			return nil, fmt.Errorf("scan audience row: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *AudienceRepo) Count(ctx context.Context, table string, pred segment.Predicate) (int, error) {
	if err := checkIdent(table); err != nil {
		return 0, err
	}
	q := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, table, pred.SQL)

	var n int
	if err := r.db.QueryRowContext(ctx, q, pred.Args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count audience: %w", err)
	}
	return n, nil
}

func (r *AudienceRepo) DistinctEnvIDs(ctx context.Context, table string, pred segment.Predicate) ([]int, error) {
	if err := checkIdent(table); err != nil {
		return nil, err
	}
	q := fmt.Sprintf(`
		SELECT DISTINCT COALESCE(idgis,0) FROM %s WHERE %s
	`, table, pred.SQL)

	rows, err := r.db.QueryContext(ctx, q, pred.Args...)
	if err != nil {
		return nil, fmt.Errorf("distinct environment ids: %w", err)
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan environment id: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
