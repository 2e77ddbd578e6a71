package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/DanielCayresFilho/midpainel-sub000/internal/domain"
)

// DispatchRepo writes dispatch records and answers the recent-contact query.
type DispatchRepo struct{ db *sql.DB }

// NewDispatchRepo creates a Postgres-backed dispatch repository.
func NewDispatchRepo(db *sql.DB) *DispatchRepo { return &DispatchRepo{db: db} }

// BulkInsert writes one chunk of dispatch records in a single multi-row
// statement. Callers are responsible for keeping chunks small enough; this
// method does not re-chunk.
func (r *DispatchRepo) BulkInsert(ctx context.Context, records []domain.DispatchRecord) error {
	if len(records) == 0 {
		return nil
	}

	const cols = 10
	placeholders := make([]string, 0, len(records))
	args := make([]interface{}, 0, len(records)*cols)
	for i, rec := range records {
		base := i * cols
		placeholders = append(placeholders, fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9, base+10,
		))
		args = append(args,
			rec.BatchID, rec.Phone, rec.Name, rec.EnvironmentID, rec.ContractID,
			rec.TaxID, rec.Message, rec.Provider, rec.Status, rec.CreatedAt,
		)
	}

	q := `
		INSERT INTO dispatch_records
			(batch_id, telefone, nome, idgis, contrato, cpf, message, provider, status, created_at)
		VALUES ` + strings.Join(placeholders, ", ")

	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("bulk insert dispatch records: %w", err)
	}
	return nil
}

// RecentlyContactedPhones returns the raw phone values of every record
// created or sent at/after since. Normalization happens in the caller; the
// stored values may still carry country prefixes.
func (r *DispatchRepo) RecentlyContactedPhones(ctx context.Context, since time.Time) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT telefone FROM dispatch_records
		WHERE created_at >= $1 OR sent_at >= $1
	`, since)
	if err != nil {
		return nil, fmt.Errorf("recent contacts: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var phone string
		if err := rows.Scan(&phone); err != nil {
			return nil, fmt.Errorf("scan phone: %w", err)
		}
		out = append(out, phone)
	}
	return out, rows.Err()
}
