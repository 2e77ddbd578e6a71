package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/DanielCayresFilho/midpainel-sub000/internal/domain"
	"github.com/DanielCayresFilho/midpainel-sub000/internal/service/campaign"
)

// MappingRepo implements campaign.MappingRepo against PostgreSQL.
type MappingRepo struct{ db *sql.DB }

// NewMappingRepo creates a Postgres-backed id mapping repository.
func NewMappingRepo(db *sql.DB) *MappingRepo { return &MappingRepo{db: db} }

func (r *MappingRepo) ListForTable(ctx context.Context, table string) ([]domain.IDMapping, error) {
	return r.list(ctx, `
		SELECT id, source_table, provider, original_idgis, mapped_idgis, active
		FROM id_mappings
		WHERE source_table = $1 AND active = true
		ORDER BY id
	`, table)
}

func (r *MappingRepo) List(ctx context.Context) ([]domain.IDMapping, error) {
	return r.list(ctx, `
		SELECT id, source_table, provider, original_idgis, mapped_idgis, active
		FROM id_mappings ORDER BY source_table, provider, original_idgis
	`)
}

func (r *MappingRepo) list(ctx context.Context, q string, args ...interface{}) ([]domain.IDMapping, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list id mappings: %w", err)
	}
	defer rows.Close()

	var out []domain.IDMapping
	for rows.Next() {
		var m domain.IDMapping
		if err := rows.Scan(&m.ID, &m.SourceTable, &m.Provider, &m.OriginalEnvID, &m.MappedEnvID, &m.Active); err != nil {
			return nil, fmt.Errorf("scan id mapping: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MappingRepo) Save(ctx context.Context, m *domain.IDMapping) (int, error) {
	var id int
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO id_mappings (source_table, provider, original_idgis, mapped_idgis, active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (source_table, provider, original_idgis) DO UPDATE SET
			mapped_idgis = EXCLUDED.mapped_idgis,
			active = EXCLUDED.active
		RETURNING id
	`, m.SourceTable, m.Provider, m.OriginalEnvID, m.MappedEnvID, m.Active).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("save id mapping: %w", err)
	}
	return id, nil
}

func (r *MappingRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM id_mappings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete id mapping: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return campaign.ErrNotFound
	}
	return nil
}
