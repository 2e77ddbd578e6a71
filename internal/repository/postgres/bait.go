package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/DanielCayresFilho/midpainel-sub000/internal/domain"
	"github.com/DanielCayresFilho/midpainel-sub000/internal/service/campaign"
)

// BaitRepo implements campaign.BaitRepo against PostgreSQL.
type BaitRepo struct{ db *sql.DB }

// NewBaitRepo creates a Postgres-backed bait repository.
func NewBaitRepo(db *sql.DB) *BaitRepo { return &BaitRepo{db: db} }

func (r *BaitRepo) ListActiveBaits(ctx context.Context) ([]domain.Bait, error) {
	return r.list(ctx, `
		SELECT id, telefone, COALESCE(nome,''), COALESCE(idgis,0), active, created_at
		FROM baits WHERE active = true ORDER BY id
	`)
}

func (r *BaitRepo) List(ctx context.Context) ([]domain.Bait, error) {
	return r.list(ctx, `
		SELECT id, telefone, COALESCE(nome,''), COALESCE(idgis,0), active, created_at
		FROM baits ORDER BY id
	`)
}

func (r *BaitRepo) list(ctx context.Context, q string) ([]domain.Bait, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list baits: %w", err)
	}
	defer rows.Close()

	var out []domain.Bait
	for rows.Next() {
		var b domain.Bait
		if err := rows.Scan(&b.ID, &b.Phone, &b.Name, &b.EnvironmentID, &b.Active, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bait: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BaitRepo) Create(ctx context.Context, b *domain.Bait) (int, error) {
	var id int
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO baits (telefone, nome, idgis, active, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id
	`, b.Phone, b.Name, b.EnvironmentID, b.Active).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create bait: %w", err)
	}
	return id, nil
}

func (r *BaitRepo) SetActive(ctx context.Context, id int, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE baits SET active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("toggle bait: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return campaign.ErrNotFound
	}
	return nil
}

func (r *BaitRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM baits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete bait: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return campaign.ErrNotFound
	}
	return nil
}
