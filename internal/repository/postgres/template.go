package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/DanielCayresFilho/midpainel-sub000/internal/domain"
	"github.com/DanielCayresFilho/midpainel-sub000/internal/service/campaign"
)

// TemplateRepo reads message templates. The templates table is owned by the
// panel's messaging module; this repository never writes to it.
type TemplateRepo struct{ db *sql.DB }

// NewTemplateRepo creates a Postgres-backed template store.
func NewTemplateRepo(db *sql.DB) *TemplateRepo { return &TemplateRepo{db: db} }

func (r *TemplateRepo) GetTemplate(ctx context.Context, id int) (*domain.Template, error) {
	t := &domain.Template{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, COALESCE(title,''), content FROM templates WHERE id = $1
	`, id).Scan(&t.ID, &t.Title, &t.Content)
	if err == sql.ErrNoRows {
		return nil, campaign.ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get template: %w", err)
	}
	return t, nil
}
