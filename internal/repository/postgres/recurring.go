package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/DanielCayresFilho/midpainel-sub000/internal/domain"
	"github.com/DanielCayresFilho/midpainel-sub000/internal/service/campaign"
)

// RecurringRepo implements campaign.RecurringRepo against PostgreSQL.
// Filters and distribution policy are stored as jsonb; they are opaque to
// SQL and always read back whole.
type RecurringRepo struct{ db *sql.DB }

// NewRecurringRepo creates a Postgres-backed recurring campaign repository.
func NewRecurringRepo(db *sql.DB) *RecurringRepo { return &RecurringRepo{db: db} }

func (r *RecurringRepo) Save(ctx context.Context, c *domain.RecurringCampaign) (string, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	filters, err := json.Marshal(c.Filters)
	if err != nil {
		return "", fmt.Errorf("marshal filters: %w", err)
	}
	policy, err := json.Marshal(c.Policy)
	if err != nil {
		return "", fmt.Errorf("marshal distribution policy: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO recurring_campaigns
			(id, name, source_table, filters, distribution_policy, template_id,
			 record_limit, active, last_executed_at, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			source_table = EXCLUDED.source_table,
			filters = EXCLUDED.filters,
			distribution_policy = EXCLUDED.distribution_policy,
			template_id = EXCLUDED.template_id,
			record_limit = EXCLUDED.record_limit,
			owner_id = EXCLUDED.owner_id,
			updated_at = NOW()
	`, c.ID, c.Name, c.SourceTable, filters, policy, c.TemplateID,
		c.RecordLimit, c.Active, c.LastExecutedAt, c.OwnerID, c.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("save recurring campaign: %w", err)
	}
	return c.ID, nil
}

const recurringColumns = `
	id, name, source_table, filters, distribution_policy, template_id,
	record_limit, active, last_executed_at, COALESCE(owner_id,''), created_at, updated_at`

func (r *RecurringRepo) Get(ctx context.Context, id string) (*domain.RecurringCampaign, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT`+recurringColumns+` FROM recurring_campaigns WHERE id = $1`, id)
	c, err := scanRecurring(row)
	if err == sql.ErrNoRows {
		return nil, campaign.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get recurring campaign: %w", err)
	}
	return c, nil
}

func (r *RecurringRepo) List(ctx context.Context) ([]domain.RecurringCampaign, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT`+recurringColumns+` FROM recurring_campaigns ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list recurring campaigns: %w", err)
	}
	defer rows.Close()

	var out []domain.RecurringCampaign
	for rows.Next() {
		c, err := scanRecurring(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recurring campaign: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *RecurringRepo) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE recurring_campaigns SET active = $1, updated_at = NOW() WHERE id = $2
	`, active, id)
	if err != nil {
		return fmt.Errorf("toggle recurring campaign: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return campaign.ErrNotFound
	}
	return nil
}

func (r *RecurringRepo) SetLastExecuted(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE recurring_campaigns SET last_executed_at = $1, updated_at = NOW() WHERE id = $2
	`, at, id)
	if err != nil {
		return fmt.Errorf("stamp last execution: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return campaign.ErrNotFound
	}
	return nil
}

func (r *RecurringRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM recurring_campaigns WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete recurring campaign: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return campaign.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecurring(row rowScanner) (*domain.RecurringCampaign, error) {
	var (
		c       domain.RecurringCampaign
		filters []byte
		policy  []byte
		lastRun sql.NullTime
	)
	if err := row.Scan(
		&c.ID, &c.Name, &c.SourceTable, &filters, &policy, &c.TemplateID,
		&c.RecordLimit, &c.Active, &lastRun, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(filters, &c.Filters); err != nil {
		return nil, fmt.Errorf("unmarshal filters: %w", err)
	}
	if err := json.Unmarshal(policy, &c.Policy); err != nil {
		return nil, fmt.Errorf("unmarshal distribution policy: %w", err)
	}
	if lastRun.Valid {
		c.LastExecutedAt = &lastRun.Time
	}
	return &c, nil
}
