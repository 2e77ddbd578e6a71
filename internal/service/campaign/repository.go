package campaign

import (
	"context"
	"time"

	"github.com/DanielCayresFilho/midpainel-sub000/internal/domain"
)

// RecurringRepo is the data access contract for saved campaign definitions.
// Implementations must be safe for concurrent use.
type RecurringRepo interface {
	// Save inserts a new definition (or fully replaces an existing one by id)
	// and returns its id.
	Save(ctx context.Context, c *domain.RecurringCampaign) (string, error)

	// Get returns a definition. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (*domain.RecurringCampaign, error)

	// List returns all definitions ordered by created_at DESC.
	List(ctx context.Context) ([]domain.RecurringCampaign, error)

	// SetActive toggles a definition. Returns ErrNotFound if absent.
	SetActive(ctx context.Context, id string, active bool) error

	// SetLastExecuted stamps the last execution attempt time.
	SetLastExecuted(ctx context.Context, id string, at time.Time) error

	// Delete removes a definition. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id string) error
}

// DispatchRepo is the output boundary for dispatch records and the source of
// the recent-contact exclusion set.
type DispatchRepo interface {
	// BulkInsert persists one chunk of dispatch records. Callers chunk to
	// bound statement size; a chunk is committed or failed as a whole.
	BulkInsert(ctx context.Context, records []domain.DispatchRecord) error

	// RecentlyContactedPhones returns the phone numbers of every dispatch
	// record created or sent at/after since.
	RecentlyContactedPhones(ctx context.Context, since time.Time) ([]string, error)
}

// TemplateStore resolves message templates. External system; read-only here.
type TemplateStore interface {
	// GetTemplate returns ErrTemplateNotFound when the id is unknown.
	GetTemplate(ctx context.Context, id int) (*domain.Template, error)
}

// MappingRepo stores provider identifier mappings.
type MappingRepo interface {
	// ListForTable returns every active mapping of a source table.
	ListForTable(ctx context.Context, table string) ([]domain.IDMapping, error)

	// List returns all mappings, active or not.
	List(ctx context.Context) ([]domain.IDMapping, error)

	// Save upserts on (source_table, provider, original_idgis) and returns
	// the mapping id.
	Save(ctx context.Context, m *domain.IDMapping) (int, error)

	// Delete removes a mapping. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id int) error
}

// BaitRepo stores monitoring recipients.
type BaitRepo interface {
	// ListActiveBaits returns the baits eligible for injection.
	ListActiveBaits(ctx context.Context) ([]domain.Bait, error)

	// List returns all baits, active or not.
	List(ctx context.Context) ([]domain.Bait, error)

	// Create inserts a bait and returns its id.
	Create(ctx context.Context, b *domain.Bait) (int, error)

	// SetActive toggles a bait. Returns ErrNotFound if absent.
	SetActive(ctx context.Context, id int, active bool) error

	// Delete removes a bait. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id int) error
}
