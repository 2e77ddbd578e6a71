package domain

import "time"

// DistributionMode determines how the audience is handed to providers.
type DistributionMode string

const (
	// DistributionSplit partitions the audience across providers by
	// percentage. The partition is exhaustive and non-overlapping.
	DistributionSplit DistributionMode = "split"
	// DistributionBroadcast sends the entire audience to every provider.
	// Duplication across providers is intentional.
	DistributionBroadcast DistributionMode = "broadcast"
)

// DistributionPolicy configures how dispatch records are divided between
// outbound providers. Percentages need not sum to 100; the distribution
// engine renormalizes, and the last provider in Providers order absorbs the
// rounding remainder.
type DistributionPolicy struct {
	Mode        DistributionMode   `json:"mode"`
	Providers   []string           `json:"providers"`
	Percentages map[string]float64 `json:"percentages,omitempty"`
}

// RecurringCampaign is a persisted, reusable campaign definition. "Recurring"
// means re-executable on demand, not scheduled: every run is operator
// triggered. Execution mutates nothing but LastExecutedAt.
type RecurringCampaign struct {
	ID             string             `json:"id" db:"id"`
	Name           string             `json:"name" db:"name"`
	SourceTable    string             `json:"source_table" db:"source_table"`
	Filters        []FilterSpec       `json:"filters" db:"filters"`
	Policy         DistributionPolicy `json:"distribution_policy" db:"distribution_policy"`
	TemplateID     int                `json:"template_id" db:"template_id"`
	RecordLimit    int                `json:"record_limit" db:"record_limit"`
	Active         bool               `json:"active" db:"active"`
	LastExecutedAt *time.Time         `json:"last_executed_at" db:"last_executed_at"`
	OwnerID        string             `json:"owner_id" db:"owner_id"`
	CreatedAt      time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" db:"updated_at"`
}

// Template is a message template consumed from the template store.
type Template struct {
	ID      int    `json:"id" db:"id"`
	Title   string `json:"title" db:"title"`
	Content string `json:"content" db:"content"`
}
