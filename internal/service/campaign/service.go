package campaign

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/DanielCayresFilho/midpainel-sub000/internal/audience"
	"github.com/DanielCayresFilho/midpainel-sub000/internal/dispatch"
	"github.com/DanielCayresFilho/midpainel-sub000/internal/domain"
	"github.com/DanielCayresFilho/midpainel-sub000/internal/pkg/distlock"
	"github.com/DanielCayresFilho/midpainel-sub000/internal/segment"
)

// insertChunkSize bounds a single bulk-insert statement. Chunking is for
// statement size only, not transactional isolation: a failure mid-run leaves
// earlier chunks committed.
const insertChunkSize = 500

// LockFactory builds an advisory lock for a given key. A nil factory leaves
// recurring executions unguarded against concurrent "execute now" triggers.
type LockFactory func(key string) distlock.DistLock

// Deps wires the service to its collaborators. Locks and Now are optional.
type Deps struct {
	Engine      *audience.Engine
	Baits       *audience.Injector
	Distributor *dispatch.Distributor
	Renderer    *dispatch.Renderer
	Recurring   RecurringRepo
	Dispatches  DispatchRepo
	Templates   TemplateStore
	Mappings    MappingRepo
	BaitRepo    BaitRepo
	Locks       LockFactory
	Now         func() time.Time
}

// Service implements the operator-facing campaign operations. All public
// methods are synchronous and request-scoped; the only multi-round-trip
// operation is the audience batch scan inside the engine.
type Service struct {
	engine      *audience.Engine
	baits       *audience.Injector
	distributor *dispatch.Distributor
	renderer    *dispatch.Renderer
	recurring   RecurringRepo
	dispatches  DispatchRepo
	templates   TemplateStore
	mappings    MappingRepo
	baitRepo    BaitRepo
	locks       LockFactory
	now         func() time.Time
}

// NewService creates a campaign service.
func NewService(d Deps) *Service {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		engine:      d.Engine,
		baits:       d.Baits,
		distributor: d.Distributor,
		renderer:    d.Renderer,
		recurring:   d.Recurring,
		dispatches:  d.Dispatches,
		templates:   d.Templates,
		mappings:    d.Mappings,
		baitRepo:    d.BaitRepo,
		locks:       d.Locks,
		now:         now,
	}
}

// CountResult reports an audience count plus the filters the compiler dropped.
type CountResult struct {
	Count          int                   `json:"count"`
	IgnoredFilters []segment.IgnoredSpec `json:"ignored_filters,omitempty"`
}

// CountAudience returns how many rows of table match the filters.
func (s *Service) CountAudience(ctx context.Context, table string, filters []domain.FilterSpec) (*CountResult, error) {
	pred, ignored := segment.Compile(filters)
	n, err := s.engine.Count(ctx, table, pred)
	if err != nil {
		return nil, fmt.Errorf("count audience: %w", err)
	}
	return &CountResult{Count: n, IgnoredFilters: ignored}, nil
}

// PreviewBaits returns the active baits that would be injected for the given
// filters, without touching dispatch state.
func (s *Service) PreviewBaits(ctx context.Context, table string, filters []domain.FilterSpec) ([]domain.Bait, error) {
	pred, _ := segment.Compile(filters)
	envs, err := s.engine.DistinctEnvIDs(ctx, table, pred)
	if err != nil {
		return nil, fmt.Errorf("distinct environment ids: %w", err)
	}
	return s.baits.EligibleForEnvs(ctx, envs)
}

// OneShotInput holds the parameters of a one-shot campaign execution.
// ExcludeRecent defaults to true when nil.
type OneShotInput struct {
	SourceTable   string                    `json:"source_table"`
	Filters       []domain.FilterSpec       `json:"filters"`
	Policy        domain.DistributionPolicy `json:"distribution_policy"`
	TemplateID    int                       `json:"template_id"`
	RecordLimit   int                       `json:"record_limit"`
	ExcludeRecent *bool                     `json:"exclude_recent,omitempty"`
}

// ExecutionResult reports what one execution produced. Counts are split so
// operators can tell real reach (PerProvider) from monitoring inflation
// (BaitCount) and from exclusion skips (SkippedRecent), which are never
// failures.
type ExecutionResult struct {
	BatchID        string                `json:"batch_id"`
	Total          int                   `json:"total"`
	PerProvider    map[string]int        `json:"per_provider"`
	BaitCount      int                   `json:"bait_count"`
	SkippedRecent  int                   `json:"skipped_recent"`
	Scanned        int                   `json:"scanned"`
	IgnoredFilters []segment.IgnoredSpec `json:"ignored_filters,omitempty"`
}

// ExecuteOneShot runs the full pipeline once for an ad-hoc campaign.
func (s *Service) ExecuteOneShot(ctx context.Context, in OneShotInput) (*ExecutionResult, error) {
	if err := validatePolicy(in.SourceTable, in.Policy, in.TemplateID); err != nil {
		return nil, err
	}

	tpl, err := s.templates.GetTemplate(ctx, in.TemplateID)
	if err != nil {
		return nil, err
	}

	excludeRecent := true
	if in.ExcludeRecent != nil {
		excludeRecent = *in.ExcludeRecent
	}

	return s.execute(ctx, in.SourceTable, in.Filters, in.Policy, tpl, in.RecordLimit, excludeRecent)
}

// execute is the shared pipeline behind one-shot and recurring runs. The
// template must already be resolved: its absence is a precondition failure
// that must not reach this stage.
func (s *Service) execute(ctx context.Context, table string, filters []domain.FilterSpec, policy domain.DistributionPolicy, tpl *domain.Template, limit int, excludeRecent bool) (*ExecutionResult, error) {
	pred, ignored := segment.Compile(filters)

	var fetched *audience.Result
	if excludeRecent {
		phones, err := s.dispatches.RecentlyContactedPhones(ctx, audience.RecentWindowStart(s.now()))
		if err != nil {
			return nil, fmt.Errorf("load recent contacts: %w", err)
		}
		fetched, err = s.engine.FetchEligible(ctx, table, pred, limit, audience.NewRecentContactSet(phones))
		if err != nil {
			return nil, err
		}
	} else {
		records, err := s.engine.Fetch(ctx, table, pred, limit)
		if err != nil {
			return nil, err
		}
		fetched = &audience.Result{Records: records, Scanned: len(records)}
	}

	result := &ExecutionResult{
		BatchID:        uuid.New().String(),
		PerProvider:    make(map[string]int),
		SkippedRecent:  fetched.SkippedRecent,
		Scanned:        fetched.Scanned,
		IgnoredFilters: ignored,
	}

	if len(fetched.Records) == 0 {
		return result, ErrNoEligibleRecipients
	}

	records, baitCount, err := s.baits.Inject(ctx, fetched.Records)
	if err != nil {
		return nil, err
	}
	result.BaitCount = baitCount

	groups := s.distributor.Distribute(records, policy)
	if len(groups) == 0 {
		return result, ErrNoEligibleRecipients
	}

	mappings, err := s.mappings.ListForTable(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("load id mappings: %w", err)
	}
	resolver := dispatch.NewResolver(table, mappings)

	createdAt := s.now()
	var batch []domain.DispatchRecord
	for _, provider := range policy.Providers {
		group, ok := groups[provider]
		if !ok {
			continue
		}
		for _, rec := range group {
			mapped := rec
			mapped.EnvironmentID = resolver.Map(provider, rec.EnvironmentID)
			batch = append(batch, domain.DispatchRecord{
				BatchID:       result.BatchID,
				Phone:         rec.Phone,
				Name:          rec.Name,
				EnvironmentID: mapped.EnvironmentID,
				ContractID:    rec.ContractID,
				TaxID:         rec.TaxID,
				Message:       s.renderer.Render(tpl.Content, mapped),
				Provider:      provider,
				Status:        domain.DispatchPendingApproval,
				CreatedAt:     createdAt,
			})
		}
		result.PerProvider[provider] = len(group)
	}

	inserted, err := s.insertChunked(ctx, batch)
	result.Total = inserted
	if err != nil {
		return result, err
	}

	log.Printf("[campaign.Service] batch %s: %d dispatch records across %d providers (%d baits, %d skipped recent)",
		result.BatchID, result.Total, len(result.PerProvider), result.BaitCount, result.SkippedRecent)
	return result, nil
}

// insertChunked persists dispatch records in chunks of insertChunkSize.
// On failure it reports how many records were committed before the failing
// chunk; those stay committed (at-least-once, not atomic).
func (s *Service) insertChunked(ctx context.Context, records []domain.DispatchRecord) (int, error) {
	inserted := 0
	for start := 0; start < len(records); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(records) {
			end = len(records)
		}
		if err := s.dispatches.BulkInsert(ctx, records[start:end]); err != nil {
			return inserted, &PersistenceError{Inserted: inserted, Err: err}
		}
		inserted = end
	}
	return inserted, nil
}

func validatePolicy(table string, policy domain.DistributionPolicy, templateID int) error {
	if table == "" {
		return &ValidationError{Field: "source_table", Reason: "required"}
	}
	if templateID <= 0 {
		return &ValidationError{Field: "template_id", Reason: "required"}
	}
	if len(policy.Providers) == 0 {
		return &ValidationError{Field: "distribution_policy.providers", Reason: "at least one provider required"}
	}
	switch policy.Mode {
	case domain.DistributionSplit, domain.DistributionBroadcast:
	default:
		return &ValidationError{Field: "distribution_policy.mode", Reason: fmt.Sprintf("unknown mode %q", policy.Mode)}
	}
	return nil
}
