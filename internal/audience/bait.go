package audience

import (
	"context"
	"fmt"

	"github.com/DanielCayresFilho/midpainel-sub000/internal/domain"
)

// BaitStore lists the monitoring recipients eligible for injection.
type BaitStore interface {
	ListActiveBaits(ctx context.Context) ([]domain.Bait, error)
}

// Injector appends monitoring baits to a resolved audience. A bait is
// injected only when its environment id already occurs among the filtered
// records; baits are never subject to the recent-contact exclusion.
type Injector struct {
	store BaitStore
}

// NewInjector creates a bait injector over the given store.
func NewInjector(store BaitStore) *Injector {
	return &Injector{store: store}
}

// Eligible returns the active baits whose environment id occurs in records.
func (i *Injector) Eligible(ctx context.Context, records []domain.AudienceRecord) ([]domain.Bait, error) {
	if len(records) == 0 {
		return nil, nil
	}
	envs := make([]int, 0, len(records))
	for _, r := range records {
		envs = append(envs, r.EnvironmentID)
	}
	return i.EligibleForEnvs(ctx, envs)
}

// EligibleForEnvs returns the active baits whose environment id is in envIDs.
// Used by the preview path, which only needs the distinct env ids of the
// filtered audience rather than the full row set.
func (i *Injector) EligibleForEnvs(ctx context.Context, envIDs []int) ([]domain.Bait, error) {
	if len(envIDs) == 0 {
		return nil, nil
	}
	baits, err := i.store.ListActiveBaits(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active baits: %w", err)
	}
	if len(baits) == 0 {
		return nil, nil
	}

	envs := make(map[int]struct{}, len(envIDs))
	for _, id := range envIDs {
		envs[id] = struct{}{}
	}

	var eligible []domain.Bait
	for _, b := range baits {
		if _, ok := envs[b.EnvironmentID]; ok {
			eligible = append(eligible, b)
		}
	}
	return eligible, nil
}

// Inject appends the eligible baits as synthetic records and returns the
// extended slice plus the bait count. Callers report the count separately so
// operators can tell real reach from monitoring inflation.
func (i *Injector) Inject(ctx context.Context, records []domain.AudienceRecord) ([]domain.AudienceRecord, int, error) {
	eligible, err := i.Eligible(ctx, records)
	if err != nil {
		return nil, 0, err
	}
	for _, b := range eligible {
		records = append(records, b.AsRecord())
	}
	return records, len(eligible), nil
}
