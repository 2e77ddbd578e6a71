package audience

import (
	"context"
	"fmt"

	"github.com/DanielCayresFilho/midpainel-sub000/internal/domain"
	"github.com/DanielCayresFilho/midpainel-sub000/internal/pkg/logger"
	"github.com/DanielCayresFilho/midpainel-sub000/internal/segment"
)

const (
	// minBatchSize is the floor for one exclusion-aware fetch round trip.
	minBatchSize = 500
	// batchMultiplier oversizes each batch relative to the remaining quota so
	// moderate exclusion rates are usually absorbed in a single round trip.
	batchMultiplier = 3
	// maxScanRows caps the total rows examined by one exclusion-aware fetch.
	// When the cap is hit the engine returns what it accumulated; a sparse
	// audience under tight exclusion legitimately yields fewer than limit.
	maxScanRows = 10000
)

// Fetcher is the storage boundary the engine reads audience rows through.
// Implementations select only the fixed projection (telefone, nome, idgis,
// contrato, cpf) and must return pages in a stable order so that advancing
// the offset never skips or repeats rows.
type Fetcher interface {
	FetchPage(ctx context.Context, table string, pred segment.Predicate, limit, offset int) ([]domain.AudienceRecord, error)
	Count(ctx context.Context, table string, pred segment.Predicate) (int, error)
	DistinctEnvIDs(ctx context.Context, table string, pred segment.Predicate) ([]int, error)
}

// Result is the outcome of an exclusion-aware fetch. SkippedRecent counts
// rows dropped by the recent-contact exclusion (surfaced to operators
// separately from failures); SkippedDuplicate counts same-run duplicates.
type Result struct {
	Records          []domain.AudienceRecord
	SkippedRecent    int
	SkippedDuplicate int
	Scanned          int
}

// Engine executes compiled predicates against source tables.
type Engine struct {
	fetcher Fetcher
}

// NewEngine creates an audience engine over the given storage boundary.
func NewEngine(f Fetcher) *Engine {
	return &Engine{fetcher: f}
}

// Count returns the number of rows matching the predicate.
func (e *Engine) Count(ctx context.Context, table string, pred segment.Predicate) (int, error) {
	return e.fetcher.Count(ctx, table, pred)
}

// DistinctEnvIDs returns the distinct environment ids among matching rows.
func (e *Engine) DistinctEnvIDs(ctx context.Context, table string, pred segment.Predicate) ([]int, error) {
	return e.fetcher.DistinctEnvIDs(ctx, table, pred)
}

// Fetch is the direct, one-shot mode: up to limit rows matching the
// predicate, no exclusion. limit 0 means unlimited.
func (e *Engine) Fetch(ctx context.Context, table string, pred segment.Predicate, limit int) ([]domain.AudienceRecord, error) {
	records, err := e.fetcher.FetchPage(ctx, table, pred, limit, 0)
	if err != nil {
		return nil, fmt.Errorf("fetch audience: %w", err)
	}
	return records, nil
}

// FetchEligible returns up to limit distinct-recipient rows that are not in
// the recent set. Because the exclusion cannot be pushed into a plain LIMIT,
// it scans in oversized batches with an advancing offset until the quota is
// met, the table is exhausted, or maxScanRows rows have been examined.
// limit 0 means no quota (scan until exhaustion or cap).
func (e *Engine) FetchEligible(ctx context.Context, table string, pred segment.Predicate, limit int, recent *RecentContactSet) (*Result, error) {
	batch := minBatchSize
	if limit > 0 && limit*batchMultiplier > batch {
		batch = limit * batchMultiplier
	}

	res := &Result{}
	seen := make(map[string]struct{})
	offset := 0

	for {
		// Never request past the cap, so Scanned stays exact.
		request := batch
		if rem := maxScanRows - res.Scanned; request > rem {
			request = rem
		}
		page, err := e.fetcher.FetchPage(ctx, table, pred, request, offset)
		if err != nil {
			return nil, fmt.Errorf("fetch audience page (offset %d): %w", offset, err)
		}
		if len(page) == 0 {
			break
		}

		for _, rec := range page {
			res.Scanned++
			key := rec.RecipientKey()
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				res.SkippedDuplicate++
				continue
			}
			if recent.Contains(key) {
				seen[key] = struct{}{}
				res.SkippedRecent++
				continue
			}
			seen[key] = struct{}{}
			res.Records = append(res.Records, rec)
			if limit > 0 && len(res.Records) >= limit {
				return res, nil
			}
		}

		if res.Scanned >= maxScanRows {
			logger.Warn("audience scan cap reached",
				"table", table,
				"scanned", res.Scanned,
				"accumulated", len(res.Records),
				"limit", limit)
			break
		}
		if len(page) < request {
			break
		}
		offset += len(page)
	}

	return res, nil
}
