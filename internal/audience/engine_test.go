package audience

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanielCayresFilho/midpainel-sub000/internal/domain"
	"github.com/DanielCayresFilho/midpainel-sub000/internal/segment"
)

// memFetcher serves a fixed row set with real limit/offset paging.
type memFetcher struct {
	rows  []domain.AudienceRecord
	calls int
}

func (f *memFetcher) FetchPage(_ context.Context, _ string, _ segment.Predicate, limit, offset int) ([]domain.AudienceRecord, error) {
	f.calls++
	if offset >= len(f.rows) {
		return nil, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(f.rows) {
		end = len(f.rows)
	}
	return f.rows[offset:end], nil
}

func (f *memFetcher) Count(_ context.Context, _ string, _ segment.Predicate) (int, error) {
	return len(f.rows), nil
}

func (f *memFetcher) DistinctEnvIDs(_ context.Context, _ string, _ segment.Predicate) ([]int, error) {
	seen := map[int]struct{}{}
	var out []int
	for _, r := range f.rows {
		if _, ok := seen[r.EnvironmentID]; !ok {
			seen[r.EnvironmentID] = struct{}{}
			out = append(out, r.EnvironmentID)
		}
	}
	return out, nil
}

func makeRows(n int) []domain.AudienceRecord {
	rows := make([]domain.AudienceRecord, n)
	for i := range rows {
		rows[i] = domain.AudienceRecord{
			Phone:         fmt.Sprintf("119%08d", i),
			Name:          fmt.Sprintf("Cliente %d", i),
			EnvironmentID: 100 + i%3,
		}
	}
	return rows
}

func TestFetchEligibleMeetsQuotaDespiteExclusion(t *testing.T) {
	rows := makeRows(300)

	// The first 40 recipients were contacted inside the window.
	var recentPhones []string
	for i := 0; i < 40; i++ {
		recentPhones = append(recentPhones, rows[i].Phone)
	}
	recent := NewRecentContactSet(recentPhones)

	engine := NewEngine(&memFetcher{rows: rows})
	res, err := engine.FetchEligible(context.Background(), "clientes_sp", segment.Predicate{SQL: "1=1"}, 50, recent)
	require.NoError(t, err)

	assert.Len(t, res.Records, 50)
	assert.Equal(t, 40, res.SkippedRecent)
	assert.Equal(t, 90, res.Scanned)
	for _, rec := range res.Records {
		assert.False(t, recent.Contains(rec.RecipientKey()))
	}
}

func TestFetchEligibleDeduplicatesWithinRun(t *testing.T) {
	rows := makeRows(10)
	// Same recipient twice, once with the country prefix.
	rows = append(rows, domain.AudienceRecord{Phone: "55" + rows[0].Phone, Name: "Duplicado"})

	engine := NewEngine(&memFetcher{rows: rows})
	res, err := engine.FetchEligible(context.Background(), "clientes_sp", segment.Predicate{SQL: "1=1"}, 0, nil)
	require.NoError(t, err)

	assert.Len(t, res.Records, 10)
	assert.Equal(t, 1, res.SkippedDuplicate)
}

func TestFetchEligibleScanCap(t *testing.T) {
	rows := makeRows(12000)
	// Everybody is excluded, so the scan runs until the cap.
	var phones []string
	for _, r := range rows {
		phones = append(phones, r.Phone)
	}
	recent := NewRecentContactSet(phones)

	engine := NewEngine(&memFetcher{rows: rows})
	res, err := engine.FetchEligible(context.Background(), "clientes_sp", segment.Predicate{SQL: "1=1"}, 100, recent)
	require.NoError(t, err)

	assert.Empty(t, res.Records)
	assert.Equal(t, maxScanRows, res.Scanned)
}

func TestFetchEligibleClampsBatchToScanCap(t *testing.T) {
	rows := makeRows(15000)
	var phones []string
	for _, r := range rows {
		phones = append(phones, r.Phone)
	}
	recent := NewRecentContactSet(phones)

	// Quota 4000 would size batches at 12000; the request must be clamped so
	// a single oversized page cannot push the scan past the cap.
	f := &memFetcher{rows: rows}
	engine := NewEngine(f)
	res, err := engine.FetchEligible(context.Background(), "clientes_sp", segment.Predicate{SQL: "1=1"}, 4000, recent)
	require.NoError(t, err)

	assert.Empty(t, res.Records)
	assert.Equal(t, maxScanRows, res.Scanned)
	assert.Equal(t, 1, f.calls)
}

func TestFetchEligibleExhaustsSmallTable(t *testing.T) {
	rows := makeRows(30)
	engine := NewEngine(&memFetcher{rows: rows})

	res, err := engine.FetchEligible(context.Background(), "clientes_sp", segment.Predicate{SQL: "1=1"}, 200, nil)
	require.NoError(t, err)

	assert.Len(t, res.Records, 30)
	assert.Equal(t, 30, res.Scanned)
}

func TestFetchEligibleBatchSizing(t *testing.T) {
	f := &memFetcher{rows: makeRows(2000)}
	engine := NewEngine(f)

	// Quota 400 means batches of 1200; one round trip suffices with no
	// exclusion in play.
	res, err := engine.FetchEligible(context.Background(), "clientes_sp", segment.Predicate{SQL: "1=1"}, 400, nil)
	require.NoError(t, err)
	assert.Len(t, res.Records, 400)
	assert.Equal(t, 1, f.calls)
}

func TestFetchDirect(t *testing.T) {
	engine := NewEngine(&memFetcher{rows: makeRows(20)})

	records, err := engine.Fetch(context.Background(), "clientes_sp", segment.Predicate{SQL: "1=1"}, 5)
	require.NoError(t, err)
	assert.Len(t, records, 5)
}
