package dispatch

import (
	"math"
	"math/rand"
	"time"

	"github.com/DanielCayresFilho/midpainel-sub000/internal/domain"
)

// Distributor partitions an audience across outbound providers. The split
// shuffle is randomized on every run on purpose: re-running an identical
// campaign produces a different partition. Tests inject a seeded source to
// make partition contents deterministic.
type Distributor struct {
	rnd *rand.Rand
}

// NewDistributor creates a distributor seeded from the clock.
func NewDistributor() *Distributor {
	return NewDistributorWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewDistributorWithSource creates a distributor with a caller-controlled
// randomness source.
func NewDistributorWithSource(src rand.Source) *Distributor {
	return &Distributor{rnd: rand.New(src)}
}

// Distribute divides the audience per the policy. The returned map never
// contains empty groups; an empty provider list yields an empty map, which
// callers must treat as "cannot proceed" rather than an error.
func (d *Distributor) Distribute(records []domain.AudienceRecord, policy domain.DistributionPolicy) map[string][]domain.AudienceRecord {
	out := make(map[string][]domain.AudienceRecord)
	if len(policy.Providers) == 0 || len(records) == 0 {
		return out
	}

	if policy.Mode == domain.DistributionBroadcast {
		for _, p := range policy.Providers {
			group := make([]domain.AudienceRecord, len(records))
			copy(group, records)
			out[p] = group
		}
		return out
	}

	// Split mode: shuffle a copy so the input order is preserved for callers.
	shuffled := make([]domain.AudienceRecord, len(records))
	copy(shuffled, records)
	d.rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	pcts := normalizePercentages(policy.Providers, policy.Percentages)
	total := len(shuffled)
	start := 0
	for i, p := range policy.Providers {
		var size int
		if i == len(policy.Providers)-1 {
			// Last provider absorbs the exact remainder so the partition is
			// exhaustive regardless of rounding.
			size = total - start
		} else {
			size = int(math.Round(pcts[p] / 100 * float64(total)))
			if size > total-start {
				size = total - start
			}
		}
		if size <= 0 {
			continue
		}
		out[p] = shuffled[start : start+size]
		start += size
	}
	return out
}

// normalizePercentages scales the configured percentages so they sum to 100.
// Providers with no configured percentage share the residual equally; an
// all-zero configuration degrades to an even split.
func normalizePercentages(providers []string, pcts map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(providers))
	var sum float64
	for _, p := range providers {
		v := pcts[p]
		if v < 0 {
			v = 0
		}
		out[p] = v
		sum += v
	}
	if sum == 0 {
		each := 100 / float64(len(providers))
		for _, p := range providers {
			out[p] = each
		}
		return out
	}
	if sum != 100 {
		for p, v := range out {
			out[p] = v * 100 / sum
		}
	}
	return out
}
