package audience

import (
	"time"

	"github.com/DanielCayresFilho/midpainel-sub000/internal/domain"
)

// RecentContactSet holds the recipient keys contacted inside the rolling
// exclusion window. A nil set excludes nobody, which lets callers opt out of
// the exclusion by simply not loading one.
type RecentContactSet struct {
	keys map[string]struct{}
}

// NewRecentContactSet builds a set from raw phone numbers or recipient keys;
// every entry is normalized before insertion.
func NewRecentContactSet(phones []string) *RecentContactSet {
	s := &RecentContactSet{keys: make(map[string]struct{}, len(phones))}
	for _, p := range phones {
		if k := domain.NormalizePhone(p); k != "" {
			s.keys[k] = struct{}{}
		}
	}
	return s
}

// Contains reports whether the recipient key was recently contacted.
func (s *RecentContactSet) Contains(key string) bool {
	if s == nil {
		return false
	}
	_, ok := s.keys[key]
	return ok
}

// Len returns the number of distinct recently-contacted recipients.
func (s *RecentContactSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// RecentWindowStart returns the lower bound of the exclusion window:
// midnight of the previous day, local time. A recipient dispatched to at any
// point since then is skipped, which enforces the no-two-consecutive-days
// policy per recipient.
func RecentWindowStart(now time.Time) time.Time {
	y := now.AddDate(0, 0, -1)
	return time.Date(y.Year(), y.Month(), y.Day(), 0, 0, 0, 0, now.Location())
}
