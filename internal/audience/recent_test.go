package audience

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecentContactSetNormalizes(t *testing.T) {
	s := NewRecentContactSet([]string{"5511987654321", "(21) 91234-5678"})

	// Window entries and lookups meet at the normalized key.
	assert.True(t, s.Contains("11987654321"))
	assert.True(t, s.Contains("21912345678"))
	assert.False(t, s.Contains("31999998888"))
	assert.Equal(t, 2, s.Len())
}

func TestRecentContactSetNil(t *testing.T) {
	var s *RecentContactSet
	assert.False(t, s.Contains("11987654321"))
	assert.Equal(t, 0, s.Len())
}

func TestRecentWindowStart(t *testing.T) {
	now := time.Date(2025, 3, 15, 14, 30, 0, 0, time.Local)
	start := RecentWindowStart(now)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local), start)
}

func TestRecentWindowStartCrossesMonth(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 5, 0, 0, time.Local)
	start := RecentWindowStart(now)
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.Local), start)
}

func TestRecentWindowBoundaries(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.Local)
	start := RecentWindowStart(now)

	// Contacted yesterday or today: inside the window.
	assert.False(t, time.Date(2025, 6, 9, 0, 0, 0, 0, time.Local).Before(start))
	assert.False(t, time.Date(2025, 6, 10, 8, 59, 0, 0, time.Local).Before(start))

	// Contacted two days ago: outside, eligible again.
	assert.True(t, time.Date(2025, 6, 8, 23, 59, 59, 0, time.Local).Before(start))
}
