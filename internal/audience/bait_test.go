package audience

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanielCayresFilho/midpainel-sub000/internal/domain"
)

type memBaitStore struct {
	baits []domain.Bait
}

func (m *memBaitStore) ListActiveBaits(_ context.Context) ([]domain.Bait, error) {
	return m.baits, nil
}

func TestInjectAddsMatchingBaits(t *testing.T) {
	store := &memBaitStore{baits: []domain.Bait{
		{ID: 1, Phone: "11911111111", Name: "Monitor SP", EnvironmentID: 364, Active: true},
		{ID: 2, Phone: "21922222222", Name: "Monitor RJ", EnvironmentID: 999, Active: true},
	}}
	injector := NewInjector(store)

	records := []domain.AudienceRecord{
		{Phone: "11987654321", Name: "Cliente A", EnvironmentID: 364},
		{Phone: "11987654322", Name: "Cliente B", EnvironmentID: 364},
	}

	out, count, err := injector.Inject(context.Background(), records)
	require.NoError(t, err)

	// Only the bait whose environment occurs in the audience rides along.
	assert.Equal(t, 1, count)
	require.Len(t, out, 3)

	bait := out[2]
	assert.Equal(t, "11911111111", bait.Phone)
	assert.Equal(t, "Monitor SP - ISCA", bait.Name)
	assert.Equal(t, 364, bait.EnvironmentID)
	assert.Zero(t, bait.ContractID)
	assert.Empty(t, bait.TaxID)
}

func TestInjectNoMatchingEnvironment(t *testing.T) {
	store := &memBaitStore{baits: []domain.Bait{
		{ID: 1, Phone: "11911111111", Name: "Monitor", EnvironmentID: 364, Active: true},
	}}
	injector := NewInjector(store)

	records := []domain.AudienceRecord{
		{Phone: "11987654321", EnvironmentID: 120},
	}

	out, count, err := injector.Inject(context.Background(), records)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Len(t, out, 1)
}

func TestInjectEmptyAudience(t *testing.T) {
	injector := NewInjector(&memBaitStore{baits: []domain.Bait{{EnvironmentID: 364}}})

	out, count, err := injector.Inject(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, out)
}

func TestEligibleForEnvs(t *testing.T) {
	store := &memBaitStore{baits: []domain.Bait{
		{ID: 1, EnvironmentID: 364},
		{ID: 2, EnvironmentID: 120},
		{ID: 3, EnvironmentID: 364},
	}}
	injector := NewInjector(store)

	baits, err := injector.EligibleForEnvs(context.Background(), []int{364, 500})
	require.NoError(t, err)
	require.Len(t, baits, 2)
	assert.Equal(t, 1, baits[0].ID)
	assert.Equal(t, 3, baits[1].ID)
}
