package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DanielCayresFilho/midpainel-sub000/internal/domain"
)

func TestResolverExactBeatsWildcard(t *testing.T) {
	r := NewResolver("clientes_sp", []domain.IDMapping{
		{SourceTable: "clientes_sp", Provider: "zenvia", OriginalEnvID: 120, MappedEnvID: 900, Active: true},
		{SourceTable: "clientes_sp", Provider: "*", OriginalEnvID: 120, MappedEnvID: 500, Active: true},
	})

	assert.Equal(t, 900, r.Map("zenvia", 120))
	// Other providers fall through to the wildcard.
	assert.Equal(t, 500, r.Map("infobip", 120))
}

func TestResolverIdentityFallback(t *testing.T) {
	r := NewResolver("clientes_sp", []domain.IDMapping{
		{SourceTable: "clientes_sp", Provider: "zenvia", OriginalEnvID: 120, MappedEnvID: 900, Active: true},
	})

	assert.Equal(t, 364, r.Map("zenvia", 364))
	assert.Equal(t, 120, r.Map("twilio", 120))
}

func TestResolverIgnoresInactiveAndForeignTables(t *testing.T) {
	r := NewResolver("clientes_sp", []domain.IDMapping{
		{SourceTable: "clientes_sp", Provider: "zenvia", OriginalEnvID: 120, MappedEnvID: 900, Active: false},
		{SourceTable: "clientes_rj", Provider: "zenvia", OriginalEnvID: 120, MappedEnvID: 777, Active: true},
	})

	assert.Equal(t, 120, r.Map("zenvia", 120))
}

func TestResolverEmptyMappings(t *testing.T) {
	r := NewResolver("clientes_sp", nil)
	assert.Equal(t, 42, r.Map("zenvia", 42))
}
