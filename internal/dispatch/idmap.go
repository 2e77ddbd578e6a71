package dispatch

import (
	"github.com/DanielCayresFilho/midpainel-sub000/internal/domain"
	"github.com/DanielCayresFilho/midpainel-sub000/internal/pkg/logger"
)

// Resolver answers environment-id lookups for one source table. It is built
// once per execution from the table's active mappings and is a pure lookup:
// absence of a mapping is the identity fallback, never an error, so callers
// must not branch on mapped vs unmapped.
type Resolver struct {
	sourceTable string
	exact       map[providerEnv]int
	wildcard    map[int]int
}

type providerEnv struct {
	provider string
	envID    int
}

// NewResolver indexes the active mappings of a source table. Inactive
// mappings and mappings for other tables are ignored.
func NewResolver(sourceTable string, mappings []domain.IDMapping) *Resolver {
	r := &Resolver{
		sourceTable: sourceTable,
		exact:       make(map[providerEnv]int),
		wildcard:    make(map[int]int),
	}
	for _, m := range mappings {
		if !m.Active || m.SourceTable != sourceTable {
			continue
		}
		if m.Provider == domain.WildcardProvider {
			r.wildcard[m.OriginalEnvID] = m.MappedEnvID
			continue
		}
		r.exact[providerEnv{m.Provider, m.OriginalEnvID}] = m.MappedEnvID
	}
	return r
}

// Map resolves the environment id for a destination provider:
// exact provider match, then wildcard, then the original id unchanged.
func (r *Resolver) Map(provider string, envID int) int {
	if mapped, ok := r.exact[providerEnv{provider, envID}]; ok {
		return mapped
	}
	if mapped, ok := r.wildcard[envID]; ok {
		return mapped
	}
	logger.Debug("no id mapping, using original",
		"table", r.sourceTable, "provider", provider, "idgis", envID)
	return envID
}
