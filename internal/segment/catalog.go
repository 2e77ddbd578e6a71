package segment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/DanielCayresFilho/midpainel-sub000/internal/domain"
)

// ErrNoColumnsFound is returned when a table exposes no introspectable columns.
var ErrNoColumnsFound = errors.New("no filterable columns found")

const (
	// categoricalThreshold is the distinct-count above which a numeric column
	// stops being treated as an enumeration.
	categoricalThreshold = 50
	// maxCategoricalValues caps how many distinct values are returned for a
	// categorical column.
	maxCategoricalValues = 100
)

// columnDenylist holds identifying/PII/audit columns that must never be
// offered as filters.
var columnDenylist = map[string]bool{
	"id":            true,
	"telefone":      true,
	"phone":         true,
	"nome":          true,
	"name":          true,
	"cpf":           true,
	"contrato":      true,
	"idgis":         true,
	"created_at":    true,
	"updated_at":    true,
	"data_criacao":  true,
	"data_registro": true,
}

// ColumnInfo is the raw column metadata reported by the storage boundary.
type ColumnInfo struct {
	Name     string
	DataType string
}

// IsNumeric reports whether the declared SQL type is numeric.
func (c ColumnInfo) IsNumeric() bool {
	switch strings.ToLower(c.DataType) {
	case "smallint", "integer", "bigint", "int", "int2", "int4", "int8",
		"numeric", "decimal", "real", "double precision", "float4", "float8":
		return true
	}
	return false
}

// CatalogStore is the storage boundary the catalog builder introspects through.
type CatalogStore interface {
	// ListColumns returns the columns of a table, or an empty slice when the
	// table has none (including when it does not exist).
	ListColumns(ctx context.Context, table string) ([]ColumnInfo, error)
	// CountDistinct counts distinct non-null values of a column.
	CountDistinct(ctx context.Context, table, column string) (int, error)
	// DistinctValues returns up to limit distinct non-null, non-empty values
	// sorted ascending.
	DistinctValues(ctx context.Context, table, column string, limit int) ([]string, error)
}

// Catalog classifies a source table's columns as numeric-range-filterable or
// categorical. The optional cache short-circuits repeated introspection of the
// same table; failures there degrade silently to direct queries.
type Catalog struct {
	store CatalogStore
	cache *CatalogCache
}

// NewCatalog creates a catalog builder. cache may be nil.
func NewCatalog(store CatalogStore, cache *CatalogCache) *Catalog {
	return &Catalog{store: store, cache: cache}
}

// ListFilterableColumns inspects the table and classifies every column not in
// the denylist. Returns ErrNoColumnsFound when nothing is introspectable.
func (c *Catalog) ListFilterableColumns(ctx context.Context, table string) ([]domain.FilterableColumn, error) {
	if !identifierRe.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	if c.cache != nil {
		if cols, ok := c.cache.Get(ctx, table); ok {
			return cols, nil
		}
	}

	cols, err := c.store.ListColumns(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}
	if len(cols) == 0 {
		return nil, ErrNoColumnsFound
	}

	var out []domain.FilterableColumn
	for _, col := range cols {
		if columnDenylist[strings.ToLower(col.Name)] {
			continue
		}

		distinct, err := c.store.CountDistinct(ctx, table, col.Name)
		if err != nil {
			return nil, fmt.Errorf("count distinct %s.%s: %w", table, col.Name, err)
		}

		if col.IsNumeric() && distinct > categoricalThreshold {
			out = append(out, domain.FilterableColumn{
				Name:          col.Name,
				Kind:          domain.FilterNumeric,
				DistinctCount: distinct,
			})
			continue
		}

		values, err := c.store.DistinctValues(ctx, table, col.Name, maxCategoricalValues)
		if err != nil {
			return nil, fmt.Errorf("distinct values %s.%s: %w", table, col.Name, err)
		}
		sort.Strings(values)
		out = append(out, domain.FilterableColumn{
			Name:          col.Name,
			Kind:          domain.FilterCategorical,
			DistinctCount: distinct,
			Values:        values,
		})
	}

	if len(out) == 0 {
		return nil, ErrNoColumnsFound
	}

	if c.cache != nil {
		c.cache.Put(ctx, table, out)
	}
	return out, nil
}
