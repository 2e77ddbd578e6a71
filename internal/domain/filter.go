package domain

// FilterKind classifies how a column can be filtered by the campaign builder UI.
type FilterKind string

const (
	// FilterNumeric columns take a comparison operator plus a value supplied
	// by the operator; no enumerated values are offered.
	FilterNumeric FilterKind = "numeric"
	// FilterCategorical columns offer an enumeration of their distinct values.
	FilterCategorical FilterKind = "categorical"
)

// FilterOperator enumerates the comparison operators accepted by the
// predicate compiler.
type FilterOperator string

const (
	OpEquals    FilterOperator = "="
	OpNotEquals FilterOperator = "!="
	OpGt        FilterOperator = ">"
	OpLt        FilterOperator = "<"
	OpGte       FilterOperator = ">="
	OpLte       FilterOperator = "<="
	OpIn        FilterOperator = "IN"
)

// FilterSpec is a single user-supplied filter against the source table.
// Specs originate from a dynamic UI and are untrusted: malformed specs are
// skipped by the compiler, never escalated to a request failure.
type FilterSpec struct {
	Column   string         `json:"column"`
	Kind     FilterKind     `json:"kind,omitempty"`
	Operator FilterOperator `json:"operator"`
	Value    string         `json:"value,omitempty"`
	Values   []string       `json:"values,omitempty"` // IN operator only
}

// FilterableColumn describes one introspected column of a source table.
// Values is populated only for categorical columns.
type FilterableColumn struct {
	Name          string     `json:"name"`
	Kind          FilterKind `json:"kind"`
	DistinctCount int        `json:"distinct_count"`
	Values        []string   `json:"values,omitempty"`
}
