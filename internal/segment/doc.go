// Package segment turns operator-supplied filter state into safe, parameterized
// predicates against a source table, and introspects source tables to tell the
// campaign builder UI which columns are filterable and how.
//
// The compiler is deliberately lenient: filter specs originate from a dynamic
// UI and malformed entries are skipped and reported, never escalated to a
// request failure. Every value is bound as a query parameter; nothing the
// operator types is ever concatenated into SQL.
package segment
