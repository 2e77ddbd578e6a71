// Package campaign implements campaign execution and lifecycle management.
//
// The service layer orchestrates the full dispatch pipeline (predicate
// compilation, audience fetch with recent-contact exclusion, bait injection,
// provider distribution, identifier mapping, rendering, and chunked dispatch
// persistence) for both one-shot runs and saved recurring definitions. It
// depends only on repository interfaces defined in this package and should
// never import from api/.
//
// Repository implementations live in repository/postgres/.
package campaign
