// Package audience resolves the set of recipients a campaign will reach.
//
// It executes compiled predicates against a source table, optionally excludes
// recipients contacted within the rolling no-consecutive-days window, and
// injects monitoring baits. The exclusion-aware fetch is the one place in the
// system that issues multiple sequential round trips for a single logical
// operation; it is bounded by a hard scan cap so a sparse audience can never
// loop forever.
package audience
