// Package dispatch turns a resolved audience into provider-ready outbound
// records: it partitions the audience across providers per the distribution
// policy, remaps environment ids per destination provider, and renders the
// message template for each record.
package dispatch
