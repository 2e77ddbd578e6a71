package campaign

import (
	"errors"
	"fmt"
)

// Sentinel errors for the campaign service layer.
var (
	ErrNotFound             = errors.New("campaign not found")
	ErrTemplateNotFound     = errors.New("template not found")
	ErrCampaignInactive     = errors.New("campaign is not active")
	ErrNoEligibleRecipients = errors.New("no eligible recipients after filters and exclusions")
	ErrExecutionInProgress  = errors.New("campaign execution already in progress")
)

// ValidationError reports a missing or malformed required field. It fails
// fast: nothing has been persisted when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PersistenceError reports a storage failure during the bulk-insert stage.
// Chunks written before the failure stay committed, so Inserted tells the
// caller how many dispatch records actually made it to storage.
type PersistenceError struct {
	Inserted int
	Err      error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist dispatch records (%d inserted before failure): %v", e.Inserted, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
