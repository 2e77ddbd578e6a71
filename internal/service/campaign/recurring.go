package campaign

import (
	"context"
	"fmt"
	"log"

	"github.com/DanielCayresFilho/midpainel-sub000/internal/domain"
)

// RecurringInput carries the persisted definition of a recurring campaign.
type RecurringInput struct {
	Name        string                    `json:"name"`
	SourceTable string                    `json:"source_table"`
	Filters     []domain.FilterSpec       `json:"filters"`
	Policy      domain.DistributionPolicy `json:"distribution_policy"`
	TemplateID  int                       `json:"template_id"`
	RecordLimit int                       `json:"record_limit"`
	OwnerID     string                    `json:"owner_id"`
}

// SaveRecurring creates a new recurring campaign or, when id is non-empty,
// replaces an existing one.
func (s *Service) SaveRecurring(ctx context.Context, id string, in RecurringInput) (*domain.RecurringCampaign, error) {
	if in.Name == "" {
		return nil, &ValidationError{Field: "name", Reason: "required"}
	}
	if err := validatePolicy(in.SourceTable, in.Policy, in.TemplateID); err != nil {
		return nil, err
	}

	now := s.now()
	c := &domain.RecurringCampaign{
		ID:          id,
		Name:        in.Name,
		SourceTable: in.SourceTable,
		Filters:     in.Filters,
		Policy:      in.Policy,
		TemplateID:  in.TemplateID,
		RecordLimit: in.RecordLimit,
		Active:      true,
		OwnerID:     in.OwnerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if id != "" {
		existing, err := s.recurring.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		c.Active = existing.Active
		c.LastExecutedAt = existing.LastExecutedAt
		c.CreatedAt = existing.CreatedAt
		if c.OwnerID == "" {
			c.OwnerID = existing.OwnerID
		}
	}
	savedID, err := s.recurring.Save(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("save recurring campaign: %w", err)
	}
	c.ID = savedID
	return c, nil
}

// GetRecurring fetches a recurring campaign by id.
func (s *Service) GetRecurring(ctx context.Context, id string) (*domain.RecurringCampaign, error) {
	return s.recurring.Get(ctx, id)
}

// ListRecurring returns every stored recurring campaign.
func (s *Service) ListRecurring(ctx context.Context) ([]domain.RecurringCampaign, error) {
	return s.recurring.List(ctx)
}

// ToggleRecurring flips the active flag.
func (s *Service) ToggleRecurring(ctx context.Context, id string, active bool) error {
	return s.recurring.SetActive(ctx, id, active)
}

// DeleteRecurring removes a recurring campaign definition.
func (s *Service) DeleteRecurring(ctx context.Context, id string) error {
	return s.recurring.Delete(ctx, id)
}

// ExecuteRecurring runs a stored campaign immediately. Inactive campaigns are
// refused. When a lock factory is configured, concurrent executions of the
// same campaign fail fast with ErrExecutionInProgress instead of queueing.
//
// last_executed_at is stamped whenever the pipeline ran, including runs that
// matched no eligible recipients: an empty audience is a normal outcome and
// must not make the next scheduled run re-cover the same window.
func (s *Service) ExecuteRecurring(ctx context.Context, id string, excludeOverride *bool) (*ExecutionResult, error) {
	c, err := s.recurring.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.Active {
		return nil, ErrCampaignInactive
	}

	if s.locks != nil {
		lock := s.locks("campaign:exec:" + c.ID)
		ok, err := lock.Acquire(ctx)
		if err != nil {
			return nil, fmt.Errorf("acquire execution lock: %w", err)
		}
		if !ok {
			return nil, ErrExecutionInProgress
		}
		defer func() {
			if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
				log.Printf("[campaign.Service] release lock for %s: %v", c.ID, err)
			}
		}()
	}

	// Resolve the template before anything mutates: a dangling template_id
	// must fail the run without stamping last_executed_at.
	tpl, err := s.templates.GetTemplate(ctx, c.TemplateID)
	if err != nil {
		return nil, err
	}

	excludeRecent := true
	if excludeOverride != nil {
		excludeRecent = *excludeOverride
	}

	executedAt := s.now()
	defer func() {
		if err := s.recurring.SetLastExecuted(ctx, c.ID, executedAt); err != nil {
			log.Printf("[campaign.Service] stamp last_executed_at for %s: %v", c.ID, err)
		}
	}()

	return s.execute(ctx, c.SourceTable, c.Filters, c.Policy, tpl, c.RecordLimit, excludeRecent)
}
