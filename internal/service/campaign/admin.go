package campaign

import (
	"context"

	"github.com/DanielCayresFilho/midpainel-sub000/internal/domain"
)

// Bait and id-mapping administration. Thin passthroughs with input checks so
// the HTTP layer never talks to repositories directly.

func (s *Service) ListBaits(ctx context.Context) ([]domain.Bait, error) {
	return s.baitRepo.List(ctx)
}

func (s *Service) CreateBait(ctx context.Context, b *domain.Bait) error {
	if b.Phone == "" {
		return &ValidationError{Field: "telefone", Reason: "required"}
	}
	if b.Name == "" {
		return &ValidationError{Field: "nome", Reason: "required"}
	}
	b.Phone = domain.NormalizePhone(b.Phone)
	id, err := s.baitRepo.Create(ctx, b)
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

func (s *Service) SetBaitActive(ctx context.Context, id int, active bool) error {
	return s.baitRepo.SetActive(ctx, id, active)
}

func (s *Service) DeleteBait(ctx context.Context, id int) error {
	return s.baitRepo.Delete(ctx, id)
}

func (s *Service) ListMappings(ctx context.Context) ([]domain.IDMapping, error) {
	return s.mappings.List(ctx)
}

// SaveMapping upserts a mapping row. Provider may be the wildcard "*".
func (s *Service) SaveMapping(ctx context.Context, m *domain.IDMapping) error {
	if m.SourceTable == "" {
		return &ValidationError{Field: "source_table", Reason: "required"}
	}
	if m.Provider == "" {
		return &ValidationError{Field: "provider", Reason: "required"}
	}
	id, err := s.mappings.Save(ctx, m)
	if err != nil {
		return err
	}
	m.ID = id
	return nil
}

func (s *Service) DeleteMapping(ctx context.Context, id int) error {
	return s.mappings.Delete(ctx, id)
}
