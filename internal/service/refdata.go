package service

import (
	"context"
	"fmt"

	"github.com/dainadb/improplan/internal/domain"
)

type RefDataRepository interface {
	ListThemes(ctx context.Context) ([]domain.Theme, error)
	ListProvinces(ctx context.Context) ([]domain.Province, error)
	ListMunicipalities(ctx context.Context) ([]domain.Municipality, error)
}

// RefDataService serves the read-only lists the front end uses to populate
// its pickers.
type RefDataService struct {
	repo RefDataRepository
}

func NewRefDataService(repo RefDataRepository) *RefDataService {
	return &RefDataService{
		repo: repo,
	}
}

func (s *RefDataService) ListThemes(ctx context.Context) ([]domain.Theme, error) {
	themes, err := s.repo.ListThemes(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListThemes -> %w", err)
	}

	return themes, nil
}

func (s *RefDataService) ListProvinces(ctx context.Context) ([]domain.Province, error) {
	provinces, err := s.repo.ListProvinces(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListProvinces -> %w", err)
	}

	return provinces, nil
}

func (s *RefDataService) ListMunicipalities(ctx context.Context) ([]domain.Municipality, error) {
	municipalities, err := s.repo.ListMunicipalities(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListMunicipalities -> %w", err)
	}

	return municipalities, nil
}
