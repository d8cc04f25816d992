package repository

import (
	"context"
	"fmt"

	"github.com/dainadb/improplan/internal/domain"
	"github.com/dainadb/improplan/internal/repository/dao"
)

var (
	ErrMunicipalityNotFound = dao.ErrMunicipalityNotFound
	ErrThemeNotFound        = dao.ErrThemeNotFound
)

type RefDataDAO interface {
	FindMunicipalityByName(ctx context.Context, name string) (dao.Municipality, error)
	FindThemeByName(ctx context.Context, name string) (dao.Theme, error)
	ListThemes(ctx context.Context) ([]dao.Theme, error)
	ListProvinces(ctx context.Context) ([]dao.Province, error)
	ListMunicipalities(ctx context.Context) ([]dao.Municipality, error)
}

type RefDataRepository struct {
	dao RefDataDAO
}

func NewRefDataRepository(dao RefDataDAO) *RefDataRepository {
	return &RefDataRepository{
		dao: dao,
	}
}

func (r *RefDataRepository) FindMunicipalityByName(ctx context.Context, name string) (domain.Municipality, error) {
	found, err := r.dao.FindMunicipalityByName(ctx, name)
	if err != nil {
		return domain.Municipality{}, fmt.Errorf("r.dao.FindMunicipalityByName -> %w", err)
	}

	return municipalityDaoToDomain(found), nil
}

func (r *RefDataRepository) FindThemeByName(ctx context.Context, name string) (domain.Theme, error) {
	found, err := r.dao.FindThemeByName(ctx, name)
	if err != nil {
		return domain.Theme{}, fmt.Errorf("r.dao.FindThemeByName -> %w", err)
	}

	return themeDaoToDomain(found), nil
}

func (r *RefDataRepository) ListThemes(ctx context.Context) ([]domain.Theme, error) {
	found, err := r.dao.ListThemes(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListThemes -> %w", err)
	}

	themes := make([]domain.Theme, 0, len(found))
	for _, theme := range found {
		themes = append(themes, themeDaoToDomain(theme))
	}

	return themes, nil
}

func (r *RefDataRepository) ListProvinces(ctx context.Context) ([]domain.Province, error) {
	found, err := r.dao.ListProvinces(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListProvinces -> %w", err)
	}

	provinces := make([]domain.Province, 0, len(found))
	for _, province := range found {
		provinces = append(provinces, domain.Province{
			ID:            province.ID,
			Name:          province.Name,
			CommunityName: province.Community.Name,
		})
	}

	return provinces, nil
}

func (r *RefDataRepository) ListMunicipalities(ctx context.Context) ([]domain.Municipality, error) {
	found, err := r.dao.ListMunicipalities(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListMunicipalities -> %w", err)
	}

	municipalities := make([]domain.Municipality, 0, len(found))
	for _, municipality := range found {
		municipalities = append(municipalities, municipalityDaoToDomain(municipality))
	}

	return municipalities, nil
}

func municipalityDaoToDomain(m dao.Municipality) domain.Municipality {
	return domain.Municipality{
		ID:           m.ID,
		Name:         m.Name,
		ProvinceName: m.Province.Name,
	}
}

func themeDaoToDomain(t dao.Theme) domain.Theme {
	return domain.Theme{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
	}
}
