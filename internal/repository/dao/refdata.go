package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrMunicipalityNotFound = errors.New("municipality not found")
	ErrThemeNotFound        = errors.New("theme not found")
)

type AutonomousCommunity struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"unique;not null"`
}

type Province struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"unique;not null"`
	CommunityID uint   `gorm:"not null"`

	Community AutonomousCommunity `gorm:"foreignKey:CommunityID"`
}

type Municipality struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"not null;index"`
	ProvinceID uint   `gorm:"not null"`

	Province Province
}

type Theme struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"unique;not null"`
	Description string
}

type RefDataDAO struct {
	db *gorm.DB
}

func NewRefDataDAO(db *gorm.DB) *RefDataDAO {
	return &RefDataDAO{
		db: db,
	}
}

func (d *RefDataDAO) FindMunicipalityByName(ctx context.Context, name string) (Municipality, error) {
	var municipality Municipality

	result := d.db.WithContext(ctx).
		Preload("Province").
		First(&municipality, "LOWER(name) = LOWER(?)", name)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Municipality{}, ErrMunicipalityNotFound
		}

		return Municipality{}, result.Error
	}

	return municipality, nil
}

func (d *RefDataDAO) FindThemeByName(ctx context.Context, name string) (Theme, error) {
	var theme Theme

	result := d.db.WithContext(ctx).First(&theme, "LOWER(name) = LOWER(?)", name)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Theme{}, ErrThemeNotFound
		}

		return Theme{}, result.Error
	}

	return theme, nil
}

func (d *RefDataDAO) ListThemes(ctx context.Context) ([]Theme, error) {
	var themes []Theme

	result := d.db.WithContext(ctx).Order("name ASC").Find(&themes)
	if result.Error != nil {
		return nil, result.Error
	}

	return themes, nil
}

func (d *RefDataDAO) ListProvinces(ctx context.Context) ([]Province, error) {
	var provinces []Province

	result := d.db.WithContext(ctx).Preload("Community").Order("name ASC").Find(&provinces)
	if result.Error != nil {
		return nil, result.Error
	}

	return provinces, nil
}

func (d *RefDataDAO) ListMunicipalities(ctx context.Context) ([]Municipality, error) {
	var municipalities []Municipality

	result := d.db.WithContext(ctx).Preload("Province").Order("name ASC").Find(&municipalities)
	if result.Error != nil {
		return nil, result.Error
	}

	return municipalities, nil
}
