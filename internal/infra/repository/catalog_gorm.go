package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	domain "github.com/petfinder-fr/petservices-api/internal/domain/catalog"
	"github.com/petfinder-fr/petservices-api/internal/httperr"
	"github.com/petfinder-fr/petservices-api/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

func (r *CatalogGormRepository) List(ctx context.Context) ([]models.ServiceListing, error) {
	var listings []models.ServiceListing
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *CatalogGormRepository) Search(ctx context.Context, f domain.SearchFilter) ([]models.ServiceListing, error) {
	q := r.db.WithContext(ctx).Model(&models.ServiceListing{})

	if f.Type != "" && f.Type != "all" {
		q = q.Where("type = ?", f.Type)
	}

	if f.Ville != "" {
		like := "%" + strings.ToLower(strings.TrimSpace(f.Ville)) + "%"
		q = q.Where("LOWER(ville) LIKE ?", like)
	}

	var listings []models.ServiceListing
	if err := q.
		Order("created_at DESC").
		Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *CatalogGormRepository) Get(ctx context.Context, id uint) (*models.ServiceListing, error) {
	var listing models.ServiceListing
	if err := r.db.WithContext(ctx).First(&listing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound("Service non trouvé")
		}
		return nil, err
	}
	return &listing, nil
}

func (r *CatalogGormRepository) Create(ctx context.Context, listing *models.ServiceListing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

func (r *CatalogGormRepository) Update(ctx context.Context, listing *models.ServiceListing) error {
	return r.db.WithContext(ctx).Save(listing).Error
}

func (r *CatalogGormRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.ServiceListing{}, id)
	return res.RowsAffected, res.Error
}

// Compile-time check
var _ domain.Repository = (*CatalogGormRepository)(nil)
