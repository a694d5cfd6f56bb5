package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/petfinder-fr/petservices-api/internal/domain/favorites"
	"github.com/petfinder-fr/petservices-api/internal/httperr"
	"github.com/petfinder-fr/petservices-api/internal/models"
)

// Code Postgres d'une violation de contrainte unique.
const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

type FavoritesGormRepository struct {
	db *gorm.DB
}

func NewFavoritesGormRepository(db *gorm.DB) *FavoritesGormRepository {
	return &FavoritesGormRepository{db: db}
}

func (r *FavoritesGormRepository) ListByUser(ctx context.Context, userID uint) ([]models.Favorite, error) {
	var favs []models.Favorite
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favs).Error; err != nil {
		return nil, err
	}
	return favs, nil
}

func (r *FavoritesGormRepository) Exists(ctx context.Context, userID, serviceID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND service_id = ?", userID, serviceID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create traduit la course perdant contre l'index unique en Conflict: même
// résultat que la vérification applicative, pas une erreur serveur.
func (r *FavoritesGormRepository) Create(ctx context.Context, fav *models.Favorite) error {
	if err := r.db.WithContext(ctx).Create(fav).Error; err != nil {
		if isUniqueViolation(err) {
			return httperr.Conflict("Ce service est déjà dans vos favoris")
		}
		return err
	}
	return nil
}

func (r *FavoritesGormRepository) Delete(ctx context.Context, userID, serviceID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND service_id = ?", userID, serviceID).
		Delete(&models.Favorite{})
	return res.RowsAffected, res.Error
}

// Compile-time check
var _ domain.Repository = (*FavoritesGormRepository)(nil)
