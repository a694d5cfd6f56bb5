package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/petfinder-fr/petservices-api/internal/domain/users"
	"github.com/petfinder-fr/petservices-api/internal/httperr"
	"github.com/petfinder-fr/petservices-api/internal/models"
)

type UsersGormRepository struct {
	db *gorm.DB
}

func NewUsersGormRepository(db *gorm.DB) *UsersGormRepository {
	return &UsersGormRepository{db: db}
}

func (r *UsersGormRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UsersGormRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound("Utilisateur non trouvé")
		}
		return nil, err
	}
	return &user, nil
}

func (r *UsersGormRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return httperr.Conflict("Cet email est déjà enregistré")
		}
		return err
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*UsersGormRepository)(nil)
