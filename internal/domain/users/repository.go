package users

import (
	"context"

	"github.com/petfinder-fr/petservices-api/internal/models"
)

// Repository est le contrat du store d'identités. L'email est stocké en
// minuscules: l'unicité insensible à la casse repose dessus.
type Repository interface {
	// FindByEmail retourne (nil, nil) quand l'adresse est inconnue.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	GetByID(ctx context.Context, id uint) (*models.User, error)

	// Create traduit une violation d'unicité sur l'email en httperr.Conflict.
	Create(ctx context.Context, user *models.User) error
}
