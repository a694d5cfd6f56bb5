package favorites

import (
	"context"

	"github.com/petfinder-fr/petservices-api/internal/models"
)

// Repository gère la relation user ↔ fiche. La contrainte d'unicité du store
// est la seconde ligne de défense derrière la vérification applicative: une
// violation (course entre deux ajouts) doit ressortir en httperr.Conflict,
// jamais en erreur serveur générique.
type Repository interface {
	// ListByUser retourne les favoris du plus récent au plus ancien,
	// fiche jointe.
	ListByUser(ctx context.Context, userID uint) ([]models.Favorite, error)

	Exists(ctx context.Context, userID, serviceID uint) (bool, error)

	Create(ctx context.Context, fav *models.Favorite) error

	// Delete retourne le nombre de lignes supprimées; zéro n'est pas
	// une erreur.
	Delete(ctx context.Context, userID, serviceID uint) (int64, error)
}
