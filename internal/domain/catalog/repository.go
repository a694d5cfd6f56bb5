package catalog

import (
	"context"

	"github.com/petfinder-fr/petservices-api/internal/models"
)

// SearchFilter: les deux critères se combinent en ET. Type vide ou "all"
// ne filtre pas; Ville filtre par sous-chaîne insensible à la casse.
type SearchFilter struct {
	Type  string
	Ville string
}

// Repository est le contrat du catalogue vers le store relationnel.
// Les implémentations traduisent leurs erreurs transport en erreurs httperr
// (Get sur un id absent retourne NotFound), pour que les usecases restent
// indépendants du backend.
type Repository interface {
	List(ctx context.Context) ([]models.ServiceListing, error)

	Search(ctx context.Context, f SearchFilter) ([]models.ServiceListing, error)

	Get(ctx context.Context, id uint) (*models.ServiceListing, error)

	Create(ctx context.Context, listing *models.ServiceListing) error

	Update(ctx context.Context, listing *models.ServiceListing) error

	// Delete retourne le nombre de lignes supprimées.
	Delete(ctx context.Context, id uint) (int64, error)
}
