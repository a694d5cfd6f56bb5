package favorites

import (
	"context"

	domain "github.com/petfinder-fr/petservices-api/internal/domain/favorites"
	"github.com/petfinder-fr/petservices-api/internal/httperr"
	"github.com/petfinder-fr/petservices-api/internal/models"
)

// ======================================================
// USE CASE
// ======================================================

type ListFavorites struct {
	repo domain.Repository
}

func NewListFavorites(repo domain.Repository) *ListFavorites {
	return &ListFavorites{repo: repo}
}

// Execute retourne les favoris d'un utilisateur, fiche jointe, du plus récent
// au plus ancien. Seul le propriétaire ou un administrateur peut lire.
func (uc *ListFavorites) Execute(
	ctx context.Context,
	ownerID uint,
	requesterID uint,
	requesterRole string,
) ([]models.Favorite, error) {

	if requesterID != ownerID && requesterRole != models.RoleAdmin {
		return nil, httperr.Forbidden("Accès non autorisé")
	}

	return uc.repo.ListByUser(ctx, ownerID)
}
