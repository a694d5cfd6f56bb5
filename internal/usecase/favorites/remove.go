package favorites

import (
	"context"

	"github.com/petfinder-fr/petservices-api/internal/audit"
	domain "github.com/petfinder-fr/petservices-api/internal/domain/favorites"
	"github.com/petfinder-fr/petservices-api/internal/httperr"
)

// ======================================================
// USE CASE
// ======================================================

type RemoveFavorite struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRemoveFavorite(repo domain.Repository, audit *audit.Dispatcher) *RemoveFavorite {
	return &RemoveFavorite{repo: repo, audit: audit}
}

// Execute supprime un favori et retourne le nombre de lignes touchées.
// Supprimer un favori absent reste un succès avec un compte à zéro.
func (uc *RemoveFavorite) Execute(
	ctx context.Context,
	userID uint,
	serviceID uint,
	requesterID uint,
) (int64, error) {

	if userID == 0 || serviceID == 0 {
		return 0, httperr.Validation("user_id et service_id sont requis")
	}

	if requesterID != userID {
		return 0, httperr.Forbidden("Accès non autorisé")
	}

	count, err := uc.repo.Delete(ctx, userID, serviceID)
	if err != nil {
		return 0, err
	}

	if count > 0 {
		uc.audit.Dispatch(audit.Event{
			UserID:   &userID,
			Action:   "favorite_removed",
			Entity:   "favorite",
			EntityID: &serviceID,
		})
	}

	return count, nil
}
