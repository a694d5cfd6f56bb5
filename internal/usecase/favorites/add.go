package favorites

import (
	"context"

	"github.com/petfinder-fr/petservices-api/internal/audit"
	domain "github.com/petfinder-fr/petservices-api/internal/domain/favorites"
	"github.com/petfinder-fr/petservices-api/internal/httperr"
	"github.com/petfinder-fr/petservices-api/internal/models"
)

// ======================================================
// USE CASE
// ======================================================

type AddFavorite struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAddFavorite(repo domain.Repository, audit *audit.Dispatcher) *AddFavorite {
	return &AddFavorite{repo: repo, audit: audit}
}

// Execute ajoute un favori pour le compte du demandeur uniquement. Le doublon
// est vérifié explicitement; la course résiduelle est rattrapée par la
// contrainte d'unicité du store, traduite en Conflict par le repository.
func (uc *AddFavorite) Execute(
	ctx context.Context,
	userID uint,
	serviceID uint,
	requesterID uint,
) (*models.Favorite, error) {

	if userID == 0 || serviceID == 0 {
		return nil, httperr.Validation("user_id et service_id sont requis")
	}

	if requesterID != userID {
		return nil, httperr.Forbidden("Accès non autorisé")
	}

	exists, err := uc.repo.Exists(ctx, userID, serviceID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, httperr.Conflict("Ce service est déjà dans vos favoris")
	}

	fav := &models.Favorite{
		UserID:    userID,
		ServiceID: serviceID,
	}

	if err := uc.repo.Create(ctx, fav); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "favorite_added",
		Entity:   "favorite",
		EntityID: &fav.ID,
	})

	return fav, nil
}
