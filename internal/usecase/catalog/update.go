package catalog

import (
	"context"
	"log"
	"strings"

	"github.com/petfinder-fr/petservices-api/internal/audit"
	domain "github.com/petfinder-fr/petservices-api/internal/domain/catalog"
	"github.com/petfinder-fr/petservices-api/internal/httperr"
	"github.com/petfinder-fr/petservices-api/internal/models"
	"github.com/petfinder-fr/petservices-api/internal/upload"
)

// ======================================================
// INPUT
// ======================================================

// UpdateListingInput porte une réécriture complète: chaque champ éditable
// prend la valeur fournie, ou sa valeur par défaut s'il est omis.
type UpdateListingInput struct {
	Nom      string
	Type     string
	Ville    string
	Tarifs   string
	Services string
	Horaires string
	Statut   string

	Image *ImageUpload
}

// ======================================================
// USE CASE
// ======================================================

type UpdateListing struct {
	repo    domain.Repository
	uploads *upload.Manager
	audit   *audit.Dispatcher
}

func NewUpdateListing(
	repo domain.Repository,
	uploads *upload.Manager,
	audit *audit.Dispatcher,
) *UpdateListing {
	return &UpdateListing{
		repo:    repo,
		uploads: uploads,
		audit:   audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateListing) Execute(
	ctx context.Context,
	actorID uint,
	actorRole string,
	id uint,
	in UpdateListingInput,
) (*models.ServiceListing, error) {

	existing, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	typ := strings.TrimSpace(in.Type)
	if typ != "" && !domain.IsValidType(typ) {
		return nil, httperr.Validation("Type de service inconnu")
	}

	statut, err := nextStatut(existing.Statut, strings.TrimSpace(in.Statut), actorRole)
	if err != nil {
		return nil, err
	}

	oldImage := existing.Image
	newImage := oldImage
	if in.Image != nil {
		url, err := uc.uploads.Store(ctx, in.Image.Reader, in.Image.Filename, in.Image.ContentType)
		if err != nil {
			return nil, err
		}
		newImage = url
	}

	existing.Nom = strings.TrimSpace(in.Nom)
	existing.Type = typ
	existing.Ville = strings.TrimSpace(in.Ville)
	existing.Tarifs = parseTarifs(in.Tarifs)
	existing.Services = strings.TrimSpace(in.Services)
	existing.Horaires = strings.TrimSpace(in.Horaires)
	existing.Statut = statut
	existing.Image = newImage

	if err := uc.repo.Update(ctx, existing); err != nil {
		if in.Image != nil && newImage != oldImage {
			_ = uc.uploads.Remove(ctx, newImage)
		}
		return nil, err
	}

	// L'ancien objet n'est libéré qu'une fois la ligne persistée avec la
	// nouvelle URL: pas de fenêtre où les deux seraient orphelins.
	if in.Image != nil && oldImage != "" && oldImage != newImage {
		if err := uc.uploads.Remove(ctx, oldImage); err != nil {
			log.Printf("failed to release replaced image %s: %v", oldImage, err)
		}
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "listing_updated",
		Entity:   "service_listing",
		EntityID: &existing.ID,
	})

	return existing, nil
}

// nextStatut applique la règle de transition: seul un administrateur change
// le statut d'une fiche. Un non-admin qui omet le champ conserve la valeur
// en place; un admin qui l'omet retombe sur en_attente.
func nextStatut(current, requested, actorRole string) (string, error) {
	if actorRole == models.RoleAdmin {
		if requested == "" {
			return string(domain.InitialStatut()), nil
		}
		if !domain.IsValidStatut(requested) {
			return "", httperr.Validation("Statut invalide")
		}
		return requested, nil
	}

	if requested != "" && requested != current {
		return "", httperr.Forbidden("Seul un administrateur peut modifier le statut")
	}
	return current, nil
}
