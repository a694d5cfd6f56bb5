package catalog

import (
	"context"
	"io"
	"strconv"
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

// ImageUpload transporte le fichier multipart tel que reçu; la validation
// (taille, type, contenu) appartient au gestionnaire d'upload.
type ImageUpload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

type CreateListingInput struct {
	Nom      string
	Type     string
	Ville    string
	Tarifs   string
	Services string
	Horaires string

	Image *ImageUpload
}

// ======================================================
// USE CASE
// ======================================================

type CreateListing struct {
	repo    domain.Repository
	uploads *upload.Manager
	audit   *audit.Dispatcher
}

func NewCreateListing(
	repo domain.Repository,
	uploads *upload.Manager,
	audit *audit.Dispatcher,
) *CreateListing {
	return &CreateListing{
		repo:    repo,
		uploads: uploads,
		audit:   audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateListing) Execute(
	ctx context.Context,
	actorID uint,
	in CreateListingInput,
) (*models.ServiceListing, error) {

	nom := strings.TrimSpace(in.Nom)
	typ := strings.TrimSpace(in.Type)
	ville := strings.TrimSpace(in.Ville)

	// Les champs requis sont vérifiés avant tout upload: une image jointe à
	// une requête invalide ne laisse jamais d'objet orphelin dans le store.
	if nom == "" || typ == "" || ville == "" {
		return nil, httperr.Validation("Nom, type et ville sont requis")
	}

	if !domain.IsValidType(typ) {
		return nil, httperr.Validation("Type de service inconnu")
	}

	imageURL := ""
	if in.Image != nil {
		url, err := uc.uploads.Store(ctx, in.Image.Reader, in.Image.Filename, in.Image.ContentType)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	listing := &models.ServiceListing{
		Nom:      nom,
		Type:     typ,
		Ville:    ville,
		Tarifs:   parseTarifs(in.Tarifs),
		Services: strings.TrimSpace(in.Services),
		Horaires: strings.TrimSpace(in.Horaires),
		Statut:   string(domain.InitialStatut()),
		Image:    imageURL,
	}

	if err := uc.repo.Create(ctx, listing); err != nil {
		// Insertion échouée après upload: on libère l'objet tout de suite.
		if imageURL != "" {
			_ = uc.uploads.Remove(ctx, imageURL)
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "listing_created",
		Entity:   "service_listing",
		EntityID: &listing.ID,
	})

	return listing, nil
}

// parseTarifs: une valeur non numérique ou négative est silencieusement
// ramenée à 0, jamais rejetée.
func parseTarifs(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
