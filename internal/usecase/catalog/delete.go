package catalog

import (
	"context"
	"log"

	"github.com/petfinder-fr/petservices-api/internal/audit"
	domain "github.com/petfinder-fr/petservices-api/internal/domain/catalog"
	"github.com/petfinder-fr/petservices-api/internal/upload"
)

// ======================================================
// USE CASE
// ======================================================

type DeleteListing struct {
	repo    domain.Repository
	uploads *upload.Manager
	audit   *audit.Dispatcher
}

func NewDeleteListing(
	repo domain.Repository,
	uploads *upload.Manager,
	audit *audit.Dispatcher,
) *DeleteListing {
	return &DeleteListing{
		repo:    repo,
		uploads: uploads,
		audit:   audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute supprime la ligne puis libère l'image associée. La suppression est
// inconditionnelle et définitive, pas de soft-delete.
func (uc *DeleteListing) Execute(ctx context.Context, actorID uint, id uint) error {
	existing, err := uc.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if _, err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	if existing.Image != "" {
		if err := uc.uploads.Remove(ctx, existing.Image); err != nil {
			log.Printf("failed to release image of deleted listing %d: %v", id, err)
		}
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "listing_deleted",
		Entity:   "service_listing",
		EntityID: &id,
	})

	return nil
}
