package storage

import (
	"context"

	"github.com/petfinder-fr/petservices-api/internal/config"
	"github.com/petfinder-fr/petservices-api/internal/httperr"
)

// ObjectStore est le contrat minimal vers le stockage objet: écrire sous une
// clé (sémantique upsert), supprimer, et dériver l'URL publique sans
// aller-retour réseau supplémentaire. Changer de backend (Supabase Storage,
// MinIO, AWS) est une affaire de configuration, pas de code.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string

	// KeyFromURL retrouve la clé d'une URL publique émise par ce store.
	KeyFromURL(url string) (string, bool)
}

// NewFromConfig retourne le store S3 si la configuration est complète, sinon
// un store neutre dont chaque opération échoue en erreur de configuration.
func NewFromConfig(cfg config.StorageConfig) ObjectStore {
	if cfg.Enabled() {
		return NewS3Store(cfg)
	}
	return disabled{}
}

type disabled struct{}

func (disabled) Put(context.Context, string, []byte, string) error {
	return httperr.Configuration("Stockage d'images non configuré sur le serveur")
}

func (disabled) Delete(context.Context, string) error {
	return httperr.Configuration("Stockage d'images non configuré sur le serveur")
}

func (disabled) PublicURL(string) string { return "" }

func (disabled) KeyFromURL(string) (string, bool) { return "", false }
