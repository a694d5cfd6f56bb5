package upload

import (
	"context"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/juju/clock"
	"github.com/juju/retry"

	// Décodeurs enregistrés pour le sniffing du contenu image.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/petfinder-fr/petservices-api/internal/httperr"
	"github.com/petfinder-fr/petservices-api/internal/storage"
)

// MaxUploadSize: 5 MiB, vérifié avant tout appel réseau.
const MaxUploadSize = 5 << 20

var allowedExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var allowedMimes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Manager valide les images entrantes et les pousse vers le stockage objet
// avec une politique de relance bornée: au plus attempts essais, pause
// delay×numéro-de-tentative entre deux essais, le premier succès court-circuite
// le reste.
type Manager struct {
	store     storage.ObjectStore
	attempts  int
	delay     time.Duration
	clk       clock.Clock
	keyPrefix string
}

func NewManager(store storage.ObjectStore) *Manager {
	return &Manager{
		store:     store,
		attempts:  3,
		delay:     2 * time.Second,
		clk:       clock.WallClock,
		keyPrefix: "services",
	}
}

// Store valide puis téléverse une image et retourne son URL publique.
// Le fichier de staging local est privé à la requête et supprimé sur tous les
// chemins de sortie.
func (m *Manager) Store(ctx context.Context, r io.Reader, originalName, contentType string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExts[ext] || !allowedMimes[strings.ToLower(contentType)] {
		return "", httperr.Validation("Seules les images sont autorisées")
	}

	tmp, err := os.CreateTemp("", "petservices-upload-*")
	if err != nil {
		return "", httperr.Wrap(httperr.KindInternal, "Erreur interne du serveur", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	size, err := io.Copy(tmp, io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return "", httperr.Wrap(httperr.KindInternal, "Erreur lors de l'upload de l'image", err)
	}
	if size > MaxUploadSize {
		return "", httperr.PayloadTooLarge("Image max 5MB")
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return "", httperr.Wrap(httperr.KindInternal, "Erreur lors de l'upload de l'image", err)
	}
	if _, _, err := image.DecodeConfig(tmp); err != nil {
		return "", httperr.Validation("Seules les images sont autorisées")
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return "", httperr.Wrap(httperr.KindInternal, "Erreur lors de l'upload de l'image", err)
	}
	data, err := io.ReadAll(tmp)
	if err != nil {
		return "", httperr.Wrap(httperr.KindInternal, "Erreur lors de l'upload de l'image", err)
	}

	key := m.buildKey(originalName, ext)

	err = retry.Call(retry.CallArgs{
		Func: func() error {
			return m.store.Put(ctx, key, data, contentType)
		},
		IsFatalError: func(err error) bool {
			return httperr.IsKind(err, httperr.KindConfiguration)
		},
		NotifyFunc: func(lastError error, attempt int) {
			log.Printf("upload attempt %d/%d failed for %s: %v", attempt, m.attempts, key, lastError)
		},
		Attempts: m.attempts,
		Delay:    m.delay,
		// Pause délai-de-base × numéro-de-tentative: base, 2×base, ...
		BackoffFunc: func(_ time.Duration, attempt int) time.Duration {
			return m.delay * time.Duration(attempt)
		},
		Clock: m.clk,
	})
	if err != nil {
		if retry.IsAttemptsExceeded(err) {
			err = retry.LastError(err)
		}
		if httperr.IsKind(err, httperr.KindConfiguration) {
			return "", err
		}
		return "", httperr.Wrap(httperr.KindStorage, "Erreur du stockage d'images", err)
	}

	return m.store.PublicURL(key), nil
}

// Remove supprime l'objet correspondant à une URL publique émise par Store.
// Une URL vide ou étrangère au store est ignorée.
func (m *Manager) Remove(ctx context.Context, url string) error {
	if url == "" {
		return nil
	}

	key, ok := m.store.KeyFromURL(url)
	if !ok {
		return nil
	}

	if err := m.store.Delete(ctx, key); err != nil {
		return httperr.Wrap(httperr.KindStorage, "Erreur du stockage d'images", err)
	}
	return nil
}

// buildKey préfixe le nom normalisé par un horodatage milliseconde: l'unicité
// ne demande aucun service de coordination.
func (m *Manager) buildKey(originalName, ext string) string {
	base := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))

	var b strings.Builder
	for _, r := range strings.ToLower(base) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	name := b.String()
	if name == "" {
		name = "image"
	}

	return fmt.Sprintf("%s/%d_%s%s", m.keyPrefix, m.clk.Now().UnixMilli(), name, ext)
}
