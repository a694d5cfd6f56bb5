package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/petfinder-fr/petservices-api/internal/audit"
	domain "github.com/petfinder-fr/petservices-api/internal/domain/catalog"
	"github.com/petfinder-fr/petservices-api/internal/httperr"
	"github.com/petfinder-fr/petservices-api/internal/models"
	"github.com/petfinder-fr/petservices-api/internal/upload"
)

// ======================================================
// REPOSITORY EN MÉMOIRE
// ======================================================

type memRepo struct {
	mu        sync.Mutex
	byID      map[uint]models.ServiceListing
	nextID    uint
	createErr error
	updateErr error
}

var _ domain.Repository = (*memRepo)(nil)

func newMemRepo() *memRepo {
	return &memRepo{byID: map[uint]models.ServiceListing{}}
}

func (r *memRepo) List(_ context.Context) ([]models.ServiceListing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.ServiceListing, 0, len(r.byID))
	for _, l := range r.byID {
		out = append(out, l)
	}
	return out, nil
}

func (r *memRepo) Search(_ context.Context, f domain.SearchFilter) ([]models.ServiceListing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ServiceListing
	for _, l := range r.byID {
		if f.Type != "" && f.Type != "all" && l.Type != f.Type {
			continue
		}
		if f.Ville != "" && !strings.Contains(strings.ToLower(l.Ville), strings.ToLower(f.Ville)) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (r *memRepo) Get(_ context.Context, id uint) (*models.ServiceListing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.byID[id]
	if !ok {
		return nil, httperr.NotFound("Service non trouvé")
	}
	return &l, nil
}

func (r *memRepo) Create(_ context.Context, listing *models.ServiceListing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	listing.ID = r.nextID
	r.byID[listing.ID] = *listing
	return nil
}

func (r *memRepo) Update(_ context.Context, listing *models.ServiceListing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.byID[listing.ID]; !ok {
		return httperr.NotFound("Service non trouvé")
	}
	r.byID[listing.ID] = *listing
	return nil
}

func (r *memRepo) Delete(_ context.Context, id uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return 0, nil
	}
	delete(r.byID, id)
	return 1, nil
}

func (r *memRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// ======================================================
// STORE OBJET EN MÉMOIRE
// ======================================================

const testPublicBase = "https://cdn.test/service-image/"

type memStore struct {
	mu      sync.Mutex
	puts    []string
	deletes []string
	putErr  error
}

func (s *memStore) Put(_ context.Context, key string, _ []byte, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return s.putErr
	}
	s.puts = append(s.puts, key)
	return nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes = append(s.deletes, key)
	return nil
}

func (s *memStore) PublicURL(key string) string { return testPublicBase + key }

func (s *memStore) KeyFromURL(url string) (string, bool) {
	return strings.CutPrefix(url, testPublicBase)
}

func (s *memStore) putCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.puts)
}

// ======================================================
// AIDES
// ======================================================

type nopSink struct{}

func (nopSink) Log(*uint, string, string, *uint, any) error { return nil }

func testAudit() *audit.Dispatcher {
	return audit.NewDispatcher(nopSink{})
}

func testUploads(store *memStore) *upload.Manager {
	return upload.NewManager(store)
}
