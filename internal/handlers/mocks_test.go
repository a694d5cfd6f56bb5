package handlers

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/petfinder-fr/petservices-api/internal/audit"
	"github.com/petfinder-fr/petservices-api/internal/auth"
	catalogdomain "github.com/petfinder-fr/petservices-api/internal/domain/catalog"
	favoritesdomain "github.com/petfinder-fr/petservices-api/internal/domain/favorites"
	usersdomain "github.com/petfinder-fr/petservices-api/internal/domain/users"
	"github.com/petfinder-fr/petservices-api/internal/httperr"
	"github.com/petfinder-fr/petservices-api/internal/middleware"
	"github.com/petfinder-fr/petservices-api/internal/models"
	uccatalog "github.com/petfinder-fr/petservices-api/internal/usecase/catalog"
	ucfavorites "github.com/petfinder-fr/petservices-api/internal/usecase/favorites"
	"github.com/petfinder-fr/petservices-api/internal/upload"
)

// ======================================================
// STORES EN MÉMOIRE
// ======================================================

type memUsers struct {
	mu     sync.Mutex
	byID   map[uint]models.User
	nextID uint
}

var _ usersdomain.Repository = (*memUsers)(nil)

func newMemUsers() *memUsers {
	return &memUsers{byID: map[uint]models.User{}}
}

func (r *memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memUsers) GetByID(_ context.Context, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, httperr.NotFound("Utilisateur non trouvé")
	}
	return &u, nil
}

func (r *memUsers) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == user.Email {
			return httperr.Conflict("Cet email est déjà enregistré")
		}
	}
	r.nextID++
	user.ID = r.nextID
	r.byID[user.ID] = *user
	return nil
}

func (r *memUsers) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

type memCatalog struct {
	mu     sync.Mutex
	byID   map[uint]models.ServiceListing
	nextID uint
}

var _ catalogdomain.Repository = (*memCatalog)(nil)

func newMemCatalog() *memCatalog {
	return &memCatalog{byID: map[uint]models.ServiceListing{}}
}

func (r *memCatalog) List(_ context.Context) ([]models.ServiceListing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.ServiceListing, 0, len(r.byID))
	for _, l := range r.byID {
		out = append(out, l)
	}
	return out, nil
}

func (r *memCatalog) Search(_ context.Context, f catalogdomain.SearchFilter) ([]models.ServiceListing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.ServiceListing{}
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

func (r *memCatalog) Get(_ context.Context, id uint) (*models.ServiceListing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.byID[id]
	if !ok {
		return nil, httperr.NotFound("Service non trouvé")
	}
	return &l, nil
}

func (r *memCatalog) Create(_ context.Context, listing *models.ServiceListing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	listing.ID = r.nextID
	r.byID[listing.ID] = *listing
	return nil
}

func (r *memCatalog) Update(_ context.Context, listing *models.ServiceListing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[listing.ID]; !ok {
		return httperr.NotFound("Service non trouvé")
	}
	r.byID[listing.ID] = *listing
	return nil
}

func (r *memCatalog) Delete(_ context.Context, id uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return 0, nil
	}
	delete(r.byID, id)
	return 1, nil
}

func (r *memCatalog) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

type memFavorites struct {
	mu     sync.Mutex
	rows   map[[2]uint]models.Favorite
	nextID uint
}

var _ favoritesdomain.Repository = (*memFavorites)(nil)

func newMemFavorites() *memFavorites {
	return &memFavorites{rows: map[[2]uint]models.Favorite{}}
}

func (r *memFavorites) ListByUser(_ context.Context, userID uint) ([]models.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Favorite
	for k, f := range r.rows {
		if k[0] == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *memFavorites) Exists(_ context.Context, userID, serviceID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.rows[[2]uint{userID, serviceID}]
	return ok, nil
}

func (r *memFavorites) Create(_ context.Context, fav *models.Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]uint{fav.UserID, fav.ServiceID}
	if _, ok := r.rows[key]; ok {
		return httperr.Conflict("Ce service est déjà dans vos favoris")
	}
	r.nextID++
	fav.ID = r.nextID
	r.rows[key] = *fav
	return nil
}

func (r *memFavorites) Delete(_ context.Context, userID, serviceID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]uint{userID, serviceID}
	if _, ok := r.rows[key]; !ok {
		return 0, nil
	}
	delete(r.rows, key)
	return 1, nil
}

type memObjects struct {
	mu      sync.Mutex
	puts    []string
	deletes []string
}

func (s *memObjects) Put(_ context.Context, key string, _ []byte, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts = append(s.puts, key)
	return nil
}

func (s *memObjects) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes = append(s.deletes, key)
	return nil
}

func (s *memObjects) PublicURL(key string) string {
	return "https://cdn.test/service-image/" + key
}

func (s *memObjects) KeyFromURL(url string) (string, bool) {
	return strings.CutPrefix(url, "https://cdn.test/service-image/")
}

func (s *memObjects) putCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.puts)
}

type nopSink struct{}

func (nopSink) Log(*uint, string, string, *uint, any) error { return nil }

// ======================================================
// ENVIRONNEMENT DE TEST
// ======================================================

// testEnv assemble l'API complète sur stores en mémoire, routes câblées
// comme en production.
type testEnv struct {
	router  *gin.Engine
	users   *memUsers
	catalog *memCatalog
	favs    *memFavorites
	objects *memObjects
	tokens  *auth.TokenManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		users:   newMemUsers(),
		catalog: newMemCatalog(),
		favs:    newMemFavorites(),
		objects: &memObjects{},
		tokens:  auth.NewTokenManager("test-secret"),
	}

	uploads := upload.NewManager(env.objects)
	dispatcher := audit.NewDispatcher(nopSink{})

	createUC := uccatalog.NewCreateListing(env.catalog, uploads, dispatcher)
	updateUC := uccatalog.NewUpdateListing(env.catalog, uploads, dispatcher)
	deleteUC := uccatalog.NewDeleteListing(env.catalog, uploads, dispatcher)

	listFavsUC := ucfavorites.NewListFavorites(env.favs)
	addFavUC := ucfavorites.NewAddFavorite(env.favs, dispatcher)
	removeFavUC := ucfavorites.NewRemoveFavorite(env.favs, dispatcher)

	authH := NewAuthHandler(env.users, env.tokens)
	authH.checkEmailDomain = func(string) bool { return true }
	meH := NewMeHandler(env.users, env.tokens)
	serviceH := NewServiceHandler(env.catalog, createUC, updateUC, deleteUC)
	favoritesH := NewFavoritesHandler(listFavsUC, addFavUC, removeFavUC)

	r := gin.New()
	r.POST("/register", authH.Register)
	r.POST("/login", authH.Login)
	r.GET("/me", meH.GetMe)
	r.GET("/services", serviceH.List)
	r.GET("/services/search", serviceH.Search)
	r.GET("/services/:id", serviceH.Get)

	secured := r.Group("/")
	secured.Use(middleware.AuthMiddleware(env.tokens))
	secured.POST("/services", serviceH.Create)
	secured.PUT("/services/:id", serviceH.Update)
	secured.DELETE("/services/:id", serviceH.Delete)
	secured.GET("/favorites/:userId", favoritesH.List)
	secured.POST("/favorites", favoritesH.Add)
	secured.DELETE("/favorites", favoritesH.Remove)

	env.router = r
	return env
}

func (env *testEnv) do(t *testing.T, method, path string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// seedUser crée un utilisateur directement dans le store et retourne son
// jeton de session.
func (env *testEnv) seedUser(t *testing.T, email, role string) (uint, string) {
	t.Helper()
	user := &models.User{Name: "Testeur", Email: email, Role: role}
	require.NoError(t, env.users.Create(context.Background(), user))

	token, err := env.tokens.Issue(user)
	require.NoError(t, err)
	return user.ID, token
}

func authHeaders(token string, extra map[string]string) map[string]string {
	h := map[string]string{"Authorization": "Bearer " + token}
	for k, v := range extra {
		h[k] = v
	}
	return h
}

func jsonHeaders(token string) map[string]string {
	return authHeaders(token, map[string]string{"Content-Type": "application/json"})
}

func formHeaders(token string) map[string]string {
	return authHeaders(token, map[string]string{"Content-Type": "application/x-www-form-urlencoded"})
}
