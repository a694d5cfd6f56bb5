package handlers

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	catalogdomain "github.com/petfinder-fr/petservices-api/internal/domain/catalog"
	"github.com/petfinder-fr/petservices-api/internal/httperr"
	"github.com/petfinder-fr/petservices-api/internal/httpresp"
	"github.com/petfinder-fr/petservices-api/internal/middleware"
	uccatalog "github.com/petfinder-fr/petservices-api/internal/usecase/catalog"
)

// ======================================================
// HANDLER
// ======================================================

type ServiceHandler struct {
	repo     catalogdomain.Repository
	createUC *uccatalog.CreateListing
	updateUC *uccatalog.UpdateListing
	deleteUC *uccatalog.DeleteListing
}

func NewServiceHandler(
	repo catalogdomain.Repository,
	createUC *uccatalog.CreateListing,
	updateUC *uccatalog.UpdateListing,
	deleteUC *uccatalog.DeleteListing,
) *ServiceHandler {
	return &ServiceHandler{
		repo:     repo,
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
	}
}

// ======================================================
// LECTURES (publiques)
// ======================================================

// List et Search répondent un tableau nu, sans enveloppe: c'est le format
// que le frontend historique consomme.
func (h *ServiceHandler) List(c *gin.Context) {
	listings, err := h.repo.List(c.Request.Context())
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.OK(c, listings)
}

func (h *ServiceHandler) Search(c *gin.Context) {
	filter := catalogdomain.SearchFilter{
		Type:  c.Query("type"),
		Ville: c.Query("ville"),
	}

	listings, err := h.repo.Search(c.Request.Context(), filter)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.OK(c, listings)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, err := parseListingID(c.Param("id"))
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	listing, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.OK(c, listing)
}

// ======================================================
// MUTATIONS (protégées)
// ======================================================

func (h *ServiceHandler) Create(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	img, closeImg := formImage(c)
	if closeImg != nil {
		defer closeImg.Close()
	}

	in := uccatalog.CreateListingInput{
		Nom:      c.PostForm("nom"),
		Type:     c.PostForm("type"),
		Ville:    c.PostForm("ville"),
		Tarifs:   c.PostForm("tarifs"),
		Services: c.PostForm("services"),
		Horaires: c.PostForm("horaires"),
		Image:    img,
	}

	listing, err := h.createUC.Execute(c.Request.Context(), actorID, in)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	httpresp.Success(c, gin.H{"service": listing})
}

func (h *ServiceHandler) Update(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	actorRole := c.MustGet(middleware.ContextUserRole).(string)

	id, err := parseListingID(c.Param("id"))
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	img, closeImg := formImage(c)
	if closeImg != nil {
		defer closeImg.Close()
	}

	in := uccatalog.UpdateListingInput{
		Nom:      c.PostForm("nom"),
		Type:     c.PostForm("type"),
		Ville:    c.PostForm("ville"),
		Tarifs:   c.PostForm("tarifs"),
		Services: c.PostForm("services"),
		Horaires: c.PostForm("horaires"),
		Statut:   c.PostForm("statut"),
		Image:    img,
	}

	listing, err := h.updateUC.Execute(c.Request.Context(), actorID, actorRole, id, in)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	httpresp.Success(c, gin.H{
		"message": "Service mis à jour avec succès",
		"service": listing,
	})
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := parseListingID(c.Param("id"))
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), actorID, id); err != nil {
		httperr.WriteError(c, err)
		return
	}

	httpresp.Success(c, gin.H{"message": "Service supprimé avec succès"})
}

// ======================================================
// HELPERS
// ======================================================

// Un id non numérique est traité comme une fiche inexistante.
func parseListingID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, httperr.NotFound("Service non trouvé")
	}
	return uint(id), nil
}

// formImage lit le champ multipart "image". Pas de fichier, ou un corps non
// multipart, vaut simplement "pas d'image".
func formImage(c *gin.Context) (*uccatalog.ImageUpload, io.Closer) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, nil
	}

	return &uccatalog.ImageUpload{
		Reader:      f,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
	}, f
}
