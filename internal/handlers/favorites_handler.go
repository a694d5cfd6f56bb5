package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/petfinder-fr/petservices-api/internal/httperr"
	"github.com/petfinder-fr/petservices-api/internal/httpresp"
	"github.com/petfinder-fr/petservices-api/internal/middleware"
	"github.com/petfinder-fr/petservices-api/internal/models"
	ucfavorites "github.com/petfinder-fr/petservices-api/internal/usecase/favorites"
)

// ======================================================
// HANDLER
// ======================================================

type FavoritesHandler struct {
	listUC   *ucfavorites.ListFavorites
	addUC    *ucfavorites.AddFavorite
	removeUC *ucfavorites.RemoveFavorite
}

func NewFavoritesHandler(
	listUC *ucfavorites.ListFavorites,
	addUC *ucfavorites.AddFavorite,
	removeUC *ucfavorites.RemoveFavorite,
) *FavoritesHandler {
	return &FavoritesHandler{
		listUC:   listUC,
		addUC:    addUC,
		removeUC: removeUC,
	}
}

// --------- Requests ---------

type FavoriteRequest struct {
	UserID    uint `json:"user_id"`
	ServiceID uint `json:"service_id"`
}

// --------- Handlers ---------

func (h *FavoritesHandler) List(c *gin.Context) {
	requesterID := c.MustGet(middleware.ContextUserID).(uint)
	requesterRole := c.MustGet(middleware.ContextUserRole).(string)

	ownerID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		httperr.Write(c, http.StatusBadRequest, "Identifiant utilisateur invalide")
		return
	}

	favs, err := h.listUC.Execute(c.Request.Context(), uint(ownerID), requesterID, requesterRole)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	if favs == nil {
		favs = []models.Favorite{}
	}

	httpresp.Success(c, gin.H{
		"favorites": favs,
		"count":     len(favs),
	})
}

func (h *FavoritesHandler) Add(c *gin.Context) {
	requesterID := c.MustGet(middleware.ContextUserID).(uint)

	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Write(c, http.StatusBadRequest, "user_id et service_id sont requis")
		return
	}

	fav, err := h.addUC.Execute(c.Request.Context(), req.UserID, req.ServiceID, requesterID)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	httpresp.Success(c, gin.H{
		"favorite": fav,
		"message":  "Service ajouté aux favoris",
	})
}

func (h *FavoritesHandler) Remove(c *gin.Context) {
	requesterID := c.MustGet(middleware.ContextUserID).(uint)

	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Write(c, http.StatusBadRequest, "user_id et service_id sont requis")
		return
	}

	count, err := h.removeUC.Execute(c.Request.Context(), req.UserID, req.ServiceID, requesterID)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	// Supprimer un favori déjà absent reste un succès, avec un compte à zéro.
	httpresp.Success(c, gin.H{
		"message":       "Favori supprimé avec succès",
		"deleted_count": count,
	})
}
