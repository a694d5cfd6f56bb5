package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/petfinder-fr/petservices-api/internal/auth"
	usersdomain "github.com/petfinder-fr/petservices-api/internal/domain/users"
	"github.com/petfinder-fr/petservices-api/internal/httperr"
	"github.com/petfinder-fr/petservices-api/internal/httpresp"
)

type MeHandler struct {
	users  usersdomain.Repository
	tokens *auth.TokenManager
}

func NewMeHandler(users usersdomain.Repository, tokens *auth.TokenManager) *MeHandler {
	return &MeHandler{users: users, tokens: tokens}
}

// GetMe vérifie le jeton lui-même au lieu de passer par le middleware:
// cette route répond 401 aussi bien pour un jeton absent qu'invalide,
// contrat historique du frontend.
func (h *MeHandler) GetMe(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		httperr.Write(c, http.StatusUnauthorized, "Token manquant")
		return
	}

	claims, err := h.tokens.Verify(parts[1])
	if err != nil {
		httperr.Write(c, http.StatusUnauthorized, "Token invalide ou expiré")
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if httperr.IsKind(err, httperr.KindNotFound) {
			httperr.Write(c, http.StatusUnauthorized, "Token invalide ou expiré")
			return
		}
		httperr.WriteError(c, err)
		return
	}

	httpresp.Success(c, gin.H{"user": publicUser(user)})
}
