package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/petfinder-fr/petservices-api/internal/httperr"
	"github.com/petfinder-fr/petservices-api/internal/httpresp"
	"github.com/petfinder-fr/petservices-api/internal/middleware"
	"github.com/petfinder-fr/petservices-api/internal/webhook"
)

// ScrapeHandler relaie les demandes de prospection vers le webhook n8n.
type ScrapeHandler struct {
	hooks *webhook.Client
}

func NewScrapeHandler(hooks *webhook.Client) *ScrapeHandler {
	return &ScrapeHandler{hooks: hooks}
}

type ScrapeRequest struct {
	Nom       string `json:"nom"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
	Ville     string `json:"ville"`
	Country   string `json:"country"`
	MaxLeads  int    `json:"maxLeads"`
}

func (h *ScrapeHandler) Scrape(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req ScrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Write(c, http.StatusBadRequest, "Corps de requête invalide")
		return
	}

	payload := gin.H{
		"nom":       req.Nom,
		"email":     req.Email,
		"telephone": req.Telephone,
		"ville":     req.Ville,
		"country":   req.Country,
		"maxLeads":  req.MaxLeads,
		"userId":    userID,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	data, err := h.hooks.Send(c.Request.Context(), payload)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	httpresp.Success(c, gin.H{"data": data})
}
