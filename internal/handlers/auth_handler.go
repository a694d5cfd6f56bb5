package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/petfinder-fr/petservices-api/internal/auth"
	usersdomain "github.com/petfinder-fr/petservices-api/internal/domain/users"
	"github.com/petfinder-fr/petservices-api/internal/httperr"
	"github.com/petfinder-fr/petservices-api/internal/httpresp"
	"github.com/petfinder-fr/petservices-api/internal/models"
	"github.com/petfinder-fr/petservices-api/internal/validators"
)

type AuthHandler struct {
	users  usersdomain.Repository
	tokens *auth.TokenManager

	// Vérification DNS du domaine e-mail, remplaçable en test.
	checkEmailDomain func(string) bool
}

func NewAuthHandler(users usersdomain.Repository, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{
		users:            users,
		tokens:           tokens,
		checkEmailDomain: validators.IsEmailDomainValid,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Write(c, http.StatusBadRequest, "Nom, email et mot de passe (6 caractères minimum) sont requis")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !h.checkEmailDomain(email) {
		httperr.Write(c, http.StatusBadRequest, "Le domaine de l'adresse e-mail ne semble pas valide")
		return
	}

	existing, err := h.users.FindByEmail(c.Request.Context(), email)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	if existing != nil {
		httperr.WriteError(c, httperr.Conflict("Cet email est déjà enregistré"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.WriteError(c, httperr.Wrap(httperr.KindInternal, "Erreur lors de l'inscription", err))
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Role:         models.RoleUser,
	}

	// La contrainte unique du store rattrape la course entre deux
	// inscriptions simultanées sur la même adresse.
	if err := h.users.Create(c.Request.Context(), &user); err != nil {
		httperr.WriteError(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"message": "Compte créé avec succès ! Veuillez vous connecter.",
		"user":    publicUser(&user),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Write(c, http.StatusBadRequest, "Email et mot de passe sont requis")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Même message pour adresse inconnue et mot de passe erroné:
	// on ne révèle pas lequel des deux a échoué.
	user, err := h.users.FindByEmail(c.Request.Context(), email)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	if user == nil {
		httperr.WriteError(c, httperr.Unauthorized("Email ou mot de passe incorrect"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.WriteError(c, httperr.Unauthorized("Email ou mot de passe incorrect"))
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		httperr.WriteError(c, httperr.Wrap(httperr.KindInternal, "Erreur serveur, veuillez réessayer", err))
		return
	}

	httpresp.Success(c, gin.H{
		"token": token,
		"user":  publicUser(user),
	})
}

func publicUser(u *models.User) gin.H {
	return gin.H{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
	}
}
