package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/petfinder-fr/petservices-api/internal/httperr"
	"github.com/petfinder-fr/petservices-api/internal/models"
)

// TokenTTL: durée de vie des sessions, 24h à partir de l'émission.
const TokenTTL = 24 * time.Hour

type Claims struct {
	UserID uint
	Email  string
	Name   string
	Role   string
}

// TokenManager émet et vérifie les jetons de session HS256. Les jetons ne
// sont jamais persistés: la validité repose sur la signature et l'expiration.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    TokenTTL,
		now:    time.Now,
	}
}

func (m *TokenManager) Issue(user *models.User) (string, error) {
	now := m.now()
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify valide signature et expiration. Un jeton invalide ou expiré est une
// erreur Forbidden; l'absence de jeton est traitée en amont (Unauthorized).
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !token.Valid {
		return nil, httperr.Forbidden("Session expirée. Veuillez vous reconnecter.")
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, httperr.Forbidden("Session expirée. Veuillez vous reconnecter.")
	}

	id, okID := mc["id"].(float64)
	email, _ := mc["email"].(string)
	name, _ := mc["name"].(string)
	role, _ := mc["role"].(string)
	if !okID {
		return nil, httperr.Forbidden("Session expirée. Veuillez vous reconnecter.")
	}

	return &Claims{
		UserID: uint(id),
		Email:  email,
		Name:   name,
		Role:   role,
	}, nil
}
