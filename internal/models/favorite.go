package models

import "time"

// Un seul favori par couple (user, service): l'index unique composite est
// la seconde ligne de défense derrière la vérification applicative.
type Favorite struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"not null;uniqueIndex:idx_favorites_user_service" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ServiceID uint           `gorm:"not null;uniqueIndex:idx_favorites_user_service" json:"service_id"`
	Service   ServiceListing `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"services_animaliers"`

	CreatedAt time.Time `json:"created_at"`
}
