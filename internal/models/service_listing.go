package models

import "time"

// ServiceListing est une fiche du catalogue de services animaliers.
// Les noms de champs JSON restent en français: c'est le format attendu
// par le frontend historique.
type ServiceListing struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Nom   string `gorm:"size:150;not null" json:"nom"`
	Type  string `gorm:"size:30;not null;index" json:"type"`
	Ville string `gorm:"size:100;not null;index" json:"ville"`

	Tarifs   float64 `gorm:"default:0" json:"tarifs"`
	Services string  `gorm:"type:text" json:"services"`
	Horaires string  `gorm:"size:255" json:"horaires"`

	Statut string `gorm:"size:20;default:'en_attente'" json:"statut"`

	// URL publique de l'image dans le stockage objet. Vide = pas d'image.
	Image string `gorm:"size:500" json:"image"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
