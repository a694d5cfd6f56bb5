package catalog

// ===============================
// Statut d'une fiche
// ===============================

// Une fiche naît en_attente puis oscille librement entre actif et inactif.
// Il n'y a pas d'état terminal: seule la suppression sort une fiche du
// catalogue. Tout changement de statut est une édition réservée aux
// administrateurs.

type Statut string

const (
	StatutEnAttente Statut = "en_attente"
	StatutActif     Statut = "actif"
	StatutInactif   Statut = "inactif"
)

func InitialStatut() Statut {
	return StatutEnAttente
}

func IsValidStatut(s string) bool {
	switch Statut(s) {
	case StatutEnAttente, StatutActif, StatutInactif:
		return true
	}
	return false
}

// ===============================
// Types de services
// ===============================

var serviceTypes = map[string]bool{
	"vet":      true,
	"grooming": true,
	"boarding": true,
	"training": true,
	"walking":  true,
	"other":    true,
}

func IsValidType(t string) bool {
	return serviceTypes[t]
}
