package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitialStatut(t *testing.T) {
	assert.Equal(t, StatutEnAttente, InitialStatut())
}

func TestIsValidStatut(t *testing.T) {
	for _, s := range []string{"en_attente", "actif", "inactif"} {
		assert.True(t, IsValidStatut(s), s)
	}
	for _, s := range []string{"", "archivé", "ACTIF", "pending"} {
		assert.False(t, IsValidStatut(s), s)
	}
}

func TestIsValidType(t *testing.T) {
	for _, typ := range []string{"vet", "grooming", "boarding", "training", "walking", "other"} {
		assert.True(t, IsValidType(typ), typ)
	}
	for _, typ := range []string{"", "all", "plomberie", "VET"} {
		assert.False(t, IsValidType(typ), typ)
	}
}
