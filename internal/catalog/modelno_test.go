package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUseClass(t *testing.T) {
	n, err := ParseUseClass("class/7.png")
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	n, err = ParseUseClass("255.png")
	require.NoError(t, err)
	assert.Equal(t, 255, n)

	_, err = ParseUseClass("class/knight.png")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "IUseClass", verr.Field)
	assert.Equal(t, "class/knight.png", verr.Value)
}

func TestModelNosNilModel(t *testing.T) {
	prefix, codes := ModelNos(1, 0, nil)
	assert.Equal(t, "i", prefix)
	assert.Nil(t, codes)
}

func TestModelNosWeapon(t *testing.T) {
	prefix, codes := ModelNos(1, 0, &SpriteRef{PosX: 12, PosY: 34})
	assert.Equal(t, "i", prefix)
	assert.Equal(t, []string{"012034"}, codes)
}

func TestModelNosArmorExpandsSubSlots(t *testing.T) {
	// Use-class 1 wears sub-slots 0 and 1.
	prefix, codes := ModelNos(3, 1, &SpriteRef{PosX: 12, PosY: 34})
	assert.Equal(t, "p", prefix)
	assert.Equal(t, []string{"000034", "010034"}, codes)

	// Use-class 7 covers six sub-slots in its own order.
	_, codes = ModelNos(3, 7, &SpriteRef{PosX: 0, PosY: 56})
	assert.Equal(t, []string{"040056", "050056", "000056", "010056", "020056", "030056"}, codes)
}

func TestModelNosArmorUnknownUseClass(t *testing.T) {
	prefix, codes := ModelNos(3, 99, &SpriteRef{PosX: 1, PosY: 2})
	assert.Equal(t, "p", prefix)
	assert.Empty(t, codes)
}

func TestModelNosNonArmorNonWeaponKeepsBase(t *testing.T) {
	prefix, codes := ModelNos(10, 0, &SpriteRef{PosX: 1, PosY: 2})
	assert.Equal(t, "i", prefix)
	assert.Equal(t, []string{"001002"}, codes)
}
