package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLabels(t *testing.T) {
	l, err := LoadLabels()
	require.NoError(t, err)

	assert.Len(t, l.Payments, 4)
	assert.Len(t, l.Bead.ChkGroups, 18)
	assert.Len(t, l.Bead.ApplyTargets, 4)
	assert.Len(t, l.Bead.TargetPositions, 20)
}

func TestPaymentType(t *testing.T) {
	l, err := LoadLabels()
	require.NoError(t, err)

	assert.Equal(t, "Серебра", l.PaymentType(0))
	assert.Equal(t, "Очков чести", l.PaymentType(1))
	assert.Equal(t, "ШОПа", l.PaymentType(3))
	assert.Equal(t, "Неизвестная валюта", l.PaymentType(42))
}

func TestBeadLabels(t *testing.T) {
	l, err := LoadLabels()
	require.NoError(t, err)

	assert.Equal(t, "По умолчанию (0)", l.ChkGroup(0))
	assert.Equal(t, "Привязанное умение по умолчанию (17)", l.ChkGroup(17))
	assert.Equal(t, "Неизвестно", l.ChkGroup(99))

	assert.Equal(t, "На себя (0)", l.ApplyTarget(0))
	assert.Equal(t, "На других NPC (3)", l.ApplyTarget(3))
	assert.Equal(t, "Неизвестно", l.ApplyTarget(-1))

	assert.Equal(t, "Оружие (0)", l.TargetIPos(0))
	assert.Equal(t, "Питомец (19)", l.TargetIPos(19))
	assert.Equal(t, "Неизвестно", l.TargetIPos(20))
}
