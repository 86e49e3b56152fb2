package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanDescription(t *testing.T) {
	assert.Equal(t, "", CleanDescription(""))
	assert.Equal(t, "Сила +1 ⭑ Ловкость +2", CleanDescription("Сила +1/nЛовкость +2"))
	assert.Equal(t, "Сила +1 ⭑ Ловкость +2", CleanDescription(`Сила +1\nЛовкость +2`))
	assert.Equal(t, "без переносов", CleanDescription("без переносов"))
}

func TestCleanName(t *testing.T) {
	assert.Equal(t, "", CleanName(""))
	assert.Equal(t, "Хранитель сундука", CleanName("Хранитель/nсундука"))
	assert.Equal(t, "Хранитель сундука", CleanName(`Хранитель\nсундука`))
}
