package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	list := []int{1, 2, 3, 4, 5, 6, 7}

	page, total, pages := Paginate(list, 1, 3)
	assert.Equal(t, []int{1, 2, 3}, page)
	assert.Equal(t, 7, total)
	assert.Equal(t, 3, pages)

	page, _, _ = Paginate(list, 2, 3)
	assert.Equal(t, []int{4, 5, 6}, page)

	// Last page is short.
	page, _, _ = Paginate(list, 3, 3)
	assert.Equal(t, []int{7}, page)
}

func TestPaginateOutOfRange(t *testing.T) {
	page, total, pages := Paginate([]int{1, 2}, 5, 10)
	assert.Equal(t, []int{}, page)
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, pages)
}

func TestPaginateDefaults(t *testing.T) {
	list := []int{1, 2, 3}

	// Page zero clamps to one, perPage zero falls back to the default.
	page, total, pages := Paginate(list, 0, 0)
	assert.Equal(t, list, page)
	assert.Equal(t, 3, total)
	assert.Equal(t, 1, pages)
}

func TestPaginateEmpty(t *testing.T) {
	page, total, pages := Paginate([]int(nil), 1, 10)
	assert.Equal(t, []int{}, page)
	assert.Zero(t, total)
	assert.Zero(t, pages)
}
