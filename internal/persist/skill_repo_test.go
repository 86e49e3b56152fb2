package persist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/r2db/catalog/internal/catalog"
)

func strp(s string) *string { return &s }
func intp(n int) *int       { return &n }

func TestModuleParams(t *testing.T) {
	params := moduleParams(
		[]*string{strp("Damage"), nil, strp(""), strp("Duration")},
		[]*int{intp(120), intp(1), intp(2), nil},
	)

	// Only params with both a non-empty name and a value survive.
	assert.Equal(t, []catalog.ModuleParam{{Name: "Damage", Value: 120}}, params)
}

func TestModuleParamsAllMissing(t *testing.T) {
	assert.Nil(t, moduleParams([]*string{nil, nil}, []*int{nil, nil}))
	assert.Nil(t, moduleParams(nil, nil))
}
