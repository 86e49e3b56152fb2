package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems() []Item {
	return []Item{
		{IID: 1, IName: "Кинжал", IType: 1, ILevel: 10, IWeight: 2.5, ISTR: 1, IMaxStack: 0},
		{IID: 2, IName: "Адена", IType: 15, ILevel: 0, IWeight: 0, IMaxStack: 1, IIsEvent: true},
		{IID: 3, IName: "Доспех", IType: 3, ILevel: 40, IWeight: 12, ISTR: 3, IQuestNo: 77},
		{IID: 4, IName: "Лук", IType: 1, ILevel: 52, IWeight: 4, ICritical: 5},
	}
}

func TestItemFiltersIdentity(t *testing.T) {
	items := testItems()

	out := NewItemFilters(nil).Apply(items)
	assert.Equal(t, items, out)

	// Blank values are dropped at construction and never engage a stage.
	out = NewItemFilters(map[string]string{"typeFilter": "", "levelMin": ""}).Apply(items)
	assert.Equal(t, items, out)
}

func TestItemFiltersType(t *testing.T) {
	out := NewItemFilters(map[string]string{"typeFilter": "1"}).Apply(testItems())
	require.Len(t, out, 2)
	assert.Equal(t, 1, out[0].IID)
	assert.Equal(t, 4, out[1].IID)
}

func TestItemFiltersLevelRange(t *testing.T) {
	out := NewItemFilters(map[string]string{"levelMin": "10", "levelMax": "40"}).Apply(testItems())
	require.Len(t, out, 2)
	assert.Equal(t, 1, out[0].IID)
	assert.Equal(t, 3, out[1].IID)

	// Open-ended maximum.
	out = NewItemFilters(map[string]string{"levelMin": "50"}).Apply(testItems())
	require.Len(t, out, 1)
	assert.Equal(t, 4, out[0].IID)
}

func TestItemFiltersStackable(t *testing.T) {
	out := NewItemFilters(map[string]string{"stackableFilter": "1"}).Apply(testItems())
	require.Len(t, out, 1)
	assert.Equal(t, 2, out[0].IID)

	// Values other than the literal 0/1 do not select.
	out = NewItemFilters(map[string]string{"stackableFilter": "yes"}).Apply(testItems())
	assert.Len(t, out, 4)
}

func TestItemFiltersBoolFlags(t *testing.T) {
	out := NewItemFilters(map[string]string{"eventItemFilter": "1"}).Apply(testItems())
	require.Len(t, out, 1)
	assert.Equal(t, 2, out[0].IID)

	out = NewItemFilters(map[string]string{"eventItemFilter": "0"}).Apply(testItems())
	assert.Len(t, out, 3)
}

func TestItemFiltersStatRange(t *testing.T) {
	out := NewItemFilters(map[string]string{"ISTRMin": "1", "ISTRMax": "2"}).Apply(testItems())
	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0].IID)

	out = NewItemFilters(map[string]string{"ICriticalMin": "1"}).Apply(testItems())
	require.Len(t, out, 1)
	assert.Equal(t, 4, out[0].IID)
}

func TestItemFiltersWeightAndQuest(t *testing.T) {
	out := NewItemFilters(map[string]string{"weightMin": "3", "weightMax": "20"}).Apply(testItems())
	require.Len(t, out, 2)
	assert.Equal(t, 3, out[0].IID)
	assert.Equal(t, 4, out[1].IID)

	out = NewItemFilters(map[string]string{"questNoFilter": "77"}).Apply(testItems())
	require.Len(t, out, 1)
	assert.Equal(t, 3, out[0].IID)
}

func TestItemFiltersEarlyExit(t *testing.T) {
	var stages []string
	f := NewItemFilters(map[string]string{"typeFilter": "99", "levelMin": "1"})
	f.Trace = func(stage string) { stages = append(stages, stage) }

	out := f.Apply(testItems())
	assert.Nil(t, out)
	// The type stage empties the set, so the level stage never runs.
	assert.Equal(t, []string{"typeFilter"}, stages)
}

func TestItemFiltersStageOrder(t *testing.T) {
	var stages []string
	f := NewItemFilters(map[string]string{
		"typeFilter":      "1",
		"levelMin":        "1",
		"eventItemFilter": "0",
		"ISTRMin":         "0",
		"weightMax":       "100",
		"questNoFilter":   "0",
	})
	f.Trace = func(stage string) { stages = append(stages, stage) }

	f.Apply(testItems())
	assert.Equal(t, []string{"typeFilter", "level", "eventItemFilter", "ISTRMin", "weight", "questNoFilter"}, stages)
}

func TestItemFiltersIdempotent(t *testing.T) {
	f := NewItemFilters(map[string]string{"typeFilter": "1", "levelMin": "10"})
	once := f.Apply(testItems())
	twice := f.Apply(once)
	assert.Equal(t, once, twice)
}

func TestItemFiltersUnparsableValuesIgnored(t *testing.T) {
	out := NewItemFilters(map[string]string{"typeFilter": "sword", "eventItemFilter": "x"}).Apply(testItems())
	assert.Len(t, out, 4)
}

func testMonsters() []Monster {
	return []Monster{
		{MID: 1, MName: "Волк", MLevel: 5, MExp: 50, MClass: 1, MRaceType: 2, MAttackType: 0},
		{MID: 2, MName: "Орк", MLevel: 30, MExp: 900, MClass: 1, MRaceType: 4, MAttackType: 1, MIsShowHp: true},
		{MID: 3, MName: "Барлог", MLevel: 70, MExp: 50000, MClass: 29, MRaceType: 9, MAttackType: 1, MIsEvent: true},
	}
}

func TestMonsterFiltersIdentity(t *testing.T) {
	monsters := testMonsters()
	assert.Equal(t, monsters, NewMonsterFilters(nil).Apply(monsters))
}

func TestMonsterFiltersRanges(t *testing.T) {
	out := NewMonsterFilters(map[string]string{"mLevelMin": "10", "mLevelMax": "50"}).Apply(testMonsters())
	require.Len(t, out, 1)
	assert.Equal(t, 2, out[0].MID)

	out = NewMonsterFilters(map[string]string{"MExpMin": "900"}).Apply(testMonsters())
	require.Len(t, out, 2)
	assert.Equal(t, 2, out[0].MID)
	assert.Equal(t, 3, out[1].MID)
}

func TestMonsterFiltersEquality(t *testing.T) {
	out := NewMonsterFilters(map[string]string{"classFilter": "29"}).Apply(testMonsters())
	require.Len(t, out, 1)
	assert.Equal(t, 3, out[0].MID)

	out = NewMonsterFilters(map[string]string{"raceFilter": "4", "attackTypeFilter": "1"}).Apply(testMonsters())
	require.Len(t, out, 1)
	assert.Equal(t, 2, out[0].MID)
}

func TestMonsterFiltersFlagsEngageOnlyOnOne(t *testing.T) {
	out := NewMonsterFilters(map[string]string{"eventMonsterFilter": "1"}).Apply(testMonsters())
	require.Len(t, out, 1)
	assert.Equal(t, 3, out[0].MID)

	// "0" is not a selector, the stage is skipped entirely.
	out = NewMonsterFilters(map[string]string{"eventMonsterFilter": "0"}).Apply(testMonsters())
	assert.Len(t, out, 3)

	out = NewMonsterFilters(map[string]string{"showHpFilter": "1"}).Apply(testMonsters())
	require.Len(t, out, 1)
	assert.Equal(t, 2, out[0].MID)
}
