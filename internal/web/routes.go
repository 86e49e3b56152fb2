package web

// Route groups map the URL group segment to the dt_item type codes or
// dt_monster class codes it covers. Unknown groups are a 404.

var itemGroups = map[string][]int{
	"item_all":  itemTypeRange(0, 42),
	"weapon":    {1, 18, 20},
	"armor":     {3},
	"gloves":    {7},
	"boots":     {6},
	"helmet":    {8},
	"shield":    {2},
	"arrows":    {19},
	"cloak":     {17},
	"materials": {10, 16},
	"ring":      {4},
	"belt":      {9},
	"necklace":  {5},
	"earrings":  {42},
	"books":     {12},
	"potions":   {10},
	"etc":       {14, 16, 13, 11},
	"event":     {15},
	"sphere":    {22, 23, 24, 25, 26, 27, 28, 29},
	"quest":     {15, 16},
}

var monsterGroups = map[string][]int{
	"all":      itemTypeRange(1, 38),
	"regular":  itemTypeRange(1, 22),
	"boss":     {29, 38, 37, 36, 34},
	"raidboss": {26},
	"imennoy":  {28},
	"npc":      {23},
	"event":    {27},
}

func itemTypeRange(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}
