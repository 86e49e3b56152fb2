package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// armorSubSlots maps an armor use-class to the sub-slot indices its model
// code expands into.
var armorSubSlots = map[int][]int{
	1:   {0, 1},
	2:   {2, 3},
	4:   {4, 5},
	5:   {0, 1, 4, 5},
	7:   {4, 5, 0, 1, 2, 3},
	8:   {6, 7},
	15:  {0, 1, 2, 3, 4, 5, 6, 7},
	16:  {8, 9},
	18:  {8, 9, 2, 3},
	19:  {8, 9, 2, 3, 0, 1},
	20:  {8, 9, 4, 5},
	22:  {8, 9, 4, 5, 2, 3},
	23:  {0, 1, 2, 3, 4, 5, 8, 9},
	0:   {0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
	255: {0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
}

const (
	itemTypeArmor = 3
)

// weaponLikeTypes keep the raw model base: weapons, shields and arrows.
var weaponLikeTypes = map[int]bool{1: true, 18: true, 20: true, 2: true, 19: true}

// ParseUseClass extracts the numeric use-class from the raw IUseClass
// column, which stores a path like "class/7.png".
func ParseUseClass(raw string) (int, error) {
	parts := strings.Split(raw, "/")
	last := strings.TrimSuffix(parts[len(parts)-1], ".png")
	n, err := strconv.Atoi(last)
	if err != nil {
		return 0, &ValidationError{Field: "IUseClass", Value: raw}
	}
	return n, nil
}

// ModelNos derives the 3D model codes of an item from its world-model
// sprite position. Armor expands into one code per sub-slot of the wearing
// class with prefix "p"; everything else keeps the six-digit base with
// prefix "i". A nil model resource yields no codes.
func ModelNos(itemType, useClass int, model *SpriteRef) (prefix string, codes []string) {
	prefix = "i"
	if model == nil {
		return prefix, nil
	}

	base := fmt.Sprintf("%03d%03d", model.PosX, model.PosY)
	if itemType == itemTypeArmor {
		prefix = "p"
		for _, idx := range armorSubSlots[useClass] {
			codes = append(codes, fmt.Sprintf("0%d0%s", idx, base[3:]))
		}
		return prefix, codes
	}
	return prefix, []string{base}
}
