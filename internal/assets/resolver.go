// Package assets composes CDN URLs for the game sprite and portrait
// images. All methods are pure string composition; whether the image
// actually exists is the CDN's business, callers always get a URL.
package assets

import (
	"fmt"
	"strings"
)

const (
	defaultItemImage    = "no_item/no_item_image.png"
	defaultMonsterImage = "no_monster/no_monster_image.png"
)

// Resolver builds image URLs under a single base. The base is expected to
// end with a slash.
type Resolver struct {
	base string
}

func NewResolver(baseURL string) *Resolver {
	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Resolver{base: baseURL}
}

// ItemIcon composes the sprite-cell URL of an item inventory icon.
func (r *Resolver) ItemIcon(fileName string, x, y int) string {
	stem := stripExt(fileName)
	return fmt.Sprintf("%s%s_%d_%d.png", r.base, stem, x, y)
}

// ItemIconDefault is the fallback shown when an item has no icon resource.
func (r *Resolver) ItemIconDefault() string {
	return r.base + defaultItemImage
}

// SkillIcon composes the sprite-cell URL of a skill or abnormal icon. An
// empty sprite file or missing coordinates yield the monster placeholder,
// which is what the site has always shown for iconless effects.
func (r *Resolver) SkillIcon(spriteFile string, x, y *int) string {
	if spriteFile == "" || x == nil || y == nil {
		return r.base + defaultMonsterImage
	}
	return fmt.Sprintf("%s%s_%d_%d.png", r.base, strings.TrimSuffix(spriteFile, ".dds"), *x, *y)
}

// MonsterPortrait is the portrait URL of a monster or NPC.
func (r *Resolver) MonsterPortrait(mid int) string {
	return fmt.Sprintf("%s%d.png", r.base, mid)
}

// MonsterPortraitDefault is shown for monsters without a portrait.
func (r *Resolver) MonsterPortraitDefault() string {
	return r.base + defaultMonsterImage
}

// ClassIcon is the icon URL of a player class.
func (r *Resolver) ClassIcon(class int) string {
	return fmt.Sprintf("%sclass/%d.png", r.base, class)
}

// MonsterModel is the world-model URL of a monster resource file, which
// stores a numeric stem padded to five digits.
func (r *Resolver) MonsterModel(fileNo int) string {
	return fmt.Sprintf("%smodels/m%05d", r.base, fileNo)
}

func stripExt(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return name
}
