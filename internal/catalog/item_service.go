package catalog

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// ItemStore is the query surface the item service needs from persistence.
type ItemStore interface {
	ItemIDsByType(ctx context.Context, types []int, search string) ([]int, error)
	ItemsByID(ctx context.Context, ids []int) ([]Item, error)
	ItemName(ctx context.Context, id int) (string, error)
	IconResources(ctx context.Context, ids []int) (map[int]SpriteRef, error)
	ModelResource(ctx context.Context, id int) (*SpriteRef, error)
	SpecificProc(ctx context.Context, id int) (*SpecificProc, error)
	ItemAbnormalResists(ctx context.Context, id int) ([]AbnormalResist, error)
	RuneBead(ctx context.Context, id int) (*BeadEffect, error)
	BeadModule(ctx context.Context, id int) (*BeadModule, error)
	BeadHoleProbs(ctx context.Context, id int) ([]HoleProb, error)
	ItemAttributeAdd(ctx context.Context, id int) (*AttributeEffect, error)
	ItemAttributeResist(ctx context.Context, id int) (*AttributeEffect, error)
	ItemProtect(ctx context.Context, id int) (*Protect, error)
	ItemSlain(ctx context.Context, id int) (*Slain, error)
	ItemPenalties(ctx context.Context, id int) ([]Penalty, error)
}

// CraftStore resolves crafting relations of an item.
type CraftStore interface {
	RecipeFor(ctx context.Context, id int) ([]CraftEntry, error)
	UsedIn(ctx context.Context, id int) ([]CraftUse, error)
}

// DropSourceStore lists the monsters dropping an item.
type DropSourceStore interface {
	DropSourcesByItem(ctx context.Context, id int) ([]DropSource, error)
}

// SellerStore lists the merchants selling an item.
type SellerStore interface {
	SellersOf(ctx context.Context, id int) ([]MerchantOffer, error)
}

// ItemSkillStore resolves the skill graph hanging off an item.
type ItemSkillStore interface {
	ItemSkill(ctx context.Context, id int) (*SkillLink, error)
	TransformList(ctx context.Context, groupID int) ([]TransformEntry, error)
	AbnormalTypeInfo(ctx context.Context, aid int) (*AbnormalTypeInfo, error)
	AbnormalSkills(ctx context.Context, aid int) ([]RelatedSkill, error)
	SkillPackActivation(ctx context.Context, spid int) (*SkillActivation, error)
}

// IconResolver composes CDN image URLs; implemented by the assets package.
type IconResolver interface {
	ItemIcon(fileName string, x, y int) string
	ItemIconDefault() string
	SkillIcon(spriteFile string, x, y *int) string
	MonsterPortrait(mid int) string
	MonsterModel(fileNo int) string
	ClassIcon(class int) string
}

// AttributeNames resolves display names of elemental attribute types from
// the reference sheets; both return "" when the sheet is unavailable. The
// context bounds the sheet fetch to the request.
type AttributeNames interface {
	WeaponAttribute(ctx context.Context, atype int) string
	ArmorAttribute(ctx context.Context, atype int) string
}

// The rune item name prefix gating the bead lookup.
const runePrefix = "Руна"

// Transform-granting module type.
const moduleTypeTransform = 20

// Book module type keeps the direct skill link on the detail page.
const moduleTypeBook = 101

// Bead type whose activation skill is surfaced.
const beadTypeActive = 2

// ItemService assembles item lists and detail aggregates. Only the base row
// is load-bearing; every side lookup degrades to an omitted section.
type ItemService struct {
	store   ItemStore
	crafts  CraftStore
	drops   DropSourceStore
	sellers SellerStore
	skills  ItemSkillStore
	icons   IconResolver
	attrs   AttributeNames
	classes ClassNames
	log     *zap.Logger
}

func NewItemService(store ItemStore, crafts CraftStore, drops DropSourceStore, sellers SellerStore, skills ItemSkillStore, icons IconResolver, attrs AttributeNames, classes ClassNames, log *zap.Logger) *ItemService {
	return &ItemService{
		store:   store,
		crafts:  crafts,
		drops:   drops,
		sellers: sellers,
		skills:  skills,
		icons:   icons,
		attrs:   attrs,
		classes: classes,
		log:     log.Named("items"),
	}
}

// List returns the items of the given types matching search, with a map of
// resolved icon URLs per item. Items without an icon resource get the
// fallback image.
func (s *ItemService) List(ctx context.Context, types []int, search string) ([]Item, map[int]string, error) {
	ids, err := s.store.ItemIDsByType(ctx, types, search)
	if err != nil {
		return nil, nil, err
	}
	if len(ids) == 0 {
		return []Item{}, map[int]string{}, nil
	}

	items, err := s.store.ItemsByID(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	icons := map[int]string{}
	resources, err := s.store.IconResources(ctx, ids)
	if err != nil {
		s.log.Warn("icon resources unavailable", zap.Error(err))
		resources = nil
	}
	for _, id := range ids {
		if res, ok := resources[id]; ok {
			icons[id] = s.icons.ItemIcon(res.FileName, res.PosX, res.PosY)
		} else {
			icons[id] = s.icons.ItemIconDefault()
		}
	}
	return items, icons, nil
}

// Name returns the display name of one item.
func (s *ItemService) Name(ctx context.Context, id int) (string, error) {
	return s.store.ItemName(ctx, id)
}

// Info returns the name and icon URL of one item.
func (s *ItemService) Info(ctx context.Context, id int) (name, icon string, err error) {
	name, err = s.store.ItemName(ctx, id)
	if err != nil {
		return "", "", err
	}
	icon = s.icons.ItemIconDefault()
	res, err := s.store.IconResources(ctx, []int{id})
	if err == nil {
		if r, ok := res[id]; ok {
			icon = s.icons.ItemIcon(r.FileName, r.PosX, r.PosY)
		}
	}
	return name, icon, nil
}

// Detail builds the full aggregate for one item. It fails hard only on a
// missing base row or an unparsable use class; every other section is
// optional and a failed lookup is logged and omitted.
func (s *ItemService) Detail(ctx context.Context, id int) (*ItemDetail, error) {
	items, err := s.store.ItemsByID(ctx, []int{id})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}
	item := items[0]

	useClass, err := ParseUseClass(item.IUseClass)
	if err != nil {
		return nil, err
	}

	d := &ItemDetail{
		Item:     item,
		UseClass: useClass,
		IconPath: s.icons.ItemIconDefault(),
	}

	if res, err := s.store.IconResources(ctx, []int{id}); err != nil {
		s.log.Warn("icon resource lookup failed", zap.Int("item", id), zap.Error(err))
	} else if r, ok := res[id]; ok {
		d.IconPath = s.icons.ItemIcon(r.FileName, r.PosX, r.PosY)
	}

	if model, err := s.store.ModelResource(ctx, id); err != nil {
		s.log.Warn("model resource lookup failed", zap.Int("item", id), zap.Error(err))
	} else {
		d.ModelPrefix, d.ModelNos = ModelNos(item.IType, useClass, model)
	}

	if drops, err := s.drops.DropSourcesByItem(ctx, id); err != nil {
		s.log.Warn("drop source lookup failed", zap.Int("item", id), zap.Error(err))
	} else {
		for i := range drops {
			drops[i].MName = CleanName(drops[i].MName)
			drops[i].MClass = s.classes.MonsterClass(ctx, drops[i].MClassCode)
			drops[i].Pic = s.icons.MonsterPortrait(drops[i].MID)
		}
		d.DropSources = drops
	}

	if sellers, err := s.sellers.SellersOf(ctx, id); err != nil {
		s.log.Warn("merchant lookup failed", zap.Int("item", id), zap.Error(err))
	} else {
		d.Merchants = sellers
	}

	if recipe, err := s.crafts.RecipeFor(ctx, id); err != nil {
		s.log.Warn("craft recipe lookup failed", zap.Int("item", id), zap.Error(err))
	} else {
		for i := range recipe {
			if recipe[i].IconFile != "" {
				recipe[i].ImagePath = s.icons.ItemIcon(recipe[i].IconFile, recipe[i].IconX, recipe[i].IconY)
			} else {
				recipe[i].ImagePath = s.icons.ItemIconDefault()
			}
		}
		d.CraftRecipe = recipe
	}
	if uses, err := s.crafts.UsedIn(ctx, id); err != nil {
		s.log.Warn("craft use lookup failed", zap.Int("item", id), zap.Error(err))
	} else {
		for i := range uses {
			if uses[i].IconFile != "" {
				uses[i].ImagePath = s.icons.ItemIcon(uses[i].IconFile, uses[i].IconX, uses[i].IconY)
			} else {
				uses[i].ImagePath = s.icons.ItemIconDefault()
			}
		}
		d.CraftUses = uses
	}

	if proc, err := s.store.SpecificProc(ctx, id); err != nil {
		s.log.Warn("specific proc lookup failed", zap.Int("item", id), zap.Error(err))
	} else {
		d.SpecificProc = proc
	}

	s.attachSkill(ctx, id, d)

	if resists, err := s.store.ItemAbnormalResists(ctx, id); err != nil {
		s.log.Warn("abnormal resist lookup failed", zap.Int("item", id), zap.Error(err))
	} else {
		for i := range resists {
			resists[i].SkillIconPath = s.icons.SkillIcon(resists[i].SpriteFile, resists[i].SpriteX, resists[i].SpriteY)
		}
		d.AbnormalResists = resists
	}

	if strings.HasPrefix(item.IName, runePrefix) {
		s.attachBead(ctx, id, d)
	}

	if module, err := s.store.BeadModule(ctx, id); err != nil {
		s.log.Warn("bead module lookup failed", zap.Int("item", id), zap.Error(err))
	} else {
		d.BeadModule = module
	}
	if probs, err := s.store.BeadHoleProbs(ctx, id); err != nil {
		s.log.Warn("bead hole prob lookup failed", zap.Int("item", id), zap.Error(err))
	} else {
		d.BeadHoleProbs = probs
	}

	if add, err := s.store.ItemAttributeAdd(ctx, id); err != nil {
		s.log.Warn("attribute add lookup failed", zap.Int("item", id), zap.Error(err))
	} else if add != nil {
		add.AName = s.attrs.WeaponAttribute(ctx, add.AType)
		d.AttributeAdd = add
	}
	if resist, err := s.store.ItemAttributeResist(ctx, id); err != nil {
		s.log.Warn("attribute resist lookup failed", zap.Int("item", id), zap.Error(err))
	} else if resist != nil {
		resist.AName = s.attrs.ArmorAttribute(ctx, resist.AType)
		d.AttributeResist = resist
	}

	if protect, err := s.store.ItemProtect(ctx, id); err != nil {
		s.log.Warn("protect lookup failed", zap.Int("item", id), zap.Error(err))
	} else {
		d.Protect = protect
	}
	if slain, err := s.store.ItemSlain(ctx, id); err != nil {
		s.log.Warn("slain lookup failed", zap.Int("item", id), zap.Error(err))
	} else {
		d.Slain = slain
	}

	if penalties, err := s.store.ItemPenalties(ctx, id); err != nil {
		s.log.Warn("penalty lookup failed", zap.Int("item", id), zap.Error(err))
	} else {
		for i := range penalties {
			penalties[i].ClassPic = s.icons.ClassIcon(penalties[i].UseClass)
		}
		d.Penalties = penalties
	}

	return d, nil
}

func (s *ItemService) attachSkill(ctx context.Context, id int, d *ItemDetail) {
	link, err := s.skills.ItemSkill(ctx, id)
	if err != nil {
		s.log.Warn("item skill lookup failed", zap.Int("item", id), zap.Error(err))
		return
	}
	if link == nil {
		return
	}

	// Transform modules resolve to the list of forms instead of a skill.
	if link.ModuleType == moduleTypeTransform {
		forms, err := s.skills.TransformList(ctx, link.AParam)
		if err != nil {
			s.log.Warn("transform list lookup failed", zap.Int("item", id), zap.Error(err))
		} else if len(forms) > 0 {
			for i := range forms {
				forms[i].Portrait = s.icons.MonsterPortrait(forms[i].MonID)
			}
			d.TransformList = forms
			return
		}
	}

	// Only book modules keep the direct skill reference; everything else
	// surfaces the linked skills of the abnormal.
	if link.ModuleType == moduleTypeBook {
		d.Skill = link
		d.SkillIcon = s.icons.SkillIcon(link.SpriteFile, link.SpriteX, link.SpriteY)
	} else {
		related, err := s.skills.AbnormalSkills(ctx, link.AID)
		if err != nil {
			s.log.Warn("linked skill lookup failed", zap.Int("item", id), zap.Error(err))
		} else {
			for i := range related {
				related[i].Name = CleanName(related[i].Name)
				related[i].Desc = CleanDescription(related[i].Desc)
				related[i].Icon = s.icons.SkillIcon(related[i].SpriteFile, related[i].SpriteX, related[i].SpriteY)
			}
			d.LinkedSkills = related
		}
	}

	info, err := s.skills.AbnormalTypeInfo(ctx, link.AID)
	if err != nil {
		s.log.Warn("abnormal type lookup failed", zap.Int("item", id), zap.Error(err))
	} else if info != nil {
		info.IconPath = s.icons.SkillIcon(info.FileName, info.IconX, info.IconY)
		d.AbnormalType = info
	}
}

func (s *ItemService) attachBead(ctx context.Context, id int, d *ItemDetail) {
	bead, err := s.store.RuneBead(ctx, id)
	if err != nil {
		s.log.Warn("bead lookup failed", zap.Int("item", id), zap.Error(err))
		return
	}
	if bead == nil {
		return
	}
	d.RuneBead = bead

	if bead.BeadType != beadTypeActive {
		return
	}
	act, err := s.skills.SkillPackActivation(ctx, bead.ParamA)
	if err != nil {
		s.log.Warn("bead activation lookup failed", zap.Int("item", id), zap.Error(err))
		return
	}
	if act != nil {
		act.IconPath = s.icons.SkillIcon(act.SpriteFile, act.SpriteX, act.SpriteY)
		d.BeadActivation = act
	}
}
