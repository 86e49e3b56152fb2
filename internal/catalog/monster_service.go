package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// MonsterStore is the query surface the monster service needs.
type MonsterStore interface {
	MonstersByClass(ctx context.Context, classes []int, search string) ([]Monster, error)
	MonsterByID(ctx context.Context, id int) (*Monster, error)
	MonsterName(ctx context.Context, id int) (string, error)
	MonsterModelNo(ctx context.Context, id int) (*int, error)
	MonsterDrops(ctx context.Context, id int) ([]MonsterDrop, error)
	RespawnTick(ctx context.Context, id int, isEvent bool) (tick, varTick int, err error)
	MonsterAbnormalResists(ctx context.Context, id int) ([]AbnormalResist, error)
	MonsterAttributeAdd(ctx context.Context, id int) (*AttributeEffect, error)
	MonsterAttributeResist(ctx context.Context, id int) (*AttributeEffect, error)
	MonsterProtect(ctx context.Context, id int) (*Protect, error)
	MonsterSlain(ctx context.Context, id int) (*Slain, error)
}

// MerchantInventoryStore lists the sell inventory of a merchant NPC.
type MerchantInventoryStore interface {
	ItemsOfMerchant(ctx context.Context, merchantID int) ([]MerchantItem, error)
}

// ClassNames resolves monster reference data from the sheets: class and
// race display text plus the spawn locations of one monster. Unavailable
// sheets resolve to ""/nil. The context bounds the fetch to the request.
type ClassNames interface {
	MonsterClass(ctx context.Context, class int) string
	MonsterRace(ctx context.Context, race int) string
	MonsterLocations(ctx context.Context, mid int) []MonsterLocation
}

// MonsterService assembles monster lists and detail aggregates with the
// same tolerant fan-out as the item service.
type MonsterService struct {
	store     MonsterStore
	inventory MerchantInventoryStore
	icons     IconResolver
	attrs     AttributeNames
	classes   ClassNames
	log       *zap.Logger
}

func NewMonsterService(store MonsterStore, inventory MerchantInventoryStore, icons IconResolver, attrs AttributeNames, classes ClassNames, log *zap.Logger) *MonsterService {
	return &MonsterService{
		store:     store,
		inventory: inventory,
		icons:     icons,
		attrs:     attrs,
		classes:   classes,
		log:       log.Named("monsters"),
	}
}

// List returns monsters of the given classes matching search, with their
// portrait URLs keyed by MID.
func (s *MonsterService) List(ctx context.Context, classes []int, search string) ([]Monster, map[int]string, error) {
	monsters, err := s.store.MonstersByClass(ctx, classes, search)
	if err != nil {
		return nil, nil, err
	}
	portraits := make(map[int]string, len(monsters))
	for _, m := range monsters {
		portraits[m.MID] = s.icons.MonsterPortrait(m.MID)
	}
	return monsters, portraits, nil
}

// Detail builds the aggregate for one monster; only the base row is
// load-bearing.
func (s *MonsterService) Detail(ctx context.Context, id int) (*MonsterDetail, error) {
	m, err := s.store.MonsterByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNotFound
	}

	d := &MonsterDetail{
		Monster:   *m,
		Portrait:  s.icons.MonsterPortrait(id),
		ClassName: s.classes.MonsterClass(ctx, m.MClass),
		RaceDesc:  s.classes.MonsterRace(ctx, m.MRaceType),
		Locations: s.classes.MonsterLocations(ctx, id),
	}

	if fileNo, err := s.store.MonsterModelNo(ctx, id); err != nil {
		s.log.Warn("model resource lookup failed", zap.Int("monster", id), zap.Error(err))
	} else if fileNo != nil {
		d.ModelNo = fmt.Sprintf("%05d", *fileNo)
		d.Model = s.icons.MonsterModel(*fileNo)
	}

	if tick, varTick, err := s.store.RespawnTick(ctx, id, m.MIsEvent); err != nil {
		s.log.Warn("respawn tick lookup failed", zap.Int("monster", id), zap.Error(err))
	} else {
		d.RespawnTick = tick
		d.RespawnTickVar = varTick
	}

	if drops, err := s.store.MonsterDrops(ctx, id); err != nil {
		s.log.Warn("drop lookup failed", zap.Int("monster", id), zap.Error(err))
	} else {
		for i := range drops {
			drops[i].MClass = s.classes.MonsterClass(ctx, drops[i].MClassCode)
			if drops[i].IconFile != "" {
				drops[i].Pic = s.icons.ItemIcon(drops[i].IconFile, drops[i].IconX, drops[i].IconY)
			} else {
				drops[i].Pic = s.icons.ItemIconDefault()
			}
		}
		d.Drops = drops
	}

	if resists, err := s.store.MonsterAbnormalResists(ctx, id); err != nil {
		s.log.Warn("abnormal resist lookup failed", zap.Int("monster", id), zap.Error(err))
	} else {
		for i := range resists {
			resists[i].SkillIconPath = s.icons.SkillIcon(resists[i].SpriteFile, resists[i].SpriteX, resists[i].SpriteY)
		}
		d.AbnormalResists = resists
	}

	if add, err := s.store.MonsterAttributeAdd(ctx, id); err != nil {
		s.log.Warn("attribute add lookup failed", zap.Int("monster", id), zap.Error(err))
	} else if add != nil {
		add.AName = s.attrs.WeaponAttribute(ctx, add.AType)
		d.AttributeAdd = add
	}
	if resist, err := s.store.MonsterAttributeResist(ctx, id); err != nil {
		s.log.Warn("attribute resist lookup failed", zap.Int("monster", id), zap.Error(err))
	} else if resist != nil {
		resist.AName = s.attrs.ArmorAttribute(ctx, resist.AType)
		d.AttributeResist = resist
	}

	if protect, err := s.store.MonsterProtect(ctx, id); err != nil {
		s.log.Warn("protect lookup failed", zap.Int("monster", id), zap.Error(err))
	} else {
		d.Protect = protect
	}
	if slain, err := s.store.MonsterSlain(ctx, id); err != nil {
		s.log.Warn("slain lookup failed", zap.Int("monster", id), zap.Error(err))
	} else {
		d.Slain = slain
	}

	if m.MSellMerchanID != 0 {
		if items, err := s.inventory.ItemsOfMerchant(ctx, id); err != nil {
			s.log.Warn("merchant inventory lookup failed", zap.Int("monster", id), zap.Error(err))
		} else {
			d.SellItems = items
		}
	}

	return d, nil
}

// Name returns the cleaned display name of one monster.
func (s *MonsterService) Name(ctx context.Context, id int) (string, error) {
	name, err := s.store.MonsterName(ctx, id)
	if err != nil {
		return "", err
	}
	return CleanName(name), nil
}
