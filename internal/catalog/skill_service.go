package catalog

import (
	"context"

	"go.uber.org/zap"
)

// SkillStore is the query surface of the skill service.
type SkillStore interface {
	SkillList(ctx context.Context) ([]SkillListEntry, error)
	SkillRows(ctx context.Context, id int) ([]SkillRow, error)
	SkillAttribute(ctx context.Context, id int) (*AttributeEffect, error)
	SkillSlain(ctx context.Context, id int) (*Slain, error)
	AbnormalTypeInfo(ctx context.Context, aid int) (*AbnormalTypeInfo, error)
}

// SkillService serves the skill index and detail pages.
type SkillService struct {
	store SkillStore
	icons IconResolver
	attrs AttributeNames
	log   *zap.Logger
}

func NewSkillService(store SkillStore, icons IconResolver, attrs AttributeNames, log *zap.Logger) *SkillService {
	return &SkillService{store: store, icons: icons, attrs: attrs, log: log.Named("skills")}
}

// List returns every skill with its resolved icon path.
func (s *SkillService) List(ctx context.Context) ([]SkillListEntry, error) {
	entries, err := s.store.SkillList(ctx)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].SName = CleanName(entries[i].SName)
		entries[i].PackDesc = CleanName(entries[i].PackDesc)
		entries[i].IconPath = s.icons.SkillIcon(entries[i].SpriteFile, entries[i].SpriteX, entries[i].SpriteY)
	}
	return entries, nil
}

// Detail returns the joined rows of one skill plus its attribute and slain
// bonuses. A skill with no rows is ErrNotFound.
func (s *SkillService) Detail(ctx context.Context, id int) (*SkillDetail, error) {
	rows, err := s.store.SkillRows(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}

	for i := range rows {
		if rows[i].Abnormal == nil {
			continue
		}
		info, err := s.store.AbnormalTypeInfo(ctx, rows[i].Abnormal.AbnormalID)
		if err != nil {
			s.log.Warn("abnormal type lookup failed", zap.Int("skill", id), zap.Error(err))
			continue
		}
		if info != nil {
			info.IconPath = s.icons.SkillIcon(info.FileName, info.IconX, info.IconY)
			rows[i].AbnormalType = info
			rows[i].AbnormalTypePic = info.IconPath
		}
	}

	d := &SkillDetail{Rows: rows}

	if attr, err := s.store.SkillAttribute(ctx, id); err != nil {
		s.log.Warn("attribute lookup failed", zap.Int("skill", id), zap.Error(err))
	} else if attr != nil {
		attr.AName = s.attrs.WeaponAttribute(ctx, attr.AType)
		d.Attribute = attr
	}
	if slain, err := s.store.SkillSlain(ctx, id); err != nil {
		s.log.Warn("slain lookup failed", zap.Int("skill", id), zap.Error(err))
	} else {
		d.Slain = slain
	}

	return d, nil
}
