package catalog

import (
	"context"

	"go.uber.org/zap"
)

// AbnormalStore is the query surface of the abnormal service.
type AbnormalStore interface {
	AbnormalList(ctx context.Context) ([]AbnormalListEntry, error)
	AbnormalDetail(ctx context.Context, aid int) (*AbnormalDetail, error)
	AbnormalTypeInfo(ctx context.Context, aid int) (*AbnormalTypeInfo, error)
	AbnormalSkills(ctx context.Context, aid int) ([]RelatedSkill, error)
	AbnormalItems(ctx context.Context, aid int) ([]RelatedItem, error)
}

// AbnormalService serves the abnormal-effect index and detail pages.
type AbnormalService struct {
	store AbnormalStore
	icons IconResolver
	log   *zap.Logger
}

func NewAbnormalService(store AbnormalStore, icons IconResolver, log *zap.Logger) *AbnormalService {
	return &AbnormalService{store: store, icons: icons, log: log.Named("abnormals")}
}

// List returns every abnormal effect with its resolved icon path.
func (s *AbnormalService) List(ctx context.Context) ([]AbnormalListEntry, error) {
	entries, err := s.store.AbnormalList(ctx)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].AName = CleanDescription(entries[i].AName)
		entries[i].ADesc = CleanDescription(entries[i].ADesc)
		entries[i].IconPath = s.icons.SkillIcon(entries[i].FileName, entries[i].IconX, entries[i].IconY)
	}
	return entries, nil
}

// Detail returns the aggregate for one abnormal; the cross-linked skill and
// item sections are fault-isolated.
func (s *AbnormalService) Detail(ctx context.Context, aid int) (*AbnormalDetail, error) {
	d, err := s.store.AbnormalDetail(ctx, aid)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrNotFound
	}

	if info, err := s.store.AbnormalTypeInfo(ctx, aid); err != nil {
		s.log.Warn("abnormal type lookup failed", zap.Int("abnormal", aid), zap.Error(err))
	} else if info != nil {
		info.IconPath = s.icons.SkillIcon(info.FileName, info.IconX, info.IconY)
		d.AbnormalType = info
		d.AbnormalTypePic = info.IconPath
	}

	if skills, err := s.store.AbnormalSkills(ctx, aid); err != nil {
		s.log.Warn("related skill lookup failed", zap.Int("abnormal", aid), zap.Error(err))
	} else {
		for i := range skills {
			skills[i].Name = CleanName(skills[i].Name)
			skills[i].Desc = CleanDescription(skills[i].Desc)
			skills[i].Icon = s.icons.SkillIcon(skills[i].SpriteFile, skills[i].SpriteX, skills[i].SpriteY)
		}
		d.RelatedSkills = skills
	}
	if items, err := s.store.AbnormalItems(ctx, aid); err != nil {
		s.log.Warn("related item lookup failed", zap.Int("abnormal", aid), zap.Error(err))
	} else {
		for i := range items {
			if items[i].IconFile != "" {
				items[i].Icon = s.icons.ItemIcon(items[i].IconFile, items[i].IconX, items[i].IconY)
			} else {
				items[i].Icon = s.icons.ItemIconDefault()
			}
		}
		d.RelatedItems = items
	}

	return d, nil
}
