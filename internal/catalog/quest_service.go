package catalog

import (
	"context"

	"go.uber.org/zap"
)

// QuestStore returns the grouped quest records.
type QuestStore interface {
	Quests(ctx context.Context) ([]Quest, error)
}

// QuestService serves the quest catalog; item and NPC images are resolved
// here so missing resources fall back instead of failing the list.
type QuestService struct {
	store QuestStore
	icons IconResolver
	items ItemStore
	log   *zap.Logger
}

func NewQuestService(store QuestStore, icons IconResolver, items ItemStore, log *zap.Logger) *QuestService {
	return &QuestService{store: store, icons: icons, items: items, log: log.Named("quests")}
}

// List returns every quest with reward and requirement images resolved.
func (s *QuestService) List(ctx context.Context) ([]Quest, error) {
	quests, err := s.store.Quests(ctx)
	if err != nil {
		return nil, err
	}

	for qi := range quests {
		q := &quests[qi]
		for i := range q.Rewards.ItemList {
			q.Rewards.ItemList[i].Pic = s.itemPic(ctx, q.Rewards.ItemList[i].ID)
		}
		for i := range q.Requirements.ItemList {
			q.Requirements.ItemList[i].Pic = s.itemPic(ctx, q.Requirements.ItemList[i].ID)
		}
		if q.NPCs.Completion != nil {
			q.NPCs.Completion.Pic = s.icons.MonsterPortrait(q.NPCs.Completion.ID)
		}
		if q.NPCs.Find != nil {
			q.NPCs.Find.Pic = s.icons.MonsterPortrait(q.NPCs.Find.ID)
		}
	}
	return quests, nil
}

func (s *QuestService) itemPic(ctx context.Context, id int) string {
	res, err := s.items.IconResources(ctx, []int{id})
	if err != nil {
		s.log.Warn("quest item icon lookup failed", zap.Int("item", id), zap.Error(err))
		return s.icons.ItemIconDefault()
	}
	if r, ok := res[id]; ok {
		return s.icons.ItemIcon(r.FileName, r.PosX, r.PosY)
	}
	return s.icons.ItemIconDefault()
}
