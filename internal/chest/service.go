package chest

import (
	"context"

	"go.uber.org/zap"
)

// ScriptStore reads and replaces the dialog script pair of a chest NPC.
// ReplaceScript must swap both the script and the dialog text atomically.
type ScriptStore interface {
	Script(ctx context.Context, mid int) (string, error)
	ReplaceScript(ctx context.Context, mid int, script, dialog string) error
}

// ItemInfo resolves the display name and icon of an item.
type ItemInfo interface {
	Info(ctx context.Context, id int) (name, icon string, err error)
}

// ChestInfo resolves the name and portrait of the chest NPC itself.
type ChestInfo interface {
	Name(ctx context.Context, mid int) (string, error)
	Portrait(mid int) string
}

// Config carries the fixed item IDs the generated script consumes and
// falls back to, plus the set of chest NPCs the catalog knows about.
type Config struct {
	MIDs             []int
	BoxItemID        int
	KeyItemID        int
	ConsolationID    int
	ConsolationCount int
}

// ChestLoot groups the loot of one chest NPC.
type ChestLoot struct {
	MID   int        `json:"MID"`
	Name  string     `json:"MName"`
	Pic   string     `json:"MID_pic"`
	Items []LootItem `json:"items"`
}

// Service owns the chest-loot read and write path.
type Service struct {
	store  ScriptStore
	items  ItemInfo
	chests ChestInfo
	cfg    Config
	log    *zap.Logger
}

func NewService(store ScriptStore, items ItemInfo, chests ChestInfo, cfg Config, log *zap.Logger) *Service {
	return &Service{store: store, items: items, chests: chests, cfg: cfg, log: log.Named("chest")}
}

// MIDs lists the configured chest NPCs.
func (s *Service) MIDs() []int { return s.cfg.MIDs }

// Analyze reads the stored script of one chest and resolves its drops into
// displayable loot items. An unconfigured chest yields an empty list.
func (s *Service) Analyze(ctx context.Context, mid int) ([]LootItem, error) {
	script, err := s.store.Script(ctx, mid)
	if err != nil {
		return nil, err
	}
	drops := ParseScript(script)
	if len(drops) == 0 {
		return []LootItem{}, nil
	}

	chestName, err := s.chests.Name(ctx, mid)
	if err != nil {
		s.log.Warn("chest name lookup failed", zap.Int("mid", mid), zap.Error(err))
	}
	chestPic := s.chests.Portrait(mid)

	items := make([]LootItem, 0, len(drops))
	for _, d := range drops {
		name, pic, err := s.items.Info(ctx, d.ItemID)
		if err != nil {
			s.log.Warn("loot item lookup failed", zap.Int("item", d.ItemID), zap.Error(err))
		}
		items = append(items, LootItem{
			ItemID:     d.ItemID,
			ItemName:   name,
			ItemPic:    pic,
			ChestName:  chestName,
			ChestPic:   chestPic,
			DropChance: ThresholdToPercent(d.Threshold),
			Count:      d.Count,
			Status:     d.Status,
		})
	}
	return items, nil
}

// Save regenerates the script and dialog texts from the submitted loot
// list and persists both in one swap.
func (s *Service) Save(ctx context.Context, mid int, items []LootItem) error {
	for i := range items {
		if items[i].Count < 1 {
			items[i].Count = 1
		}
		if items[i].Status == 0 {
			items[i].Status = 1
		}
	}

	script := GenerateScript(items, s.cfg.BoxItemID, s.cfg.KeyItemID, s.cfg.ConsolationID, s.cfg.ConsolationCount)
	dialog := GenerateDialog(items)

	if err := s.store.ReplaceScript(ctx, mid, script, dialog); err != nil {
		return err
	}
	s.log.Info("chest loot replaced", zap.Int("mid", mid), zap.Int("items", len(items)))
	return nil
}

// ListChests analyzes every configured chest. A chest whose analysis fails
// is returned with empty loot rather than failing the whole list.
func (s *Service) ListChests(ctx context.Context) ([]ChestLoot, error) {
	out := make([]ChestLoot, 0, len(s.cfg.MIDs))
	for _, mid := range s.cfg.MIDs {
		loot := ChestLoot{MID: mid, Pic: s.chests.Portrait(mid)}
		if name, err := s.chests.Name(ctx, mid); err == nil {
			loot.Name = name
		}
		items, err := s.Analyze(ctx, mid)
		if err != nil {
			s.log.Warn("chest analysis failed", zap.Int("mid", mid), zap.Error(err))
			items = []LootItem{}
		}
		loot.Items = items
		out = append(out, loot)
	}
	return out, nil
}
