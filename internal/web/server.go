package web

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/r2db/catalog/internal/cache"
	"github.com/r2db/catalog/internal/catalog"
	"github.com/r2db/catalog/internal/chest"
	"github.com/r2db/catalog/internal/config"
)

// The service interfaces the handlers depend on; the catalog and chest
// packages provide the production implementations.

type ItemCatalog interface {
	List(ctx context.Context, types []int, search string) ([]catalog.Item, map[int]string, error)
	Detail(ctx context.Context, id int) (*catalog.ItemDetail, error)
	Info(ctx context.Context, id int) (name, icon string, err error)
}

type MonsterCatalog interface {
	List(ctx context.Context, classes []int, search string) ([]catalog.Monster, map[int]string, error)
	Detail(ctx context.Context, id int) (*catalog.MonsterDetail, error)
}

type SkillCatalog interface {
	List(ctx context.Context) ([]catalog.SkillListEntry, error)
	Detail(ctx context.Context, id int) (*catalog.SkillDetail, error)
}

type AbnormalCatalog interface {
	List(ctx context.Context) ([]catalog.AbnormalListEntry, error)
	Detail(ctx context.Context, aid int) (*catalog.AbnormalDetail, error)
}

type MerchantCatalog interface {
	SellList(ctx context.Context) ([]catalog.MerchantRow, error)
	ItemsOfMerchant(ctx context.Context, merchantID int) ([]catalog.MerchantItem, error)
}

type QuestCatalog interface {
	List(ctx context.Context) ([]catalog.Quest, error)
}

type ChestCatalog interface {
	Analyze(ctx context.Context, mid int) ([]chest.LootItem, error)
	Save(ctx context.Context, mid int, items []chest.LootItem) error
	ListChests(ctx context.Context) ([]chest.ChestLoot, error)
}

// Server is the JSON API frontend.
type Server struct {
	items     ItemCatalog
	monsters  MonsterCatalog
	skills    SkillCatalog
	abnormals AbnormalCatalog
	merchants MerchantCatalog
	quests    QuestCatalog
	chests    ChestCatalog

	sellCache *cache.TTL[string, []catalog.MerchantRow]
	log       *zap.Logger

	http *http.Server
}

// Deps bundles the services the server fronts.
type Deps struct {
	Items     ItemCatalog
	Monsters  MonsterCatalog
	Skills    SkillCatalog
	Abnormals AbnormalCatalog
	Merchants MerchantCatalog
	Quests    QuestCatalog
	Chests    ChestCatalog
}

func NewServer(cfg config.ServerConfig, deps Deps, log *zap.Logger) *Server {
	s := &Server{
		items:     deps.Items,
		monsters:  deps.Monsters,
		skills:    deps.Skills,
		abnormals: deps.Abnormals,
		merchants: deps.Merchants,
		quests:    deps.Quests,
		chests:    deps.Chests,
		sellCache: cache.NewTTL[string, []catalog.MerchantRow](5*time.Minute, 1),
		log:       log.Named("web"),
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.http = &http.Server{
		Addr:         cfg.BindAddress,
		Handler:      accessLog(s.log, recoverPanics(s.log, mux)),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/items/{group}", s.handleItemList)
	mux.HandleFunc("GET /api/item/{id}", s.handleItemDetail)
	mux.HandleFunc("GET /api/monsters/{group}", s.handleMonsterList)
	mux.HandleFunc("GET /api/monster/{id}", s.handleMonsterDetail)
	mux.HandleFunc("GET /api/skills", s.handleSkillList)
	mux.HandleFunc("GET /api/skill/{id}", s.handleSkillDetail)
	mux.HandleFunc("GET /api/abnormals", s.handleAbnormalList)
	mux.HandleFunc("GET /api/abnormal/{id}", s.handleAbnormalDetail)
	mux.HandleFunc("GET /api/merchants", s.handleMerchantList)
	mux.HandleFunc("GET /api/merchant/{id}", s.handleMerchantItems)
	mux.HandleFunc("GET /api/quests", s.handleQuestList)
	mux.HandleFunc("GET /api/chests", s.handleChestList)
	mux.HandleFunc("GET /api/chest-loot/{mid}", s.handleChestLoot)
	mux.HandleFunc("POST /api/save-chest-loot", s.handleSaveChestLoot)
	mux.HandleFunc("GET /api/item-info/{id}", s.handleItemInfo)
}

// Handler exposes the assembled middleware chain, mainly for tests.
func (s *Server) Handler() http.Handler { return s.http.Handler }

// ListenAndServe blocks serving requests until the server is shut down.
func (s *Server) ListenAndServe() error {
	s.log.Info("listening", zap.String("addr", s.http.Addr))
	return s.http.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
