package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/r2db/catalog/internal/assets"
	"github.com/r2db/catalog/internal/catalog"
	"github.com/r2db/catalog/internal/chest"
	"github.com/r2db/catalog/internal/config"
	"github.com/r2db/catalog/internal/data"
	"github.com/r2db/catalog/internal/persist"
	"github.com/r2db/catalog/internal/sheets"
	"github.com/r2db/catalog/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "r2db:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "config/server.toml", "path to the TOML config file")
	flag.Parse()

	path := *configPath
	if env := os.Getenv("R2DB_CONFIG"); env != "" {
		path = env
	}

	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}

	log, err := buildLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := persist.NewDB(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if cfg.Database.RunMigrations {
		if err := persist.RunMigrations(ctx, db.Pool); err != nil {
			return err
		}
		log.Info("migrations applied")
	}

	labels, err := data.LoadLabels()
	if err != nil {
		return err
	}

	resolver := assets.NewResolver(cfg.Assets.BaseURL)
	sheetClient := sheets.NewClient(cfg.Sheets.FetchTimeout, cfg.Sheets.CacheTTL, log)
	names := sheets.NewNames(sheetClient, cfg.Sheets)

	itemRepo := persist.NewItemRepo(db, labels)
	monsterRepo := persist.NewMonsterRepo(db)
	skillRepo := persist.NewSkillRepo(db)
	abnormalRepo := persist.NewAbnormalRepo(db)
	craftRepo := persist.NewCraftRepo(db)
	merchantRepo := persist.NewMerchantRepo(db)
	questRepo := persist.NewQuestRepo(db)
	chestRepo := persist.NewChestRepo(db)

	merchantSvc := catalog.NewMerchantService(merchantRepo, resolver, labels, log)
	itemSvc := catalog.NewItemService(itemRepo, craftRepo, monsterRepo, merchantSvc, skillRepo, resolver, names, names, log)
	monsterSvc := catalog.NewMonsterService(monsterRepo, merchantSvc, resolver, names, names, log)
	skillSvc := catalog.NewSkillService(skillRepo, resolver, names, log)
	abnormalSvc := catalog.NewAbnormalService(abnormalRepo, resolver, log)
	questSvc := catalog.NewQuestService(questRepo, resolver, itemRepo, log)

	chestSvc := chest.NewService(
		chestRepo,
		itemSvc,
		&chestInfo{monsters: monsterSvc, icons: resolver},
		chest.Config{
			MIDs:             cfg.Chest.MIDs,
			BoxItemID:        cfg.Chest.BoxItemID,
			KeyItemID:        cfg.Chest.KeyItemID,
			ConsolationID:    cfg.Chest.ConsolationItemID,
			ConsolationCount: cfg.Chest.ConsolationCount,
		},
		log,
	)

	server := web.NewServer(cfg.Server, web.Deps{
		Items:     itemSvc,
		Monsters:  monsterSvc,
		Skills:    skillSvc,
		Abnormals: abnormalSvc,
		Merchants: merchantSvc,
		Quests:    questSvc,
		Chests:    chestSvc,
	}, log)

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return config.Load(path)
}

func buildLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.Format == "json" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}
	zcfg.Level = level
	return zcfg.Build()
}

// chestInfo adapts the monster service and asset resolver to the chest
// package's NPC lookup.
type chestInfo struct {
	monsters *catalog.MonsterService
	icons    *assets.Resolver
}

func (c *chestInfo) Name(ctx context.Context, mid int) (string, error) {
	return c.monsters.Name(ctx, mid)
}

func (c *chestInfo) Portrait(mid int) string {
	return c.icons.MonsterPortrait(mid)
}
