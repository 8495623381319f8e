// Package main provides the Noah's Ark console game: it loads the content,
// deals a new party and runs the town menu on stdin/stdout.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/noahsark/internal/config"
	"github.com/cory-johannsen/noahsark/internal/frontend/console"
	"github.com/cory-johannsen/noahsark/internal/frontend/handlers"
	"github.com/cory-johannsen/noahsark/internal/game/dice"
	"github.com/cory-johannsen/noahsark/internal/game/inventory"
	"github.com/cory-johannsen/noahsark/internal/game/npc"
	"github.com/cory-johannsen/noahsark/internal/game/progress"
	"github.com/cory-johannsen/noahsark/internal/game/ruleset"
	"github.com/cory-johannsen/noahsark/internal/game/session"
	"github.com/cory-johannsen/noahsark/internal/game/world"
	"github.com/cory-johannsen/noahsark/internal/observability"
	"github.com/cory-johannsen/noahsark/internal/scripting"
	"github.com/cory-johannsen/noahsark/internal/server"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	seed := flag.Uint64("seed", 0, "override game.seed; 0 keeps the configured value")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	src := dice.NewCryptoSource()
	if cfg.Game.Seed != 0 {
		src = dice.NewSeededSource(cfg.Game.Seed)
	}
	roller := dice.NewLoggedRoller(src, logger)

	content := loadContent(cfg.Content, logger)

	events := scripting.NewManager(cfg.Events, roller, logger)
	defer events.Close()
	if err := events.Load(cfg.Content.Events); err != nil {
		logger.Fatal("loading event scripts", zap.Error(err))
	}

	sess, err := session.New(session.Config{
		StartingMoney: cfg.Game.StartingMoney,
		StartingItems: cfg.Game.StartingItems,
		Companions:    cfg.Game.Companions,
		Battle:        cfg.Battle,
		Explore:       cfg.Explore,
	}, content, events, roller, logger)
	if err != nil {
		logger.Fatal("creating session", zap.Error(err))
	}

	logger.Info("game ready",
		zap.Uint64("seed", cfg.Game.Seed),
		zap.Duration("elapsed", time.Since(start)),
	)

	conn := console.NewConn(os.Stdin, os.Stdout)
	shell := handlers.NewShell(conn, sess, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("shell", &server.FuncService{
		StartFn: func() error {
			err := shell.Run(ctx)
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
		StopFn: cancel,
	})

	if err := lifecycle.Run(context.Background()); err != nil {
		logger.Error("game ended with error", zap.Error(err))
		os.Exit(1)
	}
}

// loadContent reads every content directory named in cfg.
func loadContent(cfg config.ContentConfig, logger *zap.Logger) session.Content {
	rules, err := ruleset.Load(cfg.Archetypes, cfg.Recruits)
	if err != nil {
		logger.Fatal("loading ruleset", zap.Error(err))
	}
	items, err := inventory.LoadRegistry(cfg.Items)
	if err != nil {
		logger.Fatal("loading items", zap.Error(err))
	}
	locations, err := world.LoadFromDir(cfg.Locations)
	if err != nil {
		logger.Fatal("loading locations", zap.Error(err))
	}
	table, err := npc.LoadTable(cfg.Encounters)
	if err != nil {
		logger.Fatal("loading encounter table", zap.Error(err))
	}
	story, err := progress.LoadStory(cfg.Story)
	if err != nil {
		logger.Fatal("loading story", zap.Error(err))
	}
	logger.Info("content loaded",
		zap.Int("items", len(items.AllItems())),
		zap.Int("chapters", len(story)),
	)
	return session.Content{Rules: rules, Items: items, World: locations, Monsters: table, Story: story}
}
