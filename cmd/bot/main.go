package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/nottherealepic/giveaway-bot/internal/bot"
	"github.com/nottherealepic/giveaway-bot/internal/common/logger"
	"github.com/nottherealepic/giveaway-bot/internal/config"
	apphttp "github.com/nottherealepic/giveaway-bot/internal/http"
	"github.com/nottherealepic/giveaway-bot/internal/platform/db"
	redisplatform "github.com/nottherealepic/giveaway-bot/internal/platform/redis"
	"github.com/nottherealepic/giveaway-bot/internal/repository/postgres"
	giveawaysvc "github.com/nottherealepic/giveaway-bot/internal/service/giveaway"
	zlog "github.com/rs/zerolog/log"
)

func main() {
	// Missing token or DSN fails here, before any network activity.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	logger.Init("giveaway-bot", cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := db.Open(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres open failed")
	}
	defer pg.Close()

	if cfg.Postgres.AutoMigrate {
		if err := db.Migrate(ctx, pg); err != nil {
			logger.Fatal().Err(err).Msg("schema migration failed")
		}
		logger.Info().Msg("schema migration applied")
	}

	rdb, err := redisplatform.Open(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis open failed")
	}
	defer rdb.Close()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn().Err(err).Str("timezone", cfg.Timezone).Msg("invalid timezone, falling back to UTC")
		loc = time.UTC
	}

	session, err := discordgo.New("Bot " + cfg.Discord.BotToken)
	if err != nil {
		logger.Fatal().Err(err).Msg("discord session init failed")
	}

	repo := postgres.NewGiveawayRepository(pg)
	presenter := bot.NewPresenter(session, loc)
	svc := giveawaysvc.NewService(repo, presenter, zlog.Logger)
	scanner := giveawaysvc.NewScanner(svc, repo, redisplatform.NewProcessingSet(rdb), cfg.ScanInterval, zlog.Logger)
	heartbeat := bot.NewHeartbeat(session, cfg, loc, zlog.Logger)

	b := bot.New(session, svc, cfg, zlog.Logger)
	if err := b.Start(); err != nil {
		logger.Fatal().Err(err).Msg("discord connect failed")
	}
	defer b.Stop()

	scanner.Start()
	defer scanner.Stop()
	heartbeat.Start()
	defer heartbeat.Stop()

	server := apphttp.NewServer(cfg.HTTPAddr, pg, rdb, cfg.Debug)
	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("ops server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("ops server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("ops server shutdown failed")
	}
}
