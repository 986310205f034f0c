package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/nottherealepic/giveaway-bot/internal/config"
	giveawaysvc "github.com/nottherealepic/giveaway-bot/internal/service/giveaway"
)

// Bot owns the Discord session and routes interactions to the lifecycle
// engine. All engine calls go through the Service; no giveaway logic lives
// here.
type Bot struct {
	session *discordgo.Session
	svc     *giveawaysvc.Service
	cfg     *config.Config
	logger  zerolog.Logger
}

func New(session *discordgo.Session, svc *giveawaysvc.Service, cfg *config.Config, logger zerolog.Logger) *Bot {
	b := &Bot{
		session: session,
		svc:     svc,
		cfg:     cfg,
		logger:  logger.With().Str("component", "discord_bot").Logger(),
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers

	session.AddHandler(b.onReady)
	session.AddHandler(b.onInteraction)
	return b
}

// Start opens the gateway connection. Command registration happens in the
// ready handler because it needs the application id.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	return nil
}

func (b *Bot) Stop() {
	if err := b.session.Close(); err != nil {
		b.logger.Error().Err(err).Msg("failed to close discord session")
	}
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.logger.Info().Str("username", r.User.Username).Msg("logged in")

	if _, err := s.ApplicationCommandBulkOverwrite(r.User.ID, "", commandDefinitions()); err != nil {
		b.logger.Error().Err(err).Msg("slash command sync failed")
	} else {
		b.logger.Info().Int("count", len(commandDefinitions())).Msg("slash commands synced")
	}

	if b.cfg.Discord.Activity != "" {
		if err := s.UpdateGameStatus(0, b.cfg.Discord.Activity); err != nil {
			b.logger.Warn().Err(err).Msg("failed to set presence")
		}
	}
}
