package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	giveawaysvc "github.com/nottherealepic/giveaway-bot/internal/service/giveaway"
)

const joinCustomIDPrefix = "giveaway_join:"

func joinCustomID(giveawayID int64) string {
	return fmt.Sprintf("%s%d", joinCustomIDPrefix, giveawayID)
}

func commandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "start-giveaway",
			Description: "Start a giveaway 🎁",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "title",
					Description: "Giveaway title",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "sponsor",
					Description: "Sponsor name",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "duration",
					Description: "Duration in minutes",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "item",
					Description: "Giveaway item",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "winners",
					Description: "Number of winners",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "channel",
					Description: "Channel to post the giveaway",
					Required:    true,
				},
			},
		},
		{
			Name:        "post-test-embed",
			Description: "Send a dummy embed to a channel",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "channel",
					Description: "Channel to send the embed to",
					Required:    true,
				},
			},
		},
	}
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.handleCommand(s, i)
	case discordgo.InteractionMessageComponent:
		b.handleComponent(s, i)
	}
}

func (b *Bot) handleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Member == nil {
		b.respondEphemeral(s, i, "❌ Commands only work inside a server.")
		return
	}

	roles, err := b.guildRoles(s, i.GuildID)
	if err != nil {
		b.logger.Error().Err(err).Str("guild_id", i.GuildID).Msg("failed to resolve guild roles")
		b.respondEphemeral(s, i, "❌ Could not verify your roles, try again.")
		return
	}
	if !hasAllowedRole(i.Member.Roles, roles, b.cfg.Discord.AllowedRoles) {
		b.respondEphemeral(s, i, "❌ You don't have permission to use this command.")
		return
	}

	switch i.ApplicationCommandData().Name {
	case "start-giveaway":
		b.handleStartGiveaway(s, i)
	case "post-test-embed":
		b.handleTestEmbed(s, i)
	}
}

func (b *Bot) handleStartGiveaway(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	channelID := opts["channel"].ChannelValue(nil).ID

	// Ack first; the announcement post happens after the reply, matching
	// the interaction deadline.
	b.respondEphemeral(s, i, fmt.Sprintf("🎉 Giveaway started in <#%s>!", channelID))

	params := giveawaysvc.CreateParams{
		Title:           opts["title"].StringValue(),
		Sponsor:         opts["sponsor"].StringValue(),
		Prize:           opts["item"].StringValue(),
		DurationMinutes: int(opts["duration"].IntValue()),
		WinnersCount:    int(opts["winners"].IntValue()),
		HostID:          i.Member.User.ID,
		GuildID:         i.GuildID,
		ChannelID:       channelID,
	}

	if _, err := b.svc.Create(context.Background(), params); err != nil {
		b.logger.Error().Err(err).Msg("giveaway creation failed")
		msg := "❌ Failed to start the giveaway."
		if errors.Is(err, giveawaysvc.ErrInvalidParameters) {
			msg = fmt.Sprintf("❌ %v", err)
		}
		b.followupEphemeral(s, i, msg)
	}
}

func (b *Bot) handleTestEmbed(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	channelID := opts["channel"].ChannelValue(nil).ID

	embed := &discordgo.MessageEmbed{
		Title:       "📢 Dummy Embed",
		Description: "This is a test embed.",
		Color:       colorOrange,
	}
	if _, err := s.ChannelMessageSendEmbed(channelID, embed); err != nil {
		b.logger.Error().Err(err).Str("channel_id", channelID).Msg("test embed failed")
		b.respondEphemeral(s, i, "❌ Could not send the embed there.")
		return
	}
	b.respondEphemeral(s, i, fmt.Sprintf("✅ Sent to <#%s>", channelID))
}

func (b *Bot) handleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID
	if !strings.HasPrefix(customID, joinCustomIDPrefix) {
		return
	}
	giveawayID, err := strconv.ParseInt(strings.TrimPrefix(customID, joinCustomIDPrefix), 10, 64)
	if err != nil {
		b.logger.Warn().Str("custom_id", customID).Msg("malformed join button id")
		return
	}

	var userID string
	if i.Member != nil && i.Member.User != nil {
		userID = i.Member.User.ID
	}
	if userID == "" {
		return
	}

	// First join and repeat join acknowledge identically.
	if _, err := b.svc.Join(context.Background(), giveawayID, userID); err != nil {
		b.logger.Error().Err(err).Int64("giveaway_id", giveawayID).Msg("join failed")
		b.respondEphemeral(s, i, "❌ Something went wrong, try again.")
		return
	}
	b.respondEphemeral(s, i, "✅ You're in!")
}

func (b *Bot) respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		b.logger.Error().Err(err).Msg("interaction response failed")
	}
}

func (b *Bot) followupEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		b.logger.Error().Err(err).Msg("interaction followup failed")
	}
}

func optionMap(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	opts := i.ApplicationCommandData().Options
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, opt := range opts {
		m[opt.Name] = opt
	}
	return m
}
