package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	dg "github.com/nottherealepic/giveaway-bot/internal/domain/giveaway"
	giveawaysvc "github.com/nottherealepic/giveaway-bot/internal/service/giveaway"
)

const (
	colorBlurple = 0x5865F2
	colorGreen   = 0x57F287
	colorRed     = 0xED4245
	colorOrange  = 0xE67E22
)

// messenger is the slice of discordgo.Session the presenter needs.
type messenger interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Presenter renders giveaways into Discord embeds. It implements the
// engine's Presenter port.
type Presenter struct {
	messenger messenger
	loc       *time.Location
}

func NewPresenter(m messenger, loc *time.Location) *Presenter {
	if loc == nil {
		loc = time.UTC
	}
	return &Presenter{messenger: m, loc: loc}
}

var _ giveawaysvc.Presenter = (*Presenter)(nil)

// PublishAnnouncement posts the giveaway embed and returns its message id.
// The join button is attached separately once the giveaway id exists.
func (p *Presenter) PublishAnnouncement(ctx context.Context, g *dg.Giveaway) (string, error) {
	msg, err := p.messenger.ChannelMessageSendComplex(g.ChannelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{p.announcementEmbed(g)},
	})
	if err != nil {
		return "", translateNotFound(err)
	}
	return msg.ID, nil
}

// AttachJoinButton edits the announcement to add the persistent enter button
// keyed by the giveaway id.
func (p *Presenter) AttachJoinButton(ctx context.Context, g *dg.Giveaway) error {
	edit := discordgo.NewMessageEdit(g.ChannelID, g.MessageID)
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "🎉 Enter Giveaway",
					Style:    discordgo.SuccessButton,
					CustomID: joinCustomID(g.ID),
				},
			},
		},
	}
	edit.Components = &components
	if _, err := p.messenger.ChannelMessageEditComplex(edit); err != nil {
		return translateNotFound(err)
	}
	return nil
}

// PublishOutcome rewrites the announcement with the result and removes the
// join button.
func (p *Presenter) PublishOutcome(ctx context.Context, outcome *dg.DrawOutcome) error {
	g := outcome.Giveaway
	edit := discordgo.NewMessageEdit(g.ChannelID, g.MessageID)
	embeds := []*discordgo.MessageEmbed{p.outcomeEmbed(outcome)}
	components := []discordgo.MessageComponent{}
	edit.Embeds = &embeds
	edit.Components = &components
	if _, err := p.messenger.ChannelMessageEditComplex(edit); err != nil {
		return translateNotFound(err)
	}
	return nil
}

func (p *Presenter) announcementEmbed(g *dg.Giveaway) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🎉 %s 🎉", g.Title),
		Description: fmt.Sprintf("Started by <@%s>", g.HostID),
		Color:       colorBlurple,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🎁 Item", Value: g.Prize},
			{Name: "🏆 Winners", Value: fmt.Sprintf("%d", g.WinnersCount), Inline: true},
			{Name: "🕒 Ends", Value: g.EndTime.In(p.loc).Format("02 Jan 2006, 03:04 PM MST"), Inline: true},
			{Name: "👤 Hosted by", Value: g.Sponsor},
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func (p *Presenter) outcomeEmbed(outcome *dg.DrawOutcome) *discordgo.MessageEmbed {
	g := outcome.Giveaway

	prize := g.Prize
	if prize == "" {
		prize = "Unknown"
	}

	result := &discordgo.MessageEmbedField{Name: "❌ Result", Value: "Not enough participants"}
	if len(outcome.Winners) > 0 {
		mentions := make([]string, 0, len(outcome.Winners))
		for _, uid := range outcome.Winners {
			mentions = append(mentions, fmt.Sprintf("<@%s>", uid))
		}
		result = &discordgo.MessageEmbedField{Name: "🏆 Winner(s)", Value: strings.Join(mentions, ", ")}
	}

	return &discordgo.MessageEmbed{
		Title: "🎉 Giveaway Ended!",
		Color: colorRed,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🎁 Prize", Value: prize},
			result,
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Ended via auto-check"},
	}
}

// translateNotFound maps Discord unknown-message/channel errors onto the
// engine's sentinel so the scanner tolerates deleted announcements.
func translateNotFound(err error) error {
	var rerr *discordgo.RESTError
	if errors.As(err, &rerr) && rerr.Message != nil {
		switch rerr.Message.Code {
		case discordgo.ErrCodeUnknownMessage, discordgo.ErrCodeUnknownChannel:
			return fmt.Errorf("%w: %v", giveawaysvc.ErrAnnouncementNotFound, err)
		}
	}
	return err
}
