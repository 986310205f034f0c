package bot

import (
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/nottherealepic/giveaway-bot/internal/config"
)

// statusEditor is the single session method the heartbeat needs.
type statusEditor interface {
	ChannelMessageEditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Heartbeat periodically edits a status message with the bot's uptime.
// When the status channel or message id is not configured it never starts.
// Failures are log-only; end users never see them.
type Heartbeat struct {
	editor   statusEditor
	cfg      *config.Config
	loc      *time.Location
	interval time.Duration
	logger   zerolog.Logger

	start time.Time
	done  chan struct{}
	wg    sync.WaitGroup
}

func NewHeartbeat(editor statusEditor, cfg *config.Config, loc *time.Location, logger zerolog.Logger) *Heartbeat {
	if loc == nil {
		loc = time.UTC
	}
	return &Heartbeat{
		editor:   editor,
		cfg:      cfg,
		loc:      loc,
		interval: cfg.HeartbeatInterval,
		logger:   logger.With().Str("component", "heartbeat").Logger(),
		done:     make(chan struct{}),
	}
}

func (h *Heartbeat) enabled() bool {
	return h.cfg.Discord.StatusChannelID != "" && h.cfg.Discord.StatusMessageID != ""
}

func (h *Heartbeat) Start() {
	if !h.enabled() {
		h.logger.Info().Msg("status channel/message not configured, heartbeat disabled")
		return
	}
	h.start = time.Now().In(h.loc)
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		ticker := time.NewTicker(h.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				h.beat(time.Now().In(h.loc))
			case <-h.done:
				return
			}
		}
	}()
}

func (h *Heartbeat) Stop() {
	if !h.enabled() {
		return
	}
	close(h.done)
	h.wg.Wait()
}

func (h *Heartbeat) beat(now time.Time) {
	embed := h.uptimeEmbed(now)
	_, err := h.editor.ChannelMessageEditEmbed(h.cfg.Discord.StatusChannelID, h.cfg.Discord.StatusMessageID, embed)
	if err != nil {
		h.logger.Warn().Err(err).Msg("uptime update failed")
	}
}

func (h *Heartbeat) uptimeEmbed(now time.Time) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("🎉 %s Giveaway Bot", h.cfg.Discord.ServerName),
		Color: colorGreen,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "START", Value: fmt.Sprintf("```%s```", h.start.Format("03:04 PM MST"))},
			{Name: "UPTIME", Value: fmt.Sprintf("```%s```", formatUptime(now.Sub(h.start)))},
			{Name: "LAST UPDATE", Value: fmt.Sprintf("```%s```", now.Format("03:04:05 PM MST"))},
		},
	}
}

// formatUptime renders a duration as 00d:00h:00m:00s.
func formatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	days := int(d / (24 * time.Hour))
	d -= time.Duration(days) * 24 * time.Hour
	hours := int(d / time.Hour)
	d -= time.Duration(hours) * time.Hour
	minutes := int(d / time.Minute)
	seconds := int((d - time.Duration(minutes)*time.Minute) / time.Second)
	return fmt.Sprintf("%02dd:%02dh:%02dm:%02ds", days, hours, minutes, seconds)
}
