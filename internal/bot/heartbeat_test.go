package bot

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/nottherealepic/giveaway-bot/internal/config"
)

type fakeEditor struct {
	channelID string
	messageID string
	embed     *discordgo.MessageEmbed
	calls     int
}

func (f *fakeEditor) ChannelMessageEditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.channelID = channelID
	f.messageID = messageID
	f.embed = embed
	f.calls++
	return &discordgo.Message{ID: messageID}, nil
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00d:00h:00m:00s"},
		{59 * time.Second, "00d:00h:00m:59s"},
		{61 * time.Minute, "00d:01h:01m:00s"},
		{25*time.Hour + 30*time.Minute + 5*time.Second, "01d:01h:30m:05s"},
		{-time.Minute, "00d:00h:00m:00s"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, formatUptime(tt.d))
	}
}

func TestHeartbeatBeatEditsStatusMessage(t *testing.T) {
	cfg := &config.Config{}
	cfg.Discord.ServerName = "TestServer"
	cfg.Discord.StatusChannelID = "chan-9"
	cfg.Discord.StatusMessageID = "msg-9"
	cfg.HeartbeatInterval = 20 * time.Second

	editor := &fakeEditor{}
	hb := NewHeartbeat(editor, cfg, time.UTC, zerolog.Nop())
	hb.start = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	hb.beat(time.Date(2025, 6, 1, 13, 30, 45, 0, time.UTC))

	require.Equal(t, 1, editor.calls)
	require.Equal(t, "chan-9", editor.channelID)
	require.Equal(t, "msg-9", editor.messageID)
	require.Equal(t, "🎉 TestServer Giveaway Bot", editor.embed.Title)
	require.Len(t, editor.embed.Fields, 3)
	require.Equal(t, "UPTIME", editor.embed.Fields[1].Name)
	require.Contains(t, editor.embed.Fields[1].Value, "00d:01h:30m:45s")
}

func TestHeartbeatDisabledWithoutStatusTarget(t *testing.T) {
	cfg := &config.Config{}
	cfg.HeartbeatInterval = time.Second

	hb := NewHeartbeat(&fakeEditor{}, cfg, time.UTC, zerolog.Nop())
	require.False(t, hb.enabled())

	// Start/Stop are no-ops when disabled.
	hb.Start()
	hb.Stop()
}
