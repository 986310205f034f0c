package bot

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// hasAllowedRole reports whether any of the member's role ids resolves to a
// role name on the allow-list. Names are compared case-insensitively.
func hasAllowedRole(memberRoleIDs []string, guildRoles []*discordgo.Role, allowed []string) bool {
	if len(memberRoleIDs) == 0 || len(allowed) == 0 {
		return false
	}

	allowedNames := make(map[string]struct{}, len(allowed))
	for _, name := range allowed {
		allowedNames[strings.ToLower(strings.TrimSpace(name))] = struct{}{}
	}

	namesByID := make(map[string]string, len(guildRoles))
	for _, role := range guildRoles {
		namesByID[role.ID] = strings.ToLower(role.Name)
	}

	for _, id := range memberRoleIDs {
		if _, ok := allowedNames[namesByID[id]]; ok {
			return true
		}
	}
	return false
}

// guildRoles resolves the guild's role list, preferring the session state
// cache over a REST call.
func (b *Bot) guildRoles(s *discordgo.Session, guildID string) ([]*discordgo.Role, error) {
	if guild, err := s.State.Guild(guildID); err == nil && len(guild.Roles) > 0 {
		return guild.Roles, nil
	}
	return s.GuildRoles(guildID)
}
