package bot

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

func TestHasAllowedRole(t *testing.T) {
	guildRoles := []*discordgo.Role{
		{ID: "1", Name: "Root"},
		{ID: "2", Name: "MOD"},
		{ID: "3", Name: "member"},
	}
	allowed := []string{"root", "mod"}

	tests := []struct {
		name    string
		roleIDs []string
		want    bool
	}{
		{"case-insensitive match", []string{"1"}, true},
		{"uppercase guild role", []string{"2"}, true},
		{"plain member", []string{"3"}, false},
		{"mixed roles", []string{"3", "2"}, true},
		{"no roles", nil, false},
		{"unknown role id", []string{"99"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, hasAllowedRole(tt.roleIDs, guildRoles, allowed))
		})
	}
}

func TestHasAllowedRoleTrimsAllowList(t *testing.T) {
	guildRoles := []*discordgo.Role{{ID: "1", Name: "Staff"}}
	require.True(t, hasAllowedRole([]string{"1"}, guildRoles, []string{" staff ", "mod"}))
}

func TestHasAllowedRoleEmptyAllowList(t *testing.T) {
	guildRoles := []*discordgo.Role{{ID: "1", Name: "root"}}
	require.False(t, hasAllowedRole([]string{"1"}, guildRoles, nil))
}
