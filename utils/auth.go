package utils

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/viper"

	"opportunities-bot/models"
)

// Permission levels a command may require.
const (
	LevelDeveloper = "developer"
	LevelAdmin     = "admin"
	LevelGuest     = "guest"
)

// Auth answers authorization checks against the configured developer ids
// and admin roles.
type Auth struct {
	config models.CommandsConfig
}

// NewAuth decodes the "commands" config section into an Auth instance.
func NewAuth() (*Auth, error) {
	var commandsConfig models.CommandsConfig
	if err := viper.UnmarshalKey("commands", &commandsConfig); err != nil {
		return nil, fmt.Errorf("failed to decode commands config: %w", err)
	}
	return &Auth{config: commandsConfig}, nil
}

// IsDeveloper checks if a user id is in the configured developer list.
func (a *Auth) IsDeveloper(userID string) bool {
	for _, devID := range a.config.Auth.Developers {
		if userID == devID {
			return true
		}
	}
	return false
}

// IsAdmin checks if a member carries one of the configured admin roles.
func (a *Auth) IsAdmin(member *discordgo.Member) bool {
	for _, adminRoleID := range a.config.Auth.AdminsRoles {
		for _, userRoleID := range member.Roles {
			if userRoleID == adminRoleID {
				return true
			}
		}
	}
	return false
}

// CheckPermission checks whether the interaction's invoker meets the
// required level. Interactions from direct messages carry no member and
// only pass developer checks.
func (a *Auth) CheckPermission(i *discordgo.InteractionCreate, requiredLevel string) bool {
	switch requiredLevel {
	case LevelGuest:
		return true
	case LevelDeveloper:
		if i.Member != nil {
			return a.IsDeveloper(i.Member.User.ID)
		}
		return i.User != nil && a.IsDeveloper(i.User.ID)
	case LevelAdmin:
		if i.Member == nil {
			return i.User != nil && a.IsDeveloper(i.User.ID)
		}
		return a.IsDeveloper(i.Member.User.ID) || a.IsAdmin(i.Member)
	default:
		return false
	}
}
