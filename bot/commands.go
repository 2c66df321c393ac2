package bot

import "github.com/darui3018823/discordgo"

const (
	CommandServerInfo         = "serverinfo"
	CommandSetInviteChannel   = "setinvitechannel"
	setInviteChannelOptionKey = "channel"
)

// Commands returns the slash commands the bot registers.
// Registration overwrites the whole set, so repeating it is harmless.
func Commands() []*discordgo.ApplicationCommand {
	dm := false
	return []*discordgo.ApplicationCommand{
		{
			Name:         CommandServerInfo,
			Description:  "Show information about this server.",
			DMPermission: &dm,
		},
		{
			Name:         CommandSetInviteChannel,
			Description:  "Set the channel that receives invite tracking messages.",
			DMPermission: &dm,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        setInviteChannelOptionKey,
					Description: "Channel for invite tracking messages.",
					Required:    true,
				},
			},
		},
	}
}

// isTextChannel reports whether members can post messages in a channel of type t
func isTextChannel(t discordgo.ChannelType) bool {
	switch t {
	case discordgo.ChannelTypeGuildText,
		discordgo.ChannelTypeGuildNews,
		discordgo.ChannelTypeGuildNewsThread,
		discordgo.ChannelTypeGuildPublicThread,
		discordgo.ChannelTypeGuildPrivateThread,
		discordgo.ChannelTypeGuildVoice,
		discordgo.ChannelTypeGuildStageVoice:
		return true
	}
	return false
}
