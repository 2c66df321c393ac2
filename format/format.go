// Package format builds the messages and embeds the bot sends.
// Nothing here talks to Discord.
package format

import (
	"fmt"
	"strconv"
	"time"

	"github.com/darui3018823/discordgo"
	"github.com/u16-io/InviteTracker4Discord/model"
)

const unknownInviter = "joined with an unknown invite"

// WelcomeData is everything the welcome embed shows
type WelcomeData struct {
	GuildID        string
	GuildName      string
	GuildIconURL   string
	Member         *discordgo.Member
	MemberCount    int
	Inviter        *model.Invite // nil when the invite could not be determined
	RulesChannelID string
	Color          int
	Now            time.Time
}

// ServerInfoData is everything the serverinfo embed shows
type ServerInfoData struct {
	ID          string
	Name        string
	OwnerID     string
	MemberCount int
	CreatedAt   time.Time
	IconURL     string
	Color       int
}

// InviterPhrase describes who invited the member
func InviterPhrase(inv *model.Invite) string {
	if inv == nil {
		return unknownInviter
	}
	who := inv.InviterTag
	if who == "" && inv.InviterID != "" {
		who = "<@" + inv.InviterID + ">"
	}
	if who == "" {
		return fmt.Sprintf("joined with invite `%s`", inv.Code)
	}
	return fmt.Sprintf("were invited by **%s**", who)
}

// Welcome builds the embed posted when a member joins
func Welcome(d WelcomeData) *discordgo.MessageEmbed {
	mention := "there"
	var user *discordgo.User
	if d.Member != nil && d.Member.User != nil {
		user = d.Member.User
		mention = user.Mention()
	}

	desc := fmt.Sprintf("Hello %s, welcome to **%s**!\n\nYou %s.", mention, d.GuildName, InviterPhrase(d.Inviter))
	if d.RulesChannelID != "" {
		desc += fmt.Sprintf("\n🔗 Don't forget to read <#%s> and join the community!", d.RulesChannelID)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎉 Welcome to the server!",
		Description: desc,
		Color:       d.Color,
		Footer: &discordgo.MessageEmbedFooter{
			Text:    "Member #" + strconv.Itoa(d.MemberCount),
			IconURL: d.GuildIconURL,
		},
		Timestamp: d.Now.Format(time.RFC3339),
	}
	if avatar := MemberAvatarURL(d.GuildID, d.Member, user); avatar != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: avatar}
	}
	return embed
}

// ServerInfo builds the serverinfo reply
func ServerInfo(d ServerInfoData) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "📊 Server info: " + d.Name,
		Color: d.Color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🆔 Server ID", Value: d.ID, Inline: true},
			{Name: "👑 Owner", Value: "<@" + d.OwnerID + ">", Inline: true},
			{Name: "👥 Members", Value: strconv.Itoa(d.MemberCount), Inline: true},
			{Name: "📅 Created", Value: fmt.Sprintf("<t:%d:F>", d.CreatedAt.Unix()), Inline: false},
		},
	}
	if d.IconURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: d.IconURL}
	}
	return embed
}

// MemberAvatarURL prioritizes Guild Avatar -> User Avatar -> Default
func MemberAvatarURL(guildID string, member *discordgo.Member, user *discordgo.User) string {
	if member != nil && member.Avatar != "" && user != nil {
		return fmt.Sprintf("https://cdn.discordapp.com/guilds/%s/users/%s/avatars/%s.png?size=1024", guildID, user.ID, member.Avatar)
	}
	if user != nil {
		return user.AvatarURL("1024")
	}
	return ""
}

func PermissionDenied() string {
	return "🚫 You need the **Administrator** permission to use this command."
}

func InvalidChannel() string {
	return "🚫 Please choose a valid text channel."
}

func TrackingChannelSet(channelID string) string {
	return fmt.Sprintf("✅ Invite tracking channel set to <#%s>.", channelID)
}

func LinkViolation(userID string) string {
	return fmt.Sprintf("🚫 <@%s>, only members with the **Administrator** permission can post links.", userID)
}

func UnknownCommand(name string) string {
	return fmt.Sprintf("Unknown command `%s`.", name)
}
