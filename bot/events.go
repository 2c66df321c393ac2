package bot

import (
	"time"

	"github.com/darui3018823/discordgo"
)

// Event is one of the gateway events the router handles.
// The set is closed: only types in this file implement it.
type Event interface {
	kind() string
	guildID() string
}

// Startup fires once the gateway session is ready
type Startup struct {
	GuildIDs []string
}

// GuildJoined fires when a guild becomes available after startup
type GuildJoined struct {
	GuildID string
}

// GuildRemoved fires when the bot leaves or is removed from a guild
type GuildRemoved struct {
	GuildID string
}

type MemberJoined struct {
	GuildID  string
	Member   *discordgo.Member
	JoinedAt time.Time
}

type MessagePosted struct {
	Message *discordgo.Message
}

// CommandInvoked is an application command interaction
type CommandInvoked struct {
	Name        string
	Interaction *discordgo.Interaction
}

type InviteCreated struct {
	GuildID string
	Code    string
}

type InviteDeleted struct {
	GuildID string
	Code    string
}

func (Startup) kind() string        { return "startup" }
func (GuildJoined) kind() string    { return "guild_joined" }
func (GuildRemoved) kind() string   { return "guild_removed" }
func (MemberJoined) kind() string   { return "member_joined" }
func (MessagePosted) kind() string  { return "message_posted" }
func (CommandInvoked) kind() string { return "command_invoked" }
func (InviteCreated) kind() string  { return "invite_created" }
func (InviteDeleted) kind() string  { return "invite_deleted" }

func (Startup) guildID() string         { return "" }
func (e GuildJoined) guildID() string   { return e.GuildID }
func (e GuildRemoved) guildID() string  { return e.GuildID }
func (e MemberJoined) guildID() string  { return e.GuildID }
func (e InviteCreated) guildID() string { return e.GuildID }
func (e InviteDeleted) guildID() string { return e.GuildID }

func (e MessagePosted) guildID() string {
	if e.Message == nil {
		return ""
	}
	return e.Message.GuildID
}

func (e CommandInvoked) guildID() string {
	if e.Interaction == nil {
		return ""
	}
	return e.Interaction.GuildID
}
