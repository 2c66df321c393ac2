package bot

import (
	"context"

	"github.com/darui3018823/discordgo"
	"github.com/u16-io/InviteTracker4Discord/model"
)

// Platform is the part of Discord the router talks to
type Platform interface {
	GuildInvites(ctx context.Context, guildID string) ([]model.Invite, error)
	Guild(ctx context.Context, guildID string) (*discordgo.Guild, error)
	Channel(ctx context.Context, channelID string) (*discordgo.Channel, error)
	MemberPermissions(ctx context.Context, channelID, userID string) (int64, error)
	SendEmbed(ctx context.Context, channelID string, embed *discordgo.MessageEmbed) error
	SendMessage(ctx context.Context, channelID, content string) error
	DeleteMessage(ctx context.Context, channelID, messageID string) error
	Respond(ctx context.Context, interaction *discordgo.Interaction, resp *discordgo.InteractionResponse) error
	RegisterCommands(ctx context.Context, appID, guildID string, commands []*discordgo.ApplicationCommand) ([]*discordgo.ApplicationCommand, error)
	SetWatching(name string) error
}

// sessionPlatform implements Platform on a live gateway session,
// reading from the state cache before falling back to REST.
type sessionPlatform struct {
	s *discordgo.Session
}

func (p *sessionPlatform) GuildInvites(ctx context.Context, guildID string) ([]model.Invite, error) {
	invites, err := p.s.GuildInvites(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	out := make([]model.Invite, 0, len(invites))
	for _, inv := range invites {
		if inv == nil {
			continue
		}
		out = append(out, toModelInvite(guildID, inv))
	}
	return out, nil
}

func toModelInvite(guildID string, inv *discordgo.Invite) model.Invite {
	m := model.Invite{
		Code:      inv.Code,
		GuildID:   guildID,
		Uses:      inv.Uses,
		MaxUses:   inv.MaxUses,
		CreatedAt: inv.CreatedAt,
	}
	if inv.Channel != nil {
		m.ChannelID = inv.Channel.ID
	}
	if inv.Inviter != nil {
		m.InviterID = inv.Inviter.ID
		m.InviterTag = inv.Inviter.String()
	}
	return m
}

func (p *sessionPlatform) Guild(ctx context.Context, guildID string) (*discordgo.Guild, error) {
	if g, err := p.s.State.Guild(guildID); err == nil {
		return g, nil
	}
	return p.s.Guild(guildID, discordgo.WithContext(ctx))
}

func (p *sessionPlatform) Channel(ctx context.Context, channelID string) (*discordgo.Channel, error) {
	if c, err := p.s.State.Channel(channelID); err == nil {
		return c, nil
	}
	return p.s.Channel(channelID, discordgo.WithContext(ctx))
}

func (p *sessionPlatform) MemberPermissions(ctx context.Context, channelID, userID string) (int64, error) {
	if perms, err := p.s.State.UserChannelPermissions(userID, channelID); err == nil {
		return perms, nil
	}
	return p.s.UserChannelPermissions(userID, channelID, discordgo.WithContext(ctx))
}

func (p *sessionPlatform) SendEmbed(ctx context.Context, channelID string, embed *discordgo.MessageEmbed) error {
	_, err := p.s.ChannelMessageSendEmbed(channelID, embed, discordgo.WithContext(ctx))
	return err
}

func (p *sessionPlatform) SendMessage(ctx context.Context, channelID, content string) error {
	_, err := p.s.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx))
	return err
}

func (p *sessionPlatform) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	return p.s.ChannelMessageDelete(channelID, messageID, discordgo.WithContext(ctx))
}

func (p *sessionPlatform) Respond(ctx context.Context, interaction *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
	return p.s.InteractionRespond(interaction, resp, discordgo.WithContext(ctx))
}

func (p *sessionPlatform) RegisterCommands(ctx context.Context, appID, guildID string, commands []*discordgo.ApplicationCommand) ([]*discordgo.ApplicationCommand, error) {
	return p.s.ApplicationCommandBulkOverwrite(appID, guildID, commands, discordgo.WithContext(ctx))
}

func (p *sessionPlatform) SetWatching(name string) error {
	return p.s.UpdateWatchStatus(0, name)
}
