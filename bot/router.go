package bot

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/darui3018823/discordgo"
	"github.com/rs/zerolog"
	"github.com/u16-io/InviteTracker4Discord/config"
	"github.com/u16-io/InviteTracker4Discord/format"
	"github.com/u16-io/InviteTracker4Discord/model"
	"github.com/u16-io/InviteTracker4Discord/service"
)

// ErrUnhandledEvent is returned by Dispatch for events outside the known set
var ErrUnhandledEvent = errors.New("unhandled event")

// linkPattern is a naive http(s) URL match. Obfuscated links get through.
var linkPattern = regexp.MustCompile(`https?://[^\s]+`)

// Options configures a Router
type Options struct {
	AppID string
	// CommandGuildID registers commands in one guild instead of globally
	CommandGuildID string
	Playing        string
	Appearance     config.Appearance
	Metrics        *Metrics
}

// Router maps gateway events to the invite store, the tracking channel
// registry and outgoing messages.
type Router struct {
	platform Platform
	invites  *service.InviteStore
	channels *service.TrackingChannels
	metrics  *Metrics
	opts     Options
	now      func() time.Time
}

func NewRouter(p Platform, opts Options) *Router {
	return &Router{
		platform: p,
		invites:  service.NewInviteStore(p),
		channels: service.NewTrackingChannels(),
		metrics:  opts.Metrics,
		opts:     opts,
		now:      time.Now,
	}
}

// Invites returns the router's invite snapshot store
func (r *Router) Invites() *service.InviteStore { return r.invites }

// TrackingChannels returns the router's tracking channel registry
func (r *Router) TrackingChannels() *service.TrackingChannels { return r.channels }

// Dispatch runs the handler for ev
func (r *Router) Dispatch(ctx context.Context, ev Event) error {
	if ev == nil {
		return fmt.Errorf("%w: nil", ErrUnhandledEvent)
	}
	r.metrics.event(ev.kind())

	switch e := ev.(type) {
	case Startup:
		return r.startup(ctx, e)
	case GuildJoined:
		return r.guildJoined(ctx, e)
	case GuildRemoved:
		r.invites.Forget(e.GuildID)
		return nil
	case MemberJoined:
		return r.memberJoined(ctx, e)
	case MessagePosted:
		return r.messagePosted(ctx, e)
	case CommandInvoked:
		return r.commandInvoked(ctx, e)
	case InviteCreated:
		return r.refreshInvites(ctx, e.GuildID)
	case InviteDeleted:
		return r.refreshInvites(ctx, e.GuildID)
	default:
		return fmt.Errorf("%w: %T", ErrUnhandledEvent, ev)
	}
}

func (r *Router) startup(ctx context.Context, e Startup) error {
	lg := zerolog.Ctx(ctx)

	if r.opts.Playing != "" {
		if err := r.platform.SetWatching(r.opts.Playing); err != nil {
			lg.Warn().Err(err).Msg("failed to update presence")
		}
	}

	for _, guildID := range e.GuildIDs {
		if err := r.refreshInvites(ctx, guildID); err != nil {
			lg.Warn().Err(err).Str("guild_id", guildID).Msg("failed to load invites")
		}
	}

	lg.Info().Msg("registering slash commands")
	registered, err := r.platform.RegisterCommands(ctx, r.opts.AppID, r.opts.CommandGuildID, Commands())
	if err != nil {
		r.metrics.platformError("register_commands")
		return fmt.Errorf("failed to register commands: %w", err)
	}
	lg.Info().Int("count", len(registered)).Msg("slash commands registered")
	return nil
}

func (r *Router) guildJoined(ctx context.Context, e GuildJoined) error {
	if r.invites.Get(e.GuildID).FetchedAt.IsZero() {
		return r.refreshInvites(ctx, e.GuildID)
	}
	return nil
}

func (r *Router) refreshInvites(ctx context.Context, guildID string) error {
	if guildID == "" {
		return nil
	}
	_, next, err := r.invites.Refresh(ctx, guildID)
	if err != nil {
		r.metrics.platformError("guild_invites")
		return err
	}
	zerolog.Ctx(ctx).Debug().Str("guild_id", guildID).Int("invites", next.Len()).Msg("invite snapshot refreshed")
	return nil
}

func (r *Router) memberJoined(ctx context.Context, e MemberJoined) error {
	lg := zerolog.Ctx(ctx)
	if e.GuildID == "" || e.Member == nil || e.Member.User == nil {
		return nil
	}

	// A failed refresh leaves next empty, so the join is reported as unknown.
	prev, next, err := r.invites.Refresh(ctx, e.GuildID)
	if err != nil {
		r.metrics.platformError("guild_invites")
		lg.Warn().Err(err).Msg("failed to refresh invites on join")
	}

	// Without an earlier snapshot every used invite would look like it grew.
	var inviter *model.Invite
	if prev.FetchedAt.IsZero() {
		lg.Info().Str("member_id", e.Member.User.ID).Msg("join not attributed, no earlier invite snapshot")
	} else if inv, ok := service.Attribute(prev, next); ok {
		inviter = &inv
		lg.Info().Str("member_id", e.Member.User.ID).Str("invite", inv.Code).Str("inviter", inv.InviterTag).Msg("join attributed")
	} else {
		lg.Info().Str("member_id", e.Member.User.ID).Msg("join not attributed")
	}
	r.metrics.attribution(inviter != nil)

	joinedAt := e.JoinedAt
	if joinedAt.IsZero() {
		joinedAt = r.now()
	}
	if err := service.SaveJoinRecord(e.GuildID, e.Member.User.ID, inviter, joinedAt); err != nil {
		lg.Error().Err(err).Msg("failed to save join record")
	}

	guild, err := r.platform.Guild(ctx, e.GuildID)
	if err != nil {
		r.metrics.platformError("guild")
		return fmt.Errorf("failed to read guild %s: %w", e.GuildID, err)
	}
	channelID := r.channels.Resolve(e.GuildID, guild.SystemChannelID)
	if channelID == "" {
		lg.Debug().Msg("no welcome channel configured")
		return nil
	}
	if tracked, ok := r.channels.Lookup(e.GuildID); ok && tracked == channelID {
		if _, err := r.platform.Channel(ctx, channelID); err != nil {
			lg.Warn().Err(err).Str("channel_id", channelID).Msg("tracking channel is gone, welcome skipped")
			return nil
		}
	}

	embed := format.Welcome(format.WelcomeData{
		GuildID:        guild.ID,
		GuildName:      guild.Name,
		GuildIconURL:   guild.IconURL("256"),
		Member:         e.Member,
		MemberCount:    guild.MemberCount,
		Inviter:        inviter,
		RulesChannelID: r.opts.Appearance.RulesChannelID,
		Color:          r.opts.Appearance.WelcomeColor,
		Now:            r.now(),
	})
	if err := r.platform.SendEmbed(ctx, channelID, embed); err != nil {
		r.metrics.platformError("send_embed")
		return fmt.Errorf("failed to send welcome message to %s: %w", channelID, err)
	}
	return nil
}

func (r *Router) messagePosted(ctx context.Context, e MessagePosted) error {
	m := e.Message
	if m == nil || m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return nil
	}
	if !linkPattern.MatchString(m.Content) {
		return nil
	}

	perms, err := r.platform.MemberPermissions(ctx, m.ChannelID, m.Author.ID)
	if err != nil {
		r.metrics.platformError("permissions")
		return fmt.Errorf("failed to read permissions of %s: %w", m.Author.ID, err)
	}
	if perms&discordgo.PermissionAdministrator != 0 {
		return nil
	}

	if err := r.platform.DeleteMessage(ctx, m.ChannelID, m.ID); err != nil {
		r.metrics.platformError("delete_message")
		return fmt.Errorf("failed to delete message %s: %w", m.ID, err)
	}
	r.metrics.linkRemoved()
	zerolog.Ctx(ctx).Info().Str("user_id", m.Author.ID).Str("channel_id", m.ChannelID).Msg("link message removed")

	// Plain channel messages cannot be ephemeral, so the notice is public.
	if err := r.platform.SendMessage(ctx, m.ChannelID, format.LinkViolation(m.Author.ID)); err != nil {
		r.metrics.platformError("send_message")
		return fmt.Errorf("failed to send link notice: %w", err)
	}
	return nil
}

func (r *Router) commandInvoked(ctx context.Context, e CommandInvoked) error {
	if e.Interaction == nil {
		return nil
	}
	switch e.Name {
	case CommandServerInfo:
		return r.serverInfo(ctx, e.Interaction)
	case CommandSetInviteChannel:
		return r.setInviteChannel(ctx, e.Interaction)
	default:
		return r.respond(ctx, e.Interaction, format.UnknownCommand(e.Name), true)
	}
}

func (r *Router) serverInfo(ctx context.Context, i *discordgo.Interaction) error {
	guild, err := r.platform.Guild(ctx, i.GuildID)
	if err != nil {
		r.metrics.platformError("guild")
		return fmt.Errorf("failed to read guild %s: %w", i.GuildID, err)
	}
	created, err := discordgo.SnowflakeTimestamp(guild.ID)
	if err != nil {
		return fmt.Errorf("invalid guild id %q: %w", guild.ID, err)
	}
	return r.respondEmbed(ctx, i, format.ServerInfo(format.ServerInfoData{
		ID:          guild.ID,
		Name:        guild.Name,
		OwnerID:     guild.OwnerID,
		MemberCount: guild.MemberCount,
		CreatedAt:   created,
		IconURL:     guild.IconURL("256"),
		Color:       r.opts.Appearance.ServerInfoColor,
	}))
}

func (r *Router) setInviteChannel(ctx context.Context, i *discordgo.Interaction) error {
	if i.Member == nil || i.Member.Permissions&discordgo.PermissionAdministrator == 0 {
		return r.respond(ctx, i, format.PermissionDenied(), true)
	}

	ch, err := r.optionChannel(ctx, i)
	if err != nil {
		return err
	}
	if ch == nil || !isTextChannel(ch.Type) {
		return r.respond(ctx, i, format.InvalidChannel(), true)
	}

	r.channels.Set(i.GuildID, ch.ID)
	zerolog.Ctx(ctx).Info().Str("channel_id", ch.ID).Msg("invite tracking channel set")
	return r.respond(ctx, i, format.TrackingChannelSet(ch.ID), false)
}

// optionChannel returns the channel picked in the command option,
// preferring the copy resolved in the interaction payload.
func (r *Router) optionChannel(ctx context.Context, i *discordgo.Interaction) (*discordgo.Channel, error) {
	data := i.ApplicationCommandData()
	var channelID string
	for _, opt := range data.Options {
		if opt.Name == setInviteChannelOptionKey {
			channelID, _ = opt.Value.(string)
		}
	}
	if channelID == "" {
		return nil, nil
	}
	if data.Resolved != nil {
		if ch, ok := data.Resolved.Channels[channelID]; ok && ch != nil {
			return ch, nil
		}
	}
	ch, err := r.platform.Channel(ctx, channelID)
	if err != nil {
		r.metrics.platformError("channel")
		return nil, fmt.Errorf("failed to read channel %s: %w", channelID, err)
	}
	return ch, nil
}

func (r *Router) respond(ctx context.Context, i *discordgo.Interaction, content string, ephemeral bool) error {
	var flags discordgo.MessageFlags
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}
	return r.sendResponse(ctx, i, &discordgo.InteractionResponseData{Content: content, Flags: flags})
}

func (r *Router) respondEmbed(ctx context.Context, i *discordgo.Interaction, embed *discordgo.MessageEmbed) error {
	return r.sendResponse(ctx, i, &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}})
}

func (r *Router) sendResponse(ctx context.Context, i *discordgo.Interaction, data *discordgo.InteractionResponseData) error {
	err := r.platform.Respond(ctx, i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		r.metrics.platformError("interaction_respond")
		return fmt.Errorf("failed to respond to interaction: %w", err)
	}
	return nil
}
