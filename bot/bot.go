package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/darui3018823/discordgo"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/u16-io/InviteTracker4Discord/config"
)

// Intents the bot subscribes to. Invite events need IntentsGuildInvites.
const Intents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMembers |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsMessageContent |
	discordgo.IntentsGuildInvites

// Bot owns the gateway session and feeds its events to a Router
type Bot struct {
	session *discordgo.Session
	router  *Router
	logger  zerolog.Logger

	readyOnce sync.Once
	ready     map[string]bool
	readyMu   sync.Mutex
}

// New creates a bot from the loaded configuration. The session is not opened yet.
func New(logger zerolog.Logger, metrics *Metrics) (*Bot, error) {
	conf := config.GetConf()
	if conf == nil {
		return nil, errors.New("configuration is not loaded")
	}
	session, err := discordgo.New("Bot " + conf.Discord.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	session.Identify.Intents = Intents

	router := NewRouter(&sessionPlatform{s: session}, Options{
		AppID:          conf.Discord.ClientID,
		CommandGuildID: conf.Discord.GuildID,
		Playing:        conf.Discord.Playing,
		Appearance:     conf.Appearance,
		Metrics:        metrics,
	})

	return &Bot{
		session: session,
		router:  router,
		logger:  logger,
		ready:   make(map[string]bool),
	}, nil
}

// Start registers the gateway handlers and opens the session
func (b *Bot) Start() error {
	b.session.AddHandler(b.onReady)
	b.session.AddHandler(b.onGuildCreate)
	b.session.AddHandler(b.onGuildDelete)
	b.session.AddHandler(b.onGuildMemberAdd)
	b.session.AddHandler(b.onMessageCreate)
	b.session.AddHandler(b.onInteractionCreate)
	b.session.AddHandler(b.onInviteCreate)
	b.session.AddHandler(b.onInviteDelete)

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open gateway session: %w", err)
	}
	return nil
}

// Close closes the gateway session
func (b *Bot) Close() error {
	return b.session.Close()
}

// dispatch runs one event with its own logger and never lets a panic escape
func (b *Bot) dispatch(ev Event) {
	lg := b.logger.With().
		Str("event_id", uuid.NewString()).
		Str("event", ev.kind()).
		Str("guild_id", ev.guildID()).
		Logger()
	ctx := lg.WithContext(context.Background())

	defer func() {
		if rec := recover(); rec != nil {
			lg.Error().Interface("panic", rec).Msg("event handler panicked")
		}
	}()

	if err := b.router.Dispatch(ctx, ev); err != nil {
		lg.Error().Err(err).Msg("event handling failed")
	}
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.logger.Info().Str("user", r.User.String()).Msg("bot is ready")

	// Ready is sent again after a full reconnect; snapshots and commands are already in place.
	b.readyOnce.Do(func() {
		ids := make([]string, 0, len(r.Guilds))
		b.readyMu.Lock()
		for _, g := range r.Guilds {
			if g == nil || g.ID == "" {
				continue
			}
			ids = append(ids, g.ID)
			b.ready[g.ID] = true
		}
		b.readyMu.Unlock()
		b.dispatch(Startup{GuildIDs: ids})
	})
}

func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	if g.Guild == nil || g.Unavailable {
		return
	}
	b.readyMu.Lock()
	known := b.ready[g.ID]
	b.ready[g.ID] = true
	b.readyMu.Unlock()
	if known {
		return
	}
	b.dispatch(GuildJoined{GuildID: g.ID})
}

func (b *Bot) onGuildDelete(s *discordgo.Session, g *discordgo.GuildDelete) {
	// Unavailable means an outage, not a removal.
	if g.Guild == nil || g.Unavailable {
		return
	}
	b.readyMu.Lock()
	delete(b.ready, g.ID)
	b.readyMu.Unlock()
	b.dispatch(GuildRemoved{GuildID: g.ID})
}

func (b *Bot) onGuildMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	if m.Member == nil {
		return
	}
	b.dispatch(MemberJoined{GuildID: m.GuildID, Member: m.Member, JoinedAt: m.JoinedAt})
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Message == nil {
		return
	}
	b.dispatch(MessagePosted{Message: m.Message})
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	b.dispatch(CommandInvoked{Name: i.ApplicationCommandData().Name, Interaction: i.Interaction})
}

func (b *Bot) onInviteCreate(s *discordgo.Session, i *discordgo.InviteCreate) {
	b.dispatch(InviteCreated{GuildID: i.GuildID, Code: i.Code})
}

func (b *Bot) onInviteDelete(s *discordgo.Session, i *discordgo.InviteDelete) {
	b.dispatch(InviteDeleted{GuildID: i.GuildID, Code: i.Code})
}
