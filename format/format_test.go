package format

import (
	"strings"
	"testing"
	"time"

	"github.com/darui3018823/discordgo"
	"github.com/u16-io/InviteTracker4Discord/model"
)

func TestWelcomeWithInviter(t *testing.T) {
	member := &discordgo.Member{User: &discordgo.User{ID: "42", Username: "newbie"}}
	embed := Welcome(WelcomeData{
		GuildID:     "g1",
		GuildName:   "Gophers",
		Member:      member,
		MemberCount: 101,
		Inviter:     &model.Invite{Code: "A", InviterTag: "Alice"},
		Color:       0x6A0DAD,
		Now:         time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	})

	for _, want := range []string{"<@42>", "**Gophers**", "invited by **Alice**"} {
		if !strings.Contains(embed.Description, want) {
			t.Errorf("description %q missing %q", embed.Description, want)
		}
	}
	if embed.Footer == nil || embed.Footer.Text != "Member #101" {
		t.Fatalf("footer = %+v", embed.Footer)
	}
	if embed.Timestamp != "2024-05-01T00:00:00Z" {
		t.Fatalf("timestamp = %q", embed.Timestamp)
	}
	if embed.Thumbnail == nil || embed.Thumbnail.URL == "" {
		t.Fatal("welcome embed should carry the member avatar")
	}
	if strings.Contains(embed.Description, "<#") {
		t.Fatal("no rules channel configured, none should be mentioned")
	}
}

func TestWelcomeUnknownInviter(t *testing.T) {
	embed := Welcome(WelcomeData{
		GuildName:      "Gophers",
		Member:         &discordgo.Member{User: &discordgo.User{ID: "42"}},
		RulesChannelID: "7",
	})
	if !strings.Contains(embed.Description, unknownInviter) {
		t.Fatalf("description %q should use the unknown inviter phrase", embed.Description)
	}
	if !strings.Contains(embed.Description, "<#7>") {
		t.Fatalf("description %q should mention the rules channel", embed.Description)
	}
}

func TestInviterPhraseFallbacks(t *testing.T) {
	if got := InviterPhrase(&model.Invite{Code: "A", InviterID: "9"}); !strings.Contains(got, "<@9>") {
		t.Fatalf("InviterPhrase without tag = %q", got)
	}
	if got := InviterPhrase(&model.Invite{Code: "vanity"}); !strings.Contains(got, "`vanity`") {
		t.Fatalf("InviterPhrase without inviter = %q", got)
	}
}

func TestServerInfo(t *testing.T) {
	created := time.Unix(1500000000, 0)
	embed := ServerInfo(ServerInfoData{
		ID:          "g1",
		Name:        "Gophers",
		OwnerID:     "owner",
		MemberCount: 12,
		CreatedAt:   created,
	})
	if !strings.HasSuffix(embed.Title, "Gophers") {
		t.Fatalf("title = %q", embed.Title)
	}
	want := []string{"g1", "<@owner>", "12", "<t:1500000000:F>"}
	if len(embed.Fields) != len(want) {
		t.Fatalf("got %d fields, want %d", len(embed.Fields), len(want))
	}
	for i, w := range want {
		if embed.Fields[i].Value != w {
			t.Errorf("field %d = %q, want %q", i, embed.Fields[i].Value, w)
		}
	}
	if embed.Thumbnail != nil {
		t.Fatal("no icon, no thumbnail")
	}
}

func TestMemberAvatarURL(t *testing.T) {
	user := &discordgo.User{ID: "1", Avatar: "abc"}
	guildAvatar := MemberAvatarURL("g1", &discordgo.Member{Avatar: "def"}, user)
	if !strings.Contains(guildAvatar, "/guilds/g1/users/1/avatars/def.png") {
		t.Fatalf("guild avatar url = %q", guildAvatar)
	}
	if got := MemberAvatarURL("g1", &discordgo.Member{}, user); !strings.Contains(got, "abc") {
		t.Fatalf("user avatar url = %q", got)
	}
	if got := MemberAvatarURL("g1", nil, nil); got != "" {
		t.Fatalf("no user should give no avatar, got %q", got)
	}
}

func TestNotices(t *testing.T) {
	if !strings.Contains(TrackingChannelSet("55"), "<#55>") {
		t.Fatal("confirmation should mention the channel")
	}
	if !strings.Contains(LinkViolation("9"), "<@9>") {
		t.Fatal("link notice should mention the author")
	}
	if !strings.Contains(UnknownCommand("nope"), "nope") {
		t.Fatal("unknown command notice should name the command")
	}
}
