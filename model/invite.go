package model

import "time"

// Invite is one active guild invite as seen at fetch time
type Invite struct {
	Code       string
	GuildID    string
	ChannelID  string
	Uses       int
	MaxUses    int
	InviterID  string
	InviterTag string // user tag or display name of the creator
	CreatedAt  time.Time
}

// Snapshot is an immutable capture of a guild's active invites.
// The zero value is an empty snapshot.
type Snapshot struct {
	GuildID   string
	FetchedAt time.Time
	codes     []string
	invites   map[string]Invite
}

// NewSnapshot builds a snapshot keeping the order in which invites were listed.
// A code listed twice keeps its first position and its last value.
func NewSnapshot(guildID string, fetchedAt time.Time, invites []Invite) Snapshot {
	s := Snapshot{
		GuildID:   guildID,
		FetchedAt: fetchedAt,
		codes:     make([]string, 0, len(invites)),
		invites:   make(map[string]Invite, len(invites)),
	}
	for _, inv := range invites {
		if _, ok := s.invites[inv.Code]; !ok {
			s.codes = append(s.codes, inv.Code)
		}
		s.invites[inv.Code] = inv
	}
	return s
}

// Len returns the number of invites in the snapshot
func (s Snapshot) Len() int {
	return len(s.codes)
}

// Lookup returns the invite for code, if present
func (s Snapshot) Lookup(code string) (Invite, bool) {
	inv, ok := s.invites[code]
	return inv, ok
}

// Uses returns the use count of code, or 0 when the code is absent
func (s Snapshot) Uses(code string) int {
	return s.invites[code].Uses
}

// Invites returns a copy of the invites in listing order
func (s Snapshot) Invites() []Invite {
	out := make([]Invite, 0, len(s.codes))
	for _, code := range s.codes {
		out = append(out, s.invites[code])
	}
	return out
}
