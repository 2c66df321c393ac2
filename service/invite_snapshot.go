package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/u16-io/InviteTracker4Discord/model"
)

// ErrNoFetcher is returned by Refresh when the store has no way to list invites
var ErrNoFetcher = errors.New("invite store has no fetcher")

// InviteFetcher lists every active invite of a guild
type InviteFetcher interface {
	GuildInvites(ctx context.Context, guildID string) ([]model.Invite, error)
}

// InviteStore keeps the latest invite snapshot of each guild.
// Refresh calls for the same guild run one at a time, so the snapshot it
// returns as previous is always the one the new snapshot replaced.
type InviteStore struct {
	fetcher InviteFetcher
	now     func() time.Time

	mu        sync.RWMutex
	snapshots map[string]model.Snapshot

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewInviteStore creates an empty store reading invites from fetcher
func NewInviteStore(fetcher InviteFetcher) *InviteStore {
	return &InviteStore{
		fetcher:   fetcher,
		now:       time.Now,
		snapshots: make(map[string]model.Snapshot),
		locks:     make(map[string]*sync.Mutex),
	}
}

// Get returns the stored snapshot, or an empty one when the guild has none yet
func (s *InviteStore) Get(guildID string) model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if snap, ok := s.snapshots[guildID]; ok {
		return snap
	}
	return model.Snapshot{GuildID: guildID}
}

// Refresh fetches the guild's invites and replaces its snapshot.
// On error the stored snapshot is kept and prev is still returned.
func (s *InviteStore) Refresh(ctx context.Context, guildID string) (prev, next model.Snapshot, err error) {
	lock := s.guildLock(guildID)
	lock.Lock()
	defer lock.Unlock()

	prev = s.Get(guildID)
	if s.fetcher == nil {
		return prev, model.Snapshot{}, ErrNoFetcher
	}

	invites, err := s.fetcher.GuildInvites(ctx, guildID)
	if err != nil {
		return prev, model.Snapshot{}, fmt.Errorf("failed to fetch invites for guild %s: %w", guildID, err)
	}
	next = model.NewSnapshot(guildID, s.now(), invites)

	s.mu.Lock()
	s.snapshots[guildID] = next
	s.mu.Unlock()
	return prev, next, nil
}

// Forget drops the guild's snapshot and its refresh lock
func (s *InviteStore) Forget(guildID string) {
	s.mu.Lock()
	delete(s.snapshots, guildID)
	s.mu.Unlock()

	s.locksMu.Lock()
	delete(s.locks, guildID)
	s.locksMu.Unlock()
}

func (s *InviteStore) guildLock(guildID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	lock, ok := s.locks[guildID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[guildID] = lock
	}
	return lock
}
