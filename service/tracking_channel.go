package service

import "sync"

// TrackingChannels maps a guild to the channel that receives welcome messages
type TrackingChannels struct {
	mu       sync.RWMutex
	channels map[string]string
}

// NewTrackingChannels creates an empty registry
func NewTrackingChannels() *TrackingChannels {
	return &TrackingChannels{channels: make(map[string]string)}
}

// Set assigns channelID to guildID, replacing any earlier assignment
func (t *TrackingChannels) Set(guildID, channelID string) {
	t.mu.Lock()
	t.channels[guildID] = channelID
	t.mu.Unlock()
}

// Lookup returns the assigned channel, if any
func (t *TrackingChannels) Lookup(guildID string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	channelID, ok := t.channels[guildID]
	return channelID, ok
}

// Resolve returns the assigned channel or fallback when none is assigned
func (t *TrackingChannels) Resolve(guildID, fallback string) string {
	if channelID, ok := t.Lookup(guildID); ok {
		return channelID
	}
	return fallback
}
