package service

import "testing"

func TestTrackingChannelsResolve(t *testing.T) {
	reg := NewTrackingChannels()

	if got := reg.Resolve("g1", "system"); got != "system" {
		t.Fatalf("Resolve without assignment = %q, want fallback", got)
	}
	if got := reg.Resolve("g1", ""); got != "" {
		t.Fatalf("Resolve without assignment or fallback = %q, want empty", got)
	}

	reg.Set("g1", "welcome")
	if got := reg.Resolve("g1", "system"); got != "welcome" {
		t.Fatalf("Resolve = %q, want welcome", got)
	}
	if got := reg.Resolve("g2", "system"); got != "system" {
		t.Fatalf("other guild Resolve = %q, want fallback", got)
	}

	reg.Set("g1", "lobby")
	if got, ok := reg.Lookup("g1"); !ok || got != "lobby" {
		t.Fatalf("Lookup = %q, %v; want lobby, true", got, ok)
	}
}
