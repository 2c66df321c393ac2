package service

import "github.com/u16-io/InviteTracker4Discord/model"

// Attribute guesses which invite a new member used by comparing the snapshot
// held before the join with one fetched right after it.
//
// The first invite of next, in listing order, whose use count grew is returned.
// A code missing from prev counts as zero uses. When several invites grew
// (members joining at the same time) the answer is only an approximation.
// ok is false when no invite grew.
func Attribute(prev, next model.Snapshot) (inv model.Invite, ok bool) {
	for _, candidate := range next.Invites() {
		if candidate.Uses > prev.Uses(candidate.Code) {
			return candidate, true
		}
	}
	return model.Invite{}, false
}
