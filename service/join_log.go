package service

import (
	"time"

	"github.com/u16-io/InviteTracker4Discord/db"
	"github.com/u16-io/InviteTracker4Discord/model"
)

// SaveJoinRecord stores the invite a member was attributed to.
// It does nothing while the join log is disabled.
func SaveJoinRecord(guildID, memberID string, inv *model.Invite, joinedAt time.Time) error {
	if !db.Enabled() {
		return nil
	}
	rec := model.JoinRecord{
		GuildID:  guildID,
		MemberID: memberID,
		JoinedAt: joinedAt,
	}
	if inv != nil {
		rec.InviteCode = inv.Code
		rec.InviterID = inv.InviterID
		rec.InviterTag = inv.InviterTag
	}
	if err := db.DB.Create(&rec).Error; err != nil {
		return err
	}
	return nil
}
