package model

import "time"

// JoinRecord stores which invite a member most likely used to join
type JoinRecord struct {
	ID         uint   `gorm:"primary_key"`
	GuildID    string `gorm:"index;not null"`
	MemberID   string `gorm:"not null"`
	InviteCode string // empty when the invite could not be determined
	InviterID  string
	InviterTag string
	JoinedAt   time.Time `gorm:"index"`
}
