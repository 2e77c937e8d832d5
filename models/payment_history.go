package models

import (
	"time"

	"gorm.io/gorm"
)

type PaymentHistory struct {
	gorm.Model
	MemberID uint   `gorm:"index;not null"`
	Amount   int    `gorm:"not null"`
	Category string
	UsedAt   time.Time
}

// DailySettlement is the idempotency record for the once-a-day experience
// reward: one row per member per calendar day.
type DailySettlement struct {
	gorm.Model
	MemberID       uint   `gorm:"not null;uniqueIndex:idx_member_settlement_date"`
	SettlementDate string `gorm:"not null;uniqueIndex:idx_member_settlement_date"` // YYYY-MM-DD
}
