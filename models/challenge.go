package models

import (
	"time"

	"gorm.io/gorm"
)

// Challenge status values.
const (
	ChallengeNotStarted = 1
	ChallengeStarted    = 2
	ChallengeEnded      = 3
)

type Challenge struct {
	gorm.Model
	Title     string `gorm:"not null"`
	Category  string
	Status    int `gorm:"default:1"` // not-started, started, ended
	StartDate time.Time
	EndDate   time.Time

	Participants []ChallengeParticipant `gorm:"foreignKey:ChallengeID"`
	Auths        []ChallengeAuth        `gorm:"foreignKey:ChallengeID"`
}

type ChallengeParticipant struct {
	gorm.Model
	ChallengeID uint `gorm:"index;not null"`
	MemberID    uint `gorm:"index;not null"`
	TeamNo      int  `gorm:"default:1"`
}

// ChallengeAuth is a photo proof submission for one challenge period.
type ChallengeAuth struct {
	gorm.Model
	ChallengeID uint `gorm:"index;not null"`
	MemberID    uint `gorm:"index;not null"`
	ImgAddress  string
	Status      string `gorm:"default:pending"` // pending, approved, rejected
}
