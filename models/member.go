package models

import "gorm.io/gorm"

type Member struct {
	gorm.Model
	Nickname     string `gorm:"size:20;not null"`
	Email        string `gorm:"unique;not null"`
	Password     string `gorm:"not null"` // bcrypt hash
	LevelID      *uint
	Level        *Level
	MainAvatarID *uint
	MainAvatar   *Avatar
	MainBadgeID  *uint
	MainBadge    *Badge
	Exp          int `gorm:"default:0"`
	Streak       int `gorm:"default:0"`
	WeeklyGoal   int `gorm:"default:0"`
	WeeklyConsum int `gorm:"default:0"`

	PaymentHistories []PaymentHistory      `gorm:"foreignKey:MemberID"`
	OwningAvatars    []MemberOwningAvatar  `gorm:"foreignKey:MemberID"`
	OwningBadges     []MemberOwningBadge   `gorm:"foreignKey:MemberID"`
	SelectedQuests   []MemberSelectedQuest `gorm:"foreignKey:MemberID"`
	Articles         []Article             `gorm:"foreignKey:MemberID"`
}

type Level struct {
	gorm.Model
	Number      int `gorm:"unique;not null"`
	RequiredExp int `gorm:"not null"`
}

type Avatar struct {
	gorm.Model
	Name       string
	ImgAddress string
	Price      int `gorm:"default:0"`
}

type Badge struct {
	gorm.Model
	Name       string
	ImgAddress string
}

type Quest struct {
	gorm.Model
	Title     string
	RewardExp int `gorm:"default:0"`
}

type MemberOwningAvatar struct {
	gorm.Model
	MemberID uint `gorm:"index"`
	AvatarID uint
	Avatar   Avatar
}

type MemberOwningBadge struct {
	gorm.Model
	MemberID uint `gorm:"index"`
	BadgeID  uint
	Badge    Badge
}

type MemberSelectedQuest struct {
	gorm.Model
	MemberID uint `gorm:"index"`
	QuestID  uint
	Quest    Quest
}
