package models

import "gorm.io/gorm"

type Article struct {
	gorm.Model
	MemberID   uint `gorm:"index;not null"`
	Member     Member
	Content    string `gorm:"not null"`
	ImgAddress string
}
