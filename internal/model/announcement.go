package model

import "gorm.io/gorm"

type Announcement struct {
	gorm.Model
	Content  string `json:"content" gorm:"type:text"`
	IsPosted bool   `json:"is_posted" gorm:"default:false"`
}
