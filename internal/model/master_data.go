package model

import "gorm.io/gorm"

type Company struct {
	gorm.Model
	Name string `json:"name" gorm:"unique;not null"`
	Logo string `json:"logo"` // filename under static assets, optional
}

type Position struct {
	gorm.Model
	Name string `json:"name" gorm:"unique;not null"`
}
