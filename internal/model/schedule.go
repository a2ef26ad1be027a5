package model

import "gorm.io/gorm"

type TimePreset struct {
	gorm.Model
	Name               string `json:"name"`
	StartTime          string `json:"start_time" gorm:"not null"` // Format "15:04"
	EndTime            string `json:"end_time" gorm:"not null"`
	GracePeriodMinutes int    `json:"grace_period_minutes" gorm:"default:5"`
}

type ScheduleGroup struct {
	gorm.Model
	Name            string `json:"name"`
	DefaultPresetID *uint  `json:"default_preset_id"`

	DefaultPreset *TimePreset   `json:"default_preset" gorm:"foreignKey:DefaultPresetID"`
	DayOverrides  []DayOverride `json:"day_overrides" gorm:"foreignKey:ScheduleGroupID"`
}

// DayOverride pins one weekday of a group to a specific preset.
// Only one override per {group, day}; deleting the preset nulls
// TimePresetID but keeps the override row.
type DayOverride struct {
	gorm.Model
	ScheduleGroupID uint   `json:"schedule_group_id" gorm:"uniqueIndex:idx_group_day"`
	Day             string `json:"day" gorm:"size:3;uniqueIndex:idx_group_day"` // mon..sun
	TimePresetID    *uint  `json:"time_preset_id"`

	TimePreset *TimePreset `json:"time_preset" gorm:"foreignKey:TimePresetID"`
}
