package model

import (
	"time"

	"gorm.io/gorm"
)

type TimeEntry struct {
	gorm.Model
	UserID  uint       `json:"user_id" gorm:"index;not null"`
	TimeIn  time.Time  `json:"time_in" gorm:"index;not null"`
	TimeOut *time.Time `json:"time_out"`

	HoursWorked float64 `json:"hours_worked"`
	IsLate      bool    `json:"is_late" gorm:"default:false"`
	MinutesLate int     `json:"minutes_late" gorm:"default:0"` // positive late, negative early

	ImagePath        string   `json:"image_path"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	LocationAccuracy *float64 `json:"location_accuracy"`
	LocationAddress  string   `json:"location_address"`

	CheckoutLatitude         *float64 `json:"checkout_latitude"`
	CheckoutLongitude        *float64 `json:"checkout_longitude"`
	CheckoutLocationAccuracy *float64 `json:"checkout_location_accuracy"`
	CheckoutLocationAddress  string   `json:"checkout_location_address"`

	User User `json:"user" gorm:"foreignKey:UserID"`
}

// IsOpen reports whether the entry has not been clocked out yet.
func (e *TimeEntry) IsOpen() bool {
	return e.TimeOut == nil
}
