package config

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"timeclock-backend/internal/model"
)

var DB *gorm.DB

func ConnectDB() {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		GetEnv("DB_USER", "root"),
		GetEnv("DB_PASSWORD", ""),
		GetEnv("DB_HOST", "127.0.0.1"),
		GetEnv("DB_PORT", "3306"),
		GetEnv("DB_NAME", "timeclock"),
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("Failed to connect to database: " + err.Error())
	}

	// Auto migration keeps the schema in sync with the model structs
	db.AutoMigrate(
		&model.Company{},
		&model.Position{},
		&model.TimePreset{},
		&model.ScheduleGroup{},
		&model.DayOverride{},
		&model.User{},
		&model.TimeEntry{},
		&model.Announcement{},
	)

	DB = db
}
