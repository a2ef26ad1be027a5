package repository

import (
	"time"

	"timeclock-backend/internal/model"

	"gorm.io/gorm"
)

type TimeEntryRepository interface {
	Create(entry *model.TimeEntry) error
	Update(entry *model.TimeEntry) error
	GetByID(id uint) (*model.TimeEntry, error)
	// OpenByUser returns every entry without a time_out, regardless of date.
	OpenByUser(userID uint) ([]model.TimeEntry, error)
	// OpenInWindow returns the latest open entry whose time_in falls in [start, end).
	OpenInWindow(userID uint, start, end time.Time) (*model.TimeEntry, error)
	// LatestInWindow returns the latest entry, open or closed, in [start, end).
	LatestInWindow(userID uint, start, end time.Time) (*model.TimeEntry, error)
	ByWindow(start, end time.Time) ([]model.TimeEntry, error)
	ByUser(userID uint) ([]model.TimeEntry, error)
	All() ([]model.TimeEntry, error)
}

type timeEntryRepository struct {
	db *gorm.DB
}

func NewTimeEntryRepository(db *gorm.DB) TimeEntryRepository {
	return &timeEntryRepository{db}
}

func (r *timeEntryRepository) Create(entry *model.TimeEntry) error {
	return r.db.Create(entry).Error
}

func (r *timeEntryRepository) Update(entry *model.TimeEntry) error {
	return r.db.Save(entry).Error
}

func (r *timeEntryRepository) GetByID(id uint) (*model.TimeEntry, error) {
	var entry model.TimeEntry
	err := r.db.Preload("User").First(&entry, id).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *timeEntryRepository) OpenByUser(userID uint) ([]model.TimeEntry, error) {
	var entries []model.TimeEntry
	err := r.db.Preload("User").
		Where("user_id = ? AND time_out IS NULL", userID).
		Order("time_in asc").Find(&entries).Error
	return entries, err
}

func (r *timeEntryRepository) OpenInWindow(userID uint, start, end time.Time) (*model.TimeEntry, error) {
	var entry model.TimeEntry
	// Find + Limit(1) keeps GORM from logging "record not found"
	err := r.db.Preload("User").
		Where("user_id = ? AND time_out IS NULL AND time_in >= ? AND time_in < ?", userID, start, end).
		Order("time_in desc").Limit(1).Find(&entry).Error
	if err != nil {
		return nil, err
	}
	if entry.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &entry, nil
}

func (r *timeEntryRepository) LatestInWindow(userID uint, start, end time.Time) (*model.TimeEntry, error) {
	var entry model.TimeEntry
	err := r.db.Preload("User").
		Where("user_id = ? AND time_in >= ? AND time_in < ?", userID, start, end).
		Order("time_in desc").Limit(1).Find(&entry).Error
	if err != nil {
		return nil, err
	}
	if entry.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &entry, nil
}

func (r *timeEntryRepository) ByWindow(start, end time.Time) ([]model.TimeEntry, error) {
	var entries []model.TimeEntry
	err := r.db.Preload("User").Preload("User.Company").Preload("User.Position").
		Where("time_in >= ? AND time_in < ?", start, end).
		Order("updated_at desc").Find(&entries).Error
	return entries, err
}

func (r *timeEntryRepository) ByUser(userID uint) ([]model.TimeEntry, error) {
	var entries []model.TimeEntry
	err := r.db.Where("user_id = ?", userID).Order("time_in desc").Find(&entries).Error
	return entries, err
}

func (r *timeEntryRepository) All() ([]model.TimeEntry, error) {
	var entries []model.TimeEntry
	err := r.db.Preload("User").Preload("User.Company").Preload("User.Position").
		Order("time_in desc").Find(&entries).Error
	return entries, err
}
