package repository

import (
	"timeclock-backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ScheduleRepository interface {
	CreatePreset(preset *model.TimePreset) error
	UpdatePreset(preset *model.TimePreset) error
	DeletePreset(id uint) error
	GetPreset(id uint) (*model.TimePreset, error)
	ListPresets() ([]model.TimePreset, error)

	CreateGroup(group *model.ScheduleGroup) error
	UpdateGroup(group *model.ScheduleGroup) error
	DeleteGroup(id uint) error
	GetGroup(id uint) (*model.ScheduleGroup, error)
	ListGroups() ([]model.ScheduleGroup, error)

	UpsertOverride(override *model.DayOverride) error
	DeleteOverride(groupID uint, day string) error
}

type scheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &scheduleRepository{db}
}

func (r *scheduleRepository) CreatePreset(preset *model.TimePreset) error {
	return r.db.Create(preset).Error
}

func (r *scheduleRepository) UpdatePreset(preset *model.TimePreset) error {
	return r.db.Save(preset).Error
}

// DeletePreset nulls any references first: overrides keep their row with a
// null preset, groups lose their default. No cascade deletes.
func (r *scheduleRepository) DeletePreset(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.DayOverride{}).
			Where("time_preset_id = ?", id).
			Update("time_preset_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.ScheduleGroup{}).
			Where("default_preset_id = ?", id).
			Update("default_preset_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.TimePreset{}, id).Error
	})
}

func (r *scheduleRepository) GetPreset(id uint) (*model.TimePreset, error) {
	var preset model.TimePreset
	err := r.db.First(&preset, id).Error
	if err != nil {
		return nil, err
	}
	return &preset, nil
}

func (r *scheduleRepository) ListPresets() ([]model.TimePreset, error) {
	var presets []model.TimePreset
	err := r.db.Order("start_time asc").Find(&presets).Error
	return presets, err
}

func (r *scheduleRepository) CreateGroup(group *model.ScheduleGroup) error {
	return r.db.Create(group).Error
}

func (r *scheduleRepository) UpdateGroup(group *model.ScheduleGroup) error {
	return r.db.Save(group).Error
}

func (r *scheduleRepository) DeleteGroup(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("schedule_group_id = ?", id).Delete(&model.DayOverride{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.User{}).
			Where("schedule_group_id = ?", id).
			Update("schedule_group_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ScheduleGroup{}, id).Error
	})
}

func (r *scheduleRepository) GetGroup(id uint) (*model.ScheduleGroup, error) {
	var group model.ScheduleGroup
	err := r.db.Preload("DefaultPreset").
		Preload("DayOverrides").Preload("DayOverrides.TimePreset").
		First(&group, id).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *scheduleRepository) ListGroups() ([]model.ScheduleGroup, error) {
	var groups []model.ScheduleGroup
	err := r.db.Preload("DefaultPreset").
		Preload("DayOverrides").Preload("DayOverrides.TimePreset").
		Order("name asc").Find(&groups).Error
	return groups, err
}

func (r *scheduleRepository) UpsertOverride(override *model.DayOverride) error {
	// (schedule_group_id, day) is unique, so conflicts just swap the preset
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "schedule_group_id"}, {Name: "day"}},
		DoUpdates: clause.AssignmentColumns([]string{"time_preset_id", "updated_at"}),
	}).Create(override).Error
}

// DeleteOverride hard-deletes the row. A soft-deleted override would keep
// holding its {group, day} slot in idx_group_day, so the next upsert for the
// same day would hit the tombstone and never become visible again.
func (r *scheduleRepository) DeleteOverride(groupID uint, day string) error {
	return r.db.Unscoped().Where("schedule_group_id = ? AND day = ?", groupID, day).
		Delete(&model.DayOverride{}).Error
}
