package repository

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"timeclock-backend/internal/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&model.TimePreset{},
		&model.ScheduleGroup{},
		&model.DayOverride{},
		&model.User{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedGroupWithPresets(t *testing.T, repo ScheduleRepository) (model.ScheduleGroup, model.TimePreset, model.TimePreset) {
	t.Helper()
	presetA := model.TimePreset{Name: "A", StartTime: "09:00", EndTime: "18:00", GracePeriodMinutes: 5}
	if err := repo.CreatePreset(&presetA); err != nil {
		t.Fatalf("create preset A: %v", err)
	}
	presetB := model.TimePreset{Name: "B", StartTime: "07:00", EndTime: "16:00", GracePeriodMinutes: 10}
	if err := repo.CreatePreset(&presetB); err != nil {
		t.Fatalf("create preset B: %v", err)
	}
	group := model.ScheduleGroup{Name: "Standard", DefaultPresetID: &presetA.ID}
	if err := repo.CreateGroup(&group); err != nil {
		t.Fatalf("create group: %v", err)
	}
	return group, presetA, presetB
}

// Deleting an override and setting the same {group, day} again must yield a
// live override, not a tombstoned row stuck in the unique index.
func TestDeleteOverrideThenSetSameDay(t *testing.T) {
	db := openTestDB(t)
	repo := NewScheduleRepository(db)
	group, _, presetB := seedGroupWithPresets(t, repo)

	first := model.DayOverride{ScheduleGroupID: group.ID, Day: "mon", TimePresetID: &presetB.ID}
	if err := repo.UpsertOverride(&first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := repo.DeleteOverride(group.ID, "mon"); err != nil {
		t.Fatalf("delete override: %v", err)
	}

	var count int64
	if err := db.Unscoped().Model(&model.DayOverride{}).Count(&count).Error; err != nil {
		t.Fatalf("count overrides: %v", err)
	}
	if count != 0 {
		t.Fatalf("override rows after delete = %d, want 0 (no tombstone)", count)
	}

	second := model.DayOverride{ScheduleGroupID: group.ID, Day: "mon", TimePresetID: &presetB.ID}
	if err := repo.UpsertOverride(&second); err != nil {
		t.Fatalf("re-create override: %v", err)
	}

	loaded, err := repo.GetGroup(group.ID)
	if err != nil {
		t.Fatalf("get group: %v", err)
	}
	if len(loaded.DayOverrides) != 1 {
		t.Fatalf("overrides = %d, want the re-created one", len(loaded.DayOverrides))
	}
	o := loaded.DayOverrides[0]
	if o.Day != "mon" || o.TimePresetID == nil || *o.TimePresetID != presetB.ID {
		t.Errorf("override = %+v, want mon -> preset B", o)
	}
}

func TestUpsertOverrideReplacesPreset(t *testing.T) {
	db := openTestDB(t)
	repo := NewScheduleRepository(db)
	group, presetA, presetB := seedGroupWithPresets(t, repo)

	first := model.DayOverride{ScheduleGroupID: group.ID, Day: "fri", TimePresetID: &presetA.ID}
	if err := repo.UpsertOverride(&first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	replacement := model.DayOverride{ScheduleGroupID: group.ID, Day: "fri", TimePresetID: &presetB.ID}
	if err := repo.UpsertOverride(&replacement); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	loaded, err := repo.GetGroup(group.ID)
	if err != nil {
		t.Fatalf("get group: %v", err)
	}
	if len(loaded.DayOverrides) != 1 {
		t.Fatalf("overrides = %d, want a single row per {group, day}", len(loaded.DayOverrides))
	}
	if got := loaded.DayOverrides[0].TimePresetID; got == nil || *got != presetB.ID {
		t.Errorf("override preset = %v, want replacement B", got)
	}
}

func TestDeleteGroupCleansUpReferences(t *testing.T) {
	db := openTestDB(t)
	repo := NewScheduleRepository(db)
	group, _, presetB := seedGroupWithPresets(t, repo)

	override := model.DayOverride{ScheduleGroupID: group.ID, Day: "sat", TimePresetID: &presetB.ID}
	if err := repo.UpsertOverride(&override); err != nil {
		t.Fatalf("upsert override: %v", err)
	}
	user := model.User{EmployeeID: "000050", FirstName: "Grace", ScheduleGroupID: &group.ID, IsActive: true}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	if err := repo.DeleteGroup(group.ID); err != nil {
		t.Fatalf("delete group: %v", err)
	}

	var count int64
	if err := db.Unscoped().Model(&model.DayOverride{}).Count(&count).Error; err != nil {
		t.Fatalf("count overrides: %v", err)
	}
	if count != 0 {
		t.Errorf("override rows after group delete = %d, want 0", count)
	}

	var reloaded model.User
	if err := db.First(&reloaded, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if reloaded.ScheduleGroupID != nil {
		t.Errorf("user schedule_group_id = %v, want nil after group delete", *reloaded.ScheduleGroupID)
	}
}
