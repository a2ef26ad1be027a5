package database

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"timeclock-backend/config"
	"timeclock-backend/internal/model"
)

// SeedAll loads the reference data a fresh install needs: companies,
// positions, the stock presets/groups and the initial superuser.
func SeedAll(db *gorm.DB) {
	companies := []model.Company{
		{Name: "Head Office", Logo: "head_office.png"},
		{Name: "Warehouse", Logo: "warehouse.png"},
	}
	for _, c := range companies {
		db.FirstOrCreate(&c, model.Company{Name: c.Name})
	}

	positions := []model.Position{
		{Name: "Operations"},
		{Name: "Security"},
		{Name: "Administration"},
	}
	for _, p := range positions {
		db.FirstOrCreate(&p, model.Position{Name: p.Name})
	}

	office := model.TimePreset{
		Name:               "Office Hours",
		StartTime:          "09:00",
		EndTime:            "18:00",
		GracePeriodMinutes: 5,
	}
	db.FirstOrCreate(&office, model.TimePreset{Name: office.Name})

	early := model.TimePreset{
		Name:               "Early Shift",
		StartTime:          "07:00",
		EndTime:            "16:00",
		GracePeriodMinutes: 10,
	}
	db.FirstOrCreate(&early, model.TimePreset{Name: early.Name})

	halfDay := model.TimePreset{
		Name:               "Saturday Half Day",
		StartTime:          "09:00",
		EndTime:            "13:00",
		GracePeriodMinutes: 5,
	}
	db.FirstOrCreate(&halfDay, model.TimePreset{Name: halfDay.Name})

	group := model.ScheduleGroup{
		Name:            "Standard Week",
		DefaultPresetID: &office.ID,
	}
	db.FirstOrCreate(&group, model.ScheduleGroup{Name: group.Name})

	// Saturdays use the half-day preset for the standard group
	var override model.DayOverride
	db.Where("schedule_group_id = ? AND day = ?", group.ID, "sat").
		Attrs(model.DayOverride{TimePresetID: &halfDay.ID}).
		FirstOrCreate(&override, model.DayOverride{ScheduleGroupID: group.ID, Day: "sat"})

	seedSuperuser(db)
}

func seedSuperuser(db *gorm.DB) {
	password := config.GetEnv("SEED_ADMIN_PASSWORD", "changeme123")
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("Failed to hash admin password:", err)
		return
	}

	admin := model.User{
		EmployeeID:  "000001",
		FirstName:   "System",
		Surname:     "Administrator",
		Password:    string(hashed),
		IsStaff:     true,
		IsSuperuser: true,
		FirstLogin:  false,
		IsActive:    true,
	}
	db.FirstOrCreate(&admin, model.User{EmployeeID: admin.EmployeeID})
}
