package model

import "gorm.io/gorm"

type User struct {
	gorm.Model
	EmployeeID string `json:"employee_id" gorm:"column:employee_id;unique;not null;size:6"`
	FirstName  string `json:"first_name"`
	Surname    string `json:"surname"`
	// PIN is the 4-digit kiosk code; superusers authenticate with Password instead
	PIN      string `json:"-" gorm:"size:4"`
	Password string `json:"-"`

	CompanyID       *uint   `json:"company_id"`
	PositionID      *uint   `json:"position_id"`
	ScheduleGroupID *uint   `json:"schedule_group_id"`
	BirthDate       *string `json:"birth_date"` // YYYY-MM-DD
	DateHired       *string `json:"date_hired"` // YYYY-MM-DD

	IsStaff     bool `json:"is_staff" gorm:"default:false"`
	IsSuperuser bool `json:"is_superuser" gorm:"default:false"`
	IsGuard     bool `json:"is_guard" gorm:"default:false"`
	FirstLogin  bool `json:"first_login" gorm:"default:true"`
	IsActive    bool `json:"is_active" gorm:"default:true"`

	Company       *Company       `json:"company" gorm:"foreignKey:CompanyID"`
	Position      *Position      `json:"position" gorm:"foreignKey:PositionID"`
	ScheduleGroup *ScheduleGroup `json:"schedule_group" gorm:"foreignKey:ScheduleGroupID"`
	TimeEntries   []TimeEntry    `json:"time_entries,omitempty"`
}

// FullName joins first name and surname, falling back to the employee ID
// so dashboard rows never render blank.
func (u *User) FullName() string {
	name := u.FirstName
	if u.Surname != "" {
		if name != "" {
			name += " "
		}
		name += u.Surname
	}
	if name == "" {
		name = "User " + u.EmployeeID
	}
	return name
}
