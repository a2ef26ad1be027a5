package service

import (
	"time"

	"timeclock-backend/internal/model"
)

// TimeEntryView is what the web layer serializes back to clients: plain
// fields only, no storage handles.
type TimeEntryView struct {
	ID          uint    `json:"id"`
	EmployeeID  string  `json:"employee_id"`
	Name        string  `json:"name"`
	Company     string  `json:"company"`
	TimeIn      string  `json:"time_in"`
	TimeOut     *string `json:"time_out"`
	HoursWorked float64 `json:"hours_worked"`
	IsLate      bool    `json:"is_late"`
	MinutesLate int     `json:"minutes_late"`
	ImagePath   string  `json:"image_path,omitempty"`
}

type TimePresetView struct {
	ID                 uint   `json:"id,omitempty"`
	Name               string `json:"name"`
	StartTime          string `json:"start_time"`
	EndTime            string `json:"end_time"`
	GracePeriodMinutes int    `json:"grace_period_minutes"`
}

const entryTimeLayout = "2006-01-02 15:04:05"

// NewTimeEntryView flattens an entry; user may be nil when the entry carries
// its own preloaded User.
func NewTimeEntryView(entry *model.TimeEntry, user *model.User) TimeEntryView {
	if user == nil {
		user = &entry.User
	}
	view := TimeEntryView{
		ID:          entry.ID,
		EmployeeID:  user.EmployeeID,
		Name:        user.FullName(),
		TimeIn:      entry.TimeIn.Format(entryTimeLayout),
		HoursWorked: entry.HoursWorked,
		IsLate:      entry.IsLate,
		MinutesLate: entry.MinutesLate,
		ImagePath:   entry.ImagePath,
	}
	if user.Company != nil {
		view.Company = user.Company.Name
	}
	if entry.TimeOut != nil {
		out := entry.TimeOut.Format(entryTimeLayout)
		view.TimeOut = &out
	}
	return view
}

func NewTimePresetView(preset model.TimePreset) TimePresetView {
	return TimePresetView{
		ID:                 preset.ID,
		Name:               preset.Name,
		StartTime:          preset.StartTime,
		EndTime:            preset.EndTime,
		GracePeriodMinutes: preset.GracePeriodMinutes,
	}
}

// FormatClockTime renders a timestamp the way the attendance board shows it.
func FormatClockTime(t time.Time) string {
	return t.Format("03:04 PM")
}
