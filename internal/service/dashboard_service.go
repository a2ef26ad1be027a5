package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"timeclock-backend/internal/repository"
)

// DashboardEntry is one row of the live attendance board.
type DashboardEntry struct {
	EmployeeID  string  `json:"employee_id"`
	Name        string  `json:"name"`
	Company     string  `json:"company"`
	TimeIn      string  `json:"time_in"`
	TimeOut     *string `json:"time_out"`
	MinutesLate int     `json:"minutes_diff"`
	IsLate      bool    `json:"is_late"`
}

// DashboardData bundles today's board with the late/early leaderboards.
type DashboardData struct {
	TodayEntries []DashboardEntry `json:"today_entries"`
	TopLate      []DashboardEntry `json:"top_late"`
	TopEarly     []DashboardEntry `json:"top_early"`
	LateCount    int              `json:"late_count"`
}

type SpecialDateUser struct {
	EmployeeID string `json:"employee_id"`
	FirstName  string `json:"first_name"`
	Surname    string `json:"surname"`
	Years      int    `json:"years,omitempty"`
}

type SpecialDates struct {
	Birthdays  []SpecialDateUser `json:"birthdays"`
	Milestones []SpecialDateUser `json:"milestones"`
}

type DashboardService struct {
	entries repository.TimeEntryRepository
	users   repository.UserRepository
	clock   Clock
	log     *zap.Logger
}

func NewDashboardService(entries repository.TimeEntryRepository, users repository.UserRepository, log *zap.Logger) *DashboardService {
	return &DashboardService{entries: entries, users: users, clock: time.Now, log: log}
}

func (s *DashboardService) WithClock(clock Clock) *DashboardService {
	s.clock = clock
	return s
}

// Today builds the dashboard payload: all of today's entries plus the five
// latest arrivals (by stored minutes, descending) and five earliest.
func (s *DashboardService) Today() (*DashboardData, error) {
	start, end := TodayWindow(s.clock())
	entries, err := s.entries.ByWindow(start, end)
	if err != nil {
		return nil, fmt.Errorf("load today's entries: %w", err)
	}

	data := &DashboardData{
		TodayEntries: make([]DashboardEntry, 0, len(entries)),
		TopLate:      []DashboardEntry{},
		TopEarly:     []DashboardEntry{},
	}
	for i := range entries {
		entry := &entries[i]
		row := DashboardEntry{
			EmployeeID:  entry.User.EmployeeID,
			Name:        entry.User.FullName(),
			TimeIn:      FormatClockTime(entry.TimeIn),
			MinutesLate: entry.MinutesLate,
			IsLate:      entry.IsLate,
		}
		if entry.User.Company != nil {
			row.Company = entry.User.Company.Name
		}
		if entry.TimeOut != nil {
			out := FormatClockTime(*entry.TimeOut)
			row.TimeOut = &out
		}
		data.TodayEntries = append(data.TodayEntries, row)
		if entry.IsLate {
			data.LateCount++
			data.TopLate = append(data.TopLate, row)
		} else {
			data.TopEarly = append(data.TopEarly, row)
		}
	}

	sort.SliceStable(data.TopLate, func(i, j int) bool {
		return data.TopLate[i].MinutesLate > data.TopLate[j].MinutesLate
	})
	sort.SliceStable(data.TopEarly, func(i, j int) bool {
		return data.TopEarly[i].MinutesLate < data.TopEarly[j].MinutesLate
	})
	if len(data.TopLate) > 5 {
		data.TopLate = data.TopLate[:5]
	}
	if len(data.TopEarly) > 5 {
		data.TopEarly = data.TopEarly[:5]
	}
	return data, nil
}

// TodaySpecialDates returns today's birthdays and full-year hire anniversaries.
func (s *DashboardService) TodaySpecialDates() (*SpecialDates, error) {
	today := s.clock()
	month, day := int(today.Month()), today.Day()

	dates := &SpecialDates{Birthdays: []SpecialDateUser{}, Milestones: []SpecialDateUser{}}

	birthdays, err := s.users.GetByBirthday(month, day)
	if err != nil {
		return nil, fmt.Errorf("load birthdays: %w", err)
	}
	for i := range birthdays {
		u := &birthdays[i]
		dates.Birthdays = append(dates.Birthdays, SpecialDateUser{
			EmployeeID: u.EmployeeID,
			FirstName:  u.FirstName,
			Surname:    u.Surname,
		})
	}

	hired, err := s.users.GetByDateHiredAnniversary(month, day)
	if err != nil {
		return nil, fmt.Errorf("load anniversaries: %w", err)
	}
	for i := range hired {
		u := &hired[i]
		years := hireYears(u.DateHired, today)
		if years >= 1 {
			dates.Milestones = append(dates.Milestones, SpecialDateUser{
				EmployeeID: u.EmployeeID,
				FirstName:  u.FirstName,
				Surname:    u.Surname,
				Years:      years,
			})
		}
	}
	return dates, nil
}

func hireYears(dateHired *string, today time.Time) int {
	if dateHired == nil {
		return 0
	}
	parts := strings.SplitN(*dateHired, "-", 2)
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	return today.Year() - year
}
