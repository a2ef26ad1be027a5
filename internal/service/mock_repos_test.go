package service

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"timeclock-backend/internal/model"
	"timeclock-backend/internal/repository"
)

type mockScheduleRepo struct {
	presets map[uint]model.TimePreset
	groups  map[uint]model.ScheduleGroup
	nextID  uint
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{
		presets: make(map[uint]model.TimePreset),
		groups:  make(map[uint]model.ScheduleGroup),
		nextID:  1,
	}
}

func (m *mockScheduleRepo) addPreset(preset model.TimePreset) model.TimePreset {
	preset.ID = m.nextID
	m.nextID++
	m.presets[preset.ID] = preset
	return preset
}

func (m *mockScheduleRepo) addGroup(group model.ScheduleGroup) model.ScheduleGroup {
	group.ID = m.nextID
	m.nextID++
	m.groups[group.ID] = group
	return group
}

func (m *mockScheduleRepo) CreatePreset(preset *model.TimePreset) error {
	*preset = m.addPreset(*preset)
	return nil
}

func (m *mockScheduleRepo) UpdatePreset(preset *model.TimePreset) error {
	m.presets[preset.ID] = *preset
	return nil
}

func (m *mockScheduleRepo) DeletePreset(id uint) error {
	delete(m.presets, id)
	return nil
}

func (m *mockScheduleRepo) GetPreset(id uint) (*model.TimePreset, error) {
	preset, ok := m.presets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &preset, nil
}

func (m *mockScheduleRepo) ListPresets() ([]model.TimePreset, error) {
	out := make([]model.TimePreset, 0, len(m.presets))
	for _, p := range m.presets {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockScheduleRepo) CreateGroup(group *model.ScheduleGroup) error {
	*group = m.addGroup(*group)
	return nil
}

func (m *mockScheduleRepo) UpdateGroup(group *model.ScheduleGroup) error {
	m.groups[group.ID] = *group
	return nil
}

func (m *mockScheduleRepo) DeleteGroup(id uint) error {
	delete(m.groups, id)
	return nil
}

func (m *mockScheduleRepo) GetGroup(id uint) (*model.ScheduleGroup, error) {
	group, ok := m.groups[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &group, nil
}

func (m *mockScheduleRepo) ListGroups() ([]model.ScheduleGroup, error) {
	out := make([]model.ScheduleGroup, 0, len(m.groups))
	for _, g := range m.groups {
		out = append(out, g)
	}
	return out, nil
}

func (m *mockScheduleRepo) UpsertOverride(override *model.DayOverride) error {
	group, ok := m.groups[override.ScheduleGroupID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range group.DayOverrides {
		if group.DayOverrides[i].Day == override.Day {
			group.DayOverrides[i] = *override
			m.groups[group.ID] = group
			return nil
		}
	}
	group.DayOverrides = append(group.DayOverrides, *override)
	m.groups[group.ID] = group
	return nil
}

func (m *mockScheduleRepo) DeleteOverride(groupID uint, day string) error {
	group, ok := m.groups[groupID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	kept := group.DayOverrides[:0]
	for _, o := range group.DayOverrides {
		if o.Day != day {
			kept = append(kept, o)
		}
	}
	group.DayOverrides = kept
	m.groups[groupID] = group
	return nil
}

var _ repository.ScheduleRepository = (*mockScheduleRepo)(nil)

type mockTimeEntryRepo struct {
	entries []model.TimeEntry
	nextID  uint
}

func newMockTimeEntryRepo() *mockTimeEntryRepo {
	return &mockTimeEntryRepo{nextID: 1}
}

// seed inserts an entry directly, bypassing the service.
func (m *mockTimeEntryRepo) seed(entry model.TimeEntry) model.TimeEntry {
	entry.ID = m.nextID
	m.nextID++
	m.entries = append(m.entries, entry)
	return entry
}

func (m *mockTimeEntryRepo) Create(entry *model.TimeEntry) error {
	entry.ID = m.nextID
	m.nextID++
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockTimeEntryRepo) Update(entry *model.TimeEntry) error {
	for i := range m.entries {
		if m.entries[i].ID == entry.ID {
			m.entries[i] = *entry
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockTimeEntryRepo) GetByID(id uint) (*model.TimeEntry, error) {
	for i := range m.entries {
		if m.entries[i].ID == id {
			entry := m.entries[i]
			return &entry, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimeEntryRepo) OpenByUser(userID uint) ([]model.TimeEntry, error) {
	var out []model.TimeEntry
	for _, e := range m.entries {
		if e.UserID == userID && e.TimeOut == nil {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockTimeEntryRepo) OpenInWindow(userID uint, start, end time.Time) (*model.TimeEntry, error) {
	var latest *model.TimeEntry
	for i := range m.entries {
		e := m.entries[i]
		if e.UserID != userID || e.TimeOut != nil {
			continue
		}
		if e.TimeIn.Before(start) || !e.TimeIn.Before(end) {
			continue
		}
		if latest == nil || e.TimeIn.After(latest.TimeIn) {
			latest = &e
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (m *mockTimeEntryRepo) LatestInWindow(userID uint, start, end time.Time) (*model.TimeEntry, error) {
	var latest *model.TimeEntry
	for i := range m.entries {
		e := m.entries[i]
		if e.UserID != userID {
			continue
		}
		if e.TimeIn.Before(start) || !e.TimeIn.Before(end) {
			continue
		}
		if latest == nil || e.TimeIn.After(latest.TimeIn) {
			latest = &e
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (m *mockTimeEntryRepo) ByWindow(start, end time.Time) ([]model.TimeEntry, error) {
	var out []model.TimeEntry
	for _, e := range m.entries {
		if !e.TimeIn.Before(start) && e.TimeIn.Before(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockTimeEntryRepo) ByUser(userID uint) ([]model.TimeEntry, error) {
	var out []model.TimeEntry
	for _, e := range m.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockTimeEntryRepo) All() ([]model.TimeEntry, error) {
	return append([]model.TimeEntry(nil), m.entries...), nil
}

var _ repository.TimeEntryRepository = (*mockTimeEntryRepo)(nil)

type mockUserRepo struct {
	users  map[string]model.User // keyed by employee ID
	nextID uint
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]model.User), nextID: 1}
}

func (m *mockUserRepo) add(user model.User) model.User {
	if user.ID == 0 {
		user.ID = m.nextID
		m.nextID++
	}
	m.users[user.EmployeeID] = user
	return user
}

func (m *mockUserRepo) Create(user *model.User) error {
	*user = m.add(*user)
	return nil
}

func (m *mockUserRepo) Update(user *model.User) error {
	if _, ok := m.users[user.EmployeeID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.users[user.EmployeeID] = *user
	return nil
}

func (m *mockUserRepo) GetByID(id uint) (*model.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			user := u
			return &user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmployeeID(employeeID string) (*model.User, error) {
	user, ok := m.users[employeeID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (m *mockUserRepo) List(filter repository.UserFilter) ([]model.User, error) {
	var out []model.User
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *mockUserRepo) MaxEmployeeID() (string, error) {
	max := ""
	for id := range m.users {
		if strings.Compare(id, max) > 0 {
			max = id
		}
	}
	return max, nil
}

func (m *mockUserRepo) AllEmployeeIDs() ([]string, error) {
	out := make([]string, 0, len(m.users))
	for id := range m.users {
		out = append(out, id)
	}
	return out, nil
}

func (m *mockUserRepo) GetByBirthday(month, day int) ([]model.User, error) {
	return m.byDateField(func(u model.User) *string { return u.BirthDate }, month, day), nil
}

func (m *mockUserRepo) GetByDateHiredAnniversary(month, day int) ([]model.User, error) {
	return m.byDateField(func(u model.User) *string { return u.DateHired }, month, day), nil
}

func (m *mockUserRepo) byDateField(field func(model.User) *string, month, day int) []model.User {
	var out []model.User
	for _, u := range m.users {
		date := field(u)
		if date == nil {
			continue
		}
		t, err := time.Parse("2006-01-02", *date)
		if err != nil {
			continue
		}
		if int(t.Month()) == month && t.Day() == day {
			out = append(out, u)
		}
	}
	return out
}

var _ repository.UserRepository = (*mockUserRepo)(nil)
