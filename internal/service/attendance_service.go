package service

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"timeclock-backend/internal/model"
	"timeclock-backend/internal/repository"
)

var (
	// ErrNoOpenEntry means no clock-in was found to close in today's window.
	ErrNoOpenEntry = errors.New("no open time entry found for today")
	// ErrEntryNotFound means the referenced entry does not exist.
	ErrEntryNotFound = errors.New("time entry not found")
)

// Clock supplies the current time; swapped out in tests.
type Clock func() time.Time

type AttendanceService struct {
	entries  repository.TimeEntryRepository
	schedule *ScheduleService
	clock    Clock
	log      *zap.Logger

	// per-user locks serialize the find-close-create sequence so two
	// concurrent clock-ins cannot both leave an entry open
	mu        sync.Mutex
	userLocks map[uint]*sync.Mutex
}

func NewAttendanceService(entries repository.TimeEntryRepository, schedule *ScheduleService, log *zap.Logger) *AttendanceService {
	return &AttendanceService{
		entries:   entries,
		schedule:  schedule,
		clock:     time.Now,
		log:       log,
		userLocks: make(map[uint]*sync.Mutex),
	}
}

// WithClock replaces the wall clock, for deterministic tests.
func (s *AttendanceService) WithClock(clock Clock) *AttendanceService {
	s.clock = clock
	return s
}

func (s *AttendanceService) userLock(userID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	return lock
}

// ClockIn force-closes every open entry for the user (a missed clock-out is
// recovered, not an error) and opens a new entry stamped with the resolved
// schedule's lateness fields.
func (s *AttendanceService) ClockIn(user *model.User) (*model.TimeEntry, error) {
	if user == nil {
		return nil, ErrEntryNotFound
	}

	lock := s.userLock(user.ID)
	lock.Lock()
	defer lock.Unlock()

	now := s.clock()

	open, err := s.entries.OpenByUser(user.ID)
	if err != nil {
		return nil, fmt.Errorf("find open entries: %w", err)
	}
	for i := range open {
		entry := &open[i]
		s.closeEntry(entry, user, now)
		if err := s.entries.Update(entry); err != nil {
			return nil, fmt.Errorf("auto-close entry %d: %w", entry.ID, err)
		}
		s.log.Info("auto-closed stale open entry",
			zap.Uint("entry_id", entry.ID),
			zap.String("employee_id", user.EmployeeID),
			zap.Time("time_in", entry.TimeIn))
	}

	isLate, minutesLate := s.lateness(user, now)
	entry := &model.TimeEntry{
		UserID:      user.ID,
		TimeIn:      now,
		IsLate:      isLate,
		MinutesLate: minutesLate,
	}
	if err := s.entries.Create(entry); err != nil {
		return nil, fmt.Errorf("create time entry: %w", err)
	}
	return entry, nil
}

// ClockOutToday closes the user's open entry inside today's calendar window
// [midnight, next midnight). An entry opened yesterday and still open is NOT
// found here; only the next clock-in auto-closes it.
func (s *AttendanceService) ClockOutToday(user *model.User) (*model.TimeEntry, error) {
	if user == nil {
		return nil, ErrEntryNotFound
	}

	lock := s.userLock(user.ID)
	lock.Lock()
	defer lock.Unlock()

	now := s.clock()
	start := startOfDay(now)
	entry, err := s.entries.OpenInWindow(user.ID, start, start.AddDate(0, 0, 1))
	if err != nil {
		return nil, ErrNoOpenEntry
	}

	s.closeEntry(entry, user, now)
	if err := s.entries.Update(entry); err != nil {
		return nil, fmt.Errorf("close time entry: %w", err)
	}
	return entry, nil
}

// ClockOut closes a specific entry. Clock-out always succeeds when the entry
// exists; schedule trouble only degrades the lateness fields.
func (s *AttendanceService) ClockOut(entryID uint) (*model.TimeEntry, error) {
	entry, err := s.entries.GetByID(entryID)
	if err != nil {
		return nil, ErrEntryNotFound
	}

	s.closeEntry(entry, &entry.User, s.clock())
	if err := s.entries.Update(entry); err != nil {
		return nil, fmt.Errorf("close time entry: %w", err)
	}
	return entry, nil
}

// closeEntry stamps time_out and hours_worked, then recomputes the lateness
// fields from the ORIGINAL time_in. Inputs are unchanged since clock-in, so
// the result matches what clock-in stored.
func (s *AttendanceService) closeEntry(entry *model.TimeEntry, user *model.User, now time.Time) {
	out := now
	entry.TimeOut = &out
	entry.HoursWorked = math.Round(out.Sub(entry.TimeIn).Hours()*100) / 100
	entry.IsLate, entry.MinutesLate = s.lateness(user, entry.TimeIn)
}

// lateness resolves the schedule for timeIn's weekday and computes the
// lateness pair. Every failure lands in the degraded (false, 0) branch:
// availability of clock actions beats accuracy of the late flag.
func (s *AttendanceService) lateness(user *model.User, timeIn time.Time) (bool, int) {
	preset, err := s.schedule.ResolveForDay(user, DayCode(timeIn))
	if err != nil {
		s.log.Warn("schedule resolution failed, recording as not late", zap.Error(err))
		return false, 0
	}
	isLate, minutesLate, err := computeLateness(timeIn, preset)
	if err != nil {
		s.log.Warn("lateness computation failed, recording as not late",
			zap.String("start_time", preset.StartTime),
			zap.Error(err))
		return false, 0
	}
	return isLate, minutesLate
}

// computeLateness compares actual against the preset's start time combined
// with actual's calendar date, in actual's own location. minutesLate is the
// signed offset WITHOUT grace; the grace period buffers only the boolean.
func computeLateness(actual time.Time, preset model.TimePreset) (bool, int, error) {
	start, err := time.Parse("15:04", preset.StartTime)
	if err != nil {
		return false, 0, fmt.Errorf("parse start time %q: %w", preset.StartTime, err)
	}

	expected := time.Date(actual.Year(), actual.Month(), actual.Day(),
		start.Hour(), start.Minute(), 0, 0, actual.Location())
	grace := time.Duration(preset.GracePeriodMinutes) * time.Minute

	minutesLate := int(math.Round(actual.Sub(expected).Minutes()))
	isLate := actual.After(expected.Add(grace))
	return isLate, minutesLate, nil
}

// TodayWindow returns [midnight, next midnight) around t.
func TodayWindow(t time.Time) (time.Time, time.Time) {
	start := startOfDay(t)
	return start, start.AddDate(0, 0, 1)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
