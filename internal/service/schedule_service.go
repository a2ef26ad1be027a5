package service

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"timeclock-backend/internal/model"
	"timeclock-backend/internal/repository"
)

// ErrInvalidDayCode is returned for any day token outside mon..sun.
var ErrInvalidDayCode = errors.New("invalid day code")

// dayCodes is indexed by time.Weekday (Sunday = 0).
var dayCodes = [7]string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

// DayCode maps a timestamp's weekday to its three-letter token.
func DayCode(t time.Time) string {
	return dayCodes[int(t.Weekday())]
}

// IsValidDayCode reports whether code is one of the seven day tokens.
func IsValidDayCode(code string) bool {
	for _, d := range dayCodes {
		if d == code {
			return true
		}
	}
	return false
}

// DefaultPreset is the system-wide fallback used when a user has no schedule
// group or the group resolves to nothing. Weekdays run 09:00-18:00 with a
// 5-minute grace, Saturday is a half day. Never fails.
func DefaultPreset(dayCode string) model.TimePreset {
	if dayCode == "sat" {
		return model.TimePreset{
			Name:               "Default Saturday",
			StartTime:          "09:00",
			EndTime:            "13:00",
			GracePeriodMinutes: 5,
		}
	}
	return model.TimePreset{
		Name:               "Default Schedule",
		StartTime:          "09:00",
		EndTime:            "18:00",
		GracePeriodMinutes: 5,
	}
}

type ScheduleService struct {
	schedules repository.ScheduleRepository
	log       *zap.Logger
}

func NewScheduleService(schedules repository.ScheduleRepository, log *zap.Logger) *ScheduleService {
	return &ScheduleService{schedules: schedules, log: log}
}

// ResolveForDay picks the preset that applies to user on the given day:
// day override first, then the group default, then the system default.
// The only error is a malformed day code; a missing or broken group
// degrades to the system default so a clock action is never blocked.
func (s *ScheduleService) ResolveForDay(user *model.User, dayCode string) (model.TimePreset, error) {
	if !IsValidDayCode(dayCode) {
		return model.TimePreset{}, fmt.Errorf("%w: %q", ErrInvalidDayCode, dayCode)
	}

	if user == nil || user.ScheduleGroupID == nil {
		return DefaultPreset(dayCode), nil
	}

	group, err := s.schedules.GetGroup(*user.ScheduleGroupID)
	if err != nil {
		s.log.Warn("schedule group lookup failed, using default preset",
			zap.Uint("schedule_group_id", *user.ScheduleGroupID),
			zap.Error(err))
		return DefaultPreset(dayCode), nil
	}

	for i := range group.DayOverrides {
		o := &group.DayOverrides[i]
		if o.Day == dayCode && o.TimePreset != nil {
			return *o.TimePreset, nil
		}
	}

	if group.DefaultPreset != nil {
		return *group.DefaultPreset, nil
	}

	return DefaultPreset(dayCode), nil
}
