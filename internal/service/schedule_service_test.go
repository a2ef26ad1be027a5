package service

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"timeclock-backend/internal/model"
)

func TestDayCode(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		{"2026-01-04", "sun"},
		{"2026-01-05", "mon"},
		{"2026-01-06", "tue"},
		{"2026-01-07", "wed"},
		{"2026-01-08", "thu"},
		{"2026-01-09", "fri"},
		{"2026-01-10", "sat"},
	}
	for _, tc := range cases {
		day, err := time.Parse("2006-01-02", tc.date)
		if err != nil {
			t.Fatalf("parse %s: %v", tc.date, err)
		}
		if got := DayCode(day); got != tc.want {
			t.Errorf("DayCode(%s) = %q, want %q", tc.date, got, tc.want)
		}
	}
}

func TestIsValidDayCode(t *testing.T) {
	for _, code := range []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"} {
		if !IsValidDayCode(code) {
			t.Errorf("IsValidDayCode(%q) = false", code)
		}
	}
	for _, code := range []string{"", "monday", "MON", "xyz"} {
		if IsValidDayCode(code) {
			t.Errorf("IsValidDayCode(%q) = true", code)
		}
	}
}

func TestResolveForDayOverrideBeatsGroupDefault(t *testing.T) {
	repo := newMockScheduleRepo()
	presetA := repo.addPreset(model.TimePreset{Name: "A", StartTime: "09:00", EndTime: "18:00", GracePeriodMinutes: 5})
	presetB := repo.addPreset(model.TimePreset{Name: "B", StartTime: "07:00", EndTime: "16:00", GracePeriodMinutes: 10})
	group := repo.addGroup(model.ScheduleGroup{
		Name:            "Standard",
		DefaultPresetID: &presetA.ID,
		DefaultPreset:   &presetA,
		DayOverrides: []model.DayOverride{
			{Day: "mon", TimePresetID: &presetB.ID, TimePreset: &presetB},
		},
	})

	svc := NewScheduleService(repo, zap.NewNop())
	user := &model.User{EmployeeID: "000002", ScheduleGroupID: &group.ID}

	got, err := svc.ResolveForDay(user, "mon")
	if err != nil {
		t.Fatalf("resolve mon: %v", err)
	}
	if got.Name != "B" {
		t.Errorf("monday preset = %q, want override B", got.Name)
	}

	got, err = svc.ResolveForDay(user, "tue")
	if err != nil {
		t.Fatalf("resolve tue: %v", err)
	}
	if got.Name != "A" {
		t.Errorf("tuesday preset = %q, want group default A", got.Name)
	}
}

func TestResolveForDayNoGroupUsesSystemDefault(t *testing.T) {
	svc := NewScheduleService(newMockScheduleRepo(), zap.NewNop())
	user := &model.User{EmployeeID: "000003"}

	for _, code := range []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"} {
		got, err := svc.ResolveForDay(user, code)
		if err != nil {
			t.Fatalf("resolve %s: %v", code, err)
		}
		want := DefaultPreset(code)
		if got.StartTime != want.StartTime || got.EndTime != want.EndTime {
			t.Errorf("resolve %s = %s-%s, want %s-%s", code, got.StartTime, got.EndTime, want.StartTime, want.EndTime)
		}
	}
}

func TestResolveForDayInvalidDayCode(t *testing.T) {
	svc := NewScheduleService(newMockScheduleRepo(), zap.NewNop())
	_, err := svc.ResolveForDay(&model.User{}, "monday")
	if !errors.Is(err, ErrInvalidDayCode) {
		t.Fatalf("err = %v, want ErrInvalidDayCode", err)
	}
}

func TestResolveForDayMissingGroupDegradesToDefault(t *testing.T) {
	svc := NewScheduleService(newMockScheduleRepo(), zap.NewNop())
	missing := uint(99)
	user := &model.User{EmployeeID: "000004", ScheduleGroupID: &missing}

	got, err := svc.ResolveForDay(user, "wed")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := DefaultPreset("wed")
	if got.StartTime != want.StartTime {
		t.Errorf("start = %s, want system default %s", got.StartTime, want.StartTime)
	}
}

func TestResolveForDayNullOverridePresetFallsThrough(t *testing.T) {
	repo := newMockScheduleRepo()
	presetA := repo.addPreset(model.TimePreset{Name: "A", StartTime: "09:00", EndTime: "18:00"})
	group := repo.addGroup(model.ScheduleGroup{
		DefaultPresetID: &presetA.ID,
		DefaultPreset:   &presetA,
		// preset was deleted out from under the override; the row survives
		DayOverrides: []model.DayOverride{{Day: "fri", TimePresetID: nil, TimePreset: nil}},
	})

	svc := NewScheduleService(repo, zap.NewNop())
	user := &model.User{ScheduleGroupID: &group.ID}

	got, err := svc.ResolveForDay(user, "fri")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.Name != "A" {
		t.Errorf("preset = %q, want group default A", got.Name)
	}
}

func TestResolveForDayGroupWithoutDefaultUsesSystemDefault(t *testing.T) {
	repo := newMockScheduleRepo()
	group := repo.addGroup(model.ScheduleGroup{Name: "Empty"})

	svc := NewScheduleService(repo, zap.NewNop())
	user := &model.User{ScheduleGroupID: &group.ID}

	got, err := svc.ResolveForDay(user, "sun")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := DefaultPreset("sun")
	if got.StartTime != want.StartTime || got.GracePeriodMinutes != want.GracePeriodMinutes {
		t.Errorf("got %+v, want system default %+v", got, want)
	}
}
