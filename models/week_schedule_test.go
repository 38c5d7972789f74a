package models

import (
	"strings"
	"testing"
	"time"
)

func TestDayScheduleValidate(t *testing.T) {
	tests := []struct {
		name    string
		day     DaySchedule
		wantErr string
	}{
		{
			name: "valid with break",
			day:  DaySchedule{Start: "09:00", End: "18:00", BreakStart: "13:00", BreakEnd: "14:00"},
		},
		{
			name: "valid without break",
			day:  DaySchedule{Start: "08:30", End: "12:00"},
		},
		{
			name:    "start after end",
			day:     DaySchedule{Start: "18:00", End: "09:00"},
			wantErr: "must be before",
		},
		{
			name:    "start equals end",
			day:     DaySchedule{Start: "09:00", End: "09:00"},
			wantErr: "must be before",
		},
		{
			name:    "malformed start",
			day:     DaySchedule{Start: "9am", End: "18:00"},
			wantErr: "invalid start time",
		},
		{
			name:    "break start without break end",
			day:     DaySchedule{Start: "09:00", End: "18:00", BreakStart: "13:00"},
			wantErr: "must be set together",
		},
		{
			name:    "break outside working hours",
			day:     DaySchedule{Start: "09:00", End: "18:00", BreakStart: "08:00", BreakEnd: "10:00"},
			wantErr: "within working hours",
		},
		{
			name:    "inverted break",
			day:     DaySchedule{Start: "09:00", End: "18:00", BreakStart: "14:00", BreakEnd: "13:00"},
			wantErr: "must be before break end",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.day.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestWeekScheduleValidate(t *testing.T) {
	valid := WeekSchedule{
		"monday": {Start: "09:00", End: "17:00"},
		"friday": {Start: "09:00", End: "13:00"},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	unknown := WeekSchedule{"funday": {Start: "09:00", End: "17:00"}}
	if err := unknown.Validate(); err == nil {
		t.Fatal("Validate() accepted an unknown weekday")
	}

	badDay := WeekSchedule{"monday": {Start: "17:00", End: "09:00"}}
	err := badDay.Validate()
	if err == nil || !strings.Contains(err.Error(), "monday") {
		t.Fatalf("Validate() = %v, want error naming the bad day", err)
	}

	// nil day entries mean "day off" and are fine.
	withNil := WeekSchedule{"sunday": nil}
	if err := withNil.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil for a nil day", err)
	}
}

func TestDefaultWeekSchedule(t *testing.T) {
	ws := DefaultWeekSchedule()

	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday"} {
		d := ws[day]
		if d == nil {
			t.Fatalf("missing %s in default schedule", day)
		}
		if d.Start != "09:00" || d.End != "18:00" {
			t.Errorf("%s window = %s-%s, want 09:00-18:00", day, d.Start, d.End)
		}
		if d.BreakStart != "13:00" || d.BreakEnd != "14:00" {
			t.Errorf("%s break = %s-%s, want 13:00-14:00", day, d.BreakStart, d.BreakEnd)
		}
	}

	if _, ok := ws["saturday"]; ok {
		t.Error("default schedule should not include saturday")
	}
	if _, ok := ws["sunday"]; ok {
		t.Error("default schedule should not include sunday")
	}

	if err := ws.Validate(); err != nil {
		t.Fatalf("default schedule failed validation: %v", err)
	}
}

func TestAtDate(t *testing.T) {
	loc := time.FixedZone("CLT", -4*60*60)
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)

	got, err := AtDate("09:30", date)
	if err != nil {
		t.Fatalf("AtDate() error = %v", err)
	}
	want := time.Date(2025, 3, 10, 9, 30, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("AtDate() = %v, want %v", got, want)
	}
	if got.Location() != loc {
		t.Errorf("AtDate() location = %v, want %v", got.Location(), loc)
	}

	if _, err := AtDate("25:00", date); err == nil {
		t.Error("AtDate() accepted an out-of-range hour")
	}
}

func TestForDate(t *testing.T) {
	ws := WeekSchedule{"monday": {Start: "09:00", End: "17:00"}}

	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	if ws.ForDate(monday) == nil {
		t.Error("ForDate() = nil for a working day")
	}

	tuesday := monday.AddDate(0, 0, 1)
	if ws.ForDate(tuesday) != nil {
		t.Error("ForDate() returned a schedule for a day off")
	}
}
