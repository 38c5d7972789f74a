package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestAppointmentEnd(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	a := Appointment{Date: start, Duration: 45}

	want := time.Date(2025, 3, 10, 9, 45, 0, 0, time.UTC)
	if got := a.End(); !got.Equal(want) {
		t.Errorf("End() = %v, want %v", got, want)
	}
}

func TestSanitizeStripsDentistPassword(t *testing.T) {
	a := Appointment{
		Dentist: User{
			FirstName: "Ana",
			Password:  "$2a$10$notarealhashbutlookslikeone",
		},
	}

	data, err := json.Marshal(a.Sanitize())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(data), "$2a$10$") {
		t.Error("serialized appointment still contains the password hash")
	}
	if a.Dentist.Password != "" {
		t.Error("Sanitize() left the dentist password in place")
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"pending to completed", StatusPending, StatusCompleted, true},
		{"pending to no-show", StatusPending, StatusNoShow, true},
		{"pending to pending", StatusPending, StatusPending, false},
		{"cancelled is terminal", StatusCancelled, StatusPending, false},
		{"cancelled to completed", StatusCancelled, StatusCompleted, false},
		{"completed is terminal", StatusCompleted, StatusCancelled, false},
		{"no-show is terminal", StatusNoShow, StatusCompleted, false},
		{"unknown status", AppointmentStatus("draft"), StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Appointment{Status: tt.from}
			err := a.CanTransition(tt.to)
			if tt.allowed && err != nil {
				t.Errorf("CanTransition(%s -> %s) = %v, want nil", tt.from, tt.to, err)
			}
			if !tt.allowed && err == nil {
				t.Errorf("CanTransition(%s -> %s) = nil, want error", tt.from, tt.to)
			}
		})
	}
}
