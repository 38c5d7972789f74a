package scheduling

import (
	"errors"
	"testing"

	"github.com/ivan51987/dentista-backend/models"
)

func TestCanCancel(t *testing.T) {
	tests := []struct {
		name   string
		status models.AppointmentStatus
		want   error
	}{
		{"pending can cancel", models.StatusPending, nil},
		{"already cancelled is a conflict", models.StatusCancelled, ErrConflict},
		{"completed is invalid state", models.StatusCompleted, ErrInvalidState},
		{"no-show is invalid state", models.StatusNoShow, ErrInvalidState},
		{"unknown status is invalid state", models.AppointmentStatus("draft"), ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanCancel(tt.status)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("CanCancel(%s) = %v, want nil", tt.status, err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("CanCancel(%s) = %v, want %v", tt.status, err, tt.want)
			}
		})
	}
}

func TestCanReschedule(t *testing.T) {
	if err := CanReschedule(models.StatusPending); err != nil {
		t.Fatalf("CanReschedule(pending) = %v, want nil", err)
	}

	for _, status := range []models.AppointmentStatus{
		models.StatusCancelled, models.StatusCompleted, models.StatusNoShow,
	} {
		if err := CanReschedule(status); !errors.Is(err, ErrInvalidState) {
			t.Errorf("CanReschedule(%s) = %v, want ErrInvalidState", status, err)
		}
	}
}
