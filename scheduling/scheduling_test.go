package scheduling

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ivan51987/dentista-backend/models"
)

type fakeBooking struct {
	id       uint
	interval Interval
}

type fakeStore struct {
	schedules map[uint]models.WeekSchedule
	bookings  map[uint][]fakeBooking
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		schedules: map[uint]models.WeekSchedule{},
		bookings:  map[uint][]fakeBooking{},
	}
}

func (f *fakeStore) DentistSchedule(dentistID uint) (models.WeekSchedule, error) {
	schedule, ok := f.schedules[dentistID]
	if !ok {
		return nil, fmt.Errorf("%w: dentist %d", ErrNotFound, dentistID)
	}
	return schedule, nil
}

func (f *fakeStore) PendingIntervals(dentistID uint, from, to time.Time, excludeID uint) ([]Interval, error) {
	var out []Interval
	for _, b := range f.bookings[dentistID] {
		if excludeID != 0 && b.id == excludeID {
			continue
		}
		if b.interval.Start.Before(to) && from.Before(b.interval.End) {
			out = append(out, b.interval)
		}
	}
	return out, nil
}

func (f *fakeStore) book(dentistID, id uint, start time.Time, minutes int) {
	f.bookings[dentistID] = append(f.bookings[dentistID], fakeBooking{
		id:       id,
		interval: Interval{Start: start, End: start.Add(time.Duration(minutes) * time.Minute)},
	})
}

// monday is a known Monday so the default Mon-Fri schedule applies.
var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func at(day time.Time, hour, min int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, day.Location())
}

func newService(dentistID uint) (*Service, *fakeStore) {
	store := newFakeStore()
	store.schedules[dentistID] = models.DefaultWeekSchedule()
	return New(store), store
}

func TestAvailableSlotsEmptyDay(t *testing.T) {
	svc, _ := newService(1)

	slots, err := svc.AvailableSlots(1, monday, 30*time.Minute)
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}

	// 09:00-13:00 and 14:00-18:00 at 30 minutes: 8 slots each side of the break.
	if len(slots) != 16 {
		t.Fatalf("expected 16 slots, got %d", len(slots))
	}
	if !slots[0].Start.Equal(at(monday, 9, 0)) {
		t.Errorf("first slot starts at %v, want 09:00", slots[0].Start)
	}
	if !slots[7].Start.Equal(at(monday, 12, 30)) {
		t.Errorf("eighth slot starts at %v, want 12:30", slots[7].Start)
	}
	if !slots[8].Start.Equal(at(monday, 14, 0)) {
		t.Errorf("ninth slot starts at %v, want 14:00", slots[8].Start)
	}
	if !slots[15].Start.Equal(at(monday, 17, 30)) {
		t.Errorf("last slot starts at %v, want 17:30", slots[15].Start)
	}

	brk := Interval{Start: at(monday, 13, 0), End: at(monday, 14, 0)}
	for _, s := range slots {
		if s.Overlaps(brk) {
			t.Errorf("slot %v-%v intersects the break", s.Start, s.End)
		}
	}
}

func TestAvailableSlotsSkipBookedTime(t *testing.T) {
	svc, store := newService(1)
	store.book(1, 10, at(monday, 10, 0), 30)
	store.book(1, 11, at(monday, 10, 30), 45)

	slots, err := svc.AvailableSlots(1, monday, 30*time.Minute)
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}

	booked := []Interval{
		{Start: at(monday, 10, 0), End: at(monday, 10, 30)},
		{Start: at(monday, 10, 30), End: at(monday, 11, 15)},
	}
	for _, s := range slots {
		for _, b := range booked {
			if s.Overlaps(b) {
				t.Errorf("slot %v-%v intersects booking %v-%v", s.Start, s.End, b.Start, b.End)
			}
		}
	}

	// The free gap resumes at 11:15; slots restart there back-to-back.
	var found bool
	for _, s := range slots {
		if s.Start.Equal(at(monday, 11, 15)) {
			found = true
		}
	}
	if !found {
		t.Error("expected a slot starting at 11:15 right after the booked block")
	}
}

func TestAvailableSlotsOrderedAndIdempotent(t *testing.T) {
	svc, store := newService(1)
	// Inserted out of order on purpose.
	store.book(1, 12, at(monday, 15, 0), 30)
	store.book(1, 10, at(monday, 9, 30), 60)

	first, err := svc.AvailableSlots(1, monday, 45*time.Minute)
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	for i := 1; i < len(first); i++ {
		if first[i].Start.Before(first[i-1].End) {
			t.Fatalf("slots out of order or overlapping at index %d", i)
		}
	}

	second, err := svc.AvailableSlots(1, monday, 45*time.Minute)
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("repeated call returned %d slots, first returned %d", len(second), len(first))
	}
	for i := range first {
		if !first[i].Start.Equal(second[i].Start) || !first[i].End.Equal(second[i].End) {
			t.Fatalf("slot %d differs between calls", i)
		}
	}
}

func TestAvailableSlotsDiscardsShortRemainder(t *testing.T) {
	svc, _ := newService(1)

	// 240 minutes in the morning block: exactly 4 slots of 50 minutes fit
	// (200 min) and the trailing 40 minutes are discarded.
	slots, err := svc.AvailableSlots(1, monday, 50*time.Minute)
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	var morning int
	for _, s := range slots {
		if s.End.Before(at(monday, 13, 1)) {
			morning++
		}
	}
	if morning != 4 {
		t.Errorf("expected 4 morning slots of 50min, got %d", morning)
	}
}

func TestAvailableSlotsDayOff(t *testing.T) {
	svc, _ := newService(1)
	sunday := monday.AddDate(0, 0, -1)

	slots, err := svc.AvailableSlots(1, sunday, 30*time.Minute)
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("expected no slots on a day off, got %d", len(slots))
	}
}

func TestAvailableSlotsFullyBookedDay(t *testing.T) {
	svc, store := newService(1)
	store.book(1, 10, at(monday, 9, 0), 240)
	store.book(1, 11, at(monday, 14, 0), 240)

	slots, err := svc.AvailableSlots(1, monday, 30*time.Minute)
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("expected zero slots for a fully booked day, got %d", len(slots))
	}
}

func TestAvailableSlotsInvalidDuration(t *testing.T) {
	svc, _ := newService(1)

	if _, err := svc.AvailableSlots(1, monday, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("duration 0: got %v, want ErrInvalidArgument", err)
	}
	if _, err := svc.AvailableSlots(1, monday, -15*time.Minute); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("negative duration: got %v, want ErrInvalidArgument", err)
	}
}

func TestAvailableSlotsUnknownDentist(t *testing.T) {
	svc, _ := newService(1)

	if _, err := svc.AvailableSlots(99, monday, 30*time.Minute); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown dentist: got %v, want ErrNotFound", err)
	}
}

func TestIsAvailableOverlapRules(t *testing.T) {
	svc, store := newService(1)
	store.book(1, 10, at(monday, 10, 0), 30)

	tests := []struct {
		name     string
		start    time.Time
		duration time.Duration
		want     bool
	}{
		{"same interval conflicts", at(monday, 10, 0), 30 * time.Minute, false},
		{"contained conflicts", at(monday, 10, 10), 10 * time.Minute, false},
		{"straddling start conflicts", at(monday, 9, 45), 30 * time.Minute, false},
		{"straddling end conflicts", at(monday, 10, 15), 30 * time.Minute, false},
		{"abutting after is free", at(monday, 10, 30), 30 * time.Minute, true},
		{"abutting before is free", at(monday, 9, 30), 30 * time.Minute, true},
		{"clear of booking is free", at(monday, 15, 0), 30 * time.Minute, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.IsAvailable(1, tt.start, tt.duration, 0)
			if err != nil {
				t.Fatalf("IsAvailable: %v", err)
			}
			if got != tt.want {
				t.Errorf("IsAvailable(%v, %v) = %v, want %v", tt.start, tt.duration, got, tt.want)
			}
		})
	}
}

func TestIsAvailableWorkingHoursAndBreak(t *testing.T) {
	svc, _ := newService(1)

	tests := []struct {
		name  string
		start time.Time
		want  bool
	}{
		{"before opening", at(monday, 8, 30), false},
		{"runs past closing", at(monday, 17, 45), false},
		{"ends exactly at closing", at(monday, 17, 30), true},
		{"inside break", at(monday, 13, 15), false},
		{"straddles break start", at(monday, 12, 45), false},
		{"ends at break start", at(monday, 12, 30), true},
		{"starts at break end", at(monday, 14, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.IsAvailable(1, tt.start, 30*time.Minute, 0)
			if err != nil {
				t.Fatalf("IsAvailable: %v", err)
			}
			if got != tt.want {
				t.Errorf("IsAvailable(%v) = %v, want %v", tt.start, got, tt.want)
			}
		})
	}
}

func TestIsAvailableDayOff(t *testing.T) {
	svc, _ := newService(1)
	saturday := monday.AddDate(0, 0, 5)

	got, err := svc.IsAvailable(1, at(saturday, 10, 0), 30*time.Minute, 0)
	if err != nil {
		t.Fatalf("IsAvailable: %v", err)
	}
	if got {
		t.Error("expected unavailable on a day off")
	}
}

func TestIsAvailableExcludesOwnAppointment(t *testing.T) {
	svc, store := newService(1)
	store.book(1, 10, at(monday, 10, 0), 30)

	// Rescheduling appointment 10 to a window overlapping only itself.
	got, err := svc.IsAvailable(1, at(monday, 10, 15), 30*time.Minute, 10)
	if err != nil {
		t.Fatalf("IsAvailable: %v", err)
	}
	if !got {
		t.Error("appointment must not conflict with its own current interval")
	}

	// Without the exclusion the same window conflicts.
	got, err = svc.IsAvailable(1, at(monday, 10, 15), 30*time.Minute, 0)
	if err != nil {
		t.Fatalf("IsAvailable: %v", err)
	}
	if got {
		t.Error("expected conflict when not excluding the appointment")
	}
}

func TestIsAvailableInvalidDuration(t *testing.T) {
	svc, _ := newService(1)

	if _, err := svc.IsAvailable(1, at(monday, 10, 0), 0, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("duration 0: got %v, want ErrInvalidArgument", err)
	}
}

func TestIsAvailableUnknownDentist(t *testing.T) {
	svc, _ := newService(1)

	if _, err := svc.IsAvailable(42, at(monday, 10, 0), 30*time.Minute, 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown dentist: got %v, want ErrNotFound", err)
	}
}

func TestMergeIntervals(t *testing.T) {
	a := Interval{Start: at(monday, 9, 0), End: at(monday, 10, 0)}
	b := Interval{Start: at(monday, 10, 0), End: at(monday, 11, 0)}   // adjacent to a
	c := Interval{Start: at(monday, 10, 30), End: at(monday, 11, 30)} // overlaps b
	d := Interval{Start: at(monday, 15, 0), End: at(monday, 16, 0)}   // disjoint

	merged := mergeIntervals([]Interval{d, c, a, b})
	if len(merged) != 2 {
		t.Fatalf("expected 2 merged intervals, got %d", len(merged))
	}
	if !merged[0].Start.Equal(a.Start) || !merged[0].End.Equal(c.End) {
		t.Errorf("first merged interval %v-%v, want 09:00-11:30", merged[0].Start, merged[0].End)
	}
	if !merged[1].Start.Equal(d.Start) || !merged[1].End.Equal(d.End) {
		t.Errorf("second merged interval %v-%v, want 15:00-16:00", merged[1].Start, merged[1].End)
	}
}
