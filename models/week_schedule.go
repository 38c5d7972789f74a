package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DaySchedule is a single weekday's availability window. Times are "HH:MM"
// strings in 24h clock; the break is optional but must come as a pair.
type DaySchedule struct {
	Start      string `json:"start"`
	End        string `json:"end"`
	BreakStart string `json:"break_start,omitempty"`
	BreakEnd   string `json:"break_end,omitempty"`
}

// WeekSchedule maps lowercase weekday names ("monday".."sunday") to that
// day's schedule. A missing key means the dentist does not work that day.
type WeekSchedule map[string]*DaySchedule

// Value implements the driver.Valuer interface
func (ws WeekSchedule) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(ws)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil // Return as string for JSONB type
}

// Scan implements the sql.Scanner interface
func (ws *WeekSchedule) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal WeekSchedule: unsupported type %T", value)
	}

	return json.Unmarshal(data, ws)
}

// DefaultWeekSchedule is the clinic policy applied to dentists who have not
// configured their own hours: Monday-Friday 09:00-18:00 with a 13:00-14:00
// break, weekends off.
func DefaultWeekSchedule() WeekSchedule {
	ws := WeekSchedule{}
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday"} {
		ws[day] = &DaySchedule{
			Start:      "09:00",
			End:        "18:00",
			BreakStart: "13:00",
			BreakEnd:   "14:00",
		}
	}
	return ws
}

// DayKey returns the WeekSchedule map key for a calendar date.
func DayKey(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// ForDate returns the schedule for the date's weekday, or nil when the
// dentist is unavailable that day.
func (ws WeekSchedule) ForDate(t time.Time) *DaySchedule {
	return ws[DayKey(t)]
}

const clockLayout = "15:04"

// AtDate resolves an "HH:MM" clock string onto a concrete date, keeping the
// date's location.
func AtDate(clock string, date time.Time) (time.Time, error) {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: expected HH:MM", clock)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

// Validate checks start < end and, when a break is present, that it lies
// inside the working window.
func (d *DaySchedule) Validate() error {
	start, err := time.Parse(clockLayout, d.Start)
	if err != nil {
		return fmt.Errorf("invalid start time %q: expected HH:MM", d.Start)
	}
	end, err := time.Parse(clockLayout, d.End)
	if err != nil {
		return fmt.Errorf("invalid end time %q: expected HH:MM", d.End)
	}
	if !start.Before(end) {
		return fmt.Errorf("start time %s must be before end time %s", d.Start, d.End)
	}

	if (d.BreakStart == "") != (d.BreakEnd == "") {
		return fmt.Errorf("break start and break end must be set together")
	}
	if d.BreakStart == "" {
		return nil
	}

	breakStart, err := time.Parse(clockLayout, d.BreakStart)
	if err != nil {
		return fmt.Errorf("invalid break start %q: expected HH:MM", d.BreakStart)
	}
	breakEnd, err := time.Parse(clockLayout, d.BreakEnd)
	if err != nil {
		return fmt.Errorf("invalid break end %q: expected HH:MM", d.BreakEnd)
	}
	if !breakStart.Before(breakEnd) {
		return fmt.Errorf("break start %s must be before break end %s", d.BreakStart, d.BreakEnd)
	}
	if breakStart.Before(start) || breakEnd.After(end) {
		return fmt.Errorf("break %s-%s must fall within working hours %s-%s",
			d.BreakStart, d.BreakEnd, d.Start, d.End)
	}
	return nil
}

// Validate checks every configured day and rejects unknown weekday keys.
func (ws WeekSchedule) Validate() error {
	known := map[string]bool{
		"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
		"friday": true, "saturday": true, "sunday": true,
	}
	for day, schedule := range ws {
		if !known[day] {
			return fmt.Errorf("unknown weekday %q", day)
		}
		if schedule == nil {
			continue
		}
		if err := schedule.Validate(); err != nil {
			return fmt.Errorf("%s: %w", day, err)
		}
	}
	return nil
}
