package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ID is an opaque plan or trainer identifier. The backend may send it as a
// JSON number or string; it is always carried as a string.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("cannot parse id %s: %w", data, err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// DateLayout is the calendar date format used on the wire and for display.
const DateLayout = "2006-01-02"

// Date is a calendar date without time of day. It decodes from "2006-01-02",
// RFC 3339, a [year, month, day] array or null.
type Date struct {
	time.Time
}

// NewDate returns the Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d *Date) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		d.Time = time.Time{}
		return nil
	case len(data) > 0 && data[0] == '[':
		var parts []int
		if err := json.Unmarshal(data, &parts); err != nil {
			return fmt.Errorf("cannot parse date %s: %w", data, err)
		}
		if len(parts) < 3 {
			return fmt.Errorf("cannot parse date %s: want [year, month, day]", data)
		}
		*d = NewDate(parts[0], time.Month(parts[1]), parts[2])
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return d.Parse(s)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

// Parse parses a date string, trying date-only first, then RFC 3339.
// An empty string yields the zero Date.
func (d *Date) Parse(s string) error {
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(DateLayout, s)
	if err == nil {
		d.Time = parsed
		return nil
	}
	parsed, err2 := time.Parse(time.RFC3339, s)
	if err2 == nil {
		y, m, day := parsed.Date()
		*d = NewDate(y, m, day)
		return nil
	}
	return fmt.Errorf("cannot parse date %q: %w", s, err)
}

// String renders the date as YYYY-MM-DD, or "" for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// WorkoutSummary is one row of a trainer's plan list.
type WorkoutSummary struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	FromDate    Date   `json:"fromDate"`
	ToDate      Date   `json:"toDate"`
}

// ExerciseEntry is a single exercise scheduled on a day of the week.
type ExerciseEntry struct {
	DayOfWeek     string `json:"dayOfWeek"`
	ExerciseOrder int    `json:"exerciseOrder"`
	Name          string `json:"name"`
}

// Label renders the entry the way the plan overlay lists it: "2. Squat".
func (e ExerciseEntry) Label() string {
	return strconv.Itoa(e.ExerciseOrder) + ". " + e.Name
}

// WorkoutDetail is a full plan record including its exercises, which arrive
// unordered and ungrouped.
type WorkoutDetail struct {
	WorkoutSummary
	Exercises []ExerciseEntry `json:"exercises"`
}

func (w *WorkoutDetail) UnmarshalJSON(data []byte) error {
	// Older backends spell the key "exercies".
	var raw struct {
		WorkoutSummary
		Exercises []ExerciseEntry `json:"exercises"`
		Legacy    []ExerciseEntry `json:"exercies"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	w.WorkoutSummary = raw.WorkoutSummary
	w.Exercises = raw.Exercises
	if w.Exercises == nil {
		w.Exercises = raw.Legacy
	}
	return nil
}

// Grouped groups the plan's exercises by day of week.
func (w *WorkoutDetail) Grouped() GroupedExercises {
	if w == nil {
		return GroupedExercises{}
	}
	return GroupByDay(w.Exercises)
}

// DetailView is a plan summary with its exercises as an ordered list of day
// buckets. It is the JSON shape used for tool results and CLI output.
type DetailView struct {
	WorkoutSummary
	Days []DayGroup `json:"days"`
}

// NewDetailView pairs a summary with an already grouped exercise list.
func NewDetailView(s WorkoutSummary, g GroupedExercises) *DetailView {
	return &DetailView{WorkoutSummary: s, Days: g.Groups()}
}

// View returns the plan grouped by day, days in first-seen order.
func (w *WorkoutDetail) View() *DetailView {
	if w == nil {
		return nil
	}
	return NewDetailView(w.WorkoutSummary, w.Grouped())
}
