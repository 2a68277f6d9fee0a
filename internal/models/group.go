package models

import (
	"bytes"
	"cmp"
	"encoding/json"
	"slices"
)

// GroupedExercises maps day of week to that day's exercises. Days keep the
// order in which they were first seen and each bucket keeps source order.
type GroupedExercises struct {
	days    []string
	buckets map[string][]ExerciseEntry
}

// GroupByDay partitions entries by DayOfWeek in a single left-to-right pass.
// Entries are not sorted by ExerciseOrder. Nil or empty input yields an empty
// grouping.
func GroupByDay(entries []ExerciseEntry) GroupedExercises {
	g := GroupedExercises{buckets: make(map[string][]ExerciseEntry)}
	for _, e := range entries {
		if _, ok := g.buckets[e.DayOfWeek]; !ok {
			g.days = append(g.days, e.DayOfWeek)
		}
		g.buckets[e.DayOfWeek] = append(g.buckets[e.DayOfWeek], e)
	}
	return g
}

// Days returns the day keys in first-seen order.
func (g GroupedExercises) Days() []string {
	return slices.Clone(g.days)
}

// Exercises returns the bucket for day, or nil when the day has none.
func (g GroupedExercises) Exercises(day string) []ExerciseEntry {
	return slices.Clone(g.buckets[day])
}

// Len returns the number of distinct days.
func (g GroupedExercises) Len() int { return len(g.days) }

func (g GroupedExercises) IsEmpty() bool { return len(g.days) == 0 }

// Flatten concatenates the buckets in day order. Grouping the result again
// reproduces g.
func (g GroupedExercises) Flatten() []ExerciseEntry {
	var out []ExerciseEntry
	for _, day := range g.days {
		out = append(out, g.buckets[day]...)
	}
	return out
}

// SortedByOrder returns a copy with each bucket stably sorted by
// ExerciseOrder. Day order is unchanged.
func (g GroupedExercises) SortedByOrder() GroupedExercises {
	out := GroupedExercises{
		days:    slices.Clone(g.days),
		buckets: make(map[string][]ExerciseEntry, len(g.buckets)),
	}
	for day, entries := range g.buckets {
		sorted := slices.Clone(entries)
		slices.SortStableFunc(sorted, func(a, b ExerciseEntry) int {
			return cmp.Compare(a.ExerciseOrder, b.ExerciseOrder)
		})
		out.buckets[day] = sorted
	}
	return out
}

// MarshalJSON encodes the grouping as an object whose keys follow day order.
func (g GroupedExercises) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, day := range g.days {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(day)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(g.buckets[day])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// DayGroup is one day's bucket, used where an ordered list reads better than
// an object (MCP results, CLI JSON).
type DayGroup struct {
	Day       string          `json:"day"`
	Exercises []ExerciseEntry `json:"exercises"`
}

// Groups returns the buckets as an ordered slice.
func (g GroupedExercises) Groups() []DayGroup {
	out := make([]DayGroup, 0, len(g.days))
	for _, day := range g.days {
		out = append(out, DayGroup{Day: day, Exercises: slices.Clone(g.buckets[day])})
	}
	return out
}
