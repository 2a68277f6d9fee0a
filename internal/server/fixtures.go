package server

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Fixtures holds the canned backend responses. Values are kept as decoded
// YAML and replayed verbatim as JSON, so fixtures can exercise the client's
// lenient decoding (numeric ids, date arrays, the legacy "exercies" key).
type Fixtures struct {
	trainers map[string][]any
	details  map[string]any
}

type fixtureFile struct {
	Trainers map[string][]any `yaml:"trainers"`
	Plans    map[string]any   `yaml:"plans"`
}

// LoadFixtures reads a YAML fixture file of the form:
//
//	trainers:
//	  "42":
//	    - { id: 1, name: Base block, fromDate: "2024-01-01", toDate: "2024-02-01" }
//	plans:
//	  "1":
//	    id: 1
//	    name: Base block
//	    exercises:
//	      - { dayOfWeek: Monday, exerciseOrder: 1, name: Squat }
func LoadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixtures: %w", err)
	}
	return ParseFixtures(data)
}

// ParseFixtures decodes fixture YAML.
func ParseFixtures(data []byte) (*Fixtures, error) {
	var f fixtureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixtures: %w", err)
	}
	for id, d := range f.Plans {
		if _, ok := d.(map[string]any); !ok {
			return nil, fmt.Errorf("plan %q: expected a mapping, got %T", id, d)
		}
	}
	return &Fixtures{trainers: f.Trainers, details: f.Plans}, nil
}

// Plans returns the summaries for trainerID. Unknown trainers get an empty list.
func (f *Fixtures) Plans(trainerID string) []any {
	plans := f.trainers[trainerID]
	if plans == nil {
		return []any{}
	}
	return plans
}

// Detail returns the detail payload for planID.
func (f *Fixtures) Detail(planID string) (any, bool) {
	d, ok := f.details[planID]
	return d, ok
}

// Counts returns the number of trainers and plan details loaded.
func (f *Fixtures) Counts() (trainers, plans int) {
	return len(f.trainers), len(f.details)
}
