// Package stats summarizes annotation distributions across a dataset.
package stats

import (
	"fmt"

	"github.com/menta2k/hoiview/pkg/dataset"
)

// Summary aggregates annotation counts over every sample of a dataset.
type Summary struct {
	Samples  int `json:"samples"`
	Entities int `json:"entities"`
	Actions  int `json:"actions"`

	// Interactive counts actions directed at a target entity.
	Interactive int `json:"interactive"`

	Categories map[string]int `json:"categories"` // entities per category
	Verbs      map[string]int `json:"verbs"`      // actions per verb
	Splits     map[string]int `json:"splits"`     // samples per split

	// EntitiesPerSample is a histogram keyed by entity count.
	EntitiesPerSample map[int]int `json:"entities_per_sample"`

	// BoxAreas and BoxCenters record every entity box in its own coordinate
	// space, in dataset iteration order.
	BoxAreas   []float64    `json:"box_areas"`
	BoxCenters [][2]float64 `json:"box_centers"`
}

// InteractiveFraction returns the share of actions directed at a target.
func (s Summary) InteractiveFraction() float64 {
	if s.Actions == 0 {
		return 0
	}
	return float64(s.Interactive) / float64(s.Actions)
}

// Collect walks every sample of ds and aggregates annotation counts.
func Collect(ds dataset.Dataset) (Summary, error) {
	summary := Summary{
		Categories:        make(map[string]int),
		Verbs:             make(map[string]int),
		Splits:            make(map[string]int),
		EntitiesPerSample: make(map[int]int),
	}

	for _, id := range ds.IDs() {
		sample, err := ds.Get(id)
		if err != nil {
			return Summary{}, fmt.Errorf("failed to read sample %s: %w", id, err)
		}

		summary.Samples++
		summary.EntitiesPerSample[len(sample.Entities)]++
		for _, split := range sample.Splits {
			summary.Splits[split]++
		}

		for _, ent := range sample.Entities {
			summary.Entities++
			summary.Categories[ent.Category]++
			summary.BoxAreas = append(summary.BoxAreas, ent.BBox.Area())
			cx, cy := ent.BBox.Center()
			summary.BoxCenters = append(summary.BoxCenters, [2]float64{cx, cy})
		}

		for _, act := range sample.Actions {
			summary.Actions++
			summary.Verbs[act.Verb]++
			if act.Interactive() {
				summary.Interactive++
			}
		}
	}

	return summary, nil
}
