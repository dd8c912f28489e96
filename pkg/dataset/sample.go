package dataset

import (
	"github.com/menta2k/hoiview/pkg/geometry"
)

// SampleID is an opaque identifier, unique within a Dataset, used as the
// lookup key for samples.
type SampleID string

// Entity is a detected object or person in an image. Category is a free-form
// label; by dataset convention the label "person" is reserved for human
// entities and every human entity uses exactly that label. The convention is
// a property of the data, not something the type enforces.
type Entity struct {
	BBox     geometry.BoundingBox `json:"bbox"`
	Category string               `json:"category"`
}

// Action links entities of a sample into an interaction triplet. Subject,
// Target and Instrument index into the owning Sample's entity list. Target is
// nil for non-interactive actions; Instrument is nil when no tool is
// involved. Loaders check the indices are in range at load time; they are
// not re-checked on access.
type Action struct {
	Verb       string `json:"verb"`
	Subject    int    `json:"subject"`
	Target     *int   `json:"target"`
	Instrument *int   `json:"instrument"`
}

// Interactive reports whether the action has a target entity.
func (a Action) Interactive() bool {
	return a.Target != nil
}

// Sample is one annotated image. It is assembled once by a loader and never
// modified afterwards; consumers receive it by value and must treat the
// entity and action slices as read-only.
type Sample struct {
	ImagePath string   `json:"image_path"`
	Entities  []Entity `json:"entities"`
	Actions   []Action `json:"actions"`
	Splits    []string `json:"splits"`
}
