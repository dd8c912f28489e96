// Package dataset defines the in-memory model for annotated HOI image
// collections and the loaders that build it from disk.
//
// A Dataset is loaded fully at construction time and is immutable
// afterwards: there are no add, update or remove operations, and a failed
// load never produces a partial collection. Renderers, statistics tools and
// exporters depend only on the Dataset interface, never on loader internals.
package dataset

import (
	"errors"
)

// Sentinel errors for dataset construction and lookup.
var (
	ErrDatasetLoad    = errors.New("dataset load failed")
	ErrSampleNotFound = errors.New("sample not found")
)

// Dataset is a read-only, fully loaded collection of annotated samples.
type Dataset interface {
	// Categories returns the known entity category names in manifest order.
	Categories() []string

	// Verbs returns the known action verb names in manifest order.
	Verbs() []string

	// Splits returns the split names this dataset recognizes.
	Splits() []string

	// Len returns the number of samples.
	Len() int

	// IDs returns every sample identifier in insertion order.
	IDs() []SampleID

	// Get returns the sample stored under id. A miss returns an error
	// matching ErrSampleNotFound.
	Get(id SampleID) (Sample, error)
}
