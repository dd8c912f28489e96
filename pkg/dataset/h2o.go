package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/menta2k/hoiview/pkg/geometry"
)

// h2oSplits is the fixed split load order for the H2O directory layout.
// Later splits win when two splits reuse a sample id.
var h2oSplits = []string{"train", "test"}

// H2O is a Dataset backed by the H2O directory layout:
//
//	root/categories.json        flat list of category names
//	root/verbs.json             flat list of verb names
//	root/{split}.json           sample records per split
//	root/images/{split}/{id}.jpg
//
// Manifest bounding boxes are four-element XYXY lists in normalized
// coordinates. Image files are resolved by convention and are not required
// to exist at load time; opening them is the consumer's concern.
type H2O struct {
	root       string
	categories []string
	verbs      []string
	ids        []SampleID
	samples    map[SampleID]Sample
}

var _ Dataset = (*H2O)(nil)

// Manifest record shapes. Optional action roles decode to nil on JSON null.
type h2oEntity struct {
	BBox     []float64 `json:"bbox"`
	Category string    `json:"category"`
}

type h2oAction struct {
	Verb       string `json:"verb"`
	Subject    int    `json:"subject"`
	Target     *int   `json:"target"`
	Instrument *int   `json:"instrument"`
}

type h2oRecord struct {
	ID       string      `json:"id"`
	Entities []h2oEntity `json:"entities"`
	Actions  []h2oAction `json:"actions"`
}

// OpenH2O loads the dataset rooted at root. The load is all-or-nothing: any
// missing or malformed manifest, and any malformed sample record, fails the
// whole load with an error matching ErrDatasetLoad.
func OpenH2O(root string) (*H2O, error) {
	categories, err := readStringList(filepath.Join(root, "categories.json"))
	if err != nil {
		return nil, err
	}
	verbs, err := readStringList(filepath.Join(root, "verbs.json"))
	if err != nil {
		return nil, err
	}

	d := &H2O{
		root:       root,
		categories: categories,
		verbs:      verbs,
		samples:    make(map[SampleID]Sample),
	}
	for _, split := range h2oSplits {
		if err := d.loadSplit(split); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// loadSplit reads one split manifest and merges its samples into the
// collection. A duplicate id keeps its original insertion position but its
// sample is replaced wholesale by the later split's record.
func (d *H2O) loadSplit(split string) error {
	path := filepath.Join(d.root, split+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", ErrDatasetLoad, path, err)
	}

	var records []h2oRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("%w: parse %s: %v", ErrDatasetLoad, path, err)
	}

	for i, rec := range records {
		sample, err := d.buildSample(split, rec)
		if err != nil {
			return fmt.Errorf("%w: %s: record %d: %v", ErrDatasetLoad, path, i, err)
		}

		id := SampleID(rec.ID)
		if _, exists := d.samples[id]; !exists {
			d.ids = append(d.ids, id)
		}
		d.samples[id] = sample
	}
	return nil
}

// buildSample converts one manifest record into a Sample. The image path is
// derived by convention without checking that the file exists.
func (d *H2O) buildSample(split string, rec h2oRecord) (Sample, error) {
	if rec.ID == "" {
		return Sample{}, fmt.Errorf("missing sample id")
	}

	entities := make([]Entity, len(rec.Entities))
	for i, e := range rec.Entities {
		bbox, err := geometry.New(e.BBox, geometry.XYXY, true)
		if err != nil {
			return Sample{}, fmt.Errorf("entity %d: %v", i, err)
		}
		entities[i] = Entity{BBox: bbox, Category: e.Category}
	}

	actions := make([]Action, len(rec.Actions))
	for i, a := range rec.Actions {
		// Callers index the entity list with these as-is, so they are
		// checked once here.
		if a.Subject < 0 || a.Subject >= len(entities) {
			return Sample{}, fmt.Errorf("action %d: subject index %d out of range", i, a.Subject)
		}
		if a.Target != nil && (*a.Target < 0 || *a.Target >= len(entities)) {
			return Sample{}, fmt.Errorf("action %d: target index %d out of range", i, *a.Target)
		}
		if a.Instrument != nil && (*a.Instrument < 0 || *a.Instrument >= len(entities)) {
			return Sample{}, fmt.Errorf("action %d: instrument index %d out of range", i, *a.Instrument)
		}
		actions[i] = Action{
			Verb:       a.Verb,
			Subject:    a.Subject,
			Target:     a.Target,
			Instrument: a.Instrument,
		}
	}

	return Sample{
		ImagePath: filepath.Join(d.root, "images", split, rec.ID+".jpg"),
		Entities:  entities,
		Actions:   actions,
		Splits:    []string{split},
	}, nil
}

// Root returns the dataset root directory.
func (d *H2O) Root() string {
	return d.root
}

// Categories returns the category names from categories.json.
func (d *H2O) Categories() []string {
	return append([]string(nil), d.categories...)
}

// Verbs returns the verb names from verbs.json.
func (d *H2O) Verbs() []string {
	return append([]string(nil), d.verbs...)
}

// Splits returns the split names recognized by the H2O layout.
func (d *H2O) Splits() []string {
	return append([]string(nil), h2oSplits...)
}

// Len returns the number of samples.
func (d *H2O) Len() int {
	return len(d.ids)
}

// IDs returns the sample identifiers in insertion order.
func (d *H2O) IDs() []SampleID {
	return append([]SampleID(nil), d.ids...)
}

// Get returns the sample stored under id.
func (d *H2O) Get(id SampleID) (Sample, error) {
	s, ok := d.samples[id]
	if !ok {
		return Sample{}, fmt.Errorf("%w: %q", ErrSampleNotFound, id)
	}
	return s, nil
}

// readStringList reads a JSON file holding a flat list of strings.
func readStringList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrDatasetLoad, path, err)
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrDatasetLoad, path, err)
	}
	return list, nil
}
