package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menta2k/hoiview/pkg/geometry"
)

// writeH2ORoot lays out a dataset root with the given manifest contents.
func writeH2ORoot(t *testing.T, categories, verbs, train, test string) string {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"categories.json": categories,
		"verbs.json":      verbs,
		"train.json":      train,
		"test.json":       test,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0o644))
	}
	return root
}

func TestOpenH2O(t *testing.T) {
	root := writeH2ORoot(t,
		`["person", "ball"]`,
		`["kick"]`,
		`[{"id": "0001",
		   "entities": [{"bbox": [0.1, 0.1, 0.5, 0.5], "category": "person"}],
		   "actions": [{"verb": "kick", "subject": 0, "target": null, "instrument": null}]}]`,
		`[]`,
	)

	ds, err := OpenH2O(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"person", "ball"}, ds.Categories())
	assert.Equal(t, []string{"kick"}, ds.Verbs())
	assert.Equal(t, []string{"train", "test"}, ds.Splits())
	assert.Equal(t, 1, ds.Len())
	assert.Equal(t, []SampleID{"0001"}, ds.IDs())
	assert.Equal(t, root, ds.Root())

	got, err := ds.Get("0001")
	require.NoError(t, err)

	bbox, err := geometry.New([]float64{0.1, 0.1, 0.5, 0.5}, geometry.XYXY, true)
	require.NoError(t, err)
	want := Sample{
		ImagePath: filepath.Join(root, "images", "train", "0001.jpg"),
		Entities:  []Entity{{BBox: bbox, Category: "person"}},
		Actions:   []Action{{Verb: "kick", Subject: 0, Target: nil, Instrument: nil}},
		Splits:    []string{"train"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sample mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenH2OLookupMiss(t *testing.T) {
	root := writeH2ORoot(t, `["person"]`, `["kick"]`, `[]`, `[]`)

	ds, err := OpenH2O(root)
	require.NoError(t, err)

	_, err = ds.Get("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSampleNotFound), "error should match ErrSampleNotFound, got %v", err)
}

func TestOpenH2OOptionalActionRoles(t *testing.T) {
	root := writeH2ORoot(t,
		`["person", "ball", "boot"]`,
		`["kick"]`,
		`[{"id": "0001",
		   "entities": [{"bbox": [0.1, 0.1, 0.5, 0.5], "category": "person"},
		                {"bbox": [0.5, 0.5, 0.9, 0.9], "category": "ball"},
		                {"bbox": [0.2, 0.6, 0.4, 0.9], "category": "boot"}],
		   "actions": [{"verb": "kick", "subject": 0, "target": 1, "instrument": 2}]}]`,
		`[]`,
	)

	ds, err := OpenH2O(root)
	require.NoError(t, err)

	sample, err := ds.Get("0001")
	require.NoError(t, err)
	require.Len(t, sample.Actions, 1)

	action := sample.Actions[0]
	assert.Equal(t, "kick", action.Verb)
	assert.Equal(t, 0, action.Subject)
	require.NotNil(t, action.Target)
	assert.Equal(t, 1, *action.Target)
	require.NotNil(t, action.Instrument)
	assert.Equal(t, 2, *action.Instrument)
	assert.True(t, action.Interactive())

	// Omitted roles decode the same as explicit nulls.
	root = writeH2ORoot(t,
		`["person"]`,
		`["walk"]`,
		`[{"id": "0002",
		   "entities": [{"bbox": [0.1, 0.1, 0.5, 0.5], "category": "person"}],
		   "actions": [{"verb": "walk", "subject": 0}]}]`,
		`[]`,
	)
	ds, err = OpenH2O(root)
	require.NoError(t, err)
	sample, err = ds.Get("0002")
	require.NoError(t, err)
	require.Len(t, sample.Actions, 1)
	assert.Nil(t, sample.Actions[0].Target)
	assert.Nil(t, sample.Actions[0].Instrument)
	assert.False(t, sample.Actions[0].Interactive())
}

func TestOpenH2ODuplicateIDLastSplitWins(t *testing.T) {
	root := writeH2ORoot(t,
		`["person", "ball"]`,
		`["kick", "throw"]`,
		`[{"id": "0001",
		   "entities": [{"bbox": [0.1, 0.1, 0.5, 0.5], "category": "person"}],
		   "actions": [{"verb": "kick", "subject": 0, "target": null, "instrument": null}]},
		  {"id": "0002",
		   "entities": [{"bbox": [0.2, 0.2, 0.6, 0.6], "category": "ball"}],
		   "actions": []}]`,
		`[{"id": "0001",
		   "entities": [{"bbox": [0.3, 0.3, 0.7, 0.7], "category": "ball"}],
		   "actions": [{"verb": "throw", "subject": 0, "target": null, "instrument": null}]}]`,
	)

	ds, err := OpenH2O(root)
	require.NoError(t, err)

	// One entry per id; "0001" keeps its original position.
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, []SampleID{"0001", "0002"}, ds.IDs())

	// The surviving content is the test split's record, wholesale.
	sample, err := ds.Get("0001")
	require.NoError(t, err)
	assert.Equal(t, []string{"test"}, sample.Splits)
	assert.Equal(t, filepath.Join(root, "images", "test", "0001.jpg"), sample.ImagePath)
	require.Len(t, sample.Entities, 1)
	assert.Equal(t, "ball", sample.Entities[0].Category)
	require.Len(t, sample.Actions, 1)
	assert.Equal(t, "throw", sample.Actions[0].Verb)
}

func TestOpenH2OInsertionOrder(t *testing.T) {
	root := writeH2ORoot(t,
		`["person"]`,
		`["walk"]`,
		`[{"id": "b", "entities": [], "actions": []},
		  {"id": "a", "entities": [], "actions": []}]`,
		`[{"id": "c", "entities": [], "actions": []}]`,
	)

	ds, err := OpenH2O(root)
	require.NoError(t, err)
	assert.Equal(t, []SampleID{"b", "a", "c"}, ds.IDs())
}

func TestOpenH2OMissingManifest(t *testing.T) {
	root := t.TempDir()
	// No categories.json at all.
	_, err := OpenH2O(root)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDatasetLoad), "error should match ErrDatasetLoad, got %v", err)
}

func TestOpenH2OMissingSplitManifest(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "categories.json"), []byte(`["person"]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "verbs.json"), []byte(`["kick"]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "train.json"), []byte(`[]`), 0o644))
	// test.json is missing.

	_, err := OpenH2O(root)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDatasetLoad))
}

func TestOpenH2OMalformedManifest(t *testing.T) {
	tests := []struct {
		name  string
		train string
	}{
		{"invalid json", `{not json`},
		{"wrong shape", `{"id": "0001"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := writeH2ORoot(t, `["person"]`, `["kick"]`, tt.train, `[]`)
			_, err := OpenH2O(root)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDatasetLoad), "error should match ErrDatasetLoad, got %v", err)
		})
	}
}

func TestOpenH2OMalformedRecordAbortsLoad(t *testing.T) {
	tests := []struct {
		name  string
		train string
	}{
		{
			"bbox with three coordinates",
			`[{"id": "ok", "entities": [], "actions": []},
			  {"id": "bad", "entities": [{"bbox": [0.1, 0.1, 0.5], "category": "person"}], "actions": []}]`,
		},
		{
			"missing sample id",
			`[{"entities": [], "actions": []}]`,
		},
		{
			"action subject out of range",
			`[{"id": "bad", "entities": [{"bbox": [0.1, 0.1, 0.5, 0.5], "category": "person"}],
			   "actions": [{"verb": "kick", "subject": 3}]}]`,
		},
		{
			"action target out of range",
			`[{"id": "bad", "entities": [{"bbox": [0.1, 0.1, 0.5, 0.5], "category": "person"}],
			   "actions": [{"verb": "kick", "subject": 0, "target": 7}]}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := writeH2ORoot(t, `["person"]`, `["kick"]`, tt.train, `[]`)
			_, err := OpenH2O(root)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDatasetLoad), "error should match ErrDatasetLoad, got %v", err)
		})
	}
}

func TestAccessorsReturnDetachedSlices(t *testing.T) {
	root := writeH2ORoot(t,
		`["person", "ball"]`,
		`["kick"]`,
		`[{"id": "0001", "entities": [], "actions": []}]`,
		`[]`,
	)

	ds, err := OpenH2O(root)
	require.NoError(t, err)

	cats := ds.Categories()
	cats[0] = "mutated"
	assert.Equal(t, []string{"person", "ball"}, ds.Categories())

	ids := ds.IDs()
	ids[0] = "mutated"
	assert.Equal(t, []SampleID{"0001"}, ds.IDs())
}
