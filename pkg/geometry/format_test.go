package geometry

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Format
		wantErr  bool
	}{
		{"lowercase xyxy", "xyxy", XYXY, false},
		{"uppercase xyxy", "XYXY", XYXY, false},
		{"padded xyxy", " xyxy ", XYXY, false},
		{"lowercase xywh", "xywh", XYWH, false},
		{"mixed case cxcywh", "CxCyWh", CXCYWH, false},
		{"unknown name", "bogus", "", true},
		{"empty string", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseFormat(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseFormat(%q) succeeded, want error", tt.input)
				}
				if !errors.Is(err, ErrInvalidFormat) {
					t.Errorf("ParseFormat(%q) error = %v, want ErrInvalidFormat", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat(%q) failed: %v", tt.input, err)
			}
			if result != tt.expected {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFormatIsValid(t *testing.T) {
	tests := []struct {
		name     string
		format   Format
		expected bool
	}{
		{"valid xyxy", XYXY, true},
		{"valid xywh", XYWH, true},
		{"valid cxcywh", CXCYWH, true},
		{"invalid format", Format("bogus"), false},
		{"empty format", Format(""), false},
		{"uppercase XYXY", Format("XYXY"), false}, // Canonical names are lowercase
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.format.IsValid()
			if result != tt.expected {
				t.Errorf("IsValid(%s) = %v, want %v", tt.format, result, tt.expected)
			}
		})
	}
}

func TestFormats(t *testing.T) {
	all := Formats()
	if len(all) != 3 {
		t.Fatalf("Formats() returned %d formats, want 3", len(all))
	}
	for _, f := range all {
		if !f.IsValid() {
			t.Errorf("Formats() contains invalid format %q", f)
		}
	}
}
