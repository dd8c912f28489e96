package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetFileExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"image.jpg", "jpg"},
		{"image.JPEG", "jpeg"},
		{"archive.tar.gz", "gz"},
		{"noext", ""},
	}

	for _, tt := range tests {
		if got := GetFileExtension(tt.filename); got != tt.want {
			t.Errorf("GetFileExtension(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestIsImageFile(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"photo.jpg", true},
		{"photo.jpeg", true},
		{"photo.png", true},
		{"photo.webp", true},
		{"photo.gif", false},
		{"notes.txt", false},
	}

	for _, tt := range tests {
		if got := IsImageFile(tt.filename); got != tt.want {
			t.Errorf("IsImageFile(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestGenerateOutputFilename(t *testing.T) {
	got := GenerateOutputFilename("images/train/0001.jpg", "out", "_overlay", "png")
	want := filepath.Join("out", "0001_overlay.png")
	if got != want {
		t.Errorf("GenerateOutputFilename = %q, want %q", got, want)
	}

	// Format falls back to the input extension.
	got = GenerateOutputFilename("images/train/0001.jpg", "out", "_overlay", "")
	want = filepath.Join("out", "0001_overlay.jpg")
	if got != want {
		t.Errorf("GenerateOutputFilename = %q, want %q", got, want)
	}
}

func TestListImageFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.jpg", "b.png", "c.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	sub := filepath.Join(dir, "sub")
	if err := EnsureDir(sub); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "d.webp"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	files, err := ListImageFiles(dir)
	if err != nil {
		t.Fatalf("ListImageFiles failed: %v", err)
	}
	if len(files) != 3 {
		t.Errorf("Expected 3 image files, got %d: %v", len(files), files)
	}
}

func TestDiskUsage(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.jpg")
	pathB := filepath.Join(dir, "b.jpg")
	if err := os.WriteFile(pathA, make([]byte, 100), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(pathB, make([]byte, 50), 0o644); err != nil {
		t.Fatal(err)
	}

	total, found := DiskUsage([]string{pathA, pathB, filepath.Join(dir, "missing.jpg")})
	if total != 150 {
		t.Errorf("Expected 150 bytes, got %d", total)
	}
	if found != 2 {
		t.Errorf("Expected 2 files found, got %d", found)
	}
}

func TestFileAndDirExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !FileExists(path) {
		t.Error("Expected FileExists to be true for a file")
	}
	if FileExists(dir) {
		t.Error("Expected FileExists to be false for a directory")
	}
	if !DirExists(dir) {
		t.Error("Expected DirExists to be true for a directory")
	}
	if DirExists(path) {
		t.Error("Expected DirExists to be false for a file")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"train/0001", "train_0001"},
		{"a:b*c", "a_b_c"},
		{" spaced. ", "spaced"},
	}

	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 * 1024 * 1024, "3.0 MB"},
	}

	for _, tt := range tests {
		if got := FormatFileSize(tt.size); got != tt.want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}
