package resume

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ziadkadry99/interview-assistant/internal/api"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		contentType string
		want        bool
	}{
		{MIMEPDF, true},
		{MIMEDOCX, true},
		{"application/pdf; charset=binary", true},
		{"text/plain", false},
		{"text/plain; charset=utf-8", false},
		{"application/msword", false},
		{"application/zip", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := Allowed(tt.contentType); got != tt.want {
			t.Errorf("Allowed(%q) = %v, want %v", tt.contentType, got, tt.want)
		}
	}
}

func TestDetectType(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"cv.pdf", "", MIMEPDF},
		{"CV.PDF", "", MIMEPDF},
		{"cv.docx", "", MIMEDOCX},
		{"notes", "plain words", "text/plain; charset=utf-8"},
	}
	for _, tt := range tests {
		if got := DetectType(tt.name, []byte(tt.data)); got != tt.want {
			t.Errorf("DetectType(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestInspectRejectsGarbage(t *testing.T) {
	for _, ct := range []string{MIMEPDF, MIMEDOCX} {
		err := Inspect(api.File{Name: "x", ContentType: ct, Data: []byte("definitely not a document")})
		if !errors.Is(err, ErrUnreadable) {
			t.Errorf("%s: expected ErrUnreadable, got %v", ct, err)
		}
	}
}

func TestLoadKeepsDisallowedTypes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if Allowed(f.ContentType) {
		t.Errorf("text file detected as %q", f.ContentType)
	}
	if f.Name != "notes.txt" || string(f.Data) != "hello" {
		t.Errorf("unexpected file %+v", f)
	}
}

func TestLoadRejectsCorruptPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.pdf")
	if err := os.WriteFile(path, []byte("not a pdf"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrUnreadable) {
		t.Errorf("expected ErrUnreadable, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Error("expected error for missing file")
	}
}
