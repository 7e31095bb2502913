package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseImportFilename(t *testing.T) {
	tests := []struct {
		name      string
		filename  string
		wantName  string
		wantID    string
		expectErr bool
	}{
		{"Simple", "Alice_a123.jpg", "Alice", "a123", false},
		{"DashesBecomeSpaces", "Jan-Novak_ab123.jpg", "Jan Novak", "ab123", false},
		{"UnderscoreInName", "Mary_Jane_mj7.png", "Mary Jane", "mj7", false},
		{"NoUnderscore", "alice.jpg", "", "", true},
		{"EmptyID", "Alice_.jpg", "", "", true},
		{"EmptyName", "_a123.jpg", "", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			name, id, err := parseImportFilename(tc.filename)
			if tc.expectErr {
				if err == nil {
					t.Fatalf("expected error for %q, got name=%q id=%q", tc.filename, name, id)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tc.filename, err)
			}
			if name != tc.wantName || id != tc.wantID {
				t.Errorf("parseImportFilename(%q) = (%q, %q), want (%q, %q)",
					tc.filename, name, id, tc.wantName, tc.wantID)
			}
		})
	}
}

func TestListImportPhotos(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{"Alice_a1.jpg", "Bob_b2.PNG", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, f), []byte("x"), 0o644); err != nil {
			t.Fatalf("failed to write test file: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("failed to create subdirectory: %v", err)
	}

	photos, err := listImportPhotos(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(photos) != 2 {
		t.Fatalf("expected 2 photos, got %d: %v", len(photos), photos)
	}
	if photos[0] != "Alice_a1.jpg" || photos[1] != "Bob_b2.PNG" {
		t.Errorf("unexpected photo list: %v", photos)
	}
}
