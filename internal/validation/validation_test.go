package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"plain", "plays/king-lear_TEIsimple_FolgerShakespeare.xml", nil},
		{"compressed", "/data/lear.xml.xz", nil},
		{"unicode", "pièces/Phèdre.xml", nil},
		{"empty", "", ErrEmptyPath},
		{"too long", strings.Repeat("a", MaxPathLength+1), ErrPathTooLong},
		{"null byte", "lear\x00.xml", ErrInvalidCharacter},
		{"newline", "lear\n.xml", ErrInvalidCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidatePath(%q) = %v, want nil", tt.path, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidatePath(%q) = %v, want %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestReadAll(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		limit   int64
		wantErr bool
	}{
		{"under limit", "Nothing", 10, false},
		{"at limit", "Nothing", 7, false},
		{"over limit", "Nothing will come of nothing", 7, true},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadAll(strings.NewReader(tt.input), tt.limit)
			if tt.wantErr {
				if !errors.Is(err, ErrTooLarge) {
					t.Errorf("ReadAll() error = %v, want ErrTooLarge", err)
				}
				return
			}
			if err != nil || string(got) != tt.input {
				t.Errorf("ReadAll() = %q, %v", got, err)
			}
		})
	}
}
