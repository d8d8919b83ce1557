package domain

import (
	"errors"
	"testing"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"available", StatusAvailable, false},
		{"checked_out", StatusCheckedOut, false},
		{"lost", "", true},
		{"Available", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseStatus(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseStatus(%q) expected error", tt.in)
			}
			var se *InvalidStatusError
			if err != nil && !errors.As(err, &se) {
				t.Errorf("ParseStatus(%q) error = %T, want *InvalidStatusError", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseStatus(%q) unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseStatus(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStatuses(t *testing.T) {
	got := Statuses()
	if len(got) != 2 || got[0] != StatusAvailable || got[1] != StatusCheckedOut {
		t.Errorf("Statuses() = %v", got)
	}
	for _, s := range got {
		if !s.Valid() {
			t.Errorf("%v.Valid() = false", s)
		}
	}
}
