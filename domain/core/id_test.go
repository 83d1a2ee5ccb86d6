package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 1000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestParseDatasetID tests dataset ID parsing
func TestParseDatasetID(t *testing.T) {
	valid := NewDatasetID().String()

	tests := []struct {
		name     string
		input    string
		hasError bool
	}{
		{"valid uuid", valid, false},
		{"empty", "", true},
		{"whitespace", "   ", true},
		{"not a uuid", "station-42", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseDatasetID(tt.input)
			if tt.hasError {
				if err == nil {
					t.Errorf("expected error for input %q, got id %s", tt.input, id)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error for input %q: %v", tt.input, err)
			}
			if id.String() != tt.input {
				t.Errorf("expected %q, got %q", tt.input, id)
			}
		})
	}
}
