// ABOUTME: Tests for MCP tool helpers.
// ABOUTME: Covers normalized catalog search matching.
package mcp

import (
	"testing"

	"github.com/harperreed/lift/internal/resolver"
)

func TestMatchesQuery(t *testing.T) {
	tests := []struct {
		query   string
		name    string
		aliases []string
		want    bool
	}{
		{"", "Bench Press", nil, true},
		{"bench", "Bench Press", nil, true},
		{"dumbbell", "DB Bench Press", nil, true}, // query hits the expanded name
		{"ohp", "Overhead Press", nil, true}, // abbreviation expands before matching
		{"overhead", "Overhead Press", nil, true},
		{"military", "Overhead Press", []string{"military press"}, true},
		{"curl", "Bench Press", nil, false},
	}

	for _, tt := range tests {
		// Handlers normalize the query before matching.
		q := tt.query
		if q != "" {
			q = resolver.Normalize(q)
		}
		if got := matchesQuery(q, tt.name, tt.aliases); got != tt.want {
			t.Errorf("matchesQuery(%q, %q, %v) = %v, want %v", tt.query, tt.name, tt.aliases, got, tt.want)
		}
	}
}
