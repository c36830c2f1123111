// ABOUTME: Tests for CLI helper functions.
// ABOUTME: Covers text formatting, list splitting, and plan date parsing.
package main

import (
	"testing"
	"time"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"this is a longer string", 10, "this is..."},
		{"abc", 3, "abc"},
		{"abcdef", 2, "ab"},
	}
	for _, tt := range tests {
		if got := truncate(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 5); got != "ab   " {
		t.Errorf("padRight = %q", got)
	}
	if got := padRight("abcdef", 3); got != "abcdef" {
		t.Errorf("padRight should not truncate: %q", got)
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" barbell , bench ", []string{"barbell", "bench"}},
		{"one", []string{"one"}},
		{",,", nil},
		{"", nil},
	}
	for _, tt := range tests {
		got := splitList(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitList(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitList(%q) = %v, want %v", tt.input, got, tt.want)
				break
			}
		}
	}
}

func TestParsePlanDate(t *testing.T) {
	today := time.Now().Format("2006-01-02")
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	if got, err := parsePlanDate("today"); err != nil || got != today {
		t.Errorf("parsePlanDate(today) = %q, %v", got, err)
	}
	if got, err := parsePlanDate("tomorrow"); err != nil || got != tomorrow {
		t.Errorf("parsePlanDate(tomorrow) = %q, %v", got, err)
	}
	if got, err := parsePlanDate("2026-09-15"); err != nil || got != "2026-09-15" {
		t.Errorf("parsePlanDate(2026-09-15) = %q, %v", got, err)
	}
	if _, err := parsePlanDate("next tuesday"); err == nil {
		t.Error("expected error for unparseable date")
	}
	if _, err := parsePlanDate("09/15/2026"); err == nil {
		t.Error("expected error for wrong format")
	}
}
