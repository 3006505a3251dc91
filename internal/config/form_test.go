package config

import (
	"strings"
	"testing"
)

func TestDefaultFormFieldsEntries(t *testing.T) {
	entries := DefaultFormFields().Entries()
	if len(entries) != 13 {
		t.Fatalf("expected 13 entries, got %d", len(entries))
	}
	seen := map[string]bool{}
	for _, e := range entries {
		if e.Name == "" {
			t.Fatalf("entry with empty name: %+v", e)
		}
		if !strings.HasPrefix(e.ID, "entry.") {
			t.Fatalf("entry %q has malformed id %q", e.Name, e.ID)
		}
		if seen[e.ID] {
			t.Fatalf("duplicate entry id %q", e.ID)
		}
		seen[e.ID] = true
	}
}

func TestLoadProfile(t *testing.T) {
	t.Setenv("BOOKING_NAME", " Somchai Jaidee ")
	t.Setenv("BOOKING_PHONE", "0812345678")
	t.Setenv("BOOKING_EMAIL", "somchai@example.com")
	t.Setenv("BOOKING_TYPE_OF_CLIENT", "Student")

	p := LoadProfile()
	if p.Name != "Somchai Jaidee" {
		t.Fatalf("name not trimmed: %q", p.Name)
	}
	if p.Phone != "0812345678" || p.Email != "somchai@example.com" || p.TypeOfClient != "Student" {
		t.Fatalf("unexpected profile %+v", p)
	}
}
