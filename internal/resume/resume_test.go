package resume

import (
	"os"
	"strings"
	"testing"
)

func TestNewSectionAssignsUniqueIDs(t *testing.T) {
	first := NewSection("Skills", "Go")
	second := NewSection("Skills", "Go")

	if first.ID == "" || second.ID == "" {
		t.Fatalf("expected non-empty ids")
	}

	if first.ID == second.ID {
		t.Fatalf("expected unique ids, got %q twice", first.ID)
	}
}

func TestSectionsByTitle(t *testing.T) {
	sections := &Sections{Items: []*Section{
		{ID: "a", Title: "Skills", Content: "JavaScript, Go"},
		{ID: "b", Title: "Education", Content: "BSc"},
	}}

	content := sections.ByTitle()
	if len(content) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(content))
	}

	if content["Skills"] != "JavaScript, Go" {
		t.Fatalf("unexpected skills content: %q", content["Skills"])
	}
}

func TestSectionsDuplicateTitles(t *testing.T) {
	sections := &Sections{Items: []*Section{
		{ID: "a", Title: "Skills"},
		{ID: "b", Title: "Skills"},
		{ID: "c", Title: "Education"},
		{ID: "d", Title: "Skills"},
	}}

	duplicates := sections.DuplicateTitles()
	if len(duplicates) != 1 || duplicates[0] != "Skills" {
		t.Fatalf("unexpected duplicates: %v", duplicates)
	}
}

func TestSectionsFindByTitle(t *testing.T) {
	sections := &Sections{Items: []*Section{
		{ID: "a", Title: "Skills", Content: "Go"},
	}}

	if found := sections.FindByTitle("Skills"); found == nil || found.ID != "a" {
		t.Fatalf("unexpected result: %+v", found)
	}

	if found := sections.FindByTitle("Missing"); found != nil {
		t.Fatalf("expected nil for missing title, got %+v", found)
	}
}

func TestSectionsDumpToTmpFile(t *testing.T) {
	sections := &Sections{Items: []*Section{
		{ID: "a", Title: "Skills", Content: "Go"},
	}}

	name, err := sections.DumpToTmpFile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer os.Remove(name)

	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("reading dump: %v", err)
	}

	if !strings.Contains(string(data), `"title": "Skills"`) {
		t.Fatalf("dump does not contain section: %s", data)
	}
}
