package resume

import (
	"encoding/json"
	"os"

	"github.com/google/uuid"
)

// Section is a single segment of an uploaded resume. Sections are created at
// upload time and never mutated afterwards.
type Section struct {
	ID      string `json:"id,omitempty"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
}

type Sections struct {
	Items []*Section
}

// NewSection creates an immutable section with a fresh unique id.
func NewSection(title, content string) *Section {
	return &Section{
		ID:      uuid.NewString(),
		Title:   title,
		Content: content,
	}
}

func (s *Sections) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Items)
}

func (s *Sections) Titles() []string {
	titles := make([]string, 0, s.Len())

	for _, section := range s.Items {
		titles = append(titles, section.Title)
	}

	return titles
}

func (s *Sections) FindByTitle(title string) *Section {
	for _, section := range s.Items {
		if section.Title == title {
			return section
		}
	}

	return nil
}

// ByTitle converts the ordered section list into a title-keyed content map.
// The conversion is lossy when two sections share a title: the later section
// wins. Use DuplicateTitles to detect that case before converting.
func (s *Sections) ByTitle() map[string]string {
	content := make(map[string]string, s.Len())

	for _, section := range s.Items {
		content[section.Title] = section.Content
	}

	return content
}

// DuplicateTitles returns every title that appears more than once, in
// document order.
func (s *Sections) DuplicateTitles() []string {
	seen := make(map[string]int, s.Len())
	var duplicates []string

	for _, section := range s.Items {
		seen[section.Title]++
		if seen[section.Title] == 2 {
			duplicates = append(duplicates, section.Title)
		}
	}

	return duplicates
}

func (s *Sections) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "resume_sections_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return file.Name(), nil
}
