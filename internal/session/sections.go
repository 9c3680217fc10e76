package session

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/cv-coach/internal/resume"
)

// SaveSections serializes the section list under the given key.
func SaveSections(store Store, key string, sections *resume.Sections) error {
	if sections == nil {
		return fmt.Errorf("sections are required")
	}

	data, err := json.Marshal(sections.Items)
	if err != nil {
		return fmt.Errorf("marshal sections: %w", err)
	}

	return store.Put(key, string(data))
}

// LoadSections reads and decodes the section list stored under the given key.
// An absent key yields ErrMissingData.
func LoadSections(store Store, key string) (*resume.Sections, error) {
	raw, ok, err := store.Get(key)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingData, key)
	}

	var items []any
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("parse %s: %w", key, err)
	}

	var sections []*resume.Section
	if err := mapstructure.Decode(items, &sections); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}

	return &resume.Sections{Items: sections}, nil
}

// CopySections duplicates the section blob stored under src into dst so a
// workflow gets its own scoped copy of the upload data.
func CopySections(store Store, src, dst string) error {
	raw, ok, err := store.Get(src)
	if err != nil {
		return fmt.Errorf("get %s: %w", src, err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return fmt.Errorf("%w: %s", ErrMissingData, src)
	}

	return store.Put(dst, raw)
}

// SaveJobDescription stores the job description text verbatim.
func SaveJobDescription(store Store, text string) error {
	return store.Put(KeyJobDescription, text)
}

// LoadJobDescription returns the stored job description, or an empty string
// when none is present. A missing job description is not an error.
func LoadJobDescription(store Store) (string, error) {
	raw, ok, err := store.Get(KeyJobDescription)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", KeyJobDescription, err)
	}
	if !ok {
		return "", nil
	}

	return raw, nil
}
