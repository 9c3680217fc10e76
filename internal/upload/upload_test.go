package upload

import (
	"strings"
	"testing"
)

func TestSpecAccept(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		spec    Spec
		path    string
		wantErr bool
	}{
		{
			name: "accepts pdf resume",
			spec: ResumeSpec,
			path: "cv.pdf",
		},
		{
			name: "accepts uppercase extension",
			spec: ResumeSpec,
			path: "CV.DOCX",
		},
		{
			name:    "rejects text resume",
			spec:    ResumeSpec,
			path:    "cv.txt",
			wantErr: true,
		},
		{
			name: "accepts text job description",
			spec: JobDescriptionSpec,
			path: "jd.txt",
		},
		{
			name:    "rejects empty path",
			spec:    ResumeSpec,
			path:    "   ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			accepted, err := tt.spec.Accept(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.path)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if accepted != strings.TrimSpace(tt.path) {
				t.Fatalf("unexpected accepted path: %q", accepted)
			}
		})
	}
}

func TestResumeSectionsShape(t *testing.T) {
	t.Parallel()

	sections := ResumeSections()

	if sections.Len() != 3 {
		t.Fatalf("expected 3 sections, got %d", sections.Len())
	}

	titles := sections.Titles()
	expected := []string{"Work Experience", "Education", "Skills"}
	for i, title := range expected {
		if titles[i] != title {
			t.Fatalf("expected title %q at %d, got %q", title, i, titles[i])
		}
	}

	seen := make(map[string]bool)
	for _, section := range sections.Items {
		if section.ID == "" {
			t.Fatalf("section %q has no id", section.Title)
		}
		if seen[section.ID] {
			t.Fatalf("duplicate id %q", section.ID)
		}
		seen[section.ID] = true
		if section.Content == "" {
			t.Fatalf("section %q has no content", section.Title)
		}
	}
}

func TestJobDescriptionText(t *testing.T) {
	t.Parallel()

	text := JobDescriptionText()
	if !strings.Contains(text, "Senior Frontend Developer") {
		t.Fatalf("unexpected job description: %q", text)
	}
}
