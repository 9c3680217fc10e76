// Package upload accepts resume and job description files. File bytes are
// never read: section content is synthesized as fixed placeholder data, and a
// real document extractor is expected to replace the handlers behind the same
// Spec contract.
package upload

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spigell/cv-coach/internal/resume"
)

// Spec describes what a single upload slot accepts.
type Spec struct {
	// AcceptedTypes is the set of allowed file extensions, dot included.
	AcceptedTypes []string
	// Label names the slot in user-facing messages.
	Label string
}

var (
	ResumeSpec = Spec{
		AcceptedTypes: []string{".pdf", ".doc", ".docx"},
		Label:         "resume",
	}
	JobDescriptionSpec = Spec{
		AcceptedTypes: []string{".pdf", ".doc", ".docx", ".txt"},
		Label:         "job description",
	}
)

// Accept validates the file name against the accepted types and returns the
// path. It never opens the file.
func (s Spec) Accept(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("%s file is required", s.Label)
	}

	ext := strings.ToLower(filepath.Ext(path))
	for _, accepted := range s.AcceptedTypes {
		if ext == accepted {
			return path, nil
		}
	}

	return "", fmt.Errorf("%s file type %q is not supported (accepted: %s)",
		s.Label, ext, strings.Join(s.AcceptedTypes, ", "))
}

// ResumeSections synthesizes the placeholder section list for an accepted
// resume file. One section per detected segment, in document order.
func ResumeSections() *resume.Sections {
	return &resume.Sections{Items: []*resume.Section{
		resume.NewSection(
			"Work Experience",
			"Senior Developer at ABC Tech (2018-present)\n"+
				"• Worked with React and TypeScript to build web applications\n"+
				"• Refactored the codebase and optimized performance\n\n"+
				"Developer at XYZ Solutions (2015-2018)\n"+
				"• Built web applications with JavaScript and jQuery\n"+
				"• Collaborated with the design team on user interfaces",
		),
		resume.NewSection(
			"Education",
			"BSc Computer Science\nABC University (2011-2015)\nGraduated with honors",
		),
		resume.NewSection(
			"Skills",
			"JavaScript, TypeScript, React, Node.js, HTML, CSS, Git, Agile",
		),
	}}
}

// JobDescriptionText returns the placeholder text substituted for an accepted
// job description file.
func JobDescriptionText() string {
	return "Position: Senior Frontend Developer\n\n" +
		"Responsibilities:\n" +
		"• Develop and maintain web applications using React, TypeScript, and GraphQL\n" +
		"• Collaborate with designers and backend developers\n" +
		"• Create reusable UI components\n\n" +
		"Requirements:\n" +
		"• 3+ years of experience with React\n" +
		"• Strong knowledge of JavaScript and TypeScript\n" +
		"• Experience with GraphQL and RESTful APIs\n" +
		"• Experience with version control systems like Git\n" +
		"• Knowledge of Docker is a plus"
}
