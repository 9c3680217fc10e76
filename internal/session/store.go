// Package session holds the durable key-value state shared between the upload
// step and the evaluation/interview workflows. The store is the sole channel
// for handing resume and job description data across workflow boundaries.
package session

import "errors"

// Well-known store keys.
const (
	// KeyResumeSections holds the canonical section list written at upload time.
	KeyResumeSections = "resumeSections"
	// KeyResumeSectionsForEval is the evaluation workflow's scoped copy.
	KeyResumeSectionsForEval = "resumeSectionsForEval"
	// KeyResumeSectionsForInterview is the interview workflow's scoped copy.
	KeyResumeSectionsForInterview = "resumeSectionsForInterview"
	// KeyJobDescription holds the optional job description text.
	KeyJobDescription = "jobDescription"
)

// ErrMissingData is returned when a workflow requires a key that is absent
// from the store. Callers must redirect the user to the upload step instead of
// proceeding with empty data.
var ErrMissingData = errors.New("required session data is missing")

// Store is a durable string-to-string mapping surviving process restarts.
// Values have no expiry and are stored unencrypted.
type Store interface {
	Put(key, value string) error
	Get(key string) (string, bool, error)
	Remove(key string) error
}
