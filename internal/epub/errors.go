package epub

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingContainer indicates META-INF/container.xml is not in the archive.
	ErrMissingContainer = errors.New("META-INF/container.xml not found")

	// ErrMissingRootFile indicates container.xml names no package document.
	ErrMissingRootFile = errors.New("no rootfile in container.xml")

	// ErrMissingOpf indicates the rootfile path does not match an archive entry.
	ErrMissingOpf = errors.New("package document not found")

	// ErrMissingContent indicates neither the spine nor the archive listing
	// yields any content documents.
	ErrMissingContent = errors.New("no content documents found")

	// ErrEmptyText indicates every content document reduced to empty text.
	ErrEmptyText = errors.New("no text extracted")
)

// Stage names the step of the extraction that failed.
type Stage string

const (
	StageArchive   Stage = "archive"
	StageContainer Stage = "container"
	StagePackage   Stage = "package"
	StageSpine     Stage = "spine"
	StageContent   Stage = "content"
)

// Error reports which stage of an extraction failed. The underlying error is
// kept as is, so errors.Is matches both the epub and zipread sentinels.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("epub: %s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func stageError(stage Stage, err error) error {
	return &Error{Stage: stage, Err: err}
}
