package storage

import "errors"

var (
	// ErrUnsupportedVersion indicates a record written by a newer format.
	ErrUnsupportedVersion = errors.New("storage: unsupported record version")

	// ErrWrongKind indicates a record of another kind in a record file.
	ErrWrongKind = errors.New("storage: wrong record kind")

	// ErrCorrupt indicates a record file that could not be decoded. Records
	// before the damage are still returned.
	ErrCorrupt = errors.New("storage: corrupt record file")

	// ErrNoValues indicates that no slider values have been saved.
	ErrNoValues = errors.New("storage: no saved values")

	// ErrRunNotFound indicates an unknown run id.
	ErrRunNotFound = errors.New("storage: run not found")
)
