package physics

import "errors"

var (
	// ErrInvalidMetal indicates a metal with an empty name or a
	// non-positive work function.
	ErrInvalidMetal = errors.New("physics: invalid metal")

	// ErrUnknownMetal indicates a lookup of a metal that is not registered.
	ErrUnknownMetal = errors.New("physics: unknown metal")

	// ErrDuplicateMetal indicates a metal name that is already registered.
	ErrDuplicateMetal = errors.New("physics: duplicate metal name")

	// ErrInvalidParams indicates a non-positive wavelength, a negative
	// intensity or a non-finite value.
	ErrInvalidParams = errors.New("physics: invalid light parameters")
)
