package scene

import "errors"

// ErrInvalidInput indicates a frame of input with a non-finite pointer or
// an unknown event kind. The frame is dropped.
var ErrInvalidInput = errors.New("scene: invalid input")
