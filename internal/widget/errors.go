package widget

import "errors"

var (
	// ErrColorChannel indicates a colour component outside 0-255.
	ErrColorChannel = errors.New("widget: colour channel outside 0-255")

	// ErrAssetNotFound indicates an image asset missing from the asset directory.
	ErrAssetNotFound = errors.New("widget: image asset not found")

	// ErrOptionIndex indicates a dropdown option index out of range.
	ErrOptionIndex = errors.New("widget: option index out of range")
)
