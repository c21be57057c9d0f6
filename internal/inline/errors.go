package inline

import "errors"

// Errors returned by the checked Document operations.
var (
	// ErrUnknownAnchor indicates the anchor was never issued or was
	// dropped by SetText or Clear.
	ErrUnknownAnchor = errors.New("unknown anchor")

	// ErrInvertedRange indicates a range whose start is after its end.
	ErrInvertedRange = errors.New("inverted range")

	// ErrRangeOutOfBounds indicates a range extending past the content.
	ErrRangeOutOfBounds = errors.New("range out of bounds")
)
