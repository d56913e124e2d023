package markup

import "errors"

var (
	// ErrUnsupportedType is returned when a dynamic value has no markup form.
	ErrUnsupportedType = errors.New("markup: unsupported type")

	// ErrInvalidAttributeName is returned when a dynamic attribute set contains
	// a name that would break out of the tag.
	ErrInvalidAttributeName = errors.New("markup: invalid attribute name")
)
