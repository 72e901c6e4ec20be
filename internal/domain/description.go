package domain

import (
	"fmt"
	"unicode/utf8"
)

// DefaultDescriptionMaxLength is the default bound on a transfer note, in runes
const DefaultDescriptionMaxLength = 256

// Description is an optional free-text note attached to a transfer or boost.
// The zero value is an empty note.
type Description struct {
	text string
}

// ParseDescription validates a note against a length bound in runes.
// maxRunes <= 0 disables the bound.
func ParseDescription(raw string, maxRunes int) (Description, error) {
	if maxRunes > 0 {
		if n := utf8.RuneCountInString(raw); n > maxRunes {
			return Description{}, fmt.Errorf("%w: %d runes, limit is %d", ErrDescriptionTooLong, n, maxRunes)
		}
	}
	return Description{text: raw}, nil
}

// String returns the note text
func (d Description) String() string {
	return d.text
}

// IsEmpty reports whether the note has no text
func (d Description) IsEmpty() bool {
	return d.text == ""
}
