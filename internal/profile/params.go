package profile

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	// ErrInvalidParams is returned when a computer name or username cannot be
	// placed into a share path safely.
	ErrInvalidParams = errors.New("invalid copy parameters")

	// ErrUnknownCategory is returned for labels that match no category.
	ErrUnknownCategory = errors.New("unknown category")
)

// forbiddenChars can't appear in a NetBIOS name or a profile folder name.
// Separators and the drive colon are what make traversal possible.
const forbiddenChars = `/\:*?"<>|`

// Params are the three values typed into the form.
type Params struct {
	OldComputer string
	NewComputer string
	Username    string
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (p Params) Trimmed() Params {
	return Params{
		OldComputer: strings.TrimSpace(p.OldComputer),
		NewComputer: strings.TrimSpace(p.NewComputer),
		Username:    strings.TrimSpace(p.Username),
	}
}

// Validate checks every field and reports the first problem found.
func (p Params) Validate() error {
	fields := []struct {
		label string
		value string
	}{
		{"old computer name", p.OldComputer},
		{"new computer name", p.NewComputer},
		{"username", p.Username},
	}
	for _, f := range fields {
		if err := validateSegment(f.value); err != nil {
			return fmt.Errorf("%w: %s %v", ErrInvalidParams, f.label, err)
		}
	}
	return nil
}

func validateSegment(value string) error {
	if value == "" {
		return errors.New("is empty")
	}
	if value == "." || value == ".." {
		return fmt.Errorf("%q is a traversal name", value)
	}
	for _, r := range value {
		if strings.ContainsRune(forbiddenChars, r) {
			return fmt.Errorf("contains %q", r)
		}
		if unicode.IsControl(r) {
			return errors.New("contains a control character")
		}
	}
	if strings.TrimSpace(value) != value {
		return errors.New("has leading or trailing whitespace")
	}
	return nil
}
