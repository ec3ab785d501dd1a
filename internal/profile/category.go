// Package profile describes what gets migrated between two computers.
//
// It owns the fixed category table (which folders and files make up
// "Desktop", "Outlook", "Apollo" and so on), the copy parameters entered by
// the technician, and the Resolver that turns both into concrete share paths.
// Nothing in this package touches the filesystem.
package profile

import (
	"fmt"
	"strings"
)

// Category is one named group of profile folders or files.
type Category int

// Categories in their fixed declaration order. Triggers always dispatch in this order.
const (
	Desktop Category = iota
	Favourites
	Documents
	Outlook
	Pictures
	Apollo
)

// allCategories mirrors the declaration order above
var allCategories = []Category{Desktop, Favourites, Documents, Outlook, Pictures, Apollo}

// Categories returns every category in declaration order.
// The returned slice is a copy and may be modified by the caller.
func Categories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// String returns the display label shown on the form and in console output.
func (c Category) String() string {
	switch c {
	case Desktop:
		return "Desktop"
	case Favourites:
		return "Favourites"
	case Documents:
		return "Documents"
	case Outlook:
		return "Outlook"
	case Pictures:
		return "Pictures"
	case Apollo:
		return "Apollo"
	default:
		return "Unknown"
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return c >= Desktop && c <= Apollo
}

// ParseCategory maps a label back to its Category. Matching is
// case-insensitive and "Favorites" is accepted for Favourites.
func ParseCategory(name string) (Category, error) {
	label := strings.ToLower(strings.TrimSpace(name))
	if label == "favorites" {
		return Favourites, nil
	}
	for _, c := range allCategories {
		if strings.ToLower(c.String()) == label {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// ParseCategories parses every name and keeps the result in declaration order
// without duplicates.
func ParseCategories(names []string) (Selection, error) {
	sel := NewSelection()
	for _, name := range names {
		c, err := ParseCategory(name)
		if err != nil {
			return nil, err
		}
		sel.Set(c, true)
	}
	return sel, nil
}

// Selection holds one toggle per category.
type Selection map[Category]bool

// NewSelection returns a selection with every toggle off.
func NewSelection() Selection {
	return make(Selection, len(allCategories))
}

// Set changes the toggle for c.
func (s Selection) Set(c Category, on bool) {
	s[c] = on
}

// Toggle flips the toggle for c and returns the new state.
func (s Selection) Toggle(c Category) bool {
	s[c] = !s[c]
	return s[c]
}

// Has reports whether c is toggled on.
func (s Selection) Has(c Category) bool {
	return s[c]
}

// Ordered returns the toggled-on categories in declaration order.
func (s Selection) Ordered() []Category {
	var out []Category
	for _, c := range allCategories {
		if s[c] {
			out = append(out, c)
		}
	}
	return out
}

// Len returns how many categories are toggled on.
func (s Selection) Len() int {
	n := 0
	for _, on := range s {
		if on {
			n++
		}
	}
	return n
}
