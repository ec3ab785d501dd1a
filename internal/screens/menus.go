package screens

import "pccopy/internal/profile"

// Form labels in display order
var (
	// FieldLabels are the three text inputs, top to bottom
	FieldLabels = []string{
		"Old PC Name",
		"New PC Name",
		"Username",
	}

	// ActionChoices are the two buttons, left to right
	ActionChoices = []string{
		"Copy Selected",
		"Copy All",
	}
)

// Action identifies a form button.
type Action int

const (
	ActionCopySelected Action = iota
	ActionCopyAll
)

func (a Action) String() string {
	if a >= 0 && int(a) < len(ActionChoices) {
		return ActionChoices[a]
	}
	return "Unknown"
}

// GridColumns is the width of the checkbox grid.
const GridColumns = 2

// Focus is the index of the focused control. Fields come first, then the
// checkboxes in category order, then the buttons.
type Focus int

var (
	numFields   = len(FieldLabels)
	numBoxes    = len(profile.Categories())
	numButtons  = len(ActionChoices)
	numControls = numFields + numBoxes + numButtons
)

// FieldFocus returns the focus position of text input i.
func FieldFocus(i int) Focus { return Focus(i) }

// CategoryFocus returns the focus position of the checkbox for c.
func CategoryFocus(c profile.Category) Focus { return Focus(numFields + int(c)) }

// ButtonFocus returns the focus position of button a.
func ButtonFocus(a Action) Focus { return Focus(numFields + numBoxes + int(a)) }

// Field returns the text input index and whether f is on a field.
func (f Focus) Field() (int, bool) {
	if f >= 0 && int(f) < numFields {
		return int(f), true
	}
	return 0, false
}

// Category returns the checkbox category and whether f is on a checkbox.
func (f Focus) Category() (profile.Category, bool) {
	i := int(f) - numFields
	if i >= 0 && i < numBoxes {
		return profile.Categories()[i], true
	}
	return 0, false
}

// Action returns the button and whether f is on a button.
func (f Focus) Action() (Action, bool) {
	i := int(f) - numFields - numBoxes
	if i >= 0 && i < numButtons {
		return Action(i), true
	}
	return 0, false
}

// Next moves forward in tab order, wrapping at the end.
func (f Focus) Next() Focus { return Focus((int(f) + 1) % numControls) }

// Prev moves backward in tab order, wrapping at the start.
func (f Focus) Prev() Focus { return Focus((int(f) - 1 + numControls) % numControls) }

// Down moves one visual row down. The checkbox grid steps by a whole row and
// its last row drops onto the button below it.
func (f Focus) Down() Focus {
	if i, ok := f.Field(); ok {
		return Focus(i + 1)
	}
	if c, ok := f.Category(); ok {
		i := int(c)
		if i+GridColumns < numBoxes {
			return CategoryFocus(profile.Category(i + GridColumns))
		}
		return ButtonFocus(Action(min(i%GridColumns, numButtons-1)))
	}
	return f
}

// Up moves one visual row up.
func (f Focus) Up() Focus {
	if i, ok := f.Field(); ok {
		return Focus(max(i-1, 0))
	}
	if c, ok := f.Category(); ok {
		i := int(c)
		if i-GridColumns >= 0 {
			return CategoryFocus(profile.Category(i - GridColumns))
		}
		return FieldFocus(numFields - 1)
	}
	if a, ok := f.Action(); ok {
		lastRow := (numBoxes - 1) / GridColumns * GridColumns
		return CategoryFocus(profile.Category(min(lastRow+int(a), numBoxes-1)))
	}
	return f
}

// Right moves to the next column of the checkbox grid or the next button.
func (f Focus) Right() Focus {
	if c, ok := f.Category(); ok && int(c)%GridColumns < GridColumns-1 && int(c)+1 < numBoxes {
		return CategoryFocus(c + 1)
	}
	if a, ok := f.Action(); ok && int(a) < numButtons-1 {
		return ButtonFocus(a + 1)
	}
	return f
}

// Left moves to the previous column of the checkbox grid or the previous button.
func (f Focus) Left() Focus {
	if c, ok := f.Category(); ok && int(c)%GridColumns > 0 {
		return CategoryFocus(c - 1)
	}
	if a, ok := f.Action(); ok && a > 0 {
		return ButtonFocus(a - 1)
	}
	return f
}
