package list

import "strconv"

// Pixels is a CSS pixel length.
type Pixels int

// DefaultIndentUnit is the spacing added per nesting level.
const DefaultIndentUnit Pixels = 6

func (p Pixels) String() string {
	return strconv.Itoa(int(p)) + "px"
}

// Spacing returns the left padding of a list nested indent levels deep.
func Spacing(indent int) Pixels {
	return SpacingWithUnit(indent, DefaultIndentUnit)
}

// SpacingWithUnit is Spacing with a custom per-level unit. The result grows
// linearly with indent; negative indents count as 0.
func SpacingWithUnit(indent int, unit Pixels) Pixels {
	if unit <= 0 {
		unit = DefaultIndentUnit
	}
	if indent < 0 {
		indent = 0
	}
	return Pixels(indent) * unit
}
