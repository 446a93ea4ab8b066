package layout

import "strings"

// BlockKind is the structural role of a source line, derived from its leading
// marker. It is recomputed at layout time, never stored with the text.
type BlockKind int

// Block kinds in classification priority order.
const (
	BlockBody BlockKind = iota
	BlockTitle
	BlockSection
	BlockSubsection
	BlockBullet
	BlockBlank
	BlockContact
)

// String returns a short name for the block kind, for logs and test failures.
func (k BlockKind) String() string {
	switch k {
	case BlockTitle:
		return "title"
	case BlockSection:
		return "section"
	case BlockSubsection:
		return "subsection"
	case BlockBullet:
		return "bullet"
	case BlockBlank:
		return "blank"
	case BlockContact:
		return "contact"
	default:
		return "body"
	}
}

// Classify returns the block kind of lines[i]. It is a pure function of the
// line slice and index: the only positional rule is that a body line directly
// following a title line is contact info, which looks back exactly one line.
func Classify(lines []string, i int) BlockKind {
	line := lines[i]
	switch {
	case strings.TrimSpace(line) == "":
		return BlockBlank
	case strings.HasPrefix(line, "# "):
		return BlockTitle
	case strings.HasPrefix(line, "## "):
		return BlockSection
	case strings.HasPrefix(line, "### "):
		return BlockSubsection
	case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
		return BlockBullet
	}
	if i > 0 && strings.HasPrefix(lines[i-1], "# ") {
		return BlockContact
	}
	return BlockBody
}

// Content strips the block marker from a line. Body, contact and blank lines
// pass through unchanged.
func Content(line string, kind BlockKind) string {
	switch kind {
	case BlockTitle:
		return strings.TrimPrefix(line, "# ")
	case BlockSection:
		return strings.TrimPrefix(line, "## ")
	case BlockSubsection:
		return strings.TrimPrefix(line, "### ")
	case BlockBullet:
		if strings.HasPrefix(line, "- ") {
			return strings.TrimPrefix(line, "- ")
		}
		return strings.TrimPrefix(line, "* ")
	default:
		return line
	}
}
