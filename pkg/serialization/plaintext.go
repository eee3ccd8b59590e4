package serialization

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"life-engine/internal/core"
	"life-engine/pkg/cellstate"
	"life-engine/pkg/format"
)

// PlaintextSerializer handles the ".cells" format: one row per line, 'O' for
// alive and '.' for dead cells, '!' starting a comment line. The format has
// no notion of position, so a round trip only preserves the pattern up to a
// translation.
type PlaintextSerializer struct{}

func (PlaintextSerializer) Format() format.Format { return format.Plaintext }

func (PlaintextSerializer) RoundTripsExactly() bool { return false }

// Serialize writes the bounding box of s as a rectangle of '.' and 'O'.
func (PlaintextSerializer) Serialize(s cellstate.CellState) []string {
	if s.IsEmpty() {
		return nil
	}
	g := core.Rasterize(s, s.BoundingBox())
	lines := make([]string, g.H)
	for y := range g.H {
		lines[y] = g.RowString(y, 'O', '.', false)
	}
	return lines
}

type plaintextRow struct {
	line int
	text string
}

// Deserialize reads rows of '.' and 'O'. Any other printable character is
// taken as alive and whitespace as dead, each with an UnexpectedCharacter
// warning. Rows narrower than the widest row and blank rows inside the
// pattern are reported but still decoded as dead-padded rows. The width is
// taken over the whole document, so a wide row late in the input makes
// earlier narrower rows short.
func (PlaintextSerializer) Deserialize(lines []string) DeserializationResult {
	var c collector

	var rows []plaintextRow
	for i, line := range lines {
		if strings.HasPrefix(line, "!") {
			continue
		}
		rows = append(rows, plaintextRow{line: i + 1, text: line})
	}
	for len(rows) > 0 && isBlank(rows[len(rows)-1].text) {
		rows = rows[:len(rows)-1]
	}

	width := 0
	for _, row := range rows {
		width = max(width, utf8.RuneCountInString(row.text))
	}

	var cells []cellstate.Point
	for y, row := range rows {
		if isBlank(row.text) {
			c.warn(UnexpectedBlankLine{Line: row.line})
			continue
		}
		x := 0
		for _, r := range row.text {
			switch {
			case r == 'O':
				cells = append(cells, cellstate.Point{X: x, Y: y})
			case r == '.':
			case unicode.IsSpace(r):
				c.warn(UnexpectedCharacter{Character: r, Line: row.line, Column: x + 1})
			default:
				c.warn(UnexpectedCharacter{Character: r, Line: row.line, Column: x + 1})
				cells = append(cells, cellstate.Point{X: x, Y: y})
			}
			x++
		}
		if x < width {
			c.warn(UnexpectedShortLine{Line: row.line})
		}
	}
	return c.success(cellstate.FromCells(cells), format.Plaintext)
}

func isBlank(line string) bool { return strings.TrimSpace(line) == "" }
