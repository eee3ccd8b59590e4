package serialization

import (
	"fmt"
	"strings"

	"life-engine/internal/core"
	"life-engine/pkg/cellstate"
	"life-engine/pkg/format"
)

const (
	life105Header = "#Life 1.05"
	// Life105LineWidth is the widest body line the encoder writes.
	Life105LineWidth = 80
)

// Life105Serializer handles the Life 1.05 format: a "#Life 1.05" header
// followed by "#P x y" blocks of '.' and '*' rows. Every block carries its
// absolute position, so round trips are exact.
type Life105Serializer struct{}

func (Life105Serializer) Format() format.Format { return format.Life105 }

func (Life105Serializer) RoundTripsExactly() bool { return true }

// Serialize writes s as vertical strips at most Life105LineWidth wide, each
// trimmed to its alive rows and introduced by its own "#P" line.
func (Life105Serializer) Serialize(s cellstate.CellState) []string {
	lines := []string{life105Header, "#N"}
	bounds := s.BoundingBox()
	for sx := bounds.Min.X; sx < bounds.Max.X; sx += Life105LineWidth {
		strip := cellstate.Rect{
			Min: cellstate.Point{X: sx, Y: bounds.Min.Y},
			Max: cellstate.Point{X: min(sx+Life105LineWidth, bounds.Max.X), Y: bounds.Max.Y},
		}
		g := core.Rasterize(s, strip)
		first, last := -1, -1
		for y := range g.H {
			if !g.RowEmpty(y) {
				if first < 0 {
					first = y
				}
				last = y
			}
		}
		if first < 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("#P %d %d", sx, bounds.Min.Y+first))
		for y := first; y <= last; y++ {
			row := g.RowString(y, '*', '.', true)
			if row == "" {
				row = "."
			}
			lines = append(lines, row)
		}
	}
	return lines
}

// Deserialize reads the header, "#" directives and cell blocks. Rows that
// appear before any "#P" line are placed at the origin.
func (Life105Serializer) Deserialize(lines []string) DeserializationResult {
	var c collector

	start := 0
	for start < len(lines) && isBlank(lines[start]) {
		start++
	}
	if start == len(lines) || strings.TrimSpace(lines[start]) != life105Header {
		c.fail(MissingHeader{Line: start + 1, Expected: life105Header})
		return c.failure()
	}

	var cells []cellstate.Point
	var origin cellstate.Point
	row := 0
	inBlock := false

	for i := start + 1; i < len(lines); i++ {
		lineNo := i + 1
		line := strings.TrimRight(lines[i], " \t\r")
		switch {
		case line == "":
			c.warn(UnexpectedBlankLine{Line: lineNo})
			if inBlock {
				row++
			}
		case strings.HasPrefix(line, "#D"), line == "#N":
		case strings.HasPrefix(line, "#R"):
			if rule := strings.TrimSpace(line[2:]); rule != "23/3" {
				c.warn(UnsupportedRule{Line: lineNo, Rule: rule})
			}
		case strings.HasPrefix(line, "#P"):
			p, ok := parseOffset(line[2:])
			if !ok {
				c.warn(InvalidOffset{Line: lineNo, Text: line})
			}
			origin, row, inBlock = p, 0, true
		case strings.HasPrefix(line, "#"):
			c.warn(UnexpectedInput{Line: lineNo, Text: line})
		default:
			x := 0
			for _, r := range line {
				switch r {
				case '*':
					cells = append(cells, cellstate.Point{X: origin.X + x, Y: origin.Y + row})
				case '.':
				default:
					c.warn(UnexpectedCharacter{Character: r, Line: lineNo, Column: x + 1})
				}
				x++
			}
			row++
			inBlock = true
		}
	}
	return c.success(cellstate.FromCells(cells), format.Life105)
}
