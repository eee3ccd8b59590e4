package serialization

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"life-engine/internal/core"
	"life-engine/pkg/cellstate"
	"life-engine/pkg/format"
)

// RLELineWidth is the column at which encoded bodies are wrapped. Tokens are
// never split across lines.
const RLELineWidth = 70

const standardRule = "B3/S23"

// MaxRunCount is the longest run a decoded token may carry. Longer runs are
// reported as InvalidRunCount and the token is dropped.
const MaxRunCount = 1 << 20

var rleHeader = regexp.MustCompile(`^x\s*=\s*(\d+)\s*,\s*y\s*=\s*(\d+)\s*(?:,\s*rule\s*=\s*(\S*))?\s*$`)

// RLESerializer handles the run-length encoded ".rle" format. The position of
// the pattern is kept in a "#R x y" line, so round trips are exact.
type RLESerializer struct{}

func (RLESerializer) Format() format.Format { return format.RunLengthEncoding }

func (RLESerializer) RoundTripsExactly() bool { return true }

// Serialize writes the offset line, the header and the wrapped body.
func (RLESerializer) Serialize(s cellstate.CellState) []string {
	bounds := s.BoundingBox()
	lines := []string{
		fmt.Sprintf("#R %d %d", bounds.Min.X, bounds.Min.Y),
		fmt.Sprintf("x = %d, y = %d, rule = %s", bounds.Width(), bounds.Height(), standardRule),
	}
	return append(lines, wrapTokens(rleTokens(s), RLELineWidth)...)
}

func rleTokens(s cellstate.CellState) []string {
	var tokens []string
	if !s.IsEmpty() {
		g := core.Rasterize(s, s.BoundingBox())
		pendingRows := 0
		for y := range g.H {
			if y > 0 {
				pendingRows++
			}
			if g.RowEmpty(y) {
				continue
			}
			if pendingRows > 0 {
				tokens = append(tokens, runToken(pendingRows, '$'))
				pendingRows = 0
			}
			row := g.Row(y)
			end := len(row)
			for end > 0 && row[end-1] == 0 {
				end--
			}
			for x := 0; x < end; {
				run := 1
				for x+run < end && row[x+run] == row[x] {
					run++
				}
				tag := byte('b')
				if row[x] != 0 {
					tag = 'o'
				}
				tokens = append(tokens, runToken(run, tag))
				x += run
			}
		}
	}
	return append(tokens, "!")
}

func runToken(count int, tag byte) string {
	if count == 1 {
		return string(tag)
	}
	return strconv.Itoa(count) + string(tag)
}

func wrapTokens(tokens []string, width int) []string {
	var lines []string
	var cur strings.Builder
	for _, tok := range tokens {
		if cur.Len() > 0 && cur.Len()+len(tok) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		cur.WriteString(tok)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

// Deserialize reads "#" directives, the mandatory "x = , y =" header and the
// token body. The declared dimensions are informational: cells outside them
// are still decoded.
func (RLESerializer) Deserialize(lines []string) DeserializationResult {
	var c collector

	var offset cellstate.Point
	hasOffset := false
	body := -1

headerLoop:
	for i, raw := range lines {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "#"):
			if len(line) < 2 {
				continue
			}
			switch line[1] {
			case 'R', 'P':
				p, ok := parseOffset(line[2:])
				switch {
				case !ok:
					c.warn(InvalidOffset{Line: lineNo, Text: line})
				case hasOffset:
					c.warn(DuplicateOffset{Line: lineNo})
				default:
					offset, hasOffset = p, true
				}
			case 'C', 'c', 'N', 'O', 'r':
			default:
				c.warn(UnexpectedInput{Line: lineNo, Text: line})
			}
		default:
			m := rleHeader.FindStringSubmatch(line)
			if m == nil {
				if strings.HasPrefix(line, "x") {
					c.fail(InvalidHeader{Line: lineNo, Text: line})
				} else {
					c.fail(MissingHeader{Line: lineNo, Expected: "x = <width>, y = <height>"})
				}
				return c.failure()
			}
			if m[3] != "" && !isStandardRule(m[3]) {
				c.warn(UnsupportedRule{Line: lineNo, Rule: m[3]})
			}
			body = i + 1
			break headerLoop
		}
	}
	if body < 0 {
		c.fail(MissingHeader{Line: max(1, len(lines)), Expected: "x = <width>, y = <height>"})
		return c.failure()
	}

	var cells []cellstate.Point
	x, y := 0, 0
	count := 0
	tooLong := false
	var countAt InvalidRunCount
	terminated := false
	lastLine := body

bodyLoop:
	for i := body; i < len(lines); i++ {
		lineNo := i + 1
		lastLine = lineNo
		for col, r := range []rune(lines[i]) {
			switch {
			case r >= '0' && r <= '9':
				if count == 0 && !tooLong {
					countAt = InvalidRunCount{Line: lineNo, Column: col + 1}
				}
				if !tooLong {
					count = count*10 + int(r-'0')
					tooLong = count > MaxRunCount
				}
				continue
			case unicode.IsSpace(r):
				continue
			}
			n, drop := max(count, 1), tooLong
			count, tooLong = 0, false
			if drop {
				c.warn(countAt)
			}
			switch r {
			case 'b':
				if !drop {
					x += n
				}
			case 'o':
				if drop {
					break
				}
				for k := range n {
					cells = append(cells, cellstate.Point{X: x + k, Y: y})
				}
				x += n
			case '$':
				if !drop {
					x = 0
					y += n
				}
			case '!':
				terminated = true
				break bodyLoop
			default:
				c.warn(UnexpectedCharacter{Character: r, Line: lineNo, Column: col + 1})
			}
		}
	}
	if !terminated {
		c.warn(MissingTerminator{Line: lastLine})
	}
	return c.success(cellstate.FromCells(cells).Offset(offset), format.RunLengthEncoding)
}

func parseOffset(s string) (cellstate.Point, bool) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return cellstate.Point{}, false
	}
	x, err := strconv.Atoi(fields[0])
	if err != nil {
		return cellstate.Point{}, false
	}
	y, err := strconv.Atoi(fields[1])
	if err != nil {
		return cellstate.Point{}, false
	}
	return cellstate.Point{X: x, Y: y}, true
}

func isStandardRule(rule string) bool {
	switch strings.ToUpper(rule) {
	case "B3/S23", "23/3", "S23/B3":
		return true
	default:
		return false
	}
}
