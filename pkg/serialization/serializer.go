// Package serialization converts cell states to and from the Plaintext, RLE
// and Life 1.05 text formats.
//
// Decoding never fails outright: recoverable problems become warnings on a
// Successful result, and input that cannot describe a board at all yields an
// Unsuccessful result listing the errors. All serializers are stateless and
// safe for concurrent use.
package serialization

import (
	"strings"

	"life-engine/pkg/cellstate"
	"life-engine/pkg/format"
)

// Serializer converts between a CellState and the lines of one text format.
type Serializer interface {
	Format() format.Format
	// RoundTripsExactly reports whether Deserialize(Serialize(s)) restores s
	// exactly, including its absolute position.
	RoundTripsExactly() bool
	Serialize(s cellstate.CellState) []string
	Deserialize(lines []string) DeserializationResult
}

// ForFormat returns the serializer of a fixed format.
func ForFormat(f format.Format) (Serializer, bool) {
	switch f {
	case format.Plaintext:
		return PlaintextSerializer{}, true
	case format.RunLengthEncoding:
		return RLESerializer{}, true
	case format.Life105:
		return Life105Serializer{}, true
	default:
		return nil, false
	}
}

// SplitLines splits text into lines, accepting "\n" and "\r\n". A final line
// terminator does not produce an extra empty line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	return strings.Split(text, "\n")
}

// JoinLines joins lines with "\n" and terminates the last one.
func JoinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// collector accumulates diagnostics in encounter order.
type collector struct {
	warnings []Message
	errors   []Message
}

func (c *collector) warn(m Message) { c.warnings = append(c.warnings, m) }

func (c *collector) fail(m Message) { c.errors = append(c.errors, m) }

func (c *collector) success(s cellstate.CellState, f format.Format) Successful {
	return Successful{CellState: s, Warnings: c.warnings, Format: f}
}

func (c *collector) failure() Unsuccessful {
	return Unsuccessful{Warnings: c.warnings, Errors: c.errors}
}
