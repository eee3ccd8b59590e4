package serialization

import "fmt"

// Message is a diagnostic produced while decoding. Line and column numbers are
// 1-based positions in the input.
type Message interface {
	fmt.Stringer
	// LineNumber is the input line the diagnostic refers to.
	LineNumber() int
	message()
}

// UnexpectedCharacter reports a character that is not part of the format.
type UnexpectedCharacter struct {
	Character rune
	Line      int
	Column    int
}

// UnexpectedBlankLine reports an empty line where a row was expected.
type UnexpectedBlankLine struct {
	Line int
}

// UnexpectedShortLine reports a row narrower than the pattern.
type UnexpectedShortLine struct {
	Line int
}

// MissingHeader reports that a mandatory header line was not found.
type MissingHeader struct {
	Line     int
	Expected string
}

// InvalidHeader reports a header line that could not be parsed.
type InvalidHeader struct {
	Line int
	Text string
}

// UnsupportedRule reports a rule other than B3/S23. The pattern is still
// decoded, it will just evolve under the standard rule.
type UnsupportedRule struct {
	Line int
	Rule string
}

// InvalidOffset reports a malformed position directive.
type InvalidOffset struct {
	Line int
	Text string
}

// DuplicateOffset reports a second top-left directive; the first one wins.
type DuplicateOffset struct {
	Line int
}

// MissingTerminator reports a run-length body that ended without '!'.
type MissingTerminator struct {
	Line int
}

// InvalidRunCount reports a run-length count above MaxRunCount. Column is
// the position of its first digit.
type InvalidRunCount struct {
	Line   int
	Column int
}

// UnexpectedInput reports a line that has no meaning at its position.
type UnexpectedInput struct {
	Line int
	Text string
}

func (m UnexpectedCharacter) LineNumber() int { return m.Line }
func (m UnexpectedBlankLine) LineNumber() int { return m.Line }
func (m UnexpectedShortLine) LineNumber() int { return m.Line }
func (m MissingHeader) LineNumber() int       { return m.Line }
func (m InvalidHeader) LineNumber() int       { return m.Line }
func (m UnsupportedRule) LineNumber() int     { return m.Line }
func (m InvalidOffset) LineNumber() int       { return m.Line }
func (m DuplicateOffset) LineNumber() int     { return m.Line }
func (m MissingTerminator) LineNumber() int   { return m.Line }
func (m InvalidRunCount) LineNumber() int     { return m.Line }
func (m UnexpectedInput) LineNumber() int     { return m.Line }

func (UnexpectedCharacter) message() {}
func (UnexpectedBlankLine) message() {}
func (UnexpectedShortLine) message() {}
func (MissingHeader) message()       {}
func (InvalidHeader) message()       {}
func (UnsupportedRule) message()     {}
func (InvalidOffset) message()       {}
func (DuplicateOffset) message()     {}
func (MissingTerminator) message()   {}
func (InvalidRunCount) message()     {}
func (UnexpectedInput) message()     {}

func (m UnexpectedCharacter) String() string {
	return fmt.Sprintf("unexpected character %q at line %d, column %d", m.Character, m.Line, m.Column)
}

func (m UnexpectedBlankLine) String() string {
	return fmt.Sprintf("unexpected blank line at line %d", m.Line)
}

func (m UnexpectedShortLine) String() string {
	return fmt.Sprintf("line shorter than expected at line %d", m.Line)
}

func (m MissingHeader) String() string {
	return fmt.Sprintf("missing %s header at line %d", m.Expected, m.Line)
}

func (m InvalidHeader) String() string {
	return fmt.Sprintf("invalid header %q at line %d", m.Text, m.Line)
}

func (m UnsupportedRule) String() string {
	return fmt.Sprintf("unsupported rule %q at line %d", m.Rule, m.Line)
}

func (m InvalidOffset) String() string {
	return fmt.Sprintf("invalid offset %q at line %d", m.Text, m.Line)
}

func (m DuplicateOffset) String() string {
	return fmt.Sprintf("duplicate offset at line %d", m.Line)
}

func (m MissingTerminator) String() string {
	return fmt.Sprintf("missing '!' terminator after line %d", m.Line)
}

func (m InvalidRunCount) String() string {
	return fmt.Sprintf("run count too large at line %d, column %d", m.Line, m.Column)
}

func (m UnexpectedInput) String() string {
	return fmt.Sprintf("unexpected input %q at line %d", m.Text, m.Line)
}
