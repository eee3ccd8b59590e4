package serialization

import (
	"life-engine/pkg/cellstate"
	"life-engine/pkg/format"
)

// DeserializationResult is either Successful or Unsuccessful.
type DeserializationResult interface {
	deserializationResult()
}

// Successful carries the decoded board and any recoverable problems found on
// the way, in input order.
type Successful struct {
	CellState cellstate.CellState
	Warnings  []Message
	Format    format.Format
}

// Unsuccessful is returned when no board could be inferred from the input.
type Unsuccessful struct {
	Warnings []Message
	Errors   []Message
}

func (Successful) deserializationResult()   {}
func (Unsuccessful) deserializationResult() {}

// WarningsOf returns the warnings of either result kind.
func WarningsOf(r DeserializationResult) []Message {
	switch r := r.(type) {
	case Successful:
		return r.Warnings
	case Unsuccessful:
		return r.Warnings
	default:
		return nil
	}
}
