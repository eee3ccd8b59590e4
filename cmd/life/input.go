package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"life-engine/internal/patterns"
	"life-engine/pkg/cellstate"
	"life-engine/pkg/format"
	"life-engine/pkg/serialization"
)

const patternPrefix = "pattern:"

// parseFormat resolves a --format or --to value given as an extension.
// The empty string means Unknown.
func parseFormat(name string) (format.Format, error) {
	if name == "" {
		return format.Unknown, nil
	}
	f := format.FromFileExtension(strings.TrimPrefix(name, "."))
	if !f.IsFixed() {
		return format.Unknown, fmt.Errorf("unknown format %q (want cells, rle, lif or life)", name)
	}
	return f, nil
}

// loadCellState reads a board from a file, from stdin for "-", or from the
// pattern library for "pattern:<name>". Format problems the decoder could
// recover from are logged as warnings.
func loadCellState(source string, f format.Format, stdin io.Reader) (cellstate.CellState, error) {
	if name, ok := strings.CutPrefix(source, patternPrefix); ok {
		s, found := patterns.Get(name)
		if !found {
			return cellstate.CellState{}, fmt.Errorf("unknown pattern %q (have %s)", name, strings.Join(patterns.Names(), ", "))
		}
		return s, nil
	}

	var (
		data []byte
		err  error
	)
	if source == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(source)
		if f == format.Unknown {
			f = format.FromFileName(source)
		}
	}
	if err != nil {
		return cellstate.CellState{}, fmt.Errorf("read %s: %w", source, err)
	}

	switch r := serialization.DeserializeFlexible(serialization.SplitLines(string(data)), f).(type) {
	case serialization.Successful:
		for _, w := range r.Warnings {
			slog.Warn("input warning",
				slog.String("source", source),
				slog.String("format", r.Format.String()),
				slog.String("warning", w.String()))
		}
		return r.CellState, nil
	case serialization.Unsuccessful:
		errs := make([]error, 0, len(r.Errors))
		for _, m := range r.Errors {
			errs = append(errs, errors.New(m.String()))
		}
		return cellstate.CellState{}, fmt.Errorf("decode %s: %w", source, errors.Join(errs...))
	default:
		return cellstate.CellState{}, fmt.Errorf("decode %s: unexpected result %T", source, r)
	}
}

// writeCellState serializes s in format f to w.
func writeCellState(w io.Writer, s cellstate.CellState, f format.Format) error {
	serializer, ok := serialization.ForFormat(f)
	if !ok {
		return fmt.Errorf("cannot write format %s", f)
	}
	_, err := io.WriteString(w, serialization.JoinLines(serializer.Serialize(s)))
	return err
}
