// Package format enumerates the textual cell-state formats.
package format

import (
	"path/filepath"
	"strings"
)

// Format identifies a serialization format. Unknown is never a fixed format.
type Format int

const (
	// Unknown is the format of anything that could not be identified.
	Unknown Format = iota
	// Plaintext is the ".cells" format of '.' and 'O' rows.
	Plaintext
	// RunLengthEncoding is the ".rle" format.
	RunLengthEncoding
	// Life105 is the ".lif"/".life" Life 1.05 format.
	Life105
)

var extensions = map[string]Format{
	"cells": Plaintext,
	"rle":   RunLengthEncoding,
	"lif":   Life105,
	"life":  Life105,
}

// FromFileExtension resolves an extension without its leading dot. Matching is
// case-sensitive; the empty string resolves to Unknown.
func FromFileExtension(ext string) Format {
	if f, ok := extensions[ext]; ok {
		return f
	}
	return Unknown
}

// FromFileName resolves the format of a path by its extension.
func FromFileName(name string) Format {
	return FromFileExtension(strings.TrimPrefix(filepath.Ext(name), "."))
}

// FixedFormats lists every concrete format.
func FixedFormats() []Format {
	return []Format{Plaintext, RunLengthEncoding, Life105}
}

// IsFixed reports whether f names a concrete format.
func (f Format) IsFixed() bool {
	return f == Plaintext || f == RunLengthEncoding || f == Life105
}

// Extension returns the preferred file extension, or "" for Unknown.
func (f Format) Extension() string {
	switch f {
	case Plaintext:
		return "cells"
	case RunLengthEncoding:
		return "rle"
	case Life105:
		return "lif"
	default:
		return ""
	}
}

func (f Format) String() string {
	switch f {
	case Plaintext:
		return "Plaintext"
	case RunLengthEncoding:
		return "RunLengthEncoding"
	case Life105:
		return "Life105"
	default:
		return "Unknown"
	}
}
