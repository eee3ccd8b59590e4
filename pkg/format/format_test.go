package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromFileExtension(t *testing.T) {
	cases := map[string]Format{
		"":      Unknown,
		"cells": Plaintext,
		"rle":   RunLengthEncoding,
		"lif":   Life105,
		"life":  Life105,
		"txt":   Unknown,
		"RLE":   Unknown,
		".rle":  Unknown,
	}
	for ext, want := range cases {
		assert.Equal(t, want, FromFileExtension(ext), "extension %q", ext)
	}
}

func TestFromFileName(t *testing.T) {
	assert.Equal(t, RunLengthEncoding, FromFileName("patterns/gosper.rle"))
	assert.Equal(t, Plaintext, FromFileName("glider.cells"))
	assert.Equal(t, Life105, FromFileName("/tmp/x.life"))
	assert.Equal(t, Unknown, FromFileName("README"))
}

func TestFixedFormats(t *testing.T) {
	for _, f := range FixedFormats() {
		assert.True(t, f.IsFixed(), f.String())
		assert.Equal(t, f, FromFileExtension(f.Extension()))
	}
	assert.False(t, Unknown.IsFixed())
	assert.Equal(t, "", Unknown.Extension())
	assert.Equal(t, "Unknown", Unknown.String())
}
