package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"life-engine/pkg/cellstate"
)

func TestLibrary(t *testing.T) {
	glider, ok := Get("glider")
	require.True(t, ok)
	assert.Equal(t, 5, glider.Len())
	assert.True(t, glider.IsAlive(cellstate.Point{X: 2, Y: 1}))

	gun, ok := Get("gosper-glider-gun")
	require.True(t, ok)
	assert.Equal(t, 36, gun.Len())
	assert.Equal(t, 36, gun.BoundingBox().Width())
	assert.Equal(t, 9, gun.BoundingBox().Height())

	_, ok = Get("nope")
	assert.False(t, ok)
}

func TestAllIsSortedAndAnchored(t *testing.T) {
	all := All()
	require.Len(t, all, len(Names()))
	for i, p := range all {
		if i > 0 {
			assert.Less(t, all[i-1].Name, p.Name)
		}
		assert.Equal(t, cellstate.Point{}, p.Cells.BoundingBox().Min, p.Name)
	}
}
