package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec2_Arithmetic(t *testing.T) {
	a := V(3, 4)
	b := V(1, 2)

	assert.Equal(t, V(4, 6), a.Add(b))
	assert.Equal(t, V(2, 2), a.Sub(b))
	assert.Equal(t, V(6, 8), a.Scale(2))
	assert.Equal(t, V(1.5, 2), a.Div(2))
}

func TestVec2_String(t *testing.T) {
	assert.Equal(t, "(1.5, -2)", V(1.5, -2).String())
}
