package graphics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTexture_Subtexture(t *testing.T) {
	parent := createTestTexture(64, 32)

	sub := parent.Subtexture(16, 8, 8, 8)

	assert.Same(t, parent.Handle(), sub.Handle())
	assert.Equal(t, Rect{X: 16, Y: 8, W: 8, H: 8}, sub.Rect())
	assert.Equal(t, 8, sub.Width())
	assert.Equal(t, 8, sub.Height())
	assert.Equal(t, Rect{W: 64, H: 32}, parent.Rect(), "parent rect is unchanged")
}

func TestTexture_ReleasedParentInvalidatesSubtexture(t *testing.T) {
	parent := createTestTexture(64, 32)
	sub := parent.Subtexture(0, 0, 8, 8)
	assert.True(t, sub.Valid())

	parent.Handle().Release()

	assert.False(t, parent.Valid())
	assert.False(t, sub.Valid())
}

func TestTexture_ZeroValue(t *testing.T) {
	var tex Texture
	assert.False(t, tex.Valid())
	assert.True(t, tex.Rect().Empty())
}
