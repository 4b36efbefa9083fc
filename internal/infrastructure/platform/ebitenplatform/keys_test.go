package ebitenplatform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/harness/internal/domain/input"
)

func TestKeyTable_CoversEveryKeyCode(t *testing.T) {
	seen := map[input.KeyCode]bool{}
	for _, code := range keyTable {
		assert.False(t, seen[code], "%s mapped twice", code)
		seen[code] = true
	}

	for code := input.KeyA; code < input.KeyCount; code++ {
		assert.True(t, seen[code], "%s has no Ebitengine key", code)
	}
}

func TestButtonTable_CoversEveryAction(t *testing.T) {
	seen := map[int]bool{}
	for a := input.ActionUp; a < input.ActionCount; a++ {
		b := int(buttonTable[a])
		assert.False(t, seen[b], "%s shares a button", a)
		seen[b] = true
	}
}
