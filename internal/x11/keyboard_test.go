package x11

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeymapHas(t *testing.T) {
	km := make(Keymap, 32)
	km[111/8] |= 1 << (111 % 8)

	assert.True(t, km.Has(111))
	assert.False(t, km.Has(116))
	assert.False(t, Keymap(nil).Has(111))
}
