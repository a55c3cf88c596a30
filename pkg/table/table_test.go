package table

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	out := Render([]string{"ID", "NAME"}, [][]string{
		{"asset:1", "Solar Farm"},
		{"coin:2"},
	})

	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Solar Farm")
	assert.Contains(t, out, "coin:2")
	assert.True(t, len(strings.Split(out, "\n")) >= 4)
}
