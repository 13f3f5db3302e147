package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable_Alignment(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"NAME", "STATUS"},
		[][]string{
			{"Engineering", "active"},
			{"Ops", "archived"},
		},
	))

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.Contains(t, lines[1], "─")

	statusCol := strings.Index(lines[0], "STATUS")
	assert.Equal(t, statusCol, strings.Index(lines[2], "active"), "cells line up under their header")
	assert.Equal(t, statusCol, strings.Index(lines[3], "archived"))
}

func TestRenderTable_Empty(t *testing.T) {
	assert.Equal(t, "", RenderTable(nil, nil))
}
