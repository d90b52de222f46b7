// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout(t *testing.T) {
	l, err := New(2, 3, 4, 5, 1)
	require.NoError(t, err)
	assert.Equal(t, 6, l.NumTiles())
	assert.Equal(t, 6, l.PaddedHeight())
	assert.Equal(t, 7, l.PaddedWidth())
	assert.Equal(t, 12, l.GridHeight())
	assert.Equal(t, 21, l.GridWidth())

	row, col := l.Tile(4)
	assert.Equal(t, 1, row)
	assert.Equal(t, 1, col)

	gridY, gridX := l.Position(1, 2, 0, 0)
	assert.Equal(t, 7, gridY)
	assert.Equal(t, 15, gridX)
	assert.False(t, l.IsBorder(gridY, gridX))
	assert.True(t, l.IsBorder(6, 15))
	assert.True(t, l.IsBorder(7, 14))
	assert.True(t, l.IsBorder(11, 15))
	assert.True(t, l.IsBorder(7, 20))
	assert.Equal(t, "2x3 tiles of 4x5 (padding 1) -> 12x21", l.String())
}

func TestLayoutNoPadding(t *testing.T) {
	l, err := New(2, 2, 2, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, l.GridHeight())
	assert.Equal(t, 4, l.GridWidth())
	for y := range l.GridHeight() {
		for x := range l.GridWidth() {
			assert.False(t, l.IsBorder(y, x), "(%d, %d) should not be a border", y, x)
		}
	}
	gridY, gridX := l.Position(1, 1, 1, 0)
	assert.Equal(t, 3, gridY)
	assert.Equal(t, 2, gridX)
}

func TestLayoutValidate(t *testing.T) {
	_, err := New(0, 1, 2, 2, 1)
	require.Error(t, err)
	_, err = New(1, -1, 2, 2, 1)
	require.Error(t, err)
	_, err = New(1, 1, -1, 2, 1)
	require.ErrorContains(t, err, "static")
	_, err = New(1, 1, 2, 2, -1)
	require.ErrorContains(t, err, "padding")
	_, err = New(1, 1, 0, 0, 0)
	require.NoError(t, err)
}
