// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package layout holds the geometry of a mosaic ("contact sheet") grid: a number of equally sized tiles,
// each surrounded by a zero border, arranged in rows and columns of a single 2D image.
//
// It is shared by the graph (github.com/gomlx/mosaic/pkg/mosaic) and host
// (github.com/gomlx/mosaic/pkg/mosaic/hostgrid) implementations, so both agree on output shapes and on where
// each input pixel lands.
package layout

import (
	"fmt"

	"github.com/pkg/errors"
)

// Layout describes a grid of Rows x Columns tiles, each TileHeight x TileWidth pixels, padded
// with Padding zeros on every side.
type Layout struct {
	Rows, Columns         int
	TileHeight, TileWidth int
	Padding               int
}

// New creates a Layout and validates it.
func New(rows, columns, tileHeight, tileWidth, padding int) (Layout, error) {
	l := Layout{Rows: rows, Columns: columns, TileHeight: tileHeight, TileWidth: tileWidth, Padding: padding}
	return l, l.Validate()
}

// Validate returns an error if any of the dimensions is invalid.
// Tiles of size 0 are accepted (the grid will only contain padding), but the number of rows and columns
// must be positive.
func (l Layout) Validate() error {
	if l.Rows <= 0 || l.Columns <= 0 {
		return errors.Errorf("grid shape must be positive, got %d rows and %d columns", l.Rows, l.Columns)
	}
	if l.TileHeight < 0 || l.TileWidth < 0 {
		return errors.Errorf("tile dimensions must be static and non-negative, got %dx%d", l.TileHeight, l.TileWidth)
	}
	if l.Padding < 0 {
		return errors.Errorf("padding must be >= 0, got %d", l.Padding)
	}
	return nil
}

// NumTiles is Rows*Columns.
func (l Layout) NumTiles() int { return l.Rows * l.Columns }

// PaddedHeight is the height of one tile including its border.
func (l Layout) PaddedHeight() int { return l.TileHeight + 2*l.Padding }

// PaddedWidth is the width of one tile including its border.
func (l Layout) PaddedWidth() int { return l.TileWidth + 2*l.Padding }

// GridHeight is the total height of the mosaic.
func (l Layout) GridHeight() int { return l.Rows * l.PaddedHeight() }

// GridWidth is the total width of the mosaic.
func (l Layout) GridWidth() int { return l.Columns * l.PaddedWidth() }

// Tile returns the (row, column) of the tile with the given index, enumerated in row-major order.
func (l Layout) Tile(index int) (row, column int) {
	return index / l.Columns, index % l.Columns
}

// Position returns the mosaic coordinates of the pixel (y, x) of the tile at (row, column).
// The pixel coordinates are relative to the tile interior, that is, excluding the border.
func (l Layout) Position(row, column, y, x int) (gridY, gridX int) {
	gridY = row*l.PaddedHeight() + l.Padding + y
	gridX = column*l.PaddedWidth() + l.Padding + x
	return
}

// IsBorder returns whether the mosaic coordinates (gridY, gridX) fall on a tile border.
func (l Layout) IsBorder(gridY, gridX int) bool {
	y := gridY % l.PaddedHeight()
	x := gridX % l.PaddedWidth()
	return y < l.Padding || y >= l.Padding+l.TileHeight ||
		x < l.Padding || x >= l.Padding+l.TileWidth
}

// String implements fmt.Stringer.
func (l Layout) String() string {
	return fmt.Sprintf("%dx%d tiles of %dx%d (padding %d) -> %dx%d",
		l.Rows, l.Columns, l.TileHeight, l.TileWidth, l.Padding, l.GridHeight(), l.GridWidth())
}
