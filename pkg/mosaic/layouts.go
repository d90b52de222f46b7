// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package mosaic

import (
	"github.com/gomlx/gomlx/pkg/core/shapes"
	"github.com/gomlx/gomlx/pkg/core/tensors/images"
	"github.com/gomlx/mosaic/pkg/mosaic/layout"
)

// EmbeddingsAxes returns the axes of the channels, height and width of an embeddings tensor for the given
// channels axis configuration. The batch axis is always 0.
func EmbeddingsAxes(config images.ChannelsAxisConfig) (channelsAxis, heightAxis, widthAxis int) {
	if config == images.ChannelsFirst {
		return 1, 2, 3
	}
	return 3, 1, 2
}

// EmbeddingsLayout validates an embeddings shape and returns the layout of its grid.
//
// If gridShape is nil, the default is one row per channel and a single column. Otherwise, it must hold
// exactly {rows, columns}, with rows*columns equal to the number of channels.
func EmbeddingsLayout(shape shapes.Shape, config images.ChannelsAxisConfig, gridShape []int, padding int) (layout.Layout, error) {
	const op = "EmbeddingsToGrid"
	if err := CheckStatic(op, shape, 4); err != nil {
		return layout.Layout{}, err
	}
	channelsAxis, heightAxis, widthAxis := EmbeddingsAxes(config)
	numChannels := shape.Dim(channelsAxis)
	if numChannels < 1 {
		return layout.Layout{}, NewShapeError(op, shape, "embeddings must have at least one channel")
	}
	rows, columns := numChannels, 1
	if gridShape != nil {
		if len(gridShape) != 2 {
			return layout.Layout{}, NewShapeError(op, shape, "grid shape must be {rows, columns}, got %v", gridShape)
		}
		rows, columns = gridShape[0], gridShape[1]
		if rows <= 0 || columns <= 0 {
			return layout.Layout{}, NewShapeError(op, shape, "grid shape %v must be positive", gridShape)
		}
		if rows*columns != numChannels {
			return layout.Layout{}, NewShapeError(op, shape, "grid shape %dx%d holds %d tiles, but there are %d channels",
				rows, columns, rows*columns, numChannels)
		}
	}
	l := layout.Layout{
		Rows:       rows,
		Columns:    columns,
		TileHeight: shape.Dim(heightAxis),
		TileWidth:  shape.Dim(widthAxis),
		Padding:    padding,
	}
	if err := l.Validate(); err != nil {
		return layout.Layout{}, NewShapeError(op, shape, "%v", err)
	}
	return l, nil
}

// FiltersLayout validates the shape of a convolution kernel, shaped [height, width, inputChannels, outputChannels],
// and returns the layout of its grid: one row per input channel and one column per output channel.
// Only float and integer dtypes are accepted, since the values are normalized.
func FiltersLayout(shape shapes.Shape, padding int) (layout.Layout, error) {
	const op = "FiltersToGrid"
	if err := CheckStatic(op, shape, 4); err != nil {
		return layout.Layout{}, err
	}
	if shape.Size() == 0 {
		return layout.Layout{}, NewShapeError(op, shape, "filters can't be empty")
	}
	if !shape.DType.IsFloat() && !shape.DType.IsInt() {
		return layout.Layout{}, NewShapeError(op, shape, "filters of dtype %s can't be normalized", shape.DType)
	}
	l := layout.Layout{
		Rows:       shape.Dim(2),
		Columns:    shape.Dim(3),
		TileHeight: shape.Dim(0),
		TileWidth:  shape.Dim(1),
		Padding:    padding,
	}
	if err := l.Validate(); err != nil {
		return layout.Layout{}, NewShapeError(op, shape, "%v", err)
	}
	return l, nil
}
