// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package mosaic

import (
	"slices"

	. "github.com/gomlx/gomlx/pkg/core/graph"
	"github.com/gomlx/gomlx/pkg/core/tensors/images"
	"github.com/gomlx/gomlx/pkg/ml/context"
	"k8s.io/klog/v2"
)

// EmbeddingsGridBuilder configures EmbeddingsToGrid. Create it with EmbeddingsToGrid, set the desired
// parameters, and call Done to get the grid.
type EmbeddingsGridBuilder struct {
	x            *Node
	gridShape    []int
	padding      int
	channelsAxis images.ChannelsAxisConfig
}

// EmbeddingsToGrid prepares the arrangement of a batch of multi-channel feature maps into one mosaic
// per batch element, with one tile per channel.
//
// The default layout of x is `[batch, height, width, channels]` (images.ChannelsLast), and the output is shaped
// `[batch, rows*(height+2*padding), columns*(width+2*padding), 1]`. Channel `r*columns+c` is placed at row r and
// column c of the grid.
//
// The values are not normalized and the dtype is preserved. Borders are filled with zeros.
//
// It returns a builder: set the options and call EmbeddingsGridBuilder.Done.
func EmbeddingsToGrid(x *Node) *EmbeddingsGridBuilder {
	return &EmbeddingsGridBuilder{
		x:            x,
		padding:      DefaultPadding,
		channelsAxis: images.ChannelsLast,
	}
}

// FromContext configures the padding and the grid shape from the context hyperparameters ParamPadding
// and ParamGridShape. Options set afterwards override it.
func (b *EmbeddingsGridBuilder) FromContext(ctx *context.Context) *EmbeddingsGridBuilder {
	b.padding = context.GetParamOr(ctx, ParamPadding, b.padding)
	if gridShape := context.GetParamOr[[]int](ctx, ParamGridShape, nil); gridShape != nil {
		b.gridShape = slices.Clone(gridShape)
	}
	return b
}

// GridShape sets the number of rows and columns of the grid. rows*columns must match the number of channels.
//
// The default is one row per channel and a single column.
func (b *EmbeddingsGridBuilder) GridShape(rows, columns int) *EmbeddingsGridBuilder {
	b.gridShape = []int{rows, columns}
	return b
}

// Padding sets the number of zeros added on each side of the height and width of every tile.
// The default is 1, and 0 disables the borders.
func (b *EmbeddingsGridBuilder) Padding(padding int) *EmbeddingsGridBuilder {
	b.padding = padding
	return b
}

// ChannelsAxis configures where the channels axis is. The default is images.ChannelsLast.
//
// With images.ChannelsFirst, the input is shaped `[batch, channels, height, width]` and the output
// `[batch, 1, gridHeight, gridWidth]`.
func (b *EmbeddingsGridBuilder) ChannelsAxis(config images.ChannelsAxisConfig) *EmbeddingsGridBuilder {
	b.channelsAxis = config
	return b
}

// Done builds the grid. It panics with a *ShapeError if the configuration doesn't fit the input shape.
func (b *EmbeddingsGridBuilder) Done() *Node {
	x := b.x
	l, err := EmbeddingsLayout(x.Shape(), b.channelsAxis, b.gridShape, b.padding)
	if err != nil {
		throw(err)
	}
	klog.V(1).Infof("mosaic.EmbeddingsToGrid(%s): %s", x.Shape(), l)
	batchSize := x.Shape().Dim(0)

	_, heightAxis, widthAxis := EmbeddingsAxes(b.channelsAxis)
	x = padWithZeros(x, l.Padding, heightAxis, widthAxis)

	// To [batch, channels, paddedHeight, paddedWidth].
	if b.channelsAxis != images.ChannelsFirst {
		x = TransposeAllAxes(x, 0, 3, 1, 2)
	}

	// Tiles of each grid row side by side: [batch*rows, paddedHeight, columns, paddedWidth].
	x = Reshape(x, batchSize*l.Rows, l.Columns, l.PaddedHeight(), l.PaddedWidth())
	x = TransposeAllAxes(x, 0, 2, 1, 3)

	if b.channelsAxis == images.ChannelsFirst {
		return Reshape(x, batchSize, 1, l.GridHeight(), l.GridWidth())
	}
	return Reshape(x, batchSize, l.GridHeight(), l.GridWidth(), 1)
}
