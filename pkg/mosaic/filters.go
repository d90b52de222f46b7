// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package mosaic

import (
	"github.com/gomlx/gomlx/pkg/core/dtypes"
	. "github.com/gomlx/gomlx/pkg/core/graph"
	"github.com/gomlx/gomlx/pkg/ml/context"
	"k8s.io/klog/v2"
)

// FiltersGridBuilder configures FiltersToGrid. Create it with FiltersToGrid, set the desired
// parameters, and call Done to get the grid.
type FiltersGridBuilder struct {
	filters *Node
	padding int
}

// FiltersToGrid prepares the arrangement of a convolution kernel, shaped
// `[height, width, inputChannels, outputChannels]`, into a single mosaic shaped
// `[1, inputChannels*(height+2*padding), outputChannels*(width+2*padding), 1]`.
//
// The filter connecting input channel i to output channel j is placed at row i and column j of the grid.
//
// Values are min-max normalized to [0, 1] over the whole kernel. If all values are the same (so max == min),
// they are all normalized to 0. Integer kernels are converted to Float32 first, and kernels of
// any other non-float dtype (e.g. Bool) are rejected with a *ShapeError.
//
// Borders are filled with zeros, which can't be told apart from weights equal to the minimum.
//
// It returns a builder: set the options and call FiltersGridBuilder.Done.
func FiltersToGrid(filters *Node) *FiltersGridBuilder {
	return &FiltersGridBuilder{
		filters: filters,
		padding: DefaultPadding,
	}
}

// FromContext configures the padding from the context hyperparameter ParamPadding.
func (b *FiltersGridBuilder) FromContext(ctx *context.Context) *FiltersGridBuilder {
	b.padding = context.GetParamOr(ctx, ParamPadding, b.padding)
	return b
}

// Padding sets the number of zeros added on each side of the height and width of every filter.
// The default is 1.
func (b *FiltersGridBuilder) Padding(padding int) *FiltersGridBuilder {
	b.padding = padding
	return b
}

// Done builds the grid. It panics with a *ShapeError if the filters shape is not static or is invalid.
func (b *FiltersGridBuilder) Done() *Node {
	x := b.filters
	l, err := FiltersLayout(x.Shape(), b.padding)
	if err != nil {
		throw(err)
	}
	klog.V(1).Infof("mosaic.FiltersToGrid(%s): %s", x.Shape(), l)

	x = NormalizeMinMax(x)
	x = padWithZeros(x, l.Padding, 0, 1)

	// To [inputChannels, paddedHeight, outputChannels, paddedWidth].
	x = TransposeAllAxes(x, 2, 0, 3, 1)
	return Reshape(x, 1, l.GridHeight(), l.GridWidth(), 1)
}

// NormalizeMinMax scales x so its minimum becomes 0 and its maximum becomes 1.
//
// If x is constant, the result is all zeros. Integer values are converted to Float32.
func NormalizeMinMax(x *Node) *Node {
	if !x.DType().IsFloat() {
		x = ConvertDType(x, dtypes.Float32)
	}
	// Halved values so xMax-xMin doesn't overflow when the range spans most of the dtype.
	x = Mul(x, Scalar(x.Graph(), x.DType(), 0.5))
	xMin := ReduceAllMin(x)
	xMax := ReduceAllMax(x)
	span := Sub(xMax, xMin)
	zero := ScalarZero(x.Graph(), x.DType())
	span = Where(Equal(span, zero), OnesLike(span), span)
	return Div(Sub(x, xMin), span)
}
