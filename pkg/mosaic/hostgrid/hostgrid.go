// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package hostgrid implements the mosaic transforms directly on local tensors, in pure Go, without a backend.
//
// The results are the same as those of the graph versions in package github.com/gomlx/mosaic/pkg/mosaic, and the
// same *mosaic.ShapeError is returned for invalid shapes. It's convenient for renderers that already hold
// the tensors in host memory.
package hostgrid

import (
	"github.com/gomlx/gomlx/pkg/core/shapes"
	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/gomlx/gomlx/pkg/core/tensors/images"
	"github.com/gomlx/mosaic/pkg/mosaic"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// EmbeddingsToGrid arranges a batch of multi-channel feature maps into one mosaic per batch element,
// with the same semantics as mosaic.EmbeddingsToGrid.
//
// With images.ChannelsLast the input is shaped `[batch, height, width, channels]` and the output
// `[batch, gridHeight, gridWidth, 1]`. With images.ChannelsFirst they are `[batch, channels, height, width]` and
// `[batch, 1, gridHeight, gridWidth]`.
//
// If gridShape is nil, there is one row per channel and a single column.
// Any dtype is accepted, and values are copied unchanged.
func EmbeddingsToGrid(embeddings *tensors.Tensor, config images.ChannelsAxisConfig, gridShape []int, padding int) (*tensors.Tensor, error) {
	shape := embeddings.Shape()
	l, err := mosaic.EmbeddingsLayout(shape, config, gridShape, padding)
	if err != nil {
		return nil, err
	}
	batchSize := shape.Dim(0)
	outputDims := []int{batchSize, l.GridHeight(), l.GridWidth(), 1}
	if config == images.ChannelsFirst {
		outputDims = []int{batchSize, 1, l.GridHeight(), l.GridWidth()}
	}
	output := tensors.FromShape(shapes.Make(shape.DType, outputDims...))
	if output.Shape().Size() == 0 {
		return output, nil
	}
	klog.V(2).Infof("hostgrid.EmbeddingsToGrid(%s): %s", shape, l)

	elementSize := shape.DType.Size()
	strides := rowMajorStrides(shape.Dimensions)
	channelsAxis, heightAxis, widthAxis := mosaic.EmbeddingsAxes(config)
	gridSize := l.GridHeight() * l.GridWidth()
	numChannels := shape.Dim(channelsAxis)

	if shape.Size() == 0 {
		// Only padding.
		if err = output.MutableBytes(func(dst []byte) { clear(dst) }); err != nil {
			return nil, errors.WithMessagef(err, "hostgrid.EmbeddingsToGrid(%s)", shape)
		}
		return output, nil
	}

	var copyErr error
	err = embeddings.ConstBytes(func(src []byte) {
		copyErr = output.MutableBytes(func(dst []byte) {
			clear(dst)
			for batchIdx := range batchSize {
				for channel := range numChannels {
					row, column := l.Tile(channel)
					for y := range l.TileHeight {
						for x := range l.TileWidth {
							srcIdx := batchIdx*strides[0] + channel*strides[channelsAxis] +
								y*strides[heightAxis] + x*strides[widthAxis]
							gridY, gridX := l.Position(row, column, y, x)
							dstIdx := batchIdx*gridSize + gridY*l.GridWidth() + gridX
							copy(dst[dstIdx*elementSize:(dstIdx+1)*elementSize],
								src[srcIdx*elementSize:(srcIdx+1)*elementSize])
						}
					}
				}
			}
		})
	})
	if err == nil {
		err = copyErr
	}
	if err != nil {
		return nil, errors.WithMessagef(err, "hostgrid.EmbeddingsToGrid(%s)", shape)
	}
	return output, nil
}

// FiltersToGrid arranges a convolution kernel shaped `[height, width, inputChannels, outputChannels]` into a
// single mosaic shaped `[1, inputChannels*(height+2*padding), outputChannels*(width+2*padding), 1]`, with the
// same semantics as mosaic.FiltersToGrid.
//
// Values are min-max normalized to [0, 1], and a constant kernel becomes all zeros.
// Float kernels keep their dtype, integer kernels are converted to Float32.
func FiltersToGrid(filters *tensors.Tensor, padding int) (*tensors.Tensor, error) {
	shape := filters.Shape()
	l, err := mosaic.FiltersLayout(shape, padding)
	if err != nil {
		return nil, err
	}
	values, err := toFloat64s(filters)
	if err != nil {
		return nil, errors.WithMessagef(err, "hostgrid.FiltersToGrid(%s)", shape)
	}
	klog.V(2).Infof("hostgrid.FiltersToGrid(%s): %s", shape, l)
	normalizeMinMax(values)

	numInputs, numOutputs := shape.Dim(2), shape.Dim(3)
	grid := make([]float64, l.GridHeight()*l.GridWidth())
	srcIdx := 0
	for y := range l.TileHeight {
		for x := range l.TileWidth {
			for input := range numInputs {
				for output := range numOutputs {
					gridY, gridX := l.Position(input, output, y, x)
					grid[gridY*l.GridWidth()+gridX] = values[srcIdx]
					srcIdx++
				}
			}
		}
	}

	dtype := shape.DType
	if !dtype.IsFloat() {
		dtype = defaultFloatDType
	}
	return fromFloat64s(dtype, grid, 1, l.GridHeight(), l.GridWidth(), 1)
}

// normalizeMinMax scales values in place to [0, 1]. Constant values become 0.
func normalizeMinMax(values []float64) {
	if len(values) == 0 {
		return
	}
	// Halved so maxV-minV doesn't overflow for ranges spanning most of float64.
	for i := range values {
		values[i] *= 0.5
	}
	minV, maxV := values[0], values[0]
	for _, v := range values[1:] {
		minV = min(minV, v)
		maxV = max(maxV, v)
	}
	span := maxV - minV
	if span == 0 {
		span = 1
	}
	for i, v := range values {
		values[i] = (v - minV) / span
	}
}

func rowMajorStrides(dims []int) []int {
	strides := make([]int, len(dims))
	stride := 1
	for axis := len(dims) - 1; axis >= 0; axis-- {
		strides[axis] = stride
		stride *= dims[axis]
	}
	return strides
}
