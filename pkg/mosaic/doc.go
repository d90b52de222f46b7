// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package mosaic arranges convolution filters and embeddings (activation maps) into a single padded
// 2D grid, a "contact sheet", so they can be inspected visually.
//
// It offers two graph building functions, both configured with a builder and closed with Done:
//
//   - EmbeddingsToGrid: a batch of multi-channel feature maps shaped [batch, height, width, channels] becomes
//     [batch, rows*(height+2*padding), columns*(width+2*padding), 1], one tile per channel.
//   - FiltersToGrid: a convolution kernel shaped [height, width, inputChannels, outputChannels] is min-max
//     normalized to [0, 1] and becomes [1, inputChannels*(height+2*padding), outputChannels*(width+2*padding), 1].
//
// Example:
//
//	grid := mosaic.EmbeddingsToGrid(activations).GridShape(4, 8).Padding(1).Done()
//	kernelGrid := mosaic.FiltersToGrid(kernel).FromContext(ctx).Done()
//
// Invalid shapes panic with a *ShapeError at graph building time, following the usual GoMLX convention.
// ExecEmbeddingsToGrid and ExecFiltersToGrid build and execute the graph once, returning the error instead.
//
// The package github.com/gomlx/mosaic/pkg/mosaic/hostgrid provides the same transforms on local tensors,
// without a backend.
package mosaic

const (
	// ParamPadding is the context hyperparameter with the number of zeros padded on each side of every tile.
	// The default is 1.
	ParamPadding = "mosaic_padding"

	// ParamGridShape is the context hyperparameter with the []int{rows, columns} layout of the
	// embeddings grid. If not set, the default is one row per channel and a single column.
	ParamGridShape = "mosaic_grid_shape"

	// DefaultPadding used if not configured otherwise.
	DefaultPadding = 1
)
