// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package mosaic

import (
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gomlx/backends"
	. "github.com/gomlx/gomlx/pkg/core/graph"
	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/gomlx/gomlx/pkg/core/tensors/images"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
)

// ExecEmbeddingsToGrid builds and executes EmbeddingsToGrid once on the given backend.
//
// embeddings can be a *tensors.Tensor or any multidimensional Go slice accepted by tensors.FromAnyValue
// (e.g. a [][][][]float32), shaped `[batch, height, width, channels]`.
// If gridShape is nil, the default (one row per channel) is used.
//
// The shapes are validated before anything is compiled: invalid shapes are returned as a *ShapeError,
// see IsShapeError.
func ExecEmbeddingsToGrid(backend backends.Backend, embeddings any, gridShape []int, padding int) (*tensors.Tensor, error) {
	input, err := toTensor(embeddings)
	if err != nil {
		return nil, err
	}
	if _, err = EmbeddingsLayout(input.Shape(), images.ChannelsLast, gridShape, padding); err != nil {
		return nil, err
	}
	return execOnce(backend, func(x *Node) *Node {
		b := EmbeddingsToGrid(x).Padding(padding)
		if gridShape != nil {
			b.GridShape(gridShape[0], gridShape[1])
		}
		return b.Done()
	}, input)
}

// MustExecEmbeddingsToGrid is like ExecEmbeddingsToGrid, but panics on error.
func MustExecEmbeddingsToGrid(backend backends.Backend, embeddings any, gridShape []int, padding int) *tensors.Tensor {
	return must.M1(ExecEmbeddingsToGrid(backend, embeddings, gridShape, padding))
}

// ExecFiltersToGrid builds and executes FiltersToGrid once on the given backend.
//
// filters can be a *tensors.Tensor or any multidimensional Go slice accepted by tensors.FromAnyValue,
// shaped `[height, width, inputChannels, outputChannels]`.
//
// The shapes are validated before anything is compiled: invalid shapes are returned as a *ShapeError,
// see IsShapeError.
func ExecFiltersToGrid(backend backends.Backend, filters any, padding int) (*tensors.Tensor, error) {
	input, err := toTensor(filters)
	if err != nil {
		return nil, err
	}
	if _, err = FiltersLayout(input.Shape(), padding); err != nil {
		return nil, err
	}
	return execOnce(backend, func(x *Node) *Node {
		return FiltersToGrid(x).Padding(padding).Done()
	}, input)
}

// MustExecFiltersToGrid is like ExecFiltersToGrid, but panics on error.
func MustExecFiltersToGrid(backend backends.Backend, filters any, padding int) *tensors.Tensor {
	return must.M1(ExecFiltersToGrid(backend, filters, padding))
}

func toTensor(value any) (t *tensors.Tensor, err error) {
	if t, ok := value.(*tensors.Tensor); ok {
		if t == nil {
			return nil, errors.New("mosaic: nil *tensors.Tensor given as input")
		}
		return t, nil
	}
	err = exceptions.TryCatch[error](func() { t = tensors.FromAnyValue(value) })
	if err != nil {
		return nil, errors.WithMessagef(err, "mosaic: can't convert %T to a tensor", value)
	}
	return t, nil
}

// execOnce runs graphFn on input and converts exceptions thrown while building the graph into errors.
func execOnce(backend backends.Backend, graphFn func(x *Node) *Node, input *tensors.Tensor) (output *tensors.Tensor, err error) {
	exception := exceptions.Try(func() {
		output, err = ExecOnce(backend, graphFn, input)
	})
	if exception != nil {
		var ok bool
		err, ok = exception.(error)
		if !ok {
			err = errors.Errorf("%v", exception)
		}
		return nil, err
	}
	return output, err
}
