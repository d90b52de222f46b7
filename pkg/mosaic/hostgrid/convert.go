// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package hostgrid

import (
	"github.com/gomlx/gomlx/pkg/core/dtypes"
	"github.com/gomlx/gomlx/pkg/core/dtypes/bfloat16"
	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// defaultFloatDType is used for the normalized values of non-float tensors.
const defaultFloatDType = dtypes.Float32

// toFloat64s returns a copy of the tensor values converted to float64.
func toFloat64s(t *tensors.Tensor) ([]float64, error) {
	switch dtype := t.Shape().DType; dtype {
	case dtypes.Float32:
		return readFlat(t, numberToFloat64[float32])
	case dtypes.Float64:
		return readFlat(t, numberToFloat64[float64])
	case dtypes.Float16:
		return readFlat(t, func(v float16.Float16) float64 { return float64(v.Float32()) })
	case dtypes.BFloat16:
		return readFlat(t, func(v bfloat16.BFloat16) float64 { return float64(v.Float32()) })
	case dtypes.Int8:
		return readFlat(t, numberToFloat64[int8])
	case dtypes.Int16:
		return readFlat(t, numberToFloat64[int16])
	case dtypes.Int32:
		return readFlat(t, numberToFloat64[int32])
	case dtypes.Int64:
		return readFlat(t, numberToFloat64[int64])
	case dtypes.Uint8:
		return readFlat(t, numberToFloat64[uint8])
	case dtypes.Uint16:
		return readFlat(t, numberToFloat64[uint16])
	case dtypes.Uint32:
		return readFlat(t, numberToFloat64[uint32])
	case dtypes.Uint64:
		return readFlat(t, numberToFloat64[uint64])
	default:
		return nil, errors.Errorf("dtype %s not supported, only real numbers can be normalized", dtype)
	}
}

// fromFloat64s creates a tensor of the given float dtype from the values.
func fromFloat64s(dtype dtypes.DType, values []float64, dimensions ...int) (*tensors.Tensor, error) {
	switch dtype {
	case dtypes.Float32:
		return tensors.FromFlatDataAndDimensions(convertFlat(values, func(v float64) float32 { return float32(v) }), dimensions...), nil
	case dtypes.Float64:
		return tensors.FromFlatDataAndDimensions(values, dimensions...), nil
	case dtypes.Float16:
		return tensors.FromFlatDataAndDimensions(convertFlat(values, func(v float64) float16.Float16 {
			return float16.Fromfloat32(float32(v))
		}), dimensions...), nil
	case dtypes.BFloat16:
		return tensors.FromFlatDataAndDimensions(convertFlat(values, bfloat16.FromFloat64), dimensions...), nil
	default:
		return nil, errors.Errorf("can't create a tensor of dtype %s from float values", dtype)
	}
}

func numberToFloat64[T dtypes.NumberNotComplex](v T) float64 {
	return float64(v)
}

func readFlat[T dtypes.Supported](t *tensors.Tensor, toFloat64 func(T) float64) ([]float64, error) {
	values := make([]float64, t.Shape().Size())
	err := tensors.ConstFlatData(t, func(flat []T) {
		for i, v := range flat {
			values[i] = toFloat64(v)
		}
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}

func convertFlat[T dtypes.Supported](values []float64, fromFloat64 func(float64) T) []T {
	converted := make([]T, len(values))
	for i, v := range values {
		converted[i] = fromFloat64(v)
	}
	return converted
}
