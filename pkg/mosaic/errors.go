// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package mosaic

import (
	"fmt"

	"github.com/gomlx/gomlx/pkg/core/shapes"
	"github.com/pkg/errors"
)

// ShapeError is returned (or thrown, at graph building time) when an input shape, grid shape or
// padding can't be arranged into a mosaic.
type ShapeError struct {
	// Op is the transform that failed, e.g. "EmbeddingsToGrid".
	Op string

	// Shape of the offending input.
	Shape shapes.Shape

	// Reason describes what is wrong.
	Reason string
}

// Error implements error.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s(%s): %s", e.Op, e.Shape, e.Reason)
}

// NewShapeError creates a *ShapeError with a formatted reason.
func NewShapeError(op string, shape shapes.Shape, format string, args ...any) *ShapeError {
	return &ShapeError{Op: op, Shape: shape, Reason: fmt.Sprintf(format, args...)}
}

// IsShapeError returns whether err is or wraps a *ShapeError.
func IsShapeError(err error) bool {
	var shapeErr *ShapeError
	return errors.As(err, &shapeErr)
}

// throw panics with err and its stack-trace: errors at graph building time are exceptions in GoMLX.
func throw(err error) {
	panic(errors.WithStack(err))
}

// CheckStatic returns a *ShapeError if shape doesn't have the given rank, or if any of its dimensions
// is not known statically (dynamic axes have negative dimensions).
func CheckStatic(op string, shape shapes.Shape, rank int) error {
	if shape.Rank() != rank {
		return NewShapeError(op, shape, "expected rank %d, got rank %d", rank, shape.Rank())
	}
	for axis, dim := range shape.Dimensions {
		if dim < 0 {
			return NewShapeError(op, shape, "dimension of axis %d is not statically known", axis)
		}
	}
	return nil
}
