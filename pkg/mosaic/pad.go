// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package mosaic

import (
	"slices"

	. "github.com/gomlx/gomlx/pkg/core/graph"
	"github.com/gomlx/gomlx/pkg/core/shapes"
)

// padWithZeros adds padding zeros at the start and at the end of each of the given axes.
//
// It concatenates blocks of zeros instead of using Pad, since not every backend implements Pad
// (e.g. the pure Go "go" backend).
func padWithZeros(x *Node, padding int, axes ...int) *Node {
	if padding <= 0 {
		return x
	}
	g := x.Graph()
	for _, axis := range axes {
		dims := slices.Clone(x.Shape().Dimensions)
		dims[axis] = padding
		border := Zeros(g, shapes.Make(x.DType(), dims...))
		x = Concatenate([]*Node{border, x, border}, axis)
	}
	return x
}
