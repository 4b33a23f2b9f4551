// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sdfworld

import (
	"github.com/brinewave/sdfworld/sdfhost"
	"github.com/brinewave/sdfworld/sdfshape"
)

// Operator selects between the two constructive operations a Modification
// applies (spec §6 "u8/i32 operator -- 0 = Add, 1 = Subtract").
type Operator int32

const (
	OpAdd Operator = iota
	OpSubtract
)

// Modification2 is one accepted mutation of a 2D world: add or subtract a
// shape from a named resource (spec §4.4 "World appends a Modification to
// the log").
type Modification2 struct {
	Operator Operator
	Resource sdfhost.Resource
	Shape    sdfshape.Shape2D
}

// Modification3 is the 3D counterpart of Modification2.
type Modification3 struct {
	Operator Operator
	Resource sdfhost.Resource
	Shape    sdfshape.Shape3D
}
