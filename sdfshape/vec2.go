// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sdfshape

import (
	"math"

	"github.com/chewxy/math32"
)

// Vec2 is a point or direction in 2D world space.
type Vec2 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

func (vec Vec2) Mul(factor float32) Vec2 {
	vec.X *= factor
	vec.Y *= factor
	return vec
}

func (vec Vec2) Div(divisor float32) Vec2 {
	return vec.Mul(1.0 / divisor)
}

func (vec Vec2) Add(other Vec2) Vec2 {
	vec.X += other.X
	vec.Y += other.Y
	return vec
}

func (vec Vec2) Sub(other Vec2) Vec2 {
	vec.X -= other.X
	vec.Y -= other.Y
	return vec
}

func (vec Vec2) AddScaled(other Vec2, factor float32) Vec2 {
	vec.X += other.X * factor
	vec.Y += other.Y * factor
	return vec
}

func (vec Vec2) Dot(other Vec2) float32 {
	return vec.X*other.X + vec.Y*other.Y
}

func (vec Vec2) Length() float32 {
	return math32.Hypot(vec.X, vec.Y)
}

func (vec Vec2) LengthSquared() float32 {
	return vec.X*vec.X + vec.Y*vec.Y
}

func (vec Vec2) Distance(other Vec2) float32 {
	return vec.Sub(other).Length()
}

func (vec Vec2) DistanceSquared(other Vec2) float32 {
	d := vec.Sub(other)
	return d.LengthSquared()
}

func (vec Vec2) Abs() Vec2 {
	vec.X = math32.Abs(vec.X)
	vec.Y = math32.Abs(vec.Y)
	return vec
}

func (vec Vec2) Min(other Vec2) Vec2 {
	return Vec2{X: min32(vec.X, other.X), Y: min32(vec.Y, other.Y)}
}

func (vec Vec2) Max(other Vec2) Vec2 {
	return Vec2{X: max32(vec.X, other.X), Y: max32(vec.Y, other.Y)}
}

// Rot90 rotates 90 degrees clockwise.
func (vec Vec2) Rot90() Vec2 {
	return Vec2{X: -vec.Y, Y: vec.X}
}

func (vec Vec2) Ceil() Vec2 {
	// Use math.Ceil instead of math32.Ceil because it uses assembly.
	vec.X = float32(math.Ceil(float64(vec.X)))
	vec.Y = float32(math.Ceil(float64(vec.Y)))
	return vec
}

func (vec Vec2) Floor() Vec2 {
	vec.X = float32(math.Floor(float64(vec.X)))
	vec.Y = float32(math.Floor(float64(vec.Y)))
	return vec
}

func Lerp(a, b, factor float32) float32 {
	return a + (b-a)*factor
}

func (vec Vec2) Lerp(other Vec2, factor float32) Vec2 {
	vec.X = Lerp(vec.X, other.X, factor)
	vec.Y = Lerp(vec.Y, other.Y, factor)
	return vec
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func clamp32(val, minimum, maximum float32) float32 {
	return min32(max32(val, minimum), maximum)
}
