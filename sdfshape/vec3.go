// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sdfshape

import (
	"math"

	"github.com/chewxy/math32"
)

// Vec3 is a point or direction in 3D world space. It mirrors Vec2's API; the
// teacher repo only ever had a 2D world, so this is the same operations
// rewritten for the third axis rather than a copy of any one teacher file.
type Vec3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

func (vec Vec3) Mul(factor float32) Vec3 {
	vec.X *= factor
	vec.Y *= factor
	vec.Z *= factor
	return vec
}

func (vec Vec3) Div(divisor float32) Vec3 {
	return vec.Mul(1.0 / divisor)
}

func (vec Vec3) Add(other Vec3) Vec3 {
	vec.X += other.X
	vec.Y += other.Y
	vec.Z += other.Z
	return vec
}

func (vec Vec3) Sub(other Vec3) Vec3 {
	vec.X -= other.X
	vec.Y -= other.Y
	vec.Z -= other.Z
	return vec
}

func (vec Vec3) AddScaled(other Vec3, factor float32) Vec3 {
	vec.X += other.X * factor
	vec.Y += other.Y * factor
	vec.Z += other.Z * factor
	return vec
}

func (vec Vec3) Dot(other Vec3) float32 {
	return vec.X*other.X + vec.Y*other.Y + vec.Z*other.Z
}

func (vec Vec3) Length() float32 {
	return math32.Sqrt(vec.LengthSquared())
}

func (vec Vec3) LengthSquared() float32 {
	return vec.X*vec.X + vec.Y*vec.Y + vec.Z*vec.Z
}

func (vec Vec3) Distance(other Vec3) float32 {
	return vec.Sub(other).Length()
}

func (vec Vec3) DistanceSquared(other Vec3) float32 {
	d := vec.Sub(other)
	return d.LengthSquared()
}

func (vec Vec3) Abs() Vec3 {
	vec.X = math32.Abs(vec.X)
	vec.Y = math32.Abs(vec.Y)
	vec.Z = math32.Abs(vec.Z)
	return vec
}

func (vec Vec3) Min(other Vec3) Vec3 {
	return Vec3{X: min32(vec.X, other.X), Y: min32(vec.Y, other.Y), Z: min32(vec.Z, other.Z)}
}

func (vec Vec3) Max(other Vec3) Vec3 {
	return Vec3{X: max32(vec.X, other.X), Y: max32(vec.Y, other.Y), Z: max32(vec.Z, other.Z)}
}

func (vec Vec3) Ceil() Vec3 {
	vec.X = float32(math.Ceil(float64(vec.X)))
	vec.Y = float32(math.Ceil(float64(vec.Y)))
	vec.Z = float32(math.Ceil(float64(vec.Z)))
	return vec
}

func (vec Vec3) Floor() Vec3 {
	vec.X = float32(math.Floor(float64(vec.X)))
	vec.Y = float32(math.Floor(float64(vec.Y)))
	vec.Z = float32(math.Floor(float64(vec.Z)))
	return vec
}

func (vec Vec3) Lerp(other Vec3, factor float32) Vec3 {
	vec.X = Lerp(vec.X, other.X, factor)
	vec.Y = Lerp(vec.Y, other.Y, factor)
	vec.Z = Lerp(vec.Z, other.Z, factor)
	return vec
}
