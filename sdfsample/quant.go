// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sdfsample implements the margined, chunked scalar-field arrays of
// spec §4.2: a dense grid of quantised distance samples with in-place
// constructive Add/Subtract, adapted from the teacher's terrain package
// (which stores a dense, chunked heightmap rather than a signed distance,
// but shares the same "quantise to a byte, mutate chunks of a grid in
// place" shape — see terrain/compressed for the grounding).
package sdfsample

import "github.com/chewxy/math32"

// MaxEncoded is the encoded value's upper bound; samples run [0, MaxEncoded].
// 254 is picked (not 255) so Encode(0) == MaxEncoded/2 exactly and so that
// Encode(d) + Encode(-d) == MaxEncoded holds exactly for every d, including
// saturated values (spec §4.2/§9 open question on MAX_ENCODED's value).
const MaxEncoded = 254

// half is MaxEncoded/2, the encoded value of distance 0.
const half = MaxEncoded / 2

// Encode linearly quantises d, given the layer's maxDistance clamp, into
// [0, MaxEncoded]. Smaller encoded values mean "more inside" (spec §3).
func Encode(d, maxDistance float32) byte {
	scale := float32(MaxEncoded) / (2 * maxDistance)
	rounded := math32.Round(d * scale)
	enc := int32(half) + int32(rounded)
	if enc < 0 {
		enc = 0
	} else if enc > MaxEncoded {
		enc = MaxEncoded
	}
	return byte(enc)
}

// Decode is Encode's approximate inverse (exact up to 1 LSB, spec §4.2).
func Decode(v byte, maxDistance float32) float32 {
	scale := float32(MaxEncoded) / (2 * maxDistance)
	return (float32(v) - half) / scale
}
