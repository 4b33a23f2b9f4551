// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sdfreplicate

import (
	"github.com/brinewave/sdfworld/sdfhost"
	"github.com/brinewave/sdfworld/sdfshape"
)

// ResourceCodec encodes/decodes the opaque `ref resource` field of spec
// §6's modification frame payload. sdfhost.Resource is deliberately opaque
// (an engine asset reference), so only the host integration knows how to
// turn one into bytes; this package never interprets a Resource itself.
type ResourceCodec interface {
	EncodeResource(w *sdfshape.Writer, r sdfhost.Resource)
	DecodeResource(r *sdfshape.Reader) (sdfhost.Resource, error)
}

// Uint32ResourceCodec is a minimal codec for hosts that identify resources
// with small integers, the common case for a demo/test harness.
type Uint32ResourceCodec struct{}

func (Uint32ResourceCodec) EncodeResource(w *sdfshape.Writer, r sdfhost.Resource) {
	w.WriteUint32(r.(uint32))
}

func (Uint32ResourceCodec) DecodeResource(r *sdfshape.Reader) (sdfhost.Resource, error) {
	v, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	return v, nil
}
