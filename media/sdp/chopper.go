// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: Copyright (c) 2024, Emir Aganovic

// Chopper: a positional editor over the original SDP buffer supporting
// copy-up-to, skip-over, overwrite-with-length-delta, and append
// (spec.md §4.4).
package sdp

import (
	"bytes"
	"fmt"
)

// Chopper walks an input buffer forward, copying or skipping regions into
// an output buffer, and tracks a cumulative offset so that positions
// remembered during the forward pass (e.g. the o= version string) can be
// re-targeted for a later in-place overwrite (spec.md §3 "Chopper state",
// §4.4, §9 "Position tracking across rewrites").
type Chopper struct {
	input  []byte
	output bytes.Buffer
	pos    int
	offset int // cumulative size delta (new minus old length) of ReplaceAt overwrites
}

func NewChopper(input []byte) *Chopper {
	return &Chopper{input: input}
}

// CopyUpTo copies input[pos:p) to the output and advances pos to p. It is
// an error for p to be behind the current position (spec.md §4.4, §7
// "position moves backwards").
func (c *Chopper) CopyUpTo(p int) error {
	if p < c.pos {
		return fmt.Errorf("sdp: chopper position moves backwards: pos=%d target=%d", c.pos, p)
	}
	if p > len(c.input) {
		p = len(c.input)
	}
	c.output.Write(c.input[c.pos:p])
	c.pos = p
	return nil
}

// SkipOver advances pos past the end of region [start,start+length),
// without copying it to the output.
func (c *Chopper) SkipOver(start, length int) error {
	end := start + length
	if end < c.pos {
		return fmt.Errorf("sdp: chopper skip target behind position: pos=%d target=%d", c.pos, end)
	}
	c.pos = end
	return nil
}

// CopyUpToEndOf is CopyUpTo(start+length), the common case of copying a
// remembered slice in full.
func (c *Chopper) CopyUpToEndOf(start, length int) error {
	return c.CopyUpTo(start + length)
}

// AppendStr appends bytes directly to the output, outside the input
// buffer's coordinate space.
func (c *Chopper) AppendStr(b []byte) {
	c.output.Write(b)
}

func (c *Chopper) AppendString(s string) {
	c.output.WriteString(s)
}

// Bytes returns the output buffer accumulated so far.
func (c *Chopper) Bytes() []byte {
	return c.output.Bytes()
}

// OutputLen is the output buffer's current length, used by callers to
// remember positions for a later ReplaceAt (e.g. version.go stamping the
// o= version string at the position it was emitted).
func (c *Chopper) OutputLen() int {
	return c.output.Len()
}

// ReplaceAt overwrites newBytes at rememberedPos in the output buffer,
// first adjusting rememberedPos by the chopper's accumulated offset, then
// updating that offset by len(newBytes)-oldLen (spec.md §4.4). It is the
// caller's responsibility, per the stated invariant, to have completed one
// full forward pass before calling ReplaceAt, and to use positions
// remembered during that same forward pass.
func (c *Chopper) ReplaceAt(rememberedPos, oldLen int, newBytes []byte) error {
	pos := rememberedPos + c.offset
	buf := c.output.Bytes()
	if pos < 0 || pos+oldLen > len(buf) {
		return fmt.Errorf("sdp: chopper replace-at out of range: pos=%d oldLen=%d bufLen=%d", pos, oldLen, len(buf))
	}
	if len(newBytes) == oldLen {
		copy(buf[pos:pos+oldLen], newBytes)
	} else {
		tail := append([]byte{}, buf[pos+oldLen:]...)
		var rebuilt bytes.Buffer
		rebuilt.Write(buf[:pos])
		rebuilt.Write(newBytes)
		rebuilt.Write(tail)
		c.output = rebuilt
	}
	c.offset += len(newBytes) - oldLen
	return nil
}

// Pos is the chopper's current input-buffer read position.
func (c *Chopper) Pos() int {
	return c.pos
}

// Offset is the cumulative size delta of the ReplaceAt overwrites made so
// far.
func (c *Chopper) Offset() int {
	return c.offset
}
