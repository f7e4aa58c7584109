// SPDX-License-Identifier: BSD-2-Clause
// Copyright (C) 2024 Emir Aganovic

package media

import (
	"time"

	"github.com/emiago/rtpsdp/media/sdp"
)

// Codec is a single negotiated RTP payload: whatever sdp.ReconcileCodecs
// resolved for a payload type (spec.md §4.3), plus the sample-timestamping
// fields an RTP sender/receiver needs.
type Codec struct {
	PayloadType uint8
	Encoding    string
	SampleRate  uint32
	Channels    int
	SampleDur   time.Duration
}

func (c *Codec) SampleTimestamp() uint32 {
	return uint32(float64(c.SampleRate) * c.SampleDur.Seconds())
}

// CodecFromPayloadCodec adapts a reconciled sdp.PayloadCodec into the
// RTP-timestamping Codec shape, defaulting SampleDur to the common 20ms
// ptime used by most narrowband audio codecs.
func CodecFromPayloadCodec(pc sdp.PayloadCodec) Codec {
	return Codec{
		PayloadType: uint8(pc.PayloadType),
		Encoding:    pc.Encoding,
		SampleRate:  uint32(pc.ClockRate),
		Channels:    pc.Channels,
		SampleDur:   20 * time.Millisecond,
	}
}

// CodecFromPayloadType resolves payloadType against the RFC 3551 static
// table (spec.md §4.3's reconciliation fallback), for callers that only
// have a bare payload type and no negotiated CodecStore to hand.
func CodecFromPayloadType(payloadType uint8) (Codec, bool) {
	static, ok := sdp.StaticPayloadTable[int(payloadType)]
	if !ok {
		return Codec{}, false
	}
	return CodecFromPayloadCodec(static), true
}
