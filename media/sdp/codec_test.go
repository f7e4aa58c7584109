// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: Copyright (c) 2024, Emir Aganovic

package sdp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReconcileCodecsRTPMapAndStaticFallback(t *testing.T) {
	attrs := NewAttributeSet()
	attrs.Add(ParseAttribute("rtpmap:96 opus/48000/2", nil, -1))
	attrs.Add(ParseAttribute("fmtp:96 useinbandfec=1", nil, -1))
	attrs.Add(ParseAttribute("rtcp-fb:96 nack", nil, -1))
	attrs.Add(ParseAttribute("rtcp-fb:96 nack pli", nil, -1))

	store := ReconcileCodecs([]string{"0", "96", "99"}, attrs)
	require.Equal(t, []int{0, 96, 99}, store.Order) // 99 has no rtpmap and isn't static, kept bare

	pcmu, ok := store.Get(0)
	require.True(t, ok)
	require.Equal(t, "PCMU", pcmu.Encoding)
	require.Equal(t, 8000, pcmu.ClockRate)
	require.False(t, pcmu.FromRTPMap)

	opus, ok := store.Get(96)
	require.True(t, ok)
	require.Equal(t, "opus", opus.Encoding)
	require.Equal(t, 48000, opus.ClockRate)
	require.Equal(t, 2, opus.Channels)
	require.True(t, opus.FromRTPMap)
	require.Equal(t, "useinbandfec=1", opus.Fmtp)
	require.Equal(t, []string{"nack", "nack pli"}, opus.RTCPFB)

	bare, ok := store.Get(99)
	require.True(t, ok)
	require.Equal(t, 99, bare.PayloadType)
	require.Equal(t, "", bare.Encoding)
	require.False(t, bare.FromRTPMap)
}

func TestReconcileCodecsEmptyFormats(t *testing.T) {
	store := ReconcileCodecs(nil, NewAttributeSet())
	require.Empty(t, store.Order)
}

func TestStaticPayloadTableCoversRFC3551StaticRange(t *testing.T) {
	for _, pt := range []int{0, 8, 9, 18} {
		_, ok := StaticPayloadTable[pt]
		require.True(t, ok, "payload type %d should be in the static table", pt)
	}
	_, ok := StaticPayloadTable[96]
	require.False(t, ok, "dynamic payload types are never in the static table")
}
