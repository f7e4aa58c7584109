// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: Copyright (c) 2024, Emir Aganovic

package sdp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAttributeRTPMap(t *testing.T) {
	a := ParseAttribute("rtpmap:96 opus/48000/2", nil, -1)
	require.Equal(t, AttrRTPMap, a.ID)
	require.NotNil(t, a.RTPMap)
	require.Equal(t, 96, a.RTPMap.PayloadType)
	require.Equal(t, "opus", a.RTPMap.Encoding)
	require.Equal(t, 48000, a.RTPMap.ClockRate)
	require.Equal(t, 2, a.RTPMap.Channels)
}

func TestParseAttributeFMTPWildcard(t *testing.T) {
	a := ParseAttribute("fmtp:* mode=0", nil, -1)
	require.Equal(t, AttrFMTP, a.ID)
	require.Equal(t, -1, a.FMTP.PayloadType)
	require.Equal(t, "mode=0", a.FMTP.Params)
}

func TestParseAttributeSetup(t *testing.T) {
	a := ParseAttribute("setup:actpass", nil, -1)
	require.Equal(t, AttrSetup, a.ID)
	require.Equal(t, SetupActpass, a.Setup)
}

func TestParseAttributeRTCP(t *testing.T) {
	a := ParseAttribute("rtcp:53021 IN IP4 192.0.2.1", nil, -1)
	require.Equal(t, AttrRTCP, a.ID)
	require.Equal(t, 53021, a.RTCP.Port)
	require.NotNil(t, a.RTCP.Address)
	require.Equal(t, "192.0.2.1", a.RTCP.Address.Address)
}

func TestParseAttributeRTCPPortOnly(t *testing.T) {
	a := ParseAttribute("rtcp:53021", nil, -1)
	require.Equal(t, 53021, a.RTCP.Port)
	require.Nil(t, a.RTCP.Address)
}

func TestParseAttributeUnknownNameFallsBackToOther(t *testing.T) {
	a := ParseAttribute("x-custom:foo", nil, -1)
	require.Equal(t, AttrOther, a.ID)
	require.Equal(t, "x-custom", a.Name)
	require.Equal(t, "foo", a.Value)
}

func TestParseAttributeExtmapIsTaggedOther(t *testing.T) {
	a := ParseAttribute("extmap:1 urn:ietf:params:rtp-hdrext:ssrc-audio-level", nil, -1)
	require.Equal(t, AttrOther, a.ID)
	require.Equal(t, OtherExtmap, a.OtherType)
}

func TestParseAttributeRTCPFBWildcard(t *testing.T) {
	a := ParseAttribute("rtcp-fb:* nack", nil, -1)
	require.Equal(t, AttrRTCPFB, a.ID)
	require.Equal(t, -1, a.RTCPFB.PayloadType)
	require.Equal(t, "nack", a.RTCPFB.Value)
}

func TestParseAttributeT38UdpEC(t *testing.T) {
	a := ParseAttribute("T38FaxUdpEC:t38UDPRedundancy", nil, -1)
	require.Equal(t, AttrT38FaxUdpEC, a.ID)
	require.NotNil(t, a.T38)
	require.True(t, a.T38.FlagSet)
}
