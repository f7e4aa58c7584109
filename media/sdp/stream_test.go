// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: Copyright (c) 2024, Emir Aganovic

package sdp

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, body string) *Session {
	t.Helper()
	sl, err := Parse([]byte(body), ParseOptions{})
	require.NoError(t, err)
	require.Len(t, sl.Sessions, 1)
	return sl.Sessions[0]
}

func TestExtractStreamParamsBasicAudio(t *testing.T) {
	body := "v=0\r\no=- 1 1 IN IP4 192.168.1.10\r\ns=-\r\nt=0 0\r\n" +
		"m=audio 1000 RTP/AVP 0 8\r\nc=IN IP4 192.168.1.10\r\na=sendrecv\r\na=ptime:20\r\n"
	sess := mustParse(t, body)

	sp, err := ExtractStreamParams(sess, DefaultFlags())
	require.NoError(t, err)
	require.Len(t, sp, 1)

	s := sp[0]
	require.Equal(t, "192.168.1.10", s.RTPEndpoint.Address.Address)
	require.Equal(t, 1000, s.RTPEndpoint.Port)
	require.True(t, s.Flags.Has(FlagSend))
	require.True(t, s.Flags.Has(FlagRecv))
	require.True(t, s.Flags.Has(FlagImplicitRTCP))
	require.Equal(t, 20, s.Ptime)
	require.Equal(t, []int{0, 8}, s.Codecs.Order)
}

func TestExtractStreamParamsRTCPMux(t *testing.T) {
	body := "v=0\r\no=- 1 1 IN IP4 1.2.3.4\r\ns=-\r\nt=0 0\r\n" +
		"m=audio 2000 RTP/AVP 0\r\nc=IN IP4 1.2.3.4\r\na=rtcp-mux\r\n"
	sess := mustParse(t, body)
	sp, err := ExtractStreamParams(sess, DefaultFlags())
	require.NoError(t, err)
	require.True(t, sp[0].Flags.Has(FlagRTCPMux))
}

func TestExtractStreamParamsExplicitRTCP(t *testing.T) {
	body := "v=0\r\no=- 1 1 IN IP4 1.2.3.4\r\ns=-\r\nt=0 0\r\n" +
		"m=audio 2000 RTP/AVP 0\r\nc=IN IP4 1.2.3.4\r\na=rtcp:2002 IN IP4 1.2.3.4\r\n"
	sess := mustParse(t, body)
	sp, err := ExtractStreamParams(sess, DefaultFlags())
	require.NoError(t, err)
	require.False(t, sp[0].Flags.Has(FlagRTCPMux))
	require.False(t, sp[0].Flags.Has(FlagImplicitRTCP))
	require.Equal(t, 2002, sp[0].RTCPEndpoint.Port)
}

func TestExtractStreamParamsRecvonly(t *testing.T) {
	body := "v=0\r\no=- 1 1 IN IP4 1.2.3.4\r\ns=-\r\nt=0 0\r\n" +
		"m=audio 2000 RTP/AVP 0\r\nc=IN IP4 1.2.3.4\r\na=recvonly\r\n"
	sess := mustParse(t, body)
	sp, err := ExtractStreamParams(sess, DefaultFlags())
	require.NoError(t, err)
	require.False(t, sp[0].Flags.Has(FlagSend))
	require.True(t, sp[0].Flags.Has(FlagRecv))
}

func TestExtractStreamParamsICEAndTrustAddress(t *testing.T) {
	body := "v=0\r\no=- 1 1 IN IP4 10.0.0.1\r\ns=-\r\nt=0 0\r\n" +
		"m=audio 2000 RTP/AVP 0\r\nc=IN IP4 10.0.0.1\r\n" +
		"a=ice-ufrag:abcd\r\na=ice-pwd:0123456789012345678901\r\n" +
		"a=candidate:1 1 UDP 2130706431 10.0.0.1 2000 typ host\r\n"
	sess := mustParse(t, body)

	// trust_address is false by default, but candidate presence force-enables
	// it (Open Question #3), so the media c= line should still be used.
	flags := DefaultFlags()
	sp, err := ExtractStreamParams(sess, flags)
	require.NoError(t, err)
	require.Equal(t, "10.0.0.1", sp[0].RTPEndpoint.Address.Address)
	require.Equal(t, "abcd", sp[0].ICEUfrag)
	require.Len(t, sp[0].ICECandidates, 1)
	require.True(t, sp[0].Flags.Has(FlagICE))
}

func TestExtractStreamParamsOSRTPLegacyCollapseDropPrior(t *testing.T) {
	inline := base64.StdEncoding.EncodeToString(make([]byte, 30))
	body := "v=0\r\no=- 1 1 IN IP4 1.2.3.4\r\ns=-\r\nt=0 0\r\n" +
		"m=audio 2000 RTP/AVP 0\r\nc=IN IP4 1.2.3.4\r\n" +
		"m=audio 2002 RTP/SAVP 0\r\nc=IN IP4 1.2.3.4\r\na=crypto:1 AES_CM_128_HMAC_SHA1_80 inline:" +
		inline + "\r\n"
	sess := mustParse(t, body)
	flags := DefaultFlags()
	flags.OSRTPAcceptLegacy = true
	sp, err := ExtractStreamParams(sess, flags)
	require.NoError(t, err)
	require.Len(t, sp, 1)
	require.Equal(t, ProtoRTPSAVP, sp[0].Protocol)
	require.True(t, sp[0].Flags.Has(FlagLegacyOSRTP))
}

func TestExtractStreamParamsOSRTPLegacyCollapseSkipZeroPort(t *testing.T) {
	body := "v=0\r\no=- 1 1 IN IP4 1.2.3.4\r\ns=-\r\nt=0 0\r\n" +
		"m=audio 2000 RTP/AVP 0\r\nc=IN IP4 1.2.3.4\r\n" +
		"m=audio 0 RTP/SAVP 0\r\nc=IN IP4 1.2.3.4\r\n"
	sess := mustParse(t, body)
	flags := DefaultFlags()
	flags.OSRTPAcceptLegacy = true
	sp, err := ExtractStreamParams(sess, flags)
	require.NoError(t, err)
	require.Len(t, sp, 1)
	require.Equal(t, ProtoRTPAVP, sp[0].Protocol)
}
