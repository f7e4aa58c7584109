// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: Copyright (c) 2024, Emir Aganovic

package sdp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractT38OptionsDefaultsWhenAbsent(t *testing.T) {
	opt := extractT38Options(NewAttributeSet())
	require.False(t, opt.Present)
	require.Equal(t, T38ECRedundancy, opt.EC)
	require.Equal(t, 3, opt.ECMin)
	require.Equal(t, 3, opt.ECMax)
}

func TestExtractT38OptionsExplicitNoEC(t *testing.T) {
	attrs := NewAttributeSet()
	attrs.Add(ParseAttribute("T38FaxUdpEC:t38UDPNoEC", nil, -1))
	opt := extractT38Options(attrs)
	require.True(t, opt.Present)
	require.Equal(t, T38ECNone, opt.EC)
}

func TestExtractT38OptionsMaxBitRate(t *testing.T) {
	attrs := NewAttributeSet()
	attrs.Add(ParseAttribute("T38MaxBitRate:14400", nil, -1))
	opt := extractT38Options(attrs)
	require.True(t, opt.Present)
	require.Equal(t, 14400, opt.MaxBitRate)
	// EC defaults still hold when only MaxBitRate was supplied.
	require.Equal(t, T38ECRedundancy, opt.EC)
}

func TestExtractStreamParamsImageMediaGetsT38Options(t *testing.T) {
	body := "v=0\r\no=- 1 1 IN IP4 1.2.3.4\r\ns=-\r\nt=0 0\r\n" +
		"m=image 6000 udptl t38\r\nc=IN IP4 1.2.3.4\r\na=T38FaxMaxDatagram:400\r\n"
	sess := mustParse(t, body)
	sp, err := ExtractStreamParams(sess, DefaultFlags())
	require.NoError(t, err)
	require.Equal(t, MediaImage, sp[0].MediaType)
	require.True(t, sp[0].T38.Present)
	require.Equal(t, 400, sp[0].T38.MaxDatagram)
}
