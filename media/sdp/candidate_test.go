// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: Copyright (c) 2024, Emir Aganovic

package sdp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCandidateHost(t *testing.T) {
	c := ParseCandidate("1 1 UDP 2130706431 192.168.1.10 54321 typ host")
	require.NotNil(t, c)
	require.True(t, c.Parsed)
	require.Equal(t, "1", c.Foundation)
	require.Equal(t, 1, c.Component)
	require.Equal(t, "UDP", c.Transport)
	require.Equal(t, uint32(2130706431), c.Priority)
	require.Equal(t, "192.168.1.10", c.Address)
	require.Equal(t, 54321, c.Port)
	require.Equal(t, "host", c.Type)
}

func TestParseCandidateSrflxWithRaddr(t *testing.T) {
	c := ParseCandidate("2 1 UDP 1694498815 203.0.113.5 60000 typ srflx raddr 192.168.1.10 rport 54321 ufrag abcd")
	require.NotNil(t, c)
	require.True(t, c.Parsed)
	require.Equal(t, "192.168.1.10", c.RelAddr)
	require.Equal(t, 54321, c.RelPort)
	require.Equal(t, "abcd", c.Ufrag)
}

func TestParseCandidateUnknownTypeKeptButInert(t *testing.T) {
	c := ParseCandidate("3 1 UDP 1 192.168.1.10 1000 typ bogus")
	require.NotNil(t, c)
	require.False(t, c.Parsed)
	require.Equal(t, "bogus", c.Type)
}

func TestParseCandidateTooShortIsNil(t *testing.T) {
	require.Nil(t, ParseCandidate("1 1 UDP 1"))
}

func TestCandidatePriorityOrdering(t *testing.T) {
	host := CandidatePriority("host", 65535, 1)
	srflx := CandidatePriority("srflx", 65535, 1)
	relay := CandidatePriority("relay", 65535, 1)
	require.Greater(t, host, srflx)
	require.Greater(t, srflx, relay)
}

func TestPassthruPriorityDecrementsLocalPref(t *testing.T) {
	base := CandidatePriority("host", 100, 1)
	p := PassthruPriority(base, 1)
	require.Less(t, p, base)
}

func TestPassthruPriorityWrapsAtZeroLocalPref(t *testing.T) {
	base := CandidatePriority("host", 0, 1)
	p := PassthruPriority(base, 1)
	localPref := (p >> 8) & 0xFFFF
	require.Equal(t, uint32(65535), localPref)
}

func TestFormatCandidateRoundTrip(t *testing.T) {
	c := Candidate{Foundation: "1", Component: 1, Priority: 12345, Address: "192.168.1.10", Port: 5000, Type: "host"}
	rendered := FormatCandidate(c)
	c2 := ParseCandidate(rendered)
	require.NotNil(t, c2)
	require.Equal(t, c.Foundation, c2.Foundation)
	require.Equal(t, c.Priority, c2.Priority)
	require.Equal(t, c.Address, c2.Address)
	require.Equal(t, c.Port, c2.Port)
	require.Equal(t, c.Type, c2.Type)
}
