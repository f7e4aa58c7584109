// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: Copyright (c) 2024, Emir Aganovic

package sdp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChopperCopyUpToIdentity(t *testing.T) {
	input := []byte("hello world")
	c := NewChopper(input)
	require.NoError(t, c.CopyUpTo(len(input)))
	require.Equal(t, input, c.Bytes())
}

func TestChopperSkipOver(t *testing.T) {
	input := []byte("abcXXXdef")
	c := NewChopper(input)
	require.NoError(t, c.CopyUpTo(3))
	require.NoError(t, c.SkipOver(3, 3))
	require.NoError(t, c.CopyUpTo(len(input)))
	require.Equal(t, []byte("abcdef"), c.Bytes())
}

func TestChopperCopyUpToRejectsBackwardsMove(t *testing.T) {
	c := NewChopper([]byte("abcdef"))
	require.NoError(t, c.CopyUpTo(4))
	require.Error(t, c.CopyUpTo(2))
}

func TestChopperReplaceAtSameLength(t *testing.T) {
	input := []byte("v=0\r\no=- 1 1 IN IP4 1.2.3.4\r\n")
	c := NewChopper(input)
	require.NoError(t, c.CopyUpTo(len(input)))
	require.NoError(t, c.ReplaceAt(2, 1, []byte("5")))
	require.Equal(t, "v=5\r\no=- 1 1 IN IP4 1.2.3.4\r\n", string(c.Bytes()))
}

func TestChopperReplaceAtGrowsAndShiftsLaterPositions(t *testing.T) {
	input := []byte("a=rtpmap:0 PCMU/8000\r\n")
	c := NewChopper(input)
	require.NoError(t, c.CopyUpTo(len(input)))
	require.NoError(t, c.ReplaceAt(9, 1, []byte("999")))
	require.Equal(t, "a=rtpmap:999 PCMU/8000\r\n", string(c.Bytes()))
	require.Equal(t, 2, c.Offset())

	// a position remembered after the growth point is shifted by Offset
	// inside ReplaceAt, so it still lands on the same logical field.
	clockRatePos := 16 // index of "8000"'s leading '8' in the ORIGINAL input
	require.NoError(t, c.ReplaceAt(clockRatePos, 4, []byte("16000")))
	require.Equal(t, "a=rtpmap:999 PCMU/16000\r\n", string(c.Bytes()))
}

func TestChopperAppendOutsideInputCoordinates(t *testing.T) {
	c := NewChopper([]byte("x=y\r\n"))
	require.NoError(t, c.CopyUpTo(5))
	c.AppendString("a=extra\r\n")
	require.Equal(t, "x=y\r\na=extra\r\n", string(c.Bytes()))
}
