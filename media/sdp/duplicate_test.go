// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: Copyright (c) 2024, Emir Aganovic

package sdp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInstanceIDIsTwelveHexChars(t *testing.T) {
	id := InstanceID()
	require.Len(t, id, 12)
	for _, c := range id {
		require.Truef(t, (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f'), "unexpected char %q in instance id", c)
	}
	require.Equal(t, id, InstanceID(), "instance id must be stable across calls")
}

func TestIsDuplicateDetectsOwnLoop(t *testing.T) {
	body := "v=0\r\no=- 1 1 IN IP4 1.2.3.4\r\ns=-\r\nt=0 0\r\na=rtpengine:" + InstanceID() + "\r\n"
	sl, err := Parse([]byte(body), ParseOptions{})
	require.NoError(t, err)
	require.True(t, IsDuplicate(sl))
}

func TestIsDuplicateIgnoresForeignInstanceID(t *testing.T) {
	body := "v=0\r\no=- 1 1 IN IP4 1.2.3.4\r\ns=-\r\nt=0 0\r\na=rtpengine:000000000000\r\n"
	sl, err := Parse([]byte(body), ParseOptions{})
	require.NoError(t, err)
	require.NotEqual(t, "000000000000", InstanceID())
	require.False(t, IsDuplicate(sl))
}

func TestIsDuplicateFalseWithoutTag(t *testing.T) {
	body := "v=0\r\no=- 1 1 IN IP4 1.2.3.4\r\ns=-\r\nt=0 0\r\n"
	sl, err := Parse([]byte(body), ParseOptions{})
	require.NoError(t, err)
	require.False(t, IsDuplicate(sl))
}
