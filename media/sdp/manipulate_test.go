// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: Copyright (c) 2024, Emir Aganovic

package sdp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestManipulationSetRemoveByName(t *testing.T) {
	ms := NewManipulationSet()
	ms.Remove["rtcp-mux"] = true
	a := ParseAttribute("rtcp-mux", nil, -1)

	verdict, _ := ms.Apply(a)
	require.Equal(t, ManipRemove, verdict)
}

func TestManipulationSetRemoveIsCaseInsensitive(t *testing.T) {
	ms := NewManipulationSet()
	ms.Remove["RTCP-MUX"] = true
	a := ParseAttribute("rtcp-mux", nil, -1)

	verdict, _ := ms.Apply(a)
	require.Equal(t, ManipRemove, verdict)
}

func TestManipulationSetSubstituteByKey(t *testing.T) {
	ms := NewManipulationSet()
	ms.Substitute["ptime:20"] = "ptime:30"
	a := ParseAttribute("ptime:20", nil, -1)

	verdict, body := ms.Apply(a)
	require.Equal(t, ManipSubstitute, verdict)
	require.Equal(t, "ptime:30", body)
}

func TestManipulationSetRemoveWinsOverSubstitute(t *testing.T) {
	ms := NewManipulationSet()
	ms.Remove["ptime:20"] = true
	ms.Substitute["ptime:20"] = "ptime:30"
	a := ParseAttribute("ptime:20", nil, -1)

	verdict, _ := ms.Apply(a)
	require.Equal(t, ManipRemove, verdict)
}

func TestManipulationSetKeepsUnmatchedAttribute(t *testing.T) {
	ms := NewManipulationSet()
	a := ParseAttribute("sendrecv", nil, -1)

	verdict, _ := ms.Apply(a)
	require.Equal(t, ManipKeep, verdict)
}

func TestManipulationSetNilIsKeep(t *testing.T) {
	var ms *ManipulationSet
	a := ParseAttribute("sendrecv", nil, -1)
	verdict, _ := ms.Apply(a)
	require.Equal(t, ManipKeep, verdict)
}

func TestRenderAdd(t *testing.T) {
	ms := NewManipulationSet()
	ms.Add = []string{"mid:extra"}
	lines := ms.RenderAdd()
	require.Equal(t, []string{"a=mid:extra\r\n"}, lines)
}
