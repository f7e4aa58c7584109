// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: Copyright (c) 2024, Emir Aganovic

package sdp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newStampedChopper(t *testing.T, version string) (*Chopper, *VersionStampTarget) {
	t.Helper()
	input := []byte("o=- 123 " + version + " IN IP4 1.2.3.4\r\n")
	c := NewChopper(input)
	pos := 8 // offset of the version-string field above
	require.NoError(t, c.CopyUpTo(len(input)))
	return c, &VersionStampTarget{Pos: pos, Len: len(version)}
}

func TestReconcileFirstCallCachesOutput(t *testing.T) {
	c, target := newStampedChopper(t, "1")
	state := &VersionState{}
	require.NoError(t, Reconcile(c, state, []*VersionStampTarget{target}, false))
	require.True(t, state.HasVersion)
	require.Equal(t, uint64(1), state.Version)
	require.True(t, state.HasLastOutput)
}

func TestReconcileUnchangedOutputKeepsVersion(t *testing.T) {
	state := &VersionState{}
	c1, t1 := newStampedChopper(t, "1")
	require.NoError(t, Reconcile(c1, state, []*VersionStampTarget{t1}, false))
	firstVersion := state.Version

	c2, t2 := newStampedChopper(t, "1")
	require.NoError(t, Reconcile(c2, state, []*VersionStampTarget{t2}, false))
	require.Equal(t, firstVersion, state.Version)
}

func TestReconcileChangedOutputIncrementsVersion(t *testing.T) {
	state := &VersionState{}
	c1, t1 := newStampedChopper(t, "1")
	require.NoError(t, Reconcile(c1, state, []*VersionStampTarget{t1}, false))
	firstVersion := state.Version

	// A different o= line (different session-id) produces different bytes
	// even before restamping, forcing the reconciler to increment.
	input := []byte("o=- 456 1 IN IP4 1.2.3.4\r\n")
	c2 := NewChopper(input)
	require.NoError(t, c2.CopyUpTo(len(input)))
	target2 := &VersionStampTarget{Pos: 8, Len: 1}

	require.NoError(t, Reconcile(c2, state, []*VersionStampTarget{target2}, false))
	require.Equal(t, firstVersion+1, state.Version)
}

func TestReconcileForceIncBumpsOnVeryFirstCall(t *testing.T) {
	state := &VersionState{}
	c, target := newStampedChopper(t, "1")
	require.NoError(t, Reconcile(c, state, []*VersionStampTarget{target}, true))
	require.Equal(t, uint64(2), state.Version)
	require.True(t, state.HasLastOutput)
}

func TestReconcileForceIncAlwaysBumps(t *testing.T) {
	state := &VersionState{}
	c1, t1 := newStampedChopper(t, "1")
	require.NoError(t, Reconcile(c1, state, []*VersionStampTarget{t1}, false))
	firstVersion := state.Version

	c2, t2 := newStampedChopper(t, "1")
	require.NoError(t, Reconcile(c2, state, []*VersionStampTarget{t2}, true))
	require.Equal(t, firstVersion+1, state.Version)
}
