// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: Copyright (c) 2024, Emir Aganovic

// Version reconciler: maintains monotonic o= version numbers across
// retransmitted/reoffered SDPs (spec.md §4.7).
package sdp

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"math"
	"strconv"
)

// VersionState is the per-monologue cached state the reconciler needs: the
// last-used version number and a copy of the most recently produced
// output (spec.md §4.7). The byte positions of each session's o= version
// string are not kept here; they are passed to Reconcile as
// VersionStampTarget values.
type VersionState struct {
	Version      uint64
	HasVersion   bool
	LastOutput   []byte
	HasLastOutput bool
}

// VersionStampTarget is one session's remembered version-string position
// and its current byte length, as recorded by the rewriter during the
// forward pass.
type VersionStampTarget struct {
	Pos int
	Len int
}

// Reconcile implements spec.md §4.7:
//  1. overwrite every session's version string at its remembered position
//     with the current (possibly still unincremented) version number;
//  2. if forceInc is set, skip straight to 4 — it forces an increment even
//     on the very first call, before any output has been cached;
//  3. if there is no cached previous output, cache this one and return; if
//     this output equals the cached one byte-for-byte, return unchanged;
//  4. otherwise, increment the version, re-stamp, and replace the cache.
//
// It mutates targets' Pos and Len in place to reflect where the new
// version string now sits and how long it is, so that any further
// restamping lands on the same field.
func Reconcile(chopper *Chopper, state *VersionState, targets []*VersionStampTarget, forceInc bool) error {
	if !state.HasVersion {
		state.Version = 1
		state.HasVersion = true
	}

	if err := stampAll(chopper, state.Version, targets); err != nil {
		return err
	}

	if !forceInc {
		if !state.HasLastOutput {
			state.LastOutput = append([]byte{}, chopper.Bytes()...)
			state.HasLastOutput = true
			return nil
		}
		if bytes.Equal(chopper.Bytes(), state.LastOutput) {
			return nil
		}
	}

	state.Version++
	if state.Version == math.MaxUint64 {
		var buf [8]byte
		if _, err := rand.Read(buf[:]); err == nil {
			state.Version = binary.BigEndian.Uint64(buf[:])
		}
	}
	if err := stampAll(chopper, state.Version, targets); err != nil {
		return err
	}
	state.LastOutput = append([]byte{}, chopper.Bytes()...)
	state.HasLastOutput = true
	return nil
}

func stampAll(chopper *Chopper, version uint64, targets []*VersionStampTarget) error {
	vs := strconv.FormatUint(version, 10)
	// Each target's Pos is exact as of the previous run, so only the
	// shifts made within this run apply to it.
	chopper.offset = 0
	for _, t := range targets {
		actual := t.Pos + chopper.offset
		if err := chopper.ReplaceAt(t.Pos, t.Len, []byte(vs)); err != nil {
			return err
		}
		t.Pos = actual
		t.Len = len(vs)
	}
	return nil
}
