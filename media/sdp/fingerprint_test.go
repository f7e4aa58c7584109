// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: Copyright (c) 2024, Emir Aganovic

package sdp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFingerprintSHA256(t *testing.T) {
	hex := "4A:AD:B9:B1:3F:82:18:3B:54:02:12:DF:3E:5D:49:6B:19:E5:7C:AB:3A:C1:62:80:A0:33:76:64:50:D9:4C:8B"
	fp := ParseFingerprint("sha-256 " + hex)
	require.NotNil(t, fp)
	require.Equal(t, "sha-256", fp.HashFunc)
	require.Len(t, fp.Digest, 32)
}

func TestParseFingerprintWrongLengthRejected(t *testing.T) {
	fp := ParseFingerprint("sha-256 AA:BB")
	require.Nil(t, fp)
}

func TestParseFingerprintUnknownHashRejected(t *testing.T) {
	fp := ParseFingerprint("sha-9000 AA:BB")
	require.Nil(t, fp)
}

func TestFormatFingerprintUppercaseColonHex(t *testing.T) {
	fp := Fingerprint{HashFunc: "sha-1", Digest: []byte{0x01, 0x0A, 0xFF, 0x00}}
	rendered := FormatFingerprint(fp)
	require.Equal(t, "sha-1 01:0A:FF:00", rendered)
}
