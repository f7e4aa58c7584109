// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: Copyright (c) 2024, Emir Aganovic

// DTLS fingerprint parsing and emission (uppercase colon-separated hex),
// covering the full RFC 5763/RFC 8122 hash-function catalog the engine has
// to accept on the wire.
package sdp

import (
	"encoding/hex"
	"fmt"
	"strings"
)

var fingerprintDigestLen = map[string]int{
	"sha-1":   20,
	"sha-224": 28,
	"sha-256": 32,
	"sha-384": 48,
	"sha-512": 64,
	"md5":     16,
	"md2":     16,
}

// ParseFingerprint parses "hash-name colon-separated-hex" (spec.md §4.1).
// The hex byte count must match the hash function's known digest length;
// a mismatch is a semantic error (ignore, not fatal).
func ParseFingerprint(rest string) *Fingerprint {
	f := fields(rest)
	if len(f) != 2 {
		return nil
	}
	hashName := strings.ToLower(f[0])
	wantLen, ok := fingerprintDigestLen[hashName]
	if !ok {
		return nil
	}
	hexStr := strings.ReplaceAll(f[1], ":", "")
	digest, err := hex.DecodeString(hexStr)
	if err != nil || len(digest) != wantLen {
		return nil
	}
	return &Fingerprint{HashFunc: hashName, Digest: digest}
}

// FormatFingerprint re-emits a Fingerprint as the value portion of an
// a=fingerprint line: "<hash-name> <UPPERCASE:HEX:PAIRS>" (spec.md §4.6.4).
func FormatFingerprint(fp Fingerprint) string {
	pairs := make([]string, len(fp.Digest))
	for i, b := range fp.Digest {
		pairs[i] = fmt.Sprintf("%02X", b)
	}
	return fp.HashFunc + " " + strings.Join(pairs, ":")
}
