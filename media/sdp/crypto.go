// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: Copyright (c) 2024, Emir Aganovic

// SDES (RFC 4568) crypto attribute parsing and emission. Key/salt lengths
// are taken from pion/srtp/v2's protection-profile catalog instead of a
// hand-rolled table, the way the engine is meant to treat "the SRTP crypto
// suite catalog" as an external collaborator (spec.md §1).
package sdp

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/pion/srtp/v2"
)

// srtpProfileByName maps the SDES suite name (as it appears in a=crypto)
// to a pion/srtp/v2 ProtectionProfile, the same names rtpengine's suite
// catalog recognizes.
var srtpProfileByName = map[string]srtp.ProtectionProfile{
	"AES_CM_128_HMAC_SHA1_80": srtp.ProtectionProfileAes128CmHmacSha1_80,
	"AES_CM_128_HMAC_SHA1_32": srtp.ProtectionProfileAes128CmHmacSha1_32,
	"AEAD_AES_128_GCM":        srtp.ProtectionProfileAeadAes128Gcm,
	"AEAD_AES_256_GCM":        srtp.ProtectionProfileAeadAes256Gcm,
}

// srtpSuiteKeySaltLen returns the master-key and master-salt byte lengths
// for a SDES suite name, via pion/srtp/v2's ProtectionProfile.
func srtpSuiteKeySaltLen(suite string) (keyLen, saltLen int, ok bool) {
	profile, found := srtpProfileByName[suite]
	if !found {
		return 0, 0, false
	}
	return int(profile.KeyLen()), int(profile.SaltLen()), true
}

// ParseCrypto parses the SDES a=crypto value: tag suite
// inline:<base64>[|lifetime][|mki:len] [SESSION-PARAMS...] (spec.md §4.1).
func ParseCrypto(rest string) *Crypto {
	f := fields(rest)
	if len(f) < 3 {
		return nil
	}
	tag, err := strconv.Atoi(f[0])
	if err != nil {
		return nil
	}
	suite := f[1]
	keyLen, saltLen, ok := srtpSuiteKeySaltLen(suite)
	if !ok {
		return nil
	}

	if !strings.HasPrefix(f[2], "inline:") {
		return nil
	}
	inlineVal := strings.TrimPrefix(f[2], "inline:")
	parts := strings.Split(inlineVal, "|")

	raw, err := decodeBase64Lenient(parts[0])
	if err != nil || len(raw) != keyLen+saltLen {
		return nil
	}
	c := &Crypto{
		Tag:        tag,
		Suite:      suite,
		MasterKey:  raw[:keyLen],
		MasterSalt: raw[keyLen:],
	}

	for _, p := range parts[1:] {
		switch {
		case strings.HasPrefix(p, "2^"):
			n, err := strconv.Atoi(strings.TrimPrefix(p, "2^"))
			if err != nil || n < 1 || n >= 64 {
				return nil
			}
			c.Lifetime = uint64(1) << uint(n)
		case strings.Contains(p, ":"):
			mkiParts := strings.SplitN(p, ":", 2)
			mkiVal, err := strconv.ParseUint(mkiParts[0], 10, 64)
			if err != nil {
				return nil
			}
			mkiLen, err := strconv.Atoi(mkiParts[1])
			if err != nil || mkiLen <= 0 || mkiLen > 8 {
				return nil
			}
			buf := make([]byte, mkiLen)
			putBigEndian(buf, mkiVal)
			c.MKI = buf
			c.MKILen = mkiLen
		}
	}

	for _, tok := range f[3:] {
		switch tok {
		case "UNENCRYPTED_SRTP":
			c.Unencrypted = true
		case "UNENCRYPTED_SRTCP":
			c.UnencryptedR = true
		case "UNAUTHENTICATED_SRTP":
			c.Unauth = true
		}
	}
	return c
}

func putBigEndian(buf []byte, v uint64) {
	for i := len(buf) - 1; i >= 0; i-- {
		buf[i] = byte(v)
		v >>= 8
	}
}

// decodeBase64Lenient accepts trailing '=' regardless of whether it was
// strictly required, per spec.md §9's documented leniency (matches the
// original's use of a forgiving base64 decoder).
func decodeBase64Lenient(s string) ([]byte, error) {
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	trimmed := strings.TrimRight(s, "=")
	if b, err := base64.RawStdEncoding.DecodeString(trimmed); err == nil {
		return b, nil
	}
	return base64.StdEncoding.DecodeString(s)
}

// mkiValue decodes the big-endian MKI back into its decimal value for emission.
func mkiValue(mki []byte) uint64 {
	var v uint64
	for _, b := range mki {
		v = v<<8 | uint64(b)
	}
	return v
}

// FormatCrypto re-emits a Crypto as the value portion of an a=crypto line
// (spec.md §4.6.4 "SDES emission"): base64(master-key||salt), with
// optional '=' padding truncation controlled by sdesPad, then the
// lifetime and MKI fields, then session-params.
func FormatCrypto(c Crypto, sdesPad bool) string {
	raw := append(append([]byte{}, c.MasterKey...), c.MasterSalt...)
	b64 := base64.StdEncoding.EncodeToString(raw)
	if !sdesPad {
		b64 = strings.TrimRight(b64, "=")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d %s inline:%s", c.Tag, c.Suite, b64)
	if c.Lifetime != 0 {
		n := 0
		for v := c.Lifetime; v > 1; v >>= 1 {
			n++
		}
		fmt.Fprintf(&sb, "|2^%d", n)
	}
	if c.MKILen > 0 {
		fmt.Fprintf(&sb, "|%d:%d", mkiValue(c.MKI), c.MKILen)
	}
	if c.Unencrypted {
		sb.WriteString(" UNENCRYPTED_SRTP")
	}
	if c.UnencryptedR {
		sb.WriteString(" UNENCRYPTED_SRTCP")
	}
	if c.Unauth {
		sb.WriteString(" UNAUTHENTICATED_SRTP")
	}
	return sb.String()
}
