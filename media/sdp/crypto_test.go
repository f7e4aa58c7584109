// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: Copyright (c) 2024, Emir Aganovic

package sdp

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCryptoRoundTrip(t *testing.T) {
	keySalt := make([]byte, 30) // AES_CM_128_HMAC_SHA1_80: 16-byte key + 14-byte salt
	for i := range keySalt {
		keySalt[i] = byte(i + 1)
	}
	inline := base64.StdEncoding.EncodeToString(keySalt)
	value := "1 AES_CM_128_HMAC_SHA1_80 inline:" + inline + "|2^20|1:4"

	c := ParseCrypto(value)
	require.NotNil(t, c)
	require.Equal(t, 1, c.Tag)
	require.Equal(t, "AES_CM_128_HMAC_SHA1_80", c.Suite)
	require.Equal(t, keySalt[:16], c.MasterKey)
	require.Equal(t, keySalt[16:], c.MasterSalt)
	require.Equal(t, uint64(1)<<20, c.Lifetime)
	require.Equal(t, 4, c.MKILen)

	rendered := FormatCrypto(*c, true)
	c2 := ParseCrypto(rendered)
	require.NotNil(t, c2)
	require.Equal(t, c.MasterKey, c2.MasterKey)
	require.Equal(t, c.MasterSalt, c2.MasterSalt)
	require.Equal(t, c.Lifetime, c2.Lifetime)
	require.Equal(t, c.MKILen, c2.MKILen)
}

func TestParseCryptoUnknownSuiteFails(t *testing.T) {
	c := ParseCrypto("1 UNKNOWN_SUITE inline:AAAA")
	require.Nil(t, c)
}

func TestParseCryptoWrongKeyLengthFails(t *testing.T) {
	c := ParseCrypto("1 AES_CM_128_HMAC_SHA1_80 inline:AAAA")
	require.Nil(t, c)
}

func TestFormatCryptoUnencryptedTokens(t *testing.T) {
	c := Crypto{
		Tag:         1,
		Suite:       "AES_CM_128_HMAC_SHA1_80",
		MasterKey:   make([]byte, 16),
		MasterSalt:  make([]byte, 14),
		Unencrypted: true,
		Unauth:      true,
	}
	rendered := FormatCrypto(c, true)
	require.Contains(t, rendered, "UNENCRYPTED_SRTP")
	require.Contains(t, rendered, "UNAUTHENTICATED_SRTP")
}
