// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: Copyright (c) 2024, Emir Aganovic

package sdp

import "time"

const ntpEpochOffset int64 = 2208988800 // Unix epoch -> NTP epoch (1900-01-01)

// GetCurrentNTPTimestamp returns the current time as an NTP era-0 seconds
// value, used as the o= session-id/version default when Create synthesizes
// a body from scratch (spec.md §4.6.5).
func GetCurrentNTPTimestamp() uint64 {
	return NTPTimestamp(time.Now())
}

func NTPTimestamp(now time.Time) uint64 {
	return uint64(now.Unix() + ntpEpochOffset)
}
