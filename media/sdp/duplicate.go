// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: Copyright (c) 2024, Emir Aganovic

// Duplicate detector: recognizes loop-back SDPs via a self-inserted
// instance tag (spec.md §4.8).
package sdp

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	instanceIDOnce sync.Once
	instanceID     string
)

// Init seeds the process-wide instance-id with 12 hex characters derived
// from a fresh random UUID (spec.md §6 "sdp_init", §3 supplemented
// feature: the original's rtpe_instance_id). Safe to call more than once;
// only the first call takes effect, matching the original's
// once-at-startup semantics.
func Init() {
	instanceIDOnce.Do(func() {
		id := strings.ReplaceAll(uuid.NewString(), "-", "")
		instanceID = id[:12]
	})
}

// InstanceID returns the process-wide instance-id, initializing it via
// Init on first use if the caller never called Init explicitly.
func InstanceID() string {
	Init()
	return instanceID
}

// IsDuplicate reports whether every session in sl carries an
// a=rtpengine:<instance-id> attribute matching our own instance-id
// (spec.md §4.8, testable property "Duplicate detection").
func IsDuplicate(sl *SessionList) bool {
	if len(sl.Sessions) == 0 {
		return false
	}
	id := InstanceID()
	for _, sess := range sl.Sessions {
		a := sess.Attributes.First(AttrRtpengine)
		if a == nil || a.Value != id {
			return false
		}
	}
	return true
}
