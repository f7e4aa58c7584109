// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: Copyright (c) 2024, Emir Aganovic

// ICE candidate parsing, priority computation, and emission (RFC
// 5245/8839). Type preference comes from pion/ice/v2's CandidateType
// instead of a hand-rolled constant table, treating "the ICE agent state
// machine" as an external collaborator the way spec.md §1 frames it —
// only the wire-level candidate shape and the priority arithmetic belong
// to this engine.
package sdp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pion/ice/v2"
)

// ParseCandidate parses an a=candidate value: foundation component
// transport priority address port typ type [raddr addr rport port]
// [extended key/value pairs] (spec.md §4.1). An unrecognized transport or
// type is not a parse error: the candidate is kept with Parsed=false so
// it can still be preserved verbatim on output.
func ParseCandidate(rest string) *Candidate {
	f := fields(rest)
	if len(f) < 8 {
		return nil
	}
	c := &Candidate{
		Foundation: f[0],
		Extra:      make(map[string]string),
	}
	comp, err := strconv.Atoi(f[1])
	if err != nil {
		return nil
	}
	c.Component = comp
	c.Transport = f[2]

	pr, err := strconv.ParseUint(f[3], 10, 32)
	if err != nil {
		return nil
	}
	c.Priority = uint32(pr)
	c.Address = f[4]
	port, err := strconv.Atoi(f[5])
	if err != nil {
		return nil
	}
	c.Port = port

	if f[6] != "typ" {
		return nil
	}
	c.Type = f[7]
	c.Parsed = isKnownCandidateTransport(c.Transport) && isKnownCandidateType(c.Type)

	rem := f[8:]
	for i := 0; i+1 < len(rem); i += 2 {
		switch rem[i] {
		case "raddr":
			c.RelAddr = rem[i+1]
		case "rport":
			if p, err := strconv.Atoi(rem[i+1]); err == nil {
				c.RelPort = p
			}
		case "ufrag":
			c.Ufrag = rem[i+1]
		default:
			c.Extra[rem[i]] = rem[i+1]
		}
	}
	return c
}

func isKnownCandidateTransport(t string) bool {
	return strings.EqualFold(t, "UDP") || strings.EqualFold(t, "TCP")
}

func isKnownCandidateType(t string) bool {
	switch t {
	case "host", "srflx", "prflx", "relay":
		return true
	default:
		return false
	}
}

// iceCandidateType maps the wire type string to pion/ice/v2's
// CandidateType, whose Preference() gives the RFC 5245 §4.1.2.2 type
// preference table.
func iceCandidateType(t string) ice.CandidateType {
	switch t {
	case "host":
		return ice.CandidateTypeHost
	case "srflx":
		return ice.CandidateTypeServerReflexive
	case "prflx":
		return ice.CandidateTypePeerReflexive
	case "relay":
		return ice.CandidateTypeRelay
	default:
		return ice.CandidateTypeHost
	}
}

// CandidatePriority computes the RFC 5245 priority formula:
// (2^24)*type_pref + (2^8)*local_pref + (2^0)*(256-component_id)
// (spec.md §4.6.4 "Candidate priority").
func CandidatePriority(candType string, localPref uint16, component int) uint32 {
	typePref := uint32(iceCandidateType(candType).Preference())
	return typePref<<24 | uint32(localPref)<<8 | (256 - uint32(component))
}

// PassthruPriority implements the PASSTHRU-mode inheritance rule: derive
// type and local preference from the maximum observed priority among the
// peer's component-1 candidates of the same type, then decrement the
// local preference by one — wrapping to lpref=65535 (and tpref--) when the
// incoming local preference is already 0, even if that drives tpref to 0
// (spec.md §4.6.4, §9 Open Questions item 4).
func PassthruPriority(maxPeerPriority uint32, component int) uint32 {
	typePref := maxPeerPriority >> 24
	localPref := (maxPeerPriority >> 8) & 0xFFFF
	if localPref == 0 {
		if typePref > 0 {
			typePref--
		}
		localPref = 65535
	} else {
		localPref--
	}
	return typePref<<24 | localPref<<8 | (256 - uint32(component))
}

// FormatCandidate re-emits a Candidate as the value portion of an
// a=candidate line (spec.md §4.6.4 "Candidate emission").
func FormatCandidate(c Candidate) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %d UDP %d %s %d typ %s", c.Foundation, c.Component, c.Priority, c.Address, c.Port, c.Type)
	if c.RelAddr != "" {
		fmt.Fprintf(&sb, " raddr %s rport %d", c.RelAddr, c.RelPort)
	}
	if c.Ufrag != "" {
		fmt.Fprintf(&sb, " ufrag %s", c.Ufrag)
	}
	return sb.String()
}
