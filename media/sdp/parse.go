// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: Copyright (c) 2024, Emir Aganovic

// Session parser: the line-type dispatch driving v=/o=/s=/t=/c=/b=/m=/a=
// into a Session -> Media -> Attribute tree (spec.md §4.2).
package sdp

import (
	"fmt"
	"strconv"
	"strings"
)

// protocolByToken resolves the m= line's transport token to the relay's
// internal protocol descriptor (spec.md §4.3 step 3).
var protocolByToken = map[string]ProtocolID{
	"RTP/AVP":            ProtoRTPAVP,
	"RTP/AVPF":           ProtoRTPAVPF,
	"RTP/SAVP":           ProtoRTPSAVP,
	"RTP/SAVPF":          ProtoRTPSAVPF,
	"UDP/TLS/RTP/SAVP":   ProtoUDPTLSRTPSAVP,
	"UDP/TLS/RTP/SAVPF":  ProtoUDPTLSRTPSAVPF,
}

// ParseOptions controls session-parser leniency (spec.md §4.2/§6).
type ParseOptions struct {
	Fragment bool // synthesize an empty session when the body doesn't start with v=
	Strict   bool // if false, a bare empty line terminates parsing early
}

// Parse parses an SDP body into a SessionList (spec.md §4.2). It returns a
// fatal error on malformed line structure: a missing '=' at position 1, an
// unrecognized line type, or s=/t=/o= appearing inside a media section.
// Attribute-level semantic errors never reach here as errors — they are
// downgraded to AttrIgnore by ParseAttribute (spec.md §4.1/§7).
func Parse(body []byte, opts ParseOptions) (*SessionList, error) {
	lines, err := splitLines(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedLine, err)
	}

	sl := &SessionList{raw: body}
	var cur *Session
	var curMedia *Media

	closeSession := func(endPos int) {
		if cur == nil {
			return
		}
		cur.Line = body[cur.Pos:endPos]
		sl.Sessions = append(sl.Sessions, cur)
	}
	closeMedia := func(endPos int) {
		if curMedia == nil {
			return
		}
		curMedia.Line = body[curMedia.Pos:endPos]
		curMedia.Len = len(curMedia.Line)
	}

	for _, ln := range lines {
		if len(trimNewline(ln.full)) == 0 {
			if !opts.Strict {
				break
			}
			continue
		}

		switch ln.typ {
		case 'v':
			if string(ln.val) != "0" {
				return nil, fmt.Errorf("%w: v= must be 0, got %q", errFatalStructure, ln.val)
			}
			closeMedia(ln.pos)
			closeSession(ln.pos)
			cur = &Session{
				Pos:        ln.pos,
				Attributes: NewAttributeSet(),
				Bandwidth:  make(map[string]int),
			}
			curMedia = nil

		case 'o':
			if cur == nil || curMedia != nil {
				return nil, fmt.Errorf("%w: o= outside session header", errFatalStructure)
			}
			origin, err := parseOrigin(string(ln.val))
			if err != nil {
				return nil, fmt.Errorf("%w: %v", errFatalStructure, err)
			}
			cur.Origin = origin

		case 's':
			if curMedia != nil {
				return nil, fmt.Errorf("%w: s= inside media section", errFatalStructure)
			}
			if cur != nil {
				cur.SessionName = string(ln.val)
			}

		case 't':
			if curMedia != nil {
				return nil, fmt.Errorf("%w: t= inside media section", errFatalStructure)
			}
			if cur != nil {
				cur.Timing = string(ln.val)
			}

		case 'c':
			conn := parseConnection(string(ln.val))
			if curMedia != nil {
				curMedia.Connection = conn
			} else if cur != nil {
				cur.Connection = conn
			}

		case 'b':
			parseBandwidth(string(ln.val), cur, curMedia)

		case 'm':
			closeMedia(ln.pos)
			if cur == nil {
				return nil, fmt.Errorf("%w: m= before any v=", errFatalStructure)
			}
			m, err := parseMediaHeader(string(ln.val))
			if err != nil {
				return nil, fmt.Errorf("%w: %v", errFatalStructure, err)
			}
			m.Pos = ln.pos
			m.Attributes = NewAttributeSet()
			m.Bandwidth = make(map[string]int)
			m.SDPMediaIndex = len(cur.Media)
			m.CLinePos = -1
			cur.Media = append(cur.Media, m)
			curMedia = m

		case 'a':
			if cur == nil {
				if !opts.Fragment {
					return nil, fmt.Errorf("%w: a= before any v=", errFatalStructure)
				}
				cur = &Session{
					Attributes: NewAttributeSet(),
					Bandwidth:  make(map[string]int),
				}
			}
			a := ParseAttribute(string(ln.val), ln.full, ln.pos)
			target := cur.Attributes
			if curMedia != nil {
				target = curMedia.Attributes
			}
			target.Add(a)

		case 'k', 'i', 'u', 'e', 'p', 'r', 'z':
			// silently tolerated (spec.md §4.2)

		default:
			return nil, fmt.Errorf("%w: unrecognized line type %q", errFatalStructure, string(ln.typ))
		}

		if curMedia != nil && curMedia.CLinePos < 0 {
			switch ln.typ {
			case 'b', 'a', 'c', 'k':
				curMedia.CLinePos = ln.pos
			}
		}
	}

	endPos := len(body)
	closeMedia(endPos)
	closeSession(endPos)

	if len(sl.Sessions) == 0 {
		if opts.Fragment {
			sl.Sessions = append(sl.Sessions, &Session{
				Attributes: NewAttributeSet(),
				Bandwidth:  make(map[string]int),
			})
		} else {
			return nil, fmt.Errorf("%w: body does not start with v=", errFatalStructure)
		}
	}

	return sl, nil
}

// parseOrigin parses "username session-id version-string nettype addrtype
// address" (spec.md §3 Origin).
func parseOrigin(val string) (Origin, error) {
	f := fields(val)
	if len(f) < 6 {
		return Origin{}, fmt.Errorf("short o= line: %q", val)
	}
	na, err := ParseNetworkAddress(strings.Join(f[3:], " "))
	if err != nil {
		return Origin{}, err
	}
	version, err := strconv.ParseUint(f[2], 10, 64)
	if err != nil {
		return Origin{}, fmt.Errorf("bad o= version %q: %w", f[2], err)
	}
	return Origin{
		Username:      f[0],
		SessionID:     f[1],
		VersionString: f[2],
		Version:       version,
		Address:       na,
	}, nil
}

func parseConnection(val string) *Connection {
	na, err := ParseNetworkAddress(val)
	if err != nil {
		return &Connection{Raw: val, Parsed: false}
	}
	return &Connection{Raw: val, Address: na, Parsed: true}
}

// parseBandwidth recognizes AS: (media only), RR:, RS: (spec.md §4.2).
func parseBandwidth(val string, sess *Session, m *Media) {
	parts := strings.SplitN(val, ":", 2)
	if len(parts) != 2 {
		return
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return
	}
	switch parts[0] {
	case "AS":
		if m != nil {
			m.Bandwidth["AS"] = n
		}
	case "RR":
		if m != nil {
			m.Bandwidth["RR"] = n
		} else if sess != nil {
			sess.Bandwidth["RR"] = n
		}
	case "RS":
		if m != nil {
			m.Bandwidth["RS"] = n
		} else if sess != nil {
			sess.Bandwidth["RS"] = n
		}
	}
}

// parseMediaHeader parses "<media> <port>[/<count>] <proto> <fmt> ..."
// (spec.md §3 Media, RFC 4566 §5.14).
func parseMediaHeader(val string) (*Media, error) {
	f := fields(val)
	if len(f) < 4 {
		return nil, fmt.Errorf("short m= line: %q", val)
	}
	m := &Media{
		MediaTypeStr:     f[0],
		MediaType:        ParseMediaType(f[0]),
		Transport:        f[2],
		FormatsRaw:       strings.Join(f[3:], " "),
		Formats:          f[3:],
		ConsecutivePorts: 1,
	}
	portField := strings.SplitN(f[1], "/", 2)
	port, err := strconv.Atoi(portField[0])
	if err != nil {
		return nil, fmt.Errorf("bad m= port %q: %w", f[1], err)
	}
	m.Port = port
	if len(portField) == 2 {
		count, err := strconv.Atoi(portField[1])
		if err != nil {
			return nil, fmt.Errorf("bad m= port count %q: %w", f[1], err)
		}
		m.ConsecutivePorts = count
	}
	return m, nil
}

// ResolveProtocol looks up a media's transport token against the known
// protocol table (spec.md §4.3 step 3). Unknown tokens resolve to
// ProtoUnknown, which the rewriter passes through unchanged.
func ResolveProtocol(transport string) ProtocolID {
	if p, ok := protocolByToken[transport]; ok {
		return p
	}
	return ProtoUnknown
}

// ProtocolToken is the inverse of ResolveProtocol, used by the rewriter
// when emitting the m= line's transport field.
func ProtocolToken(p ProtocolID) string {
	for tok, id := range protocolByToken {
		if id == p {
			return tok
		}
	}
	return ""
}

// SRTPVariant returns the SRTP counterpart of a plain-RTP protocol, used
// by the OSRTP upgrade rule (spec.md §4.3 step 11). ok is false if p has
// no SRTP variant (it already is one, or it is unknown).
func SRTPVariant(p ProtocolID) (ProtocolID, bool) {
	switch p {
	case ProtoRTPAVP:
		return ProtoRTPSAVP, true
	case ProtoRTPAVPF:
		return ProtoRTPSAVPF, true
	default:
		return p, false
	}
}

// IsSRTPProtocol reports whether p is one of the SRTP-carrying protocols.
func IsSRTPProtocol(p ProtocolID) bool {
	switch p {
	case ProtoRTPSAVP, ProtoRTPSAVPF, ProtoUDPTLSRTPSAVP, ProtoUDPTLSRTPSAVPF:
		return true
	default:
		return false
	}
}
