// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: Copyright (c) 2024, Emir Aganovic

package sdp

import (
	"strconv"
	"strings"
)

// attrVocabulary is the closed attribute-name vocabulary (spec.md §4.1).
// Lookup is a plain map; Go's map is the idiomatic O(1) substitute for the
// original's compile-time perfect hash (spec.md §9).
var attrVocabulary = map[string]AttrID{
	"mid":               AttrMid,
	"rtcp":              AttrRTCP,
	"fmtp":              AttrFMTP,
	"group":             AttrGroup,
	"setup":             AttrSetup,
	"ptime":             AttrPtime,
	"crypto":            AttrCrypto,
	"extmap":            AttrOther, // tagged via OtherType below
	"rtpmap":            AttrRTPMap,
	"ice-pwd":           AttrICEPwd,
	"ice-lite":          AttrICELite,
	"inactive":          AttrInactive,
	"sendrecv":          AttrSendrecv,
	"sendonly":          AttrSendonly,
	"recvonly":          AttrRecvonly,
	"rtcp-mux":          AttrRTCPMux,
	"candidate":         AttrCandidate,
	"ice-ufrag":         AttrICEUfrag,
	"rtpengine":         AttrRtpengine,
	"ice-options":       AttrICEOptions,
	"fingerprint":       AttrFingerprint,
	"tls-id":            AttrTLSID,
	"ice-mismatch":      AttrICEMismatch,
	"remote-candidates": AttrRemoteCandidates,
	"end-of-candidates": AttrEndOfCandidates,
	"rtcp-fb":           AttrRTCPFB,
	"maxptime":          AttrMaxptime,
	"label":             AttrLabel,
	"direction":         AttrDirection,

	"T38FaxVersion":          AttrT38FaxVersion,
	"T38FaxUdpEC":            AttrT38FaxUdpEC,
	"T38FaxUdpECDepth":       AttrT38FaxUdpECDepth,
	"T38FaxUdpFECMaxSpan":    AttrT38FaxUdpFECMaxSpan,
	"T38FaxMaxDatagram":      AttrT38FaxMaxDatagram,
	"T38FaxMaxIFP":           AttrT38FaxMaxIFP,
	"T38FaxFillBitRemoval":   AttrT38FaxFillBitRemoval,
	"T38FaxTranscodingMMR":   AttrT38FaxTranscodingMMR,
	"T38FaxTranscodingJBIG":  AttrT38FaxTranscodingJBIG,
	"T38FaxRateManagement":   AttrT38FaxRateManagement,
	"T38MaxBitRate":          AttrT38MaxBitRate,
	"T38FaxMaxBuffer":        AttrT38FaxMaxBuffer,
	"xg726bitorder":          AttrXG726BitOrder,
}

// ParseAttribute splits the value portion of an a= line (everything after
// "a=") into name/value/key/param, matches the name against the closed
// vocabulary, and populates the corresponding payload field. full is the
// whole raw line slice (including "a=" and trailing newline), pos its
// offset in the input buffer; both are kept for the chopper. Per spec.md
// §4.1, value-level parse failures downgrade the attribute to AttrIgnore
// rather than returning an error — only structural line errors are fatal,
// and those are caught one level up by the session parser.
func ParseAttribute(value string, full []byte, pos int) *Attribute {
	a := &Attribute{Line: full, Pos: pos}

	name := value
	rest := ""
	if i := strings.IndexByte(value, ':'); i >= 0 {
		name = value[:i]
		rest = value[i+1:]
	}
	a.Name = name
	a.Value = rest

	if sp := strings.IndexByte(rest, ' '); sp >= 0 {
		a.Param = rest[sp+1:]
	}
	if rest != "" {
		a.Key = name + ":" + firstWord(rest)
	} else {
		a.Key = name
	}

	id, ok := attrVocabulary[name]
	if !ok {
		a.ID = AttrOther
		a.OtherType = OtherGeneric
		return a
	}
	if name == "extmap" {
		a.ID = AttrOther
		a.OtherType = OtherExtmap
		return a
	}
	a.ID = id

	switch id {
	case AttrRTCP:
		parseRTCPAttr(a, rest)
	case AttrCandidate:
		a.Candidate = ParseCandidate(rest)
	case AttrCrypto:
		a.Crypto = ParseCrypto(rest)
		if a.Crypto == nil {
			a.ID = AttrIgnore
		}
	case AttrGroup:
		a.Group = parseGroup(rest)
	case AttrFingerprint:
		a.Fingerprint = ParseFingerprint(rest)
		if a.Fingerprint == nil {
			a.ID = AttrIgnore
		}
	case AttrSetup:
		a.Setup = ParseSetupRole(strings.TrimSpace(rest))
	case AttrRTPMap:
		a.RTPMap = parseRTPMap(rest)
		if a.RTPMap == nil {
			a.ID = AttrIgnore
		}
	case AttrRTCPFB:
		a.RTCPFB = parsePTAndRest(rest, func(pt int, v string) *RTCPFB {
			return &RTCPFB{PayloadType: pt, Value: v}
		})
	case AttrFMTP:
		a.FMTP = parseFMTPValue(rest)
	case AttrDirection:
		a.Direction = strings.TrimSpace(rest)
	case AttrT38FaxVersion, AttrT38FaxUdpEC, AttrT38FaxUdpECDepth, AttrT38FaxUdpFECMaxSpan,
		AttrT38FaxMaxDatagram, AttrT38FaxMaxIFP, AttrT38FaxFillBitRemoval, AttrT38FaxTranscodingMMR,
		AttrT38FaxTranscodingJBIG, AttrT38FaxRateManagement, AttrT38MaxBitRate, AttrT38FaxMaxBuffer:
		a.T38 = parseT38Attr(id, rest)
	}

	return a
}

func firstWord(s string) string {
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}

// parseRTCPAttr parses "port [IN (IP4|IP6) addr]" (spec.md §4.1 rtcp).
func parseRTCPAttr(a *Attribute, rest string) {
	f := fields(rest)
	if len(f) == 0 {
		a.ID = AttrIgnore
		return
	}
	port, err := strconv.Atoi(f[0])
	if err != nil || port <= 0 || port > 65535 {
		a.ID = AttrIgnore
		return
	}
	r := &RTCPAttr{Port: port}
	if len(f) >= 3 {
		na, err := ParseNetworkAddress(strings.Join(f[1:], " "))
		if err == nil {
			r.Address = &na
		}
	}
	a.RTCP = r
}

// parseGroup tags BUNDLE groups specifically, per spec.md §4.1.
func parseGroup(rest string) *Group {
	f := fields(rest)
	if len(f) == 0 {
		return &Group{}
	}
	g := &Group{Semantics: f[0], Tags: f[1:]}
	g.IsBundle = f[0] == "BUNDLE"
	return g
}

// parseRTPMap parses "pt encoding/rate[/channels]" (spec.md §4.1 rtpmap).
func parseRTPMap(rest string) *RTPMap {
	f := fields(rest)
	if len(f) < 2 {
		return nil
	}
	pt, err := strconv.Atoi(f[0])
	if err != nil {
		return nil
	}
	parts := strings.Split(f[1], "/")
	if len(parts) < 2 {
		return nil
	}
	rate, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil
	}
	channels := 1
	if len(parts) >= 3 {
		if c, err := strconv.Atoi(parts[2]); err == nil {
			channels = c
		}
	}
	return &RTPMap{PayloadType: pt, Encoding: parts[0], ClockRate: rate, Channels: channels}
}

// parsePTAndRest is the shared "payload-type-or-wildcard then opaque
// remainder" shape of rtcp-fb/fmtp (spec.md §4.1).
func parsePTAndRest(rest string, build func(pt int, v string) *RTCPFB) *RTCPFB {
	f := strings.SplitN(strings.TrimSpace(rest), " ", 2)
	if len(f) == 0 {
		return nil
	}
	pt := -1
	if f[0] != "*" {
		n, err := strconv.Atoi(f[0])
		if err != nil {
			return nil
		}
		pt = n
	}
	v := ""
	if len(f) > 1 {
		v = f[1]
	}
	return build(pt, v)
}

func parseFMTPValue(rest string) *FMTP {
	f := strings.SplitN(strings.TrimSpace(rest), " ", 2)
	if len(f) == 0 {
		return nil
	}
	pt := -1
	if f[0] != "*" {
		n, err := strconv.Atoi(f[0])
		if err != nil {
			return nil
		}
		pt = n
	}
	v := ""
	if len(f) > 1 {
		v = f[1]
	}
	return &FMTP{PayloadType: pt, Params: v}
}

// parseT38Attr parses one T.38 sub-attribute value. Most are plain
// integers; UdpEC is a keyword from a small closed set (spec.md §4.1,
// §4.3.2).
func parseT38Attr(id AttrID, rest string) *T38Attr {
	rest = strings.TrimSpace(rest)
	if id == AttrT38FaxUdpEC {
		return &T38Attr{FlagSet: true, IntValue: t38ECKeyword(rest)}
	}
	if id == AttrT38FaxRateManagement {
		return &T38Attr{FlagSet: true, IntValue: t38RateManagementKeyword(rest)}
	}
	if rest == "" {
		return &T38Attr{FlagSet: true}
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return &T38Attr{FlagSet: true}
	}
	return &T38Attr{IntValue: n, FlagSet: n != 0}
}

// t38RateManagementKeyword maps the T38FaxRateManagement keyword vocabulary
// ("localTFC" / "transferredTCF") to the RateManagement enum defined in
// t38.go (spec.md §4.1 "T.38 family"). "localTFC" is not a typo here: it
// preserves the original implementation's own spelling.
func t38RateManagementKeyword(s string) int {
	switch s {
	case "localTFC":
		return int(RateManagementLocalTCF)
	case "transferredTCF":
		return int(RateManagementTransferredTCF)
	default:
		return 0
	}
}

// t38ECKeyword maps the T38FaxUdpEC keyword vocabulary to the T38EC* enum
// values defined in t38.go (spec.md §4.1 "T.38 family").
func t38ECKeyword(s string) int {
	switch s {
	case "t38UDPNoEC":
		return int(T38ECNone)
	case "t38UDPRedundancy":
		return int(T38ECRedundancy)
	case "t38UDPFEC":
		return int(T38ECFEC)
	default:
		return int(T38ECRedundancy)
	}
}
