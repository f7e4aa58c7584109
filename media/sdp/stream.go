// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: Copyright (c) 2024, Emir Aganovic

// Stream extractor: folds a parsed Session's media into per-media
// StreamParams (spec.md §4.3).
package sdp

import "fmt"

// ExtractStreamParams walks one session's media list in order and
// produces one StreamParams per surviving media (spec.md §4.3), applying
// the legacy-OSRTP pair collapse (§4.3.1) across consecutive media of
// matching type along the way.
func ExtractStreamParams(sess *Session, flags Flags) ([]*StreamParams, error) {
	var out []*StreamParams
	var prevProto ProtocolID
	var prevType MediaType
	var prevPort int

	for i, m := range sess.Media {
		sp, err := extractOne(sess, m, flags)
		if err != nil {
			return nil, fmt.Errorf("sdp: media %d: %w", i, err)
		}

		if i > 0 && flags.OSRTPAcceptLegacy && m.MediaType == prevType {
			switch {
			case !IsSRTPProtocol(prevProto) && IsSRTPProtocol(sp.Protocol) && m.Port != 0:
				// prior=RTP, current=SRTP, current port != 0: drop prior, keep current
				if len(out) > 0 {
					out = out[:len(out)-1]
				}
				m.LegacyOSRTP = true
				sp.Flags |= FlagLegacyOSRTP
			case !IsSRTPProtocol(prevProto) && IsSRTPProtocol(sp.Protocol) && m.Port == 0 && prevPort != 0:
				// prior=RTP, current=SRTP, current port==0, prior port!=0: keep prior, discard current
				m.LegacyOSRTP = true
				continue
			case IsSRTPProtocol(prevProto) && !IsSRTPProtocol(sp.Protocol) && prevPort != 0:
				// prior=SRTP, current=RTP, prior port!=0: discard current, mark prior LEGACY_OSRTP|REV
				if len(out) > 0 {
					out[len(out)-1].Flags |= FlagLegacyOSRTP | FlagLegacyOSRTPRev
				}
				continue
			}
		}

		out = append(out, sp)
		prevProto = sp.Protocol
		prevType = m.MediaType
		prevPort = m.Port
	}
	return out, nil
}

func extractOne(sess *Session, m *Media, flags Flags) (*StreamParams, error) {
	sp := &StreamParams{
		MediaType:        m.MediaType,
		MediaTypeStr:     m.MediaTypeStr,
		ConsecutivePorts: m.ConsecutivePorts,
		Protocol:         ResolveProtocol(m.Transport),
	}

	// Step 1: resolve RTP endpoint. ICE presence force-enables
	// trust_address regardless of the caller's setting (spec.md §9 Open
	// Question #3), applied at the same point fill_endpoint runs in the
	// original.
	trustAddress := flags.TrustAddress
	if m.Attributes.First(AttrCandidate) != nil || sess.Attributes.First(AttrCandidate) != nil {
		trustAddress = true
	}
	ep, err := resolveEndpoint(sess, m, m.Port, trustAddress, flags)
	if err != nil {
		return nil, err
	}
	sp.RTPEndpoint = ep

	// Step 2: ICE harvest.
	if ufrag := m.Attributes.First(AttrICEUfrag); ufrag != nil {
		sp.ICEUfrag = ufrag.Value
	} else if ufrag := sess.Attributes.First(AttrICEUfrag); ufrag != nil {
		sp.ICEUfrag = ufrag.Value
	}
	if pwd := m.Attributes.First(AttrICEPwd); pwd != nil {
		sp.ICEPwd = pwd.Value
	} else if pwd := sess.Attributes.First(AttrICEPwd); pwd != nil {
		sp.ICEPwd = pwd.Value
	}
	for _, a := range m.Attributes.All(AttrCandidate) {
		if a.Candidate != nil && a.Candidate.Parsed {
			sp.ICECandidates = append(sp.ICECandidates, *a.Candidate)
			sp.Flags |= FlagICE
		}
	}
	if opts := m.Attributes.First(AttrICEOptions); opts != nil {
		for _, tok := range fields(opts.Value) {
			if tok == "trickle" {
				sp.Flags |= FlagTrickleICE
			}
		}
	}
	if IsTrickleSentinel(ep.Address.IP) {
		sp.Flags |= FlagTrickleICE
	}
	if m.Attributes.First(AttrICELite) != nil || sess.Attributes.First(AttrICELite) != nil {
		sp.Flags |= FlagICELitePeer
	}

	// Step 4/5: ptime/maxptime, codec reconciliation (bandwidth values are
	// not copied into StreamParams).
	if pt := m.Attributes.First(AttrPtime); pt != nil {
		sp.Ptime = atoiOr(pt.Value, 0)
	}
	if mpt := m.Attributes.First(AttrMaxptime); mpt != nil {
		sp.MaxPtime = atoiOr(mpt.Value, 0)
	}
	sp.Codecs = ReconcileCodecs(m.Formats, m.Attributes)
	if _, ok := m.Attributes.ByFirstID[AttrRTCPFB]; ok {
		sp.Flags |= FlagRTCPFB
	}

	// Step 6: SDES harvest.
	for _, a := range m.Attributes.All(AttrCrypto) {
		if a.Crypto != nil {
			sp.SDES = append(sp.SDES, *a.Crypto)
		}
	}

	// Step 7: sendrecv.
	sp.Flags |= FlagSend | FlagRecv
	if m.Attributes.First(AttrRecvonly) != nil {
		sp.Flags &^= FlagSend
	}
	if m.Attributes.First(AttrSendonly) != nil {
		sp.Flags &^= FlagRecv
	}
	if m.Attributes.First(AttrInactive) != nil {
		sp.Flags &^= (FlagSend | FlagRecv)
	}

	// Step 8: setup.
	if s := m.Attributes.First(AttrSetup); s != nil {
		switch s.Setup {
		case SetupActpass:
			sp.Flags |= FlagSetupActive | FlagSetupPassive
		case SetupActive:
			sp.Flags |= FlagSetupActive
		case SetupPassive:
			sp.Flags |= FlagSetupPassive
		}
	}

	// Step 9/10: fingerprint, tls-id.
	if fp := m.Attributes.First(AttrFingerprint); fp != nil && fp.Fingerprint != nil {
		sp.Fingerprint = *fp.Fingerprint
	}
	if tls := m.Attributes.First(AttrTLSID); tls != nil {
		sp.TLSID = tls.Value
	}

	// Step 11: OSRTP upgrade (RFC 8643): plain RTP with fingerprint or SDES
	// present upgrades to its SRTP variant.
	if variant, ok := SRTPVariant(sp.Protocol); ok {
		if len(sp.SDES) > 0 || len(sp.Fingerprint.Digest) > 0 {
			sp.Protocol = variant
		}
	}

	// Step 13: mid, T.38, RTCP endpoint.
	if mid := m.Attributes.First(AttrMid); mid != nil {
		sp.MID = mid.Value
	}
	if label := m.Attributes.First(AttrLabel); label != nil {
		sp.Label = label.Value
	}
	if m.MediaType == MediaImage {
		sp.T38 = extractT38Options(m.Attributes)
	}

	if err := resolveRTCPEndpoint(sess, m, sp, trustAddress, flags); err != nil {
		return nil, err
	}

	for _, a := range m.Attributes.FIFO {
		if a.ID == AttrOther {
			sp.Other = append(sp.Other, a)
		}
	}

	return sp, nil
}

// resolveEndpoint implements the shared connection-fallback rule used for
// both RTP and RTCP (spec.md §4.3 step 1, §4.3.3): if trust_address is
// false, use the caller-supplied received-from address; else the media's
// c=; else the session's c=; else fail.
func resolveEndpoint(sess *Session, m *Media, port int, trustAddress bool, flags Flags) (Endpoint, error) {
	if !trustAddress {
		if flags.ReceivedFromAddress.Address != "" {
			return Endpoint{Address: flags.ReceivedFromAddress, Port: port}, nil
		}
	}
	if m.Connection != nil && m.Connection.Parsed {
		return Endpoint{Address: m.Connection.Address, Port: port}, nil
	}
	if sess.Connection != nil && sess.Connection.Parsed {
		return Endpoint{Address: sess.Connection.Address, Port: port}, nil
	}
	return Endpoint{}, fmt.Errorf("sdp: no usable connection address for media")
}

// resolveRTCPEndpoint applies spec.md §4.3.3.
func resolveRTCPEndpoint(sess *Session, m *Media, sp *StreamParams, trustAddress bool, flags Flags) error {
	if m.Attributes.First(AttrRTCPMux) != nil {
		sp.Flags |= FlagRTCPMux
		return nil
	}

	rtcpAttr := m.Attributes.First(AttrRTCP)
	if rtcpAttr == nil || m.ConsecutivePorts > 1 {
		sp.Flags |= FlagImplicitRTCP
		return nil
	}
	if rtcpAttr.RTCP == nil {
		sp.Flags |= FlagImplicitRTCP
		return nil
	}
	if rtcpAttr.RTCP.Port == m.Port && !IsTrickleSentinel(sp.RTPEndpoint.Address.IP) {
		sp.Flags |= FlagRTCPMux
		return nil
	}

	if rtcpAttr.RTCP.Address != nil {
		sp.RTCPEndpoint = Endpoint{Address: *rtcpAttr.RTCP.Address, Port: rtcpAttr.RTCP.Port}
		return nil
	}
	ep, err := resolveEndpoint(sess, m, rtcpAttr.RTCP.Port, trustAddress, flags)
	if err != nil {
		return err
	}
	sp.RTCPEndpoint = ep
	return nil
}

func atoiOr(s string, def int) int {
	n, err := atoiSafe(s)
	if err != nil {
		return def
	}
	return n
}
