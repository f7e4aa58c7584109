// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: Copyright (c) 2024, Emir Aganovic

// Rewriter: walks the parsed session and, guided by the call's media
// state, emits a new SDP either by editing the original (Replace) or by
// synthesizing from scratch (Create) (spec.md §4.6).
package sdp

import (
	"fmt"
	"strconv"
	"strings"
)

// CallOrigin is the monologue's remembered origin fields, substituted into
// the rewritten o= line when the corresponding Flags are set (spec.md
// §4.6.1 step 1/3).
type CallOrigin struct {
	Username  string
	SessionID string
	Address   NetworkAddress
}

// CallMedia is the call-side desired state for one outgoing media section
// (spec.md §4.6.2-§4.6.4): the relay's own local socket, negotiated
// protocol/codecs, and ICE/DTLS/SDES parameters to emit. This plays the
// role spec.md §1 calls "the call and monologue object graph" — an
// external collaborator the rewriter only reads from.
type CallMedia struct {
	MediaTypeOverride string // empty keeps the original m= media-type token
	LocalAddress      NetworkAddress
	LocalPort         int
	ConsecutivePorts  int // 0 keeps ConsecutivePorts from input; "/N" is emitted whenever the count is above 1, without checking port contiguity
	Protocol          ProtocolID

	Codecs CodecStore // empty means pass through original format list

	ICEUfrag   string
	ICEPwd     string
	ICELite    bool
	Candidates []Candidate // local candidates to advertise

	ICEComplete       bool // advertise only the selected pair
	SelectedRTPCand   *Candidate
	SelectedRTCPCand  *Candidate
	ICEControlling    bool
	RemoteCandidates  []Candidate

	SDES        []Crypto
	Fingerprint Fingerprint
	SetupRole   SetupRole
	TLSID       string

	Ptime int
	MID   string

	RTCPMux     bool
	RTCPAddress *NetworkAddress

	Other []*Attribute // carried-through OTHER attributes to re-emit verbatim

	ForceRelay bool
}

// CallMonologue is the full call-side state the rewriter consults.
type CallMonologue struct {
	Username    string
	SessionName string
	Origin      CallOrigin
	Media       []*CallMedia
	InstanceID  string // non-empty enables loop-protect's a=rtpengine:<id>
}

// replaceCtx threads the shared state of one Replace call.
type replaceCtx struct {
	chopper *Chopper
	mono    *CallMonologue
	flags   Flags
	targets []*VersionStampTarget
}

// Replace edits sl's original buffer in place, preserving byte layout of
// untouched regions, per spec.md §4.6.1.
func Replace(input []byte, sl *SessionList, mono *CallMonologue, flags Flags) (*Chopper, []*VersionStampTarget, error) {
	chopper := NewChopper(input)
	ctx := &replaceCtx{chopper: chopper, mono: mono, flags: flags}

	for _, sess := range sl.Sessions {
		if err := ctx.replaceSession(sess); err != nil {
			return nil, nil, err
		}
	}
	return chopper, ctx.targets, nil
}

func (ctx *replaceCtx) replaceSession(sess *Session) error {
	c := ctx.chopper
	flags := ctx.flags

	// Steps 1-2: emit unchanged input up to the origin version string.
	versionPos, versionLen, ok := locateVersionString(sess)
	if !ok {
		return fmt.Errorf("%w: could not locate o= version string", errFatalStructure)
	}

	if flags.ReplaceUsername || flags.ReplaceOriginFull {
		if err := rewriteOriginField(c, sess, ctx.mono, flags); err != nil {
			return err
		}
	}

	if err := c.CopyUpTo(versionPos); err != nil {
		return err
	}
	outPos := c.OutputLen()
	sess.Origin.OutputVersionPos = outPos
	if err := c.CopyUpTo(versionPos + versionLen); err != nil {
		return err
	}
	ctx.targets = append(ctx.targets, &VersionStampTarget{Pos: outPos, Len: versionLen})

	// Step 3: rewrite origin address.
	if flags.ReplaceOrigin || flags.ReplaceOriginFull {
		if err := rewriteOriginAddress(c, sess, ctx.mono); err != nil {
			return err
		}
	}

	// remaining body: copy through to end of session, applying attribute
	// stripping along the way is handled per-media below; session-level
	// attributes are processed as a block.
	if err := ctx.replaceSessionAttributes(sess); err != nil {
		return err
	}

	mediaIdx := 0
	for _, m := range sess.Media {
		if m.LegacyOSRTP {
			if err := c.SkipOver(m.Pos, m.Len); err != nil {
				return err
			}
			continue
		}
		var cm *CallMedia
		if mediaIdx < len(ctx.mono.Media) {
			cm = ctx.mono.Media[mediaIdx]
		}
		if err := ctx.replaceMedia(sess, m, cm); err != nil {
			return err
		}
		mediaIdx++
	}

	return c.CopyUpToEndOf(sess.Pos, len(sess.Line))
}

// replaceSessionAttributes copies through to the end of the session
// header (through t=/c=/b=), applying the session-level attribute strip
// rules of spec.md §4.6.3, then appends synthesized session attributes.
func (ctx *replaceCtx) replaceSessionAttributes(sess *Session) error {
	c := ctx.chopper
	flags := ctx.flags

	headerEnd := sess.Pos + len(sess.Line)
	if len(sess.Media) > 0 {
		headerEnd = sess.Media[0].Pos
	}

	for _, a := range sess.Attributes.FIFO {
		// Copy through to the attribute's own start first: any header lines
		// (s=/t=/c=/b=) or gap bytes preceding it must reach the output even
		// when the attribute itself ends up stripped.
		if err := c.CopyUpTo(a.Pos); err != nil {
			return err
		}
		if shouldStripSessionAttr(a, flags) {
			if err := c.SkipOver(a.Pos, len(a.Line)); err != nil {
				return err
			}
			continue
		}
		result, body := flags.Manipulations.Global.Apply(a)
		switch result {
		case ManipRemove:
			if err := c.SkipOver(a.Pos, len(a.Line)); err != nil {
				return err
			}
		case ManipSubstitute:
			if err := c.SkipOver(a.Pos, len(a.Line)); err != nil {
				return err
			}
			c.AppendString("a=" + body + "\r\n")
		default:
			if err := c.CopyUpToEndOf(a.Pos, len(a.Line)); err != nil {
				return err
			}
		}
	}

	if err := c.CopyUpTo(headerEnd); err != nil {
		return err
	}

	if ctx.mono.InstanceID != "" {
		c.AppendString("a=rtpengine:" + ctx.mono.InstanceID + "\r\n")
	}
	for _, body := range flags.Manipulations.Global.RenderAdd() {
		c.AppendString(body)
	}
	return nil
}

func shouldStripSessionAttr(a *Attribute, flags Flags) bool {
	if a.ID == AttrIgnore {
		return true
	}
	if isICEAttr(a.ID) && flags.ICEOpt != ICEPassthru {
		return true
	}
	if a.ID == AttrFingerprint || a.ID == AttrSetup || a.ID == AttrTLSID {
		return true
	}
	if isDirectionAttr(a.ID) && !flags.OriginalSendrecv {
		return true
	}
	if a.ID == AttrGroup && a.Group != nil && a.Group.IsBundle {
		return true
	}
	return false
}

func isICEAttr(id AttrID) bool {
	switch id {
	case AttrCandidate, AttrICEUfrag, AttrICEPwd, AttrICELite, AttrICEOptions, AttrICEMismatch, AttrRemoteCandidates, AttrEndOfCandidates:
		return true
	default:
		return false
	}
}

func isDirectionAttr(id AttrID) bool {
	switch id {
	case AttrSendrecv, AttrSendonly, AttrRecvonly, AttrInactive:
		return true
	default:
		return false
	}
}

// replaceMedia implements spec.md §4.6.2-§4.6.4 for one media section.
func (ctx *replaceCtx) replaceMedia(sess *Session, m *Media, cm *CallMedia) error {
	c := ctx.chopper
	flags := ctx.flags

	if m.MediaType == MediaMessage || (cm != nil && cm.ForceRelay) {
		if err := c.CopyUpTo(m.Pos); err != nil {
			return err
		}
		if err := ctx.rewriteMediaAttributes(m, cm); err != nil {
			return err
		}
		return c.CopyUpToEndOf(m.Pos, m.Len)
	}

	if err := c.CopyUpTo(m.Pos); err != nil {
		return err
	}
	c.AppendString(formatMLine(m, cm))
	if err := c.SkipOver(m.Pos, firstLineLen(m.Line)); err != nil {
		return err
	}

	if m.Connection != nil && cm != nil {
		if err := c.SkipOver(m.Pos, connAttrEnd(m)-m.Pos); err != nil {
			return err
		}
	}

	if cm != nil {
		c.AppendString(fmt.Sprintf("c=IN %s %s\r\n", cm.LocalAddress.Family, cm.LocalAddress.Address))
	}

	if err := ctx.rewriteMediaAttributes(m, cm); err != nil {
		return err
	}
	return c.CopyUpToEndOf(m.Pos, m.Len)
}

func firstLineLen(section []byte) int {
	if i := indexByte(section, '\n'); i >= 0 {
		return i + 1
	}
	return len(section)
}

// formatMLine renders the replacement m= line per spec.md §4.6.2.
func formatMLine(m *Media, cm *CallMedia) string {
	mediaType := m.MediaTypeStr
	port := m.Port
	proto := m.Transport
	formats := m.FormatsRaw
	consecutive := m.ConsecutivePorts

	if cm != nil {
		if cm.MediaTypeOverride != "" {
			mediaType = cm.MediaTypeOverride
		}
		port = cm.LocalPort
		if cm.Protocol != ProtoUnknown {
			if tok := ProtocolToken(cm.Protocol); tok != "" {
				proto = tok
			}
		}
		if cm.ConsecutivePorts > 0 {
			consecutive = cm.ConsecutivePorts
		}
		if ResolveProtocol(proto) != ProtoUnknown && len(cm.Codecs.Order) > 0 {
			pts := make([]string, 0, len(cm.Codecs.Order))
			for _, pt := range cm.Codecs.Order {
				pts = append(pts, strconv.Itoa(pt))
			}
			formats = strings.Join(pts, " ")
		}
	}

	ports := strconv.Itoa(port)
	if consecutive > 1 {
		ports += "/" + strconv.Itoa(consecutive)
	}
	return fmt.Sprintf("m=%s %s %s %s\r\n", mediaType, ports, proto, formats)
}

// rewriteMediaAttributes applies the strip rules of spec.md §4.6.4 to the
// media's existing attributes, then appends the synthesized block.
func (ctx *replaceCtx) rewriteMediaAttributes(m *Media, cm *CallMedia) error {
	c := ctx.chopper
	flags := ctx.flags
	ms := flags.Manipulations.forMediaType(m.MediaType)

	attrStart := m.Pos + firstLineLen(m.Line)
	if m.Connection != nil {
		attrStart = connAttrEnd(m)
	}
	if err := c.CopyUpTo(attrStart); err != nil {
		return err
	}

	hasProto := ResolveProtocol(m.Transport) != ProtoUnknown
	hasCodecs := cm != nil && len(cm.Codecs.Order) > 0

	for _, a := range m.Attributes.FIFO {
		if err := c.CopyUpTo(a.Pos); err != nil {
			return err
		}
		if shouldStripMediaAttr(a, flags, hasProto, hasCodecs, cm != nil) {
			if err := c.SkipOver(a.Pos, len(a.Line)); err != nil {
				return err
			}
			continue
		}
		result, body := ms.Apply(a)
		switch result {
		case ManipRemove:
			if err := c.SkipOver(a.Pos, len(a.Line)); err != nil {
				return err
			}
		case ManipSubstitute:
			if err := c.SkipOver(a.Pos, len(a.Line)); err != nil {
				return err
			}
			c.AppendString("a=" + body + "\r\n")
		default:
			if err := c.CopyUpToEndOf(a.Pos, len(a.Line)); err != nil {
				return err
			}
		}
	}

	if cm != nil {
		for _, body := range synthesizeMediaAttrs(m, cm, flags) {
			result, sub := ms.Apply(&Attribute{Name: attrNameOf(body), Key: attrNameOf(body), Value: body})
			if result == ManipRemove {
				continue
			}
			if result == ManipSubstitute {
				c.AppendString("a=" + sub + "\r\n")
				continue
			}
			c.AppendString("a=" + body + "\r\n")
		}
	}
	for _, body := range ms.RenderAdd() {
		c.AppendString(body)
	}
	return nil
}

func attrNameOf(body string) string {
	if i := strings.IndexByte(body, ':'); i >= 0 {
		return body[:i]
	}
	return body
}

// connAttrEnd returns the byte offset, within the original buffer, of the
// position just past the media's c= line, so the rewriter can skip over it
// and splice in a synthesized replacement. It falls back to just past the
// m= line itself if no c= line is found (e.g. connection inherited from the
// session level, spec.md §4.2).
func connAttrEnd(m *Media) int {
	lines, err := splitLines(m.Line)
	if err != nil {
		return m.Pos + firstLineLen(m.Line)
	}
	for _, ln := range lines[1:] {
		if ln.typ == 'c' {
			return m.Pos + ln.pos + len(ln.full)
		}
	}
	return m.Pos + firstLineLen(m.Line)
}

func shouldStripMediaAttr(a *Attribute, flags Flags, hasProto, hasCodecs, hasCall bool) bool {
	if a.ID == AttrIgnore || a.ID == AttrEndOfCandidates || a.ID == AttrMid || a.ID == AttrOther {
		return true
	}
	if isDirectionAttr(a.ID) && !flags.OriginalSendrecv {
		return true
	}
	if isICEAttr(a.ID) && flags.ICEOpt != ICEPassthru {
		return true
	}
	if a.ID == AttrCandidate && a.Candidate != nil && a.Candidate.Type == "relay" && flags.ICEOpt == ICEForceRelay {
		return true
	}
	if hasProto {
		if (a.ID == AttrRTCP || a.ID == AttrRTCPMux) && flags.ICEOpt != ICEForceRelay {
			return true
		}
		if hasCodecs && (a.ID == AttrRTPMap || a.ID == AttrFMTP || a.ID == AttrRTCPFB) {
			return true
		}
		if a.ID == AttrPtime && hasCall {
			return true
		}
		if (a.ID == AttrCrypto || a.ID == AttrFingerprint || a.ID == AttrSetup || a.ID == AttrTLSID) && flags.ICEOpt != ICEPassthru {
			return true
		}
	}
	return false
}

// synthesizeMediaAttrs renders the appended attribute block in the order
// specified by spec.md §4.6.4: mid; label; rtpmap/fmtp/rtcp-fb per codec;
// carried OTHER; sendrecv; rtcp/rtcp-mux; SDES crypto; DTLS
// setup/fingerprint/tls-id; ptime; ICE ufrag/pwd/options/candidates/eoc.
func synthesizeMediaAttrs(m *Media, cm *CallMedia, flags Flags) []string {
	var out []string

	if cm.MID != "" {
		out = append(out, "mid:"+cm.MID)
	}
	if flags.SIPRec && m.Attributes.First(AttrLabel) != nil {
		out = append(out, "label:"+m.Attributes.First(AttrLabel).Value)
	}

	if ResolveProtocol(m.Transport) != ProtoUnknown || cm.Protocol != ProtoUnknown {
		for _, pt := range cm.Codecs.Order {
			pc := cm.Codecs.ByPayloadType[pt]
			rtpmap := fmt.Sprintf("rtpmap:%d %s/%d", pc.PayloadType, pc.Encoding, pc.ClockRate)
			if pc.Channels > 1 {
				rtpmap += fmt.Sprintf("/%d", pc.Channels)
			}
			out = append(out, rtpmap)
			if pc.Fmtp != "" {
				out = append(out, fmt.Sprintf("fmtp:%d %s", pc.PayloadType, pc.Fmtp))
			}
			for _, fb := range pc.RTCPFB {
				out = append(out, fmt.Sprintf("rtcp-fb:%d %s", pc.PayloadType, fb))
			}
		}
	}

	for _, a := range cm.Other {
		out = append(out, a.Name+":"+a.Value)
	}

	if !flags.OriginalSendrecv {
		// caller-carried directionality isn't modeled on CallMedia yet;
		// default to sendrecv when synthesizing fresh direction state.
		out = append(out, "sendrecv")
	}

	if cm.RTCPMux {
		out = append(out, "rtcp-mux")
	}
	if !cm.RTCPMux && cm.RTCPAddress != nil {
		out = append(out, fmt.Sprintf("rtcp:%d IN %s %s", cm.LocalPort+1, cm.RTCPAddress.Family, cm.RTCPAddress.Address))
	}

	for _, sd := range cm.SDES {
		out = append(out, "crypto:"+FormatCrypto(sd, flags.SDESPad))
	}

	if len(cm.Fingerprint.Digest) > 0 {
		out = append(out, "setup:"+cm.SetupRole.String())
		out = append(out, "fingerprint:"+FormatFingerprint(cm.Fingerprint))
		if cm.TLSID != "" {
			out = append(out, "tls-id:"+cm.TLSID)
		}
	}

	if cm.Ptime > 0 {
		out = append(out, fmt.Sprintf("ptime:%d", cm.Ptime))
	}

	if cm.ICEUfrag != "" {
		out = append(out, "ice-ufrag:"+cm.ICEUfrag)
		out = append(out, "ice-pwd:"+cm.ICEPwd)
	}

	candidates := candidatesToEmit(cm)
	if !cm.ICEComplete && len(candidates) > 0 {
		out = append(out, "ice-options:trickle")
	}
	for _, cand := range candidates {
		out = append(out, "candidate:"+FormatCandidate(cand))
	}
	if cm.ICEControlling && len(cm.RemoteCandidates) > 0 {
		var sb strings.Builder
		sb.WriteString("remote-candidates:")
		for i, rc := range cm.RemoteCandidates {
			if i > 0 {
				sb.WriteString(" ")
			}
			fmt.Fprintf(&sb, "%d %s %d", rc.Component, rc.Address, rc.Port)
		}
		out = append(out, sb.String())
	}
	if len(candidates) > 0 {
		out = append(out, "end-of-candidates")
	}

	return out
}

// candidatesToEmit implements spec.md §4.6.4 "Candidate emission": only
// the selected pair if ICE is COMPLETED, else the full local candidate
// set.
func candidatesToEmit(cm *CallMedia) []Candidate {
	if cm.ICEComplete {
		var out []Candidate
		if cm.SelectedRTPCand != nil {
			out = append(out, *cm.SelectedRTPCand)
		}
		if !cm.RTCPMux && cm.SelectedRTCPCand != nil {
			out = append(out, *cm.SelectedRTCPCand)
		}
		return out
	}
	return cm.Candidates
}

// locateVersionString finds the byte range of the o= line's version token
// inside the session's original buffer slice.
func locateVersionString(sess *Session) (pos int, length int, ok bool) {
	lines, err := splitLines(sess.Line)
	if err != nil {
		return 0, 0, false
	}
	for _, ln := range lines {
		if ln.typ != 'o' {
			continue
		}
		f := fields(string(ln.val))
		if len(f) < 3 {
			return 0, 0, false
		}
		// locate f[2] (the version token) within ln.val by byte offset
		idx := fieldByteOffset(ln.val, 2)
		if idx < 0 {
			return 0, 0, false
		}
		// ln.val starts just past "o=" within ln.full; account for that.
		headerLen := len(ln.full) - len(ln.val)
		return sess.Pos + ln.pos + headerLen + idx, len(f[2]), true
	}
	return 0, 0, false
}

// fieldByteOffset returns the byte offset of the n-th whitespace-delimited
// field within s, or -1 if there aren't that many fields.
func fieldByteOffset(s []byte, n int) int {
	i := 0
	field := 0
	for i < len(s) {
		for i < len(s) && s[i] == ' ' {
			i++
		}
		if i >= len(s) {
			break
		}
		if field == n {
			return i
		}
		for i < len(s) && s[i] != ' ' {
			i++
		}
		field++
	}
	return -1
}

// fieldRange returns the [start,end) byte range of the n-th whitespace-
// delimited field within s, or ok=false if there aren't that many fields.
func fieldRange(s []byte, n int) (start, end int, ok bool) {
	i := 0
	field := 0
	for i < len(s) {
		for i < len(s) && s[i] == ' ' {
			i++
		}
		if i >= len(s) {
			break
		}
		fstart := i
		for i < len(s) && s[i] != ' ' {
			i++
		}
		if field == n {
			return fstart, i, true
		}
		field++
	}
	return 0, 0, false
}

// originLineBase locates sess's o= line and returns the line's on-disk
// value slice (ln.val, everything after "o=") plus the byte offset of
// ln.val[0] within the original buffer.
func originLineBase(sess *Session) (val []byte, base int, ok bool) {
	lines, err := splitLines(sess.Line)
	if err != nil {
		return nil, 0, false
	}
	for _, ln := range lines {
		if ln.typ != 'o' {
			continue
		}
		headerLen := len(ln.full) - len(ln.val)
		return ln.val, sess.Pos + ln.pos + headerLen, true
	}
	return nil, 0, false
}

// rewriteOriginField rewrites the o= username (field 0, spec.md §4.6.1 step
// 1) and, when ReplaceOriginFull is set, the session-id (field 1), before
// the version-string copy begins. Untouched o= fields (including the
// version string itself, handled separately by the caller/version
// reconciler) keep their original bytes.
func rewriteOriginField(c *Chopper, sess *Session, mono *CallMonologue, flags Flags) error {
	val, base, ok := originLineBase(sess)
	if !ok {
		return fmt.Errorf("%w: could not locate o= line for origin rewrite", errFatalStructure)
	}

	replaceField := func(idx int, newValue string) error {
		start, end, ok := fieldRange(val, idx)
		if !ok {
			return fmt.Errorf("%w: o= line missing field %d", errFatalStructure, idx)
		}
		if err := c.CopyUpTo(base + start); err != nil {
			return err
		}
		if err := c.SkipOver(base+start, end-start); err != nil {
			return err
		}
		c.AppendString(newValue)
		return nil
	}

	if (flags.ReplaceUsername || flags.ReplaceOriginFull) && mono.Origin.Username != "" {
		if err := replaceField(0, mono.Origin.Username); err != nil {
			return err
		}
	}
	if flags.ReplaceOriginFull && mono.Origin.SessionID != "" {
		if err := replaceField(1, mono.Origin.SessionID); err != nil {
			return err
		}
	}
	return nil
}

// rewriteOriginAddress rewrites the o= line's nettype/addrtype/address
// fields (spec.md §4.6.1 step 3). Called after the version-string copy, so
// the chopper's current position is already past the version token.
func rewriteOriginAddress(c *Chopper, sess *Session, mono *CallMonologue) error {
	if mono.Origin.Address.Address == "" {
		return nil
	}
	val, base, ok := originLineBase(sess)
	if !ok {
		return fmt.Errorf("%w: could not locate o= line for origin address rewrite", errFatalStructure)
	}
	// fields: 0 username, 1 session-id, 2 version, 3 nettype, 4 addrtype, 5 address
	start3, _, ok3 := fieldRange(val, 3)
	_, end5, ok5 := fieldRange(val, 5)
	if !ok3 || !ok5 {
		return fmt.Errorf("%w: o= line missing nettype/addrtype/address fields", errFatalStructure)
	}
	if err := c.CopyUpTo(base + start3); err != nil {
		return err
	}
	if err := c.SkipOver(base+start3, end5-start3); err != nil {
		return err
	}
	nettype := mono.Origin.Address.NetworkType
	if nettype == "" {
		nettype = "IN"
	}
	c.AppendString(fmt.Sprintf("%s %s %s", nettype, mono.Origin.Address.Family, mono.Origin.Address.Address))
	return nil
}

// Create synthesizes a brand-new SDP body from a monologue's state,
// without reference to any parsed input (spec.md §4.6.5).
func Create(mono *CallMonologue, flags Flags) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString("v=0\r\n")

	username := mono.Username
	if username == "" {
		username = "-"
	}
	ntp := GetCurrentNTPTimestamp()
	addr := mono.Origin.Address
	fmt.Fprintf(&sb, "o=%s %d %d IN %s %s\r\n", username, ntp, ntp, addr.Family, addr.Address)

	name := mono.SessionName
	if name == "" {
		name = "-"
	}
	fmt.Fprintf(&sb, "s=%s\r\n", name)
	sb.WriteString("t=0 0\r\n")

	if mono.InstanceID != "" {
		sb.WriteString("a=rtpengine:" + mono.InstanceID + "\r\n")
	}

	for _, cm := range mono.Media {
		mediaType := cm.MediaTypeOverride
		if mediaType == "" {
			mediaType = "audio"
		}
		formats := ""
		if len(cm.Codecs.Order) > 0 {
			pts := make([]string, 0, len(cm.Codecs.Order))
			for _, pt := range cm.Codecs.Order {
				pts = append(pts, strconv.Itoa(pt))
			}
			formats = strings.Join(pts, " ")
		}
		proto := ProtocolToken(cm.Protocol)
		if proto == "" {
			proto = "RTP/AVP"
		}
		fmt.Fprintf(&sb, "m=%s %d %s %s\r\n", mediaType, cm.LocalPort, proto, formats)
		fmt.Fprintf(&sb, "c=IN %s %s\r\n", cm.LocalAddress.Family, cm.LocalAddress.Address)

		for _, body := range synthesizeMediaAttrs(&Media{Transport: proto, MediaType: ParseMediaType(mediaType)}, cm, flags) {
			sb.WriteString("a=" + body + "\r\n")
		}
	}

	return []byte(sb.String()), nil
}
