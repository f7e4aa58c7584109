// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: Copyright (c) 2024, Emir Aganovic

package media

import (
	"crypto/rand"
	"fmt"
	"net"

	"github.com/emiago/rtpsdp/media/sdp"
	"github.com/rs/zerolog/log"
)

// iceCharset is the candidate-foundation/ufrag/pwd alphabet (RFC 5245
// §15.1's ice-char: ALPHA / DIGIT / "+" / "/"), the same charset pion/ice
// draws ICE credentials from.
const iceCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// randomICEString returns an n-character crypto-random string drawn from
// iceCharset, used for locally-generated ICE ufrag/pwd/candidate
// foundations. Built on crypto/rand rather than github.com/pion/randutil:
// the retrieval pack carries no vendored copy of that module to confirm
// its exact exported signature against, and guessing one risks shipping a
// call that would not compile (see DESIGN.md).
func randomICEString(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		log.Error().Err(err).Msg("media: failed to read random bytes for ICE credential")
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = iceCharset[int(b)%len(iceCharset)]
	}
	return string(out)
}

// CallSession is the state one side of a B2BUA call leg keeps between
// offer/answer exchanges (spec.md §3's "call" object): it drives the sdp
// package's Parse/ExtractStreamParams/Replace/Create entry points instead
// of owning raw RTP sockets (out of scope per spec.md §1's
// "packet-stream/socket lifecycle" collaborator).
//
// NOTE: Not thread safe; callers serialize RemoteSDP/LocalSDP around the
// signaling state machine.
type CallSession struct {
	// Laddr is this leg's local media address, used to fill CallMedia's
	// LocalAddress/LocalPort when none is set explicitly per-media.
	Laddr net.UDPAddr
	// ExternalIP overrides Laddr.IP in generated/rewritten SDP, a
	// NAT-traversal knob for deployments behind a static public address.
	ExternalIP net.IP

	DTLSConf DTLSConfig

	Flags     sdp.Flags
	Monologue sdp.CallMonologue

	versions sdp.VersionState

	remote       *sdp.SessionList
	streamParams [][]*sdp.StreamParams

	sessionID      uint64
	sessionVersion uint64
}

// NewCallSession creates a CallSession bound to laddr, seeding the
// monologue's origin with a usable zero-ish state a caller can refine
// before the first LocalSDP/RemoteSDP call.
func NewCallSession(laddr net.UDPAddr) *CallSession {
	sdp.Init()
	c := &CallSession{
		Laddr:     laddr,
		Flags:     sdp.DefaultFlags(),
		sessionID: randomSessionID(),
	}
	c.Monologue.Origin.Address = networkAddressFor(laddr.IP)
	c.Monologue.InstanceID = sdp.InstanceID()
	return c
}

// networkAddressFor builds the o=/c= network-address triple for ip,
// choosing IP4 vs IP6 from the address itself.
func networkAddressFor(ip net.IP) sdp.NetworkAddress {
	family := sdp.FamilyIP4
	if ip != nil && ip.To4() == nil {
		family = sdp.FamilyIP6
	}
	addr := ""
	if ip != nil {
		addr = ip.String()
	}
	return sdp.NetworkAddress{NetworkType: "IN", Family: family, Address: addr}
}

func randomSessionID() uint64 {
	var buf [8]byte
	_, _ = rand.Read(buf[:])
	var id uint64
	for _, b := range buf {
		id = id<<8 | uint64(b)
	}
	return id
}

// connAddress resolves the address SDP should advertise: ExternalIP if
// set, else Laddr.IP.
func (c *CallSession) connAddress() net.IP {
	if c.ExternalIP != nil {
		return c.ExternalIP
	}
	return c.Laddr.IP
}

// GenerateICECredentials fills ufrag/pwd on m with freshly generated
// values if unset, per RFC 5245 §15.4's 4/22-character minimums.
func GenerateICECredentials(m *sdp.CallMedia) {
	if m.ICEUfrag == "" {
		m.ICEUfrag = randomICEString(8)
	}
	if m.ICEPwd == "" {
		m.ICEPwd = randomICEString(24)
	}
}

// CandidateFoundation generates a fresh RFC 5245 §15.1 candidate
// foundation token (up to 32 ice-chars).
func CandidateFoundation() string {
	return randomICEString(8)
}

// RemoteSDP parses a remote offer/answer body, rejects self-loops via the
// duplicate detector (spec.md §4.8), and extracts per-media stream
// parameters (spec.md §4.3).
func (c *CallSession) RemoteSDP(body []byte) ([][]*sdp.StreamParams, error) {
	sl, err := sdp.ParseSDP(body, sdp.ParseOptions{})
	if err != nil {
		return nil, fmt.Errorf("media: failed to parse received SDP: %w", err)
	}

	if sdp.IsDuplicateSDP(sl) {
		return nil, fmt.Errorf("media: received SDP carries our own instance-id, dropping self-loop")
	}

	sp, err := sdp.ExtractAllStreamParams(sl, c.Flags)
	if err != nil {
		return nil, fmt.Errorf("media: failed to extract stream params: %w", err)
	}

	c.remote = sl
	c.streamParams = sp
	return sp, nil
}

// StreamParams returns the stream parameters extracted by the most recent
// RemoteSDP call, or nil if none has been made yet.
func (c *CallSession) StreamParams() [][]*sdp.StreamParams {
	return c.streamParams
}

// LocalSDP generates or rewrites this leg's outgoing SDP: if a remote
// offer/answer was already parsed via RemoteSDP, it rewrites that body in
// place (spec.md §4.6.1); otherwise it synthesizes a fresh body from
// Monologue (spec.md §4.6.5).
func (c *CallSession) LocalSDP(rawRemote []byte) ([]byte, error) {
	if c.Monologue.Origin.Address.Address == "" {
		c.Monologue.Origin.Address = networkAddressFor(c.connAddress())
	}

	if c.remote != nil {
		out, err := sdp.RewriteReplace(rawRemote, c.remote, &c.Monologue, c.Flags, &c.versions)
		if err != nil {
			return nil, fmt.Errorf("media: failed to rewrite local SDP: %w", err)
		}
		return out, nil
	}

	out, err := sdp.RewriteCreate(&c.Monologue, c.Flags)
	if err != nil {
		return nil, fmt.Errorf("media: failed to create local SDP: %w", err)
	}
	return out, nil
}

// Fork returns a copy of c suitable for a re-INVITE/session update,
// preserving identity (instance-id, session-id/version) but dropping the
// previously parsed remote body.
func (c *CallSession) Fork() *CallSession {
	cp := *c
	cp.remote = nil
	cp.streamParams = nil
	return &cp
}
