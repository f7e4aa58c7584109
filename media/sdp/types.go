// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: Copyright (c) 2024, Emir Aganovic

package sdp

import "net"

// AttrID is the closed vocabulary of recognized a= attribute names (spec
// §4.1). It plays the role the original's `enum attr_id` plays: a tag that
// both keys the AttributeSet maps and discriminates the Attribute payload.
type AttrID int

const (
	AttrOther AttrID = iota
	AttrMid
	AttrRTCP
	AttrFMTP
	AttrGroup
	AttrSetup
	AttrPtime
	AttrMaxptime
	AttrCrypto
	AttrExtmap
	AttrRTPMap
	AttrICEPwd
	AttrICELite
	AttrInactive
	AttrSendrecv
	AttrSendonly
	AttrRecvonly
	AttrRTCPMux
	AttrCandidate
	AttrICEUfrag
	AttrRtpengine
	AttrICEOptions
	AttrFingerprint
	AttrTLSID
	AttrICEMismatch
	AttrRemoteCandidates
	AttrEndOfCandidates
	AttrRTCPFB
	AttrDirection
	AttrLabel
	AttrIgnore // semantically broken but kept for passthrough

	AttrT38FaxVersion
	AttrT38FaxUdpEC
	AttrT38FaxUdpECDepth
	AttrT38FaxUdpFECMaxSpan
	AttrT38FaxMaxDatagram
	AttrT38FaxMaxIFP
	AttrT38FaxFillBitRemoval
	AttrT38FaxTranscodingMMR
	AttrT38FaxTranscodingJBIG
	AttrT38FaxRateManagement
	AttrT38MaxBitRate
	AttrT38FaxMaxBuffer
	AttrXG726BitOrder
)

// OtherType further tags AttrOther, the way the original distinguishes
// SDP_ATTR_TYPE_EXTMAP from a generic uninterpreted attribute.
type OtherType int

const (
	OtherGeneric OtherType = iota
	OtherExtmap
)

// SetupRole is the value of a=setup.
type SetupRole int

const (
	SetupUnknown SetupRole = iota
	SetupActive
	SetupPassive
	SetupActpass
	SetupHoldconn
)

func ParseSetupRole(s string) SetupRole {
	switch s {
	case "active":
		return SetupActive
	case "passive":
		return SetupPassive
	case "actpass":
		return SetupActpass
	case "holdconn":
		return SetupHoldconn
	default:
		return SetupUnknown
	}
}

func (r SetupRole) String() string {
	switch r {
	case SetupActive:
		return "active"
	case SetupPassive:
		return "passive"
	case SetupActpass:
		return "actpass"
	case SetupHoldconn:
		return "holdconn"
	default:
		return "unknown"
	}
}

// Group is the parsed value of a=group.
type Group struct {
	Semantics string // "BUNDLE", or whatever else followed a=group:
	IsBundle  bool
	Tags      []string
}

// RTCPAttr is the parsed value of a=rtcp.
type RTCPAttr struct {
	Port    int
	Address *NetworkAddress // nil if only a port was given
}

// RTPMap is the parsed value of a=rtpmap.
type RTPMap struct {
	PayloadType int
	Encoding    string
	ClockRate   int
	Channels    int // defaults to 1
}

// RTCPFB is the parsed value of a=rtcp-fb. PayloadType -1 means "*".
type RTCPFB struct {
	PayloadType int
	Value       string // remainder, opaque
}

// FMTP is the parsed value of a=fmtp. PayloadType -1 means "*".
type FMTP struct {
	PayloadType int
	Params      string // remainder, opaque
}

// Fingerprint is the parsed value of a=fingerprint.
type Fingerprint struct {
	HashFunc string // "sha-256", ...
	Digest   []byte
}

// T38Attr carries the value of any single T.38 integer/flag sub-attribute;
// the stream extractor folds a set of these into a T38Options bundle.
type T38Attr struct {
	IntValue int
	FlagSet  bool // for bare / non-"0" valued attributes
}

// Candidate is a parsed ICE candidate (a=candidate), see candidate.go for
// parsing and priority computation.
type Candidate struct {
	Foundation string
	Component  int
	Transport  string // "UDP", "TCP" ...
	Priority   uint32
	Address    string
	Port       int
	Type       string // "host", "srflx", "prflx", "relay", or unknown
	RelAddr    string
	RelPort    int
	Ufrag      string
	Extra      map[string]string // any other extension key/value pairs, preserved verbatim

	Parsed bool // false if Type/Transport were not recognized; attribute is kept but inert for ICE purposes
}

// Crypto is the parsed value of a=crypto (SDES), see crypto.go.
type Crypto struct {
	Tag          int
	Suite        string
	MasterKey    []byte
	MasterSalt   []byte
	Lifetime     uint64 // 0 if unset
	MKI          []byte // big-endian, length MKILen
	MKILen       int
	Unencrypted  bool // UNENCRYPTED_SRTP
	UnencryptedR bool // UNENCRYPTED_SRTCP
	Unauth       bool // UNAUTHENTICATED_SRTP
}

// Attribute is one a= line: the original bytes plus the carved-out
// name/value/key/param slices, a closed-vocabulary tag, and (depending on
// the tag) exactly one populated payload field. Per spec.md §9, this is a
// flat record standing in for the source's C union.
type Attribute struct {
	Line  []byte // full "a=...\r\n" slice of the original buffer (nil if synthesized)
	Pos   int    // byte offset of Line in the original buffer, -1 if synthesized
	Name  string // e.g. "rtpmap"
	Value string // everything after the first ':' (or the whole value if no ':')
	Key   string // name + ":" + first word of Value, when applicable
	Param string // remainder of Value after its first space, if any

	ID        AttrID
	OtherType OtherType

	RTCP        *RTCPAttr
	Candidate   *Candidate
	Crypto      *Crypto
	Group       *Group
	Fingerprint *Fingerprint
	Setup       SetupRole
	RTPMap      *RTPMap
	RTCPFB      *RTCPFB
	FMTP        *FMTP
	T38         *T38Attr
	Direction   string // ATTR_DIRECTION generic passthrough value
}

// AttributeSet holds a media's or session's attributes. It preserves three
// invariants (spec.md §3): the FIFO is source order; ByFirstID[id] equals
// the first FIFO element with that id; ByID[id] equals the FIFO filtered by
// id.
type AttributeSet struct {
	FIFO      []*Attribute
	ByFirstID map[AttrID]*Attribute
	ByID      map[AttrID][]*Attribute
}

func NewAttributeSet() *AttributeSet {
	return &AttributeSet{
		ByFirstID: make(map[AttrID]*Attribute),
		ByID:      make(map[AttrID][]*Attribute),
	}
}

func (as *AttributeSet) Add(a *Attribute) {
	as.FIFO = append(as.FIFO, a)
	if _, ok := as.ByFirstID[a.ID]; !ok {
		as.ByFirstID[a.ID] = a
	}
	as.ByID[a.ID] = append(as.ByID[a.ID], a)
}

func (as *AttributeSet) First(id AttrID) *Attribute {
	return as.ByFirstID[id]
}

func (as *AttributeSet) All(id AttrID) []*Attribute {
	return as.ByID[id]
}

// Origin is the parsed o= line plus the byte position its version string
// occupies in the rewritten output, so the version reconciler can restamp
// it in place after the forward rewrite pass.
type Origin struct {
	Username      string
	SessionID     string
	VersionString string
	Version       uint64
	Address       NetworkAddress

	// OutputVersionPos is filled in by Replace: the offset into the
	// forward-pass output buffer where VersionString was written.
	OutputVersionPos int
}

// Connection is a parsed c= line.
type Connection struct {
	Raw     string // original substring
	Address NetworkAddress
	Parsed  bool
}

// MediaType enumerates the media types the rewriter special-cases.
type MediaType int

const (
	MediaUnknown MediaType = iota
	MediaAudio
	MediaVideo
	MediaImage // T.38
	MediaMessage
	MediaApplication
)

func ParseMediaType(s string) MediaType {
	switch s {
	case "audio":
		return MediaAudio
	case "video":
		return MediaVideo
	case "image":
		return MediaImage
	case "message":
		return MediaMessage
	case "application":
		return MediaApplication
	default:
		return MediaUnknown
	}
}

// Media is one m= section: header fields, attributes, and bookkeeping the
// rewriter needs (c_line_pos, legacy_osrtp, sdp index).
type Media struct {
	Line  []byte // full section slice, m= through (but not including) the next m=/EOF
	Pos   int
	Len   int // length of Line, kept mutable-by-reference via *Media from rewriter bookkeeping

	MediaTypeStr string
	MediaType    MediaType

	Port             int
	ConsecutivePorts int // port count from m= line (1 if absent)
	Transport        string
	FormatsRaw       string
	Formats          []string

	Connection *Connection

	// CLinePos is the byte offset of the first b=/a=/c=/k= line within the
	// media section, used as the anchor for inserting a synthesized c= line
	// when none existed (spec.md §4.2).
	CLinePos int

	Bandwidth map[string]int // "AS","RR","RS" -> value

	Attributes *AttributeSet

	SDPMediaIndex int
	LegacyOSRTP   bool
}

// Session is one SDP body: origin, name, timing, optional connection and
// bandwidth, session-level attributes, and an ordered list of media.
type Session struct {
	Line []byte // full section slice from v= through the end of this session
	Pos  int

	Origin      Origin
	SessionName string
	Timing      string
	Connection  *Connection
	Bandwidth   map[string]int

	Attributes *AttributeSet
	Media      []*Media
}

// SessionList is the result of Parse: one or more Session trees (normally
// one; more than one only occurs in pathological/fragment-recovery cases).
type SessionList struct {
	Sessions []*Session
	raw      []byte // input buffer; slices above alias into this
}

// StreamParams is the per-media projection the relay's call engine
// consumes (spec.md §3). It copies everything it needs out of the parsed
// tree; byte slices it keeps (e.g. Fingerprint.Digest) may still alias the
// input buffer, which must outlive it.
type StreamParams struct {
	RTPEndpoint  Endpoint
	RTCPEndpoint Endpoint // only meaningful if Flags&FlagImplicitRTCP == 0 and RTCPMux == false

	Protocol         ProtocolID
	MediaType        MediaType
	MediaTypeStr     string
	ConsecutivePorts int

	Codecs CodecStore

	ICEUfrag      string
	ICEPwd        string
	ICECandidates []Candidate

	Fingerprint Fingerprint
	TLSID       string
	SDES        []Crypto

	T38 T38Options

	Ptime    int
	MaxPtime int

	MID   string
	Label string

	Flags StreamFlags

	// Other carries attributes the extractor did not specifically model,
	// for passthrough re-emission (spec.md §3).
	Other []*Attribute
}

// Endpoint is a resolved network(address,port) pair.
type Endpoint struct {
	Address NetworkAddress
	Port    int
}

// ProtocolID is the relay's internal transport-protocol identifier,
// resolved from the m= transport token (spec.md §4.3 step 3).
type ProtocolID int

const (
	ProtoUnknown ProtocolID = iota
	ProtoRTPAVP
	ProtoRTPAVPF
	ProtoRTPSAVP
	ProtoRTPSAVPF
	ProtoUDPTLSRTPSAVP
	ProtoUDPTLSRTPSAVPF
	ProtoUDPTLS // placeholder for datachannel-style, not used by audio/video
)

// StreamFlags are the per-stream bit flags derived during extraction
// (spec.md §3).
type StreamFlags uint32

const (
	FlagSend StreamFlags = 1 << iota
	FlagRecv
	FlagICE
	FlagICELitePeer
	FlagTrickleICE
	FlagRTCPMux
	FlagImplicitRTCP
	FlagSetupActive
	FlagSetupPassive
	FlagLegacyOSRTP
	FlagLegacyOSRTPRev
	FlagRTCPFB
)

func (f StreamFlags) Has(bit StreamFlags) bool { return f&bit != 0 }
