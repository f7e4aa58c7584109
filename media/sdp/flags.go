// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: Copyright (c) 2024, Emir Aganovic

// External interfaces / flags (spec.md §6): per-call values, passed as an
// explicit parameter to every operation rather than kept as package-level
// globals, since two concurrent calls can run with different flag sets.
package sdp

// ICEOption selects how the rewriter treats ICE attributes on output.
type ICEOption int

const (
	ICEDefault ICEOption = iota
	ICERemove
	ICEForce
	ICEForceRelay
	ICEPassthru
)

// OpMode is the call's signaling role for this rewrite.
type OpMode int

const (
	OpOther OpMode = iota
	OpOffer
	OpAnswer
	OpPublish
	OpSubscribe
	OpRequest
)

// ManipulationSet is one level's (global, or a specific media type) caller
// directives (spec.md §4.5).
type ManipulationSet struct {
	Add        []string          // attribute bodies to inject verbatim
	Remove     map[string]bool    // case-insensitive name/key/line-value set
	Substitute map[string]string  // case-insensitive name/key/line-value -> replacement body
}

func NewManipulationSet() ManipulationSet {
	return ManipulationSet{
		Remove:     make(map[string]bool),
		Substitute: make(map[string]string),
	}
}

// Manipulations bundles the global bucket plus one bucket per media type
// (spec.md §4.5, §6 "sdp_manipulations buckets").
type Manipulations struct {
	Global  ManipulationSet
	Audio   ManipulationSet
	Video   ManipulationSet
	Image   ManipulationSet
	Message ManipulationSet
	Other   ManipulationSet
}

func (m *Manipulations) forMediaType(t MediaType) *ManipulationSet {
	switch t {
	case MediaAudio:
		return &m.Audio
	case MediaVideo:
		return &m.Video
	case MediaImage:
		return &m.Image
	case MediaMessage:
		return &m.Message
	default:
		return &m.Other
	}
}

// Flags is the full per-call parameter set the rewriter and stream
// extractor consume (spec.md §6).
type Flags struct {
	Fragment bool

	TrustAddress  bool
	Asymmetric    bool
	Unidirectional bool
	StrictSource  bool
	MediaHandover bool

	OriginalSendrecv  bool
	OSRTPAcceptLegacy bool
	OSRTPOfferLegacy  bool
	SIPRec            bool

	LoopProtect   bool
	NoRTCPAttr    bool
	FullRTCPAttr  bool
	RTCPMuxRequire bool
	StripExtmap   bool

	ReplaceUsername   bool
	ReplaceOrigin      bool
	ReplaceOriginFull  bool
	ReplaceSessionName bool
	ReplaceSDPVersion  bool
	ForceIncSDPVersion bool

	SDESPad      bool
	SDESLifetime bool

	ICEOpt ICEOption
	OpMode OpMode

	AddressFamily AddressFamily

	// Direction is a 2-element [near,far] interface tag, used to pick which
	// locally configured address applies to this call leg.
	Direction [2]string

	MediaAddress NetworkAddress

	ReceivedFromAddress NetworkAddress
	ReceivedFromFamily  AddressFamily

	ParsedMediaAddress  NetworkAddress
	ParsedReceivedFrom  NetworkAddress

	Manipulations Manipulations
}

// DefaultFlags returns the zero-value Flags with ICEOpt/OpMode set to
// their explicit default enumerators (everything else's zero value is
// already its spec-default of false/unset).
func DefaultFlags() Flags {
	return Flags{ICEOpt: ICEDefault, OpMode: OpOther}
}
