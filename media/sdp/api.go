// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: Copyright (c) 2024, Emir Aganovic

// api.go exposes the engine's call-side surface (spec.md §6): parse,
// extract stream params, replace/create, duplicate detection, and
// standalone candidate parsing. Errors are logged through zerolog before
// being returned, so callers see the failure without re-deriving context.
package sdp

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// ParseSDP parses body into a SessionList (spec.md §6 "sdp_parse").
// Parser errors are logged at WARN with the offending detail before being
// wrapped and returned (spec.md §7).
func ParseSDP(body []byte, opts ParseOptions) (*SessionList, error) {
	sl, err := Parse(body, opts)
	if err != nil {
		log.Warn().Err(err).Int("bodyLen", len(body)).Msg("sdp: parse failed")
		return nil, err
	}
	return sl, nil
}

// ExtractAllStreamParams runs ExtractStreamParams over every session in sl
// (spec.md §6 "sdp_streams").
func ExtractAllStreamParams(sl *SessionList, flags Flags) ([][]*StreamParams, error) {
	out := make([][]*StreamParams, 0, len(sl.Sessions))
	for i, sess := range sl.Sessions {
		sp, err := ExtractStreamParams(sess, flags)
		if err != nil {
			log.Warn().Err(err).Int("session", i).Msg("sdp: stream extraction failed")
			return nil, fmt.Errorf("sdp: session %d: %w", i, err)
		}
		out = append(out, sp)
	}
	return out, nil
}

// RewriteReplace runs the full replace pipeline (spec.md §6 "sdp_replace"):
// edits input in place per session/media, then — if ReplaceSDPVersion or
// ReplaceOriginFull is set — reconciles the o= version numbers (§4.6.1
// step 11, §4.7).
func RewriteReplace(input []byte, sl *SessionList, mono *CallMonologue, flags Flags, versions *VersionState) ([]byte, error) {
	chopper, targets, err := Replace(input, sl, mono, flags)
	if err != nil {
		log.Error().Err(err).Msg("sdp: replace failed")
		return nil, err
	}

	if (flags.ReplaceSDPVersion || flags.ReplaceOriginFull) && versions != nil {
		if err := Reconcile(chopper, versions, targets, flags.ForceIncSDPVersion); err != nil {
			log.Error().Err(err).Msg("sdp: version reconcile failed")
			return nil, err
		}
	}
	return chopper.Bytes(), nil
}

// RewriteCreate synthesizes a new SDP body from scratch (spec.md §6
// "sdp_create").
func RewriteCreate(mono *CallMonologue, flags Flags) ([]byte, error) {
	body, err := Create(mono, flags)
	if err != nil {
		log.Error().Err(err).Msg("sdp: create failed")
		return nil, err
	}
	return body, nil
}

// IsDuplicateSDP is the spec.md §6 "sdp_is_duplicate" entry point.
func IsDuplicateSDP(sl *SessionList) bool {
	return IsDuplicate(sl)
}

// ParseOneCandidate is the spec.md §6 "sdp_parse_candidate" entry point:
// returns (candidate, nil) on success, (nil, err) on structural failure,
// and (candidate-with-Parsed-false, nil) for an unsupported but
// syntactically valid type/transport.
func ParseOneCandidate(text string) (*Candidate, error) {
	c := ParseCandidate(text)
	if c == nil {
		return nil, fmt.Errorf("sdp: malformed candidate: %q", text)
	}
	return c, nil
}
