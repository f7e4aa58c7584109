// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: Copyright (c) 2024, Emir Aganovic

// Package sdp implements an offer/answer SDP rewriting engine for a media
// relay. It parses SDP bodies into a session tree (RFC 4566), extracts the
// per-media stream parameters a relay needs (addresses, codecs, ICE
// credentials, DTLS fingerprints, SDES keys, T.38 options) and rewrites the
// SDP to reflect the relay's own endpoints either by editing the original
// buffer in place (Replace) or by synthesizing a new body (Create).
package sdp
