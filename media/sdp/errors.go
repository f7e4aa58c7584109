// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: Copyright (c) 2024, Emir Aganovic

package sdp

import "errors"

// Sentinel errors the parser/extractor/rewriter wrap with context via
// fmt.Errorf("...: %w", err) (spec.md §7: fatal vs non-fatal errors).
var (
	errShortValue      = errors.New("sdp: value too short or not numeric")
	errMalformedLine    = errors.New("sdp: malformed line")
	errUnknownSection   = errors.New("sdp: attribute outside any section")
	errFatalStructure   = errors.New("sdp: fatal structural error")
	errNoMediaSections  = errors.New("sdp: no media sections")
	errVersionLineMoved = errors.New("sdp: o= line version position changed unexpectedly")
)
