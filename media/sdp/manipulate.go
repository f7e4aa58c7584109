// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: Copyright (c) 2024, Emir Aganovic

// Manipulation engine: applies caller add/remove/substitute directives per
// session level (spec.md §4.5).
package sdp

import "strings"

// ManipulationResult is the per-attribute outcome of matching against a
// ManipulationSet.
type ManipulationResult int

const (
	ManipKeep ManipulationResult = iota
	ManipRemove
	ManipSubstitute
)

// Apply matches a against ms's remove/substitute directives, trying key,
// then name, then the full line value, first hit wins (spec.md §4.5). A
// directive present in both buckets is removed, never substituted: remove
// is checked first and wins outright, matching the original's
// strip-on-remove-hit behavior. Matching is case-insensitive.
func (ms *ManipulationSet) Apply(a *Attribute) (ManipulationResult, string) {
	if ms == nil {
		return ManipKeep, ""
	}
	candidates := []string{a.Key, a.Name, a.Name + ":" + a.Value}

	for _, c := range candidates {
		lc := strings.ToLower(c)
		if lookupCIBool(ms.Remove, lc) {
			return ManipRemove, ""
		}
	}
	for _, c := range candidates {
		lc := strings.ToLower(c)
		if body, ok := lookupCI(ms.Substitute, lc); ok {
			return ManipSubstitute, body
		}
	}
	return ManipKeep, ""
}

func lookupCI(m map[string]string, lowerKey string) (string, bool) {
	for k, v := range m {
		if strings.ToLower(k) == lowerKey {
			return v, true
		}
	}
	return "", false
}

func lookupCIBool(m map[string]bool, lowerKey string) bool {
	for k := range m {
		if strings.ToLower(k) == lowerKey {
			return true
		}
	}
	return false
}

// RenderAdd renders a ManipulationSet's add directives as full "a=..."
// lines with a trailing CRLF, for the rewriter to append verbatim.
func (ms ManipulationSet) RenderAdd() []string {
	out := make([]string, 0, len(ms.Add))
	for _, body := range ms.Add {
		out = append(out, "a="+body+"\r\n")
	}
	return out
}
