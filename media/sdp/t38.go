// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: Copyright (c) 2024, Emir Aganovic

// T.38 fax-over-IP sub-attribute handling (spec.md §4.3.2).
package sdp

// T38EC is the UDP error-correction mode of a T.38 stream.
type T38EC int

const (
	T38ECNone T38EC = iota
	T38ECRedundancy
	T38ECFEC
)

// RateManagement is the T38FaxRateManagement value.
type RateManagement int

const (
	RateManagementUnset RateManagement = iota
	RateManagementLocalTCF
	RateManagementTransferredTCF
)

// T38Options is the bundle the stream extractor folds T.38 sub-attributes
// into (spec.md §4.3.2).
type T38Options struct {
	Present bool

	Version int

	EC      T38EC
	ECMin   int
	ECMax   int
	FECSpan int

	MaxDatagram int
	MaxIFP      int

	FillBitRemoval   bool
	TranscodingMMR   bool
	TranscodingJBIG  bool

	RateManagement RateManagement
	MaxBitRate     int
	MaxBuffer      int
}

// extractT38Options folds a media's T.38 sub-attributes into a T38Options
// bundle. Per spec.md §4.3.2 and §9 Open Question #2, an absent UdpEC
// attribute is treated identically to an explicit "redundancy" signal —
// defaults of min=max=3 — rather than as "no error correction"; this is
// decided here, at extraction time, not at parse time, so that "absent"
// and "explicit redundancy" remain indistinguishable downstream.
func extractT38Options(attrs *AttributeSet) T38Options {
	opt := T38Options{EC: T38ECRedundancy, ECMin: 3, ECMax: 3}

	any := false
	if a := attrs.First(AttrT38FaxVersion); a != nil && a.T38 != nil {
		opt.Version = a.T38.IntValue
		any = true
	}
	if a := attrs.First(AttrT38FaxUdpEC); a != nil && a.T38 != nil {
		opt.EC = T38EC(a.T38.IntValue)
		any = true
	}
	if a := attrs.First(AttrT38FaxUdpECDepth); a != nil && a.T38 != nil {
		opt.ECMin = a.T38.IntValue
		opt.ECMax = a.T38.IntValue
		any = true
	}
	if a := attrs.First(AttrT38FaxUdpFECMaxSpan); a != nil && a.T38 != nil {
		opt.FECSpan = a.T38.IntValue
		any = true
	}
	if a := attrs.First(AttrT38FaxMaxDatagram); a != nil && a.T38 != nil {
		opt.MaxDatagram = a.T38.IntValue
		any = true
	}
	if a := attrs.First(AttrT38FaxMaxIFP); a != nil && a.T38 != nil {
		opt.MaxIFP = a.T38.IntValue
		any = true
	}
	if a := attrs.First(AttrT38FaxFillBitRemoval); a != nil && a.T38 != nil {
		opt.FillBitRemoval = a.T38.FlagSet
		any = true
	}
	if a := attrs.First(AttrT38FaxTranscodingMMR); a != nil && a.T38 != nil {
		opt.TranscodingMMR = a.T38.FlagSet
		any = true
	}
	if a := attrs.First(AttrT38FaxTranscodingJBIG); a != nil && a.T38 != nil {
		opt.TranscodingJBIG = a.T38.FlagSet
		any = true
	}
	if a := attrs.First(AttrT38FaxRateManagement); a != nil && a.T38 != nil {
		if a.T38.IntValue == int(RateManagementLocalTCF) {
			opt.RateManagement = RateManagementLocalTCF
		} else {
			opt.RateManagement = RateManagementTransferredTCF
		}
		any = true
	}
	if a := attrs.First(AttrT38MaxBitRate); a != nil && a.T38 != nil {
		opt.MaxBitRate = a.T38.IntValue
		any = true
	}
	if a := attrs.First(AttrT38FaxMaxBuffer); a != nil && a.T38 != nil {
		opt.MaxBuffer = a.T38.IntValue
		any = true
	}
	opt.Present = any
	return opt
}
