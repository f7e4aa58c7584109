// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: Copyright (c) 2024, Emir Aganovic

package sdp

// PayloadCodec is one payload type's reconciled codec parameters, folded
// together from a=rtpmap / a=fmtp / a=rtcp-fb attributes that share the
// same payload type, falling back to the RFC 3551 static table entry when
// no a=rtpmap was given for a static (0-34) payload type (spec.md §4.3
// "codec reconciliation").
type PayloadCodec struct {
	PayloadType int
	Encoding    string
	ClockRate   int
	Channels    int
	Fmtp        string
	RTCPFB      []string
	FromRTPMap  bool // false if purely taken from the static table
}

// CodecStore is the ordered, payload-type-keyed codec list a StreamParams
// carries (spec.md §3). Order follows the m= line's format list, which is
// the offer/answer negotiated preference order.
type CodecStore struct {
	ByPayloadType map[int]*PayloadCodec
	Order         []int
}

func NewCodecStore() CodecStore {
	return CodecStore{ByPayloadType: make(map[int]*PayloadCodec)}
}

func (cs *CodecStore) Add(c *PayloadCodec) {
	if cs.ByPayloadType == nil {
		cs.ByPayloadType = make(map[int]*PayloadCodec)
	}
	if _, ok := cs.ByPayloadType[c.PayloadType]; !ok {
		cs.Order = append(cs.Order, c.PayloadType)
	}
	cs.ByPayloadType[c.PayloadType] = c
}

func (cs CodecStore) Get(pt int) (*PayloadCodec, bool) {
	c, ok := cs.ByPayloadType[pt]
	return c, ok
}

// StaticPayloadTable is the RFC 3551 §6 static payload type assignment,
// used as the reconciliation fallback for payload types in [0,34] that the
// m= line lists without a corresponding a=rtpmap (spec.md §4.3). Dynamic
// payload types (96-127, and anything above 34 generally) have no entry
// here and fall back further still, to a bare entry carrying only the
// payload type, unless an a=rtpmap supplied them explicitly.
var StaticPayloadTable = map[int]PayloadCodec{
	0:  {PayloadType: 0, Encoding: "PCMU", ClockRate: 8000, Channels: 1},
	3:  {PayloadType: 3, Encoding: "GSM", ClockRate: 8000, Channels: 1},
	4:  {PayloadType: 4, Encoding: "G723", ClockRate: 8000, Channels: 1},
	5:  {PayloadType: 5, Encoding: "DVI4", ClockRate: 8000, Channels: 1},
	6:  {PayloadType: 6, Encoding: "DVI4", ClockRate: 16000, Channels: 1},
	7:  {PayloadType: 7, Encoding: "LPC", ClockRate: 8000, Channels: 1},
	8:  {PayloadType: 8, Encoding: "PCMA", ClockRate: 8000, Channels: 1},
	9:  {PayloadType: 9, Encoding: "G722", ClockRate: 8000, Channels: 1},
	10: {PayloadType: 10, Encoding: "L16", ClockRate: 44100, Channels: 2},
	11: {PayloadType: 11, Encoding: "L16", ClockRate: 44100, Channels: 1},
	12: {PayloadType: 12, Encoding: "QCELP", ClockRate: 8000, Channels: 1},
	13: {PayloadType: 13, Encoding: "CN", ClockRate: 8000, Channels: 1},
	14: {PayloadType: 14, Encoding: "MPA", ClockRate: 90000, Channels: 1},
	15: {PayloadType: 15, Encoding: "G728", ClockRate: 8000, Channels: 1},
	16: {PayloadType: 16, Encoding: "DVI4", ClockRate: 11025, Channels: 1},
	17: {PayloadType: 17, Encoding: "DVI4", ClockRate: 22050, Channels: 1},
	18: {PayloadType: 18, Encoding: "G729", ClockRate: 8000, Channels: 1},
	25: {PayloadType: 25, Encoding: "CelB", ClockRate: 90000, Channels: 0},
	26: {PayloadType: 26, Encoding: "JPEG", ClockRate: 90000, Channels: 0},
	28: {PayloadType: 28, Encoding: "nv", ClockRate: 90000, Channels: 0},
	31: {PayloadType: 31, Encoding: "H261", ClockRate: 90000, Channels: 0},
	32: {PayloadType: 32, Encoding: "MPV", ClockRate: 90000, Channels: 0},
	33: {PayloadType: 33, Encoding: "MP2T", ClockRate: 90000, Channels: 0},
	34: {PayloadType: 34, Encoding: "H263", ClockRate: 90000, Channels: 0},
}

// ReconcileCodecs folds rtpmap/fmtp/rtcp-fb attributes from a media's
// AttributeSet together, keyed by payload type, falling back to
// StaticPayloadTable for any format listed on the m= line that has no
// explicit a=rtpmap (spec.md §4.3). A format with neither a rtpmap nor a
// static table entry is never dropped: it is kept as a bare entry carrying
// only its payload type, so every declared format survives reconciliation.
func ReconcileCodecs(formats []string, attrs *AttributeSet) CodecStore {
	store := NewCodecStore()

	fmtpByPT := make(map[int]string)
	for _, a := range attrs.All(AttrFMTP) {
		if a.FMTP != nil {
			fmtpByPT[a.FMTP.PayloadType] = a.FMTP.Params
		}
	}
	fbByPT := make(map[int][]string)
	for _, a := range attrs.All(AttrRTCPFB) {
		if a.RTCPFB != nil {
			fbByPT[a.RTCPFB.PayloadType] = append(fbByPT[a.RTCPFB.PayloadType], a.RTCPFB.Value)
		}
	}
	rtpmapByPT := make(map[int]*RTPMap)
	for _, a := range attrs.All(AttrRTPMap) {
		if a.RTPMap != nil {
			rtpmapByPT[a.RTPMap.PayloadType] = a.RTPMap
		}
	}

	for _, fstr := range formats {
		pt, err := atoiSafe(fstr)
		if err != nil {
			continue
		}
		var pc PayloadCodec
		if rm, ok := rtpmapByPT[pt]; ok {
			channels := rm.Channels
			if channels == 0 {
				channels = 1
			}
			pc = PayloadCodec{
				PayloadType: pt,
				Encoding:    rm.Encoding,
				ClockRate:   rm.ClockRate,
				Channels:    channels,
				FromRTPMap:  true,
			}
		} else if static, ok := StaticPayloadTable[pt]; ok {
			pc = static
		} else {
			pc = PayloadCodec{PayloadType: pt}
		}
		pc.Fmtp = fmtpByPT[pt]
		pc.RTCPFB = fbByPT[pt]
		store.Add(&pc)
	}
	return store
}

func atoiSafe(s string) (int, error) {
	n := 0
	if len(s) == 0 {
		return 0, errShortValue
	}
	for _, c := range []byte(s) {
		if c < '0' || c > '9' {
			return 0, errShortValue
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}
