package ext

// XKB fixed keyboard geometry reported by the stubbed minors (spec.md
// §4.F): 8..255 valid keycodes, one group, and autorepeat with a 500ms
// delay and a 30ms interval.
const (
	xkbMinKeycode      = 8
	xkbMaxKeycode      = 255
	xkbNumGroups       = 1
	xkbRepeatDelay     = 500
	xkbRepeatInterval  = 30
	xkbPerKeyRepeatLen = 32 // 256 keycodes / 8 bits per byte
)

func (m *Multiplexer) xkb(req Request) []byte {
	switch req.Minor() {
	case 0: // UseExtension
		return m.xkbUseExtension(req)
	case 8: // GetMap
		return m.xkbGetMap(req)
	case 17, 24: // GetNames
		return m.xkbGetNames(req)
	case 6: // GetControls
		return m.xkbGetControls(req)
	case 10: // GetCompatMap
		return m.xkbGetCompatMap(req)
	case 13: // GetIndicatorMap
		return m.xkbGetIndicatorMap(req)
	}
	return nil
}

func (m *Multiplexer) xkbUseExtension(req Request) []byte {
	e := startReply(req)
	e.PutUint8(1) // supported
	e.PutPadN(1)
	e.PutUint16(1) // server major
	e.PutUint16(0) // server minor
	e.PutPadN(18)
	return finishReply(req, e)
}

func (m *Multiplexer) xkbGetMap(req Request) []byte {
	e := startReply(req)
	e.PutUint8(0) // deviceID
	e.PutUint8(xkbMinKeycode)
	e.PutUint8(xkbMaxKeycode)
	e.PutUint8(0) // present flags: none
	e.PutPadN(20)
	return finishReply(req, e)
}

func (m *Multiplexer) xkbGetNames(req Request) []byte {
	e := startReply(req)
	e.PutUint8(0) // deviceID
	e.PutPadN(1)
	e.PutUint32(0) // which
	e.PutUint8(xkbMinKeycode)
	e.PutUint8(xkbMaxKeycode)
	e.PutUint8(xkbNumGroups)
	e.PutPadN(15)
	return finishReply(req, e)
}

func (m *Multiplexer) xkbGetControls(req Request) []byte {
	e := startReply(req)
	e.PutUint8(0) // deviceID
	e.PutPadN(1)
	e.PutUint16(xkbRepeatDelay)
	e.PutUint16(xkbRepeatInterval)
	e.PutPadN(18)
	perKeyRepeat := make([]byte, xkbPerKeyRepeatLen)
	for i := range perKeyRepeat {
		perKeyRepeat[i] = 0xFF
	}
	e.PutBytes(perKeyRepeat) // all-1s by-key repeat map: every key repeats
	return finishReply(req, e)
}

func (m *Multiplexer) xkbGetCompatMap(req Request) []byte {
	e := startReply(req)
	e.PutUint8(0) // deviceID
	e.PutUint8(0) // groupsWrap
	e.PutUint16(0)
	e.PutUint16(0) // firstSI
	e.PutUint16(0) // nSI
	e.PutUint16(0) // nTotalSI
	e.PutPadN(14)
	return finishReply(req, e)
}

func (m *Multiplexer) xkbGetIndicatorMap(req Request) []byte {
	e := startReply(req)
	e.PutUint8(0) // deviceID
	e.PutPadN(3)
	e.PutUint32(0) // which
	e.PutPadN(16)
	return finishReply(req, e)
}
