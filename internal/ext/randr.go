package ext

import "github.com/rotkonetworks/x11q/internal/wire"

// randr fixed identifiers: a single CRTC driving a single output through a
// single mode sized to the screen, refreshed at 60Hz (spec.md §4.F).
const (
	randrCrtcID   = 1
	randrOutputID = 1
	randrModeID   = 1

	randrOutputConnected = 0
	randrSubpixelUnknown = 0
	randrRotateNormal    = 1
)

func (m *Multiplexer) randr(req Request) []byte {
	switch req.Minor() {
	case 0: // QueryVersion
		return m.randrQueryVersion(req)
	case 5: // GetScreenResources
		return m.randrGetScreenResources(req)
	case 6: // GetOutputInfo
		return m.randrGetOutputInfo(req)
	case 9: // GetCrtcInfo
		return m.randrGetCrtcInfo(req)
	case 25: // GetOutputPrimary
		return m.randrGetOutputPrimary(req)
	case 31: // GetProviders
		return m.randrGetProviders(req)
	}
	return nil
}

func (m *Multiplexer) randrQueryVersion(req Request) []byte {
	e := startReply(req)
	e.PutUint32(1) // major
	e.PutUint32(6) // minor
	e.PutPadN(16)
	return finishReply(req, e)
}

func (m *Multiplexer) randrGetScreenResources(req Request) []byte {
	e := startReply(req)
	e.PutUint32(0) // timestamp
	e.PutUint32(0) // config timestamp
	e.PutUint16(1) // num crtcs
	e.PutUint16(1) // num outputs
	e.PutUint16(1) // num modes
	e.PutUint16(0) // names len
	e.PutPadN(8)

	e.PutUint32(randrCrtcID)
	e.PutUint32(randrOutputID)

	// one ModeInfo, sized to the screen, 60Hz.
	e.PutUint32(randrModeID)
	e.PutUint16(m.screenWidth)
	e.PutUint16(m.screenHeight)
	e.PutUint32(uint32(m.screenWidth) * uint32(m.screenHeight) * 60) // dot clock
	e.PutUint16(m.screenWidth)                                      // hSyncStart
	e.PutUint16(m.screenWidth)                                      // hSyncEnd
	e.PutUint16(m.screenWidth)                                      // hTotal
	e.PutUint16(0)                                                  // hSkew
	e.PutUint16(m.screenHeight)                                     // vSyncStart
	e.PutUint16(m.screenHeight)                                     // vSyncEnd
	e.PutUint16(m.screenHeight)                                     // vTotal
	e.PutUint16(0)                                                  // name length (none here; see GetOutputInfo)
	e.PutUint32(0)                                                  // mode flags

	return finishReply(req, e)
}

func (m *Multiplexer) randrGetOutputInfo(req Request) []byte {
	const name = "default"
	e := startReply(req)
	e.PutUint32(0) // timestamp
	e.PutUint32(randrCrtcID)
	e.PutUint32(0) // mm width
	e.PutUint32(0) // mm height
	e.PutUint8(randrOutputConnected)
	e.PutUint8(randrSubpixelUnknown)
	e.PutUint16(1) // num crtcs
	e.PutUint16(1) // num modes
	e.PutUint16(1) // num preferred
	e.PutUint16(0) // num clones
	e.PutUint16(uint16(len(name)))

	e.PutUint32(randrCrtcID)
	e.PutUint32(randrModeID)
	e.PutString(name)

	return finishReply(req, e)
}

func (m *Multiplexer) randrGetCrtcInfo(req Request) []byte {
	e := startReply(req)
	e.PutUint32(0) // timestamp
	e.PutInt16(0)  // x
	e.PutInt16(0)  // y
	e.PutUint16(m.screenWidth)
	e.PutUint16(m.screenHeight)
	e.PutUint32(randrModeID)
	e.PutUint16(randrRotateNormal)
	e.PutUint16(randrRotateNormal) // possible rotations
	e.PutUint16(1)                 // num outputs
	e.PutUint16(1)                 // num possible outputs
	e.PutUint32(randrOutputID)
	e.PutUint32(randrOutputID)
	return finishReply(req, e)
}

func (m *Multiplexer) randrGetOutputPrimary(req Request) []byte {
	e := startReply(req)
	e.PutUint32(randrOutputID)
	e.PutPadN(20)
	return finishReply(req, e)
}

func (m *Multiplexer) randrGetProviders(req Request) []byte {
	e := startReply(req)
	e.PutUint32(0) // timestamp
	e.PutUint16(0) // num providers
	e.PutPadN(22)
	return finishReply(req, e)
}

// startReply begins a 32-byte-header reply for any of the stubbed
// extensions: byte 0 is 1 (reply), byte 1 is always 0 (no stub uses it as
// a discriminator).
func startReply(req Request) *wire.Encoder {
	e := wire.NewEncoder(req.Order)
	e.PutUint8(1)
	e.PutUint8(0)
	e.PutUint16(req.Seq)
	e.PutUint32(0) // length, patched by finishReply
	return e
}

func finishReply(req Request, e *wire.Encoder) []byte {
	buf := e.Bytes()
	extra := len(buf) - 32
	length := wire.RequestLength(extra)
	patchLength(req.Order, buf, uint32(length))
	return buf
}
