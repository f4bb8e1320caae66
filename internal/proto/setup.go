package proto

import (
	"encoding/binary"

	"github.com/rotkonetworks/x11q/internal/wire"
)

// Vendor is the string this server reports in its connection setup reply.
// Kept a multiple of 4 bytes so no padding arithmetic is needed here.
const Vendor = "x11q"

// Fixed field values spec.md §6 assigns to the connection setup reply.
const (
	protocolMajor         = 11
	protocolMinor         = 0
	maxRequestLength      = 0xFFFF
	pixmapFormatDepth     = 24
	pixmapFormatBPP       = 32
	scanlinePad           = 32
	minKeycode            = 8
	maxKeycode            = 255
	visualClassTrueColor  = 4
	visualBitsPerRGB      = 8
	visualColormapEntries = 256
	rootVisualID          = 0x21
)

// SetupParams carries the values a particular server instance plugs into
// the otherwise-fixed setup reply layout.
type SetupParams struct {
	Order          wire.ByteOrder
	RootID         wire.ResourceID
	ColormapID     wire.ResourceID
	ScreenWidth    uint16
	ScreenHeight   uint16
	ResourceIDBase wire.ResourceID
	ResourceIDMask wire.ResourceID
}

// BuildSetupReply encodes the success connection setup reply of spec.md
// §6: fixed header, vendor string, one pixmap format, one screen, one
// depth descriptor, one TrueColor visual. additional_length is patched in
// after encoding to equal (total_bytes-8)/4 exactly, as required.
func BuildSetupReply(p SetupParams) []byte {
	e := wire.NewEncoder(p.Order)

	e.PutUint8(1) // success
	e.PutUint8(0)
	e.PutUint16(protocolMajor)
	e.PutUint16(protocolMinor)
	e.PutUint16(0) // additional_length, patched below once total is known

	e.PutUint32(0) // release number
	e.PutUint32(uint32(p.ResourceIDBase))
	e.PutUint32(uint32(p.ResourceIDMask))
	e.PutUint32(0) // motion buffer size
	e.PutUint16(uint16(len(Vendor)))
	e.PutUint16(maxRequestLength)
	e.PutUint8(1) // number of screens
	e.PutUint8(1) // number of formats
	e.PutUint8(0) // image byte order: LSB
	e.PutUint8(0) // bitmap bit order
	e.PutUint8(8) // bitmap scanline unit
	e.PutUint8(scanlinePad)
	e.PutUint8(minKeycode)
	e.PutUint8(maxKeycode)
	e.PutPadN(4)

	e.PutString(Vendor)

	// one pixmap format
	e.PutUint8(pixmapFormatDepth)
	e.PutUint8(pixmapFormatBPP)
	e.PutUint8(scanlinePad)
	e.PutPadN(5)

	// one screen
	e.PutUint32(uint32(p.RootID))
	e.PutUint32(uint32(p.ColormapID))
	e.PutUint32(0xFFFFFFFF) // white pixel
	e.PutUint32(0)          // black pixel
	e.PutUint32(0)          // current input masks
	e.PutUint16(p.ScreenWidth)
	e.PutUint16(p.ScreenHeight)
	e.PutUint16(p.ScreenWidth / 4)
	e.PutUint16(p.ScreenHeight / 4)
	e.PutUint16(1)             // min installed maps
	e.PutUint16(1)             // max installed maps
	e.PutUint32(rootVisualID)
	e.PutUint8(0)                  // backing stores
	e.PutUint8(1)                  // save unders
	e.PutUint8(pixmapFormatDepth)  // root depth
	e.PutUint8(1)                  // number of allowed depths

	// one depth descriptor
	e.PutUint8(pixmapFormatDepth)
	e.PutUint8(0)
	e.PutUint16(1) // num visuals
	e.PutPadN(4)

	// one visual
	e.PutUint32(rootVisualID)
	e.PutUint8(visualClassTrueColor)
	e.PutUint8(visualBitsPerRGB)
	e.PutUint16(visualColormapEntries)
	e.PutUint32(0x00FF0000)
	e.PutUint32(0x0000FF00)
	e.PutUint32(0x000000FF)
	e.PutPadN(4)

	buf := e.Bytes()
	additional := uint16((len(buf) - 8) / 4)
	byteOrder(p.Order).PutUint16(buf[4:6], additional)
	return buf
}

func byteOrder(order wire.ByteOrder) binary.ByteOrder {
	if order == wire.MSBFirst {
		return binary.BigEndian
	}
	return binary.LittleEndian
}
