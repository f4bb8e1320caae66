package ext

import (
	"encoding/binary"

	"github.com/rotkonetworks/x11q/internal/wire"
)

func patchLength(order wire.ByteOrder, buf []byte, v uint32) {
	bo := binary.ByteOrder(binary.LittleEndian)
	if order == wire.MSBFirst {
		bo = binary.BigEndian
	}
	bo.PutUint32(buf[4:8], v)
}
