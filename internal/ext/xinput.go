package ext

// XInput2 master device ids: pointer 2, keyboard 3, fixed per spec.md §4.F.
const (
	xinputMasterPointerID  = 2
	xinputMasterKeyboardID = 3
)

func (m *Multiplexer) xinput(req Request) []byte {
	switch req.Minor() {
	case 1: // QueryVersion
		return m.xinputQueryVersion(req)
	case 46: // QueryDevice
		return m.xinputQueryDevice(req)
	case 47: // QueryPointer (XIQueryPointer uses Fixed 16.16)
		return m.xinputQueryPointer(req)
	case 48: // GetFocus
		return m.xinputGetFocus(req)
	case 52, 61: // SelectEvents, GetSelectedEvents
		return m.xinputEmptyReply(req)
	}
	return nil
}

func (m *Multiplexer) xinputQueryVersion(req Request) []byte {
	e := startReply(req)
	e.PutUint16(2) // major
	e.PutUint16(3) // minor
	e.PutPadN(20)
	return finishReply(req, e)
}

func (m *Multiplexer) xinputQueryDevice(req Request) []byte {
	e := startReply(req)
	e.PutUint16(2) // num devices: master pointer, master keyboard
	e.PutPadN(22)

	// XIDeviceInfo, master pointer, no classes.
	e.PutUint16(xinputMasterPointerID)
	e.PutUint16(2) // use: XIMasterPointer
	e.PutUint16(0) // attachment
	e.PutUint16(0) // num classes
	e.PutUint16(0) // name len
	e.PutUint8(1)  // enabled
	e.PutPadN(1)

	// XIDeviceInfo, master keyboard, no classes.
	e.PutUint16(xinputMasterKeyboardID)
	e.PutUint16(3) // use: XIMasterKeyboard
	e.PutUint16(0) // attachment
	e.PutUint16(0) // num classes
	e.PutUint16(0) // name len
	e.PutUint8(1)  // enabled
	e.PutPadN(1)

	return finishReply(req, e)
}

func (m *Multiplexer) xinputQueryPointer(req Request) []byte {
	e := startReply(req)
	e.PutUint32(0) // root
	e.PutUint32(0) // child
	e.PutUint32(0) // fp1616 root_x
	e.PutUint32(0) // fp1616 root_y
	e.PutUint32(0) // fp1616 win_x
	e.PutUint32(0) // fp1616 win_y
	e.PutUint16(0) // same screen + buttons len (stubbed empty)
	e.PutPadN(2)
	return finishReply(req, e)
}

func (m *Multiplexer) xinputGetFocus(req Request) []byte {
	e := startReply(req)
	e.PutUint32(0) // focus: always 0; the multiplexer does not know the root id and the dispatcher sends this reply unchanged
	e.PutPadN(20)
	return finishReply(req, e)
}

func (m *Multiplexer) xinputEmptyReply(req Request) []byte {
	e := startReply(req)
	e.PutPadN(24)
	return finishReply(req, e)
}
