package ext

func (m *Multiplexer) generic(req Request) []byte {
	switch req.Minor() {
	case 0: // QueryVersion
		return m.genericQueryVersion(req)
	}
	return nil
}

func (m *Multiplexer) genericQueryVersion(req Request) []byte {
	e := startReply(req)
	e.PutUint16(1) // major
	e.PutUint16(0) // minor
	e.PutPadN(20)
	return finishReply(req, e)
}
