package wire

import (
	"bytes"
	"testing"
)

func TestFramer_SetupFrame_NoAuth(t *testing.T) {
	f := NewFramer()
	setup := []byte{0x6C, 0x00, 0x0B, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	f.Feed(setup)

	frame, ok, err := f.Next()
	if err != nil {
		t.Fatalf("Next: unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("Next: expected a complete setup frame")
	}
	if !bytes.Equal(frame, setup) {
		t.Errorf("Next: got %v, want %v", frame, setup)
	}
}

func TestFramer_SetupFrame_WaitsForAuthBytes(t *testing.T) {
	f := NewFramer()
	// auth_name_len=5, auth_data_len=0: total = 12 + pad4(5) = 20
	header := []byte{0x6C, 0x00, 0x0B, 0x00, 0x05, 0x00, 0x00, 0x00, 0x05, 0x00, 0x00, 0x00}
	f.Feed(header)

	if _, ok, err := f.Next(); ok || err != nil {
		t.Fatalf("Next: expected NeedMore before auth bytes, got ok=%v err=%v", ok, err)
	}

	f.Feed([]byte("HELLO")) // 5 bytes, padded to 8
	if _, ok, err := f.Next(); ok || err != nil {
		t.Fatalf("Next: expected NeedMore before padding arrives, got ok=%v err=%v", ok, err)
	}

	f.Feed([]byte{0, 0, 0}) // padding to 4-byte boundary
	frame, ok, err := f.Next()
	if err != nil {
		t.Fatalf("Next: unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("Next: expected a complete setup frame once padding arrives")
	}
	if len(frame) != 20 {
		t.Errorf("Next: got frame len %d, want 20", len(frame))
	}
}

func TestFramer_InvalidByteOrder(t *testing.T) {
	f := NewFramer()
	f.Feed([]byte{0xFF})
	if _, _, err := f.Next(); err == nil {
		t.Fatal("Next: expected an error for an invalid byte-order byte")
	}
}

func TestFramer_RequestFrames(t *testing.T) {
	f := NewFramer()
	f.SetupDone(LSBFirst)

	// opcode=16 (InternAtom), detail=0, length=5 (20 bytes total)
	req := make([]byte, 20)
	req[0] = 16
	req[2] = 5
	f.Feed(req[:2])
	if _, ok, _ := f.Next(); ok {
		t.Fatal("Next: expected NeedMore with only 2 bytes buffered")
	}

	f.Feed(req[2:])
	frame, ok, err := f.Next()
	if err != nil {
		t.Fatalf("Next: unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("Next: expected a complete request frame")
	}
	if len(frame) != 20 {
		t.Errorf("Next: got frame len %d, want 20", len(frame))
	}
}

func TestFramer_ZeroLengthClampedToFour(t *testing.T) {
	f := NewFramer()
	f.SetupDone(LSBFirst)

	req := []byte{127, 0, 0, 0} // NoOperation, length word 0
	f.Feed(req)
	frame, ok, err := f.Next()
	if err != nil {
		t.Fatalf("Next: unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("Next: expected the clamped 4-byte frame")
	}
	if len(frame) != 4 {
		t.Errorf("Next: got frame len %d, want 4", len(frame))
	}
}

func TestFramer_MultipleRequestsInOneFeed(t *testing.T) {
	f := NewFramer()
	f.SetupDone(LSBFirst)

	first := []byte{127, 0, 1, 0}
	second := []byte{127, 0, 1, 0}
	f.Feed(first)
	f.Feed(second)

	for i := 0; i < 2; i++ {
		frame, ok, err := f.Next()
		if err != nil || !ok {
			t.Fatalf("Next (%d): ok=%v err=%v", i, ok, err)
		}
		if len(frame) != 4 {
			t.Errorf("Next (%d): got frame len %d, want 4", i, len(frame))
		}
	}

	if _, ok, _ := f.Next(); ok {
		t.Fatal("Next: expected NeedMore after draining both frames")
	}
}
