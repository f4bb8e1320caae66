package config

import "testing"

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := Config{Width: 1280, Height: 720, Display: 1, UnixSocket: true, TCP: true, TCPAddress: "0.0.0.0"}
	if err := Write(dir, want); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Read(dir)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestInitializeIfNotWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := InitializeIfNot(dir); err != nil {
		t.Fatalf("InitializeIfNot: %v", err)
	}
	got, err := Read(dir)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != Default() {
		t.Fatalf("expected defaults, got %+v", got)
	}

	// second call must not clobber a modified file
	custom := got
	custom.Width = 1
	if err := Write(dir, custom); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := InitializeIfNot(dir); err != nil {
		t.Fatalf("InitializeIfNot (existing file): %v", err)
	}
	got2, err := Read(dir)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got2.Width != 1 {
		t.Fatalf("expected InitializeIfNot to leave existing file alone, got width %d", got2.Width)
	}
}
