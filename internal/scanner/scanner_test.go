package scanner

import (
	"errors"
	"testing"
)

func TestStubDecoderReportsNoCamera(t *testing.T) {
	d := NewStubDecoder()

	err := d.Start(
		func(string) { t.Error("onDecode fired on the stub") },
		func(error) { t.Error("onError fired on the stub") },
	)
	if !errors.Is(err, ErrCameraUnavailable) {
		t.Errorf("expected ErrCameraUnavailable, got %v", err)
	}
}

func TestFakeDecoderDecodes(t *testing.T) {
	d := &FakeDecoder{Data: "student:42"}

	var decoded string
	err := d.Start(
		func(data string) { decoded = data },
		func(err error) { t.Errorf("unexpected onError: %v", err) },
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded != "student:42" {
		t.Errorf("decoded = %q, want %q", decoded, "student:42")
	}
}

func TestFakeDecoderReportsError(t *testing.T) {
	wantErr := errors.New("lens cap on")
	d := &FakeDecoder{Err: wantErr}

	var got error
	err := d.Start(
		func(string) { t.Error("onDecode fired despite scripted error") },
		func(err error) { got = err },
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != wantErr {
		t.Errorf("onError received %v, want %v", got, wantErr)
	}
}

func TestFakeDecoderStop(t *testing.T) {
	d := &FakeDecoder{Data: "x"}
	if d.Stopped() {
		t.Fatal("new decoder reports stopped")
	}
	d.Stop()
	if !d.Stopped() {
		t.Error("Stop() not recorded")
	}
}
