// Package scanner defines the QR decoding capability consumed by the
// scanner screen. Camera integration is injected so the screen works with
// any implementation, including the test fake.
package scanner

import "errors"

// ErrCameraUnavailable is returned by the stub decoder; real camera
// capture is not wired into this build.
var ErrCameraUnavailable = errors.New("camera capture is not available in this build")

// Decoder starts and stops a QR capture session. Exactly one of onDecode
// or onError fires per started session.
type Decoder interface {
	Start(onDecode func(data string), onError func(err error)) error
	Stop()
}

// StubDecoder is the placeholder used when no camera integration exists.
type StubDecoder struct{}

func NewStubDecoder() *StubDecoder {
	return &StubDecoder{}
}

func (d *StubDecoder) Start(onDecode func(data string), onError func(err error)) error {
	return ErrCameraUnavailable
}

func (d *StubDecoder) Stop() {}

// FakeDecoder is a scripted decoder for tests and demos. If Err is set it
// fires onError, otherwise it decodes Data.
type FakeDecoder struct {
	Data    string
	Err     error
	stopped bool
}

func (d *FakeDecoder) Start(onDecode func(data string), onError func(err error)) error {
	if d.Err != nil {
		onError(d.Err)
		return nil
	}
	onDecode(d.Data)
	return nil
}

func (d *FakeDecoder) Stop() {
	d.stopped = true
}

// Stopped reports whether Stop was called.
func (d *FakeDecoder) Stopped() bool {
	return d.stopped
}
