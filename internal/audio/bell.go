// Package audio emits the Geiger-style click. In a terminal app the only
// portable sound is the bell character, written straight to the tty so it
// never lands inside the alternate-screen frame buffer.
package audio

import (
	"os"
	"sync"
)

// Bell clicks by writing BEL to the controlling terminal.
type Bell struct {
	mu    sync.Mutex
	tty   *os.File
	muted bool
}

// NewBell opens /dev/tty for click output. When no tty is available the
// bell stays silent rather than failing the app.
func NewBell() *Bell {
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return &Bell{}
	}
	return &Bell{tty: tty}
}

// Click emits one bell, unless muted or no tty was available.
func (b *Bell) Click() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.muted || b.tty == nil {
		return
	}
	_, _ = b.tty.Write([]byte{0x07})
}

// SetMuted toggles sound without dropping the tty handle.
func (b *Bell) SetMuted(muted bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.muted = muted
}

// Muted reports the current mute state.
func (b *Bell) Muted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.muted
}

// Close releases the tty handle.
func (b *Bell) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.tty != nil {
		_ = b.tty.Close()
		b.tty = nil
	}
}
