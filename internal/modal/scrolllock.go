package modal

import "sync"

// ScrollLock suppresses page scroll while the modal is open. Acquire
// returns a release func so every exit path restores scroll via defer;
// both acquire and release are idempotent per guard, so an abnormal
// teardown that releases twice is harmless.
type ScrollLock struct {
	mu    sync.Mutex
	holds int
}

// NewScrollLock returns an unlocked ScrollLock.
func NewScrollLock() *ScrollLock {
	return &ScrollLock{}
}

// Acquire suppresses scrolling and returns the matching release.
func (l *ScrollLock) Acquire() (release func()) {
	l.mu.Lock()
	l.holds++
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			l.holds--
			l.mu.Unlock()
		})
	}
}

// Locked reports whether any holder is suppressing scroll.
func (l *ScrollLock) Locked() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.holds > 0
}
