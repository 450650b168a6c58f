package renderer

// Unwind collects cleanup functions and runs them in reverse order. Used to
// restore scene state after a capture regardless of how it exits.
type Unwind struct {
	cleanups []func()
}

func (u *Unwind) Add(cleanup func()) {
	u.cleanups = append(u.cleanups, cleanup)
}

func (u *Unwind) Unwind() {
	for i := len(u.cleanups) - 1; i >= 0; i-- {
		u.cleanups[i]()
	}
	u.cleanups = u.cleanups[:0]
}

func (u *Unwind) Discard() {
	u.cleanups = u.cleanups[:0]
}
