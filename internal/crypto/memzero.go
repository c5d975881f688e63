package crypto

import "runtime"

// Wipe zeroes a key buffer once its holder is done with it; shared
// secrets are wiped after every seal, open and flush. Best-effort only,
// the noinline hint discourages the compiler from eliding the writes.
//
//go:noinline
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(&b)
}
