package common

// WipeByteArray zeroes b in place. The CLI calls it on passwords read from
// the terminal once they have been sent. A nil slice is ignored.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
